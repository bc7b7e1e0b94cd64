package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"receiptweb/internal/config"
	"receiptweb/internal/handlers/admin"
	"receiptweb/internal/handlers/dashboard"
	"receiptweb/internal/handlers/landing"
	"receiptweb/internal/handlers/reports"
	apphttp "receiptweb/internal/http"
	"receiptweb/internal/services/backend"
	"receiptweb/internal/services/metrics"
	"receiptweb/internal/services/session"
	"receiptweb/internal/services/viewcache"
	"receiptweb/internal/templates"
	"receiptweb/internal/version"
	"receiptweb/internal/views"
	"receiptweb/web"
)

var (
	cfg      *config.Config
	client   *backend.Client
	renderer *templates.Renderer
	store    session.Store
	cache    *viewcache.Cache
	registry *prometheus.Registry
	webFS    fs.FS
)

func main() {
	cfg = config.DefaultConfig()
	kong.Parse(cfg,
		kong.Name(config.AppName),
		kong.Description(config.AppDesc),
	)
	setupLogging(cfg.Debug)

	info := version.Get()
	info.Publish()
	log.Info().Str("version", info.String()).Msg("Starting " + config.AppName)
	if warning := info.Check(); warning != "" {
		log.Warn().Msg(warning)
	}

	if err := SetupDependencies(cfg); err != nil {
		log.Fatal().Err(err).Msg("setting up dependencies")
	}

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      SetupRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.BackendTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	stopSweeper := startSweeper(sweepInterval(cfg.CacheIdleTTL), cfg.CacheIdleTTL)

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Str("backend", cfg.BackendURL).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown")
	}
	stopSweeper()
	log.Info().Msg("Shutdown complete")
}

func setupLogging(debug bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Caller().Logger()
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(os.Stderr).With().Caller().Logger()
}

func sweepInterval(ttl time.Duration) time.Duration {
	if interval := ttl / 4; interval > time.Minute {
		return interval
	}
	return time.Minute
}

// startSweeper periodically forgets idle sessions and their cached lists.
// The returned func stops it and waits for the goroutine to exit.
func startSweeper(interval, idle time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		for {
			select {
			case <-ticker.C:
				sweepIdle(idle)
			case <-done:
				return
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
		<-exited
	}
}

func sweepIdle(idle time.Duration) {
	cache.Sweep()
	if s, ok := store.(session.Sweeper); ok {
		s.Sweep(idle)
	}
}

// SetupDependencies builds everything the handlers share and hands it to
// each handler package
func SetupDependencies(c *config.Config) error {
	cfg = c
	if err := cfg.Validate(); err != nil {
		return err
	}

	webFS = web.FS
	if cfg.TemplatesDirectory != "" {
		webFS = os.DirFS(cfg.TemplatesDirectory)
		log.Info().Str("dir", cfg.TemplatesDirectory).Msg("serving templates and static files from disk")
	}

	var err error
	renderer, err = templates.New(webFS, cfg.Debug)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	table, err := config.LoadLabels(cfg.LabelsFile)
	if err != nil {
		return err
	}
	if table == nil {
		table = views.DefaultCategoryLabels()
	}
	labels := views.NewLabels(table)
	log.Info().Strs("categories", labels.Known()).Msg("category labels loaded")

	store, err = newSessionStore(cfg)
	if err != nil {
		return err
	}

	cache = viewcache.New(cfg.CacheIdleTTL)

	collector := metrics.New(config.AppName, cache.Len)
	registry = prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		versioncollector.NewCollector(config.AppName),
		collector,
	)

	client = backend.New(&http.Client{Timeout: cfg.BackendTimeout}, cfg.BackendURL).WithObserver(collector)

	landing.Initialize(client, renderer, store, cache)
	dashboard.Initialize(client, renderer, labels)
	reports.Initialize(client, renderer, cache)
	admin.Initialize(client, renderer, cache)

	return nil
}

func newSessionStore(c *config.Config) (session.Store, error) {
	opts := session.CookieOptions{Name: c.CookieName, Secure: c.SecureCookie}

	switch c.SessionStore {
	case "cookie":
		identity, err := session.LoadOrCreateIdentity(c.SessionKeyFile)
		if err != nil {
			return nil, fmt.Errorf("session key: %w", err)
		}
		log.Info().Str("key_file", c.SessionKeyFile).Msg("sealing sessions into cookies")
		return session.NewCookieStore(identity, opts), nil
	default:
		return session.NewMemoryStore(opts), nil
	}
}

// SetupRouter wires middleware and routes
func SetupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apphttp.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	static, err := fs.Sub(webFS, "static")
	if err != nil {
		log.Error().Err(err).Msg("static files unavailable")
	} else {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	}

	r.Get("/api/health", handleHealth)
	r.Get("/api/version", handleVersion)
	if cfg.EnableMetrics {
		r.Handle(cfg.MetricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	landing.RegisterRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(apphttp.RequireSession(store))
		dashboard.RegisterRoutes(r)
		reports.RegisterRoutes(r)
		admin.RegisterRoutes(r)
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	apphttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	apphttp.WriteJSON(w, http.StatusOK, version.Get())
}
