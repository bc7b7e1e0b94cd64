// Package main provides a CLI tool for validating a running receiptweb server.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/term"
)

type endpoint struct {
	path        string
	method      string
	contentType string
	contains    []string
	adminOnly   bool
}

var endpoints = []endpoint{
	// Unauthenticated
	{path: "/api/health", method: "GET", contentType: "application/json", contains: []string{`"status":"ok"`}},
	{path: "/api/version", method: "GET", contentType: "application/json", contains: []string{`"version"`}},
	{path: "/metrics", method: "GET", contentType: "text/plain", contains: []string{"receiptweb_backend_requests_total"}},

	// Dashboard
	{path: "/dashboard", method: "GET", contentType: "text/html", contains: []string{"spending-dashboard-card", "recent-activity-list"}},
	{path: "/dashboard/aggregates", method: "GET", contentType: "text/html", contains: []string{"total-spend-kpi", "top-items-list"}},
	{path: "/dashboard/recent", method: "GET", contentType: "text/html", contains: nil},
	{path: "/dashboard/charts/category", method: "GET", contentType: "application/json", contains: []string{`"type":"pie"`}},
	{path: "/dashboard/charts/time-series", method: "GET", contentType: "application/json", contains: []string{`"type":"bar"`}},

	// Reports
	{path: "/reports", method: "GET", contentType: "text/html", contains: []string{"receipts-table-body", "download-csv-btn"}},
	{path: "/reports/rows", method: "GET", contentType: "text/html", contains: nil},

	// Admin
	{path: "/admin", method: "GET", contentType: "text/html", contains: []string{"users-table-body", "all-receipts-table-body"}, adminOnly: true},
	{path: "/admin/users/rows", method: "GET", contentType: "text/html", contains: nil, adminOnly: true},
	{path: "/admin/receipts/rows", method: "GET", contentType: "text/html", contains: nil, adminOnly: true},
}

type result struct {
	endpoint endpoint
	status   int
	duration time.Duration
	err      error
	body     string
}

var cli struct {
	URL      string        `name:"url" default:"http://localhost:8080" help:"Base URL of the server to validate"`
	Email    string        `name:"email" env:"RECEIPTS_VALIDATE_EMAIL" required:"" help:"Account to log in with"`
	Password string        `name:"password" env:"RECEIPTS_VALIDATE_PASSWORD" help:"Password; prompted for when empty"`
	Admin    bool          `name:"admin" help:"Also check the admin pages"`
	Timeout  time.Duration `name:"timeout" default:"10s" help:"Request timeout"`
	Verbose  bool          `name:"verbose" short:"v" help:"Verbose output"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("receiptweb-validate"),
		kong.Description("Log in to a running receiptweb server and check every page responds."),
	)

	if cli.Password == "" {
		password, err := readPassword()
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading password: %v\n", err)
			os.Exit(2)
		}
		cli.Password = password
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating cookie jar: %v\n", err)
		os.Exit(2)
	}
	client := &http.Client{
		Timeout: cli.Timeout,
		Jar:     jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	base := strings.TrimRight(cli.URL, "/")
	fmt.Printf("Validating server at %s\n", base)

	if err := login(client, base, cli.Email, cli.Password); err != nil {
		fmt.Printf("FAIL POST /login\n")
		fmt.Printf("     Error: %v\n", err)
		os.Exit(1)
	}
	if cli.Verbose {
		fmt.Printf("PASS POST /login as %s\n", cli.Email)
	}

	var passed, failed, skipped int

	for _, ep := range endpoints {
		if ep.adminOnly && !cli.Admin {
			skipped++
			continue
		}

		r := validateEndpoint(client, base, ep)

		if r.err != nil {
			failed++
			fmt.Printf("FAIL %s %s\n", ep.method, ep.path)
			fmt.Printf("     Error: %v\n", r.err)
		} else if r.status != http.StatusOK {
			failed++
			fmt.Printf("FAIL %s %s\n", ep.method, ep.path)
			fmt.Printf("     Status: %d (expected 200)\n", r.status)
		} else {
			passed++
			if cli.Verbose {
				fmt.Printf("PASS %s %s (%v)\n", ep.method, ep.path, r.duration)
			}
		}
	}

	fmt.Printf("\n========================================\n")
	fmt.Printf("Results: %d passed, %d failed, %d skipped\n", passed, failed, skipped)

	if failed > 0 {
		os.Exit(1)
	}
}

func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal; set RECEIPTS_VALIDATE_PASSWORD")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// login posts the landing form and expects the redirect that follows a
// successful sign-in
func login(client *http.Client, baseURL, email, password string) error {
	form := url.Values{"email": {email}, "password": {password}}
	resp, err := client.PostForm(baseURL+"/login", form)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusSeeOther {
		return fmt.Errorf("login rejected: status %d", resp.StatusCode)
	}
	switch loc := resp.Header.Get("Location"); loc {
	case "/admin":
		cli.Admin = true
	case "/dashboard":
	default:
		return fmt.Errorf("unexpected redirect to %q", loc)
	}
	return nil
}

func validateEndpoint(client *http.Client, baseURL string, ep endpoint) result {
	start := time.Now()

	req, err := http.NewRequest(ep.method, baseURL+ep.path, nil)
	if err != nil {
		return result{endpoint: ep, err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := client.Do(req)
	if err != nil {
		return result{endpoint: ep, err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result{endpoint: ep, err: fmt.Errorf("failed to read body: %w", err)}
	}

	r := result{
		endpoint: ep,
		status:   resp.StatusCode,
		duration: time.Since(start),
		body:     string(body),
	}

	if resp.StatusCode == http.StatusSeeOther {
		r.err = fmt.Errorf("redirected to %q; session was not accepted", resp.Header.Get("Location"))
		return r
	}

	// Validate content type
	ct := resp.Header.Get("Content-Type")
	if !strings.Contains(ct, ep.contentType) {
		r.err = fmt.Errorf("wrong content type: got %q, expected %q", ct, ep.contentType)
		return r
	}

	// Validate JSON if expected
	if ep.contentType == "application/json" {
		var js interface{}
		if err := json.Unmarshal(body, &js); err != nil {
			r.err = fmt.Errorf("invalid JSON: %w", err)
			return r
		}
	}

	// Validate required content
	for _, needle := range ep.contains {
		if !strings.Contains(r.body, needle) {
			r.err = fmt.Errorf("missing expected content: %q", needle)
			return r
		}
	}

	return r
}
