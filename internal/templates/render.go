package templates

import (
	"bufio"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"regexp"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"receiptweb/internal/views"
)

// Renderer handles template rendering
type Renderer struct {
	mu        sync.RWMutex
	templates *template.Template
	debug     bool
	fsys      fs.FS
}

// New creates a renderer over fsys, which must hold a templates/ tree with
// layouts, pages and partials subdirectories. In debug mode templates are
// re-parsed on every render.
func New(fsys fs.FS, debug bool) (*Renderer, error) {
	r := &Renderer{
		debug: debug,
		fsys:  fsys,
	}

	if err := r.loadTemplates(); err != nil {
		return nil, err
	}

	return r, nil
}

// getFuncMap returns the template function map
func getFuncMap() template.FuncMap {
	return template.FuncMap{
		"msg":    views.Message,
		"toJSON": toJSON,
	}
}

var templateDirs = []string{"layouts", "pages", "partials"}

// loadTemplates parses all templates with strict validation
func (r *Renderer) loadTemplates() error {
	tmpl := template.New("").Funcs(getFuncMap())

	var templateFiles []string
	for _, subdir := range templateDirs {
		pattern := path.Join("templates", subdir, "*.html")
		matches, err := fs.Glob(r.fsys, pattern)
		if err != nil {
			return fmt.Errorf("error globbing %s: %w", pattern, err)
		}
		templateFiles = append(templateFiles, matches...)
	}

	if len(templateFiles) == 0 {
		return fmt.Errorf("no template files found under templates/")
	}

	contents := make(map[string]string, len(templateFiles))
	var parseErrors []string
	for _, file := range templateFiles {
		content, err := fs.ReadFile(r.fsys, file)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Sprintf("  %s: failed to read: %v", file, err))
			continue
		}
		contents[file] = string(content)

		if _, err := tmpl.New(path.Base(file)).Parse(string(content)); err != nil {
			parseErrors = append(parseErrors, formatTemplateError(file, string(content), err))
		}
	}

	if len(parseErrors) > 0 {
		for _, e := range parseErrors {
			log.Error().Msg("template parse error:" + e)
		}
		return fmt.Errorf("template parsing failed with %d error(s)", len(parseErrors))
	}

	if err := validateTemplateReferences(tmpl, contents); err != nil {
		return err
	}

	r.mu.Lock()
	r.templates = tmpl
	r.mu.Unlock()
	log.Debug().Int("files", len(templateFiles)).Msg("templates loaded")
	return nil
}

// formatTemplateError formats a template error with file context
func formatTemplateError(file, content string, err error) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n  File: %s\n", file))

	errStr := err.Error()
	lineNum := extractLineNumber(errStr)

	if lineNum > 0 {
		sb.WriteString(fmt.Sprintf("  Line: %d\n", lineNum))
		sb.WriteString(fmt.Sprintf("  Error: %s\n", errStr))
		sb.WriteString("  Context:\n")

		lines := strings.Split(content, "\n")
		start := lineNum - 3
		if start < 0 {
			start = 0
		}
		end := lineNum + 2
		if end > len(lines) {
			end = len(lines)
		}

		for i := start; i < end; i++ {
			marker := "   "
			if i+1 == lineNum {
				marker = ">>>"
			}
			sb.WriteString(fmt.Sprintf("    %s %4d | %s\n", marker, i+1, lines[i]))
		}
	} else {
		sb.WriteString(fmt.Sprintf("  Error: %s\n", errStr))
	}

	return sb.String()
}

var lineNumberRe = regexp.MustCompile(`:(\d+):`)

// extractLineNumber tries to extract a line number from a template error
func extractLineNumber(errStr string) int {
	matches := lineNumberRe.FindStringSubmatch(errStr)
	if len(matches) >= 2 {
		var lineNum int
		fmt.Sscanf(matches[1], "%d", &lineNum)
		return lineNum
	}
	return 0
}

var templateCallRe = regexp.MustCompile(`\{\{-?\s*template\s+"([^"]+)"`)

// validateTemplateReferences checks that all {{template "name"}} calls reference defined templates
func validateTemplateReferences(tmpl *template.Template, contents map[string]string) error {
	defined := make(map[string]bool)
	for _, t := range tmpl.Templates() {
		if t.Name() != "" {
			defined[t.Name()] = true
		}
	}

	var refErrors []string
	for file, content := range contents {
		scanner := bufio.NewScanner(strings.NewReader(content))
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			line := scanner.Text()
			for _, match := range templateCallRe.FindAllStringSubmatch(line, -1) {
				if !defined[match[1]] {
					refErrors = append(refErrors, fmt.Sprintf(
						"%s:%d: undefined template %q", file, lineNum, match[1],
					))
				}
			}
		}
	}

	if len(refErrors) > 0 {
		for _, e := range refErrors {
			log.Error().Msg(e)
		}
		return fmt.Errorf("found %d undefined template reference(s)", len(refErrors))
	}

	return nil
}

func (r *Renderer) current() *template.Template {
	if r.debug {
		if err := r.loadTemplates(); err != nil {
			log.Error().Err(err).Msg("reloading templates")
		}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.templates
}

// RenderStatus renders a template with a non-200 status. The template is
// executed into a buffer first so a failure can still become a 500.
func (r *Renderer) RenderStatus(w http.ResponseWriter, status int, name string, data interface{}) error {
	var buf strings.Builder
	if err := r.current().ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("rendering template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := io.WriteString(w, buf.String())
	return err
}

// RenderPartial renders a partial template (no base layout)
func (r *Renderer) RenderPartial(w http.ResponseWriter, name string, data interface{}) error {
	return r.RenderStatus(w, http.StatusOK, name, data)
}

// toJSON encodes v for a data-* attribute; html/template escapes the result
func toJSON(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
