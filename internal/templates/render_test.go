package templates

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"receiptweb/internal/views"
)

func testFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys["templates/"+name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func TestRenderStatus(t *testing.T) {
	r, err := New(testFS(map[string]string{
		"layouts/base.html":  `{{define "base"}}<main>{{template "body" .}}</main>{{end}}`,
		"partials/body.html": `{{define "body"}}<p>{{msg "Delete"}}</p><canvas data-chart="{{toJSON .}}"></canvas>{{end}}`,
	}), false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := r.RenderStatus(rec, http.StatusForbidden, "base", map[string]int{"n": 1}); err != nil {
		t.Fatalf("RenderStatus: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, views.Message("Delete")) {
		t.Errorf("msg not rendered: %s", body)
	}
	if !strings.Contains(body, `data-chart="{&#34;n&#34;:1}"`) {
		t.Errorf("chart config not attribute-escaped: %s", body)
	}
}

func TestRenderFailureBecomes500(t *testing.T) {
	r, err := New(testFS(map[string]string{
		"pages/page.html": `{{define "page"}}{{.Missing.Field}}{{end}}`,
	}), false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := r.RenderPartial(rec, "page", struct{ Missing *struct{ Field string } }{}); err == nil {
		t.Fatal("expected an execution error")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestNewRejectsBrokenTemplates(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{"no templates", map[string]string{}},
		{"parse error", map[string]string{"pages/bad.html": `{{define "bad"}}{{if}}{{end}}`}},
		{"undefined reference", map[string]string{"pages/page.html": `{{define "page"}}{{template "nowhere" .}}{{end}}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(testFS(tt.files), false); err == nil {
				t.Error("expected New to fail")
			}
		})
	}
}

func TestExtractLineNumber(t *testing.T) {
	if got := extractLineNumber(`template: bad.html:12: unexpected EOF`); got != 12 {
		t.Errorf("extractLineNumber = %d, want 12", got)
	}
	if got := extractLineNumber("no line here"); got != 0 {
		t.Errorf("extractLineNumber = %d, want 0", got)
	}
}
