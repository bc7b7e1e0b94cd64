// Package web carries the HTML templates and static assets compiled into the
// server binary.
package web

import "embed"

// FS holds templates/ and static/
//
//go:embed templates static
var FS embed.FS
