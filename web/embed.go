// Package web carries the embedded dashboard assets so the binary ships
// without a separate asset directory.
package web

import "embed"

// TemplatesFS holds the HTMX dashboard templates.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds stylesheets and other static files under /static/.
//
//go:embed static/*
var StaticFS embed.FS
