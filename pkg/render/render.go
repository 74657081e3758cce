// Package render produces the HTML pages served to browsers: the login
// page, the error page and the file browser shell.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
)

// Renderer loads page templates from the web assets directory. Templates
// are parsed per request, so edits to the page files show up without a
// restart.
type Renderer struct {
	webDir string
}

// NewRenderer creates a renderer reading templates from webDir.
func NewRenderer(webDir string) *Renderer {
	return &Renderer{webDir: webDir}
}

// AuthPageParams carries the values the login page template needs.
type AuthPageParams struct {
	Theme       string
	Message     string
	RedirectURL string
}

// ErrorPageParams carries the values the error page template needs. Path is
// the path exactly as the user requested it, never a filesystem location.
type ErrorPageParams struct {
	Theme   string
	Message string
	Path    string
}

// IndexPageParams carries the values the file browser shell needs.
type IndexPageParams struct {
	Theme    string
	Username string
	Version  string
}

// AuthPage renders the login page.
func (r *Renderer) AuthPage(params AuthPageParams) (string, error) {
	return r.render("auth.html", params)
}

// ErrorPage renders the error page.
func (r *Renderer) ErrorPage(params ErrorPageParams) (string, error) {
	return r.render("error.html", params)
}

// IndexPage renders the file browser shell.
func (r *Renderer) IndexPage(params IndexPageParams) (string, error) {
	return r.render("index.html", params)
}

// render parses one template file and executes it with the given data.
func (r *Renderer) render(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFiles(filepath.Join(r.webDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to load template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}

	return buf.String(), nil
}
