// Package render executes the page templates inside the shared layout.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"intwork/internal/content"
	"intwork/internal/models"
	"intwork/internal/session"
)

const (
	baseLayout  = "layouts/base.html"
	partialsDir = "partials"
	pagesDir    = "pages"
)

// Renderer holds one parsed template set per page.
type Renderer struct {
	templates map[string]*template.Template
	sessions  *session.Manager
	now       func() time.Time
}

type Config struct {
	TemplatesFS fs.FS
	// Sessions supplies the flash message of the request. It may be nil.
	Sessions *session.Manager
}

func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		sessions:  cfg.Sessions,
		now:       time.Now,
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, partialsDir)
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	pages, err := templateFiles(templatesFS, pagesDir)
	if err != nil {
		return fmt.Errorf("getting pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no page templates in %s", pagesDir)
	}

	for _, page := range pages {
		name := strings.TrimSuffix(path.Base(page), ".html")

		files := []string{baseLayout}
		files = append(files, partials...)
		files = append(files, page)

		tmpl, err := template.New("").Funcs(r.templateFuncs()).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}

		r.templates[name] = tmpl
	}

	return nil
}

func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

func (r *Renderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"relativeTime": func(t time.Time) string {
			return content.RelativeTime(t, r.now())
		},
		"humanBytes": func(n int64) string {
			if n < 0 {
				return ""
			}
			return humanize.Bytes(uint64(n))
		},
		"comma": func(n int) string {
			return humanize.Comma(int64(n))
		},
		"authorName": func(a *models.Author) string {
			return a.DisplayName()
		},
		"authorUsername": func(a *models.Author) string {
			if a == nil {
				return ""
			}
			return a.Username
		},
		"initial": func(s string) string {
			for _, c := range s {
				return strings.ToUpper(string(c))
			}
			return "?"
		},
		"statusClass": func(s models.ApplicationStatus) string {
			return "status-" + strings.ToLower(string(s))
		},
		"formatDate": content.FormatDate,
	}
}

// TemplateData is passed to every page. Data holds the page specific view.
type TemplateData struct {
	Title       string
	Data        any
	Error       string
	Flash       *session.Flash
	Session     session.Session
	Path        string
	CurrentYear int
}

// Render writes the page with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = r.now().Year()
	data.Session = session.FromContext(req.Context())
	data.Path = req.URL.Path
	if r.sessions != nil && data.Flash == nil {
		data.Flash = r.sessions.PopFlash(req.Context())
	}

	// Render to a buffer so a failing template never sends half a page.
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Has reports whether a page template with the given name was parsed.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}
