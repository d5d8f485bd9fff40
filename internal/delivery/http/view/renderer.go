package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/locale"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page templates
const (
	PageList      = "list"
	PageDashboard = "dashboard"
	PageDetail    = "detail"
	PageProfile   = "profile"
	PageSettings  = "settings"
	PageAuth      = "auth"
	PageLoading   = "loading"
	PageFallback  = "fallback"
)

// Renderer executes the embedded templates. The parsed set is never executed
// directly: each render clones it and binds the request's translator.
type Renderer struct {
	base *template.Template
	log  *logrus.Logger
}

func NewRenderer(log *logrus.Logger) (*Renderer, error) {
	base, err := template.New("pages").Funcs(funcs(nil)).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{base: base, log: log}, nil
}

// Render writes page with status. Template errors become a plain 500 so a
// half-rendered page never reaches the browser.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page *Page, l *locale.Localizer) {
	t, err := r.base.Clone()
	if err != nil {
		r.fail(w, name, err)
		return
	}
	t.Funcs(funcs(l))

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, page); err != nil {
		r.fail(w, name, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.log.Warnf("Failed to write page %s: %+v", name, err)
	}
}

func (r *Renderer) fail(w http.ResponseWriter, name string, err error) {
	r.log.Errorf("Failed to render page %s: %+v", name, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func funcs(l *locale.Localizer) template.FuncMap {
	return template.FuncMap{
		"t": func(key string) string {
			return l.T(key, nil)
		},
		// tf translates with params given as name/value pairs.
		"tf": func(key string, pairs ...interface{}) string {
			params := make(map[string]interface{}, len(pairs)/2)
			for i := 0; i+1 < len(pairs); i += 2 {
				if name, ok := pairs[i].(string); ok {
					params[name] = pairs[i+1]
				}
			}
			return l.T(key, params)
		},
		"upper": strings.ToUpper,
		"add":   func(a, b int) int { return a + b },
	}
}
