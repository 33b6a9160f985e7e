// Package view renders server-side HTML pages from embedded templates.
//
// Every page template is parsed together with layout.html at startup, so a
// malformed template fails fast instead of at first render. Handlers call:
//
//	view.Render(w, r, http.StatusOK, "services", view.Data{
//	    "Title":    "Our Services",
//	    "Services": services,
//	})
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shashiranjanraj/freshfold/config"
	"github.com/shashiranjanraj/freshfold/pkg/logger"
	"github.com/shashiranjanraj/freshfold/pkg/middleware"
	"github.com/shashiranjanraj/freshfold/pkg/session"
)

//go:embed templates/*.html
var files embed.FS

// Data is the bag of values passed to a template.
type Data map[string]interface{}

var pages = map[string]*template.Template{}

var funcs = template.FuncMap{
	"money": func(v float64) string {
		return config.CurrencySymbol() + strconv.FormatFloat(v, 'f', 2, 64)
	},
	"datefmt": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("Jan 2, 2006 15:04")
	},
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}

func init() {
	entries, err := fs.ReadDir(files, "templates")
	if err != nil {
		panic(fmt.Sprintf("view: read templates: %v", err))
	}

	for _, e := range entries {
		name := e.Name()
		if name == "layout.html" || !strings.HasSuffix(name, ".html") {
			continue
		}

		page := strings.TrimSuffix(name, ".html")
		tmpl, err := template.New("layout.html").Funcs(funcs).
			ParseFS(files, "templates/layout.html", "templates/"+name)
		if err != nil {
			panic(fmt.Sprintf("view: parse %s: %v", name, err))
		}
		pages[page] = tmpl
	}
}

// Render writes the page wrapped in the shared layout. The signed-in user
// and any flash message are injected automatically.
func Render(w http.ResponseWriter, r *http.Request, status int, page string, data Data) {
	tmpl, ok := pages[page]
	if !ok {
		logger.WithCtx(r.Context()).Error("view: unknown page", "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = Data{}
	}
	data["Year"] = time.Now().Year()
	data["Path"] = r.URL.Path

	sess := session.FromCtx(r)
	if u, ok := middleware.SessionUser(sess); ok {
		data["User"] = u
	}
	if msg, ok := sess.GetFlash("message"); ok {
		data["Flash"] = msg
		_ = sess.Save(w)
	}

	// Render to a buffer first so a template error never emits a half page.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		logger.WithCtx(r.Context()).Error("view: render failed", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Message renders the shared notice page used for confirmations and errors.
func Message(w http.ResponseWriter, r *http.Request, status int, title, text string) {
	Render(w, r, status, "message", Data{"Title": title, "Text": text})
}

// NotFound renders the 404 page.
func NotFound(w http.ResponseWriter, r *http.Request) {
	Render(w, r, http.StatusNotFound, "404", Data{"Title": "Page Not Found"})
}

// ServerError renders the 500 page.
func ServerError(w http.ResponseWriter, r *http.Request) {
	Render(w, r, http.StatusInternalServerError, "500", Data{"Title": "Something Went Wrong"})
}
