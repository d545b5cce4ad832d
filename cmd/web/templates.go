package main

import (
	"html/template"
	"io/fs"
	"path/filepath"

	"github.com/thanushri8950/BookHivewebapp/internal/data"
	"github.com/thanushri8950/BookHivewebapp/ui"
)

type templateData struct {
	FlashInfo       string
	FlashError      string
	Form            any
	IsAuthenticated bool
	Role            string
	User            *data.User
	Books           []*data.Book

	// Per-form rendering state.
	LoginRole   string
	Message     string
	SearchQuery string

	// Dashboard stats.
	TotalBooks     int
	AvailableBooks int
	IssuedBooks    int
	TotalMembers   int
}

func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages, err := fs.Glob(ui.Files, "html/pages/*.html")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)

		patterns := []string{
			"html/base.html",
			"html/partials/*.html",
			page,
		}

		ts, err := template.New(name).ParseFS(ui.Files, patterns...)
		if err != nil {
			return nil, err
		}

		cache[name] = ts
	}

	return cache, nil
}
