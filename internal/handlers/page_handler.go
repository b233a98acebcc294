package handlers

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/verto/internal/common"
)

type PageHandler struct {
	logger    arbor.ILogger
	templates *template.Template
}

func NewPageHandler(logger arbor.ILogger) *PageHandler {
	pagesDir := findPagesDir()

	templates := template.Must(template.ParseGlob(filepath.Join(pagesDir, "*.html")))

	return &PageHandler{
		logger:    logger,
		templates: templates,
	}
}

// findPagesDir locates the pages directory
func findPagesDir() string {
	// Check common locations
	dirs := []string{
		"./pages",     // Running from project root
		"../pages",    // Running from bin/
		"../../pages", // Running from deeper location
		".",           // Current directory (for deployed bin/)
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); err == nil {
			abs, _ := filepath.Abs(dir)
			return abs
		}
	}

	return "."
}

// ServePage creates a handler function for serving a specific page template
func (h *PageHandler) ServePage(templateName string, pageName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && pageName == "home" {
			http.NotFound(w, r)
			return
		}

		data := map[string]interface{}{
			"Page":    pageName,
			"Version": common.GetVersion(),
		}

		if err := h.templates.ExecuteTemplate(w, templateName, data); err != nil {
			h.logger.Error().
				Err(err).
				Str("template", templateName).
				Msg("Failed to render page")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}

// StaticFileHandler serves static files (CSS, JS, images)
func (h *PageHandler) StaticFileHandler(w http.ResponseWriter, r *http.Request) {
	pagesDir := findPagesDir()
	staticDir := filepath.Join(pagesDir, "static")

	path := strings.TrimPrefix(r.URL.Path, "/static/")
	fullPath := filepath.Join(staticDir, filepath.Clean("/"+path))

	// Security check - prevent directory traversal
	if !strings.HasPrefix(fullPath, staticDir) {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, fullPath)
}
