package view

import (
	"embed"
	"html/template"

	"movieflix/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names
const (
	PageHome       = "home.html"
	PageDetail     = "detail.html"
	PageLogin      = "login.html"
	PageManagement = "management.html"
	PageError      = "error.html"
)

// Funcs returns the template helpers bound to an image base URL
func Funcs(imageBase string) template.FuncMap {
	return template.FuncMap{
		"image": func(size, path string) string {
			return ImageURL(imageBase, size, path)
		},
		"year":     Year,
		"rating":   Rating,
		"runtime":  Runtime,
		"longDate": LongDate,
		"usd":      USD,
		"language": LanguageName,
		"genre": func(m model.MovieSummary) string {
			return m.PrimaryGenre()
		},
	}
}

// Templates parses the embedded page templates
func Templates(imageBase string) (*template.Template, error) {
	return template.New("").Funcs(Funcs(imageBase)).ParseFS(templateFS, "templates/*.html")
}
