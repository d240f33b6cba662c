// Package view renders the HTML pages of the site: template helpers,
// page models and the embedded templates.
package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Image sizes served by the TMDB image CDN
const (
	SizeThumb    = "w200"
	SizeCard     = "w300"
	SizePoster   = "w500"
	SizeOriginal = "original"
)

// ImageURL joins the image base, size and path. An empty path has no URL.
func ImageURL(base, size, path string) string {
	if path == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + size + path
}

// Year returns the year part of an ISO date, or "TBA"
func Year(date string) string {
	year, _, _ := strings.Cut(date, "-")
	if year == "" {
		return "TBA"
	}
	return year
}

// Rating formats a vote average with one decimal
func Rating(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// Runtime formats minutes as "2h 28m"; zero or negative gives ""
func Runtime(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// LongDate formats an ISO date as "July 16, 2010", or "TBA" when missing or unparsable
func LongDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "TBA"
	}
	return t.Format("January 2, 2006")
}

// USD formats a whole-dollar amount as "$63,000,000"
func USD(amount int64) string {
	if amount < 0 {
		return "-$" + humanize.Comma(-amount)
	}
	return "$" + humanize.Comma(amount)
}

// LanguageName returns the English display name of a language code,
// falling back to the code itself
func LanguageName(code string) string {
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return code
	}
	return name
}
