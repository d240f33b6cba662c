package catalog

import (
	"fmt"
	"strings"
)

// Mode selects which catalog fetch a query performs
type Mode int

const (
	// ModeAll fetches BulkPages pages of popular movies
	ModeAll Mode = iota
	// ModePopular fetches the first popular page
	ModePopular
	// ModeSearch fetches the first page of title search results
	ModeSearch
)

var modeNames = map[Mode]string{
	ModeAll:     "all",
	ModePopular: "popular",
	ModeSearch:  "search",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// IsCategory reports whether m is a browsable category rather than a search
func (m Mode) IsCategory() bool {
	return m == ModeAll || m == ModePopular
}

// ParseCategory parses a category name; search is not a category
func ParseCategory(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return ModeAll, nil
	case "popular":
		return ModePopular, nil
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// Query is the user's current browse or search intent
type Query struct {
	Mode       Mode   `json:"mode"`
	SearchTerm string `json:"search_term,omitempty"`
}

// CategoryQuery returns the query that loads a category's default list
func CategoryQuery(m Mode) Query {
	return Query{Mode: m}
}

// SearchQuery returns the query for term. A blank term resolves to the active
// category's default list instead of a search.
func SearchQuery(term string, active Mode) Query {
	term = strings.TrimSpace(term)
	if term == "" {
		return CategoryQuery(active)
	}
	return Query{Mode: ModeSearch, SearchTerm: term}
}

// MarshalText encodes the mode by name
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name, including "search"
func (m *Mode) UnmarshalText(b []byte) error {
	if strings.EqualFold(strings.TrimSpace(string(b)), "search") {
		*m = ModeSearch
		return nil
	}
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
