// Package query turns list filters into the query parameters the catalog API expects.
package query

import (
	"regexp"

	"animeapi/provider/internal/domain"
)

const (
	DefaultSort  = "seeds"
	DefaultLimit = "50"

	// SorterPopularity is the host's "no preference" sorter and never reaches the API.
	SorterPopularity = "popularity"
)

// The API's full-text search reads "% " as a word separator.
var whitespaceRegex = regexp.MustCompile(`\s`)

// Build returns the query parameters for filters. Only present filters are
// included, on top of the default sort and limit.
func Build(filters domain.FetchFilters) map[string]string {
	params := map[string]string{
		"sort":  DefaultSort,
		"limit": DefaultLimit,
	}

	if filters.Keywords != "" {
		params["keywords"] = EscapeKeywords(filters.Keywords)
	}
	if filters.Genre != "" {
		params["genre"] = filters.Genre
	}
	if filters.Order != "" {
		params["order"] = filters.Order
	}
	if filters.Sorter != "" && filters.Sorter != SorterPopularity {
		params["sort"] = filters.Sorter
	}

	return params
}

// EscapeKeywords replaces every whitespace character with the literal "% ".
func EscapeKeywords(keywords string) string {
	return whitespaceRegex.ReplaceAllLiteralString(keywords, "% ")
}

// Page returns the requested page, defaulting to 1.
func Page(filters domain.FetchFilters) int {
	if filters.Page <= 0 {
		return 1
	}
	return filters.Page
}
