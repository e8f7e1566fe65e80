package domain

// FetchFilters are the optional list query parameters accepted by Fetch.
type FetchFilters struct {
	Keywords string `json:"keywords,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Sorter   string `json:"sorter,omitempty"`
	Order    string `json:"order,omitempty"`
	Page     int    `json:"page,omitempty"`
}

// CatalogSummary is the list-view projection of a RawAnime.
type CatalogSummary struct {
	MalID      string    `json:"mal_id,omitempty"`
	HaruID     string    `json:"haru_id,omitempty"`
	TVDBID     string    `json:"tvdb_id,omitempty"`
	IMDBID     string    `json:"imdb_id,omitempty"`
	Slug       string    `json:"slug,omitempty"`
	Title      string    `json:"title,omitempty"`
	Year       string    `json:"year,omitempty"`
	Genres     []string  `json:"genres,omitempty"`
	Rating     *Rating   `json:"rating,omitempty"`
	Images     *Images   `json:"images,omitempty"`
	Type       MediaType `json:"type,omitempty"`
	ItemData   MediaType `json:"item_data,omitempty"`
	NumSeasons int       `json:"num_seasons,omitempty"`
}

type FetchResult struct {
	Results []CatalogSummary `json:"results"`
	HasMore bool             `json:"hasMore"`
}
