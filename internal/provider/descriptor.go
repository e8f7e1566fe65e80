package provider

import "animeapi/provider/internal/domain"

// Descriptor is the static metadata a host reads before instantiating a provider.
type Descriptor struct {
	Name        string  `json:"name"`
	UniqueID    string  `json:"uniqueId"`
	TabName     string  `json:"tabName"`
	Type        string  `json:"type"`
	Metadata    string  `json:"metadata"`
	Filters     Filters `json:"filters"`
	DefaultArgs Args    `json:"defaults"`
}

type Filters struct {
	Sorters []string `json:"sorters"`
	Genres  []string `json:"genres"`
	Types   []string `json:"types"`
}

// Args are the construction arguments a host passes in.
type Args struct {
	APIURL    []string `json:"apiURL"`
	Language  string   `json:"language,omitempty"`
	Quality   string   `json:"quality,omitempty"`
	Translate string   `json:"translate,omitempty"`
}

func descriptor(defaults Args) Descriptor {
	return Descriptor{
		Name:     "AnimeApi",
		UniqueID: "mal_id",
		TabName:  "AnimeApi",
		Type:     "anime",
		Metadata: "trakttv:anime-metadata",
		Filters: Filters{
			Sorters: []string{"popularity", "name", "year", "updated"},
			Genres:  genres,
			Types:   []string{domain.MediaTypeShow.String(), domain.MediaTypeMovie.String()},
		},
		DefaultArgs: defaults,
	}
}

var genres = []string{
	"All", "Action", "Adventure", "Cars", "Comedy", "Dementia", "Demons",
	"Drama", "Ecchi", "Fantasy", "Game", "Harem", "Historical", "Horror",
	"Josei", "Kids", "Magic", "Martial Arts", "Mecha", "Military", "Music",
	"Mystery", "Parody", "Police", "Psychological", "Romance", "Samurai",
	"School", "Sci-Fi", "Seinen", "Shoujo", "Shoujo Ai", "Shounen",
	"Shounen Ai", "Slice of Life", "Space", "Sports", "Super Power",
	"Supernatural", "Thriller", "Vampire",
}
