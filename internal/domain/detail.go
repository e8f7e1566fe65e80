package domain

// CatalogDetail is either a *ShowDetail or a *MovieDetail.
type CatalogDetail interface {
	MediaType() MediaType
	Base() *DetailBase
}

// DetailBase is the projection shared by every detail variant.
type DetailBase struct {
	MalID    string    `json:"mal_id,omitempty"`
	HaruID   string    `json:"haru_id,omitempty"`
	TVDBID   string    `json:"tvdb_id,omitempty"`
	IMDBID   string    `json:"imdb_id,omitempty"`
	Slug     string    `json:"slug,omitempty"`
	Title    string    `json:"title,omitempty"`
	ItemData MediaType `json:"item_data,omitempty"`
	Country  string    `json:"country"`
	Genre    []string  `json:"genre,omitempty"`
	Genres   []string  `json:"genres,omitempty"`
	Runtime  string    `json:"runtime,omitempty"`
	Synopsis string    `json:"synopsis,omitempty"`
	Network  []string  `json:"network"`
	Rating   *Rating   `json:"rating,omitempty"`
	Images   *Images   `json:"images,omitempty"`
	Year     string    `json:"year,omitempty"`
	Type     MediaType `json:"type"`
}

func (b *DetailBase) Base() *DetailBase {
	return b
}

type ShowDetail struct {
	DetailBase
	Status     string    `json:"status,omitempty"`
	NumSeasons int       `json:"num_seasons"`
	Episodes   []Episode `json:"episodes,omitempty"`
}

func (s *ShowDetail) MediaType() MediaType {
	return MediaTypeShow
}

type MovieDetail struct {
	DetailBase
	Torrents MovieTorrents `json:"torrents,omitempty"`
	Trailer  string        `json:"trailer,omitempty"`
}

func (m *MovieDetail) MediaType() MediaType {
	return MediaTypeMovie
}
