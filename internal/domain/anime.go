package domain

// Images holds artwork URLs as served by the remote API.
type Images struct {
	Poster string `json:"poster,omitempty"`
	Fanart string `json:"fanart,omitempty"`
	Banner string `json:"banner,omitempty"`
}

type Rating struct {
	Percentage int `json:"percentage"`
	Watching   int `json:"watching"`
	Votes      int `json:"votes"`
	Loved      int `json:"loved"`
	Hated      int `json:"hated"`
}

type Torrent struct {
	URL      string `json:"url"`
	Seeds    int    `json:"seeds"`
	Peers    int    `json:"peers"`
	Size     int64  `json:"size,omitempty"`
	Filesize string `json:"filesize,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// QualityTorrents maps a quality label ("480p", "720p", "1080p") to a torrent.
type QualityTorrents map[string]Torrent

// MovieTorrents maps a language code to the torrents available in it.
type MovieTorrents map[string]QualityTorrents

type Episode struct {
	TVDBID     int             `json:"tvdb_id,omitempty"`
	Season     int             `json:"season"`
	Episode    int             `json:"episode"`
	Title      string          `json:"title,omitempty"`
	Overview   string          `json:"overview,omitempty"`
	FirstAired int64           `json:"first_aired,omitempty"`
	Torrents   QualityTorrents `json:"torrents,omitempty"`
}

// RawAnime is one record as returned by the remote catalog API.
type RawAnime struct {
	ID          string        `json:"_id"`
	Slug        string        `json:"slug,omitempty"`
	Title       string        `json:"title,omitempty"`
	Year        string        `json:"year,omitempty"`
	Genres      []string      `json:"genres,omitempty"`
	Rating      *Rating       `json:"rating,omitempty"`
	Images      *Images       `json:"images,omitempty"`
	Type        MediaType     `json:"type,omitempty"`
	Synopsis    string        `json:"synopsis,omitempty"`
	Runtime     string        `json:"runtime,omitempty"`
	Status      string        `json:"status,omitempty"`
	NumSeasons  int           `json:"num_seasons,omitempty"`
	Episodes    []Episode     `json:"episodes,omitempty"`
	Torrents    MovieTorrents `json:"torrents,omitempty"`
	Trailer     string        `json:"trailer,omitempty"`
	LastUpdated int64         `json:"last_updated,omitempty"`
}
