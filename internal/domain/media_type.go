package domain

type MediaType string

func (m MediaType) String() string {
	return string(m)
}

const (
	MediaTypeShow  MediaType = "show"
	MediaTypeMovie MediaType = "movie"
)

var MediaTypes = []MediaType{
	MediaTypeShow,
	MediaTypeMovie,
}

func (m MediaType) GetTypeName() string {
	switch m {
	case MediaTypeShow:
		return "TV Show"
	case MediaTypeMovie:
		return "Movie"
	default:
		return "Unknown"
	}
}
