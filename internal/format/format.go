// Package format projects raw catalog records into the summary and detail
// shapes served to the host.
package format

import (
	"fmt"

	"animeapi/provider/internal/domain"
	"animeapi/provider/internal/sanitize"

	"github.com/samber/lo"
)

const (
	country           = "Japan"
	defaultNumSeasons = 1
)

// UnsupportedTypeError is returned for detail records that are neither a
// show nor a movie.
type UnsupportedTypeError struct {
	ID   string
	Type domain.MediaType
}

func (e *UnsupportedTypeError) Error() string {
	if e == nil {
		return "unsupported media type"
	}
	return fmt.Sprintf("unsupported media type %q for anime %s", e.Type, e.ID)
}

// Fetch reshapes a list page. HasMore is always true: the API gives no
// end-of-results signal, so callers page until they get an empty page.
func Fetch(animes []domain.RawAnime) domain.FetchResult {
	results := lo.Map(animes, func(anime domain.RawAnime, _ int) domain.CatalogSummary {
		return Summary(anime)
	})

	return domain.FetchResult{
		Results: sanitize.Summaries(results),
		HasMore: true,
	}
}

func Summary(anime domain.RawAnime) domain.CatalogSummary {
	return domain.CatalogSummary{
		MalID:      anime.ID,
		HaruID:     anime.ID,
		TVDBID:     tvdbID(anime.ID),
		IMDBID:     anime.ID,
		Slug:       anime.Slug,
		Title:      anime.Title,
		Year:       anime.Year,
		Genres:     anime.Genres,
		Rating:     anime.Rating,
		Images:     anime.Images,
		Type:       anime.Type,
		ItemData:   anime.Type,
		NumSeasons: anime.NumSeasons,
	}
}

// Detail builds the detail variant matching the record's media type.
func Detail(anime domain.RawAnime) (domain.CatalogDetail, error) {
	base := domain.DetailBase{
		MalID:    anime.ID,
		HaruID:   anime.ID,
		TVDBID:   tvdbID(anime.ID),
		IMDBID:   anime.ID,
		Slug:     anime.Slug,
		Title:    anime.Title,
		ItemData: anime.Type,
		Country:  country,
		Genre:    anime.Genres,
		Genres:   anime.Genres,
		Runtime:  anime.Runtime,
		Synopsis: anime.Synopsis,
		Network:  []string{},
		Rating:   anime.Rating,
		Images:   anime.Images,
		Year:     anime.Year,
		Type:     anime.Type,
	}

	var detail domain.CatalogDetail
	switch anime.Type {
	case domain.MediaTypeShow:
		numSeasons := anime.NumSeasons
		if numSeasons == 0 {
			numSeasons = defaultNumSeasons
		}
		detail = &domain.ShowDetail{
			DetailBase: base,
			Status:     anime.Status,
			NumSeasons: numSeasons,
			Episodes:   anime.Episodes,
		}
	case domain.MediaTypeMovie:
		detail = &domain.MovieDetail{
			DetailBase: base,
			Torrents:   anime.Torrents,
			Trailer:    anime.Trailer,
		}
	default:
		return nil, &UnsupportedTypeError{ID: anime.ID, Type: anime.Type}
	}

	return sanitize.Detail(detail), nil
}

func tvdbID(id string) string {
	if id == "" {
		return ""
	}
	return "mal-" + id
}
