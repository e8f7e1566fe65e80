package provider

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"animeapi/provider/internal/domain"

	"github.com/samber/lo"
)

var ErrNoStream = errors.New("no stream available")

// ResolveStream picks a torrent URL from a movie. Empty language or quality
// fall back to the adapter's configured values; if the preferred language is
// missing any language is used, and if the quality is missing the best one is.
func (a *AnimeAPI) ResolveStream(movie *domain.MovieDetail, language, quality string) (string, error) {
	if movie == nil || len(movie.Torrents) == 0 {
		return "", ErrNoStream
	}

	language = lo.Ternary(language != "", language, a.args.Language)
	quality = lo.Ternary(quality != "", quality, a.args.Quality)

	byQuality, ok := movie.Torrents[language]
	if !ok {
		languages := lo.Keys(movie.Torrents)
		sort.Strings(languages)
		byQuality = movie.Torrents[languages[0]]
	}

	url, err := PickQuality(byQuality, quality)
	if err != nil {
		return "", fmt.Errorf("movie %s: %w", movie.MalID, err)
	}
	return url, nil
}

// PickQuality returns the torrent URL for quality, or for the highest
// available quality when it is not offered.
func PickQuality(torrents domain.QualityTorrents, quality string) (string, error) {
	if t, ok := torrents[quality]; ok && t.URL != "" {
		return t.URL, nil
	}

	qualities := lo.Filter(lo.Keys(torrents), func(q string, _ int) bool {
		return torrents[q].URL != ""
	})
	if len(qualities) == 0 {
		return "", ErrNoStream
	}
	sort.Strings(qualities)

	best := lo.MaxBy(qualities, func(a, b string) bool {
		return resolution(a) > resolution(b)
	})
	return torrents[best].URL, nil
}

// resolution parses "720p" as 720; unknown labels rank lowest.
func resolution(quality string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(quality), "p"))
	if err != nil {
		return 0
	}
	return n
}
