// Package provider implements the AnimeApi catalog adapter consumed by the
// media-browsing host.
package provider

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"animeapi/provider/internal/client"
	"animeapi/provider/internal/config"
	"animeapi/provider/internal/domain"
	"animeapi/provider/internal/format"
	"animeapi/provider/internal/query"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// Provider is what the host calls.
type Provider interface {
	Descriptor() Descriptor
	Fetch(ctx context.Context, filters domain.FetchFilters) (domain.FetchResult, error)
	Detail(ctx context.Context, id string) (domain.CatalogDetail, error)
}

type AnimeAPI struct {
	client client.AnimeAPIClient
	args   Args
}

var _ Provider = (*AnimeAPI)(nil)

func NewAnimeAPI(cfg config.AnimeAPIConfig, c client.AnimeAPIClient) *AnimeAPI {
	return &AnimeAPI{
		client: c,
		args: Args{
			APIURL:    c.Endpoints(),
			Language:  cfg.Language,
			Quality:   cfg.Quality,
			Translate: cfg.Translate,
		},
	}
}

func (a *AnimeAPI) Descriptor() Descriptor {
	return descriptor(a.args)
}

func (a *AnimeAPI) Args() Args {
	return a.args
}

// Fetch returns one page of catalog summaries.
func (a *AnimeAPI) Fetch(ctx context.Context, filters domain.FetchFilters) (domain.FetchResult, error) {
	params := query.Build(filters)
	path := "animes/" + strconv.Itoa(query.Page(filters))

	body, err := a.client.Get(ctx, 0, path, params)
	if err != nil {
		return domain.FetchResult{}, fmt.Errorf("failed to fetch anime list: %w", err)
	}

	animes, err := decodeList(body)
	if err != nil {
		return domain.FetchResult{}, fmt.Errorf("failed to decode anime list: %w", err)
	}

	log.Debugf("Fetched %d animes for page %d", len(animes), query.Page(filters))
	return format.Fetch(animes), nil
}

// Detail returns the show or movie detail for id.
func (a *AnimeAPI) Detail(ctx context.Context, id string) (domain.CatalogDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("anime id is required")
	}
	return a.detail(ctx, "anime/"+url.PathEscape(id))
}

// Random returns the detail of a random catalog entry.
func (a *AnimeAPI) Random(ctx context.Context) (domain.CatalogDetail, error) {
	return a.detail(ctx, "random/anime")
}

func (a *AnimeAPI) detail(ctx context.Context, path string) (domain.CatalogDetail, error) {
	body, err := a.client.Get(ctx, 0, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}

	var anime domain.RawAnime
	if err := json.Unmarshal(body, &anime); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return format.Detail(anime)
}

// ExtractIDs returns the unique ids of a fetch result in order.
func ExtractIDs(result domain.FetchResult) []string {
	return lo.Map(result.Results, func(s domain.CatalogSummary, _ int) string {
		return s.MalID
	})
}

// decodeList accepts a bare array or an object with a "results" array.
func decodeList(body []byte) ([]domain.RawAnime, error) {
	var animes []domain.RawAnime
	if len(body) > 0 && body[0] == '[' {
		if err := json.Unmarshal(body, &animes); err != nil {
			return nil, err
		}
		return animes, nil
	}

	var envelope struct {
		Results []domain.RawAnime `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	return envelope.Results, nil
}
