package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"animeapi/provider/internal/domain"
	"animeapi/provider/internal/format"
	"animeapi/provider/internal/provider"
	"animeapi/provider/internal/repository"
	"animeapi/provider/internal/state"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// SyncReport summarizes one Sync run.
type SyncReport struct {
	Scope     string `json:"scope"`
	FirstPage int    `json:"first_page"`
	Pages     int    `json:"pages"`
	Saved     int64  `json:"saved"`
	Skipped   int64  `json:"skipped"`
	Failed    int64  `json:"failed"`
	Completed bool   `json:"completed"`
}

// Service snapshots the remote catalog into the repository.
type Service struct {
	provider     provider.Provider
	repository   repository.AnimeRepository
	stateManager state.StateManager
	workers      int
	maxPages     int
}

func NewService(
	provider provider.Provider,
	repository repository.AnimeRepository,
	stateManager state.StateManager,
	workers int,
	maxPages int,
) *Service {
	return &Service{
		provider:     provider,
		repository:   repository,
		stateManager: stateManager,
		workers:      max(1, workers),
		maxPages:     maxPages,
	}
}

// Sync pages through the catalog from where the last run stopped until a
// page comes back empty (or maxPages is reached), storing every detail.
// A page with failed items is not checkpointed and ends the run, so the next
// run starts again from it. A page fetch failure stops the run with an error.
func (s *Service) Sync(ctx context.Context, filters domain.FetchFilters) (*SyncReport, error) {
	scope := ScopeKey(filters)

	lastPage, err := s.stateManager.GetLastSyncedPage(ctx, scope)
	if err != nil {
		return nil, err
	}

	report := &SyncReport{Scope: scope, FirstPage: lastPage + 1}
	if lastPage > 0 {
		log.Infof("🔄 Continue %s from page %d", scope, report.FirstPage)
	}

	for page := report.FirstPage; s.maxPages <= 0 || report.Pages < s.maxPages; page++ {
		filters.Page = page
		result, err := s.provider.Fetch(ctx, filters)
		if err != nil {
			return report, fmt.Errorf("failed to fetch page %d: %w", page, err)
		}

		if len(result.Results) == 0 {
			log.Infof("✅ Reached the end of %s at page %d", scope, page)
			report.Completed = true
			if err := s.stateManager.Reset(ctx, scope); err != nil {
				return report, err
			}
			break
		}

		failed, err := s.syncPage(ctx, result, report)
		if err != nil {
			return report, err
		}
		report.Pages++

		if failed > 0 {
			log.Warnf("⚠️ Page %d of %s had %d failed items, stopping so a rerun retries it", page, scope, failed)
			break
		}

		if err := s.stateManager.SetLastSyncedPage(ctx, scope, page); err != nil {
			return report, err
		}
		log.Infof("Synced page %d of %s: %d items", page, scope, len(result.Results))
	}

	log.Infof("✅ Sync finished: %d pages, %d saved, %d skipped, %d failed",
		report.Pages, report.Saved, report.Skipped, report.Failed)

	return report, nil
}

// syncPage stores the details of one page and returns how many failed.
func (s *Service) syncPage(ctx context.Context, result domain.FetchResult, report *SyncReport) (int64, error) {
	var saved, skipped, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, id := range provider.ExtractIDs(result) {
		g.Go(func() error {
			detail, err := s.provider.Detail(gctx, id)
			if err != nil {
				var unsupported *format.UnsupportedTypeError
				if errors.As(err, &unsupported) {
					log.Warnf("Skipping anime %s: %v", id, err)
					skipped.Add(1)
					return nil
				}
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Errorf("❌ Failed to get detail for %s: %v", id, err)
				failed.Add(1)
				return nil
			}

			if err := s.repository.SaveDetail(gctx, detail); err != nil {
				log.Errorf("❌ Failed to save anime %s: %v", id, err)
				failed.Add(1)
				return nil
			}

			saved.Add(1)
			return nil
		})
	}

	err := g.Wait()

	report.Saved += saved.Load()
	report.Skipped += skipped.Load()
	report.Failed += failed.Load()

	return failed.Load(), err
}

// ScopeKey names the progress record for a filter set. The page is ignored.
func ScopeKey(filters domain.FetchFilters) string {
	parts := []string{
		"keywords=" + strings.ToLower(strings.TrimSpace(filters.Keywords)),
		"genre=" + filters.Genre,
		"sorter=" + filters.Sorter,
		"order=" + filters.Order,
	}
	return strings.Join(parts, ";")
}
