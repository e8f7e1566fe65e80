package repository

import (
	"context"
	"fmt"

	"animeapi/provider/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

type AnimeRepository interface {
	EnsureSchema(ctx context.Context) error
	SaveDetail(ctx context.Context, detail domain.CatalogDetail) error
}

// Executor is satisfied by *pgxpool.Pool and pgx.Tx.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type animeRepository struct {
	db Executor
}

func NewAnimeRepository(db Executor) AnimeRepository {
	return &animeRepository{
		db: db,
	}
}

func (r *animeRepository) EnsureSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS anime_details (
		id        TEXT PRIMARY KEY,
		type      TEXT NOT NULL,
		title     TEXT NOT NULL DEFAULT '',
		data      JSONB NOT NULL,
		synced_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create anime_details table: %w", err)
	}
	return nil
}

func (r *animeRepository) SaveDetail(ctx context.Context, detail domain.CatalogDetail) error {
	base := detail.Base()
	query := `
	INSERT INTO anime_details (id, type, title, data, synced_at)
	VALUES ($1, $2, $3, $4, now())
	ON CONFLICT (id)
	DO UPDATE SET type = $2, title = $3, data = $4, synced_at = now()`
	_, err := r.db.Exec(ctx, query, base.MalID, detail.MediaType().String(), base.Title, detail)
	if err != nil {
		return fmt.Errorf("failed to save anime %s: %w", base.MalID, err)
	}

	return nil
}
