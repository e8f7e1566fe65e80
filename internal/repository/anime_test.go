package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"animeapi/provider/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	. "github.com/smartystreets/goconvey/convey"
)

type execCall struct {
	sql  string
	args []any
}

type fakeExecutor struct {
	calls []execCall
	err   error
}

func (f *fakeExecutor) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: arguments})
	return pgconn.CommandTag{}, f.err
}

func TestAnimeRepository(t *testing.T) {
	ctx := context.Background()

	Convey("Given a repository", t, func() {
		db := &fakeExecutor{}
		repo := NewAnimeRepository(db)

		Convey("EnsureSchema creates the details table", func() {
			So(repo.EnsureSchema(ctx), ShouldBeNil)
			So(db.calls, ShouldHaveLength, 1)
			So(db.calls[0].sql, ShouldContainSubstring, "CREATE TABLE IF NOT EXISTS anime_details")
		})

		Convey("SaveDetail upserts by id with type and title", func() {
			movie := &domain.MovieDetail{DetailBase: domain.DetailBase{MalID: "5", Title: "Cowboy Bebop: The Movie"}}

			So(repo.SaveDetail(ctx, movie), ShouldBeNil)
			So(db.calls, ShouldHaveLength, 1)
			So(strings.Contains(db.calls[0].sql, "ON CONFLICT (id)"), ShouldBeTrue)
			So(db.calls[0].args[:3], ShouldResemble, []any{"5", "movie", "Cowboy Bebop: The Movie"})
			So(db.calls[0].args[3], ShouldEqual, movie)
		})

		Convey("A database error names the anime", func() {
			db.err = errors.New("relation does not exist")

			err := repo.SaveDetail(ctx, &domain.ShowDetail{DetailBase: domain.DetailBase{MalID: "1"}})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "anime 1")
			So(errors.Is(err, db.err), ShouldBeTrue)
		})
	})
}
