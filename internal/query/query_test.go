package query

import (
	"testing"

	"animeapi/provider/internal/domain"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBuild(t *testing.T) {
	Convey("Given empty filters", t, func() {
		params := Build(domain.FetchFilters{})

		Convey("Then only the defaults are set", func() {
			So(params, ShouldResemble, map[string]string{
				"sort":  DefaultSort,
				"limit": DefaultLimit,
			})
		})
	})

	Convey("Given keywords with spaces", t, func() {
		params := Build(domain.FetchFilters{Keywords: "one piece  film"})

		Convey("Then every space becomes the literal '% ' sequence", func() {
			So(params["keywords"], ShouldEqual, "one% piece% % film")
		})
	})

	Convey("Given keywords with tabs and newlines", t, func() {
		So(EscapeKeywords("a\tb\nc"), ShouldEqual, "a% b% c")
	})

	Convey("Given keywords without whitespace", t, func() {
		So(EscapeKeywords("naruto%20x"), ShouldEqual, "naruto%20x")
	})

	Convey("Given genre and order", t, func() {
		params := Build(domain.FetchFilters{Genre: "Sci-Fi", Order: "-1"})

		Convey("Then they are passed through verbatim", func() {
			So(params["genre"], ShouldEqual, "Sci-Fi")
			So(params["order"], ShouldEqual, "-1")
		})
	})

	Convey("Given a sorter", t, func() {
		Convey("When it is popularity", func() {
			params := Build(domain.FetchFilters{Sorter: SorterPopularity})
			So(params["sort"], ShouldEqual, DefaultSort)
		})

		Convey("When it is anything else", func() {
			params := Build(domain.FetchFilters{Sorter: "year"})
			So(params["sort"], ShouldEqual, "year")
		})
	})
}

func TestPage(t *testing.T) {
	Convey("Page defaults to 1", t, func() {
		So(Page(domain.FetchFilters{}), ShouldEqual, 1)
		So(Page(domain.FetchFilters{Page: -3}), ShouldEqual, 1)
		So(Page(domain.FetchFilters{Page: 4}), ShouldEqual, 4)
	})
}
