// Package sanitize strips markup and unsafe links from shaped records before
// they are handed to the host.
package sanitize

import (
	"net/url"
	"slices"
	"strings"

	"animeapi/provider/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

var allowedSchemes = []string{"http", "https", "magnet"}

// String removes HTML tags and decodes entities.
func String(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		log.Debugf("Failed to parse text for sanitizing: %v", err)
		return s
	}
	doc.Find("script, style, iframe, object").Remove()

	return strings.TrimSpace(doc.Text())
}

// URL returns u unchanged when it uses an allowed scheme, and "" otherwise.
func URL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}

	parsed, err := url.Parse(u)
	if err != nil || !lo.Contains(allowedSchemes, strings.ToLower(parsed.Scheme)) {
		log.Debugf("Dropping unsafe URL %q", u)
		return ""
	}
	return u
}

func Strings(values []string) []string {
	if values == nil {
		return nil
	}
	return lo.Map(values, func(v string, _ int) string { return String(v) })
}

func Summaries(items []domain.CatalogSummary) []domain.CatalogSummary {
	return lo.Map(items, func(item domain.CatalogSummary, _ int) domain.CatalogSummary {
		return Summary(item)
	})
}

func Summary(s domain.CatalogSummary) domain.CatalogSummary {
	s.Slug = String(s.Slug)
	s.Title = String(s.Title)
	s.Year = String(s.Year)
	s.Genres = Strings(s.Genres)
	s.Images = images(s.Images)
	return s
}

// Detail sanitizes d in place and returns it. Episode and torrent
// collections are replaced with cleaned copies.
func Detail(d domain.CatalogDetail) domain.CatalogDetail {
	base := d.Base()
	base.Slug = String(base.Slug)
	base.Title = String(base.Title)
	base.Genre = Strings(base.Genre)
	base.Genres = Strings(base.Genres)
	base.Runtime = String(base.Runtime)
	base.Synopsis = String(base.Synopsis)
	base.Network = Strings(base.Network)
	base.Images = images(base.Images)
	base.Year = String(base.Year)

	switch v := d.(type) {
	case *domain.ShowDetail:
		v.Status = String(v.Status)
		v.Episodes = slices.Clone(v.Episodes)
		for i := range v.Episodes {
			v.Episodes[i].Title = String(v.Episodes[i].Title)
			v.Episodes[i].Overview = String(v.Episodes[i].Overview)
			v.Episodes[i].Torrents = torrents(v.Episodes[i].Torrents)
		}
	case *domain.MovieDetail:
		v.Trailer = URL(v.Trailer)
		if v.Torrents != nil {
			v.Torrents = lo.MapValues(v.Torrents, func(byQuality domain.QualityTorrents, _ string) domain.QualityTorrents {
				return torrents(byQuality)
			})
		}
	}

	return d
}

func images(img *domain.Images) *domain.Images {
	if img == nil {
		return nil
	}
	return &domain.Images{
		Poster: URL(img.Poster),
		Fanart: URL(img.Fanart),
		Banner: URL(img.Banner),
	}
}

func torrents(in domain.QualityTorrents) domain.QualityTorrents {
	if in == nil {
		return nil
	}
	out := make(domain.QualityTorrents, len(in))
	for quality, t := range in {
		t.URL = URL(t.URL)
		t.Provider = String(t.Provider)
		t.Filesize = String(t.Filesize)
		out[quality] = t
	}
	return out
}
