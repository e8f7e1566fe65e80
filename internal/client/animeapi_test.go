package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"animeapi/provider/internal/config"

	. "github.com/smartystreets/goconvey/convey"
)

// mirrorServer serves /<mirror>/... paths with a per-mirror handler and
// records the order in which mirrors were hit.
type mirrorServer struct {
	*httptest.Server
	mu       sync.Mutex
	hits     []string
	handlers map[string]http.HandlerFunc
}

func newMirrorServer(handlers map[string]http.HandlerFunc) *mirrorServer {
	m := &mirrorServer{handlers: handlers}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mirror := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)[0]
		m.mu.Lock()
		m.hits = append(m.hits, mirror)
		m.mu.Unlock()

		h, ok := m.handlers[mirror]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	return m
}

func (m *mirrorServer) mirror(name string) string {
	return fmt.Sprintf("%s/%s/", m.URL, name)
}

func (m *mirrorServer) Hits() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.hits...)
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func newTestClient(endpoints []string, edgeHost string) AnimeAPIClient {
	c, err := NewAnimeAPIClient(config.AnimeAPIConfig{URL: endpoints, EdgeHost: edgeHost, Timeout: 5}, nil)
	So(err, ShouldBeNil)
	return c
}

func closedServerURL() string {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	u := srv.URL
	srv.Close()
	return u + "/"
}

func TestGetFailover(t *testing.T) {
	ctx := context.Background()

	Convey("Given three mirrors where the first two fail", t, func() {
		srv := newMirrorServer(map[string]http.HandlerFunc{
			"m1": jsonHandler(http.StatusInternalServerError, `{}`),
			"m2": jsonHandler(http.StatusOK, `{"error":true,"status_message":"database down"}`),
			"m3": jsonHandler(http.StatusOK, `[{"_id":"1"}]`),
		})
		defer srv.Close()

		c := newTestClient([]string{srv.mirror("m1"), srv.mirror("m2"), srv.mirror("m3")}, "")
		defer c.Close()

		body, err := c.Get(ctx, 0, "animes/1", nil)

		Convey("Then the last mirror's body is returned", func() {
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, `[{"_id":"1"}]`)
		})

		Convey("Then mirrors are tried once each in order", func() {
			So(srv.Hits(), ShouldResemble, []string{"m1", "m2", "m3"})
		})
	})

	Convey("Given a healthy first mirror", t, func() {
		srv := newMirrorServer(map[string]http.HandlerFunc{
			"m1": jsonHandler(http.StatusOK, `{"_id":"7"}`),
			"m2": jsonHandler(http.StatusOK, `{"_id":"8"}`),
		})
		defer srv.Close()

		c := newTestClient([]string{srv.mirror("m1"), srv.mirror("m2")}, "")
		defer c.Close()

		body, err := c.Get(ctx, 0, "anime/7", nil)

		So(err, ShouldBeNil)
		So(string(body), ShouldEqual, `{"_id":"7"}`)
		So(srv.Hits(), ShouldResemble, []string{"m1"})
	})

	Convey("Given a non-zero start index", t, func() {
		srv := newMirrorServer(map[string]http.HandlerFunc{
			"m1": jsonHandler(http.StatusOK, `{"_id":"1"}`),
			"m2": jsonHandler(http.StatusOK, `{"_id":"2"}`),
		})
		defer srv.Close()

		c := newTestClient([]string{srv.mirror("m1"), srv.mirror("m2")}, "")
		defer c.Close()

		body, err := c.Get(ctx, 1, "anime/2", nil)

		So(err, ShouldBeNil)
		So(string(body), ShouldEqual, `{"_id":"2"}`)
		So(srv.Hits(), ShouldResemble, []string{"m2"})

		Convey("And an out of range index is rejected", func() {
			_, err := c.Get(ctx, 2, "anime/2", nil)
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given every mirror fails", t, func() {
		Convey("When the last failure is a remote error", func() {
			srv := newMirrorServer(map[string]http.HandlerFunc{
				"m2": jsonHandler(http.StatusBadGateway, ``),
				"m3": jsonHandler(http.StatusOK, `{"error":true,"status_message":"Not found"}`),
			})
			defer srv.Close()

			c := newTestClient([]string{closedServerURL(), srv.mirror("m2"), srv.mirror("m3")}, "")
			defer c.Close()

			_, err := c.Get(ctx, 0, "anime/1", nil)

			So(err, ShouldNotBeNil)
			var remote *RemoteError
			So(errors.As(err, &remote), ShouldBeTrue)
			So(remote.Message, ShouldEqual, "Not found")

			var status *HTTPStatusError
			So(errors.As(err, &status), ShouldBeFalse)
		})

		Convey("When the last failure is an HTTP status", func() {
			srv := newMirrorServer(map[string]http.HandlerFunc{
				"m1": jsonHandler(http.StatusOK, `{"error":"boom","status_message":"first"}`),
				"m2": jsonHandler(http.StatusServiceUnavailable, `{}`),
			})
			defer srv.Close()

			c := newTestClient([]string{srv.mirror("m1"), srv.mirror("m2")}, "")
			defer c.Close()

			_, err := c.Get(ctx, 0, "anime/1", nil)

			var status *HTTPStatusError
			So(errors.As(err, &status), ShouldBeTrue)
			So(status.StatusCode, ShouldEqual, http.StatusServiceUnavailable)
		})

		Convey("When the last failure is a transport error", func() {
			srv := newMirrorServer(map[string]http.HandlerFunc{
				"m1": jsonHandler(http.StatusNotFound, `{}`),
			})
			defer srv.Close()

			c := newTestClient([]string{srv.mirror("m1"), closedServerURL()}, "")
			defer c.Close()

			_, err := c.Get(ctx, 0, "anime/1", nil)

			var transport *TransportError
			So(errors.As(err, &transport), ShouldBeTrue)
		})

		Convey("When the only mirror returns an empty body", func() {
			srv := newMirrorServer(map[string]http.HandlerFunc{
				"m1": jsonHandler(http.StatusOK, ``),
			})
			defer srv.Close()

			c := newTestClient([]string{srv.mirror("m1")}, "")
			defer c.Close()

			_, err := c.Get(ctx, 0, "anime/1", nil)

			var empty *EmptyBodyError
			So(errors.As(err, &empty), ShouldBeTrue)
		})
	})

	Convey("Given a body with a falsy error marker", t, func() {
		srv := newMirrorServer(map[string]http.HandlerFunc{
			"m1": jsonHandler(http.StatusOK, `{"_id":"1","error":false}`),
		})
		defer srv.Close()

		c := newTestClient([]string{srv.mirror("m1")}, "")
		defer c.Close()

		_, err := c.Get(ctx, 0, "anime/1", nil)
		So(err, ShouldBeNil)
	})
}

func TestGetRequestShape(t *testing.T) {
	ctx := context.Background()

	Convey("Given a plain endpoint and query parameters", t, func() {
		var seen *http.Request
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r
			jsonHandler(http.StatusOK, `[]`)(w, r)
		}))
		defer srv.Close()

		c := newTestClient([]string{srv.URL + "/"}, "")
		defer c.Close()

		_, err := c.Get(ctx, 0, "animes/2", map[string]string{"sort": "seeds", "keywords": "one% piece"})
		So(err, ShouldBeNil)

		Convey("Then the request is sent unmodified", func() {
			So(seen.URL.Path, ShouldEqual, "/animes/2")
			So(seen.URL.Query().Get("sort"), ShouldEqual, "seeds")
			So(seen.URL.Query().Get("keywords"), ShouldEqual, "one% piece")
			So(seen.Host, ShouldEqual, strings.TrimPrefix(srv.URL, "http://"))
			So(seen.UserAgent(), ShouldNotEqual, LegacyUserAgent)
		})
	})

	Convey("Given a cloudflare+http endpoint", t, func() {
		var seen *http.Request
		edge := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r
			jsonHandler(http.StatusOK, `{"_id":"1"}`)(w, r)
		}))
		defer edge.Close()

		edgeHost := strings.TrimPrefix(edge.URL, "http://")
		c := newTestClient([]string{"cloudflare+http://mirror.example/api/"}, edgeHost)
		defer c.Close()

		_, err := c.Get(ctx, 0, "anime/1", nil)
		So(err, ShouldBeNil)

		Convey("Then it reaches the edge presenting the mirror's host", func() {
			So(seen.Host, ShouldEqual, "mirror.example")
			So(seen.UserAgent(), ShouldEqual, LegacyUserAgent)
			So(seen.URL.Path, ShouldEqual, "/api/anime/1")
		})
	})
}

func TestNewAnimeAPIClient(t *testing.T) {
	Convey("An empty endpoint list is rejected", t, func() {
		_, err := NewAnimeAPIClient(config.AnimeAPIConfig{Timeout: 5}, nil)
		So(err, ShouldNotBeNil)
	})

	Convey("Endpoints returns a copy", t, func() {
		c := newTestClient([]string{"https://a.example/"}, "")
		defer c.Close()

		eps := c.Endpoints()
		eps[0] = "changed"
		So(c.Endpoints()[0], ShouldEqual, "https://a.example/")
	})
}
