package client

import (
	"net/http"
	"regexp"
)

const (
	DefaultEdgeHost = "cloudflare.com"

	// LegacyUserAgent is sent with edge-routed requests; the edge only lets
	// this client signature through to the virtual host.
	LegacyUserAgent = "Mozilla/5.0 (Linux) AppleWebkit/534.30 (KHTML, like Gecko) PT/3.8.0"
)

// cloudflare+https://mirror.example/path
var edgeSchemeRegex = regexp.MustCompile(`^cloudflare\+([A-Za-z][A-Za-z0-9.-]*)://([^/?#]+)(.*)$`)

// route is where a request for one endpoint actually goes.
type route struct {
	BaseURL   string
	Host      string
	UserAgent string
}

func (r route) spoofed() bool {
	return r.Host != ""
}

// routeFor rewrites "cloudflare+<scheme>://<host>/..." endpoints to
// "<scheme>://<edgeHost>/..." with a Host header naming the original host.
// Any other endpoint is returned unchanged.
func routeFor(endpoint, edgeHost string) route {
	matches := edgeSchemeRegex.FindStringSubmatch(endpoint)
	if matches == nil {
		return route{BaseURL: endpoint}
	}

	return route{
		BaseURL:   matches[1] + "://" + edgeHost + matches[3],
		Host:      matches[2],
		UserAgent: LegacyUserAgent,
	}
}

// hostTransport copies an explicit Host header into Request.Host, which is
// the only place net/http reads it from.
type hostTransport struct {
	Base http.RoundTripper
}

func (t *hostTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	host := req.Header.Get("Host")
	if host == "" {
		return t.Base.RoundTrip(req)
	}

	r := req.Clone(req.Context())
	r.Host = host
	r.Header.Del("Host")
	return t.Base.RoundTrip(r)
}
