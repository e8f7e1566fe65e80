package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"animeapi/provider/internal/config"
	"animeapi/provider/internal/proxy"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// AnimeAPIClient issues GET requests against an ordered list of mirrors.
type AnimeAPIClient interface {
	// Get tries endpoints from index onward, one attempt each, and returns the
	// first successful JSON body.
	Get(ctx context.Context, index int, path string, params map[string]string) ([]byte, error)
	Endpoints() []string
	Close() error
}

type animeAPIClient struct {
	endpoints  []string
	edgeHost   string
	httpClient *resty.Client
}

func NewAnimeAPIClient(cfg config.AnimeAPIConfig, proxySupplier proxy.ProxySupplier) (AnimeAPIClient, error) {
	if len(cfg.URL) == 0 {
		return nil, errors.New("at least one AnimeApi endpoint is required")
	}

	edgeHost := cfg.EdgeHost
	if edgeHost == "" {
		edgeHost = DefaultEdgeHost
	}

	base := http.DefaultTransport.(*http.Transport).Clone()
	base.TLSHandshakeTimeout = 10 * time.Second
	base.ResponseHeaderTimeout = 15 * time.Second

	if proxySupplier != nil && proxySupplier.Len() > 0 {
		base.Proxy = rotatingProxy(proxySupplier)
		log.Infof("🔗 Rotating through %d proxies", proxySupplier.Len())
	}

	client := resty.New().
		SetTransport(&hostTransport{Base: base}).
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(0).
		SetHeader("User-Agent", defaultUserAgent).
		SetHeader("Accept", "application/json")

	return &animeAPIClient{
		endpoints:  append([]string(nil), cfg.URL...),
		edgeHost:   edgeHost,
		httpClient: client,
	}, nil
}

// rotatingProxy takes the next proxy from supplier for every outgoing request,
// so each endpoint attempt goes out through a different proxy.
func rotatingProxy(supplier proxy.ProxySupplier) func(*http.Request) (*url.URL, error) {
	return func(req *http.Request) (*url.URL, error) {
		proxyURL := supplier.Get()
		if proxyURL == "" {
			return nil, nil
		}

		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", proxyURL, err)
		}
		log.Debugf("Using proxy %s for %s", proxyURL, req.URL.Host)
		return u, nil
	}
}

func (c *animeAPIClient) Endpoints() []string {
	return append([]string(nil), c.endpoints...)
}

func (c *animeAPIClient) Close() error {
	return c.httpClient.Close()
}

func (c *animeAPIClient) Get(ctx context.Context, index int, path string, params map[string]string) ([]byte, error) {
	if index < 0 || index >= len(c.endpoints) {
		return nil, fmt.Errorf("endpoint index %d out of range [0, %d)", index, len(c.endpoints))
	}

	var lastErr error
	for i := index; i < len(c.endpoints); i++ {
		body, err := c.getOnce(ctx, c.endpoints[i], path, params)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}

		lastErr = err
		log.Warnf("AnimeApi endpoint '%s' failed: %v", c.endpoints[i], err)
	}

	return nil, fmt.Errorf("all AnimeApi endpoints failed: %w", lastErr)
}

// getOnce performs exactly one request against endpoint.
func (c *animeAPIClient) getOnce(ctx context.Context, endpoint, path string, params map[string]string) ([]byte, error) {
	r := routeFor(endpoint, c.edgeHost)
	reqURL := joinURL(r.BaseURL, path)

	req := c.httpClient.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	if r.spoofed() {
		req.SetHeader("Host", r.Host).
			SetHeader("User-Agent", r.UserAgent)
	}

	log.Infof("Request to AnimeApi: %s", reqURL)

	resp, err := req.Get(reqURL)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	if resp.IsError() {
		return nil, &HTTPStatusError{Endpoint: endpoint, StatusCode: resp.StatusCode(), Status: resp.Status()}
	}

	body := bytes.TrimSpace([]byte(resp.String()))
	if len(body) == 0 || bytes.Equal(body, []byte("null")) || !json.Valid(body) {
		return nil, &EmptyBodyError{Endpoint: endpoint}
	}

	if message, failed := remoteFailure(body); failed {
		log.Errorf("AnimeApi error: %s", message)
		return nil, &RemoteError{Endpoint: endpoint, Message: message}
	}

	return body, nil
}

type errorEnvelope struct {
	Error         json.RawMessage `json:"error"`
	StatusMessage string          `json:"status_message"`
}

// remoteFailure reports whether body is an object carrying a truthy "error" marker.
func remoteFailure(body []byte) (string, bool) {
	if body[0] != '{' {
		return "", false
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", false
	}

	switch strings.TrimSpace(string(envelope.Error)) {
	case "", "null", "false", "0", `""`:
		return "", false
	}

	if envelope.StatusMessage == "" {
		return "unknown error", true
	}
	return envelope.StatusMessage, true
}

func joinURL(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// ProbeURL is the URL a connectivity check for endpoint should hit.
func ProbeURL(endpoint, edgeHost string) string {
	if edgeHost == "" {
		edgeHost = DefaultEdgeHost
	}
	return routeFor(endpoint, edgeHost).BaseURL
}
