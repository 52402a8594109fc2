package shopify

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	DefaultAPIVersion  = "2024-01"
	DefaultTokenHeader = "X-Shopify-Storefront-Access-Token"
	DefaultCacheTTL    = 60 * time.Second
	defaultTimeout     = 10 * time.Second
)

type Config struct {
	// Endpoint overrides the URL derived from StoreDomain and APIVersion.
	Endpoint    string
	StoreDomain string
	APIVersion  string
	Token       string
	// TokenHeader is the header carrying Token. "Authorization" sends a
	// standard bearer token.
	TokenHeader string
	Timeout     time.Duration
	CacheTTL    time.Duration
}

func (c Config) endpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	v := c.APIVersion
	if v == "" {
		v = DefaultAPIVersion
	}
	return "https://" + strings.TrimSuffix(c.StoreDomain, "/") + "/api/" + v + "/graphql.json"
}

// Cache stores decoded-ready response data for catalog reads.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration)
}

// Client talks to the Storefront GraphQL API. It does not retry and does not
// coalesce concurrent identical requests.
type Client struct {
	endpoint   string
	httpClient *http.Client
	cache      Cache
	cacheTTL   time.Duration
}

type Option func(*Client)

func WithCache(c Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.Endpoint == "" && cfg.StoreDomain == "" {
		return nil, errors.New("shopify: store domain or endpoint required")
	}
	if cfg.Token == "" {
		return nil, errors.New("shopify: storefront token required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.TokenHeader == "" {
		cfg.TokenHeader = DefaultTokenHeader
	}
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	c := &Client{
		endpoint:   cfg.endpoint(),
		httpClient: newHTTPClient(cfg),
		cacheTTL:   ttl,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func newHTTPClient(cfg Config) *http.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	var rt http.RoundTripper
	if strings.EqualFold(cfg.TokenHeader, "Authorization") {
		rt = &oauth2.Transport{Source: src, Base: http.DefaultTransport}
	} else {
		rt = &headerTransport{header: cfg.TokenHeader, src: src, base: http.DefaultTransport}
	}
	return &http.Client{Timeout: cfg.Timeout, Transport: rt}
}

// headerTransport puts the token in a custom header instead of Authorization.
type headerTransport struct {
	header string
	src    oauth2.TokenSource
	base   http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tok, err := t.src.Token()
	if err != nil {
		return nil, err
	}
	r2 := req.Clone(req.Context())
	r2.Header.Set(t.header, tok.AccessToken)
	return t.base.RoundTrip(r2)
}

// Request is one GraphQL operation. Only catalog reads set Cacheable; carts
// must always be read fresh.
type Request struct {
	Query     string
	Variables map[string]any
	Cacheable bool
}

type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// TransportError is a network failure (StatusCode 0) or a non-2xx response.
type TransportError struct {
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("shopify: transport: %v", e.Err)
	}
	return fmt.Sprintf("shopify: status %d: %s", e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError is a 2xx response that carried GraphQL or user errors.
type UpstreamError struct {
	Errors []GraphQLError
}

func (e *UpstreamError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		msgs = append(msgs, ge.Message)
	}
	return "shopify: graphql errors: " + strings.Join(msgs, "; ")
}

// Do executes req and decodes the "data" member into out (out may be nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	var key string
	if req.Cacheable && c.cache != nil && c.cacheTTL > 0 {
		key = cacheKey(req)
		if data, ok := c.cache.Get(ctx, key); ok {
			return decodeData(data, out)
		}
	}
	data, err := c.post(ctx, req)
	if err != nil {
		return err
	}
	if key != "" {
		c.cache.Set(ctx, key, data, c.cacheTTL)
	}
	return decodeData(data, out)
}

func (c *Client) post(ctx context.Context, req Request) (json.RawMessage, error) {
	buf, err := json.Marshal(struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables,omitempty"`
	}{req.Query, req.Variables})
	if err != nil {
		return nil, fmt.Errorf("shopify: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Str("endpoint", c.endpoint).Msg("shopify request")
		return nil, &TransportError{Err: err}
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: res.StatusCode, Status: res.Status, Err: err}
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		log.Error().Int("status", res.StatusCode).Str("body", string(body)).Str("endpoint", c.endpoint).Msg("shopify api error")
		return nil, &TransportError{StatusCode: res.StatusCode, Status: res.Status, Body: string(body)}
	}
	var env response
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("shopify: decode response: %w", err)
	}
	if len(env.Errors) > 0 {
		log.Error().Interface("errors", env.Errors).Msg("shopify graphql errors")
		return nil, &UpstreamError{Errors: env.Errors}
	}
	return env.Data, nil
}

func decodeData(data []byte, out any) error {
	if out == nil || len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("shopify: decode data: %w", err)
	}
	return nil
}

func cacheKey(req Request) string {
	h := sha256.New()
	h.Write([]byte(req.Query))
	vars, _ := json.Marshal(req.Variables)
	h.Write(vars)
	return "shopify:" + hex.EncodeToString(h.Sum(nil))
}
