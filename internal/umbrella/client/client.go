package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/umbrella-tools/umbrella-reports/internal/umbrella/auth"
)

// Fallbacks used when neither the call nor the instance supplies a value.
const (
	fallbackFrom = "-1day"
	fallbackTo   = "now"
	defaultLimit = 100
)

// ReportClient is the capability the reports layer builds on: parameter
// resolution plus an authenticated GET against a fixed endpoint path.
type ReportClient interface {
	// BuildParams resolves per-call overrides into a complete query mapping
	BuildParams(p Params) (url.Values, error)
	// Get issues an authenticated GET and returns the JSON body as-is
	Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
}

// Defaults holds instance-level request defaults, set at construction and
// overridable per call. Nil pointer fields are unset; zero is a real value
// for both size and page.
type Defaults struct {
	From string
	To   string
	Size *int
	Page *int
}

// Config holds client configuration
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Logger   Logger
	Defaults Defaults
}

// defaultLogger is the default no-op logger instance
var defaultLogger = &noopLogger{}

// DefaultConfig returns a default client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://api.umbrella.com/reports/v2",
		Timeout: 60 * time.Second,
		Logger:  defaultLogger,
	}
}

// Params carries per-call overrides for a single request. Unset fields
// (empty strings, nil pointers) fall back to the instance defaults, then to
// the hardcoded fallbacks; an explicit zero size or page is honoured. Extra
// carries endpoint-specific query keys through verbatim.
type Params struct {
	From  string
	To    string
	Size  *int
	Page  *int
	Extra url.Values
}

// Int returns a pointer to v, for setting the optional Params fields inline.
func Int(v int) *int {
	return &v
}

// client implements the ReportClient interface
type client struct {
	httpClient *httpClient
	auth       *auth.Auth
	defaults   Defaults
	logger     Logger
	now        func() time.Time
}

// New creates a new Umbrella reporting API client
func New(a *auth.Auth, config Config) (ReportClient, error) {
	if a == nil {
		return nil, fmt.Errorf("auth is required")
	}
	if config.Logger == nil {
		config.Logger = defaultLogger
	}

	return &client{
		httpClient: newHTTPClient(config),
		auth:       a,
		defaults:   config.Defaults,
		logger:     config.Logger,
		now:        time.Now,
	}, nil
}

// BuildParams merges per-call overrides over the instance defaults over the
// hardcoded fallbacks, key by key, resolving time filters as it goes. Every
// key of {from, to, limit, offset} ends up set.
func (c *client) BuildParams(p Params) (url.Values, error) {
	now := c.now()

	from, err := resolveTimeSpec(firstNonEmpty(p.From, c.defaults.From, fallbackFrom), now)
	if err != nil {
		return nil, err
	}
	to, err := resolveTimeSpec(firstNonEmpty(p.To, c.defaults.To, fallbackTo), now)
	if err != nil {
		return nil, err
	}

	size := defaultLimit
	if c.defaults.Size != nil {
		size = *c.defaults.Size
	}
	if p.Size != nil {
		size = *p.Size
	}

	page := 0
	if c.defaults.Page != nil {
		page = *c.defaults.Page
	}
	if p.Page != nil {
		page = *p.Page
	}

	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)
	query.Set("limit", strconv.Itoa(size))
	query.Set("offset", strconv.Itoa(page))

	for key, values := range p.Extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	return query, nil
}

// Get implements ReportClient.Get
func (c *client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	token, err := c.auth.Bearer(ctx)
	if err != nil {
		return nil, &TokenError{Err: err}
	}
	return c.httpClient.doGet(ctx, path, query, token)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
