package completion

import (
	"net/http"

	loggerpkg "github.com/minhyannv/askgpt/pkg/logger"
)

// Option configures optional Client dependencies.
type Option func(*clientDeps)

type clientDeps struct {
	baseURL    string
	style      Style
	logger     loggerpkg.Logger
	verbose    bool
	httpClient *http.Client
}

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(url string) Option {
	return func(d *clientDeps) {
		d.baseURL = url
	}
}

// WithStyle selects the endpoint style.
func WithStyle(s Style) Option {
	return func(d *clientDeps) {
		d.style = s
	}
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *clientDeps) {
		d.logger = l
	}
}

// WithVerbose enables request/response debug logging.
func WithVerbose(v bool) Option {
	return func(d *clientDeps) {
		d.verbose = v
	}
}

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(d *clientDeps) {
		d.httpClient = c
	}
}
