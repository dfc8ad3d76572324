// Package completion sends one query to the remote completion API and
// extracts the answer text.
package completion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/minhyannv/askgpt/pkg/config"
	loggerpkg "github.com/minhyannv/askgpt/pkg/logger"
)

// DefaultBaseURL is the API root used when no base URL is configured.
const DefaultBaseURL = "https://api.openai.com/v1"

const legacyTemperature = 0.7

var errInvalidResponse = errors.New("response body is not valid JSON")

// Result is one answered query.
type Result struct {
	// Answer is the trimmed answer text; empty when the response has none.
	Answer string
	// Raw is the unmodified response body.
	Raw []byte
}

// APIError is returned for transport failures and non-2xx responses.
type APIError struct {
	// StatusCode is zero when no HTTP response was received.
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("completion API returned status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("completion request failed: %v", e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// Client issues completion requests. It never retries.
type Client struct {
	client  openai.Client
	style   Style
	logger  loggerpkg.Logger
	verbose bool
}

// New builds a Client authenticating with apiKey.
func New(apiKey string, opts ...Option) *Client {
	deps := clientDeps{
		baseURL: DefaultBaseURL,
		style:   LegacyCompletion,
		logger:  loggerpkg.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	if strings.TrimSpace(deps.baseURL) == "" {
		deps.baseURL = DefaultBaseURL
	}

	return &Client{
		client:  newOpenAIClient(apiKey, deps),
		style:   deps.style,
		logger:  deps.logger,
		verbose: deps.verbose,
	}
}

func newOpenAIClient(apiKey string, deps clientDeps) openai.Client {
	opts := []option.RequestOption{
		option.WithBaseURL(deps.baseURL),
		option.WithMaxRetries(0),
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if deps.httpClient != nil {
		opts = append(opts, option.WithHTTPClient(deps.httpClient))
	}
	return openai.NewClient(opts...)
}

// Style returns the endpoint style the client uses.
func (c *Client) Style() Style {
	return c.style
}

// Complete sends query with the context and token budget of cfg and returns
// the answer. A response without an answer field yields an empty answer.
func (c *Client) Complete(ctx context.Context, cfg config.Config, query string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	loggerpkg.Debug(c.verbose, c.logger, "completion request", map[string]any{
		"style":      c.style.String(),
		"model":      cfg.Model,
		"max_tokens": cfg.MaxTokens,
		"bytes":      len(query),
	})

	var (
		raw []byte
		err error
	)
	switch c.style {
	case ChatCompletion:
		raw, err = c.chat(ctx, cfg, query)
	default:
		raw, err = c.legacy(ctx, cfg, query)
	}
	if err != nil {
		loggerpkg.Debug(c.verbose, c.logger, "completion request failed", map[string]any{
			"error": err.Error(),
		})
		return Result{}, wrapError(err)
	}

	answer := ExtractAnswer(c.style, raw)
	loggerpkg.Debug(c.verbose, c.logger, "completion response", map[string]any{
		"bytes":        len(raw),
		"answer_bytes": len(answer),
	})
	return Result{Answer: answer, Raw: raw}, nil
}

func (c *Client) legacy(ctx context.Context, cfg config.Config, query string) ([]byte, error) {
	body, err := LegacyRequest(cfg, query)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	var raw []byte
	if err := c.client.Post(ctx, LegacyPath(cfg.Model), json.RawMessage(body), &raw); err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(raw) {
		return nil, errInvalidResponse
	}
	return raw, nil
}

func (c *Client) chat(ctx context.Context, cfg config.Config, query string) ([]byte, error) {
	completion, err := c.client.Chat.Completions.New(ctx, ChatRequest(cfg, query))
	if err != nil {
		return nil, err
	}
	return []byte(completion.RawJSON()), nil
}

// LegacyPath is the request path, relative to the base URL, for model.
func LegacyPath(model string) string {
	return "engines/" + url.PathEscape(model) + "/completions"
}

// LegacyRequest builds the /engines/{model}/completions body. The prompt is
// the configured context and the query joined by a newline.
func LegacyRequest(cfg config.Config, query string) ([]byte, error) {
	body := []byte(`{}`)
	fields := []struct {
		path  string
		value any
	}{
		{"prompt", cfg.Context + "\n" + query},
		{"max_tokens", cfg.MaxTokens},
		{"temperature", legacyTemperature},
		{"n", 1},
	}
	for _, f := range fields {
		var err error
		body, err = sjson.SetBytes(body, f.path, f.value)
		if err != nil {
			return nil, fmt.Errorf("set %s: %w", f.path, err)
		}
	}
	return body, nil
}

// ChatRequest builds the /chat/completions parameters: the configured context
// as the system message and the query as the user message.
func ChatRequest(cfg config.Config, query string) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(cfg.Model),
		MaxTokens: openai.Int(int64(cfg.MaxTokens)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(cfg.Context),
			openai.UserMessage(query),
		},
	}
}

// ExtractAnswer reads the answer text for style from a response body.
func ExtractAnswer(style Style, raw []byte) string {
	return strings.TrimSpace(gjson.GetBytes(raw, style.answerPath()).String())
}

func wrapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &APIError{StatusCode: apiErr.StatusCode, Err: err}
	}
	return &APIError{Err: err}
}
