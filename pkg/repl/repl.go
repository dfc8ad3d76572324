// Package repl runs the interactive query loop.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minhyannv/askgpt/pkg/completion"
	"github.com/minhyannv/askgpt/pkg/config"
	loggerpkg "github.com/minhyannv/askgpt/pkg/logger"
	"github.com/minhyannv/askgpt/pkg/render"
)

// Sentinel ends the loop. It is matched case-insensitively.
const Sentinel = "exit"

const queryPrompt = "Enter your query ('exit' to quit): "

// Completer answers one query.
type Completer interface {
	Complete(ctx context.Context, cfg config.Config, query string) (completion.Result, error)
}

type options struct {
	renderer *render.Renderer
	logger   loggerpkg.Logger
	verbose  bool
}

// Option configures Run.
type Option func(*options)

// WithRenderer replaces the plain renderer writing to out.
func WithRenderer(r *render.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger, verbose bool) Option {
	return func(o *options) {
		o.logger = l
		o.verbose = verbose
	}
}

// IsSentinel reports whether input ends the loop.
func IsSentinel(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), Sentinel)
}

// Run reads queries from in until the sentinel or end of input. Each query,
// including an empty line, is sent once; failures are reported on errOut and
// the loop continues.
func Run(ctx context.Context, c Completer, cfg config.Config, in io.Reader, out, errOut io.Writer, opts ...Option) error {
	if c == nil {
		return fmt.Errorf("completer is required")
	}
	if in == nil {
		return fmt.Errorf("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if ctx == nil {
		ctx = context.Background()
	}

	o := options{logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.renderer == nil {
		r, err := render.New(out)
		if err != nil {
			return err
		}
		o.renderer = r
	}

	loggerpkg.Debug(o.verbose, o.logger, "repl start", map[string]any{
		"model":     cfg.Model,
		"verbosity": cfg.Verbosity.String(),
	})

	reader := bufio.NewReader(in)

	queries := 0
	for {
		_, _ = fmt.Fprint(out, queryPrompt)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
		if err != nil && line == "" {
			_, _ = fmt.Fprintln(out)
			break
		}

		query := strings.TrimSpace(line)
		if IsSentinel(query) {
			break
		}

		queries++
		res, err := c.Complete(ctx, cfg, query)
		if err != nil {
			loggerpkg.Error(o.logger, "completion failed", map[string]any{"error": err.Error()})
			_, _ = fmt.Fprintf(errOut, "Failed to communicate with the completion API: %v\n", err)
			continue
		}
		o.renderer.Result(cfg, res)
	}

	loggerpkg.Debug(o.verbose, o.logger, "repl stop", map[string]any{"queries": queries})
	return nil
}
