// Package render prints answers, raw API responses and configurations.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"

	"github.com/minhyannv/askgpt/pkg/completion"
	"github.com/minhyannv/askgpt/pkg/config"
)

const defaultWrapWidth = 100

var (
	answerLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")) // cyan
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))            // gray
)

// Renderer writes query results to an output stream.
type Renderer struct {
	out      io.Writer
	color    bool
	markdown *glamour.TermRenderer
}

// Option configures a Renderer.
type Option func(*Renderer) error

// WithColor enables ANSI styling of labels and raw JSON.
func WithColor(enabled bool) Option {
	return func(r *Renderer) error {
		r.color = enabled
		return nil
	}
}

// WithMarkdown renders answers as terminal markdown wrapped at width.
func WithMarkdown(width int) Option {
	return func(r *Renderer) error {
		if width <= 0 {
			width = defaultWrapWidth
		}
		md, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return fmt.Errorf("init markdown renderer: %w", err)
		}
		r.markdown = md
		return nil
	}
}

// New builds a Renderer writing to out.
func New(out io.Writer, opts ...Option) (*Renderer, error) {
	if out == nil {
		out = io.Discard
	}
	r := &Renderer{out: out}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Result prints res according to the verbosity of cfg: the configuration
// (Extended), the raw response (Full, Extended), then the answer.
func (r *Renderer) Result(cfg config.Config, res completion.Result) {
	switch cfg.Verbosity {
	case config.VerbosityExtended:
		_ = r.Config(cfg)
		r.Raw(res.Raw)
	case config.VerbosityFull:
		r.Raw(res.Raw)
	}
	r.Answer(res.Answer)
}

// Answer prints one answer line.
func (r *Renderer) Answer(answer string) {
	label := "Answer:"
	if r.color {
		label = answerLabelStyle.Render(label)
	}

	if r.markdown != nil && answer != "" {
		if rendered, err := r.markdown.Render(answer); err == nil {
			_, _ = fmt.Fprintf(r.out, "%s\n%s\n", label, strings.TrimRight(rendered, "\n"))
			return
		}
	}
	_, _ = fmt.Fprintf(r.out, "%s %s\n", label, answer)
}

// Raw pretty-prints a raw JSON response body.
func (r *Renderer) Raw(raw []byte) {
	body := pretty.Pretty(raw)
	if r.color {
		body = pretty.Color(body, nil)
	}
	_, _ = fmt.Fprintf(r.out, "%s\n%s", r.header("Full JSON response:"), body)
	if len(body) == 0 || body[len(body)-1] != '\n' {
		_, _ = fmt.Fprintln(r.out)
	}
}

// Config prints cfg as YAML.
func (r *Renderer) Config(cfg config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, _ = fmt.Fprintf(r.out, "%s\n%s", r.header("Current configuration:"), data)
	return nil
}

func (r *Renderer) header(text string) string {
	if r.color {
		return headerStyle.Render(text)
	}
	return text
}
