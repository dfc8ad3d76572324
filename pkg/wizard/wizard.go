// Package wizard collects a configuration interactively.
package wizard

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/minhyannv/askgpt/pkg/config"
	loggerpkg "github.com/minhyannv/askgpt/pkg/logger"
	"github.com/minhyannv/askgpt/pkg/models"
)

// Prompter asks the user for values. Implementations block until the user
// answers.
type Prompter interface {
	Text(ctx context.Context, prompt string) (string, error)
	Select(ctx context.Context, prompt string, options []string) (string, error)
}

const (
	verbosityPrompt = "Output verbosity [default, full, extended]: "
	contextPrompt   = "Context: "
	maxTokensPrompt = "Maximum number of tokens (default: 50): "
	familyPrompt    = "Choose a model:"
	optionPrompt    = "Choose an option:"

	invalidModelNotice = "Invalid model selected. Using default model."
)

var verbosityOptions = []string{"default", "full", "extended"}

const contextExample = `
The next is an example of how you can give context to the queries.

Context: Imagine you are a travel blogger and you want to write an article about your recent trip to Japan.
You want to generate some ideas for the article using this tool.

Prompt: Generate three ideas for my Japan travel article.

Clarification: By providing the context that the writer is a travel blogger and the topic is about their recent trip to Japan, the prompt becomes more specific and focused.
This will help the tool to generate more relevant and useful ideas for the article.

Please, introduce desired configuration:`

type options struct {
	logger  loggerpkg.Logger
	verbose bool
}

// Option configures Run.
type Option func(*options)

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger, verbose bool) Option {
	return func(o *options) {
		o.logger = l
		o.verbose = verbose
	}
}

// Run asks for every configuration field and returns the assembled
// configuration. Malformed answers fall back to defaults; only prompter
// errors are returned.
func Run(ctx context.Context, p Prompter, out io.Writer, opts ...Option) (config.Config, error) {
	o := options{logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if out == nil {
		out = io.Discard
	}

	cfg := config.Default()

	verbosity, err := p.Select(ctx, verbosityPrompt, verbosityOptions)
	if err != nil {
		return config.Config{}, fmt.Errorf("select verbosity: %w", err)
	}
	cfg.Verbosity = config.ParseVerbosity(verbosity)

	_, _ = fmt.Fprintln(out, contextExample)

	contextInput, err := p.Text(ctx, contextPrompt)
	if err != nil {
		return config.Config{}, fmt.Errorf("read context: %w", err)
	}
	cfg.Context = strings.TrimSpace(contextInput)

	maxTokensInput, err := p.Text(ctx, maxTokensPrompt)
	if err != nil {
		return config.Config{}, fmt.Errorf("read max tokens: %w", err)
	}
	cfg.MaxTokens = config.ParseMaxTokens(maxTokensInput)
	loggerpkg.Debug(o.verbose, o.logger, "max tokens parsed", map[string]any{
		"input": strings.TrimSpace(maxTokensInput),
		"value": cfg.MaxTokens,
	})

	_, _ = fmt.Fprintln(out, "Model and model option:")
	model, err := selectModel(ctx, p, out)
	if err != nil {
		return config.Config{}, err
	}
	cfg.Model = model
	_, _ = fmt.Fprintf(out, "Selected model option: %s\n", cfg.Model)

	if err := printConfig(out, cfg); err != nil {
		loggerpkg.Warn(o.logger, "render chosen configuration", map[string]any{"error": err.Error()})
	}
	return cfg, nil
}

// selectModel asks for a family and then one of the family's options. An
// unknown family yields models.DefaultModel.
func selectModel(ctx context.Context, p Prompter, out io.Writer) (string, error) {
	family, err := p.Select(ctx, familyPrompt, models.Families())
	if err != nil {
		return "", fmt.Errorf("select model family: %w", err)
	}

	options, ok := models.Options(family)
	if !ok {
		_, _ = fmt.Fprintln(out, invalidModelNotice)
		return models.DefaultModel, nil
	}

	option, err := p.Select(ctx, optionPrompt, options)
	if err != nil {
		return "", fmt.Errorf("select model option: %w", err)
	}
	return models.Resolve(option), nil
}

func printConfig(out io.Writer, cfg config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Chosen configuration:\n%s", data)
	return nil
}
