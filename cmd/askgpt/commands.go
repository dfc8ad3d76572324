package main

import (
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/minhyannv/askgpt/pkg/config"
	loggerpkg "github.com/minhyannv/askgpt/pkg/logger"
	"github.com/minhyannv/askgpt/pkg/render"
	"github.com/minhyannv/askgpt/pkg/repl"
	"github.com/minhyannv/askgpt/pkg/wizard"
)

// CLI is the kong command tree.
type CLI struct {
	Config   string           `help:"Configuration file." default:"config.json" env:"ASKGPT_CONFIG" placeholder:"PATH"`
	Style    string           `help:"Completion endpoint style: legacy or chat." enum:"legacy,chat" default:"legacy" env:"ASKGPT_STYLE"`
	Verbose  bool             `help:"Log debug details to stderr." short:"v"`
	Markdown bool             `help:"Render answers as terminal markdown."`
	Version  kong.VersionFlag `help:"Print version and exit."`

	Ask        AskCmd        `cmd:"" default:"1" hidden:"" help:"Ask questions using the stored configuration."`
	Configure  ConfigureCmd  `cmd:"" aliases:"c" help:"Configure GPT settings, then ask questions."`
	ShowConfig ShowConfigCmd `cmd:"" aliases:"s" help:"Show current configuration, then ask questions."`
}

// appContext is bound into every command's Run method.
type appContext struct {
	context.Context

	store    *config.Store
	prompter wizard.Prompter
	client   repl.Completer
	renderer *render.Renderer

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	logger  loggerpkg.Logger
	verbose bool
}

// AskCmd enters the query loop, running the wizard first when no usable
// configuration is stored.
type AskCmd struct{}

func (cmd *AskCmd) Run(app *appContext) error {
	cfg, err := app.loadOrConfigure()
	if err != nil {
		return err
	}
	return app.query(cfg)
}

// ConfigureCmd always runs the wizard and saves its result.
type ConfigureCmd struct{}

func (cmd *ConfigureCmd) Run(app *appContext) error {
	cfg, err := app.configure()
	if err != nil {
		return err
	}
	return app.query(cfg)
}

// ShowConfigCmd prints the configuration before entering the query loop.
type ShowConfigCmd struct{}

func (cmd *ShowConfigCmd) Run(app *appContext) error {
	cfg, err := app.loadOrConfigure()
	if err != nil {
		return err
	}
	if err := app.renderer.Config(cfg); err != nil {
		return err
	}
	return app.query(cfg)
}

func (app *appContext) loadOrConfigure() (config.Config, error) {
	if cfg, ok := app.store.Load(); ok {
		return cfg, nil
	}
	loggerpkg.Debug(app.verbose, app.logger, "no usable configuration, starting wizard", map[string]any{
		"path": app.store.Path(),
	})
	return app.configure()
}

// configure runs the wizard and persists the result. A save failure is
// returned to main, which exits.
func (app *appContext) configure() (config.Config, error) {
	cfg, err := wizard.Run(app, app.prompter, app.out, wizard.WithLogger(app.logger, app.verbose))
	if err != nil {
		return config.Config{}, fmt.Errorf("configure: %w", err)
	}
	if err := app.store.Save(cfg); err != nil {
		return config.Config{}, err
	}
	loggerpkg.Info(app.logger, "config saved", map[string]any{"path": app.store.Path()})
	_, _ = fmt.Fprintf(app.out, "Configuration saved to %s\n", app.store.Path())
	return cfg, nil
}

func (app *appContext) query(cfg config.Config) error {
	return repl.Run(app, app.client, cfg, app.in, app.out, app.errOut,
		repl.WithRenderer(app.renderer),
		repl.WithLogger(app.logger, app.verbose),
	)
}
