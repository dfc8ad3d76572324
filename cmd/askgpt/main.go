// Package main provides the askgpt command-line client.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/minhyannv/askgpt/pkg/completion"
	"github.com/minhyannv/askgpt/pkg/config"
	loggerpkg "github.com/minhyannv/askgpt/pkg/logger"
	"github.com/minhyannv/askgpt/pkg/render"
	"github.com/minhyannv/askgpt/pkg/wizard"
)

const version = "0.1.1"

// main is the program entry point.
func main() {
	// Load .env before flag parsing so env-backed flags see it.
	_ = godotenv.Load()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("askgpt"),
		kong.Description("Interact with OpenAI's GPT from the terminal."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	rt, err := loadRuntime(os.Getenv)
	if errors.Is(err, errMissingAPIKey) {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", missingAPIKeyMessage)
		os.Exit(1)
	}
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app, err := newApp(cli, rt)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	kctx.FatalIfErrorf(kctx.Run(app))
}

// newApp wires the terminal, store, client and renderer for one process.
func newApp(cli CLI, rt runtimeConfig) (*appContext, error) {
	appLogger := loggerpkg.Logger(loggerpkg.NopLogger{})
	if cli.Verbose {
		appLogger = loggerpkg.NewWriterLogger(os.Stderr)
	}

	style, err := completion.ParseStyle(cli.Style)
	if err != nil {
		return nil, err
	}

	color := wizard.IsTerminal(os.Stdout)
	renderOpts := []render.Option{render.WithColor(color)}
	if cli.Markdown {
		renderOpts = append(renderOpts, render.WithMarkdown(terminalWidth()))
	}
	renderer, err := render.New(os.Stdout, renderOpts...)
	if err != nil {
		return nil, err
	}

	prompter := wizard.NewTerminalPrompter(os.Stdin, os.Stdout)
	client := completion.New(rt.APIKey,
		completion.WithBaseURL(rt.BaseURL),
		completion.WithStyle(style),
		completion.WithLogger(appLogger),
		completion.WithVerbose(cli.Verbose),
	)
	loggerpkg.Debug(cli.Verbose, appLogger, "app init", map[string]any{
		"config":      cli.Config,
		"style":       client.Style().String(),
		"base_url":    rt.BaseURL,
		"interactive": prompter.Interactive(),
	})

	return &appContext{
		Context:  context.Background(),
		store:    config.NewStore(cli.Config, config.WithLogger(appLogger, cli.Verbose)),
		prompter: prompter,
		client:   client,
		renderer: renderer,
		in:       prompter.Lines(),
		out:      os.Stdout,
		errOut:   os.Stderr,
		logger:   appLogger,
		verbose:  cli.Verbose,
	}, nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}
