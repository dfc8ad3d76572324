package main

import (
	"errors"
	"strings"

	"github.com/minhyannv/askgpt/pkg/completion"
)

// errMissingAPIKey is fatal at startup.
var errMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

const missingAPIKeyMessage = "You must set the OPENAI_API_KEY environment variable"

// runtimeConfig holds settings that come from the environment rather than
// the persisted configuration file.
type runtimeConfig struct {
	APIKey  string
	BaseURL string
}

// loadRuntime reads the environment through getenv.
func loadRuntime(getenv func(string) string) (runtimeConfig, error) {
	rt := runtimeConfig{
		APIKey:  strings.TrimSpace(getenv("OPENAI_API_KEY")),
		BaseURL: strings.TrimSpace(getenv("OPENAI_BASE_URL")),
	}
	if rt.APIKey == "" {
		return runtimeConfig{}, errMissingAPIKey
	}
	if rt.BaseURL == "" {
		rt.BaseURL = completion.DefaultBaseURL
	}
	return rt, nil
}
