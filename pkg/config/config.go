package config

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/minhyannv/askgpt/pkg/models"
)

// DefaultMaxTokens is used whenever a token budget is missing or malformed.
const DefaultMaxTokens = 50

// Verbosity controls how much of the raw API response is echoed.
type Verbosity int

const (
	VerbosityDefault Verbosity = iota
	VerbosityFull
	VerbosityExtended
)

var verbosityNames = map[Verbosity]string{
	VerbosityDefault:  "Default",
	VerbosityFull:     "Full",
	VerbosityExtended: "Extended",
}

func (v Verbosity) String() string {
	if name, ok := verbosityNames[v]; ok {
		return name
	}
	return verbosityNames[VerbosityDefault]
}

// ParseVerbosity matches name case-insensitively. Unknown names map to
// VerbosityDefault.
func ParseVerbosity(name string) Verbosity {
	name = strings.TrimSpace(name)
	for v, n := range verbosityNames {
		if strings.EqualFold(n, name) {
			return v
		}
	}
	return VerbosityDefault
}

// MarshalText implements encoding.TextMarshaler.
func (v Verbosity) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Verbosity) UnmarshalText(text []byte) error {
	*v = ParseVerbosity(string(text))
	return nil
}

// Config is the persisted user configuration.
type Config struct {
	Context   string    `json:"context" yaml:"context"`
	MaxTokens int       `json:"max_tokens" yaml:"max_tokens"`
	Model     string    `json:"model" yaml:"model"`
	Verbosity Verbosity `json:"verbosity" yaml:"verbosity"`
}

// UnmarshalJSON accepts the older restricted_responses boolean in place of
// verbosity: true maps to Default, false to Full.
func (c *Config) UnmarshalJSON(data []byte) error {
	var raw struct {
		Context             string     `json:"context"`
		MaxTokens           int        `json:"max_tokens"`
		Model               string     `json:"model"`
		Verbosity           *Verbosity `json:"verbosity"`
		RestrictedResponses *bool      `json:"restricted_responses"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Context = raw.Context
	c.MaxTokens = raw.MaxTokens
	c.Model = raw.Model
	switch {
	case raw.Verbosity != nil:
		c.Verbosity = *raw.Verbosity
	case raw.RestrictedResponses != nil && !*raw.RestrictedResponses:
		c.Verbosity = VerbosityFull
	default:
		c.Verbosity = VerbosityDefault
	}
	return nil
}

// Default returns a baseline configuration without side effects.
func Default() Config {
	return Config{
		Context:   "",
		MaxTokens: DefaultMaxTokens,
		Model:     models.ChatModel,
		Verbosity: VerbosityDefault,
	}
}

// Normalize replaces out-of-range values with their defaults. Context is
// kept verbatim.
func Normalize(cfg Config) Config {
	cfg.Model = models.Resolve(strings.TrimSpace(cfg.Model))
	if cfg.MaxTokens < 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if _, ok := verbosityNames[cfg.Verbosity]; !ok {
		cfg.Verbosity = VerbosityDefault
	}
	return cfg
}

// ParseMaxTokens parses a user-entered token budget, falling back to
// DefaultMaxTokens when the input is not a non-negative integer.
func ParseMaxTokens(input string) int {
	n, err := strconv.ParseUint(strings.TrimSpace(input), 10, 31)
	if err != nil {
		return DefaultMaxTokens
	}
	return int(n)
}
