package completion

import (
	"fmt"
	"strings"
)

// Style selects which completion endpoint a Client talks to.
type Style int

const (
	// LegacyCompletion posts a single prompt to /engines/{model}/completions.
	LegacyCompletion Style = iota
	// ChatCompletion posts a system+user message list to /chat/completions.
	ChatCompletion
)

func (s Style) String() string {
	switch s {
	case ChatCompletion:
		return "chat"
	default:
		return "legacy"
	}
}

// ParseStyle accepts "legacy" or "chat". An empty name means legacy.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "legacy":
		return LegacyCompletion, nil
	case "chat":
		return ChatCompletion, nil
	default:
		return LegacyCompletion, fmt.Errorf("unknown completion style %q", name)
	}
}

// answerPath is the gjson path of the answer text in a response body.
func (s Style) answerPath() string {
	if s == ChatCompletion {
		return "choices.0.message.content"
	}
	return "choices.0.text"
}
