// Package models holds the fixed catalog of model families and engine
// identifiers offered by the configuration wizard.
package models

const (
	// DefaultModel replaces any identifier outside the catalog.
	DefaultModel = "text-davinci-003"
	// ChatModel is the stock chat-endpoint model used by config.Default.
	ChatModel = "gpt-3.5-turbo"
)

// Family groups the engine identifiers offered for one model family.
type Family struct {
	Name    string
	Options []string
}

var catalog = []Family{
	{
		Name:    "GPT-3.5",
		Options: []string{"text-davinci-003", "text-curie-003", "text-babbage-003", "text-ada-003"},
	},
	{
		Name:    "GPT-3",
		Options: []string{"text-davinci-002", "text-curie-002", "text-babbage-002", "text-ada-002"},
	},
	{
		Name:    "GPT-4",
		Options: []string{"text-davinci-004", "text-curie-004", "text-babbage-004", "text-ada-004"},
	},
	{
		Name:    "Codex",
		Options: []string{"code-davinci-002", "code-curie-002", "code-babbage-002", "code-ada-002"},
	},
}

// Families returns the family names in display order.
func Families() []string {
	out := make([]string, 0, len(catalog))
	for _, f := range catalog {
		out = append(out, f.Name)
	}
	return out
}

// Options returns a copy of the engine identifiers for family. The boolean is
// false when family is not in the catalog.
func Options(family string) ([]string, bool) {
	for _, f := range catalog {
		if f.Name == family {
			out := make([]string, len(f.Options))
			copy(out, f.Options)
			return out, true
		}
	}
	return nil, false
}

// Known reports whether id is an accepted model identifier.
func Known(id string) bool {
	if id == ChatModel {
		return true
	}
	for _, f := range catalog {
		for _, opt := range f.Options {
			if opt == id {
				return true
			}
		}
	}
	return false
}

// Resolve returns id when it is known and DefaultModel otherwise.
func Resolve(id string) string {
	if Known(id) {
		return id
	}
	return DefaultModel
}
