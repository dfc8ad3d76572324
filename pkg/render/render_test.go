package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhyannv/askgpt/pkg/completion"
	"github.com/minhyannv/askgpt/pkg/config"
)

var sampleResult = completion.Result{
	Answer: "Paris",
	Raw:    []byte(`{"choices":[{"text":"Paris"}]}`),
}

func newRenderer(t *testing.T, opts ...Option) (*Renderer, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r, err := New(&out, opts...)
	require.NoError(t, err)
	return r, &out
}

func TestResultDefaultPrintsAnswerOnly(t *testing.T) {
	r, out := newRenderer(t)
	r.Result(config.Config{Verbosity: config.VerbosityDefault}, sampleResult)
	assert.Equal(t, "Answer: Paris\n", out.String())
}

func TestResultFullPrintsRawBeforeAnswer(t *testing.T) {
	r, out := newRenderer(t)
	r.Result(config.Config{Verbosity: config.VerbosityFull}, sampleResult)

	text := out.String()
	assert.Contains(t, text, "Full JSON response:")
	assert.Contains(t, text, `"choices"`)
	assert.NotContains(t, text, "Current configuration:")
	assert.Less(t, strings.Index(text, "Full JSON response:"), strings.Index(text, "Answer: Paris"))
}

func TestResultExtendedPrintsConfigRawAndAnswer(t *testing.T) {
	r, out := newRenderer(t)
	cfg := config.Config{Context: "ctx", MaxTokens: 9, Model: "code-ada-002", Verbosity: config.VerbosityExtended}
	r.Result(cfg, sampleResult)

	text := out.String()
	assert.Contains(t, text, "Current configuration:")
	assert.Contains(t, text, "model: code-ada-002")
	assert.Contains(t, text, "verbosity: Extended")
	assert.Contains(t, text, "Full JSON response:")
	assert.True(t, strings.HasSuffix(text, "Answer: Paris\n"))
}

func TestConfigAsYAML(t *testing.T) {
	r, out := newRenderer(t)
	require.NoError(t, r.Config(config.Default()))
	assert.Contains(t, out.String(), "max_tokens: 50")
	assert.Contains(t, out.String(), "verbosity: Default")
}

func TestAnswerWithMarkdown(t *testing.T) {
	r, out := newRenderer(t, WithMarkdown(80))
	r.Answer("**Paris** is the capital.")
	assert.Contains(t, out.String(), "Answer:")
	assert.Contains(t, out.String(), "Paris")
}
