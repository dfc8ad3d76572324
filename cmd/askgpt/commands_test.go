package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhyannv/askgpt/pkg/completion"
	"github.com/minhyannv/askgpt/pkg/config"
	loggerpkg "github.com/minhyannv/askgpt/pkg/logger"
	"github.com/minhyannv/askgpt/pkg/render"
)

// countingPrompter answers every prompt with fixed values and counts wizard
// runs by the verbosity prompt, which is always asked first.
type countingPrompter struct {
	runs int
}

func (p *countingPrompter) Text(_ context.Context, prompt string) (string, error) {
	if strings.HasPrefix(prompt, "Maximum") {
		return "120", nil
	}
	return "You are terse.", nil
}

func (p *countingPrompter) Select(_ context.Context, prompt string, options []string) (string, error) {
	if strings.HasPrefix(prompt, "Output verbosity") {
		p.runs++
		return "full", nil
	}
	if strings.HasPrefix(prompt, "Choose a model") {
		return "Codex", nil
	}
	return options[len(options)-1], nil
}

type recordingCompleter struct {
	configs []config.Config
	queries []string
}

func (c *recordingCompleter) Complete(_ context.Context, cfg config.Config, query string) (completion.Result, error) {
	c.configs = append(c.configs, cfg)
	c.queries = append(c.queries, query)
	return completion.Result{Answer: "ok", Raw: []byte(`{"choices":[{"text":"ok"}]}`)}, nil
}

type testApp struct {
	app       *appContext
	prompter  *countingPrompter
	completer *recordingCompleter
	out       *bytes.Buffer
	errOut    *bytes.Buffer
}

func newTestApp(t *testing.T, configPath, input string) testApp {
	t.Helper()
	var out, errOut bytes.Buffer
	renderer, err := render.New(&out)
	require.NoError(t, err)

	p := &countingPrompter{}
	c := &recordingCompleter{}
	return testApp{
		app: &appContext{
			Context:  context.Background(),
			store:    config.NewStore(configPath),
			prompter: p,
			client:   c,
			renderer: renderer,
			in:       strings.NewReader(input),
			out:      &out,
			errOut:   &errOut,
			logger:   loggerpkg.NopLogger{},
		},
		prompter:  p,
		completer: c,
		out:       &out,
		errOut:    &errOut,
	}
}

var wizardConfig = config.Config{
	Context:   "You are terse.",
	MaxTokens: 120,
	Model:     "code-ada-002",
	Verbosity: config.VerbosityFull,
}

func TestAskRunsWizardOnceWhenConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	ta := newTestApp(t, path, "hello\nexit\n")

	require.NoError(t, (&AskCmd{}).Run(ta.app))
	assert.Equal(t, 1, ta.prompter.runs)
	assert.Equal(t, []string{"hello"}, ta.completer.queries)
	assert.Equal(t, wizardConfig, ta.completer.configs[0])
	assert.Contains(t, ta.out.String(), "Configuration saved to "+path)

	saved, ok := config.NewStore(path).Load()
	require.True(t, ok)
	assert.Equal(t, wizardConfig, saved)
}

func TestConfigureLogsSavedPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	ta := newTestApp(t, path, "exit\n")
	var logs bytes.Buffer
	ta.app.logger = loggerpkg.NewWriterLogger(&logs)

	require.NoError(t, (&ConfigureCmd{}).Run(ta.app))
	assert.Contains(t, logs.String(), "config saved")
	assert.Contains(t, logs.String(), path)
}

func TestAskUsesStoredConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	stored := config.Config{Context: "stored", MaxTokens: 7, Model: "text-curie-003", Verbosity: config.VerbosityDefault}
	require.NoError(t, config.NewStore(path).Save(stored))

	ta := newTestApp(t, path, "EXIT\n")
	require.NoError(t, (&AskCmd{}).Run(ta.app))
	assert.Equal(t, 0, ta.prompter.runs)
	assert.Empty(t, ta.completer.queries)

	ta = newTestApp(t, path, "q\nexit\n")
	require.NoError(t, (&AskCmd{}).Run(ta.app))
	assert.Equal(t, []config.Config{stored}, ta.completer.configs)
}

func TestConfigureAlwaysRunsWizard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, config.NewStore(path).Save(config.Default()))

	ta := newTestApp(t, path, "exit\n")
	require.NoError(t, (&ConfigureCmd{}).Run(ta.app))
	assert.Equal(t, 1, ta.prompter.runs)

	saved, ok := config.NewStore(path).Load()
	require.True(t, ok)
	assert.Equal(t, wizardConfig, saved)
}

func TestConfigureSaveFailureIsReturned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "config.json")
	ta := newTestApp(t, path, "hello\nexit\n")

	err := (&ConfigureCmd{}).Run(ta.app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to create config file")
	assert.Empty(t, ta.completer.queries, "the loop never starts after a failed save")
}

func TestShowConfigPrintsConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, config.NewStore(path).Save(wizardConfig))

	ta := newTestApp(t, path, "exit\n")
	require.NoError(t, (&ShowConfigCmd{}).Run(ta.app))
	assert.Contains(t, ta.out.String(), "Current configuration:")
	assert.Contains(t, ta.out.String(), "model: code-ada-002")
}

func TestFullVerbosityEchoesRawResponse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, config.NewStore(path).Save(wizardConfig))

	ta := newTestApp(t, path, "hello\nexit\n")
	require.NoError(t, (&AskCmd{}).Run(ta.app))
	assert.Contains(t, ta.out.String(), "Full JSON response:")
	assert.Contains(t, ta.out.String(), "Answer: ok")
}

func TestLoadRuntime(t *testing.T) {
	env := map[string]string{"OPENAI_API_KEY": " sk-test "}
	rt, err := loadRuntime(func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, "sk-test", rt.APIKey)
	assert.Equal(t, completion.DefaultBaseURL, rt.BaseURL)

	env["OPENAI_BASE_URL"] = "http://localhost:8080/v1"
	rt, err = loadRuntime(func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/v1", rt.BaseURL)
}

func TestLoadRuntimeRequiresAPIKey(t *testing.T) {
	_, err := loadRuntime(func(string) string { return "" })
	assert.ErrorIs(t, err, errMissingAPIKey)
	msg := err.Error()
	assert.Equal(t, strings.ToLower(msg[:1]), msg[:1], "error strings start lowercase")
}
