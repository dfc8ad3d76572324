package wizard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/minhyannv/askgpt/pkg/selectlist"
)

// TerminalPrompter prompts on a terminal. When the input is not a TTY it
// falls back to reading one line per prompt, so piped input still works.
type TerminalPrompter struct {
	in          io.Reader
	lines       *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewTerminalPrompter builds a prompter reading from in and drawing to out.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		in:          in,
		lines:       bufio.NewReader(in),
		out:         out,
		interactive: IsTerminal(in),
	}
}

// Lines returns the buffered reader used for line prompts. Later readers of
// the same input must share it so buffered bytes are not lost.
func (p *TerminalPrompter) Lines() *bufio.Reader {
	return p.lines
}

// Interactive reports whether prompts are drawn as TUI widgets.
func (p *TerminalPrompter) Interactive() bool {
	return p.interactive
}

// IsTerminal reports whether r is a terminal file descriptor.
func IsTerminal(r any) bool {
	f, ok := r.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Text asks for a free-text value.
func (p *TerminalPrompter) Text(ctx context.Context, prompt string) (string, error) {
	if !p.interactive {
		_, _ = fmt.Fprintln(p.out, prompt)
		return p.readLine()
	}

	var value string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title(strings.TrimSpace(prompt)).Value(&value),
	)).WithInput(p.in).WithOutput(p.out)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", selectlist.ErrAborted
		}
		return "", fmt.Errorf("run input form: %w", err)
	}
	_, _ = fmt.Fprintf(p.out, "%s%s\n", prompt, value)
	return value, nil
}

// Select asks the user to choose one of options.
func (p *TerminalPrompter) Select(ctx context.Context, prompt string, options []string) (string, error) {
	if p.interactive {
		return selectlist.Run(ctx, prompt, options,
			selectlist.WithInput(p.in),
			selectlist.WithOutput(p.out),
			selectlist.WithStyle(true),
		)
	}

	_, _ = fmt.Fprintln(p.out, prompt)
	for i, opt := range options {
		_, _ = fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	return matchOption(line, options), nil
}

// readLine returns the next line without its terminator. EOF is not an error;
// it yields whatever was read, possibly an empty string.
func (p *TerminalPrompter) readLine() (string, error) {
	line, err := p.lines.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// matchOption resolves a typed answer to one of options: a 1-based index or
// the option text, case-insensitively. Anything else picks the first option.
func matchOption(answer string, options []string) string {
	answer = strings.TrimSpace(answer)
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	for _, opt := range options {
		if strings.EqualFold(opt, answer) {
			return opt
		}
	}
	return options[0]
}
