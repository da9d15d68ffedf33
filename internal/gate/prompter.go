package gate

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Prompter reads one answer for a question.
type Prompter interface {
	Prompt(ctx context.Context, question string) (string, error)
}

// TerminalPrompter asks through a huh input field. When the input is not a
// terminal it falls back to huh's accessible mode, which reads plain lines.
type TerminalPrompter struct {
	In         io.Reader
	Out        io.Writer
	Accessible bool
}

// NewTerminalPrompter wires the prompter to the process's standard streams.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{
		In:         os.Stdin,
		Out:        os.Stdout,
		Accessible: !term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// Prompt blocks until the operator submits a line.
func (p *TerminalPrompter) Prompt(ctx context.Context, question string) (string, error) {
	var answer string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(question).
				Value(&answer),
		),
	).WithAccessible(p.Accessible).WithShowHelp(false)

	if p.In != nil {
		form = form.WithInput(p.In)
	}
	if p.Out != nil {
		form = form.WithOutput(p.Out)
	}

	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return answer, nil
}
