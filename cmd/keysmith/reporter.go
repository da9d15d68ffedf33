package main

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/keysmith/internal/domain/pipeline"
	"github.com/alexisbeaulieu97/keysmith/internal/provision"
	"github.com/alexisbeaulieu97/keysmith/internal/tui"
	"github.com/alexisbeaulieu97/keysmith/internal/validation"
)

// progressReporter drives the tui model without a running program: the run
// owns the terminal for prompts, so each finished step is printed inline and
// the full view once at the end.
type progressReporter struct {
	out   io.Writer
	model tui.Model
}

func newProgressReporter(out io.Writer, title string, steps []pipeline.Step) *progressReporter {
	return &progressReporter{out: out, model: tui.NewModel(title, steps)}
}

func (r *progressReporter) dispatch(msg tea.Msg) {
	updated, _ := r.model.Update(msg)
	if m, ok := updated.(tui.Model); ok {
		r.model = m
	}
}

// Observe is the sequencer observer.
func (r *progressReporter) Observe(e provision.Event) {
	r.dispatch(tui.EventMsg(e))
	if e.Status != provision.StatusRunning {
		fmt.Fprintln(r.out, r.model.StepLine(e.StepID))
	}
}

func (r *progressReporter) Preflight(results []validation.Result) {
	for _, res := range results {
		r.dispatch(tui.PreflightMsg{Passed: res.Passed, Warning: res.Warning, Message: res.Message})
	}
}

func (r *progressReporter) Finish() {
	r.dispatch(tea.QuitMsg{})
	fmt.Fprintf(r.out, "\n%s\n", r.model.View())
}
