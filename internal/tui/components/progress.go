package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const defaultBarWidth = 30

var (
	counterStyle = lipgloss.NewStyle().Bold(true)
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
)

// Progress renders how far the pipeline has come.
type Progress struct {
	bar   progress.Model
	total int
}

// NewProgress creates a progress component for total steps. A width of zero
// or less uses the default bar width.
func NewProgress(total, width int) Progress {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	if width <= 0 {
		width = defaultBarWidth
	}
	bar.Width = width
	return Progress{bar: bar, total: total}
}

// Ratio returns the completed fraction, capped at 1.
func (p Progress) Ratio(completed int) float64 {
	if p.total <= 0 {
		return 0
	}
	return math.Min(1.0, float64(completed)/float64(p.total))
}

// View renders the bar, the step counter and the step currently running.
func (p Progress) View(completed int, current string) string {
	label := counterStyle.Render(fmt.Sprintf("%d/%d", completed, p.total))
	parts := []string{label, " ", p.bar.ViewAs(p.Ratio(completed))}
	if current != "" {
		parts = append(parts, " ", currentStyle.Render(current))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}
