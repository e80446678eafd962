package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerfit/internal/ui/theme"
)

// ScoreBar displays a labelled horizontal bar for a 0-100 score.
type ScoreBar struct {
	Label      string
	LabelWidth int
	Percent    float64
	// Determined is false for dimensions without any scored answer; the
	// bar is then replaced by a marker instead of drawn empty.
	Determined bool
	// Suffix is printed after the percentage, e.g. a band or level.
	Suffix string
	Width  int
}

// NewScoreBar creates a new score bar.
func NewScoreBar(label string, percent float64, determined bool, width int) ScoreBar {
	return ScoreBar{
		Label:      label,
		Percent:    percent,
		Determined: determined,
		Width:      width,
	}
}

// View renders the score bar.
func (b ScoreBar) View() string {
	label := b.Label
	if b.LabelWidth > 0 {
		label = fmt.Sprintf("%-*s", b.LabelWidth, label)
	}
	result := lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "

	if !b.Determined {
		return result + theme.Undetermined.Render("not enough answers")
	}

	barWidth := b.Width - lipgloss.Width(result) - 5 // " 100%"
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * b.Percent / 100)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	result += theme.BarFilled.Render(strings.Repeat("█", filled)) +
		theme.BarEmpty.Render(strings.Repeat("░", barWidth-filled))
	result += theme.ScoreStyle(b.Percent).Render(fmt.Sprintf(" %3.0f%%", b.Percent))

	if b.Suffix != "" {
		result += "  " + theme.Subtitle.Render(b.Suffix)
	}
	return result
}
