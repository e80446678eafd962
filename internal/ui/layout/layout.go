package layout

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerfit/internal/ui/theme"
)

const (
	MinWidth     = 60
	DefaultWidth = 80
)

// ClampWidth keeps a requested width at or above MinWidth, using
// DefaultWidth when none is given.
func ClampWidth(width int) int {
	if width <= 0 {
		return DefaultWidth
	}
	if width < MinWidth {
		return MinWidth
	}
	return width
}

// RenderHeader renders a boxed title line with an optional right-aligned
// badge and a dim subtitle underneath.
func RenderHeader(title, subtitle, badge string, width int) string {
	left := theme.Title.Render(title)
	right := ""
	if badge != "" {
		right = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(badge)
	}

	innerWidth := width - 6 // border and padding
	gap := innerWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	content := left + strings.Repeat(" ", gap) + right
	if subtitle != "" {
		content += "\n" + theme.Subtitle.Render(subtitle)
	}

	return theme.Header.Width(width).Render(content)
}

// RenderSection renders a heading followed by its body lines. Empty
// sections render as "".
func RenderSection(heading string, lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Heading.Render(heading),
		strings.Join(lines, "\n"),
	)
}

// Bullets prefixes each item with a bullet and wraps it to width.
func Bullets(items []string, width int) []string {
	out := make([]string, len(items))
	style := theme.Body.Width(width - 2)
	for i, it := range items {
		out[i] = lipgloss.JoinHorizontal(lipgloss.Top, "• ", style.Render(it))
	}
	return out
}

// Paragraph wraps text to width.
func Paragraph(text string, width int) string {
	return theme.Body.Width(width).Render(text)
}

// Stack joins non-empty blocks vertically.
func Stack(blocks ...string) string {
	kept := blocks[:0:0]
	for _, b := range blocks {
		if b != "" {
			kept = append(kept, b)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, kept...)
}
