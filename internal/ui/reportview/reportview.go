// Package reportview renders report view models for the terminal.
package reportview

import (
	"fmt"
	"strings"

	"github.com/abhisek/careerfit/internal/report"
	"github.com/abhisek/careerfit/internal/ui/components"
	"github.com/abhisek/careerfit/internal/ui/layout"
	"github.com/abhisek/careerfit/internal/ui/theme"
)

// Render lays out a report view model at the given width.
func Render(vm *report.ViewModel, width int) string {
	width = layout.ClampWidth(width)

	badge := vm.Header.HollandCode
	if vm.Readiness != nil && !vm.Readiness.Empty {
		badge = fmt.Sprintf("%s readiness", vm.Readiness.Band)
	}

	return layout.Stack(
		layout.RenderHeader(vm.Header.Title, "attempt "+vm.Header.AttemptID, badge, width),
		layout.Paragraph(vm.Summary, width),
		traits(vm.Traits, width),
		readiness(vm.Readiness),
		careers(vm.Careers, width),
		insights(vm.Insights, width),
		layout.RenderSection("Next steps", layout.Bullets(vm.Recommendations, width)),
	)
}

func traits(rows []report.TraitRow, width int) string {
	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, len(r.Name))
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		bar := components.NewScoreBar(r.Name, r.Percent, r.Determined, width-16)
		bar.LabelWidth = labelWidth
		bar.Suffix = r.Label
		lines[i] = bar.View()
	}
	return layout.RenderSection("Profile", lines)
}

func readiness(r *report.Readiness) string {
	if r == nil {
		return ""
	}
	if r.Empty {
		return layout.RenderSection("Readiness", []string{theme.Hint.Render("No occupations to match against.")})
	}
	status := "below"
	if r.Ready {
		status = "at or above"
	}
	line := theme.ScoreStyle(float64(r.Score)).Render(fmt.Sprintf("%d/100", r.Score)) +
		"  " + theme.Body.Render(r.Band) +
		"  " + theme.Subtitle.Render(fmt.Sprintf("(%s the %.0f threshold)", status, r.Threshold))
	return layout.RenderSection("Readiness", []string{line})
}

func careers(rows []report.CareerRow, width int) string {
	blocks := make([]string, 0, len(rows))
	for _, c := range rows {
		title := fmt.Sprintf("%2d. %s", c.Rank, c.Title)
		score := theme.ScoreStyle(float64(c.MatchScore)).Render(fmt.Sprintf("%3d", c.MatchScore))
		head := theme.Body.Bold(true).Render(title) + "  " + score + "  " + theme.Subtitle.Render(c.Code)

		lines := []string{head}
		for _, r := range c.Reasons {
			lines = append(lines, "    "+theme.Body.Render("+ "+r))
		}
		for _, g := range c.Gaps {
			lines = append(lines, "    "+theme.Hint.Render("- "+g))
		}
		if len(c.LearningPath) > 0 {
			lines = append(lines, "    "+theme.Subtitle.Render("Path: "+strings.Join(c.LearningPath, " → ")))
		}
		blocks = append(blocks, theme.Card.Width(width).Render(strings.Join(lines, "\n")))
	}
	return layout.RenderSection("Careers", blocks)
}

func insights(list []report.Insight, width int) string {
	lines := make([]string, 0, len(list))
	for _, in := range list {
		line := theme.Body.Bold(true).Render(in.Title) + "\n" + layout.Paragraph(in.Description, width)
		if len(in.Environments) > 0 {
			line += "\n" + theme.Subtitle.Render("Environments: "+strings.Join(in.Environments, ", "))
		}
		lines = append(lines, line)
	}
	return layout.RenderSection("Insights", lines)
}
