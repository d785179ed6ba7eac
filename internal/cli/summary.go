package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"yt-studio-uploader/internal/model"
)

var (
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Border(lipgloss.RoundedBorder()).Padding(0, 2)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	summaryPanel = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func renderBanner() string {
	return bannerStyle.Render("yt-studio-uploader — bulk studio publisher")
}

// renderSummary builds the end-of-batch report: counts plus one line per
// failed job so the operator knows exactly what to re-attempt.
func renderSummary(s model.BatchSummary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Batch complete"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %d   %s %d   %s %d\n",
		mutedStyle.Render("total"), s.Total,
		okStyle.Render("succeeded"), s.Succeeded,
		failStyle.Render("failed"), s.Failed,
	))

	for _, o := range s.Outcomes {
		if o.ThumbnailWarning != "" {
			b.WriteString(warnStyle.Render(fmt.Sprintf("warn %s: thumbnail skipped: %s", o.Job.Basename, o.ThumbnailWarning)))
			b.WriteString("\n")
		}
	}

	failed := s.FailedOutcomes()
	if len(failed) == 0 {
		if s.Total == 0 {
			b.WriteString(mutedStyle.Render("nothing to do"))
		} else {
			b.WriteString(okStyle.Render("all videos uploaded"))
		}
		return summaryPanel.Render(strings.TrimRight(b.String(), "\n"))
	}

	b.WriteString(failStyle.Render("failed jobs:"))
	b.WriteString("\n")
	for _, o := range failed {
		b.WriteString(fmt.Sprintf("  %s  %s at %s: %s\n",
			o.Job.Basename, o.FailureKind, o.StageReached, o.FailureReason))
	}
	return summaryPanel.Render(strings.TrimRight(b.String(), "\n"))
}
