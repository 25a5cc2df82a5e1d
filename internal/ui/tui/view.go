package tui

import (
	"fmt"
	"strings"
	"time"
)

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderStages(&b, m)

	if len(m.Recent) > 0 {
		renderRecent(&b, m)
	}

	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	b.WriteString(headerStyle.Render("sdactl: " + m.Title))
	b.WriteString(" ")

	switch {
	case m.Err != nil:
		b.WriteString(failStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
	case m.Done:
		b.WriteString(okStyle.Render(m.Summary))
	case m.Waiting:
		b.WriteString(currentSpinner(m.SpinnerFrame) + " " + waitStyle.Render("waiting for controller"))
	default:
		b.WriteString(currentSpinner(m.SpinnerFrame))
	}
	b.WriteString("\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	progress := m.Progress()
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = m.Width - 30
		if barWidth < 10 {
			barWidth = 10
		}
	}
	filled := int(float64(barWidth) * progress)
	if filled > barWidth {
		filled = barWidth
	}

	bar := okStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))

	fmt.Fprintf(b, "  %s %d%%  %d/%d items\n", bar, int(progress*100), m.Completed, m.Total)
}

func renderStages(b *strings.Builder, m Model) {
	b.WriteString(headingStyle.Render("  Stages"))
	b.WriteString("\n")

	for _, stage := range m.Stages {
		mark, style := stageMark(stage, m.SpinnerFrame)

		counts := fmt.Sprintf("%d ok", stage.Succeeded)
		if stage.Failed > 0 {
			counts += fmt.Sprintf(", %d failed", stage.Failed)
		}
		if stage.Skipped > 0 {
			counts += fmt.Sprintf(", %d skipped", stage.Skipped)
		}
		fmt.Fprintf(b, "    %s %-34s %s\n", style.Render(mark), style.Render(stage.Title), mutedStyle.Render(counts))
	}
}

func renderRecent(b *strings.Builder, m Model) {
	b.WriteString(headingStyle.Render("  Recent"))
	b.WriteString("\n")

	for _, line := range m.Recent {
		mark, style := itemMark(line.Type)
		text := line.Message
		if line.Err != nil {
			text += " " + mutedStyle.Render(line.Err.Error())
		}
		fmt.Fprintf(b, "    %s %s\n", style.Render(mark), text)
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := formatDuration(time.Since(m.StartTime))
	b.WriteString(footerStyle.Render(fmt.Sprintf("  elapsed: %s  |  q: abort", elapsed)))
	b.WriteString("\n")
}

func currentSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
