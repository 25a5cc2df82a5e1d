package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/imamik/sdactl/internal/provisioning"
)

// Colors matching the provisioning console palette.
var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
)

type styles struct {
	section lipgloss.Style
	dim     lipgloss.Style
	green   lipgloss.Style
	red     lipgloss.Style
	yellow  lipgloss.Style
	header  lipgloss.Style
}

// newStyles binds styles to stdout so color is dropped when it is not a terminal.
func newStyles() styles {
	r := lipgloss.NewRenderer(stdout)
	return styles{
		section: r.NewStyle().Bold(true).Foreground(colorBlue),
		dim:     r.NewStyle().Foreground(colorDim),
		green:   r.NewStyle().Foreground(colorGreen),
		red:     r.NewStyle().Foreground(colorRed),
		yellow:  r.NewStyle().Foreground(colorYellow),
		header:  r.NewStyle().Bold(true).Padding(0, 1),
	}
}

// printTable renders rows under headers, or a dim notice when there are none.
func printTable(headers []string, rows [][]string) {
	s := newStyles()
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(stdout, s.dim.Render("No entries found."))
		return
	}

	cell := lipgloss.NewRenderer(stdout).NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.dim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return cell
		})
	_, _ = fmt.Fprintln(stdout, t.Render())
}

// renderSummary produces the closing block of a deployment run.
func renderSummary(label string, report *provisioning.Report) string {
	s := newStyles()
	var b strings.Builder

	b.WriteString("\n")
	failures := report.Failures()
	switch {
	case !report.OK:
		b.WriteString(s.red.Render(label + " failed"))
	case len(failures) > 0:
		b.WriteString(s.yellow.Render(fmt.Sprintf("%s finished with %d failed item(s)", label, len(failures))))
	default:
		b.WriteString(s.green.Render(label + " successful"))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "  %d attempted, %d succeeded\n", report.Attempted(), report.Succeeded())

	for _, stage := range report.Stages {
		for _, f := range stage.Failures {
			b.WriteString(s.dim.Render(fmt.Sprintf("  [%s] ", stage.Name)))
			fmt.Fprintf(&b, "%s: %v\n", f.Subject, f.Err)
		}
	}

	return b.String()
}
