package provisioning

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette shared with the CLI tables.
var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

// ConsoleObserver prints operator-facing progress: a header per stage, then
// one ✓ or ✗ line per item. Colors are dropped when w is not a terminal.
type ConsoleObserver struct {
	w             io.Writer
	contextFields map[string]string

	title   lipgloss.Style
	section lipgloss.Style
	ready   lipgloss.Style
	failed  lipgloss.Style
	dim     lipgloss.Style
}

// NewConsoleObserver creates a console observer writing to w.
func NewConsoleObserver(w io.Writer) *ConsoleObserver {
	r := lipgloss.NewRenderer(w)
	return &ConsoleObserver{
		w:             w,
		contextFields: make(map[string]string),
		title:         r.NewStyle().Bold(true).Foreground(colorWhite),
		section:       r.NewStyle().Bold(true).Foreground(colorBlue),
		ready:         r.NewStyle().Foreground(colorGreen),
		failed:        r.NewStyle().Foreground(colorRed),
		dim:           r.NewStyle().Foreground(colorDim),
	}
}

// Event implements Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	switch event.Type {
	case EventPipelineStarted:
		o.println(o.title.Render(event.Message))
	case EventStageStarted:
		o.println("\n" + o.section.Render("=== "+event.Message+" ==="))
	case EventResourceCreated:
		o.println(o.ready.Render("✓") + " " + event.Message)
	case EventResourceFailed:
		line := event.Message
		if event.Err != nil {
			line += ": " + event.Err.Error()
		}
		o.println(o.failed.Render("✗ " + line))
	case EventResourceSkipped:
		o.println(o.dim.Render("- " + event.Message))
	case EventStageCompleted:
		if event.Message != "" {
			o.println(o.dim.Render("  " + event.Message))
		}
	case EventPipelineCompleted:
		o.println("\n" + o.section.Render("=== "+event.Message+" ==="))
		if note := event.Fields["note"]; note != "" {
			o.println(o.dim.Render(note))
		}
	case EventPipelineFailed:
		line := event.Message
		if event.Err != nil {
			line += ": " + event.Err.Error()
		}
		o.println("\n" + o.failed.Render(line))
	case EventWaiting:
		// Pauses are visible with -v through the log observer.
	}
}

// WithFields implements Observer interface.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	cp := *o
	cp.contextFields = mergeFields(o.contextFields, fields)
	return &cp
}

func (o *ConsoleObserver) println(s string) {
	_, _ = fmt.Fprintln(o.w, strings.TrimRight(s, " "))
}
