package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/sdactl/internal/provisioning"
)

// recentLimit is how many item lines stay on screen.
const recentLimit = 6

// StageView is one stage line of the dashboard.
type StageView struct {
	Title     string
	Active    bool
	Done      bool
	Succeeded int
	Failed    int
	Skipped   int
}

// ItemLine is a recently finished item.
type ItemLine struct {
	Type    provisioning.EventType
	Message string
	Err     error
}

// Model is the Bubble Tea model for the deployment dashboard.
type Model struct {
	Title  string
	Total  int
	Stages []StageView
	Recent []ItemLine

	Completed int
	Waiting   bool
	Summary   string

	StartTime    time.Time
	SpinnerFrame int

	Width       int
	Done        bool
	Interrupted bool
	Report      *provisioning.Report
	Err         error
}

// NewModel creates a dashboard for a run of total planned items.
func NewModel(title string, total int) Model {
	return Model{
		Title:     title,
		Total:     total,
		StartTime: time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Interrupted = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width

	case EventMsg:
		m.apply(msg.Event)

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case DoneMsg:
		m.Done = true
		m.Report = msg.Report
		m.Err = msg.Err
		for i := range m.Stages {
			m.Stages[i].Active = false
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) apply(event provisioning.Event) {
	switch event.Type {
	case provisioning.EventPipelineStarted:
		if event.Message != "" {
			m.Title = event.Message
		}

	case provisioning.EventStageStarted:
		for i := range m.Stages {
			if m.Stages[i].Active {
				m.Stages[i].Active = false
				m.Stages[i].Done = true
			}
		}
		m.Stages = append(m.Stages, StageView{Title: event.Stage, Active: true})

	case provisioning.EventStageCompleted:
		if s := m.stage(event.Stage); s != nil {
			s.Active = false
			s.Done = true
		}

	case provisioning.EventResourceCreated:
		m.Waiting = false
		m.Completed++
		m.stageOrNew(event.Stage).Succeeded++
		m.push(ItemLine{Type: event.Type, Message: event.Message})

	case provisioning.EventResourceFailed:
		m.Waiting = false
		m.Completed++
		m.stageOrNew(event.Stage).Failed++
		m.push(ItemLine{Type: event.Type, Message: event.Message, Err: event.Err})

	case provisioning.EventResourceSkipped:
		m.Completed++
		m.stageOrNew(event.Stage).Skipped++
		m.push(ItemLine{Type: event.Type, Message: event.Message})

	case provisioning.EventWaiting:
		m.Waiting = true

	case provisioning.EventPipelineCompleted:
		m.Waiting = false
		m.Summary = event.Message

	case provisioning.EventPipelineFailed:
		m.Waiting = false
		m.Summary = event.Message
		m.Err = event.Err
	}
}

func (m *Model) stage(title string) *StageView {
	for i := range m.Stages {
		if m.Stages[i].Title == title {
			return &m.Stages[i]
		}
	}
	return nil
}

// stageOrNew finds the stage, appending it when items arrive for a stage that
// never announced itself.
func (m *Model) stageOrNew(title string) *StageView {
	if s := m.stage(title); s != nil {
		return s
	}
	m.Stages = append(m.Stages, StageView{Title: title, Done: true})
	return &m.Stages[len(m.Stages)-1]
}

func (m *Model) push(line ItemLine) {
	m.Recent = append(m.Recent, line)
	if len(m.Recent) > recentLimit {
		m.Recent = m.Recent[len(m.Recent)-recentLimit:]
	}
}

// Progress returns the completed share of planned items.
func (m Model) Progress() float64 {
	if m.Done && m.Err == nil {
		return 1.0
	}
	if m.Total <= 0 {
		return 0
	}
	p := float64(m.Completed) / float64(m.Total)
	if p > 1.0 {
		p = 1.0
	}
	return p
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
