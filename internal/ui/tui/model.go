package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Phase is one line of the install dashboard.
type Phase struct {
	Name   string
	Key    string
	Done   bool
	Active bool
	Err    error
}

// Model is the Bubble Tea model for the install dashboard.
type Model struct {
	ClusterName string
	Domain      string

	Phases []Phase
	Status string

	StartTime    time.Time
	SpinnerFrame int

	Width  int
	Height int
	Err    error
	Done   bool
}

// NewInstallModel creates a model listing the install steps in execution
// order. Keys must match the phase names carried by observer events.
func NewInstallModel(clusterName, domain string) Model {
	return Model{
		ClusterName: clusterName,
		Domain:      domain,
		StartTime:   time.Now(),
		Phases: []Phase{
			{Name: "Infrastructure", Key: "infrastructure"},
			{Name: "Certificate Issuer", Key: "issuer"},
			{Name: "Backing Services", Key: "services"},
			{Name: "Credentials", Key: "propagation"},
			{Name: "Platform Deployment", Key: "deploy"},
		},
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
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case PhaseMsg:
		m.updatePhase(msg)
		if msg.Err != nil {
			m.Err = msg.Err
			return m, tea.Quit
		}

	case StatusMsg:
		m.Status = msg.Line

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updatePhase(msg PhaseMsg) {
	idx := -1
	for i, phase := range m.Phases {
		if phase.Key == msg.Phase {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	// Phases run strictly in order; everything before a reported phase is
	// finished even if its completion message was missed.
	for i := 0; i < idx; i++ {
		m.Phases[i].Done = true
		m.Phases[i].Active = false
	}

	if msg.Done {
		m.Phases[idx].Done = true
		m.Phases[idx].Active = false
	} else {
		m.Phases[idx].Active = true
	}
	if msg.Err != nil {
		m.Phases[idx].Err = msg.Err
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
