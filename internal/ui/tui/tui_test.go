package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestModel_PhaseProgression(t *testing.T) {
	t.Parallel()
	m := NewInstallModel("strand-test", "strand.example.com")

	m = update(t, m, PhaseMsg{Phase: "infrastructure"})
	assert.True(t, m.Phases[0].Active)
	assert.False(t, m.Phases[0].Done)

	m = update(t, m, PhaseMsg{Phase: "infrastructure", Done: true})
	assert.True(t, m.Phases[0].Done)
	assert.False(t, m.Phases[0].Active)
}

func TestModel_LaterPhaseMarksEarlierDone(t *testing.T) {
	t.Parallel()
	m := NewInstallModel("strand-test", "strand.example.com")

	m = update(t, m, PhaseMsg{Phase: "services"})

	assert.True(t, m.Phases[0].Done, "infrastructure implied done")
	assert.True(t, m.Phases[1].Done, "issuer implied done")
	assert.True(t, m.Phases[2].Active)
}

func TestModel_UnknownPhaseIgnored(t *testing.T) {
	t.Parallel()
	m := NewInstallModel("strand-test", "strand.example.com")

	m = update(t, m, PhaseMsg{Phase: "nonsense"})

	for _, phase := range m.Phases {
		assert.False(t, phase.Active)
		assert.False(t, phase.Done)
	}
}

func TestModel_PhaseErrorQuits(t *testing.T) {
	t.Parallel()
	m := NewInstallModel("strand-test", "strand.example.com")

	updated, cmd := m.Update(PhaseMsg{Phase: "infrastructure", Err: errors.New("quota exceeded")})
	m = updated.(Model)

	require.Error(t, m.Err)
	assert.NotNil(t, cmd, "a failing phase must quit the program")
	assert.Contains(t, renderView(m), "quota exceeded")
}

func TestModel_StatusLineShown(t *testing.T) {
	t.Parallel()
	m := NewInstallModel("strand-test", "strand.example.com")
	m = update(t, m, StatusMsg{Line: "Reconciling cluster strand-test..."})

	assert.Contains(t, renderView(m), "Reconciling cluster strand-test...")
}

func TestView_ListsAllPhases(t *testing.T) {
	t.Parallel()
	view := renderView(NewInstallModel("strand-test", "strand.example.com"))

	for _, name := range []string{"Infrastructure", "Certificate Issuer", "Backing Services", "Credentials", "Platform Deployment"} {
		assert.Contains(t, view, name)
	}
	assert.Contains(t, view, "strand-test")
}

func TestView_DoneState(t *testing.T) {
	t.Parallel()
	m := NewInstallModel("strand-test", "strand.example.com")
	m = update(t, m, PhaseMsg{Phase: "deploy", Done: true})
	m.Done = true

	view := renderView(m)
	assert.Contains(t, view, "Installed")
	assert.Equal(t, strings.Count(view, checkMark), 5, "all phases rendered as done")
}

func TestObserver_PhaseEventsBecomePhaseMsgs(t *testing.T) {
	t.Parallel()
	// The observer only translates; exercising it end to end needs a
	// running program, so translation is covered through the model tests
	// and the message mapping is asserted structurally here.
	m := NewInstallModel("strand-test", "strand.example.com")
	m = update(t, m, PhaseMsg{Phase: "propagation"})
	assert.True(t, m.Phases[3].Active)
}
