package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/strandhq/strand-azure/internal/provisioning"
)

// RunInstall executes installFn under the dashboard. The function receives
// an observer whose events drive the display; it runs in the background
// while Bubble Tea owns the terminal. Quitting the dashboard does not
// cancel the installation, it only detaches from it.
func RunInstall(clusterName, domain string, installFn func(observer provisioning.Observer) error) error {
	m := NewInstallModel(clusterName, domain)
	p := tea.NewProgram(m)

	go func() {
		if err := installFn(&programObserver{program: p}); err != nil {
			p.Send(ErrMsg{Err: err})
			return
		}
		p.Send(DoneMsg{})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}

	fm := finalModel.(Model)
	return fm.Err
}

// programObserver feeds provisioning events into a running Bubble Tea
// program. Send is safe from any goroutine.
type programObserver struct {
	program *tea.Program
}

var _ provisioning.Observer = (*programObserver)(nil)

// Printf implements provisioning.Logger.
func (o *programObserver) Printf(format string, v ...interface{}) {
	o.program.Send(StatusMsg{Line: fmt.Sprintf(format, v...)})
}

// Event implements provisioning.Observer. Phase lifecycle events move the
// dashboard's phase markers; everything else becomes the status line.
func (o *programObserver) Event(event provisioning.Event) {
	switch event.Type {
	case provisioning.EventPhaseStarted:
		o.program.Send(PhaseMsg{Phase: event.Phase})
	case provisioning.EventPhaseCompleted:
		o.program.Send(PhaseMsg{Phase: event.Phase, Done: true})
	case provisioning.EventPhaseFailed:
		o.program.Send(PhaseMsg{Phase: event.Phase, Err: fmt.Errorf("%s", event.Message)})
	default:
		line := event.Message
		if event.Resource != "" {
			line = event.Resource + ": " + event.Message
		}
		o.program.Send(StatusMsg{Line: line})
	}
}

// Progress implements provisioning.Observer.
func (o *programObserver) Progress(phase string, current, total int) {
	o.program.Send(StatusMsg{Line: fmt.Sprintf("[%s] %d/%d", phase, current, total)})
}

// WithFields implements provisioning.Observer. Context fields have no
// visual representation on the dashboard.
func (o *programObserver) WithFields(_ map[string]string) provisioning.Observer {
	return o
}
