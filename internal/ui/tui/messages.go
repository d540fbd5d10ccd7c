// Package tui renders install progress as a terminal dashboard: one line
// per phase plus the latest status message, driven by the structured
// observer events the provisioning pipeline already emits.
package tui

// PhaseMsg reports a phase starting, finishing, or failing.
type PhaseMsg struct {
	Phase string
	Done  bool
	Err   error
}

// StatusMsg carries a one-line progress note shown under the phase list.
type StatusMsg struct {
	Line string
}

// TickMsg is sent periodically to refresh the spinner and elapsed time.
type TickMsg struct{}

// ErrMsg carries a fatal error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the installation is complete.
type DoneMsg struct{}
