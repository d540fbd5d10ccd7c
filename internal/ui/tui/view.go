package tui

import (
	"fmt"
	"strings"
	"time"
)

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderPhases(&b, m)

	if m.Status != "" && !m.Done && m.Err == nil {
		b.WriteString(dimStyle.Render("  " + m.Status))
		b.WriteString("\n")
	}

	renderFooter(&b, m)
	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	title := fmt.Sprintf("strand-azure: %s", m.ClusterName)
	if m.Domain != "" {
		title += fmt.Sprintf(" (%s)", m.Domain)
	}
	b.WriteString(titleStyle.Render(title))

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Done:
		status += readyStyle.Render("Installed")
	default:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + dimStyle.Render("Installing...")
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderPhases(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Install"))
	b.WriteString("\n")

	for _, phase := range m.Phases {
		var marker, name string
		switch {
		case phase.Err != nil:
			marker = failedStyle.Render(crossMark)
			name = failedStyle.Render(phase.Name)
		case phase.Done:
			marker = readyStyle.Render(checkMark)
			name = phase.Name
		case phase.Active:
			marker = activeStyle.Render(currentSpinner(m.SpinnerFrame))
			name = activeStyle.Render(phase.Name)
		default:
			marker = dimStyle.Render(pending)
			name = dimStyle.Render(phase.Name)
		}
		fmt.Fprintf(b, "  %s  %s\n", marker, name)
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := time.Since(m.StartTime).Round(time.Second)
	b.WriteString(footerStyle.Render(fmt.Sprintf("  elapsed %s · q to quit", elapsed)))
	b.WriteString("\n")
}
