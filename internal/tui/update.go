package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, nil
	case ProgressMsg:
		if msg.Total > 0 {
			m.total = msg.Total
		}
		if msg.Processed >= m.processed {
			m.processed = msg.Processed
		}
		if msg.Percent >= m.percent {
			m.percent = msg.Percent
		}
		return m, nil
	case EntityResultMsg:
		m.results = append(m.results, msg)
		if msg.Success {
			m.succeeded++
		} else {
			m.failed++
		}
		return m, nil
	case OutcomeMsg:
		m.outcome = msg.Outcome
		m.err = msg.Err
		m.finished = true
		if msg.Outcome != nil {
			m.processed = m.total
			m.percent = 100
		}
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			m.cancelled = !m.finished
			m.finished = true
			return m, tea.Quit
		}
	case tea.QuitMsg:
		m.finished = true
		return m, nil
	}

	return m, nil
}
