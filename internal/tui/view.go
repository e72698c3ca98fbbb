package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/VenkataThrinadh/crmbulk/internal/tui/components"
)

// maxVisibleResults bounds the result list; older successes scroll away
// while failures stay.
const maxVisibleResults = 10

// View renders the current state of the model.
func (m Model) View() string {
	var sections []string

	title := titleStyle.Render(fmt.Sprintf("crmbulk • %s %s", m.operation, m.entity))
	sections = append(sections, title)

	progress := components.NewProgress(m.total).View(m.processed, m.percent)
	sections = append(sections, sectionStyle.Render("Progress"), progress)

	list := components.NewResultList(m.entries(), maxVisibleResults)
	if entries := list.Entries(); len(entries) > 0 {
		sections = append(sections, sectionStyle.Render("Results"))
		sections = append(sections, renderEntries(entries, list.Hidden()))
	}

	summary := components.NewSummary(m.summaryData()).View()
	if strings.TrimSpace(summary) != "" {
		sections = append(sections, sectionStyle.Render("Summary"), summaryStyle.Render(summary))
	}

	if !m.finished {
		sections = append(sections, mutedStyle.Render("q: hide view (the batch keeps running)"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) entries() []components.ResultEntry {
	if m.outcome != nil && len(m.outcome.Results) > 0 {
		entries := make([]components.ResultEntry, 0, len(m.outcome.Results))
		for _, r := range m.outcome.Results {
			id := r.EntityID
			if id == "" {
				id = "batch"
			}
			entries = append(entries, components.ResultEntry{ID: id, Success: r.Success, Message: r.Message})
		}
		return entries
	}
	entries := make([]components.ResultEntry, 0, len(m.results))
	for _, r := range m.results {
		entries = append(entries, components.ResultEntry{ID: r.EntityID, Success: r.Success, Message: r.Message})
	}
	return entries
}

func (m Model) summaryData() components.SummaryData {
	data := components.SummaryData{
		Total:      m.total,
		Successful: m.succeeded,
		Failed:     m.failed,
		Finished:   m.finished,
		Cancelled:  m.cancelled,
		Err:        m.err,
	}
	if m.outcome != nil {
		data.Successful = m.outcome.Successful
		data.Failed = m.outcome.Failed
		data.Duration = m.outcome.Duration
		if m.outcome.Export != nil {
			data.ExportBytes = len(m.outcome.Export.Data)
			data.ExportName = m.outcome.Export.Filename
		}
	}
	return data
}

func renderEntries(entries []components.ResultEntry, hidden int) string {
	var lines []string
	if hidden > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf(" … %d earlier successes", hidden)))
	}
	for _, entry := range entries {
		line := fmt.Sprintf(" %s %s", StatusIcon(entry.Success), entry.ID)
		if strings.TrimSpace(entry.Message) != "" {
			line = fmt.Sprintf("%s: %s", line, entry.Message)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// StatusIcon returns the glyph representing a result.
func StatusIcon(success bool) string {
	if success {
		return successStyle.Render("✓")
	}
	return failureStyle.Render("✗")
}
