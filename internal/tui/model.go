package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
)

// ProgressMsg reports how many entities of the batch have been attempted.
type ProgressMsg struct {
	Processed int
	Total     int
	Percent   float64
}

// EntityResultMsg reports the result of one entity as it settles.
type EntityResultMsg struct {
	EntityID string
	Success  bool
	Message  string
}

// OutcomeMsg carries the final outcome; Err is the error returned by the runner.
type OutcomeMsg struct {
	Outcome *bulk.BatchOutcome
	Err     error
}

type tickMsg struct{}

// Model contains the Bubbletea state for a running batch.
type Model struct {
	entity    bulk.EntityType
	operation bulk.OperationKind
	total     int
	processed int
	percent   float64
	results   []EntityResultMsg
	succeeded int
	failed    int
	outcome   *bulk.BatchOutcome
	err       error
	finished  bool
	cancelled bool
	started   time.Time
}

// NewModel constructs the view for op over total entities.
func NewModel(entity bulk.EntityType, op bulk.OperationKind, total int) Model {
	return Model{
		entity:    entity,
		operation: op,
		total:     total,
		results:   make([]EntityResultMsg, 0, total),
		started:   time.Now(),
	}
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

// Total returns the number of selected entities.
func (m Model) Total() int {
	return m.total
}

// Processed returns the number of attempted entities.
func (m Model) Processed() int {
	return m.processed
}

// IsFinished reports whether the outcome arrived or the view was dismissed.
func (m Model) IsFinished() bool {
	return m.finished
}

// Cancelled reports whether the user dismissed the view before the batch ended.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Outcome returns the final outcome, if received.
func (m Model) Outcome() *bulk.BatchOutcome {
	return m.outcome
}
