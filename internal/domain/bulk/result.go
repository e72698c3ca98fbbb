package bulk

import (
	"time"
)

// ResultScope says what a result covers.
type ResultScope string

const (
	ScopeEntity ResultScope = "entity"
	ScopeBatch  ResultScope = "batch"
)

// OperationResult is the outcome for one entity, or for the whole batch when
// a bulk call failed wholesale.
type OperationResult struct {
	EntityID string      `json:"entity_id"`
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	Scope    ResultScope `json:"scope"`
	// CreatedID is set by duplicate.
	CreatedID string `json:"created_id,omitempty"`
}

// Artifact is the blob returned by an export.
type Artifact struct {
	ContentType string `json:"content_type"`
	Filename    string `json:"filename,omitempty"`
	Data        []byte `json:"-"`
}

// BatchOutcome aggregates the results of one run.
type BatchOutcome struct {
	Operation  OperationKind     `json:"operation"`
	Selection  Selection         `json:"selection"`
	Results    []OperationResult `json:"results"`
	Successful int               `json:"successful"`
	Failed     int               `json:"failed"`
	Export     *Artifact         `json:"-"`
	StartedAt  time.Time         `json:"started_at"`
	Duration   time.Duration     `json:"duration"`
}

// NewBatchOutcome creates an empty outcome for a run.
func NewBatchOutcome(op OperationKind, sel Selection) *BatchOutcome {
	return &BatchOutcome{
		Operation: op,
		Selection: append(Selection(nil), sel...),
		Results:   make([]OperationResult, 0, len(sel)),
		StartedAt: time.Now(),
	}
}

// Add appends an entity result and updates counters.
func (o *BatchOutcome) Add(result OperationResult) {
	if result.Scope == "" {
		result.Scope = ScopeEntity
	}
	o.Results = append(o.Results, result)
	if result.Success {
		o.Successful++
	} else {
		o.Failed++
	}
}

// FailBatch replaces any results with one failure covering every selected
// entity.
func (o *BatchOutcome) FailBatch(message string) {
	o.Results = []OperationResult{{Success: false, Message: message, Scope: ScopeBatch}}
	o.Successful = 0
	o.Failed = len(o.Selection)
}

// Total returns the number of selected entities.
func (o *BatchOutcome) Total() int {
	return len(o.Selection)
}

// AllSucceeded reports whether no entity failed.
func (o *BatchOutcome) AllSucceeded() bool {
	return o.Failed == 0
}

// FailedRefs returns the selection entries that did not succeed, in order.
// A batch-scoped failure returns the full selection.
func (o *BatchOutcome) FailedRefs() Selection {
	refs := make(Selection, 0, o.Failed)
	if len(o.Results) != len(o.Selection) {
		for _, r := range o.Results {
			if r.Scope == ScopeBatch && !r.Success {
				return append(refs, o.Selection...)
			}
		}
	}
	// Results are parallel to the selection for every per-entity run.
	for i, r := range o.Results {
		if !r.Success && i < len(o.Selection) {
			refs = append(refs, o.Selection[i])
		}
	}
	return refs
}

// Finish stamps the duration.
func (o *BatchOutcome) Finish() {
	o.Duration = time.Since(o.StartedAt)
}
