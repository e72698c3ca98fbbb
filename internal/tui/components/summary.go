package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// SummaryData aggregates counts for rendering summaries.
type SummaryData struct {
	Total       int
	Successful  int
	Failed      int
	Finished    bool
	Cancelled   bool
	Duration    time.Duration
	ExportName  string
	ExportBytes int
	Err         error
}

// Summary renders a textual batch summary.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// View renders the summary.
func (s Summary) View() string {
	var lines []string
	if s.data.Total > 0 {
		lines = append(lines, fmt.Sprintf("Entities: %d succeeded, %d failed of %d", s.data.Successful, s.data.Failed, s.data.Total))
	}

	switch {
	case s.data.Cancelled:
		lines = append(lines, "View hidden; the batch continues in the background")
	case s.data.Err != nil:
		lines = append(lines, fmt.Sprintf("Batch failed: %v", s.data.Err))
	case s.data.Finished && s.data.Total > 0:
		if s.data.Failed == 0 {
			lines = append(lines, "Batch finished successfully")
		} else {
			lines = append(lines, "Batch finished with failures")
		}
	}

	if s.data.Finished && s.data.Duration > 0 {
		lines = append(lines, fmt.Sprintf("Duration: %s", s.data.Duration.Truncate(time.Millisecond)))
	}

	if s.data.ExportBytes > 0 || s.data.ExportName != "" {
		name := s.data.ExportName
		if name == "" {
			name = "export"
		}
		lines = append(lines, fmt.Sprintf("Export: %s (%s)", name, humanize.Bytes(uint64(s.data.ExportBytes))))
	}

	return strings.Join(lines, "\n")
}
