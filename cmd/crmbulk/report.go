package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	prtable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
	"github.com/VenkataThrinadh/crmbulk/internal/ports"
)

const maxCellWidth = 60

// writeOutcomeReport prints one row per result followed by the counts.
func writeOutcomeReport(w io.Writer, entity bulk.EntityType, outcome *bulk.BatchOutcome) {
	table := prtable.NewWriter()
	table.SetOutputMirror(w)
	setPlainTableStyle(table, 3)

	table.AppendHeader(prtable.Row{"Entity", "Result", "Message"})
	for _, r := range outcome.Results {
		id := r.EntityID
		if r.Scope == bulk.ScopeBatch {
			id = fmt.Sprintf("(all %d)", outcome.Total())
		}
		status := "ok"
		if !r.Success {
			status = "failed"
		}
		table.AppendRow(prtable.Row{id, status, r.Message})
	}
	table.Render()

	_, _ = fmt.Fprintf(w, "\n%s %s: %d succeeded, %d failed of %d in %s\n",
		outcome.Operation, entity, outcome.Successful, outcome.Failed, outcome.Total(),
		outcome.Duration.Truncate(time.Millisecond))
}

// writeEntityTable prints a page of entities restricted to columns.
func writeEntityTable(w io.Writer, columns []string, page ports.EntityPage) {
	table := prtable.NewWriter()
	table.SetOutputMirror(w)
	setPlainTableStyle(table, len(columns))

	header := make(prtable.Row, 0, len(columns))
	for _, col := range columns {
		header = append(header, col)
	}
	table.AppendHeader(header)

	for _, item := range page.Items {
		row := make(prtable.Row, 0, len(columns))
		for _, col := range columns {
			row = append(row, formatCell(item[col]))
		}
		table.AppendRow(row)
	}
	table.Render()

	_, _ = fmt.Fprintf(w, "\n%d of %d shown", len(page.Items), page.Total)
	if page.Page > 0 {
		_, _ = fmt.Fprintf(w, " (page %d)", page.Page)
	}
	_, _ = fmt.Fprintln(w)
}

// writeOperationsTable prints every supported operation.
func writeOperationsTable(w io.Writer) {
	table := prtable.NewWriter()
	table.SetOutputMirror(w)
	setPlainTableStyle(table, 4)

	table.AppendHeader(prtable.Row{"Operation", "Label", "Strategy", "Destructive"})
	for _, info := range bulk.AllOperations() {
		destructive := ""
		if info.Destructive {
			destructive = "yes"
		}
		table.AppendRow(prtable.Row{string(info.Kind), info.Label, string(info.Strategy), destructive})
	}
	table.Render()
}

func formatCell(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64, bool, int, int64:
		return fmt.Sprint(v)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}

func setPlainTableStyle(table prtable.Writer, columns int) {
	style := prtable.StyleBoxDefault
	style.PaddingLeft = ""
	style.PaddingRight = "  "

	configs := make([]prtable.ColumnConfig, 0, columns)
	for i := 1; i <= columns; i++ {
		configs = append(configs, prtable.ColumnConfig{
			Number:   i,
			Align:    text.AlignLeft,
			WidthMax: maxCellWidth,
		})
	}
	table.SetColumnConfigs(configs)
	table.SetStyle(prtable.Style{
		Box:     style,
		Color:   prtable.ColorOptionsDefault,
		Format:  prtable.FormatOptionsDefault,
		HTML:    prtable.DefaultHTMLOptions,
		Options: prtable.OptionsNoBordersAndSeparators,
		Title:   prtable.TitleOptionsDefault,
	})
	table.SuppressTrailingSpaces()
}
