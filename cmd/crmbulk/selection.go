package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
)

// readSelection builds the selection from --ids and --ids-file. Order is
// kept and duplicates are passed through. "-" reads ids from stdin.
func readSelection(stdin io.Reader, ids []string, idsFile string) (bulk.Selection, error) {
	collected := lo.FilterMap(ids, func(id string, _ int) (string, bool) {
		id = strings.TrimSpace(id)
		return id, id != ""
	})

	if idsFile != "" {
		var reader io.Reader
		if idsFile == "-" {
			reader = stdin
		} else {
			file, err := os.Open(idsFile)
			if err != nil {
				return nil, fmt.Errorf("open ids file: %w", err)
			}
			defer file.Close()
			reader = file
		}

		fromFile, err := scanIDs(reader)
		if err != nil {
			return nil, fmt.Errorf("read ids file: %w", err)
		}
		collected = append(collected, fromFile...)
	}

	return bulk.SelectionFromIDs(collected...), nil
}

// scanIDs reads one id per line; blank lines and lines starting with '#'
// are skipped.
func scanIDs(r io.Reader) ([]string, error) {
	var ids []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	return ids, scanner.Err()
}

// parseAssignments turns k=v pairs into update fields. An empty value is
// kept so the runner can drop it.
func parseAssignments(pairs []string) (map[string]interface{}, error) {
	fields := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field assignment %q, expected key=value", pair)
		}
		fields[key] = value
	}
	return fields, nil
}
