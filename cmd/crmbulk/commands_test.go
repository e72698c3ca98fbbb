package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListRendersVisibleColumns(t *testing.T) {
	crm, server := newFakeCRM(t)
	crm.records = []map[string]interface{}{
		{"id": "c1", "name": "Ada Lovelace", "email": "ada@example.com", "phone": "555-0101", "status": "active"},
		{"id": "c2", "name": "Alan Turing", "email": "alan@example.com", "phone": "555-0102", "status": "inactive"},
	}
	cfg := writeTestConfig(t, server.URL)

	stdout, _, err := executeCommand(t, "", "--config", cfg, "columns", "hide", "phone", "--entity", "customers")
	require.NoError(t, err)
	require.Contains(t, stdout, "customers: id, name, email, status")

	stdout, _, err = executeCommand(t, "", "--config", cfg, "list", "--entity", "customers", "--status", "active")
	require.NoError(t, err)
	require.Contains(t, stdout, "NAME")
	require.Contains(t, stdout, "Ada Lovelace")
	require.NotContains(t, stdout, "PHONE")
	require.NotContains(t, stdout, "555-0101")
	require.Contains(t, stdout, "2 of 2 shown (page 1)")

	calls := crm.recorded()
	require.Equal(t, "/api/customers", calls[len(calls)-1].Path)
}

func TestListColumnsFlagOverridesPreferences(t *testing.T) {
	crm, server := newFakeCRM(t)
	crm.records = []map[string]interface{}{{"id": "p1", "title": "Loft", "price": 420000.0}}
	cfg := writeTestConfig(t, server.URL)

	stdout, _, err := executeCommand(t, "", "--config", cfg, "list", "--entity", "properties", "--columns", "title,price")
	require.NoError(t, err)
	require.Contains(t, stdout, "Loft")
	require.Contains(t, stdout, "420000")
	require.NotContains(t, stdout, "CITY")
}

func TestColumnsShowAndReset(t *testing.T) {
	_, server := newFakeCRM(t)
	cfg := writeTestConfig(t, server.URL)

	stdout, _, err := executeCommand(t, "", "--config", cfg, "columns", "show", "agent", "--entity", "properties")
	require.NoError(t, err)
	require.Contains(t, stdout, "properties: id, title, city, price, status, agent")

	stdout, _, err = executeCommand(t, "", "--config", cfg, "columns", "list", "--entity", "properties")
	require.NoError(t, err)
	require.Contains(t, stdout, "agent")

	stdout, _, err = executeCommand(t, "", "--config", cfg, "columns", "reset", "--entity", "properties")
	require.NoError(t, err)
	require.Contains(t, stdout, "properties: id, title, city, price, status\n")
}

func TestColumnsHideAllIsRejected(t *testing.T) {
	_, server := newFakeCRM(t)
	cfg := writeTestConfig(t, server.URL)

	_, _, err := executeCommand(t, "", "--config", cfg, "columns", "hide", "id", "name", "email", "phone", "status", "--entity", "customers")
	require.Error(t, err)
	require.Contains(t, err.Error(), "At least one column must stay visible")
}

func TestOperationsListsDestructiveFlag(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "operations")
	require.NoError(t, err)
	require.Contains(t, stdout, "bulk_delete")
	require.Contains(t, stdout, "Send email")
	require.Contains(t, stdout, "yes")
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	originalVersion := version
	originalCommit := commit
	originalDate := date
	t.Cleanup(func() {
		version = originalVersion
		commit = originalCommit
		date = originalDate
	})

	version = "1.2.3"
	commit = "abcdef1"
	date = "2026-10-01"

	stdout, _, err := executeCommand(t, "", "version")
	require.NoError(t, err)
	require.Contains(t, stdout, "crmbulk 1.2.3")
	require.Contains(t, stdout, "abcdef1")
	require.Contains(t, stdout, "2026-10-01")
}

func TestConfigErrorSuggestsBaseURL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CRMBULK_BASE_URL", "")

	_, _, err := executeCommand(t, "", "list", "--entity", "customers")
	require.Error(t, err)
	require.Contains(t, err.Error(), "CRMBULK_BASE_URL")
}
