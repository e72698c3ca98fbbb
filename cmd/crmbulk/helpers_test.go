package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type backendCall struct {
	Method string
	Path   string
	Body   map[string]interface{}
}

// fakeCRM is an in-memory backend speaking the JSON envelope. Ids listed in
// failing are answered with 422.
type fakeCRM struct {
	t *testing.T

	mu       sync.Mutex
	calls    []backendCall
	failing  map[string]bool
	bulkFail bool
	records  []map[string]interface{}
}

func newFakeCRM(t *testing.T) (*fakeCRM, *httptest.Server) {
	t.Helper()
	crm := &fakeCRM{t: t, failing: map[string]bool{}}
	server := httptest.NewServer(http.HandlerFunc(crm.serve))
	t.Cleanup(server.Close)
	return crm, server
}

func (f *fakeCRM) failID(id string, fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[id] = fail
}

func (f *fakeCRM) recorded() []backendCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]backendCall(nil), f.calls...)
}

func (f *fakeCRM) serve(w http.ResponseWriter, r *http.Request) {
	call := backendCall{Method: r.Method, Path: r.URL.Path}
	raw, _ := io.ReadAll(r.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &call.Body)
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	records := f.records
	bulkFail := f.bulkFail
	f.mu.Unlock()

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case r.Method == http.MethodGet && len(parts) == 2:
		body, _ := json.Marshal(map[string]interface{}{
			"success": true,
			"data":    records,
			"pagination": map[string]int{
				"total": len(records), "page": 1, "limit": 25,
			},
		})
		writeBody(w, http.StatusOK, "application/json", string(body))
	case r.Method == http.MethodPost && len(parts) == 3 && parts[2] == "export":
		w.Header().Set("Content-Disposition", `attachment; filename="customers.json"`)
		writeBody(w, http.StatusOK, "application/json", `[{"id":"c1"},{"id":"c2"}]`)
	case r.Method == http.MethodPost && len(parts) == 3 && strings.HasPrefix(parts[2], "bulk-"):
		if bulkFail {
			writeBody(w, http.StatusInternalServerError, "application/json", `{"success":false,"message":"database unavailable"}`)
			return
		}
		writeBody(w, http.StatusOK, "application/json", `{"success":true}`)
	case len(parts) >= 3:
		f.mu.Lock()
		fail := f.failing[parts[2]]
		f.mu.Unlock()
		if fail {
			writeBody(w, http.StatusUnprocessableEntity, "application/json", `{"success":false,"message":"record is locked"}`)
			return
		}
		writeBody(w, http.StatusOK, "application/json", `{"success":true,"data":{"id":"`+parts[2]+`"}}`)
	default:
		writeBody(w, http.StatusNotFound, "application/json", `{"success":false,"message":"not found"}`)
	}
}

func writeBody(w http.ResponseWriter, status int, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// writeTestConfig points a config file at baseURL and isolates state in a
// temp directory.
func writeTestConfig(t *testing.T, baseURL string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("CRMBULK_BASE_URL", "")
	t.Setenv("CRMBULK_STATE_DIR", filepath.Join(dir, "state"))

	path := filepath.Join(dir, "config.yaml")
	content := "api:\n  base_url: " + baseURL + "\n  timeout: 5s\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func withTerminalStdin(t *testing.T) {
	t.Helper()
	original := stdinIsTerminal
	stdinIsTerminal = func(io.Reader) bool { return true }
	t.Cleanup(func() { stdinIsTerminal = original })
}
