package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
	pkgerrors "github.com/VenkataThrinadh/crmbulk/pkg/errors"
)

// envelope is the response wrapper used by the backend. Every field is
// optional; bodies without a wrapper are treated as bare data.
type envelope struct {
	Success    *bool           `json:"success"`
	Message    string          `json:"message"`
	Error      string          `json:"error"`
	Data       json.RawMessage `json:"data"`
	Total      *int            `json:"total"`
	Pagination *pagination     `json:"pagination"`
}

type pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func decodeEnvelope(body []byte) envelope {
	var env envelope
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return env
	}
	if trimmed[0] != '{' {
		env.Data = json.RawMessage(trimmed)
		return env
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return envelope{}
	}
	if env.Success == nil && len(env.Data) == 0 && env.Message == "" && env.Error == "" {
		env.Data = json.RawMessage(trimmed)
	}
	return env
}

func (e envelope) message() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// checkResponse converts transport errors, non-2xx statuses and explicit
// success=false envelopes into RemoteError.
func checkResponse(method, path string, resp *resty.Response, err error) (envelope, error) {
	if err != nil {
		return envelope{}, pkgerrors.NewRemoteError(method, path, 0, "", err)
	}
	env := decodeEnvelope(resp.Body())
	if resp.IsError() || resp.StatusCode() >= 300 {
		msg := env.message()
		if msg == "" {
			msg = truncate(strings.TrimSpace(string(resp.Body())), maxErrorBodyLength)
		}
		return env, pkgerrors.NewRemoteError(method, path, resp.StatusCode(), msg, nil)
	}
	if env.Success != nil && !*env.Success {
		msg := env.message()
		if msg == "" {
			msg = "request reported failure"
		}
		return env, pkgerrors.NewRemoteError(method, path, resp.StatusCode(), msg, nil)
	}
	return env, nil
}

func decodeEntity(method, path string, raw json.RawMessage) (bulk.Entity, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return bulk.Entity{}, nil
	}
	var entity bulk.Entity
	if err := json.Unmarshal(raw, &entity); err != nil {
		return nil, pkgerrors.NewRemoteError(method, path, 0, "", fmt.Errorf("decode entity: %w", err))
	}
	return entity, nil
}

// decodeItems accepts a bare array or an object holding the array under
// "items" or the collection name.
func decodeItems(method, path, collection string, raw json.RawMessage) ([]bulk.Entity, *int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil, nil
	}
	if trimmed[0] == '[' {
		var items []bulk.Entity
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, nil, pkgerrors.NewRemoteError(method, path, 0, "", fmt.Errorf("decode list: %w", err))
		}
		return items, nil, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, nil, pkgerrors.NewRemoteError(method, path, 0, "", fmt.Errorf("decode list: %w", err))
	}
	var total *int
	if rawTotal, ok := wrapped["total"]; ok {
		var n int
		if json.Unmarshal(rawTotal, &n) == nil {
			total = &n
		}
	}
	for _, key := range []string{"items", collection} {
		rawItems, ok := wrapped[key]
		if !ok {
			continue
		}
		var items []bulk.Entity
		if err := json.Unmarshal(rawItems, &items); err != nil {
			return nil, nil, pkgerrors.NewRemoteError(method, path, 0, "", fmt.Errorf("decode list: %w", err))
		}
		return items, total, nil
	}
	return nil, total, nil
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
