package bulk

import (
	"sort"
	"strings"
)

// OperationKind enumerates the supported bulk operations.
type OperationKind string

const (
	OpUpdate     OperationKind = "update"
	OpDelete     OperationKind = "delete"
	OpBulkUpdate OperationKind = "bulk_update"
	OpBulkDelete OperationKind = "bulk_delete"
	OpExport     OperationKind = "export"
	OpEmail      OperationKind = "email"
	OpActivate   OperationKind = "activate"
	OpDeactivate OperationKind = "deactivate"
	OpDuplicate  OperationKind = "duplicate"
	OpArchive    OperationKind = "archive"
	OpRestore    OperationKind = "restore"
)

// Strategy describes the shape of remote calls an operation makes.
type Strategy string

const (
	// StrategyPerEntity issues one call per entity, sequentially.
	StrategyPerEntity Strategy = "per_entity"
	// StrategyFanOut issues one call per entity concurrently and waits for all.
	StrategyFanOut Strategy = "fan_out"
	// StrategyBulkCall issues a single call covering the whole selection.
	StrategyBulkCall Strategy = "bulk_call"
)

// OperationInfo describes static properties of an operation.
type OperationInfo struct {
	Kind        OperationKind
	Label       string
	Strategy    Strategy
	Destructive bool
	// TargetStatus is set for status transitions.
	TargetStatus string
}

var operations = map[OperationKind]OperationInfo{
	OpUpdate:     {Kind: OpUpdate, Label: "Update", Strategy: StrategyPerEntity},
	OpDelete:     {Kind: OpDelete, Label: "Delete", Strategy: StrategyPerEntity, Destructive: true},
	OpBulkUpdate: {Kind: OpBulkUpdate, Label: "Bulk update", Strategy: StrategyBulkCall},
	OpBulkDelete: {Kind: OpBulkDelete, Label: "Bulk delete", Strategy: StrategyBulkCall, Destructive: true},
	OpExport:     {Kind: OpExport, Label: "Export", Strategy: StrategyBulkCall},
	OpEmail:      {Kind: OpEmail, Label: "Send email", Strategy: StrategyFanOut},
	OpActivate:   {Kind: OpActivate, Label: "Activate", Strategy: StrategyPerEntity, TargetStatus: StatusActive},
	OpDeactivate: {Kind: OpDeactivate, Label: "Deactivate", Strategy: StrategyPerEntity, TargetStatus: StatusInactive},
	OpDuplicate:  {Kind: OpDuplicate, Label: "Duplicate", Strategy: StrategyPerEntity},
	OpArchive:    {Kind: OpArchive, Label: "Archive", Strategy: StrategyPerEntity, Destructive: true, TargetStatus: StatusArchived},
	OpRestore:    {Kind: OpRestore, Label: "Restore", Strategy: StrategyPerEntity, TargetStatus: StatusActive},
}

// Status values written by status transitions.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusArchived = "archived"
)

// ParseOperationKind resolves user input to a known operation.
func ParseOperationKind(raw string) (OperationKind, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", ErrNoOperation
	}
	value = strings.ReplaceAll(value, "-", "_")
	kind := OperationKind(value)
	if _, ok := operations[kind]; !ok {
		return "", ErrUnknownOperation.WithContext(map[string]interface{}{"operation": raw})
	}
	return kind, nil
}

// Info returns the static description of the operation.
func (k OperationKind) Info() (OperationInfo, bool) {
	info, ok := operations[k]
	return info, ok
}

// IsDestructive reports whether callers should confirm before running k.
func (k OperationKind) IsDestructive() bool {
	return operations[k].Destructive
}

// Valid reports whether k is a recognised operation.
func (k OperationKind) Valid() bool {
	_, ok := operations[k]
	return ok
}

// AllOperations returns every operation sorted by kind.
func AllOperations() []OperationInfo {
	infos := make([]OperationInfo, 0, len(operations))
	for _, info := range operations {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Kind < infos[j].Kind })
	return infos
}
