package bulk

import (
	"context"
	"errors"
	"fmt"
	"sync"

	domain "github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
	"github.com/VenkataThrinadh/crmbulk/internal/ports"
)

type call struct {
	method string
	ids    []string
	fields map[string]interface{}
}

// fakeService records calls and fails scripted entity IDs.
type fakeService struct {
	mu       sync.Mutex
	calls    []call
	failIDs  map[string]error
	bulkErr  error
	entities map[string]domain.Entity
	nextID   int
	onSend   func(id string) error
	artifact *domain.Artifact
	panicMsg string
}

func newFakeService() *fakeService {
	return &fakeService{failIDs: map[string]error{}, entities: map[string]domain.Entity{}}
}

func (f *fakeService) failOn(id string, err error) *fakeService {
	f.failIDs[id] = err
	return f
}

func (f *fakeService) record(method string, ids []string, fields map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{method: method, ids: ids, fields: fields})
}

func (f *fakeService) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeService) methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.method
	}
	return out
}

func (f *fakeService) entityErr(id string) error {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.failIDs[id]
}

func (f *fakeService) Get(_ context.Context, id string) (domain.Entity, error) {
	f.record("get", []string{id}, nil)
	if err := f.entityErr(id); err != nil {
		return nil, err
	}
	entity, ok := f.entities[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return entity, nil
}

func (f *fakeService) List(context.Context, ports.ListFilter) (ports.EntityPage, error) {
	return ports.EntityPage{}, nil
}

func (f *fakeService) Update(_ context.Context, id string, fields map[string]interface{}) error {
	f.record("update", []string{id}, fields)
	return f.entityErr(id)
}

func (f *fakeService) Delete(_ context.Context, id string) error {
	f.record("delete", []string{id}, nil)
	return f.entityErr(id)
}

func (f *fakeService) Create(_ context.Context, fields map[string]interface{}) (domain.Entity, error) {
	f.record("create", nil, fields)
	f.mu.Lock()
	f.nextID++
	id := fmt.Sprintf("new-%d", f.nextID)
	f.mu.Unlock()
	created := domain.Entity{"id": id}
	for k, v := range fields {
		created[k] = v
	}
	return created, nil
}

func (f *fakeService) BulkUpdate(_ context.Context, ids []string, fields map[string]interface{}) error {
	f.record("bulk_update", ids, fields)
	return f.bulkErr
}

func (f *fakeService) BulkDelete(_ context.Context, ids []string) error {
	f.record("bulk_delete", ids, nil)
	return f.bulkErr
}

func (f *fakeService) BulkExport(_ context.Context, filter domain.ExportFilter) (*domain.Artifact, error) {
	f.record("export", filter.IDs, nil)
	if f.bulkErr != nil {
		return nil, f.bulkErr
	}
	return f.artifact, nil
}

func (f *fakeService) SendMessage(_ context.Context, id string, _ domain.Message) error {
	f.record("send_message", []string{id}, nil)
	if f.onSend != nil {
		if err := f.onSend(id); err != nil {
			return err
		}
	}
	return f.entityErr(id)
}

var _ ports.RemoteEntityService = (*fakeService)(nil)

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingPublisher) Publish(_ context.Context, event ports.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event.EventType())
	return nil
}

func (r *recordingPublisher) Subscribe(string, ports.EventHandler) (ports.Subscription, error) {
	return noopSubscription{}, nil
}

func (r *recordingPublisher) count(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == eventType {
			n++
		}
	}
	return n
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}
