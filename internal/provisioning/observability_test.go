package provisioning

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// MockObserver is a test implementation of Observer that records events.
type MockObserver struct {
	events   []Event
	messages []string
	fields   map[string]string
}

func NewMockObserver() *MockObserver {
	return &MockObserver{
		events:   make([]Event, 0),
		messages: make([]string, 0),
		fields:   make(map[string]string),
	}
}

func (m *MockObserver) Printf(format string, v ...interface{}) {
	m.messages = append(m.messages, fmt.Sprintf(format, v...))
}

func (m *MockObserver) Event(event Event) {
	m.events = append(m.events, event)
}

func (m *MockObserver) Progress(phase string, current, total int) {
	m.Event(Event{
		Type:    EventProgress,
		Phase:   phase,
		Message: fmt.Sprintf("progress %d/%d", current, total),
	})
}

func (m *MockObserver) WithFields(fields map[string]string) Observer {
	newObserver := NewMockObserver()
	for k, v := range m.fields {
		newObserver.fields[k] = v
	}
	for k, v := range fields {
		newObserver.fields[k] = v
	}
	return newObserver
}

func TestConsoleObserver_Printf(t *testing.T) {
	observer := NewConsoleObserver()

	// Should not panic
	observer.Printf("test message: %s", "value")
}

func TestConsoleObserver_Event(t *testing.T) {
	observer := NewConsoleObserver()

	event := Event{
		Type:     EventResourceCreated,
		Phase:    "services",
		Resource: "strandtest",
		Message:  "registry created",
		Fields: map[string]string{
			"type": "registry",
			"id":   "/subscriptions/x/resourceGroups/rg",
		},
	}

	// Should not panic
	observer.Event(event)
}

func TestConsoleObserver_Progress(t *testing.T) {
	observer := NewConsoleObserver()

	// Should not panic
	observer.Progress("infrastructure", 2, 5)
	observer.Progress("infrastructure", 0, 0)
}

func TestConsoleObserver_WithFields(t *testing.T) {
	observer := NewConsoleObserver()

	contextual := observer.WithFields(map[string]string{
		"cluster": "strand-test",
		"region":  "westeurope",
	})

	assert.NotNil(t, contextual)
}

func TestConsoleObserver_FormatEvent(t *testing.T) {
	observer := NewConsoleObserver()

	msg := observer.formatEvent(Event{
		Type:     EventResourceExists,
		Phase:    "services",
		Resource: "strandstorage",
		Message:  "storage account already exists",
	})

	assert.Contains(t, msg, "resource.exists")
	assert.Contains(t, msg, "[services]")
	assert.Contains(t, msg, "resource=strandstorage")
}

func TestMockObserver_Events(t *testing.T) {
	observer := NewMockObserver()

	LogPhaseStart(observer, "infrastructure")
	LogResourceCreating(observer, "infrastructure", "cluster", "strand-test")
	LogResourceCreated(observer, "infrastructure", "cluster", "strand-test", "/subscriptions/x/cluster")
	LogPhaseComplete(observer, "infrastructure", 2*time.Second)

	assert.Len(t, observer.events, 4)

	assert.Equal(t, EventPhaseStarted, observer.events[0].Type)
	assert.Equal(t, "infrastructure", observer.events[0].Phase)

	assert.Equal(t, EventResourceCreating, observer.events[1].Type)
	assert.Equal(t, "strand-test", observer.events[1].Resource)

	assert.Equal(t, EventResourceCreated, observer.events[2].Type)
	assert.Equal(t, "/subscriptions/x/cluster", observer.events[2].Fields["id"])

	assert.Equal(t, EventPhaseCompleted, observer.events[3].Type)
}

func TestEventTypes(t *testing.T) {
	eventTypes := []EventType{
		EventPhaseStarted,
		EventPhaseCompleted,
		EventPhaseFailed,
		EventResourceCreating,
		EventResourceCreated,
		EventResourceExists,
		EventResourceConfigured,
		EventResourceFailed,
		EventResourceDeleting,
		EventResourceDeleted,
		EventValidationWarning,
		EventValidationError,
		EventProgress,
	}

	for _, et := range eventTypes {
		assert.NotEmpty(t, et)
	}
}

func TestObserver_ImplementsLogger(t *testing.T) {
	var logger Logger
	var observer Observer = NewConsoleObserver()

	logger = observer
	assert.NotNil(t, logger)
}

func TestLogHelpers(t *testing.T) {
	observer := NewMockObserver()

	LogPhaseStart(observer, "phase1")
	LogPhaseComplete(observer, "phase1", time.Second)
	LogPhaseFailed(observer, "phase2", assert.AnError)
	LogResourceCreating(observer, "services", "registry", "reg-1")
	LogResourceCreated(observer, "services", "registry", "reg-1", "id-123")
	LogResourceExists(observer, "services", "registry", "reg-1", "id-123")
	LogResourceConfigured(observer, "services", "registry", "reg-1", "pull access granted")
	LogResourceFailed(observer, "services", "registry", "reg-1", assert.AnError)
	LogResourceDeleting(observer, "teardown", "cluster", "strand-test")
	LogResourceDeleted(observer, "teardown", "cluster", "strand-test")
	LogValidationWarning(observer, "services", "managed DNS disabled")

	assert.Len(t, observer.events, 11)
}
