package oplog

// Logger is the interface applications implement to receive trace events.
// Pass nil or NoopLogger to disable tracing.
type Logger interface {
	// Log records an operation event. Implementations must be thread-safe.
	// The event should be processed quickly or queued; blocking delays the
	// caller's hardware operation from returning.
	Log(event Event)
}

// NoopLogger discards all events. Use when tracing is disabled.
// NoopLogger is safe for concurrent use and usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}

// agentLogger stamps events with an agent run ID before delegating.
type agentLogger struct {
	id   string
	next Logger
}

// WithAgentID wraps next so every event without an AgentID gets stamped
// with id. Use one wrapper per agent run.
func WithAgentID(next Logger, id string) Logger {
	return &agentLogger{id: id, next: next}
}

// Log stamps and forwards the event.
func (l *agentLogger) Log(event Event) {
	if event.AgentID == "" {
		event.AgentID = l.id
	}
	l.next.Log(event)
}

// Compile-time interface satisfaction check.
var _ Logger = (*agentLogger)(nil)
