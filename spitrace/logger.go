package spitrace

// Logger receives the events of a Recorder.
// Pass nil or NoopLogger to disable logging.
type Logger interface {
	// Log records an event. Implementations must be safe for
	// concurrent use and should not block.
	Log(event Event)
}

// SessionLogger is implemented by loggers that keep session
// metadata. A Recorder announces its session to them before the
// first transfer.
type SessionLogger interface {
	Logger
	StartSession(s Session)
}

// NoopLogger discards all events.
type NoopLogger struct{}

func (NoopLogger) Log(Event) {}

var _ Logger = NoopLogger{}

// MultiLogger sends events to several loggers, like a console
// SlogAdapter and a FileLogger.
type MultiLogger struct {
	loggers []Logger
}

func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

// StartSession forwards s to the loggers that keep sessions.
func (m *MultiLogger) StartSession(s Session) {
	for _, l := range m.loggers {
		if sl, ok := l.(SessionLogger); ok {
			sl.StartSession(s)
		}
	}
}

var _ SessionLogger = (*MultiLogger)(nil)
