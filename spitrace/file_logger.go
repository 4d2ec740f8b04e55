package spitrace

import (
	"bufio"
	"os"
	"sync"
)

// FileLogger appends a CBOR trace to a file. Writes are buffered;
// the buffer is flushed when a session starts, when a transfer
// fails, and on Close, so that the transfers leading to an error
// are on disk even if the program does not exit cleanly.
// FileLogger is safe for concurrent use.
type FileLogger struct {
	mu     sync.Mutex
	file   *os.File
	w      *bufio.Writer
	enc    *encoder
	err    error
	closed bool
}

// NewFileLogger opens path for appending, creating it if needed.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	w := bufio.NewWriter(f)
	return &FileLogger{file: f, w: w, enc: newEncoder(w)}, nil
}

func (l *FileLogger) StartSession(s Session) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.err != nil {
		return
	}
	l.err = l.enc.session(s)
	if l.err == nil {
		l.err = l.w.Flush()
	}
}

// Log writes e. After the first write error, events are dropped;
// Err and Close report that error.
func (l *FileLogger) Log(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.err != nil {
		return
	}
	l.err = l.enc.transfer(e)
	if l.err == nil && e.Err != "" {
		l.err = l.w.Flush()
	}
}

// Flush writes buffered records to the file.
func (l *FileLogger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.err != nil {
		return l.err
	}
	l.err = l.w.Flush()
	return l.err
}

// Err returns the first write error.
func (l *FileLogger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close flushes and closes the file. Later events are ignored.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return l.err
	}
	l.closed = true
	if l.err == nil {
		l.err = l.w.Flush()
	}
	if err := l.file.Close(); l.err == nil {
		l.err = err
	}
	return l.err
}

var _ SessionLogger = (*FileLogger)(nil)
