package spitrace

import (
	"os"

	"github.com/knieriem/mcp25xxx/spiproto"
)

// Filter selects events. Zero fields match all events.
type Filter struct {
	SessionID string

	// Instruction is a name as returned by Event.Instruction.
	Instruction string

	// Addr matches READ, WRITE and BIT MODIFY on one register.
	Addr *spiproto.Addr

	// ErrorsOnly selects failed transfers.
	ErrorsOnly bool
}

func (f *Filter) matches(e Event) bool {
	if f.SessionID != "" && e.SessionID != f.SessionID {
		return false
	}
	if f.Instruction != "" && e.Instruction() != f.Instruction {
		return false
	}
	if f.Addr != nil {
		a, ok := e.Addr()
		if !ok || a != *f.Addr {
			return false
		}
	}
	if f.ErrorsOnly && e.Err == "" {
		return false
	}
	return true
}

// Reader reads events from a trace file written by FileLogger.
type Reader struct {
	file   *os.File
	dec    *decoder
	filter Filter
}

func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		file:   f,
		dec:    newDecoder(f),
		filter: filter,
	}, nil
}

// Next returns the next matching event, or io.EOF at the end of
// the file.
func (r *Reader) Next() (Event, error) {
	for {
		e, err := r.dec.next()
		if err != nil {
			return Event{}, err
		}
		if r.filter.matches(e) {
			return e, nil
		}
	}
}

// Session returns the session of the event last returned by Next.
func (r *Reader) Session() Session {
	return r.dec.cur
}

func (r *Reader) Close() error {
	return r.file.Close()
}
