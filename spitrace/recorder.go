package spitrace

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/knieriem/mcp25xxx/spiproto"
)

// Recorder is a spiproto.Conn that reports each transfer of the
// connection it wraps to a Logger.
type Recorder struct {
	conn    spiproto.Conn
	logger  Logger
	session string
	seq     atomic.Uint64
	now     func() time.Time
}

// NewRecorder starts a new session, identified by a random UUID,
// and announces it to l if l keeps sessions. If c has a String
// method, its result names the port of the session.
func NewRecorder(c spiproto.Conn, l Logger) *Recorder {
	if l == nil {
		l = NoopLogger{}
	}
	r := &Recorder{
		conn:    c,
		logger:  l,
		session: uuid.NewString(),
		now:     time.Now,
	}
	if sl, ok := l.(SessionLogger); ok {
		s := Session{ID: r.session, Started: r.now()}
		if name, ok := c.(fmt.Stringer); ok {
			s.Port = name.String()
		}
		sl.StartSession(s)
	}
	return r
}

func (r *Recorder) Session() string {
	return r.session
}

// TxRx performs the transfer on the wrapped connection, and logs
// copies of tx and rx. Errors are returned unchanged.
func (r *Recorder) TxRx(tx, rx []byte) error {
	start := r.now()
	err := r.conn.TxRx(tx, rx)
	e := Event{
		Timestamp: start,
		SessionID: r.session,
		Seq:       r.seq.Add(1),
		Tx:        append([]byte(nil), tx...),
		Duration:  r.now().Sub(start),
	}
	if rx != nil {
		e.Rx = append([]byte{}, rx...)
	}
	if err != nil {
		e.Err = err.Error()
	}
	r.logger.Log(e)
	return err
}

var _ spiproto.Conn = (*Recorder)(nil)
