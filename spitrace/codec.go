package spitrace

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// A trace file is a CBOR sequence of records. Each session starts
// with a session record; the transfer records following it belong
// to that session and store their start time as an offset from
// the session's start. Sessions appended to an existing file just
// continue the sequence.
type record struct {
	Session  *sessionRecord  `cbor:"1,keyasint,omitempty"`
	Transfer *transferRecord `cbor:"2,keyasint,omitempty"`
}

type sessionRecord struct {
	ID      string    `cbor:"1,keyasint"`
	Started time.Time `cbor:"2,keyasint"`
	Port    string    `cbor:"3,keyasint,omitempty"`
}

type transferRecord struct {
	Seq    uint64 `cbor:"1,keyasint"`
	Offset int64  `cbor:"2,keyasint"` // ns since session start
	Tx     []byte `cbor:"3,keyasint"`
	Rx     []byte `cbor:"4,keyasint,omitempty"`
	Dur    int64  `cbor:"5,keyasint,omitempty"` // ns
	Err    string `cbor:"6,keyasint,omitempty"`
}

var errBadRecord = errors.New("spitrace: record is neither session nor transfer")

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.EncOptions{
		Sort: cbor.SortCoreDeterministic,
		Time: cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("spitrace: cbor encoder mode: %v", err))
	}
	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("spitrace: cbor decoder mode: %v", err))
	}
}

// encoder writes records, emitting a session record whenever the
// session of the events changes.
type encoder struct {
	enc *cbor.Encoder
	cur *Session
}

func newEncoder(w io.Writer) *encoder {
	return &encoder{enc: encMode.NewEncoder(w)}
}

func (e *encoder) session(s Session) error {
	e.cur = &s
	return e.enc.Encode(record{Session: &sessionRecord{ID: s.ID, Started: s.Started, Port: s.Port}})
}

func (e *encoder) transfer(ev Event) error {
	if e.cur == nil || e.cur.ID != ev.SessionID {
		// events of a session that was not announced
		err := e.session(Session{ID: ev.SessionID, Started: ev.Timestamp})
		if err != nil {
			return err
		}
	}
	return e.enc.Encode(record{Transfer: &transferRecord{
		Seq:    ev.Seq,
		Offset: int64(ev.Timestamp.Sub(e.cur.Started)),
		Tx:     ev.Tx,
		Rx:     ev.Rx,
		Dur:    int64(ev.Duration),
		Err:    ev.Err,
	}})
}

// decoder turns records back into events.
type decoder struct {
	dec *cbor.Decoder
	cur Session
}

func newDecoder(r io.Reader) *decoder {
	return &decoder{dec: decMode.NewDecoder(r)}
}

// next returns the next transfer, or io.EOF.
func (d *decoder) next() (Event, error) {
	for {
		var rec record
		err := d.dec.Decode(&rec)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, err
		}
		switch {
		case rec.Session != nil:
			d.cur = Session{ID: rec.Session.ID, Started: rec.Session.Started, Port: rec.Session.Port}
		case rec.Transfer != nil:
			t := rec.Transfer
			return Event{
				Timestamp: d.cur.Started.Add(time.Duration(t.Offset)),
				SessionID: d.cur.ID,
				Seq:       t.Seq,
				Tx:        t.Tx,
				Rx:        t.Rx,
				Duration:  time.Duration(t.Dur),
				Err:       t.Err,
			}, nil
		default:
			return Event{}, errBadRecord
		}
	}
}
