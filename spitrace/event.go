package spitrace

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/knieriem/mcp25xxx/spiproto"
)

// Session describes the transfers recorded by one Recorder.
type Session struct {
	// ID is a random UUID.
	ID      string
	Started time.Time

	// Port names the wrapped connection, if it has a name.
	Port string
}

// Event is one SPI transfer.
type Event struct {
	// Timestamp when the transfer started.
	Timestamp time.Time
	SessionID string

	// Seq numbers the transfers of a session, starting at 1.
	Seq uint64
	Tx  []byte

	// Rx is nil for write-only transfers.
	Rx       []byte
	Duration time.Duration

	// Err is the transport error message, if any.
	Err string
}

// Instruction returns the name of the SPI instruction sent.
func (e Event) Instruction() string {
	if len(e.Tx) == 0 {
		return "NONE"
	}
	return spiproto.InstructionName(e.Tx[0])
}

// Addr returns the register address of instructions that carry one.
func (e Event) Addr() (spiproto.Addr, bool) {
	if len(e.Tx) < 2 {
		return spiproto.None, false
	}
	switch e.Tx[0] {
	case spiproto.InstrRead, spiproto.InstrWrite, spiproto.InstrBitModify:
		return spiproto.Addr(e.Tx[1]), true
	}
	return spiproto.None, false
}

func (e Event) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s #%d %s", e.Timestamp.Format("15:04:05.000000"), e.Seq, e.Instruction())
	if a, ok := e.Addr(); ok {
		fmt.Fprintf(&sb, " %v", a)
	}
	fmt.Fprintf(&sb, " tx=%s", hex.EncodeToString(e.Tx))
	if e.Rx != nil {
		fmt.Fprintf(&sb, " rx=%s", hex.EncodeToString(e.Rx))
	}
	if e.Err != "" {
		fmt.Fprintf(&sb, " err=%q", e.Err)
	}
	return sb.String()
}
