package spitrace

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/knieriem/mcp25xxx/spiproto"
)

func TestEventInstruction(t *testing.T) {
	tests := []struct {
		tx    []byte
		instr string
		addr  spiproto.Addr
		ok    bool
	}{
		{[]byte{0x03, 0x0E, 0x00}, "READ", spiproto.CANSTAT, true},
		{[]byte{0x02, 0x2A, 0x00}, "WRITE", spiproto.CNF1, true},
		{[]byte{0x05, 0x2C, 0x01, 0x00}, "BIT MODIFY", spiproto.CANINTF, true},
		{[]byte{0x94, 0, 0}, "READ RX BUFFER", spiproto.None, false},
		{[]byte{0x41, 0}, "LOAD TX BUFFER", spiproto.None, false},
		{[]byte{0xC0}, "RESET", spiproto.None, false},
		{[]byte{0x03}, "READ", spiproto.None, false},
		{nil, "NONE", spiproto.None, false},
	}
	for _, tc := range tests {
		e := Event{Tx: tc.tx}
		assert.Equal(t, tc.instr, e.Instruction(), "% x", tc.tx)
		a, ok := e.Addr()
		assert.Equal(t, tc.ok, ok, "% x", tc.tx)
		assert.Equal(t, tc.addr, a, "% x", tc.tx)
	}
}

func TestEventString(t *testing.T) {
	e := Event{
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 6000, time.UTC),
		Seq:       3,
		Tx:        []byte{0x03, 0x0E, 0x00},
		Rx:        []byte{0x00, 0x00, 0x80},
	}
	assert.Equal(t, "03:04:05.000006 #3 READ CANSTAT tx=030e00 rx=000080", e.String())

	e = Event{Seq: 4, Tx: []byte{0xC0}, Err: "timeout"}
	assert.Contains(t, e.String(), `#4 RESET tx=c0 err="timeout"`)
	assert.NotContains(t, e.String(), "rx=")
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a := NewSlogAdapter(l)

	a.Log(Event{Seq: 1, Tx: []byte{0x02, 0x0F, 0x87}})
	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "instr=WRITE")
	assert.Contains(t, out, "addr=CANCTRL")
	assert.Contains(t, out, "tx=020f87")
	assert.NotContains(t, out, "rx=")

	buf.Reset()
	a.Log(Event{Seq: 2, Tx: []byte{0xA0, 0}, Rx: []byte{0, 3}, Err: "nack"})
	out = buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "rx=0003")
	assert.Contains(t, out, "error=nack")
}

func TestSlogAdapterLevel(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	NewSlogAdapter(l).Log(Event{Tx: []byte{0xC0}})
	assert.Empty(t, buf.String())
}
