package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knieriem/mcp25xxx/spiproto"
)

// scriptConn records transfers and answers them with replies, in
// order.
type scriptConn struct {
	tx      [][]byte
	replies [][]byte
}

func (c *scriptConn) TxRx(tx, rx []byte) error {
	c.tx = append(c.tx, append([]byte(nil), tx...))
	if len(c.replies) != 0 {
		copy(rx, c.replies[0])
		c.replies = c.replies[1:]
	}
	return nil
}

func newTestShell(replies ...[]byte) (*shell, *scriptConn, *bytes.Buffer) {
	c := &scriptConn{replies: replies}
	var out bytes.Buffer
	return &shell{p: spiproto.New(c), out: &out}, c, &out
}

func run(sh *shell, line string) error {
	return sh.exec(strings.Fields(line))
}

func TestShellRead(t *testing.T) {
	sh, c, out := newTestShell([]byte{0, 0, 0x80})
	require.NoError(t, run(sh, "read canstat"))
	assert.Equal(t, [][]byte{{0x03, 0x0E, 0x00}}, c.tx)
	assert.Contains(t, out.String(), "CANSTAT = 0x80")
	assert.Contains(t, out.String(), "configuration")
}

func TestShellReadSeq(t *testing.T) {
	sh, c, out := newTestShell([]byte{0, 0, 0x08, 0x11, 0x22})
	require.NoError(t, run(sh, "r 0x30 3"))
	require.Len(t, c.tx, 1)
	assert.Equal(t, []byte{0x03, 0x30, 0, 0, 0}, c.tx[0])
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "TXB0CTRL = 0x08"), lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "TXB0SIDL = 0x22"), lines[2])
}

func TestShellWrite(t *testing.T) {
	sh, c, _ := newTestShell()
	require.NoError(t, run(sh, "write CNF3 05 f1 0x00"))
	assert.Equal(t, [][]byte{{0x02, 0x28, 0x05, 0xF1, 0x00}}, c.tx)
}

func TestShellModify(t *testing.T) {
	sh, c, out := newTestShell()
	require.NoError(t, run(sh, "modify CANCTRL E0 80"))
	assert.Equal(t, [][]byte{{0x05, 0x0F, 0xE0, 0x80}}, c.tx)
	assert.Empty(t, out.String())

	require.NoError(t, run(sh, "m TEC 01 00"))
	assert.Contains(t, out.String(), "warning: TEC")
	assert.Len(t, c.tx, 2)
}

func TestShellStatus(t *testing.T) {
	sh, c, out := newTestShell([]byte{0, 0x14}, []byte{0, 0x40})
	require.NoError(t, run(sh, "status"))
	require.NoError(t, run(sh, "rxstatus"))
	assert.Equal(t, [][]byte{{0xA0, 0}, {0xB0, 0}}, c.tx)
	assert.Contains(t, out.String(), "0x14 rx0if=false rx1if=false tx0req=true")
}

func TestShellRTS(t *testing.T) {
	sh, c, _ := newTestShell()
	require.NoError(t, run(sh, "rts 5"))
	require.NoError(t, run(sh, "reset"))
	assert.Equal(t, [][]byte{{0x85}, {0xC0}}, c.tx)

	assert.Error(t, run(sh, "rts 8"))
	assert.Error(t, run(sh, "rts"))
}

func TestShellDecode(t *testing.T) {
	sh, c, out := newTestShell()
	require.NoError(t, run(sh, "decode CANCTRL 87"))
	assert.Empty(t, c.tx)
	assert.Contains(t, out.String(), "CANCTRL = 0x87")

	out.Reset()
	require.NoError(t, run(sh, "d 0x7F 12"))
	assert.Equal(t, "0x7f = 0x12\n", out.String())
}

func TestShellErrors(t *testing.T) {
	sh, c, _ := newTestShell()
	for _, line := range []string{
		"bogus",
		"read",
		"read NOSUCH",
		"read 0x7F 2",
		"read 0x30 x",
		"write CNF1",
		"write CNF1 100",
		"modify CANCTRL E0",
		"decode CANCTRL",
	} {
		assert.Error(t, run(sh, line), line)
	}
	assert.Empty(t, c.tx)

	assert.NoError(t, run(sh, ""))
	assert.Equal(t, errExit, run(sh, "exit"))
}

func TestParseAddr(t *testing.T) {
	tests := []struct {
		in   string
		want spiproto.Addr
	}{
		{"canctrl", spiproto.CANCTRL},
		{"RXB1CTRL", spiproto.RXB1CTRL},
		{"0x2B", spiproto.CANINTE},
		{"2b", spiproto.CANINTE},
		{"10", 0x10},
		{"7f", 0x7F},
	}
	for _, tc := range tests {
		got, err := parseAddr(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
	for _, in := range []string{"", "80", "0xFF", "nosuch"} {
		_, err := parseAddr(in)
		assert.Error(t, err, in)
	}
}

func TestParseByte(t *testing.T) {
	b, err := parseByte("0xFF")
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), b)
	b, err = parseByte("a5")
	require.NoError(t, err)
	assert.Equal(t, byte(0xA5), b)
	_, err = parseByte("100")
	assert.Error(t, err)
}
