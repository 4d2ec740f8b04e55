package spiproto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn records the last transfer and answers duplex transfers
// with reply, padded or cut to the length of tx.
type fakeConn struct {
	tx     []byte
	rxNil  bool
	calls  int
	reply  []byte
	err    error
	rxLens []int
}

func (c *fakeConn) TxRx(tx, rx []byte) error {
	c.calls++
	c.tx = append([]byte(nil), tx...)
	c.rxNil = rx == nil
	if rx != nil {
		c.rxLens = append(c.rxLens, len(rx))
		copy(rx, c.reply)
	}
	return c.err
}

func TestReset(t *testing.T) {
	c := &fakeConn{}
	require.NoError(t, New(c).Reset())
	assert.Equal(t, []byte{0b1100_0000}, c.tx)
	assert.True(t, c.rxNil)
}

func TestRead(t *testing.T) {
	for _, a := range []Addr{CANCTRL, TXB0D0} {
		t.Run(a.String(), func(t *testing.T) {
			c := &fakeConn{reply: []byte{0, 0, 0xff}}
			b, err := New(c).Read(a)
			require.NoError(t, err)
			assert.Equal(t, []byte{0b0000_0011, byte(a), 0}, c.tx)
			assert.Equal(t, []int{3}, c.rxLens)
			assert.Equal(t, byte(0xff), b)
		})
	}
}

func TestReadSeq(t *testing.T) {
	c := &fakeConn{reply: []byte{0, 0, 1, 2, 3}}
	buf := make([]byte, 3)
	require.NoError(t, New(c).ReadSeq(TEC, buf))
	assert.Equal(t, []byte{InstrRead, byte(TEC), 0, 0, 0}, c.tx)
	assert.Equal(t, []byte{1, 2, 3}, buf)

	assert.ErrorIs(t, New(c).ReadSeq(TEC, nil), ErrInvalidByteCount)
}

func TestWrite(t *testing.T) {
	tests := []struct {
		addr Addr
		data []byte
	}{
		{CANCTRL, []byte{0b1001_0110}},
		{TXB0D0, []byte{0b0000_0001, 0b0010_0011, 0b0100_0101}},
	}
	for _, tc := range tests {
		t.Run(tc.addr.String(), func(t *testing.T) {
			c := &fakeConn{}
			require.NoError(t, New(c).Write(tc.addr, tc.data...))
			want := append([]byte{0b0000_0010, byte(tc.addr)}, tc.data...)
			assert.Equal(t, want, c.tx)
			assert.True(t, c.rxNil)
		})
	}
}

type testRegister struct{}

func (testRegister) Address() Addr { return RXB0CTRL }
func (testRegister) Byte() byte    { return 0x66 }

func TestWriteRegister(t *testing.T) {
	c := &fakeConn{}
	require.NoError(t, New(c).WriteRegister(testRegister{}))
	assert.Equal(t, []byte{0x02, 0x60, 0x66}, c.tx)
}

func TestReadRxBuffer(t *testing.T) {
	tests := []struct {
		instr byte
		p     RxBufferAddressPointer
		n     int
	}{
		{0b1001_0000, RxB0Sidh, 1},
		{0b1001_0010, RxB0D0, 4},
		{0b1001_0100, RxB1Sidh, 8},
		{0b1001_0110, RxB1D0, 16},
	}
	for _, tc := range tests {
		t.Run(tc.p.String(), func(t *testing.T) {
			c := &fakeConn{}
			buf, err := New(c).ReadRxBuffer(tc.p, tc.n)
			require.NoError(t, err)
			want := make([]byte, tc.n+1)
			want[0] = tc.instr
			assert.Equal(t, want, c.tx)
			assert.Equal(t, []int{tc.n + 1}, c.rxLens)
			assert.Len(t, buf, tc.n)
		})
	}
}

func TestReadRxBufferReply(t *testing.T) {
	c := &fakeConn{reply: []byte{0, 0xb, 0xa, 0, 0, 4, 1, 2, 3, 4}}
	buf, err := New(c).ReadRxBuffer(RxB0Sidh, 9)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xb, 0xa, 0, 0, 4, 1, 2, 3, 4}, buf)
}

func TestReadRxBufferInvalid(t *testing.T) {
	c := &fakeConn{}
	_, err := New(c).ReadRxBuffer(RxB0Sidh, 0)
	assert.ErrorIs(t, err, ErrInvalidByteCount)
	_, err = New(c).ReadRxBuffer(RxB1D0+1, 1)
	assert.ErrorIs(t, err, ErrInvalidPointer)
	assert.Zero(t, c.calls)
}

func TestLoadTxBuffer(t *testing.T) {
	tests := []struct {
		instr byte
		p     TxBufferAddressPointer
		data  []byte
	}{
		{0b0100_0000, TxB0Sidh, []byte{0b0000_0001}},
		{0b0100_0001, TxB0D0, []byte{1, 2}},
		{0b0100_0010, TxB1Sidh, []byte{1}},
		{0b0100_0011, TxB1D0, []byte{1}},
		{0b0100_0100, TxB2Sidh, []byte{1}},
		{0b0100_0101, TxB2D0, []byte{0x01, 0x23, 0x45, 0x67}},
	}
	for _, tc := range tests {
		t.Run(tc.p.String(), func(t *testing.T) {
			c := &fakeConn{}
			require.NoError(t, New(c).LoadTxBuffer(tc.p, tc.data))
			assert.Equal(t, append([]byte{tc.instr}, tc.data...), c.tx)
			assert.True(t, c.rxNil)
		})
	}

	c := &fakeConn{}
	assert.ErrorIs(t, New(c).LoadTxBuffer(TxB2D0+1, nil), ErrInvalidPointer)
	assert.Zero(t, c.calls)
}

func TestRequestToSend(t *testing.T) {
	tests := []struct {
		txb0, txb1, txb2 bool
		want             byte
	}{
		{false, false, false, 0b1000_0000},
		{true, false, false, 0b1000_0001},
		{false, true, false, 0b1000_0010},
		{false, false, true, 0b1000_0100},
		{true, false, true, 0b1000_0101},
		{true, true, true, 0b1000_0111},
	}
	for _, tc := range tests {
		c := &fakeConn{}
		require.NoError(t, New(c).RequestToSend(tc.txb0, tc.txb1, tc.txb2))
		assert.Equal(t, []byte{tc.want}, c.tx)
	}
}

func TestReadStatus(t *testing.T) {
	c := &fakeConn{reply: []byte{0, 3}}
	st, err := New(c).ReadStatus()
	require.NoError(t, err)
	assert.Equal(t, []byte{0b1010_0000, 0}, c.tx)
	assert.Equal(t, []int{2}, c.rxLens)
	assert.Equal(t, ReadStatusResponse{Rx0If: true, Rx1If: true}, st)
}

func TestRxStatus(t *testing.T) {
	c := &fakeConn{reply: []byte{0, 0xC2}}
	st, err := New(c).RxStatus()
	require.NoError(t, err)
	assert.Equal(t, []byte{0b1011_0000, 0}, c.tx)
	assert.Equal(t, StandardDataFrame, st.MessageType)
	assert.Equal(t, MessagesInBothBuffers, st.Received)
	assert.Equal(t, RxF2, st.FilterMatch)
}

func TestBitModify(t *testing.T) {
	tests := []struct {
		addr        Addr
		mask, value byte
	}{
		{CANINTE, 0b0101_1010, 0b0110_1001},
		{CANINTF, 0b1010_0101, 0b1001_0110},
	}
	for _, tc := range tests {
		c := &fakeConn{}
		require.NoError(t, New(c).BitModify(tc.addr, tc.mask, tc.value))
		assert.Equal(t, []byte{0b0000_0101, byte(tc.addr), tc.mask, tc.value}, c.tx)
		assert.True(t, c.rxNil)
	}
	// no whitelist: unsupported registers are passed through as well
	c := &fakeConn{}
	require.NoError(t, New(c).BitModify(TXB0D0, 0x0F, 0x01))
	assert.Equal(t, []byte{0x05, 0x36, 0x0F, 0x01}, c.tx)
}

func TestBitModifyRegister(t *testing.T) {
	c := &fakeConn{}
	require.NoError(t, New(c).BitModifyRegister(testRegister{}, 0x04))
	assert.Equal(t, []byte{0x05, 0x60, 0x04, 0x66}, c.tx)
}

func TestTransportErrorUnchanged(t *testing.T) {
	errBus := errors.New("spi: bus fault")
	p := New(&fakeConn{err: errBus})

	ops := map[string]func() error{
		"reset": p.Reset,
		"read": func() error {
			_, err := p.Read(CANSTAT)
			return err
		},
		"write": func() error { return p.Write(CANCTRL, 0) },
		"readrx": func() error {
			_, err := p.ReadRxBuffer(RxB0D0, 8)
			return err
		},
		"loadtx": func() error { return p.LoadTxBuffer(TxB0D0, []byte{1}) },
		"rts":    func() error { return p.RequestToSend(true, false, false) },
		"status": func() error {
			_, err := p.ReadStatus()
			return err
		},
		"rxstatus": func() error {
			_, err := p.RxStatus()
			return err
		},
		"modify": func() error { return p.BitModify(CANINTF, 1, 0) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			assert.Same(t, errBus, op())
		})
	}
}

func TestBitModifiable(t *testing.T) {
	assert.True(t, BitModifiable(CANCTRL))
	assert.True(t, BitModifiable(RXB1CTRL))
	assert.True(t, BitModifiable(CNF2))
	assert.False(t, BitModifiable(CANSTAT))
	assert.False(t, BitModifiable(TXB0D0))
	assert.False(t, BitModifiable(RXF0SIDH))
}

func TestInstructionName(t *testing.T) {
	tests := map[byte]string{
		0xC0: "RESET",
		0x03: "READ",
		0x02: "WRITE",
		0x05: "BIT MODIFY",
		0xA0: "READ STATUS",
		0xB0: "RX STATUS",
		0x90: "READ RX BUFFER",
		0x96: "READ RX BUFFER",
		0x40: "LOAD TX BUFFER",
		0x45: "LOAD TX BUFFER",
		0x80: "RTS",
		0x87: "RTS",
		0x46: "UNKNOWN",
		0xFF: "UNKNOWN",
	}
	for op, want := range tests {
		assert.Equal(t, want, InstructionName(op), "opcode %#02x", op)
	}
}
