package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knieriem/mcp25xxx/spiproto"
)

func TestCanCtrl(t *testing.T) {
	r, err := NewCanCtrl(NormalMode, false, false, true, ClkOutDiv8)
	require.NoError(t, err)
	assert.Equal(t, byte(0x07), r.Byte())

	r, err = NewCanCtrl(ConfigurationMode, false, false, true, ClkOutDiv8)
	require.NoError(t, err)
	assert.Equal(t, byte(0x87), r.Byte())
	assert.Equal(t, "CANCTRL{REQOP=configuration ABAT=0 OSM=0 CLKEN=1 CLKPRE=div8}", r.String())

	r = CanCtrlFromByte(0b0111_1001)
	assert.Equal(t, ListenOnlyMode, r.RequestedMode())
	assert.True(t, r.AbortAll())
	assert.True(t, r.OneShot())
	assert.False(t, r.ClkOutEnabled())
	assert.Equal(t, ClkOutDiv2, r.ClkOutPrescaler())

	_, err = NewCanCtrl(7, false, false, false, ClkOutDiv1)
	assert.NoError(t, err)
	_, err = NewCanCtrl(8, false, false, false, ClkOutDiv1)
	assert.ErrorIs(t, err, ErrInvalidField)
	_, err = NewCanCtrl(NormalMode, false, false, false, 4)
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestCanStat(t *testing.T) {
	r := CanStatFromByte(0x8E)
	assert.Equal(t, ConfigurationMode, r.Mode())
	assert.Equal(t, RxB1Interrupt, r.InterruptCode())
	assert.Equal(t, "CANSTAT{OPMOD=configuration ICOD=RXB1}", r.String())

	// bits 0 and 4 are not implemented
	assert.Equal(t, byte(0x8E), CanStatFromByte(0x9F).Byte())

	r, err := NewCanStat(LoopbackMode, TxB0Interrupt)
	require.NoError(t, err)
	assert.Equal(t, byte(0b0100_0110), r.Byte())
	_, err = NewCanStat(NormalMode, 8)
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestOperationMode(t *testing.T) {
	for m := NormalMode; m <= ConfigurationMode; m++ {
		got, err := ParseOperationMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseOperationMode("fast")
	assert.Error(t, err)
	assert.Equal(t, "OperationMode(6)", OperationMode(6).String())
}

func TestInterrupts(t *testing.T) {
	tests := []struct {
		in   Interrupts
		want byte
	}{
		{Interrupts{Rx0: true}, 0x01},
		{Interrupts{Rx1: true}, 0x02},
		{Interrupts{Tx0: true}, 0x04},
		{Interrupts{Tx1: true}, 0x08},
		{Interrupts{Tx2: true}, 0x10},
		{Interrupts{Error: true}, 0x20},
		{Interrupts{WakeUp: true}, 0x40},
		{Interrupts{MessageError: true}, 0x80},
		{Interrupts{Rx0: true, MessageError: true}, 0x81},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, CanIntE{tc.in}.Byte())
		assert.Equal(t, tc.want, CanIntF{tc.in}.Byte())
		assert.Equal(t, tc.in, CanIntFFromByte(tc.want).Interrupts)
	}
	assert.Equal(t, "CANINTF{RX0IF=1 RX1IF=0 TX0IF=0 TX1IF=0 TX2IF=0 ERRIF=0 WAKIF=0 MERRF=1}",
		CanIntFFromByte(0x81).String())
	assert.Equal(t, spiproto.CANINTE, CanIntE{}.Address())
}

func TestEflg(t *testing.T) {
	r := EflgFromByte(0b0010_0101)
	assert.True(t, r.ErrorWarning)
	assert.True(t, r.TxErrorWarning)
	assert.True(t, r.BusOff)
	assert.False(t, r.RxBuffer0Overflow)
	assert.Equal(t, "EFLG{EWARN=1 RXWAR=0 TXWAR=1 RXEP=0 TXEP=0 TXBO=1 RX0OVR=0 RX1OVR=0}", r.String())
	assert.Equal(t, byte(0xC0), Eflg{RxBuffer0Overflow: true, RxBuffer1Overflow: true}.Byte())
	assert.Equal(t, byte(0xC0), byte(OverflowMask))
}

func TestCounters(t *testing.T) {
	assert.Equal(t, "TEC{128}", Tec(128).String())
	assert.Equal(t, spiproto.REC, Rec(0).Address())
}

func TestBitTiming(t *testing.T) {
	c1, err := NewCnf1(3, 63)
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), c1.Byte())
	_, err = NewCnf1(4, 0)
	assert.ErrorIs(t, err, ErrInvalidField)

	c2, err := NewCnf2(true, true, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, byte(0xF0), c2.Byte())
	_, err = NewCnf2(false, false, 8, 0)
	assert.ErrorIs(t, err, ErrInvalidField)
	_, err = NewCnf2(false, false, 0, 8)
	assert.ErrorIs(t, err, ErrInvalidField)

	c3, err := NewCnf3(true, false, 6)
	require.NoError(t, err)
	assert.Equal(t, byte(0x86), c3.Byte())
	_, err = NewCnf3(false, false, 8)
	assert.ErrorIs(t, err, ErrInvalidField)

	// unimplemented bits 3..5
	assert.Equal(t, byte(0xC7), Cnf3FromByte(0xFF).Byte())
}

func TestBitrate(t *testing.T) {
	tests := []struct {
		osc        int
		c1, c2, c3 byte
		want       int
	}{
		{16_000_000, 0x00, 0xF0, 0x86, 500_000},
		{16_000_000, 0x01, 0xF0, 0x86, 250_000},
		{16_000_000, 0x03, 0xF0, 0x86, 125_000},
		{16_000_000, 0x00, 0xD0, 0x82, 1_000_000},
		{16_000_000, 0x41, 0xF1, 0x85, 250_000},
		{20_000_000, 0x00, 0xFA, 0x87, 500_000},
		{8_000_000, 0x00, 0x80, 0x80, 1_000_000},
	}
	for _, tc := range tests {
		got := Bitrate(tc.osc, Cnf1FromByte(tc.c1), Cnf2FromByte(tc.c2), Cnf3FromByte(tc.c3))
		assert.Equal(t, tc.want, got)
	}

	// without BTLMODE PS2 follows PS1, but is at least 2 TQ
	c2, _ := NewCnf2(false, false, 0, 0)
	assert.Equal(t, 5, BitTime(c2, Cnf3{}))
	c2, _ = NewCnf2(false, false, 3, 1)
	assert.Equal(t, 1+2+4+4, BitTime(c2, Cnf3{phSeg2: 7}))
}

func TestTxBuffer(t *testing.T) {
	ctrl, err := NewTxBCtrl(2, true, 3)
	require.NoError(t, err)
	assert.Equal(t, spiproto.TXB2CTRL, ctrl.Address())
	assert.Equal(t, byte(0x0B), ctrl.Byte())
	_, err = NewTxBCtrl(3, false, 0)
	assert.ErrorIs(t, err, ErrInvalidField)
	_, err = NewTxBCtrl(0, false, 4)
	assert.ErrorIs(t, err, ErrInvalidField)

	ctrl, err = TxBCtrlFromByte(0, 0x70)
	require.NoError(t, err)
	assert.True(t, ctrl.Aborted())
	assert.True(t, ctrl.LostArbitration())
	assert.True(t, ctrl.TransmitError())
	assert.False(t, ctrl.TransmitRequest())

	sidl, err := NewTxBSidl(0, 5, true, 2)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAA), sidl.Byte())
	assert.Equal(t, spiproto.TXB0SIDL, sidl.Address())
	_, err = NewTxBSidl(0, 8, false, 0)
	assert.ErrorIs(t, err, ErrInvalidField)
	_, err = NewTxBSidl(0, 0, false, 4)
	assert.ErrorIs(t, err, ErrInvalidField)

	dlc, err := NewTxBDlc(1, true, 8)
	require.NoError(t, err)
	assert.Equal(t, byte(0x48), dlc.Byte())
	assert.Equal(t, spiproto.TXB1DLC, dlc.Address())
	assert.Equal(t, "TXB1DLC{RTR=1 DLC=8}", dlc.String())
	_, err = NewTxBDlc(0, false, 15)
	assert.NoError(t, err)
	_, err = NewTxBDlc(0, false, 16)
	assert.ErrorIs(t, err, ErrInvalidField)

	d, err := NewTxBData(2, 7, 0x5A)
	require.NoError(t, err)
	assert.Equal(t, spiproto.TXB2D7, d.Address())
	_, err = NewTxBData(0, 8, 0)
	assert.ErrorIs(t, err, ErrInvalidField)

	rts := TxRtsCtrl{B0RtsPinMode: true, B2RtsPin: true}
	assert.Equal(t, byte(0x21), rts.Byte())
	assert.Equal(t, rts, TxRtsCtrlFromByte(0xE1))
}

func TestRxBuffer(t *testing.T) {
	r0, err := NewRxB0Ctrl(RxModeAny, true)
	require.NoError(t, err)
	assert.Equal(t, byte(0x66), r0.Byte())
	assert.True(t, RxB0CtrlFromByte(0x66).Rollover())
	_, err = NewRxB0Ctrl(4, false)
	assert.ErrorIs(t, err, ErrInvalidField)

	// BUKT1 is decoded on its own, even where it disagrees with BUKT
	for _, b := range []byte{0x02, 0x04, 0x64, 0x66, 0x6F} {
		assert.Equal(t, b, RxB0CtrlFromByte(b).Byte(), "%#02x", b)
	}
	r0 = RxB0CtrlFromByte(0x04)
	assert.True(t, r0.Rollover())
	assert.Equal(t, "RXB0CTRL{RXM=filters RXRTR=0 BUKT=1 BUKT1=0 FILHIT0=0}", r0.String())
	r0, err = NewRxB0Ctrl(RxModeFilters, false)
	require.NoError(t, err)
	assert.Equal(t, byte(0x00), r0.Byte())

	r1 := RxB1CtrlFromByte(0x65)
	assert.Equal(t, RxModeAny, r1.Mode())
	assert.False(t, r1.RemoteRequest())
	assert.Equal(t, uint8(5), r1.FilterHit())
	assert.Equal(t, "RXB1CTRL{RXM=any RXRTR=0 FILHIT=5}", r1.String())

	sidl, err := RxBSidlFromByte(1, 0xFF)
	require.NoError(t, err)
	assert.True(t, sidl.RemoteRequest())
	assert.True(t, sidl.Extended())
	assert.Equal(t, uint8(7), sidl.Sid())
	assert.Equal(t, uint8(3), sidl.Eid())
	assert.Equal(t, byte(0xFB), sidl.Byte())

	_, err = NewRxBSidh(2, 0)
	assert.ErrorIs(t, err, ErrInvalidField)

	bf := BfpCtrl{B1BfPinEnable: true, B0BfPinState: true}
	assert.Equal(t, byte(0x18), bf.Byte())
}

func TestFilterRegisters(t *testing.T) {
	f, err := NewFilter(1, 0x123, false)
	require.NoError(t, err)
	assert.Equal(t, spiproto.RXF1SIDH, f.Address())
	assert.Equal(t, []byte{0x24, 0x60, 0, 0}, f.Bytes())
	assert.False(t, f.Sidl.Extended())

	f, err = NewFilter(3, 0x12345678, true)
	require.NoError(t, err)
	assert.Equal(t, spiproto.RXF3SIDH, f.Address())
	assert.Equal(t, []byte{0x91, 0xA8, 0x56, 0x78}, f.Bytes())
	assert.Equal(t, spiproto.RXF3EID0, f.Eid0.Address())

	_, err = NewFilter(6, 0, false)
	assert.ErrorIs(t, err, ErrInvalidField)
	_, err = NewFilter(0, MaxStandardID+1, false)
	assert.ErrorIs(t, err, ErrInvalidField)

	_, err = NewRxFSidl(0, 0, false, 4)
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestMaskRegisters(t *testing.T) {
	m, err := NewMask(0, MaxStandardID, false)
	require.NoError(t, err)
	assert.Equal(t, spiproto.RXM0SIDH, m.Address())
	assert.Equal(t, []byte{0xFF, 0xE0, 0, 0}, m.Bytes())

	// masks have no EXIDE bit
	m, err = NewMask(1, MaxExtendedID, true)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xE3, 0xFF, 0xFF}, m.Bytes())

	_, err = NewMask(2, 0, false)
	assert.ErrorIs(t, err, ErrInvalidField)
	_, err = NewRxMSidl(0, 8, 0)
	assert.ErrorIs(t, err, ErrInvalidField)
}
