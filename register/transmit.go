package register

import (
	"fmt"

	"github.com/knieriem/mcp25xxx/spiproto"
)

// Bit positions shared by the identifier and DLC registers of
// transmit buffers, receive buffers, filters and masks.
const (
	sidlSidShift = 5
	sidlSrr      = 4
	sidlExide    = 3
	sidlEidShift = 0
	dlcRtr       = 6
	dlcShift     = 0
)

// TxRtsCtrl configures the TXnRTS pins.
type TxRtsCtrl struct {
	B0RtsPinMode bool // TX0RTS requests transmission of TXB0 (otherwise digital input)
	B1RtsPinMode bool
	B2RtsPinMode bool
	B0RtsPin     bool // read-only pin state in digital input mode
	B1RtsPin     bool
	B2RtsPin     bool
}

func TxRtsCtrlFromByte(b byte) TxRtsCtrl {
	return TxRtsCtrl{
		B0RtsPinMode: isSet(b, 0),
		B1RtsPinMode: isSet(b, 1),
		B2RtsPinMode: isSet(b, 2),
		B0RtsPin:     isSet(b, 3),
		B1RtsPin:     isSet(b, 4),
		B2RtsPin:     isSet(b, 5),
	}
}

func (TxRtsCtrl) Address() spiproto.Addr { return spiproto.TXRTSCTRL }

func (r TxRtsCtrl) Byte() byte {
	return flag(r.B0RtsPinMode, 0) | flag(r.B1RtsPinMode, 1) | flag(r.B2RtsPinMode, 2) |
		flag(r.B0RtsPin, 3) | flag(r.B1RtsPin, 4) | flag(r.B2RtsPin, 5)
}

func (r TxRtsCtrl) String() string {
	return formatBits("TXRTSCTRL", []string{"B0RTSM", "B1RTSM", "B2RTSM", "B0RTS", "B1RTS", "B2RTS"}, r.Byte())
}

func (TxRtsCtrl) register() {}

const (
	txbCtrlAbtf     = 6
	txbCtrlMloa     = 5
	txbCtrlTxErr    = 4
	txbCtrlTxReq    = 3
	txbCtrlTxpShift = 0
)

// TxReqMask selects TXBnCTRL.TXREQ for BIT MODIFY.
const TxReqMask = 1 << txbCtrlTxReq

// TxBCtrl is the control register of transmit buffer n.
type TxBCtrl struct {
	n        TxBuffer
	aborted  bool
	lostArb  bool
	txErr    bool
	txReq    bool
	priority uint8
}

// NewTxBCtrl returns a control register value for buffer n.
// ABTF, MLOA and TXERR are read-only and always encode as zero
// when built this way.
func NewTxBCtrl(n TxBuffer, txReq bool, priority uint8) (TxBCtrl, error) {
	if err := checkTxBuffer("TXBnCTRL", n); err != nil {
		return TxBCtrl{}, err
	}
	if err := checkField("TXBnCTRL", "TXP", int(priority), 2); err != nil {
		return TxBCtrl{}, err
	}
	return TxBCtrl{n: n, txReq: txReq, priority: priority}, nil
}

func TxBCtrlFromByte(n TxBuffer, b byte) (TxBCtrl, error) {
	if err := checkTxBuffer("TXBnCTRL", n); err != nil {
		return TxBCtrl{}, err
	}
	return TxBCtrl{
		n:        n,
		aborted:  isSet(b, txbCtrlAbtf),
		lostArb:  isSet(b, txbCtrlMloa),
		txErr:    isSet(b, txbCtrlTxErr),
		txReq:    isSet(b, txbCtrlTxReq),
		priority: b >> txbCtrlTxpShift & 3,
	}, nil
}

func (r TxBCtrl) Buffer() TxBuffer       { return r.n }
func (r TxBCtrl) Aborted() bool          { return r.aborted }
func (r TxBCtrl) LostArbitration() bool  { return r.lostArb }
func (r TxBCtrl) TransmitError() bool    { return r.txErr }
func (r TxBCtrl) TransmitRequest() bool  { return r.txReq }
func (r TxBCtrl) Priority() uint8        { return r.priority }
func (r TxBCtrl) Address() spiproto.Addr { return mustAddr(TxBufferAddress(r.n, BufferCtrl)) }

func (r TxBCtrl) Byte() byte {
	return flag(r.aborted, txbCtrlAbtf) |
		flag(r.lostArb, txbCtrlMloa) |
		flag(r.txErr, txbCtrlTxErr) |
		flag(r.txReq, txbCtrlTxReq) |
		r.priority<<txbCtrlTxpShift
}

func (r TxBCtrl) String() string {
	return fmt.Sprintf("%v{ABTF=%d MLOA=%d TXERR=%d TXREQ=%d TXP=%d}", r.Address(),
		b2i(r.aborted), b2i(r.lostArb), b2i(r.txErr), b2i(r.txReq), r.priority)
}

func (TxBCtrl) register() {}

// TxBSidh holds bits 10..3 of the standard identifier of
// transmit buffer n.
type TxBSidh struct {
	n TxBuffer
	v byte
}

func NewTxBSidh(n TxBuffer, v byte) (TxBSidh, error) {
	if err := checkTxBuffer("TXBnSIDH", n); err != nil {
		return TxBSidh{}, err
	}
	return TxBSidh{n: n, v: v}, nil
}

func (r TxBSidh) Address() spiproto.Addr { return mustAddr(TxBufferAddress(r.n, BufferSidh)) }
func (r TxBSidh) Byte() byte             { return r.v }
func (r TxBSidh) String() string         { return fmt.Sprintf("%v{SID=%#02x}", r.Address(), r.v) }
func (TxBSidh) register()                {}

// TxBSidl holds bits 2..0 of the standard identifier, the extended
// identifier enable flag and bits 17..16 of the extended identifier.
type TxBSidl struct {
	n     TxBuffer
	sid   uint8
	exide bool
	eid   uint8
}

func NewTxBSidl(n TxBuffer, sid uint8, exide bool, eid uint8) (TxBSidl, error) {
	if err := checkTxBuffer("TXBnSIDL", n); err != nil {
		return TxBSidl{}, err
	}
	if err := checkSidl("TXBnSIDL", sid, eid); err != nil {
		return TxBSidl{}, err
	}
	return TxBSidl{n: n, sid: sid, exide: exide, eid: eid}, nil
}

func TxBSidlFromByte(n TxBuffer, b byte) (TxBSidl, error) {
	return NewTxBSidl(n, b>>sidlSidShift&7, isSet(b, sidlExide), b>>sidlEidShift&3)
}

func (r TxBSidl) Sid() uint8             { return r.sid }
func (r TxBSidl) Extended() bool         { return r.exide }
func (r TxBSidl) Eid() uint8             { return r.eid }
func (r TxBSidl) Address() spiproto.Addr { return mustAddr(TxBufferAddress(r.n, BufferSidl)) }
func (r TxBSidl) Byte() byte             { return packSidl(r.sid, r.exide, r.eid) }

func (r TxBSidl) String() string {
	return fmt.Sprintf("%v{SID=%d EXIDE=%d EID=%d}", r.Address(), r.sid, b2i(r.exide), r.eid)
}

func (TxBSidl) register() {}

// TxBEid8 holds bits 15..8 of the extended identifier.
type TxBEid8 struct {
	n TxBuffer
	v byte
}

func NewTxBEid8(n TxBuffer, v byte) (TxBEid8, error) {
	if err := checkTxBuffer("TXBnEID8", n); err != nil {
		return TxBEid8{}, err
	}
	return TxBEid8{n: n, v: v}, nil
}

func (r TxBEid8) Address() spiproto.Addr { return mustAddr(TxBufferAddress(r.n, BufferEid8)) }
func (r TxBEid8) Byte() byte             { return r.v }
func (r TxBEid8) String() string         { return fmt.Sprintf("%v{EID=%#02x}", r.Address(), r.v) }
func (TxBEid8) register()                {}

// TxBEid0 holds bits 7..0 of the extended identifier.
type TxBEid0 struct {
	n TxBuffer
	v byte
}

func NewTxBEid0(n TxBuffer, v byte) (TxBEid0, error) {
	if err := checkTxBuffer("TXBnEID0", n); err != nil {
		return TxBEid0{}, err
	}
	return TxBEid0{n: n, v: v}, nil
}

func (r TxBEid0) Address() spiproto.Addr { return mustAddr(TxBufferAddress(r.n, BufferEid0)) }
func (r TxBEid0) Byte() byte             { return r.v }
func (r TxBEid0) String() string         { return fmt.Sprintf("%v{EID=%#02x}", r.Address(), r.v) }
func (TxBEid0) register()                {}

// TxBDlc holds the remote transmission request flag and the data
// length code of transmit buffer n.
type TxBDlc struct {
	n   TxBuffer
	rtr bool
	dlc uint8
}

// NewTxBDlc accepts DLC values up to 15; the chip transmits at most
// eight data bytes for values above eight.
func NewTxBDlc(n TxBuffer, rtr bool, dlc uint8) (TxBDlc, error) {
	if err := checkTxBuffer("TXBnDLC", n); err != nil {
		return TxBDlc{}, err
	}
	if err := checkField("TXBnDLC", "DLC", int(dlc), 4); err != nil {
		return TxBDlc{}, err
	}
	return TxBDlc{n: n, rtr: rtr, dlc: dlc}, nil
}

func TxBDlcFromByte(n TxBuffer, b byte) (TxBDlc, error) {
	return NewTxBDlc(n, isSet(b, dlcRtr), b>>dlcShift&0xF)
}

func (r TxBDlc) RemoteRequest() bool    { return r.rtr }
func (r TxBDlc) Len() uint8             { return r.dlc }
func (r TxBDlc) Address() spiproto.Addr { return mustAddr(TxBufferAddress(r.n, BufferDlc)) }
func (r TxBDlc) Byte() byte             { return flag(r.rtr, dlcRtr) | r.dlc<<dlcShift }

func (r TxBDlc) String() string {
	return fmt.Sprintf("%v{RTR=%d DLC=%d}", r.Address(), b2i(r.rtr), r.dlc)
}

func (TxBDlc) register() {}

// TxBData is data byte m of transmit buffer n.
type TxBData struct {
	n TxBuffer
	m uint8
	v byte
}

func NewTxBData(n TxBuffer, m uint8, v byte) (TxBData, error) {
	if err := checkTxBuffer("TXBnDm", n); err != nil {
		return TxBData{}, err
	}
	if err := checkField("TXBnDm", "m", int(m), 3); err != nil {
		return TxBData{}, err
	}
	return TxBData{n: n, m: m, v: v}, nil
}

func (r TxBData) Address() spiproto.Addr {
	return mustAddr(TxBufferAddress(r.n, BufferData+BufferRegister(r.m)))
}

func (r TxBData) Byte() byte     { return r.v }
func (r TxBData) String() string { return fmt.Sprintf("%v{%#02x}", r.Address(), r.v) }
func (TxBData) register()        {}

func checkSidl(reg string, sid, eid uint8) error {
	if err := checkField(reg, "SID", int(sid), 3); err != nil {
		return err
	}
	return checkField(reg, "EID", int(eid), 2)
}

func packSidl(sid uint8, exide bool, eid uint8) byte {
	return sid<<sidlSidShift | flag(exide, sidlExide) | eid<<sidlEidShift
}

func decodeTxBuffer(n TxBuffer, k BufferRegister, b byte) Register {
	var (
		r   Register
		err error
	)
	switch {
	case k == BufferCtrl:
		r, err = TxBCtrlFromByte(n, b)
	case k == BufferSidh:
		r, err = NewTxBSidh(n, b)
	case k == BufferSidl:
		r, err = TxBSidlFromByte(n, b)
	case k == BufferEid8:
		r, err = NewTxBEid8(n, b)
	case k == BufferEid0:
		r, err = NewTxBEid0(n, b)
	case k == BufferDlc:
		r, err = TxBDlcFromByte(n, b)
	default:
		r, err = NewTxBData(n, uint8(k-BufferData), b)
	}
	if err != nil {
		// n and k come from the address table
		panic(err)
	}
	return r
}
