package register

import (
	"fmt"

	"github.com/knieriem/mcp25xxx/spiproto"
)

// BfpCtrl configures the RXnBF pins.
type BfpCtrl struct {
	B0BfPinMode   bool // RX0BF signals a message loaded into RXB0 (otherwise digital output)
	B1BfPinMode   bool
	B0BfPinEnable bool
	B1BfPinEnable bool
	B0BfPinState  bool // output level in digital output mode
	B1BfPinState  bool
}

func BfpCtrlFromByte(b byte) BfpCtrl {
	return BfpCtrl{
		B0BfPinMode:   isSet(b, 0),
		B1BfPinMode:   isSet(b, 1),
		B0BfPinEnable: isSet(b, 2),
		B1BfPinEnable: isSet(b, 3),
		B0BfPinState:  isSet(b, 4),
		B1BfPinState:  isSet(b, 5),
	}
}

func (BfpCtrl) Address() spiproto.Addr { return spiproto.BFPCTRL }

func (r BfpCtrl) Byte() byte {
	return flag(r.B0BfPinMode, 0) | flag(r.B1BfPinMode, 1) |
		flag(r.B0BfPinEnable, 2) | flag(r.B1BfPinEnable, 3) |
		flag(r.B0BfPinState, 4) | flag(r.B1BfPinState, 5)
}

func (r BfpCtrl) String() string {
	return formatBits("BFPCTRL", []string{"B0BFM", "B1BFM", "B0BFE", "B1BFE", "B0BFS", "B1BFS"}, r.Byte())
}

func (BfpCtrl) register() {}

// RxMode is the receive buffer operating mode, RXBnCTRL.RXM.
type RxMode uint8

const (
	RxModeFilters      RxMode = iota // receive messages that match a filter
	RxModeStandardOnly               // only standard identifiers that match a filter
	RxModeExtendedOnly               // only extended identifiers that match a filter
	RxModeAny                        // filters and masks off, receive any message
)

func (m RxMode) String() string {
	switch m {
	case RxModeFilters:
		return "filters"
	case RxModeStandardOnly:
		return "standard-only"
	case RxModeExtendedOnly:
		return "extended-only"
	case RxModeAny:
		return "any"
	}
	return fmt.Sprintf("RxMode(%d)", uint8(m))
}

const (
	rxbCtrlRxmShift     = 5
	rxbCtrlRxRtr        = 3
	rxb0CtrlBukt        = 2
	rxb0CtrlBukt1       = 1
	rxb0CtrlFilhit0     = 0
	rxb1CtrlFilhitShift = 0
)

// Masks for BIT MODIFY on RXBnCTRL.
const (
	RxModeMask   = 3 << rxbCtrlRxmShift
	RolloverMask = 1 << rxb0CtrlBukt
)

// RxB0Ctrl is the control register of receive buffer 0.
type RxB0Ctrl struct {
	mode     RxMode
	rtr      bool
	rollover bool
	bukt1    bool
	filter   uint8
}

// NewRxB0Ctrl returns a control value for receive buffer 0. With
// rollover set, a message arriving while RXB0 is full is written
// to RXB1. BUKT1, the chip's read-only copy of BUKT, is set along
// with BUKT.
func NewRxB0Ctrl(mode RxMode, rollover bool) (RxB0Ctrl, error) {
	if err := checkField("RXB0CTRL", "RXM", int(mode), 2); err != nil {
		return RxB0Ctrl{}, err
	}
	return RxB0Ctrl{mode: mode, rollover: rollover, bukt1: rollover}, nil
}

func RxB0CtrlFromByte(b byte) RxB0Ctrl {
	return RxB0Ctrl{
		mode:     RxMode(b >> rxbCtrlRxmShift & 3),
		rtr:      isSet(b, rxbCtrlRxRtr),
		rollover: isSet(b, rxb0CtrlBukt),
		bukt1:    isSet(b, rxb0CtrlBukt1),
		filter:   b >> rxb0CtrlFilhit0 & 1,
	}
}

func (r RxB0Ctrl) Mode() RxMode        { return r.mode }
func (r RxB0Ctrl) RemoteRequest() bool { return r.rtr }
func (r RxB0Ctrl) Rollover() bool      { return r.rollover }
func (r RxB0Ctrl) FilterHit() uint8    { return r.filter }

func (RxB0Ctrl) Address() spiproto.Addr { return spiproto.RXB0CTRL }

func (r RxB0Ctrl) Byte() byte {
	return byte(r.mode)<<rxbCtrlRxmShift |
		flag(r.rtr, rxbCtrlRxRtr) |
		flag(r.rollover, rxb0CtrlBukt) |
		flag(r.bukt1, rxb0CtrlBukt1) |
		r.filter<<rxb0CtrlFilhit0
}

func (r RxB0Ctrl) String() string {
	return fmt.Sprintf("RXB0CTRL{RXM=%v RXRTR=%d BUKT=%d BUKT1=%d FILHIT0=%d}", r.mode, b2i(r.rtr), b2i(r.rollover), b2i(r.bukt1), r.filter)
}

func (RxB0Ctrl) register() {}

// RxB1Ctrl is the control register of receive buffer 1.
type RxB1Ctrl struct {
	mode   RxMode
	rtr    bool
	filter uint8
}

func NewRxB1Ctrl(mode RxMode) (RxB1Ctrl, error) {
	if err := checkField("RXB1CTRL", "RXM", int(mode), 2); err != nil {
		return RxB1Ctrl{}, err
	}
	return RxB1Ctrl{mode: mode}, nil
}

func RxB1CtrlFromByte(b byte) RxB1Ctrl {
	return RxB1Ctrl{
		mode:   RxMode(b >> rxbCtrlRxmShift & 3),
		rtr:    isSet(b, rxbCtrlRxRtr),
		filter: b >> rxb1CtrlFilhitShift & 7,
	}
}

func (r RxB1Ctrl) Mode() RxMode        { return r.mode }
func (r RxB1Ctrl) RemoteRequest() bool { return r.rtr }

// FilterHit returns the number of the filter that accepted the
// message in RXB1: 0 and 1 only with rollover from RXB0.
func (r RxB1Ctrl) FilterHit() uint8 { return r.filter }

func (RxB1Ctrl) Address() spiproto.Addr { return spiproto.RXB1CTRL }

func (r RxB1Ctrl) Byte() byte {
	return byte(r.mode)<<rxbCtrlRxmShift | flag(r.rtr, rxbCtrlRxRtr) | r.filter<<rxb1CtrlFilhitShift
}

func (r RxB1Ctrl) String() string {
	return fmt.Sprintf("RXB1CTRL{RXM=%v RXRTR=%d FILHIT=%d}", r.mode, b2i(r.rtr), r.filter)
}

func (RxB1Ctrl) register() {}

// RxBSidh holds bits 10..3 of the standard identifier of a
// message in receive buffer n.
type RxBSidh struct {
	n RxBuffer
	v byte
}

func NewRxBSidh(n RxBuffer, v byte) (RxBSidh, error) {
	if err := checkRxBuffer("RXBnSIDH", n); err != nil {
		return RxBSidh{}, err
	}
	return RxBSidh{n: n, v: v}, nil
}

func (r RxBSidh) Address() spiproto.Addr { return mustAddr(RxBufferAddress(r.n, BufferSidh)) }
func (r RxBSidh) Byte() byte             { return r.v }
func (r RxBSidh) String() string         { return fmt.Sprintf("%v{SID=%#02x}", r.Address(), r.v) }
func (RxBSidh) register()                {}

// RxBSidl is the SIDL register of receive buffer n. Unlike its
// transmit counterpart it carries the SRR flag of standard frames.
type RxBSidl struct {
	n   RxBuffer
	sid uint8
	srr bool
	ide bool
	eid uint8
}

func NewRxBSidl(n RxBuffer, sid uint8, srr, ide bool, eid uint8) (RxBSidl, error) {
	if err := checkRxBuffer("RXBnSIDL", n); err != nil {
		return RxBSidl{}, err
	}
	if err := checkSidl("RXBnSIDL", sid, eid); err != nil {
		return RxBSidl{}, err
	}
	return RxBSidl{n: n, sid: sid, srr: srr, ide: ide, eid: eid}, nil
}

func RxBSidlFromByte(n RxBuffer, b byte) (RxBSidl, error) {
	return NewRxBSidl(n, b>>sidlSidShift&7, isSet(b, sidlSrr), isSet(b, sidlExide), b>>sidlEidShift&3)
}

func (r RxBSidl) Sid() uint8 { return r.sid }

// RemoteRequest reports the SRR bit: a standard remote frame.
func (r RxBSidl) RemoteRequest() bool    { return r.srr }
func (r RxBSidl) Extended() bool         { return r.ide }
func (r RxBSidl) Eid() uint8             { return r.eid }
func (r RxBSidl) Address() spiproto.Addr { return mustAddr(RxBufferAddress(r.n, BufferSidl)) }

func (r RxBSidl) Byte() byte {
	return packSidl(r.sid, r.ide, r.eid) | flag(r.srr, sidlSrr)
}

func (r RxBSidl) String() string {
	return fmt.Sprintf("%v{SID=%d SRR=%d IDE=%d EID=%d}", r.Address(), r.sid, b2i(r.srr), b2i(r.ide), r.eid)
}

func (RxBSidl) register() {}

// RxBEid8 holds bits 15..8 of the extended identifier.
type RxBEid8 struct {
	n RxBuffer
	v byte
}

func NewRxBEid8(n RxBuffer, v byte) (RxBEid8, error) {
	if err := checkRxBuffer("RXBnEID8", n); err != nil {
		return RxBEid8{}, err
	}
	return RxBEid8{n: n, v: v}, nil
}

func (r RxBEid8) Address() spiproto.Addr { return mustAddr(RxBufferAddress(r.n, BufferEid8)) }
func (r RxBEid8) Byte() byte             { return r.v }
func (r RxBEid8) String() string         { return fmt.Sprintf("%v{EID=%#02x}", r.Address(), r.v) }
func (RxBEid8) register()                {}

// RxBEid0 holds bits 7..0 of the extended identifier.
type RxBEid0 struct {
	n RxBuffer
	v byte
}

func NewRxBEid0(n RxBuffer, v byte) (RxBEid0, error) {
	if err := checkRxBuffer("RXBnEID0", n); err != nil {
		return RxBEid0{}, err
	}
	return RxBEid0{n: n, v: v}, nil
}

func (r RxBEid0) Address() spiproto.Addr { return mustAddr(RxBufferAddress(r.n, BufferEid0)) }
func (r RxBEid0) Byte() byte             { return r.v }
func (r RxBEid0) String() string         { return fmt.Sprintf("%v{EID=%#02x}", r.Address(), r.v) }
func (RxBEid0) register()                {}

// RxBDlc holds the extended remote request flag and the data
// length code of a received message.
type RxBDlc struct {
	n   RxBuffer
	rtr bool
	dlc uint8
}

func NewRxBDlc(n RxBuffer, rtr bool, dlc uint8) (RxBDlc, error) {
	if err := checkRxBuffer("RXBnDLC", n); err != nil {
		return RxBDlc{}, err
	}
	if err := checkField("RXBnDLC", "DLC", int(dlc), 4); err != nil {
		return RxBDlc{}, err
	}
	return RxBDlc{n: n, rtr: rtr, dlc: dlc}, nil
}

func RxBDlcFromByte(n RxBuffer, b byte) (RxBDlc, error) {
	return NewRxBDlc(n, isSet(b, dlcRtr), b>>dlcShift&0xF)
}

func (r RxBDlc) RemoteRequest() bool    { return r.rtr }
func (r RxBDlc) Len() uint8             { return r.dlc }
func (r RxBDlc) Address() spiproto.Addr { return mustAddr(RxBufferAddress(r.n, BufferDlc)) }
func (r RxBDlc) Byte() byte             { return flag(r.rtr, dlcRtr) | r.dlc<<dlcShift }

func (r RxBDlc) String() string {
	return fmt.Sprintf("%v{RTR=%d DLC=%d}", r.Address(), b2i(r.rtr), r.dlc)
}

func (RxBDlc) register() {}

// RxBData is data byte m of receive buffer n.
type RxBData struct {
	n RxBuffer
	m uint8
	v byte
}

func NewRxBData(n RxBuffer, m uint8, v byte) (RxBData, error) {
	if err := checkRxBuffer("RXBnDm", n); err != nil {
		return RxBData{}, err
	}
	if err := checkField("RXBnDm", "m", int(m), 3); err != nil {
		return RxBData{}, err
	}
	return RxBData{n: n, m: m, v: v}, nil
}

func (r RxBData) Address() spiproto.Addr {
	return mustAddr(RxBufferAddress(r.n, BufferData+BufferRegister(r.m)))
}

func (r RxBData) Byte() byte     { return r.v }
func (r RxBData) String() string { return fmt.Sprintf("%v{%#02x}", r.Address(), r.v) }
func (RxBData) register()        {}

func decodeRxBuffer(n RxBuffer, k BufferRegister, b byte) Register {
	var (
		r   Register
		err error
	)
	switch {
	case k == BufferCtrl && n == 0:
		r = RxB0CtrlFromByte(b)
	case k == BufferCtrl:
		r = RxB1CtrlFromByte(b)
	case k == BufferSidh:
		r, err = NewRxBSidh(n, b)
	case k == BufferSidl:
		r, err = RxBSidlFromByte(n, b)
	case k == BufferEid8:
		r, err = NewRxBEid8(n, b)
	case k == BufferEid0:
		r, err = NewRxBEid0(n, b)
	case k == BufferDlc:
		r, err = RxBDlcFromByte(n, b)
	default:
		r, err = NewRxBData(n, uint8(k-BufferData), b)
	}
	if err != nil {
		panic(err)
	}
	return r
}
