package register

import (
	"fmt"

	"github.com/knieriem/mcp25xxx/spiproto"
)

const (
	eflgEWarn  = 0
	eflgRxWar  = 1
	eflgTxWar  = 2
	eflgRxEP   = 3
	eflgTxEP   = 4
	eflgTxBO   = 5
	eflgRx0Ovr = 6
	eflgRx1Ovr = 7
)

// Eflg is the error flag register.
type Eflg struct {
	ErrorWarning      bool // TEC or REC >= 96
	RxErrorWarning    bool // REC >= 96
	TxErrorWarning    bool // TEC >= 96
	RxErrorPassive    bool // REC >= 128
	TxErrorPassive    bool // TEC >= 128
	BusOff            bool // TEC reached 255
	RxBuffer0Overflow bool
	RxBuffer1Overflow bool
}

// OverflowMask selects the two bits of EFLG that may be cleared
// by software.
const OverflowMask = 1<<eflgRx0Ovr | 1<<eflgRx1Ovr

func EflgFromByte(b byte) Eflg {
	return Eflg{
		ErrorWarning:      isSet(b, eflgEWarn),
		RxErrorWarning:    isSet(b, eflgRxWar),
		TxErrorWarning:    isSet(b, eflgTxWar),
		RxErrorPassive:    isSet(b, eflgRxEP),
		TxErrorPassive:    isSet(b, eflgTxEP),
		BusOff:            isSet(b, eflgTxBO),
		RxBuffer0Overflow: isSet(b, eflgRx0Ovr),
		RxBuffer1Overflow: isSet(b, eflgRx1Ovr),
	}
}

func (Eflg) Address() spiproto.Addr { return spiproto.EFLG }

func (r Eflg) Byte() byte {
	return flag(r.ErrorWarning, eflgEWarn) |
		flag(r.RxErrorWarning, eflgRxWar) |
		flag(r.TxErrorWarning, eflgTxWar) |
		flag(r.RxErrorPassive, eflgRxEP) |
		flag(r.TxErrorPassive, eflgTxEP) |
		flag(r.BusOff, eflgTxBO) |
		flag(r.RxBuffer0Overflow, eflgRx0Ovr) |
		flag(r.RxBuffer1Overflow, eflgRx1Ovr)
}

func (r Eflg) String() string {
	return formatBits("EFLG", []string{"EWARN", "RXWAR", "TXWAR", "RXEP", "TXEP", "TXBO", "RX0OVR", "RX1OVR"}, r.Byte())
}

func (Eflg) register() {}

// Tec is the transmit error counter.
type Tec uint8

func (Tec) Address() spiproto.Addr { return spiproto.TEC }
func (r Tec) Byte() byte           { return byte(r) }
func (r Tec) String() string       { return fmt.Sprintf("TEC{%d}", uint8(r)) }
func (Tec) register()              {}

// Rec is the receive error counter.
type Rec uint8

func (Rec) Address() spiproto.Addr { return spiproto.REC }
func (r Rec) Byte() byte           { return byte(r) }
func (r Rec) String() string       { return fmt.Sprintf("REC{%d}", uint8(r)) }
func (Rec) register()              {}
