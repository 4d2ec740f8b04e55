package register

import "github.com/knieriem/mcp25xxx/spiproto"

// Interrupt bit positions, shared by CANINTE and CANINTF.
const (
	IntRx0  = 0
	IntRx1  = 1
	IntTx0  = 2
	IntTx1  = 3
	IntTx2  = 4
	IntErr  = 5
	IntWake = 6
	IntMErr = 7
)

// Interrupts holds one bit per interrupt source.
type Interrupts struct {
	Rx0          bool // receive buffer 0 full
	Rx1          bool // receive buffer 1 full
	Tx0          bool // transmit buffer 0 empty
	Tx1          bool // transmit buffer 1 empty
	Tx2          bool // transmit buffer 2 empty
	Error        bool // EFLG error condition change
	WakeUp       bool // bus activity while sleeping
	MessageError bool // error during message reception or transmission
}

func interruptsFromByte(b byte) Interrupts {
	return Interrupts{
		Rx0:          isSet(b, IntRx0),
		Rx1:          isSet(b, IntRx1),
		Tx0:          isSet(b, IntTx0),
		Tx1:          isSet(b, IntTx1),
		Tx2:          isSet(b, IntTx2),
		Error:        isSet(b, IntErr),
		WakeUp:       isSet(b, IntWake),
		MessageError: isSet(b, IntMErr),
	}
}

func (in Interrupts) Byte() byte {
	return flag(in.Rx0, IntRx0) |
		flag(in.Rx1, IntRx1) |
		flag(in.Tx0, IntTx0) |
		flag(in.Tx1, IntTx1) |
		flag(in.Tx2, IntTx2) |
		flag(in.Error, IntErr) |
		flag(in.WakeUp, IntWake) |
		flag(in.MessageError, IntMErr)
}

var (
	intENames = [8]string{"RX0IE", "RX1IE", "TX0IE", "TX1IE", "TX2IE", "ERRIE", "WAKIE", "MERRE"}
	intFNames = [8]string{"RX0IF", "RX1IF", "TX0IF", "TX1IF", "TX2IF", "ERRIF", "WAKIF", "MERRF"}
)

func (in Interrupts) format(reg string, names *[8]string) string {
	return formatBits(reg, names[:], in.Byte())
}

// CanIntE is the interrupt enable register.
type CanIntE struct {
	Interrupts
}

func CanIntEFromByte(b byte) CanIntE {
	return CanIntE{interruptsFromByte(b)}
}

func (CanIntE) Address() spiproto.Addr { return spiproto.CANINTE }
func (r CanIntE) String() string       { return r.format("CANINTE", &intENames) }
func (CanIntE) register()              {}

// CanIntF is the interrupt flag register.
type CanIntF struct {
	Interrupts
}

func CanIntFFromByte(b byte) CanIntF {
	return CanIntF{interruptsFromByte(b)}
}

func (CanIntF) Address() spiproto.Addr { return spiproto.CANINTF }
func (r CanIntF) String() string       { return r.format("CANINTF", &intFNames) }
func (CanIntF) register()              {}
