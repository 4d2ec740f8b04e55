package register

import (
	"fmt"

	"github.com/knieriem/mcp25xxx/spiproto"
)

// OperationMode is the value of CANCTRL.REQOP and CANSTAT.OPMOD.
type OperationMode uint8

const (
	NormalMode OperationMode = iota
	SleepMode
	LoopbackMode
	ListenOnlyMode
	ConfigurationMode
)

var modeNames = [...]string{
	NormalMode:        "normal",
	SleepMode:         "sleep",
	LoopbackMode:      "loopback",
	ListenOnlyMode:    "listen-only",
	ConfigurationMode: "configuration",
}

func (m OperationMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("OperationMode(%d)", uint8(m))
}

// ParseOperationMode accepts the names returned by String.
func ParseOperationMode(s string) (OperationMode, error) {
	for i, name := range modeNames {
		if name == s {
			return OperationMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operation mode %q", s)
}

// ClkOutPrescaler divides the system clock for the CLKOUT pin.
type ClkOutPrescaler uint8

const (
	ClkOutDiv1 ClkOutPrescaler = iota
	ClkOutDiv2
	ClkOutDiv4
	ClkOutDiv8
)

func (p ClkOutPrescaler) String() string {
	return fmt.Sprintf("div%d", 1<<p)
}

const (
	canCtrlReqOpShift  = 5
	canCtrlAbat        = 4
	canCtrlOsm         = 3
	canCtrlClkEn       = 2
	canCtrlClkPreShift = 0
)

// CanCtrl is the CAN control register.
type CanCtrl struct {
	mode      OperationMode
	abortAll  bool
	oneShot   bool
	clkEnable bool
	clkPre    ClkOutPrescaler
}

func NewCanCtrl(mode OperationMode, abortAll, oneShot, clkEnable bool, pre ClkOutPrescaler) (CanCtrl, error) {
	if err := checkField("CANCTRL", "REQOP", int(mode), 3); err != nil {
		return CanCtrl{}, err
	}
	if err := checkField("CANCTRL", "CLKPRE", int(pre), 2); err != nil {
		return CanCtrl{}, err
	}
	return CanCtrl{mode: mode, abortAll: abortAll, oneShot: oneShot, clkEnable: clkEnable, clkPre: pre}, nil
}

func CanCtrlFromByte(b byte) CanCtrl {
	return CanCtrl{
		mode:      OperationMode(b >> canCtrlReqOpShift & 7),
		abortAll:  isSet(b, canCtrlAbat),
		oneShot:   isSet(b, canCtrlOsm),
		clkEnable: isSet(b, canCtrlClkEn),
		clkPre:    ClkOutPrescaler(b >> canCtrlClkPreShift & 3),
	}
}

func (r CanCtrl) RequestedMode() OperationMode     { return r.mode }
func (r CanCtrl) AbortAll() bool                   { return r.abortAll }
func (r CanCtrl) OneShot() bool                    { return r.oneShot }
func (r CanCtrl) ClkOutEnabled() bool              { return r.clkEnable }
func (r CanCtrl) ClkOutPrescaler() ClkOutPrescaler { return r.clkPre }

func (CanCtrl) Address() spiproto.Addr { return spiproto.CANCTRL }

func (r CanCtrl) Byte() byte {
	return byte(r.mode)<<canCtrlReqOpShift |
		flag(r.abortAll, canCtrlAbat) |
		flag(r.oneShot, canCtrlOsm) |
		flag(r.clkEnable, canCtrlClkEn) |
		byte(r.clkPre)<<canCtrlClkPreShift
}

func (r CanCtrl) String() string {
	return fmt.Sprintf("CANCTRL{REQOP=%v ABAT=%d OSM=%d CLKEN=%d CLKPRE=%v}",
		r.mode, b2i(r.abortAll), b2i(r.oneShot), b2i(r.clkEnable), r.clkPre)
}

func (CanCtrl) register() {}

// ModeMask selects CANCTRL.REQOP for BIT MODIFY.
const ModeMask = 7 << canCtrlReqOpShift

// InterruptCode is the value of CANSTAT.ICOD: the highest priority
// pending interrupt.
type InterruptCode uint8

const (
	NoInterrupt InterruptCode = iota
	ErrorInterrupt
	WakeUpInterrupt
	TxB0Interrupt
	TxB1Interrupt
	TxB2Interrupt
	RxB0Interrupt
	RxB1Interrupt
)

var icodNames = [...]string{
	NoInterrupt:     "none",
	ErrorInterrupt:  "error",
	WakeUpInterrupt: "wake-up",
	TxB0Interrupt:   "TXB0",
	TxB1Interrupt:   "TXB1",
	TxB2Interrupt:   "TXB2",
	RxB0Interrupt:   "RXB0",
	RxB1Interrupt:   "RXB1",
}

func (c InterruptCode) String() string {
	if int(c) < len(icodNames) {
		return icodNames[c]
	}
	return fmt.Sprintf("InterruptCode(%d)", uint8(c))
}

const (
	canStatOpModShift = 5
	canStatIcodShift  = 1
)

// CanStat is the CAN status register. It is read-only on the chip;
// NewCanStat exists for tests and simulations.
type CanStat struct {
	mode OperationMode
	icod InterruptCode
}

func NewCanStat(mode OperationMode, icod InterruptCode) (CanStat, error) {
	if err := checkField("CANSTAT", "OPMOD", int(mode), 3); err != nil {
		return CanStat{}, err
	}
	if err := checkField("CANSTAT", "ICOD", int(icod), 3); err != nil {
		return CanStat{}, err
	}
	return CanStat{mode: mode, icod: icod}, nil
}

func CanStatFromByte(b byte) CanStat {
	return CanStat{
		mode: OperationMode(b >> canStatOpModShift & 7),
		icod: InterruptCode(b >> canStatIcodShift & 7),
	}
}

func (r CanStat) Mode() OperationMode          { return r.mode }
func (r CanStat) InterruptCode() InterruptCode { return r.icod }

func (CanStat) Address() spiproto.Addr { return spiproto.CANSTAT }

func (r CanStat) Byte() byte {
	return byte(r.mode)<<canStatOpModShift | byte(r.icod)<<canStatIcodShift
}

func (r CanStat) String() string {
	return fmt.Sprintf("CANSTAT{OPMOD=%v ICOD=%v}", r.mode, r.icod)
}

func (CanStat) register() {}
