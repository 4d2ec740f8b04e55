package register

import (
	"fmt"

	"github.com/knieriem/mcp25xxx/spiproto"
)

// The bit timing registers hold lengths minus one: a BRP of 0
// means TQ = 2/Fosc, a PRSEG of 0 means one TQ, and so on.

const (
	cnf1SjwShift = 6
	cnf1BrpShift = 0
)

// Cnf1 is configuration register 1: synchronization jump width and
// baud rate prescaler.
type Cnf1 struct {
	sjw uint8
	brp uint8
}

func NewCnf1(sjw, brp uint8) (Cnf1, error) {
	if err := checkField("CNF1", "SJW", int(sjw), 2); err != nil {
		return Cnf1{}, err
	}
	if err := checkField("CNF1", "BRP", int(brp), 6); err != nil {
		return Cnf1{}, err
	}
	return Cnf1{sjw: sjw, brp: brp}, nil
}

func Cnf1FromByte(b byte) Cnf1 {
	return Cnf1{sjw: b >> cnf1SjwShift & 3, brp: b >> cnf1BrpShift & 0x3F}
}

func (r Cnf1) SyncJumpWidth() uint8 { return r.sjw }
func (r Cnf1) Prescaler() uint8     { return r.brp }

func (Cnf1) Address() spiproto.Addr { return spiproto.CNF1 }

func (r Cnf1) Byte() byte {
	return r.sjw<<cnf1SjwShift | r.brp<<cnf1BrpShift
}

func (r Cnf1) String() string {
	return fmt.Sprintf("CNF1{SJW=%d BRP=%d}", r.sjw, r.brp)
}

func (Cnf1) register() {}

const (
	cnf2BtlMode     = 7
	cnf2Sam         = 6
	cnf2PhSeg1Shift = 3
	cnf2PrSegShift  = 0
)

// Cnf2 is configuration register 2.
type Cnf2 struct {
	btlMode bool
	sam     bool
	phSeg1  uint8
	prSeg   uint8
}

func NewCnf2(btlMode, sampleThrice bool, phSeg1, prSeg uint8) (Cnf2, error) {
	if err := checkField("CNF2", "PHSEG1", int(phSeg1), 3); err != nil {
		return Cnf2{}, err
	}
	if err := checkField("CNF2", "PRSEG", int(prSeg), 3); err != nil {
		return Cnf2{}, err
	}
	return Cnf2{btlMode: btlMode, sam: sampleThrice, phSeg1: phSeg1, prSeg: prSeg}, nil
}

func Cnf2FromByte(b byte) Cnf2 {
	return Cnf2{
		btlMode: isSet(b, cnf2BtlMode),
		sam:     isSet(b, cnf2Sam),
		phSeg1:  b >> cnf2PhSeg1Shift & 7,
		prSeg:   b >> cnf2PrSegShift & 7,
	}
}

// PhSeg2FromCnf3 reports whether PHSEG2 is taken from CNF3
// instead of being derived from PHSEG1 and IPT.
func (r Cnf2) PhSeg2FromCnf3() bool { return r.btlMode }
func (r Cnf2) SampleThrice() bool   { return r.sam }
func (r Cnf2) PhaseSegment1() uint8 { return r.phSeg1 }
func (r Cnf2) PropSegment() uint8   { return r.prSeg }

func (Cnf2) Address() spiproto.Addr { return spiproto.CNF2 }

func (r Cnf2) Byte() byte {
	return flag(r.btlMode, cnf2BtlMode) |
		flag(r.sam, cnf2Sam) |
		r.phSeg1<<cnf2PhSeg1Shift |
		r.prSeg<<cnf2PrSegShift
}

func (r Cnf2) String() string {
	return fmt.Sprintf("CNF2{BTLMODE=%d SAM=%d PHSEG1=%d PRSEG=%d}", b2i(r.btlMode), b2i(r.sam), r.phSeg1, r.prSeg)
}

func (Cnf2) register() {}

const (
	cnf3Sof         = 7
	cnf3WakFil      = 6
	cnf3PhSeg2Shift = 0
)

// Cnf3 is configuration register 3.
type Cnf3 struct {
	sof    bool
	wakFil bool
	phSeg2 uint8
}

func NewCnf3(startOfFrame, wakeUpFilter bool, phSeg2 uint8) (Cnf3, error) {
	if err := checkField("CNF3", "PHSEG2", int(phSeg2), 3); err != nil {
		return Cnf3{}, err
	}
	return Cnf3{sof: startOfFrame, wakFil: wakeUpFilter, phSeg2: phSeg2}, nil
}

func Cnf3FromByte(b byte) Cnf3 {
	return Cnf3{
		sof:    isSet(b, cnf3Sof),
		wakFil: isSet(b, cnf3WakFil),
		phSeg2: b >> cnf3PhSeg2Shift & 7,
	}
}

// StartOfFrame reports whether CLKOUT carries the SOF signal.
func (r Cnf3) StartOfFrame() bool   { return r.sof }
func (r Cnf3) WakeUpFilter() bool   { return r.wakFil }
func (r Cnf3) PhaseSegment2() uint8 { return r.phSeg2 }

func (Cnf3) Address() spiproto.Addr { return spiproto.CNF3 }

func (r Cnf3) Byte() byte {
	return flag(r.sof, cnf3Sof) | flag(r.wakFil, cnf3WakFil) | r.phSeg2<<cnf3PhSeg2Shift
}

func (r Cnf3) String() string {
	return fmt.Sprintf("CNF3{SOF=%d WAKFIL=%d PHSEG2=%d}", b2i(r.sof), b2i(r.wakFil), r.phSeg2)
}

func (Cnf3) register() {}

// BitTime returns the number of time quanta per bit, derived from
// the segment lengths in CNF2 and CNF3.
func BitTime(c2 Cnf2, c3 Cnf3) int {
	ps1 := int(c2.phSeg1) + 1
	ps2 := int(c3.phSeg2) + 1
	if !c2.btlMode {
		// greater of PS1 and the information processing time (2 TQ)
		ps2 = ps1
		if ps2 < 2 {
			ps2 = 2
		}
	}
	return 1 + int(c2.prSeg) + 1 + ps1 + ps2
}

// Bitrate returns the bitrate in bit/s resulting from the three
// configuration registers and an oscillator frequency in Hz.
func Bitrate(osc int, c1 Cnf1, c2 Cnf2, c3 Cnf3) int {
	tq := 2 * (int(c1.brp) + 1)
	return osc / (tq * BitTime(c2, c3))
}
