package mcp25xxx

import (
	"github.com/knieriem/mcp25xxx/register"
	"github.com/knieriem/mcp25xxx/spiproto"
)

// SetMode requests operation mode m. CLKOUT stays enabled with
// the system clock divided by eight, as after reset.
func (d *Dev) SetMode(m register.OperationMode) error {
	r, err := register.NewCanCtrl(m, false, false, true, register.ClkOutDiv8)
	if err != nil {
		return err
	}
	return d.p.WriteRegister(r)
}

// Mode returns the current operation mode. It differs from the
// requested one until the chip has completed the transition.
func (d *Dev) Mode() (register.OperationMode, error) {
	b, err := d.p.Read(spiproto.CANSTAT)
	if err != nil {
		return 0, err
	}
	return register.CanStatFromByte(b).Mode(), nil
}

// EnableRollover makes RXB0 accept any message and pass it on to
// RXB1 if RXB0 is still full.
func (d *Dev) EnableRollover() error {
	r, err := register.NewRxB0Ctrl(register.RxModeAny, true)
	if err != nil {
		return err
	}
	return d.p.WriteRegister(r)
}

// SetMask writes mask n. Masks and filters can be changed in
// configuration mode only.
func (d *Dev) SetMask(n int, bits uint32, extended bool) error {
	if n < 0 || n > 1 {
		return &register.FieldError{Register: "RXMn", Field: "n", Value: n, Max: 1}
	}
	m, err := register.NewMask(register.RxMask(n), bits, extended)
	if err != nil {
		return err
	}
	return d.p.Write(m.Address(), m.Bytes()...)
}

// SetFilter writes filter n. Filters 0 and 1 belong to RXB0, the
// others to RXB1.
func (d *Dev) SetFilter(n int, id uint32, extended bool) error {
	if n < 0 || n > 5 {
		return &register.FieldError{Register: "RXFn", Field: "n", Value: n, Max: 5}
	}
	f, err := register.NewFilter(register.RxFilter(n), id, extended)
	if err != nil {
		return err
	}
	return d.p.Write(f.Address(), f.Bytes()...)
}

func (d *Dev) ErrorFlags() (register.Eflg, error) {
	b, err := d.p.Read(spiproto.EFLG)
	if err != nil {
		return register.Eflg{}, err
	}
	return register.EflgFromByte(b), nil
}

// ClearOverflow resets the receive buffer overflow flags, the only
// flags of EFLG that are writable.
func (d *Dev) ClearOverflow() error {
	return d.p.BitModify(spiproto.EFLG, register.OverflowMask, 0)
}

// ErrorCounters returns the transmit and receive error counters.
func (d *Dev) ErrorCounters() (tec, rec byte, err error) {
	var b [2]byte
	err = d.p.ReadSeq(spiproto.TEC, b[:])
	if err != nil {
		return 0, 0, err
	}
	return b[0], b[1], nil
}

func (d *Dev) Interrupts() (register.CanIntF, error) {
	b, err := d.p.Read(spiproto.CANINTF)
	if err != nil {
		return register.CanIntF{}, err
	}
	return register.CanIntFFromByte(b), nil
}

// ClearInterrupts clears the flags set in in.
func (d *Dev) ClearInterrupts(in register.Interrupts) error {
	return d.p.BitModify(spiproto.CANINTF, in.Byte(), 0)
}

// dumpLen covers the register space up to RXB1D7.
const dumpLen = 0x80

// Dump reads the whole register space with a single sequential
// READ, and decodes each known register.
func (d *Dev) Dump() ([]register.Register, error) {
	buf := make([]byte, dumpLen)
	err := d.p.ReadSeq(0, buf)
	if err != nil {
		return nil, err
	}
	addrs := spiproto.Addresses()
	regs := make([]register.Register, 0, len(addrs))
	for _, a := range addrs {
		r, err := register.Decode(a, buf[a])
		if err != nil {
			return nil, err
		}
		regs = append(regs, r)
	}
	return regs, nil
}
