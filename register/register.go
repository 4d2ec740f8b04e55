// Package register provides typed codecs for the registers of the
// MCP2515 and MCP25625 CAN controllers.
//
// Each register type packs named fields into the register byte at
// the positions given in the datasheet. Fields wider than one bit
// are range checked when the value is constructed; a value that
// exists can always be encoded. Decoding drops bits that are not
// implemented by the chip.
package register

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knieriem/mcp25xxx/spiproto"
)

// Register is implemented by every register type of this package,
// and only by those.
type Register interface {
	Address() spiproto.Addr
	Byte() byte
	String() string
	register()
}

var (
	ErrInvalidField   = errors.New("invalid register field")
	ErrInvalidIndex   = errors.New("invalid register index")
	ErrUnknownAddress = errors.New("unknown register address")
)

// FieldError reports a field value that does not fit its bit group.
type FieldError struct {
	Register string
	Field    string
	Value    int
	Max      int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("register %s: field %s = %d out of range [0, %d]", e.Register, e.Field, e.Value, e.Max)
}

func (e *FieldError) Unwrap() error { return ErrInvalidField }

// IndexError reports an address that does not belong to an index
// table, or an index outside its table.
type IndexError struct {
	Table string
	Addr  spiproto.Addr
	Index int
}

func (e *IndexError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: no entry for index %d", e.Table, e.Index)
	}
	return fmt.Sprintf("%s: no entry for address %v", e.Table, e.Addr)
}

func (e *IndexError) Unwrap() error { return ErrInvalidIndex }

// checkField fails if v needs more than width bits.
func checkField(reg, field string, v int, width uint) error {
	max := 1<<width - 1
	if v < 0 || v > max {
		return &FieldError{Register: reg, Field: field, Value: v, Max: max}
	}
	return nil
}

func flag(on bool, pos uint) byte {
	if on {
		return 1 << pos
	}
	return 0
}

func isSet(b byte, pos uint) bool {
	return b&(1<<pos) != 0
}

// formatBits formats single-bit fields, names[i] naming bit i.
// Bits with an empty name are skipped.
func formatBits(reg string, names []string, b byte) string {
	var sb strings.Builder
	sb.WriteString(reg)
	sb.WriteByte('{')
	sep := ""
	for i, name := range names {
		if name == "" {
			continue
		}
		fmt.Fprintf(&sb, "%s%s=%d", sep, name, b>>i&1)
		sep = " "
	}
	sb.WriteByte('}')
	return sb.String()
}

func b2i(on bool) int {
	if on {
		return 1
	}
	return 0
}

// Decode returns the typed register stored at a, decoded from b.
func Decode(a spiproto.Addr, b byte) (Register, error) {
	switch a {
	case spiproto.CANCTRL:
		return CanCtrlFromByte(b), nil
	case spiproto.CANSTAT:
		return CanStatFromByte(b), nil
	case spiproto.CANINTE:
		return CanIntEFromByte(b), nil
	case spiproto.CANINTF:
		return CanIntFFromByte(b), nil
	case spiproto.EFLG:
		return EflgFromByte(b), nil
	case spiproto.TEC:
		return Tec(b), nil
	case spiproto.REC:
		return Rec(b), nil
	case spiproto.CNF1:
		return Cnf1FromByte(b), nil
	case spiproto.CNF2:
		return Cnf2FromByte(b), nil
	case spiproto.CNF3:
		return Cnf3FromByte(b), nil
	case spiproto.TXRTSCTRL:
		return TxRtsCtrlFromByte(b), nil
	case spiproto.BFPCTRL:
		return BfpCtrlFromByte(b), nil
	case spiproto.RXB0CTRL:
		return RxB0CtrlFromByte(b), nil
	case spiproto.RXB1CTRL:
		return RxB1CtrlFromByte(b), nil
	}
	if n, k, err := FilterFromAddress(a); err == nil {
		return decodeFilter(n, k, b), nil
	}
	if n, k, err := MaskFromAddress(a); err == nil {
		return decodeMask(n, k, b), nil
	}
	if n, k, err := txBufferFromAddress(a); err == nil {
		return decodeTxBuffer(n, k, b), nil
	}
	if n, k, err := rxBufferFromAddress(a); err == nil {
		return decodeRxBuffer(n, k, b), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownAddress, a)
}
