package spiproto

import (
	"fmt"
	"strconv"
	"strings"
)

// Addr is a register address of the controller.
type Addr uint8

const (
	None Addr = 0xFF

	// Acceptance filters 0-2
	RXF0SIDH Addr = 0x00
	RXF0SIDL Addr = 0x01
	RXF0EID8 Addr = 0x02
	RXF0EID0 Addr = 0x03
	RXF1SIDH Addr = 0x04
	RXF1SIDL Addr = 0x05
	RXF1EID8 Addr = 0x06
	RXF1EID0 Addr = 0x07
	RXF2SIDH Addr = 0x08
	RXF2SIDL Addr = 0x09
	RXF2EID8 Addr = 0x0A
	RXF2EID0 Addr = 0x0B

	BFPCTRL   Addr = 0x0C
	TXRTSCTRL Addr = 0x0D
	CANSTAT   Addr = 0x0E
	CANCTRL   Addr = 0x0F

	// Acceptance filters 3-5
	RXF3SIDH Addr = 0x10
	RXF3SIDL Addr = 0x11
	RXF3EID8 Addr = 0x12
	RXF3EID0 Addr = 0x13
	RXF4SIDH Addr = 0x14
	RXF4SIDL Addr = 0x15
	RXF4EID8 Addr = 0x16
	RXF4EID0 Addr = 0x17
	RXF5SIDH Addr = 0x18
	RXF5SIDL Addr = 0x19
	RXF5EID8 Addr = 0x1A
	RXF5EID0 Addr = 0x1B

	// Error counters
	TEC Addr = 0x1C
	REC Addr = 0x1D

	// Acceptance masks
	RXM0SIDH Addr = 0x20
	RXM0SIDL Addr = 0x21
	RXM0EID8 Addr = 0x22
	RXM0EID0 Addr = 0x23
	RXM1SIDH Addr = 0x24
	RXM1SIDL Addr = 0x25
	RXM1EID8 Addr = 0x26
	RXM1EID0 Addr = 0x27

	// Bit timing, interrupts, error flags
	CNF3    Addr = 0x28
	CNF2    Addr = 0x29
	CNF1    Addr = 0x2A
	CANINTE Addr = 0x2B
	CANINTF Addr = 0x2C
	EFLG    Addr = 0x2D

	TXB0CTRL Addr = 0x30
	TXB0SIDH Addr = 0x31
	TXB0SIDL Addr = 0x32
	TXB0EID8 Addr = 0x33
	TXB0EID0 Addr = 0x34
	TXB0DLC  Addr = 0x35
	TXB0D0   Addr = 0x36
	TXB0D1   Addr = 0x37
	TXB0D2   Addr = 0x38
	TXB0D3   Addr = 0x39
	TXB0D4   Addr = 0x3A
	TXB0D5   Addr = 0x3B
	TXB0D6   Addr = 0x3C
	TXB0D7   Addr = 0x3D

	TXB1CTRL Addr = 0x40
	TXB1SIDH Addr = 0x41
	TXB1SIDL Addr = 0x42
	TXB1EID8 Addr = 0x43
	TXB1EID0 Addr = 0x44
	TXB1DLC  Addr = 0x45
	TXB1D0   Addr = 0x46
	TXB1D1   Addr = 0x47
	TXB1D2   Addr = 0x48
	TXB1D3   Addr = 0x49
	TXB1D4   Addr = 0x4A
	TXB1D5   Addr = 0x4B
	TXB1D6   Addr = 0x4C
	TXB1D7   Addr = 0x4D

	TXB2CTRL Addr = 0x50
	TXB2SIDH Addr = 0x51
	TXB2SIDL Addr = 0x52
	TXB2EID8 Addr = 0x53
	TXB2EID0 Addr = 0x54
	TXB2DLC  Addr = 0x55
	TXB2D0   Addr = 0x56
	TXB2D1   Addr = 0x57
	TXB2D2   Addr = 0x58
	TXB2D3   Addr = 0x59
	TXB2D4   Addr = 0x5A
	TXB2D5   Addr = 0x5B
	TXB2D6   Addr = 0x5C
	TXB2D7   Addr = 0x5D

	RXB0CTRL Addr = 0x60
	RXB0SIDH Addr = 0x61
	RXB0SIDL Addr = 0x62
	RXB0EID8 Addr = 0x63
	RXB0EID0 Addr = 0x64
	RXB0DLC  Addr = 0x65
	RXB0D0   Addr = 0x66
	RXB0D1   Addr = 0x67
	RXB0D2   Addr = 0x68
	RXB0D3   Addr = 0x69
	RXB0D4   Addr = 0x6A
	RXB0D5   Addr = 0x6B
	RXB0D6   Addr = 0x6C
	RXB0D7   Addr = 0x6D

	RXB1CTRL Addr = 0x70
	RXB1SIDH Addr = 0x71
	RXB1SIDL Addr = 0x72
	RXB1EID8 Addr = 0x73
	RXB1EID0 Addr = 0x74
	RXB1DLC  Addr = 0x75
	RXB1D0   Addr = 0x76
	RXB1D1   Addr = 0x77
	RXB1D2   Addr = 0x78
	RXB1D3   Addr = 0x79
	RXB1D4   Addr = 0x7A
	RXB1D5   Addr = 0x7B
	RXB1D6   Addr = 0x7C
	RXB1D7   Addr = 0x7D
)

var addrNames = map[Addr]string{
	RXF0SIDH:  "RXF0SIDH",
	RXF0SIDL:  "RXF0SIDL",
	RXF0EID8:  "RXF0EID8",
	RXF0EID0:  "RXF0EID0",
	RXF1SIDH:  "RXF1SIDH",
	RXF1SIDL:  "RXF1SIDL",
	RXF1EID8:  "RXF1EID8",
	RXF1EID0:  "RXF1EID0",
	RXF2SIDH:  "RXF2SIDH",
	RXF2SIDL:  "RXF2SIDL",
	RXF2EID8:  "RXF2EID8",
	RXF2EID0:  "RXF2EID0",
	BFPCTRL:   "BFPCTRL",
	TXRTSCTRL: "TXRTSCTRL",
	CANSTAT:   "CANSTAT",
	CANCTRL:   "CANCTRL",
	RXF3SIDH:  "RXF3SIDH",
	RXF3SIDL:  "RXF3SIDL",
	RXF3EID8:  "RXF3EID8",
	RXF3EID0:  "RXF3EID0",
	RXF4SIDH:  "RXF4SIDH",
	RXF4SIDL:  "RXF4SIDL",
	RXF4EID8:  "RXF4EID8",
	RXF4EID0:  "RXF4EID0",
	RXF5SIDH:  "RXF5SIDH",
	RXF5SIDL:  "RXF5SIDL",
	RXF5EID8:  "RXF5EID8",
	RXF5EID0:  "RXF5EID0",
	TEC:       "TEC",
	REC:       "REC",
	RXM0SIDH:  "RXM0SIDH",
	RXM0SIDL:  "RXM0SIDL",
	RXM0EID8:  "RXM0EID8",
	RXM0EID0:  "RXM0EID0",
	RXM1SIDH:  "RXM1SIDH",
	RXM1SIDL:  "RXM1SIDL",
	RXM1EID8:  "RXM1EID8",
	RXM1EID0:  "RXM1EID0",
	CNF3:      "CNF3",
	CNF2:      "CNF2",
	CNF1:      "CNF1",
	CANINTE:   "CANINTE",
	CANINTF:   "CANINTF",
	EFLG:      "EFLG",
	TXB0CTRL:  "TXB0CTRL",
	TXB0SIDH:  "TXB0SIDH",
	TXB0SIDL:  "TXB0SIDL",
	TXB0EID8:  "TXB0EID8",
	TXB0EID0:  "TXB0EID0",
	TXB0DLC:   "TXB0DLC",
	TXB0D0:    "TXB0D0",
	TXB0D1:    "TXB0D1",
	TXB0D2:    "TXB0D2",
	TXB0D3:    "TXB0D3",
	TXB0D4:    "TXB0D4",
	TXB0D5:    "TXB0D5",
	TXB0D6:    "TXB0D6",
	TXB0D7:    "TXB0D7",
	TXB1CTRL:  "TXB1CTRL",
	TXB1SIDH:  "TXB1SIDH",
	TXB1SIDL:  "TXB1SIDL",
	TXB1EID8:  "TXB1EID8",
	TXB1EID0:  "TXB1EID0",
	TXB1DLC:   "TXB1DLC",
	TXB1D0:    "TXB1D0",
	TXB1D1:    "TXB1D1",
	TXB1D2:    "TXB1D2",
	TXB1D3:    "TXB1D3",
	TXB1D4:    "TXB1D4",
	TXB1D5:    "TXB1D5",
	TXB1D6:    "TXB1D6",
	TXB1D7:    "TXB1D7",
	TXB2CTRL:  "TXB2CTRL",
	TXB2SIDH:  "TXB2SIDH",
	TXB2SIDL:  "TXB2SIDL",
	TXB2EID8:  "TXB2EID8",
	TXB2EID0:  "TXB2EID0",
	TXB2DLC:   "TXB2DLC",
	TXB2D0:    "TXB2D0",
	TXB2D1:    "TXB2D1",
	TXB2D2:    "TXB2D2",
	TXB2D3:    "TXB2D3",
	TXB2D4:    "TXB2D4",
	TXB2D5:    "TXB2D5",
	TXB2D6:    "TXB2D6",
	TXB2D7:    "TXB2D7",
	RXB0CTRL:  "RXB0CTRL",
	RXB0SIDH:  "RXB0SIDH",
	RXB0SIDL:  "RXB0SIDL",
	RXB0EID8:  "RXB0EID8",
	RXB0EID0:  "RXB0EID0",
	RXB0DLC:   "RXB0DLC",
	RXB0D0:    "RXB0D0",
	RXB0D1:    "RXB0D1",
	RXB0D2:    "RXB0D2",
	RXB0D3:    "RXB0D3",
	RXB0D4:    "RXB0D4",
	RXB0D5:    "RXB0D5",
	RXB0D6:    "RXB0D6",
	RXB0D7:    "RXB0D7",
	RXB1CTRL:  "RXB1CTRL",
	RXB1SIDH:  "RXB1SIDH",
	RXB1SIDL:  "RXB1SIDL",
	RXB1EID8:  "RXB1EID8",
	RXB1EID0:  "RXB1EID0",
	RXB1DLC:   "RXB1DLC",
	RXB1D0:    "RXB1D0",
	RXB1D1:    "RXB1D1",
	RXB1D2:    "RXB1D2",
	RXB1D3:    "RXB1D3",
	RXB1D4:    "RXB1D4",
	RXB1D5:    "RXB1D5",
	RXB1D6:    "RXB1D6",
	RXB1D7:    "RXB1D7",
}

var addrList []Addr

func init() {
	for a := Addr(0); a < None; a++ {
		if _, ok := addrNames[a]; ok {
			addrList = append(addrList, a)
		}
	}
}

// Addresses returns all known register addresses in ascending order.
func Addresses() []Addr {
	return append([]Addr(nil), addrList...)
}

// Known reports whether a names a register of the controller.
func (a Addr) Known() bool {
	_, ok := addrNames[a]
	return ok
}

func (a Addr) String() string {
	if s, ok := addrNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Addr(%#02x)", uint8(a))
}

// ParseAddr accepts a register name, case insensitive, or a number
// in Go syntax, like 0x2b.
func ParseAddr(s string) (Addr, error) {
	u := strings.ToUpper(s)
	for a, name := range addrNames {
		if name == u {
			return a, nil
		}
	}
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return None, fmt.Errorf("unknown register %q", s)
	}
	return Addr(v), nil
}
