package register

import (
	"fmt"

	"github.com/knieriem/mcp25xxx/spiproto"
)

// TxBuffer is the index of a transmit buffer, 0 to 2.
type TxBuffer uint8

// RxBuffer is the index of a receive buffer, 0 or 1.
type RxBuffer uint8

// BufferRegister names one register of a transmit or receive
// buffer. Data registers D0..D7 are BufferData+m.
type BufferRegister uint8

const (
	BufferCtrl BufferRegister = iota
	BufferSidh
	BufferSidl
	BufferEid8
	BufferEid0
	BufferDlc
	BufferData
)

func (k BufferRegister) String() string {
	switch {
	case k == BufferCtrl:
		return "CTRL"
	case k == BufferSidh:
		return "SIDH"
	case k == BufferSidl:
		return "SIDL"
	case k == BufferEid8:
		return "EID8"
	case k == BufferEid0:
		return "EID0"
	case k == BufferDlc:
		return "DLC"
	case k >= BufferData && k < BufferData+8:
		return fmt.Sprintf("D%d", k-BufferData)
	}
	return fmt.Sprintf("BufferRegister(%d)", uint8(k))
}

const bufferRegisters = int(BufferData) + 8

var txBufferAddrs = [3][bufferRegisters]spiproto.Addr{
	{
		spiproto.TXB0CTRL, spiproto.TXB0SIDH, spiproto.TXB0SIDL, spiproto.TXB0EID8, spiproto.TXB0EID0, spiproto.TXB0DLC,
		spiproto.TXB0D0, spiproto.TXB0D1, spiproto.TXB0D2, spiproto.TXB0D3, spiproto.TXB0D4, spiproto.TXB0D5, spiproto.TXB0D6, spiproto.TXB0D7,
	},
	{
		spiproto.TXB1CTRL, spiproto.TXB1SIDH, spiproto.TXB1SIDL, spiproto.TXB1EID8, spiproto.TXB1EID0, spiproto.TXB1DLC,
		spiproto.TXB1D0, spiproto.TXB1D1, spiproto.TXB1D2, spiproto.TXB1D3, spiproto.TXB1D4, spiproto.TXB1D5, spiproto.TXB1D6, spiproto.TXB1D7,
	},
	{
		spiproto.TXB2CTRL, spiproto.TXB2SIDH, spiproto.TXB2SIDL, spiproto.TXB2EID8, spiproto.TXB2EID0, spiproto.TXB2DLC,
		spiproto.TXB2D0, spiproto.TXB2D1, spiproto.TXB2D2, spiproto.TXB2D3, spiproto.TXB2D4, spiproto.TXB2D5, spiproto.TXB2D6, spiproto.TXB2D7,
	},
}

var rxBufferAddrs = [2][bufferRegisters]spiproto.Addr{
	{
		spiproto.RXB0CTRL, spiproto.RXB0SIDH, spiproto.RXB0SIDL, spiproto.RXB0EID8, spiproto.RXB0EID0, spiproto.RXB0DLC,
		spiproto.RXB0D0, spiproto.RXB0D1, spiproto.RXB0D2, spiproto.RXB0D3, spiproto.RXB0D4, spiproto.RXB0D5, spiproto.RXB0D6, spiproto.RXB0D7,
	},
	{
		spiproto.RXB1CTRL, spiproto.RXB1SIDH, spiproto.RXB1SIDL, spiproto.RXB1EID8, spiproto.RXB1EID0, spiproto.RXB1DLC,
		spiproto.RXB1D0, spiproto.RXB1D1, spiproto.RXB1D2, spiproto.RXB1D3, spiproto.RXB1D4, spiproto.RXB1D5, spiproto.RXB1D6, spiproto.RXB1D7,
	},
}

type bufferEntry struct {
	n uint8
	k BufferRegister
}

var (
	txBufferIndex = make(map[spiproto.Addr]bufferEntry)
	rxBufferIndex = make(map[spiproto.Addr]bufferEntry)
)

func init() {
	for n, regs := range txBufferAddrs {
		for k, a := range regs {
			txBufferIndex[a] = bufferEntry{uint8(n), BufferRegister(k)}
		}
	}
	for n, regs := range rxBufferAddrs {
		for k, a := range regs {
			rxBufferIndex[a] = bufferEntry{uint8(n), BufferRegister(k)}
		}
	}
}

// TxBufferAddress returns the address of register k of transmit
// buffer n.
func TxBufferAddress(n TxBuffer, k BufferRegister) (spiproto.Addr, error) {
	if int(n) >= len(txBufferAddrs) || int(k) >= bufferRegisters {
		return spiproto.None, &IndexError{Table: "tx buffer", Index: int(n)*bufferRegisters + int(k)}
	}
	return txBufferAddrs[n][k], nil
}

// RxBufferAddress returns the address of register k of receive
// buffer n.
func RxBufferAddress(n RxBuffer, k BufferRegister) (spiproto.Addr, error) {
	if int(n) >= len(rxBufferAddrs) || int(k) >= bufferRegisters {
		return spiproto.None, &IndexError{Table: "rx buffer", Index: int(n)*bufferRegisters + int(k)}
	}
	return rxBufferAddrs[n][k], nil
}

func txBufferFromAddress(a spiproto.Addr) (TxBuffer, BufferRegister, error) {
	e, ok := txBufferIndex[a]
	if !ok {
		return 0, 0, &IndexError{Table: "tx buffer", Addr: a, Index: -1}
	}
	return TxBuffer(e.n), e.k, nil
}

func rxBufferFromAddress(a spiproto.Addr) (RxBuffer, BufferRegister, error) {
	e, ok := rxBufferIndex[a]
	if !ok {
		return 0, 0, &IndexError{Table: "rx buffer", Addr: a, Index: -1}
	}
	return RxBuffer(e.n), e.k, nil
}

func checkTxBuffer(reg string, n TxBuffer) error {
	return checkRange(reg, "n", int(n), len(txBufferAddrs)-1)
}

func checkRxBuffer(reg string, n RxBuffer) error {
	return checkRange(reg, "n", int(n), len(rxBufferAddrs)-1)
}

// checkRange is checkField for indices whose range is not a
// power of two.
func checkRange(reg, field string, v, max int) error {
	if v < 0 || v > max {
		return &FieldError{Register: reg, Field: field, Value: v, Max: max}
	}
	return nil
}

func mustAddr(a spiproto.Addr, err error) spiproto.Addr {
	if err != nil {
		panic(err)
	}
	return a
}
