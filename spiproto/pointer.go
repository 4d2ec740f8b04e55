package spiproto

// RxBufferAddressPointer selects where READ RX BUFFER starts
// reading.
type RxBufferAddressPointer uint8

const (
	RxB0Sidh RxBufferAddressPointer = iota
	RxB0D0
	RxB1Sidh
	RxB1D0
)

// Lengths of the areas a buffer address pointer may start at:
// the identifier header (SIDH through D7) and the data bytes.
const (
	HeaderLen = 13
	DataLen   = 8
)

func (p RxBufferAddressPointer) valid() bool {
	return p <= RxB1D0
}

// Instruction returns the READ RX BUFFER opcode for p.
func (p RxBufferAddressPointer) Instruction() byte {
	return InstrReadRxBuffer | byte(p)<<1
}

// Len returns the number of meaningful bytes from p to the end of
// the buffer.
func (p RxBufferAddressPointer) Len() int {
	if p&1 == 0 {
		return HeaderLen
	}
	return DataLen
}

// Buffer returns the receive buffer index p points into.
func (p RxBufferAddressPointer) Buffer() int {
	return int(p >> 1)
}

func (p RxBufferAddressPointer) String() string {
	switch p {
	case RxB0Sidh:
		return "RXB0SIDH"
	case RxB0D0:
		return "RXB0D0"
	case RxB1Sidh:
		return "RXB1SIDH"
	case RxB1D0:
		return "RXB1D0"
	}
	return "RxBufferAddressPointer(?)"
}

// RxBufferPointer returns the pointer selecting the header or data
// area of receive buffer n.
func RxBufferPointer(n int, data bool) (RxBufferAddressPointer, error) {
	if n < 0 || n > 1 {
		return 0, ErrInvalidPointer
	}
	p := RxBufferAddressPointer(n << 1)
	if data {
		p |= 1
	}
	return p, nil
}

// TxBufferAddressPointer selects where LOAD TX BUFFER starts
// writing.
type TxBufferAddressPointer uint8

const (
	TxB0Sidh TxBufferAddressPointer = iota
	TxB0D0
	TxB1Sidh
	TxB1D0
	TxB2Sidh
	TxB2D0
)

func (p TxBufferAddressPointer) valid() bool {
	return p <= TxB2D0
}

// Instruction returns the LOAD TX BUFFER opcode for p.
func (p TxBufferAddressPointer) Instruction() byte {
	return InstrLoadTxBuffer + byte(p)
}

func (p TxBufferAddressPointer) Len() int {
	if p&1 == 0 {
		return HeaderLen
	}
	return DataLen
}

func (p TxBufferAddressPointer) Buffer() int {
	return int(p >> 1)
}

func (p TxBufferAddressPointer) String() string {
	switch p {
	case TxB0Sidh:
		return "TXB0SIDH"
	case TxB0D0:
		return "TXB0D0"
	case TxB1Sidh:
		return "TXB1SIDH"
	case TxB1D0:
		return "TXB1D0"
	case TxB2Sidh:
		return "TXB2SIDH"
	case TxB2D0:
		return "TXB2D0"
	}
	return "TxBufferAddressPointer(?)"
}

// TxBufferPointer returns the pointer selecting the header or data
// area of transmit buffer n.
func TxBufferPointer(n int, data bool) (TxBufferAddressPointer, error) {
	if n < 0 || n > 2 {
		return 0, ErrInvalidPointer
	}
	p := TxBufferAddressPointer(n << 1)
	if data {
		p |= 1
	}
	return p, nil
}
