// Package spiproto implements the SPI instruction set of the
// MCP2515 and MCP25625 CAN controllers.
//
// Each method of Proto builds the byte sequence of one instruction
// and performs exactly one transfer on the underlying Conn. Proto
// keeps no state besides the connection; it does not retry, cache,
// or lock. Callers sharing a device between goroutines must
// serialize access themselves.
package spiproto

import (
	"errors"
)

// Conn is a full-duplex SPI connection to the chip. TxRx
// writes tx while reading len(rx) bytes into rx; rx is either nil,
// for write-only transfers, or has the same length as tx.
// Chip select must be asserted for the duration of one call.
type Conn interface {
	TxRx(tx, rx []byte) error
}

// Register is a value that knows its own address and encoding.
type Register interface {
	Address() Addr
	Byte() byte
}

// Instruction opcodes.
const (
	InstrWrite         = 0x02
	InstrRead          = 0x03
	InstrBitModify     = 0x05
	InstrLoadTxBuffer  = 0x40
	InstrRequestToSend = 0x80
	InstrReadRxBuffer  = 0x90
	InstrReadStatus    = 0xA0
	InstrRxStatus      = 0xB0
	InstrReset         = 0xC0
)

const dontCare = 0x00

var (
	ErrInvalidPointer     = errors.New("invalid buffer address pointer")
	ErrInvalidByteCount   = errors.New("invalid byte count")
	ErrInvalidStatusField = errors.New("status field out of range")
)

type Proto struct {
	conn Conn
}

func New(c Conn) *Proto {
	return &Proto{conn: c}
}

// Reset re-initializes the internal registers and sets
// configuration mode.
func (d *Proto) Reset() error {
	return d.conn.TxRx([]byte{InstrReset}, nil)
}

// Read returns the content of the register at a.
func (d *Proto) Read(a Addr) (byte, error) {
	tx := []byte{InstrRead, byte(a), dontCare}
	rx := make([]byte, len(tx))
	err := d.conn.TxRx(tx, rx)
	if err != nil {
		return 0, err
	}
	return rx[2], nil
}

// ReadSeq reads len(buf) consecutive registers starting at a.
// The chip increments its address pointer after each byte.
func (d *Proto) ReadSeq(a Addr, buf []byte) error {
	if len(buf) == 0 {
		return ErrInvalidByteCount
	}
	tx := make([]byte, 2+len(buf))
	tx[0] = InstrRead
	tx[1] = byte(a)
	rx := make([]byte, len(tx))
	err := d.conn.TxRx(tx, rx)
	if err != nil {
		return err
	}
	copy(buf, rx[2:])
	return nil
}

// Write stores data into consecutive registers, starting at a.
func (d *Proto) Write(a Addr, data ...byte) error {
	tx := make([]byte, 2+len(data))
	tx[0] = InstrWrite
	tx[1] = byte(a)
	copy(tx[2:], data)
	return d.conn.TxRx(tx, nil)
}

// WriteRegister writes the encoded value of r to its address.
func (d *Proto) WriteRegister(r Register) error {
	return d.Write(r.Address(), r.Byte())
}

// ReadRxBuffer reads n bytes of a receive buffer, starting at the
// location selected by p. Reading a buffer this way clears its
// CANINTF.RXnIF flag when chip select is released.
func (d *Proto) ReadRxBuffer(p RxBufferAddressPointer, n int) ([]byte, error) {
	if !p.valid() {
		return nil, ErrInvalidPointer
	}
	if n < 1 {
		return nil, ErrInvalidByteCount
	}
	tx := make([]byte, n+1)
	tx[0] = p.Instruction()
	rx := make([]byte, len(tx))
	err := d.conn.TxRx(tx, rx)
	if err != nil {
		return nil, err
	}
	return rx[1:], nil
}

// LoadTxBuffer writes data into a transmit buffer, starting at the
// location selected by p.
func (d *Proto) LoadTxBuffer(p TxBufferAddressPointer, data []byte) error {
	if !p.valid() {
		return ErrInvalidPointer
	}
	tx := make([]byte, 1+len(data))
	tx[0] = p.Instruction()
	copy(tx[1:], data)
	return d.conn.TxRx(tx, nil)
}

// RequestToSend initiates transmission of the selected
// transmit buffers.
func (d *Proto) RequestToSend(txb0, txb1, txb2 bool) error {
	instr := uint8(InstrRequestToSend)
	if txb0 {
		instr |= 1 << 0
	}
	if txb1 {
		instr |= 1 << 1
	}
	if txb2 {
		instr |= 1 << 2
	}
	return d.conn.TxRx([]byte{instr}, nil)
}

func (d *Proto) ReadStatus() (ReadStatusResponse, error) {
	b, err := d.status(InstrReadStatus)
	if err != nil {
		return ReadStatusResponse{}, err
	}
	return ReadStatusFromByte(b), nil
}

func (d *Proto) RxStatus() (RxStatusResponse, error) {
	b, err := d.status(InstrRxStatus)
	if err != nil {
		return RxStatusResponse{}, err
	}
	return RxStatusFromByte(b), nil
}

func (d *Proto) status(instr uint8) (byte, error) {
	tx := []byte{instr, dontCare}
	rx := make([]byte, len(tx))
	err := d.conn.TxRx(tx, rx)
	if err != nil {
		return 0, err
	}
	return rx[1], nil
}

// BitModify changes the bits selected by mask to the corresponding
// bits of value: reg = reg&^mask | value&mask.
//
// Only some registers support this instruction (see BitModifiable).
// The address is not checked; on other registers the chip
// behaves as if mask were 0xFF.
func (d *Proto) BitModify(a Addr, mask, value byte) error {
	return d.conn.TxRx([]byte{InstrBitModify, byte(a), mask, value}, nil)
}

// BitModifyRegister changes the bits of r's register selected by mask
// to those of r's encoded value.
func (d *Proto) BitModifyRegister(r Register, mask byte) error {
	return d.BitModify(r.Address(), mask, r.Byte())
}

// BitModifiable reports whether the datasheet lists a as a register
// accepting the BIT MODIFY instruction.
func BitModifiable(a Addr) bool {
	switch a {
	case BFPCTRL, TXRTSCTRL, CANCTRL,
		CNF3, CNF2, CNF1, CANINTE, CANINTF, EFLG,
		TXB0CTRL, TXB1CTRL, TXB2CTRL,
		RXB0CTRL, RXB1CTRL:
		return true
	}
	return false
}

// InstructionName returns a short name for the instruction
// starting with opcode.
func InstructionName(opcode byte) string {
	switch {
	case opcode == InstrReset:
		return "RESET"
	case opcode == InstrRead:
		return "READ"
	case opcode == InstrWrite:
		return "WRITE"
	case opcode == InstrBitModify:
		return "BIT MODIFY"
	case opcode == InstrReadStatus:
		return "READ STATUS"
	case opcode == InstrRxStatus:
		return "RX STATUS"
	case opcode&^0x06 == InstrReadRxBuffer:
		return "READ RX BUFFER"
	case opcode >= InstrLoadTxBuffer && opcode <= InstrLoadTxBuffer+5:
		return "LOAD TX BUFFER"
	case opcode&^0x07 == InstrRequestToSend:
		return "RTS"
	}
	return "UNKNOWN"
}
