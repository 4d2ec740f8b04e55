// Package mcp25xxx drives MCP2515 and MCP25625 CAN controllers
// connected through SPI.
//
// A Dev is not safe for concurrent use.
package mcp25xxx

import (
	"errors"
	"time"

	"github.com/knieriem/can"

	"github.com/knieriem/mcp25xxx/register"
	"github.com/knieriem/mcp25xxx/spiproto"
)

var (
	ErrNoMsg         = errors.New("no message available")
	ErrTxBufNotEmpty = errors.New("tx buffer not empty")
	ErrInvalidLen    = errors.New("invalid message length")
)

// oscillator start-up after RESET
var resetDelay = 30 * time.Millisecond

var sleep = time.Sleep

type Dev struct {
	p        *spiproto.Proto
	availRx1 bool
}

func NewDevice(c spiproto.Conn) *Dev {
	return &Dev{p: spiproto.New(c)}
}

// Proto gives access to the raw instruction set.
func (d *Dev) Proto() *spiproto.Proto {
	return d.p
}

// Acceptance describes the identifier bits of a mask or filter.
type Acceptance struct {
	N        int
	ID       uint32
	Extended bool
}

// Config holds the settings applied by Init.
type Config struct {
	Clock        Clock
	Bitrate      Bitrate
	Mode         register.OperationMode
	Rollover     bool
	RxInterrupts bool

	// Without masks, both masks are cleared so that any message
	// is accepted.
	Masks   []Acceptance
	Filters []Acceptance
}

func DefaultConfig() Config {
	return Config{
		Clock:        Clock16MHz,
		Bitrate:      Bitrate500k,
		Mode:         register.NormalMode,
		Rollover:     true,
		RxInterrupts: true,
	}
}

// Init resets the chip and configures it according to cfg,
// leaving it in cfg.Mode.
func (d *Dev) Init(cfg Config) error {
	err := d.p.Reset()
	if err != nil {
		return err
	}
	d.availRx1 = false
	sleep(resetDelay)

	err = d.SetBitrate(cfg.Clock, cfg.Bitrate)
	if err != nil {
		return err
	}

	// Enable filters, and optionally rollover: If RXB0 is full,
	// next arriving message will be written to RXB1.
	rxb0, err := register.NewRxB0Ctrl(register.RxModeFilters, cfg.Rollover)
	if err != nil {
		return err
	}
	err = d.p.BitModifyRegister(rxb0, register.RxModeMask|register.RolloverMask)
	if err != nil {
		return err
	}
	rxb1, err := register.NewRxB1Ctrl(register.RxModeFilters)
	if err != nil {
		return err
	}
	err = d.p.BitModifyRegister(rxb1, register.RxModeMask)
	if err != nil {
		return err
	}

	masks := cfg.Masks
	if len(masks) == 0 {
		masks = []Acceptance{{N: 0}, {N: 1}}
	}
	for _, m := range masks {
		err = d.SetMask(m.N, m.ID, m.Extended)
		if err != nil {
			return err
		}
	}
	for _, f := range cfg.Filters {
		err = d.SetFilter(f.N, f.ID, f.Extended)
		if err != nil {
			return err
		}
	}

	if cfg.RxInterrupts {
		ie := register.CanIntE{Interrupts: register.Interrupts{Rx0: true, Rx1: true}}
		err = d.p.BitModifyRegister(ie, ie.Byte())
		if err != nil {
			return err
		}
	}

	return d.SetMode(cfg.Mode)
}

// Read returns the next received message. If both receive buffers
// are full, RXB0 is returned first, and RXB1 on the following call.
func (d *Dev) Read(m *can.Msg) error {
	if d.availRx1 {
		d.availRx1 = false
		return d.readRx(1, m)
	}
	st, err := d.p.ReadStatus()
	if err != nil {
		return err
	}
	if st.Rx0If {
		if st.Rx1If {
			d.availRx1 = true
		}
		return d.readRx(0, m)
	}
	if st.Rx1If {
		return d.readRx(1, m)
	}
	return ErrNoMsg
}

// ReadMessages returns the messages of all full receive buffers,
// as indicated by RX STATUS.
func (d *Dev) ReadMessages() ([]can.Msg, error) {
	st, err := d.p.RxStatus()
	if err != nil {
		return nil, err
	}
	var msgs []can.Msg
	for i, full := range []bool{st.Received.InRxB0(), st.Received.InRxB1()} {
		if !full {
			continue
		}
		var m can.Msg
		err = d.readRx(i, &m)
		if err != nil {
			return msgs, err
		}
		msgs = append(msgs, m)
	}
	d.availRx1 = false
	return msgs, nil
}

// readRx reads the header and data of receive buffer i. READ RX
// BUFFER clears the buffer's interrupt flag.
func (d *Dev) readRx(i int, m *can.Msg) error {
	ptr, err := spiproto.RxBufferPointer(i, false)
	if err != nil {
		return err
	}
	buf, err := d.p.ReadRxBuffer(ptr, ptr.Len())
	if err != nil {
		return err
	}
	return decodeMsg(register.RxBuffer(i), buf, m)
}

// decodeMsg fills m from the buffer contents starting at SIDH.
func decodeMsg(n register.RxBuffer, buf []byte, m *can.Msg) error {
	id, extFrame := register.DecodeID(buf)
	dlc, err := register.RxBDlcFromByte(n, buf[4])
	if err != nil {
		return err
	}
	m.Flags = 0
	if extFrame {
		m.Flags = can.ExtFrame
	}
	m.Id = id
	m.Len = int(dlc.Len())
	if m.Len > spiproto.DataLen {
		m.Len = spiproto.DataLen
	}
	copy(m.Data[:], buf[5:5+m.Len])
	return nil
}

// Write queues m in the first transmit buffer without a pending
// request, and requests its transmission.
func (d *Dev) Write(m *can.Msg) error {
	if m.Len < 0 || m.Len > spiproto.DataLen {
		return ErrInvalidLen
	}
	st, err := d.p.ReadStatus()
	if err != nil {
		return err
	}
	n := -1
	for i := 0; i < 3; i++ {
		if !st.TxPending(i) {
			n = i
			break
		}
	}
	if n < 0 {
		return ErrTxBufNotEmpty
	}

	b, err := encodeMsg(register.TxBuffer(n), m)
	if err != nil {
		return err
	}
	ptr, err := spiproto.TxBufferPointer(n, false)
	if err != nil {
		return err
	}
	err = d.p.LoadTxBuffer(ptr, b)
	if err != nil {
		return err
	}
	return d.p.RequestToSend(n == 0, n == 1, n == 2)
}

func encodeMsg(n register.TxBuffer, m *can.Msg) ([]byte, error) {
	id, err := register.EncodeID(m.Id, m.ExtFrame())
	if err != nil {
		return nil, err
	}
	dlc, err := register.NewTxBDlc(n, false, uint8(m.Len))
	if err != nil {
		return nil, err
	}
	b := make([]byte, 0, 5+m.Len)
	b = append(b, id[:]...)
	b = append(b, dlc.Byte())
	b = append(b, m.Data[:m.Len]...)
	return b, nil
}
