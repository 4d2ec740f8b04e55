// Package periphspi connects MCP25xxx devices to SPI ports and
// GPIO pins of a Linux host, using periph.io.
package periphspi

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// MaxSpeed is the highest SPI clock the MCP2515 supports.
const MaxSpeed = 10 * physic.MegaHertz

// Init loads the host drivers. It must be called before Open and
// OpenInterrupt.
func Init() error {
	_, err := host.Init()
	if err != nil {
		return fmt.Errorf("periphspi: host init: %w", err)
	}
	return nil
}

// Conn is an SPI connection in mode 0, which the chip supports
// along with mode 3.
type Conn struct {
	port spi.PortCloser
	conn spi.Conn
}

// Open connects to the SPI port name, like "SPI0.0" or
// "/dev/spidev0.0". A zero speed selects MaxSpeed.
func Open(name string, speed physic.Frequency) (*Conn, error) {
	if speed == 0 {
		speed = MaxSpeed
	}
	if speed > MaxSpeed {
		return nil, fmt.Errorf("periphspi: speed %v exceeds %v", speed, MaxSpeed)
	}
	p, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("periphspi: open %q: %w", name, err)
	}
	c, err := p.Connect(speed, spi.Mode0, 8)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("periphspi: connect %q: %w", name, err)
	}
	return &Conn{port: p, conn: c}, nil
}

// TxRx performs one transfer; chip select stays asserted for its
// whole duration.
func (c *Conn) TxRx(tx, rx []byte) error {
	return c.conn.Tx(tx, rx)
}

func (c *Conn) String() string {
	return c.conn.String()
}

func (c *Conn) Close() error {
	return c.port.Close()
}

// Interrupt is the INT output of the chip, which is active low.
type Interrupt struct {
	pin gpio.PinIO
}

// OpenInterrupt configures the GPIO pin name as an input with
// pull-up, reporting falling edges.
func OpenInterrupt(name string) (*Interrupt, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("periphspi: unknown pin %q", name)
	}
	err := p.In(gpio.PullUp, gpio.FallingEdge)
	if err != nil {
		return nil, fmt.Errorf("periphspi: %s: %w", name, err)
	}
	return &Interrupt{pin: p}, nil
}

// Asserted reports whether an interrupt is pending.
func (in *Interrupt) Asserted() bool {
	return in.pin.Read() == gpio.Low
}

// Wait blocks until an interrupt is pending or timeout expires.
// A negative timeout waits forever.
func (in *Interrupt) Wait(timeout time.Duration) bool {
	if in.Asserted() {
		return true
	}
	if in.pin.WaitForEdge(timeout) {
		return true
	}
	return in.Asserted()
}

func (in *Interrupt) Close() error {
	return in.pin.Halt()
}
