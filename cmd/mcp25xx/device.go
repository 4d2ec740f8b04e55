package main

import (
	"errors"
	"log/slog"

	"periph.io/x/conn/v3/physic"

	"github.com/knieriem/mcp25xxx"
	"github.com/knieriem/mcp25xxx/periphspi"
	"github.com/knieriem/mcp25xxx/spiproto"
	"github.com/knieriem/mcp25xxx/spitrace"
)

// device bundles the resources opened for a command.
type device struct {
	*mcp25xxx.Dev
	conn  *periphspi.Conn
	intr  *periphspi.Interrupt
	trace *spitrace.FileLogger
}

// openDevice connects to the chip as configured. With verbose set,
// each SPI transfer is logged at debug level.
func openDevice(cfg *Config, verbose bool) (*device, error) {
	err := periphspi.Init()
	if err != nil {
		return nil, err
	}
	d := new(device)
	d.conn, err = periphspi.Open(cfg.SPI, physic.Frequency(cfg.SpeedHz)*physic.Hertz)
	if err != nil {
		return nil, err
	}

	var loggers []spitrace.Logger
	if cfg.Trace != "" {
		d.trace, err = spitrace.NewFileLogger(cfg.Trace)
		if err != nil {
			d.Close()
			return nil, err
		}
		loggers = append(loggers, d.trace)
	}
	if verbose {
		loggers = append(loggers, spitrace.NewSlogAdapter(slog.Default()))
	}

	var conn spiproto.Conn = d.conn
	if len(loggers) != 0 {
		rec := spitrace.NewRecorder(d.conn, spitrace.NewMultiLogger(loggers...))
		slog.Debug("tracing spi transfers", "session", rec.Session(), "file", cfg.Trace)
		conn = rec
	}

	if cfg.Interrupt != "" {
		d.intr, err = periphspi.OpenInterrupt(cfg.Interrupt)
		if err != nil {
			d.Close()
			return nil, err
		}
	}
	d.Dev = mcp25xxx.NewDevice(conn)
	return d, nil
}

func (d *device) Close() error {
	var errs []error
	if d.intr != nil {
		errs = append(errs, d.intr.Close())
	}
	if d.trace != nil {
		errs = append(errs, d.trace.Close())
	}
	if d.conn != nil {
		errs = append(errs, d.conn.Close())
	}
	return errors.Join(errs...)
}
