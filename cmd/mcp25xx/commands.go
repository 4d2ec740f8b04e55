package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/knieriem/can"

	"github.com/knieriem/mcp25xxx"
	"github.com/knieriem/mcp25xxx/register"
	"github.com/knieriem/mcp25xxx/spiproto"
	"github.com/knieriem/mcp25xxx/spitrace"
)

func runDump(args []string) error {
	var g globalFlags
	fs := newFlagSet("dump", "[flags]", &g)
	fs.Parse(args)

	d, _, err := g.open()
	if err != nil {
		return err
	}
	defer d.Close()

	regs, err := d.Dump()
	if err != nil {
		return err
	}
	for _, r := range regs {
		fmt.Printf("%#02x %#02x  %v\n", uint8(r.Address()), r.Byte(), r)
	}
	return nil
}

func runStatus(args []string) error {
	var g globalFlags
	fs := newFlagSet("status", "[flags]", &g)
	fs.Parse(args)

	d, _, err := g.open()
	if err != nil {
		return err
	}
	defer d.Close()
	return printStatus(os.Stdout, d.Dev)
}

func printStatus(w io.Writer, d *mcp25xxx.Dev) error {
	p := d.Proto()
	st, err := p.ReadStatus()
	if err != nil {
		return err
	}
	rx, err := p.RxStatus()
	if err != nil {
		return err
	}
	mode, err := d.Mode()
	if err != nil {
		return err
	}
	eflg, err := d.ErrorFlags()
	if err != nil {
		return err
	}
	tec, rec, err := d.ErrorCounters()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "mode:      %v\n", mode)
	fmt.Fprintf(w, "status:    %v\n", st)
	fmt.Fprintf(w, "rx status: %v\n", rx)
	fmt.Fprintf(w, "errors:    %v tec=%d rec=%d\n", eflg, tec, rec)
	return nil
}

func runInit(args []string) error {
	var g globalFlags
	fs := newFlagSet("init", "[flags]", &g)
	fs.Parse(args)

	d, cfg, err := g.open()
	if err != nil {
		return err
	}
	defer d.Close()
	return initDevice(d, cfg)
}

func initDevice(d *device, cfg *Config) error {
	dc, err := cfg.Device()
	if err != nil {
		return err
	}
	err = d.Init(dc)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	slog.Info("initialized", "clock", dc.Clock, "bitrate", dc.Bitrate, "mode", dc.Mode)
	return nil
}

func runSend(args []string) error {
	var g globalFlags
	fs := newFlagSet("send", "[flags] <id> <hexdata>", &g)
	ext := fs.Bool("ext", false, "Send an extended frame (implied by ids above 0x7FF)")
	noInit := fs.Bool("no-init", false, "Do not configure the chip first")
	fs.Parse(args)

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		os.Exit(1)
	}
	m, err := parseMsg(fs.Arg(0), fs.Arg(1), *ext)
	if err != nil {
		return err
	}

	d, cfg, err := g.open()
	if err != nil {
		return err
	}
	defer d.Close()
	if !*noInit {
		err = initDevice(d, cfg)
		if err != nil {
			return err
		}
	}
	err = d.Write(m)
	if err != nil {
		return err
	}
	slog.Info("queued", "msg", formatMsg(m))
	return nil
}

// parseMsg builds a message from a hexadecimal id and data.
func parseMsg(id, data string, ext bool) (*can.Msg, error) {
	v, err := strconv.ParseUint(trimHex(id), 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q", id)
	}
	b, err := hex.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("invalid data %q: %w", data, err)
	}
	if len(b) > spiproto.DataLen {
		return nil, fmt.Errorf("%w: %d bytes", mcp25xxx.ErrInvalidLen, len(b))
	}
	m := &can.Msg{Id: uint32(v), Len: len(b)}
	if ext || v > register.MaxStandardID {
		m.Flags = can.ExtFrame
	}
	_, err = register.EncodeID(m.Id, m.ExtFrame())
	if err != nil {
		return nil, err
	}
	copy(m.Data[:], b)
	return m, nil
}

func formatMsg(m *can.Msg) string {
	id := fmt.Sprintf("%03X", m.Id)
	if m.ExtFrame() {
		id = fmt.Sprintf("%08X", m.Id)
	}
	return fmt.Sprintf("%s [%d] % X", id, m.Len, m.Data[:m.Len])
}

// poll interval when no interrupt pin is configured
const pollInterval = 2 * time.Millisecond

func runRecv(args []string) error {
	var g globalFlags
	fs := newFlagSet("recv", "[flags]", &g)
	n := fs.Int("n", 0, "Exit after receiving n messages (0: run until interrupted)")
	noInit := fs.Bool("no-init", false, "Do not configure the chip first")
	fs.Parse(args)

	d, cfg, err := g.open()
	if err != nil {
		return err
	}
	defer d.Close()
	if !*noInit {
		err = initDevice(d, cfg)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	count := 0
	for ctx.Err() == nil {
		if d.intr != nil {
			if !d.intr.Wait(100 * time.Millisecond) {
				continue
			}
		}
		msgs, err := d.ReadMessages()
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			if d.intr == nil {
				time.Sleep(pollInterval)
			}
			continue
		}
		for i := range msgs {
			fmt.Println(formatMsg(&msgs[i]))
			count++
			if *n > 0 && count == *n {
				return nil
			}
		}
	}
	return nil
}

func runTrace(args []string) error {
	fs := newFlagSet("trace", "[flags] <file>", nil)
	session := fs.String("session", "", "Show only this session")
	instr := fs.String("instr", "", "Show only this instruction, like READ or \"BIT MODIFY\"")
	addr := fs.String("addr", "", "Show only transfers accessing this register")
	errorsOnly := fs.Bool("errors", false, "Show only failed transfers")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	filter := spitrace.Filter{
		SessionID:   *session,
		Instruction: *instr,
		ErrorsOnly:  *errorsOnly,
	}
	if *addr != "" {
		a, err := parseAddr(*addr)
		if err != nil {
			return err
		}
		filter.Addr = &a
	}

	r, err := spitrace.NewFilteredReader(fs.Arg(0), filter)
	if err != nil {
		return err
	}
	defer r.Close()
	return printTrace(os.Stdout, r)
}

func printTrace(w io.Writer, r *spitrace.Reader) error {
	var session string
	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if s := r.Session(); s.ID != session {
			session = s.ID
			fmt.Fprintf(w, "session %s started %s", s.ID, s.Started.Format(time.RFC3339))
			if s.Port != "" {
				fmt.Fprintf(w, " on %s", s.Port)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, e)
	}
}
