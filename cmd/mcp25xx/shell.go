package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/knieriem/mcp25xxx/register"
	"github.com/knieriem/mcp25xxx/spiproto"
)

var errExit = errors.New("exit")

const shellHelp = `Commands:
  read <addr> [n]              Read n registers starting at addr
  write <addr> <byte>...       Write consecutive registers
  modify <addr> <mask> <value> BIT MODIFY
  status                       READ STATUS
  rxstatus                     RX STATUS
  rts <mask>                   Request to send, bit n selects TXBn
  reset                        RESET
  decode <addr> <byte>         Decode a value without accessing the chip
  help                         Show this help
  exit                         Leave the shell

Addresses are register names, like CANCTRL, or hex numbers. Bytes
are hex.
`

// shell executes register level commands.
type shell struct {
	p   *spiproto.Proto
	out io.Writer
}

func runShell(args []string) error {
	var g globalFlags
	fs := newFlagSet("shell", "[flags]", &g)
	fs.Parse(args)

	d, _, err := g.open()
	if err != nil {
		return err
	}
	defer d.Close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "mcp> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	sh := &shell{p: d.Proto(), out: rl.Stdout()}
	fmt.Fprint(sh.out, shellHelp)
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return nil
		}
		err = sh.exec(strings.Fields(line))
		if err == errExit {
			return nil
		}
		if err != nil {
			fmt.Fprintf(rl.Stderr(), "error: %v\n", err)
		}
	}
}

func (sh *shell) exec(args []string) error {
	if len(args) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "read", "r":
		return sh.read(args)
	case "write", "w":
		return sh.write(args)
	case "modify", "m":
		return sh.modify(args)
	case "status":
		st, err := sh.p.ReadStatus()
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "%#02x %v\n", st.Byte(), st)
	case "rxstatus":
		st, err := sh.p.RxStatus()
		if err != nil {
			return err
		}
		fmt.Fprintln(sh.out, st)
	case "rts":
		if len(args) != 1 {
			return errUsage("rts <mask>")
		}
		b, err := parseByte(args[0])
		if err != nil {
			return err
		}
		if b > 7 {
			return fmt.Errorf("rts mask %#x: only bits 0 to 2 are valid", b)
		}
		return sh.p.RequestToSend(b&1 != 0, b&2 != 0, b&4 != 0)
	case "reset":
		return sh.p.Reset()
	case "decode", "d":
		if len(args) != 2 {
			return errUsage("decode <addr> <byte>")
		}
		a, err := parseAddr(args[0])
		if err != nil {
			return err
		}
		b, err := parseByte(args[1])
		if err != nil {
			return err
		}
		return sh.print(a, b)
	case "help", "?":
		fmt.Fprint(sh.out, shellHelp)
	case "exit", "quit", "q":
		return errExit
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

func (sh *shell) read(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage("read <addr> [n]")
	}
	a, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	n := 1
	if len(args) == 2 {
		n, err = strconv.Atoi(args[1])
		if err != nil || n < 1 || int(a)+n > 0x80 {
			return fmt.Errorf("invalid count %q", args[1])
		}
	}
	buf := make([]byte, n)
	err = sh.p.ReadSeq(a, buf)
	if err != nil {
		return err
	}
	for i, b := range buf {
		err = sh.print(a+spiproto.Addr(i), b)
		if err != nil {
			return err
		}
	}
	return nil
}

func (sh *shell) write(args []string) error {
	if len(args) < 2 {
		return errUsage("write <addr> <byte>...")
	}
	a, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	data := make([]byte, len(args)-1)
	for i, s := range args[1:] {
		data[i], err = parseByte(s)
		if err != nil {
			return err
		}
	}
	return sh.p.Write(a, data...)
}

func (sh *shell) modify(args []string) error {
	if len(args) != 3 {
		return errUsage("modify <addr> <mask> <value>")
	}
	a, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	mask, err := parseByte(args[1])
	if err != nil {
		return err
	}
	val, err := parseByte(args[2])
	if err != nil {
		return err
	}
	if !spiproto.BitModifiable(a) {
		fmt.Fprintf(sh.out, "warning: %v does not support BIT MODIFY, the chip will write %#02x\n", a, val)
	}
	return sh.p.BitModify(a, mask, val)
}

// print shows the value of a register, decoded if the address is
// known.
func (sh *shell) print(a spiproto.Addr, b byte) error {
	if !a.Known() {
		fmt.Fprintf(sh.out, "%#02x = %#02x\n", uint8(a), b)
		return nil
	}
	r, err := register.Decode(a, b)
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "%v = %#02x  %v\n", a, b, r)
	return nil
}

func errUsage(synopsis string) error {
	return fmt.Errorf("usage: %s", synopsis)
}

func trimHex(s string) string {
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}
	return s
}

func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(trimHex(s), 16, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte %q", s)
	}
	return byte(v), nil
}

// parseAddr accepts a register name or a hex address.
func parseAddr(s string) (spiproto.Addr, error) {
	if s != "" && (s[0] < '0' || s[0] > '9') {
		if a, err := spiproto.ParseAddr(s); err == nil && a.Known() {
			return a, nil
		}
	}
	v, err := strconv.ParseUint(trimHex(s), 16, 8)
	if err != nil || v >= 0x80 {
		return spiproto.None, fmt.Errorf("unknown register %q", s)
	}
	return spiproto.Addr(v), nil
}
