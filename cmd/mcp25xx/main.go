// Command mcp25xx inspects and operates an MCP2515 or MCP25625 CAN
// controller attached to an SPI port of a Linux host.
//
// Usage:
//
//	mcp25xx <command> [flags] [args]
//
// Commands:
//
//	dump     Read and decode all registers
//	status   Show READ STATUS, RX STATUS, mode and error state
//	init     Reset and configure the chip
//	send     Transmit a message: send <id> <hexdata>
//	recv     Print received messages
//	shell    Interactive register shell
//	trace    Print an SPI trace file
//
// Examples:
//
//	# Configure from a file and print incoming messages
//	mcp25xx recv -config can0.yaml
//
//	# Send an extended frame
//	mcp25xx send -ext 18DAF110 0210
//
//	# Show the register writes recorded in a trace file
//	mcp25xx trace -instr WRITE mcp.trace
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
)

const usage = `mcp25xx - MCP2515/MCP25625 CAN controller tool

Usage:
  mcp25xx <command> [flags] [args]

Commands:
  dump     Read and decode all registers
  status   Show READ STATUS, RX STATUS, mode and error state
  init     Reset and configure the chip
  send     Transmit a message: send <id> <hexdata>
  recv     Print received messages
  shell    Interactive register shell
  trace    Print an SPI trace file

Use "mcp25xx <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "dump":
		err = runDump(args)
	case "status":
		err = runStatus(args)
	case "init":
		err = runInit(args)
	case "send":
		err = runSend(args)
	case "recv":
		err = runRecv(args)
	case "shell":
		err = runShell(args)
	case "trace":
		err = runTrace(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	if err != nil {
		slog.Error(cmd, "error", err)
		os.Exit(1)
	}
}

// globalFlags are accepted by all commands talking to the chip.
type globalFlags struct {
	config  string
	spi     string
	verbose bool
}

func newFlagSet(name, synopsis string, g *globalFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  mcp25xx %s %s\n\nFlags:\n", name, synopsis)
		fs.PrintDefaults()
	}
	if g != nil {
		fs.StringVar(&g.config, "config", "", "Configuration file (YAML)")
		fs.StringVar(&g.spi, "spi", "", "SPI port, overrides the configuration file")
		fs.BoolVar(&g.verbose, "v", false, "Log each SPI transfer")
	}
	return fs
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}

// open loads the configuration and connects to the chip.
func (g *globalFlags) open() (*device, *Config, error) {
	setupLogging(g.verbose)
	cfg, err := Load(g.config)
	if err != nil {
		return nil, nil, err
	}
	if g.spi != "" {
		cfg.SPI = g.spi
	}
	d, err := openDevice(cfg, g.verbose)
	if err != nil {
		return nil, nil, err
	}
	return d, cfg, nil
}
