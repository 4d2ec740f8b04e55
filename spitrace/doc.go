// Package spitrace records the SPI transactions exchanged with an
// MCP25xxx controller.
//
// A Recorder wraps a spiproto.Conn and reports every transfer as an
// Event to a Logger. Loggers are provided for discarding events
// (NoopLogger), for writing them to a CBOR stream file (FileLogger),
// for the console through log/slog (SlogAdapter), and for fanning
// out to several loggers (MultiLogger). Reader reads back a trace
// file, optionally filtered.
//
// Usage:
//
//	fl, err := spitrace.NewFileLogger("mcp.trace")
//	if err != nil {
//		return err
//	}
//	defer fl.Close()
//	conn := spitrace.NewRecorder(spiConn, fl)
//	dev := mcp25xxx.NewDevice(conn)
package spitrace
