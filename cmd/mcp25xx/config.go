package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/knieriem/mcp25xxx"
	"github.com/knieriem/mcp25xxx/register"
)

// Config is the content of the YAML configuration file.
type Config struct {
	SPI       string       `yaml:"spi"`
	SpeedHz   int64        `yaml:"speed_hz"`
	Interrupt string       `yaml:"interrupt"`
	Clock     string       `yaml:"clock"`
	Bitrate   string       `yaml:"bitrate"`
	Mode      string       `yaml:"mode"`
	Rollover  *bool        `yaml:"rollover"`
	Masks     []Acceptance `yaml:"masks"`
	Filters   []Acceptance `yaml:"filters"`

	// Trace names a file receiving a CBOR record of each SPI
	// transfer.
	Trace string `yaml:"trace"`
}

type Acceptance struct {
	N        int    `yaml:"n"`
	ID       uint32 `yaml:"id"`
	Extended bool   `yaml:"extended"`
}

func defaultConfig() *Config {
	rollover := true
	return &Config{
		SPI:      "SPI0.0",
		SpeedHz:  10_000_000,
		Clock:    "16MHz",
		Bitrate:  "500k",
		Mode:     "normal",
		Rollover: &rollover,
	}
}

// Load reads the configuration file at path. Settings missing from
// the file keep their defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		err = yaml.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	_, err := cfg.Device()
	if err != nil {
		if path != "" {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, err
	}
	return cfg, nil
}

// Device translates the configuration into the settings applied by
// mcp25xxx.Dev.Init, validating them on the way.
func (c *Config) Device() (mcp25xxx.Config, error) {
	var dc mcp25xxx.Config

	if c.SpeedHz < 0 {
		return dc, fmt.Errorf("invalid speed_hz %d", c.SpeedHz)
	}
	clk, err := mcp25xxx.ParseClock(c.Clock)
	if err != nil {
		return dc, err
	}
	rate, err := mcp25xxx.ParseBitrate(c.Bitrate)
	if err != nil {
		return dc, err
	}
	_, _, _, err = mcp25xxx.BitTiming(clk, rate)
	if err != nil {
		return dc, err
	}
	mode, err := register.ParseOperationMode(c.Mode)
	if err != nil {
		return dc, err
	}

	dc.Clock = clk
	dc.Bitrate = rate
	dc.Mode = mode
	dc.Rollover = c.Rollover == nil || *c.Rollover
	dc.RxInterrupts = true

	dc.Masks, err = acceptance("mask", c.Masks, 1)
	if err != nil {
		return dc, err
	}
	dc.Filters, err = acceptance("filter", c.Filters, 5)
	if err != nil {
		return dc, err
	}
	return dc, nil
}

func acceptance(kind string, list []Acceptance, max int) ([]mcp25xxx.Acceptance, error) {
	var out []mcp25xxx.Acceptance
	for _, a := range list {
		if a.N < 0 || a.N > max {
			return nil, fmt.Errorf("%s index %d out of range [0, %d]", kind, a.N, max)
		}
		_, err := register.EncodeID(a.ID, a.Extended)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", kind, a.N, err)
		}
		out = append(out, mcp25xxx.Acceptance{N: a.N, ID: a.ID, Extended: a.Extended})
	}
	return out, nil
}
