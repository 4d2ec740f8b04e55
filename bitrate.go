package mcp25xxx

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/knieriem/mcp25xxx/register"
)

// Clock is the oscillator frequency in Hz.
type Clock int

const (
	Clock8MHz  Clock = 8_000_000
	Clock16MHz Clock = 16_000_000
	Clock20MHz Clock = 20_000_000
)

func (c Clock) String() string {
	if c%1_000_000 == 0 {
		return fmt.Sprintf("%dMHz", int(c)/1_000_000)
	}
	return fmt.Sprintf("%dHz", int(c))
}

// ParseClock accepts the names returned by String, like "16MHz",
// or a frequency in Hz.
func ParseClock(s string) (Clock, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	mul := 1
	if strings.HasSuffix(u, "MHZ") {
		u = strings.TrimSuffix(u, "MHZ")
		mul = 1_000_000
	}
	v, err := strconv.Atoi(u)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	return Clock(v * mul), nil
}

// Bitrate is a CAN bus bitrate in bit/s.
type Bitrate int

const (
	Bitrate5k    Bitrate = 5_000
	Bitrate10k   Bitrate = 10_000
	Bitrate20k   Bitrate = 20_000
	Bitrate31k25 Bitrate = 31_250
	Bitrate33k3  Bitrate = 33_333
	Bitrate40k   Bitrate = 40_000
	Bitrate50k   Bitrate = 50_000
	Bitrate80k   Bitrate = 80_000
	Bitrate83k3  Bitrate = 83_333
	Bitrate100k  Bitrate = 100_000
	Bitrate125k  Bitrate = 125_000
	Bitrate200k  Bitrate = 200_000
	Bitrate250k  Bitrate = 250_000
	Bitrate500k  Bitrate = 500_000
	Bitrate1000k Bitrate = 1_000_000
)

func (r Bitrate) String() string {
	switch {
	case r == Bitrate31k25:
		return "31k25"
	case r == Bitrate33k3:
		return "33k3"
	case r == Bitrate83k3:
		return "83k3"
	case r%1000 == 0:
		return fmt.Sprintf("%dk", int(r)/1000)
	}
	return strconv.Itoa(int(r))
}

// ParseBitrate accepts the names returned by String, like "500k"
// or "33k3", "1M", or a bitrate in bit/s.
func ParseBitrate(s string) (Bitrate, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "1M") {
		return Bitrate1000k, nil
	}
	for _, t := range bitTimings {
		for r := range t {
			if strings.EqualFold(r.String(), s) {
				return r, nil
			}
		}
	}
	if k, ok := strings.CutSuffix(strings.ToLower(s), "k"); ok {
		v, err := strconv.Atoi(k)
		if err == nil && v > 0 {
			return Bitrate(v * 1000), nil
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid bitrate %q", s)
	}
	return Bitrate(v), nil
}

var ErrUnsupportedBitrate = errors.New("unsupported clock/bitrate combination")

type cnf struct {
	cnf1, cnf2, cnf3 byte
}

// Register values for CNF1, CNF2 and CNF3 per oscillator frequency
// and bitrate.
var bitTimings = map[Clock]map[Bitrate]cnf{
	Clock8MHz: {
		Bitrate1000k: {0x00, 0x80, 0x80},
		Bitrate500k:  {0x00, 0x90, 0x82},
		Bitrate250k:  {0x00, 0xB1, 0x85},
		Bitrate200k:  {0x00, 0xB4, 0x86},
		Bitrate125k:  {0x01, 0xB1, 0x85},
		Bitrate100k:  {0x01, 0xB4, 0x86},
		Bitrate80k:   {0x01, 0xBF, 0x87},
		Bitrate50k:   {0x03, 0xB4, 0x86},
		Bitrate40k:   {0x03, 0xBF, 0x87},
		Bitrate33k3:  {0x47, 0xE2, 0x85},
		Bitrate31k25: {0x07, 0xA4, 0x84},
		Bitrate20k:   {0x07, 0xBF, 0x87},
		Bitrate10k:   {0x0F, 0xBF, 0x87},
		Bitrate5k:    {0x1F, 0xBF, 0x87},
	},
	Clock16MHz: {
		Bitrate1000k: {0x00, 0xD0, 0x82},
		Bitrate500k:  {0x00, 0xF0, 0x86},
		Bitrate250k:  {0x41, 0xF1, 0x85},
		Bitrate200k:  {0x01, 0xFA, 0x87},
		Bitrate125k:  {0x03, 0xF0, 0x86},
		Bitrate100k:  {0x03, 0xFA, 0x87},
		Bitrate83k3:  {0x03, 0xBE, 0x07},
		Bitrate80k:   {0x03, 0xFF, 0x87},
		Bitrate50k:   {0x07, 0xFA, 0x87},
		Bitrate40k:   {0x07, 0xFF, 0x87},
		Bitrate33k3:  {0x4E, 0xF1, 0x85},
		Bitrate20k:   {0x0F, 0xFF, 0x87},
		Bitrate10k:   {0x1F, 0xFF, 0x87},
		Bitrate5k:    {0x3F, 0xFF, 0x87},
	},
	Clock20MHz: {
		Bitrate1000k: {0x00, 0xD9, 0x82},
		Bitrate500k:  {0x00, 0xFA, 0x87},
		Bitrate250k:  {0x41, 0xFB, 0x86},
		Bitrate200k:  {0x01, 0xFF, 0x87},
		Bitrate125k:  {0x03, 0xFA, 0x87},
		Bitrate100k:  {0x04, 0xFA, 0x87},
		Bitrate83k3:  {0x04, 0xFE, 0x87},
		Bitrate80k:   {0x04, 0xFF, 0x87},
		Bitrate50k:   {0x09, 0xFA, 0x87},
		Bitrate40k:   {0x09, 0xFF, 0x87},
		Bitrate33k3:  {0x0B, 0xFF, 0x87},
	},
}

// BitTiming returns the configuration registers for a bitrate.
func BitTiming(c Clock, r Bitrate) (register.Cnf1, register.Cnf2, register.Cnf3, error) {
	t, ok := bitTimings[c][r]
	if !ok {
		return register.Cnf1{}, register.Cnf2{}, register.Cnf3{}, fmt.Errorf("%w: %v at %v", ErrUnsupportedBitrate, r, c)
	}
	return register.Cnf1FromByte(t.cnf1), register.Cnf2FromByte(t.cnf2), register.Cnf3FromByte(t.cnf3), nil
}

// Bitrates returns the bitrates available with clock c, fastest
// first.
func Bitrates(c Clock) []Bitrate {
	var list []Bitrate
	for r := range bitTimings[c] {
		list = append(list, r)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] > list[j] })
	return list
}

// Clocks returns the supported oscillator frequencies.
func Clocks() []Clock {
	return []Clock{Clock8MHz, Clock16MHz, Clock20MHz}
}

// SetBitrate writes CNF1, CNF2 and CNF3, in that order. The chip
// accepts them in configuration mode only.
func (d *Dev) SetBitrate(c Clock, r Bitrate) error {
	c1, c2, c3, err := BitTiming(c, r)
	if err != nil {
		return err
	}
	for _, reg := range []register.Register{c1, c2, c3} {
		err = d.p.WriteRegister(reg)
		if err != nil {
			return err
		}
	}
	return nil
}
