package register

import (
	"fmt"

	"github.com/knieriem/mcp25xxx/spiproto"
)

// RxFilter is the number of an acceptance filter, 0 to 5.
type RxFilter uint8

// RxMask is the number of an acceptance mask, 0 or 1.
type RxMask uint8

// Subregister is one of the four identifier registers backing a
// filter or mask.
type Subregister uint8

const (
	Sidh Subregister = iota
	Sidl
	Eid8
	Eid0
)

func (k Subregister) String() string {
	switch k {
	case Sidh:
		return "SIDH"
	case Sidl:
		return "SIDL"
	case Eid8:
		return "EID8"
	case Eid0:
		return "EID0"
	}
	return fmt.Sprintf("Subregister(%d)", uint8(k))
}

// The address gaps between filters 2 and 3 (BFPCTRL..CANCTRL)
// make these tables non-uniform.
var filterAddrs = [6][4]spiproto.Addr{
	{spiproto.RXF0SIDH, spiproto.RXF0SIDL, spiproto.RXF0EID8, spiproto.RXF0EID0},
	{spiproto.RXF1SIDH, spiproto.RXF1SIDL, spiproto.RXF1EID8, spiproto.RXF1EID0},
	{spiproto.RXF2SIDH, spiproto.RXF2SIDL, spiproto.RXF2EID8, spiproto.RXF2EID0},
	{spiproto.RXF3SIDH, spiproto.RXF3SIDL, spiproto.RXF3EID8, spiproto.RXF3EID0},
	{spiproto.RXF4SIDH, spiproto.RXF4SIDL, spiproto.RXF4EID8, spiproto.RXF4EID0},
	{spiproto.RXF5SIDH, spiproto.RXF5SIDL, spiproto.RXF5EID8, spiproto.RXF5EID0},
}

var maskAddrs = [2][4]spiproto.Addr{
	{spiproto.RXM0SIDH, spiproto.RXM0SIDL, spiproto.RXM0EID8, spiproto.RXM0EID0},
	{spiproto.RXM1SIDH, spiproto.RXM1SIDL, spiproto.RXM1EID8, spiproto.RXM1EID0},
}

type indexEntry struct {
	n uint8
	k Subregister
}

var (
	filterIndex = make(map[spiproto.Addr]indexEntry, 6*4)
	maskIndex   = make(map[spiproto.Addr]indexEntry, 2*4)
)

func init() {
	for n, regs := range filterAddrs {
		for k, a := range regs {
			filterIndex[a] = indexEntry{uint8(n), Subregister(k)}
		}
	}
	for n, regs := range maskAddrs {
		for k, a := range regs {
			maskIndex[a] = indexEntry{uint8(n), Subregister(k)}
		}
	}
}

// FilterAddress returns the address of sub-register k of filter n.
func FilterAddress(n RxFilter, k Subregister) (spiproto.Addr, error) {
	if int(n) >= len(filterAddrs) {
		return spiproto.None, &IndexError{Table: "filter", Index: int(n)}
	}
	if err := checkSubregister("filter", k); err != nil {
		return spiproto.None, err
	}
	return filterAddrs[n][k], nil
}

// FilterFromAddress is the inverse of FilterAddress.
func FilterFromAddress(a spiproto.Addr) (RxFilter, Subregister, error) {
	e, ok := filterIndex[a]
	if !ok {
		return 0, 0, &IndexError{Table: "filter", Addr: a, Index: -1}
	}
	return RxFilter(e.n), e.k, nil
}

// MaskAddress returns the address of sub-register k of mask n.
func MaskAddress(n RxMask, k Subregister) (spiproto.Addr, error) {
	if int(n) >= len(maskAddrs) {
		return spiproto.None, &IndexError{Table: "mask", Index: int(n)}
	}
	if err := checkSubregister("mask", k); err != nil {
		return spiproto.None, err
	}
	return maskAddrs[n][k], nil
}

// MaskFromAddress is the inverse of MaskAddress.
func MaskFromAddress(a spiproto.Addr) (RxMask, Subregister, error) {
	e, ok := maskIndex[a]
	if !ok {
		return 0, 0, &IndexError{Table: "mask", Addr: a, Index: -1}
	}
	return RxMask(e.n), e.k, nil
}

func checkSubregister(table string, k Subregister) error {
	if k > Eid0 {
		return &IndexError{Table: table + " subregister", Index: int(k)}
	}
	return nil
}

func checkFilter(reg string, n RxFilter) error {
	return checkRange(reg, "n", int(n), len(filterAddrs)-1)
}

func checkMask(reg string, n RxMask) error {
	return checkRange(reg, "n", int(n), len(maskAddrs)-1)
}

// RxFSidh holds bits 10..3 of the standard identifier of filter n.
type RxFSidh struct {
	n RxFilter
	v byte
}

func NewRxFSidh(n RxFilter, v byte) (RxFSidh, error) {
	if err := checkFilter("RXFnSIDH", n); err != nil {
		return RxFSidh{}, err
	}
	return RxFSidh{n: n, v: v}, nil
}

func (r RxFSidh) Filter() RxFilter       { return r.n }
func (r RxFSidh) Address() spiproto.Addr { return filterAddrs[r.n][Sidh] }
func (r RxFSidh) Byte() byte             { return r.v }
func (r RxFSidh) String() string         { return fmt.Sprintf("%v{SID=%#02x}", r.Address(), r.v) }
func (RxFSidh) register()                {}

// RxFSidl is the SIDL register of filter n. With EXIDE set the
// filter applies to extended frames only, otherwise to standard
// frames only.
type RxFSidl struct {
	n     RxFilter
	sid   uint8
	exide bool
	eid   uint8
}

func NewRxFSidl(n RxFilter, sid uint8, exide bool, eid uint8) (RxFSidl, error) {
	if err := checkFilter("RXFnSIDL", n); err != nil {
		return RxFSidl{}, err
	}
	if err := checkSidl("RXFnSIDL", sid, eid); err != nil {
		return RxFSidl{}, err
	}
	return RxFSidl{n: n, sid: sid, exide: exide, eid: eid}, nil
}

func RxFSidlFromByte(n RxFilter, b byte) (RxFSidl, error) {
	return NewRxFSidl(n, b>>sidlSidShift&7, isSet(b, sidlExide), b>>sidlEidShift&3)
}

func (r RxFSidl) Filter() RxFilter       { return r.n }
func (r RxFSidl) Sid() uint8             { return r.sid }
func (r RxFSidl) Extended() bool         { return r.exide }
func (r RxFSidl) Eid() uint8             { return r.eid }
func (r RxFSidl) Address() spiproto.Addr { return filterAddrs[r.n][Sidl] }
func (r RxFSidl) Byte() byte             { return packSidl(r.sid, r.exide, r.eid) }

func (r RxFSidl) String() string {
	return fmt.Sprintf("%v{SID=%d EXIDE=%d EID=%d}", r.Address(), r.sid, b2i(r.exide), r.eid)
}

func (RxFSidl) register() {}

// RxFEid8 holds bits 15..8 of the extended identifier of filter n.
type RxFEid8 struct {
	n RxFilter
	v byte
}

func NewRxFEid8(n RxFilter, v byte) (RxFEid8, error) {
	if err := checkFilter("RXFnEID8", n); err != nil {
		return RxFEid8{}, err
	}
	return RxFEid8{n: n, v: v}, nil
}

func (r RxFEid8) Filter() RxFilter       { return r.n }
func (r RxFEid8) Address() spiproto.Addr { return filterAddrs[r.n][Eid8] }
func (r RxFEid8) Byte() byte             { return r.v }
func (r RxFEid8) String() string         { return fmt.Sprintf("%v{EID=%#02x}", r.Address(), r.v) }
func (RxFEid8) register()                {}

// RxFEid0 holds bits 7..0 of the extended identifier of filter n.
type RxFEid0 struct {
	n RxFilter
	v byte
}

func NewRxFEid0(n RxFilter, v byte) (RxFEid0, error) {
	if err := checkFilter("RXFnEID0", n); err != nil {
		return RxFEid0{}, err
	}
	return RxFEid0{n: n, v: v}, nil
}

func (r RxFEid0) Filter() RxFilter       { return r.n }
func (r RxFEid0) Address() spiproto.Addr { return filterAddrs[r.n][Eid0] }
func (r RxFEid0) Byte() byte             { return r.v }
func (r RxFEid0) String() string         { return fmt.Sprintf("%v{EID=%#02x}", r.Address(), r.v) }
func (RxFEid0) register()                {}

// RxMSidh holds bits 10..3 of the standard identifier of mask n.
type RxMSidh struct {
	n RxMask
	v byte
}

func NewRxMSidh(n RxMask, v byte) (RxMSidh, error) {
	if err := checkMask("RXMnSIDH", n); err != nil {
		return RxMSidh{}, err
	}
	return RxMSidh{n: n, v: v}, nil
}

func (r RxMSidh) Mask() RxMask           { return r.n }
func (r RxMSidh) Address() spiproto.Addr { return maskAddrs[r.n][Sidh] }
func (r RxMSidh) Byte() byte             { return r.v }
func (r RxMSidh) String() string         { return fmt.Sprintf("%v{SID=%#02x}", r.Address(), r.v) }
func (RxMSidh) register()                {}

// RxMSidl is the SIDL register of mask n. Masks have no EXIDE bit.
type RxMSidl struct {
	n   RxMask
	sid uint8
	eid uint8
}

func NewRxMSidl(n RxMask, sid, eid uint8) (RxMSidl, error) {
	if err := checkMask("RXMnSIDL", n); err != nil {
		return RxMSidl{}, err
	}
	if err := checkSidl("RXMnSIDL", sid, eid); err != nil {
		return RxMSidl{}, err
	}
	return RxMSidl{n: n, sid: sid, eid: eid}, nil
}

func RxMSidlFromByte(n RxMask, b byte) (RxMSidl, error) {
	return NewRxMSidl(n, b>>sidlSidShift&7, b>>sidlEidShift&3)
}

func (r RxMSidl) Mask() RxMask           { return r.n }
func (r RxMSidl) Sid() uint8             { return r.sid }
func (r RxMSidl) Eid() uint8             { return r.eid }
func (r RxMSidl) Address() spiproto.Addr { return maskAddrs[r.n][Sidl] }
func (r RxMSidl) Byte() byte             { return packSidl(r.sid, false, r.eid) }

func (r RxMSidl) String() string {
	return fmt.Sprintf("%v{SID=%d EID=%d}", r.Address(), r.sid, r.eid)
}

func (RxMSidl) register() {}

// RxMEid8 holds bits 15..8 of the extended identifier of mask n.
type RxMEid8 struct {
	n RxMask
	v byte
}

func NewRxMEid8(n RxMask, v byte) (RxMEid8, error) {
	if err := checkMask("RXMnEID8", n); err != nil {
		return RxMEid8{}, err
	}
	return RxMEid8{n: n, v: v}, nil
}

func (r RxMEid8) Mask() RxMask           { return r.n }
func (r RxMEid8) Address() spiproto.Addr { return maskAddrs[r.n][Eid8] }
func (r RxMEid8) Byte() byte             { return r.v }
func (r RxMEid8) String() string         { return fmt.Sprintf("%v{EID=%#02x}", r.Address(), r.v) }
func (RxMEid8) register()                {}

// RxMEid0 holds bits 7..0 of the extended identifier of mask n.
type RxMEid0 struct {
	n RxMask
	v byte
}

func NewRxMEid0(n RxMask, v byte) (RxMEid0, error) {
	if err := checkMask("RXMnEID0", n); err != nil {
		return RxMEid0{}, err
	}
	return RxMEid0{n: n, v: v}, nil
}

func (r RxMEid0) Mask() RxMask           { return r.n }
func (r RxMEid0) Address() spiproto.Addr { return maskAddrs[r.n][Eid0] }
func (r RxMEid0) Byte() byte             { return r.v }
func (r RxMEid0) String() string         { return fmt.Sprintf("%v{EID=%#02x}", r.Address(), r.v) }
func (RxMEid0) register()                {}

// Filter holds the four registers of an acceptance filter.
type Filter struct {
	Sidh RxFSidh
	Sidl RxFSidl
	Eid8 RxFEid8
	Eid0 RxFEid0
}

// NewFilter encodes a CAN identifier into the registers of filter n.
func NewFilter(n RxFilter, id uint32, extended bool) (Filter, error) {
	if err := checkFilter("RXFn", n); err != nil {
		return Filter{}, err
	}
	b, err := EncodeID(id, extended)
	if err != nil {
		return Filter{}, err
	}
	sidl, err := RxFSidlFromByte(n, b[1])
	if err != nil {
		return Filter{}, err
	}
	return Filter{
		Sidh: RxFSidh{n: n, v: b[0]},
		Sidl: sidl,
		Eid8: RxFEid8{n: n, v: b[2]},
		Eid0: RxFEid0{n: n, v: b[3]},
	}, nil
}

// Address returns the address of the first register, SIDH.
func (f Filter) Address() spiproto.Addr { return f.Sidh.Address() }

// Bytes returns the encoded registers in address order, suitable
// for a sequential WRITE starting at Address.
func (f Filter) Bytes() []byte {
	return []byte{f.Sidh.Byte(), f.Sidl.Byte(), f.Eid8.Byte(), f.Eid0.Byte()}
}

// Mask holds the four registers of an acceptance mask.
type Mask struct {
	Sidh RxMSidh
	Sidl RxMSidl
	Eid8 RxMEid8
	Eid0 RxMEid0
}

// NewMask encodes identifier bits into the registers of mask n. A
// standard mask leaves the extended bits zero, so that filters
// ignore the data bytes they would otherwise be compared with.
func NewMask(n RxMask, bits uint32, extended bool) (Mask, error) {
	if err := checkMask("RXMn", n); err != nil {
		return Mask{}, err
	}
	b, err := EncodeID(bits, extended)
	if err != nil {
		return Mask{}, err
	}
	sidl, err := RxMSidlFromByte(n, b[1])
	if err != nil {
		return Mask{}, err
	}
	return Mask{
		Sidh: RxMSidh{n: n, v: b[0]},
		Sidl: sidl,
		Eid8: RxMEid8{n: n, v: b[2]},
		Eid0: RxMEid0{n: n, v: b[3]},
	}, nil
}

func (m Mask) Address() spiproto.Addr { return m.Sidh.Address() }

func (m Mask) Bytes() []byte {
	return []byte{m.Sidh.Byte(), m.Sidl.Byte(), m.Eid8.Byte(), m.Eid0.Byte()}
}

func decodeFilter(n RxFilter, k Subregister, b byte) Register {
	switch k {
	case Sidh:
		return RxFSidh{n: n, v: b}
	case Sidl:
		return RxFSidl{n: n, sid: b >> sidlSidShift & 7, exide: isSet(b, sidlExide), eid: b >> sidlEidShift & 3}
	case Eid8:
		return RxFEid8{n: n, v: b}
	}
	return RxFEid0{n: n, v: b}
}

func decodeMask(n RxMask, k Subregister, b byte) Register {
	switch k {
	case Sidh:
		return RxMSidh{n: n, v: b}
	case Sidl:
		return RxMSidl{n: n, sid: b >> sidlSidShift & 7, eid: b >> sidlEidShift & 3}
	case Eid8:
		return RxMEid8{n: n, v: b}
	}
	return RxMEid0{n: n, v: b}
}
