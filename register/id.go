package register

// Largest standard (11 bit) and extended (29 bit) identifiers.
const (
	MaxStandardID = 1<<11 - 1
	MaxExtendedID = 1<<29 - 1
)

// EncodeID splits a CAN identifier into the contents of the SIDH,
// SIDL, EID8 and EID0 registers. For standard identifiers the
// extended bytes are zero.
func EncodeID(id uint32, extended bool) ([4]byte, error) {
	var b [4]byte
	if extended {
		if id > MaxExtendedID {
			return b, &FieldError{Register: "ID", Field: "extended", Value: int(id), Max: MaxExtendedID}
		}
		b[0] = byte(id >> 21)
		b[1] = packSidl(uint8(id>>18&7), true, uint8(id>>16&3))
		b[2] = byte(id >> 8)
		b[3] = byte(id)
		return b, nil
	}
	if id > MaxStandardID {
		return b, &FieldError{Register: "ID", Field: "standard", Value: int(id), Max: MaxStandardID}
	}
	b[0] = byte(id >> 3)
	b[1] = packSidl(uint8(id&7), false, 0)
	return b, nil
}

// DecodeID assembles an identifier from the first four bytes of b,
// which hold SIDH, SIDL, EID8 and EID0 of a receive buffer.
func DecodeID(b []byte) (id uint32, extended bool) {
	sid := uint32(b[0])<<3 | uint32(b[1]>>sidlSidShift)
	if b[1]&(1<<sidlExide) == 0 {
		return sid, false
	}
	id = sid<<18 | uint32(b[1]&3)<<16 | uint32(b[2])<<8 | uint32(b[3])
	return id, true
}
