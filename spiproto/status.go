package spiproto

import "fmt"

// ReadStatusResponse is the decoded reply to READ STATUS.
type ReadStatusResponse struct {
	Rx0If  bool // bit 0, CANINTF.RX0IF
	Rx1If  bool // bit 1, CANINTF.RX1IF
	Tx0Req bool // bit 2, TXB0CTRL.TXREQ
	Tx0If  bool // bit 3, CANINTF.TX0IF
	Tx1Req bool // bit 4, TXB1CTRL.TXREQ
	Tx1If  bool // bit 5, CANINTF.TX1IF
	Tx2Req bool // bit 6, TXB2CTRL.TXREQ
	Tx2If  bool // bit 7, CANINTF.TX2IF
}

func ReadStatusFromByte(b byte) ReadStatusResponse {
	return ReadStatusResponse{
		Rx0If:  b&(1<<0) != 0,
		Rx1If:  b&(1<<1) != 0,
		Tx0Req: b&(1<<2) != 0,
		Tx0If:  b&(1<<3) != 0,
		Tx1Req: b&(1<<4) != 0,
		Tx1If:  b&(1<<5) != 0,
		Tx2Req: b&(1<<6) != 0,
		Tx2If:  b&(1<<7) != 0,
	}
}

func (st ReadStatusResponse) Byte() byte {
	var b byte
	for i, f := range [8]bool{st.Rx0If, st.Rx1If, st.Tx0Req, st.Tx0If, st.Tx1Req, st.Tx1If, st.Tx2Req, st.Tx2If} {
		if f {
			b |= 1 << i
		}
	}
	return b
}

// TxPending reports whether transmit buffer n has a pending
// transmission request.
func (st ReadStatusResponse) TxPending(n int) bool {
	switch n {
	case 0:
		return st.Tx0Req
	case 1:
		return st.Tx1Req
	case 2:
		return st.Tx2Req
	}
	return false
}

func (st ReadStatusResponse) String() string {
	return fmt.Sprintf("rx0if=%t rx1if=%t tx0req=%t tx0if=%t tx1req=%t tx1if=%t tx2req=%t tx2if=%t",
		st.Rx0If, st.Rx1If, st.Tx0Req, st.Tx0If, st.Tx1Req, st.Tx1If, st.Tx2Req, st.Tx2If)
}

// FilterMatchType tells which acceptance filter accepted a message.
type FilterMatchType uint8

const (
	RxF0 FilterMatchType = iota
	RxF1
	RxF2
	RxF3
	RxF4
	RxF5
	RxF0RolloverToRxB1
	RxF1RolloverToRxB1
)

var filterMatchNames = [...]string{
	RxF0:               "RXF0",
	RxF1:               "RXF1",
	RxF2:               "RXF2",
	RxF3:               "RXF3",
	RxF4:               "RXF4",
	RxF5:               "RXF5",
	RxF0RolloverToRxB1: "RXF0 (rollover to RXB1)",
	RxF1RolloverToRxB1: "RXF1 (rollover to RXB1)",
}

func (t FilterMatchType) String() string {
	if int(t) < len(filterMatchNames) {
		return filterMatchNames[t]
	}
	return fmt.Sprintf("FilterMatchType(%d)", uint8(t))
}

// MessageReceivedType is the frame format of a received message.
type MessageReceivedType uint8

const (
	StandardDataFrame MessageReceivedType = iota
	StandardRemoteFrame
	ExtendedDataFrame
	ExtendedRemoteFrame
)

func (t MessageReceivedType) Extended() bool { return t&2 != 0 }
func (t MessageReceivedType) Remote() bool   { return t&1 != 0 }

func (t MessageReceivedType) String() string {
	switch t {
	case StandardDataFrame:
		return "standard data frame"
	case StandardRemoteFrame:
		return "standard remote frame"
	case ExtendedDataFrame:
		return "extended data frame"
	case ExtendedRemoteFrame:
		return "extended remote frame"
	}
	return fmt.Sprintf("MessageReceivedType(%d)", uint8(t))
}

// ReceivedMessageType tells which receive buffers hold a message.
type ReceivedMessageType uint8

const (
	NoRxMessage ReceivedMessageType = iota
	MessageInRxB0
	MessageInRxB1
	MessagesInBothBuffers
)

func (t ReceivedMessageType) InRxB0() bool { return t&1 != 0 }
func (t ReceivedMessageType) InRxB1() bool { return t&2 != 0 }

func (t ReceivedMessageType) String() string {
	switch t {
	case NoRxMessage:
		return "no message"
	case MessageInRxB0:
		return "message in RXB0"
	case MessageInRxB1:
		return "message in RXB1"
	case MessagesInBothBuffers:
		return "messages in both buffers"
	}
	return fmt.Sprintf("ReceivedMessageType(%d)", uint8(t))
}

// RxStatusResponse is the decoded reply to RX STATUS.
type RxStatusResponse struct {
	FilterMatch FilterMatchType     // bits 0-2
	MessageType MessageReceivedType // bits 3-4
	Received    ReceivedMessageType // bits 6-7

	// Reserved holds the unimplemented bit 5, so that
	// RxStatusFromByte(b).Byte() == b for every b.
	Reserved bool
}

const (
	rxStatusFilterShift  = 0
	rxStatusFilterMask   = 7
	rxStatusTypeShift    = 3
	rxStatusTypeMask     = 3
	rxStatusReservedBit  = 5
	rxStatusMessageShift = 6
	rxStatusMessageMask  = 3
)

// NewRxStatusResponse builds a response from its fields, rejecting
// values that do not fit their bit groups.
func NewRxStatusResponse(fm FilterMatchType, mt MessageReceivedType, rm ReceivedMessageType) (RxStatusResponse, error) {
	switch {
	case fm > rxStatusFilterMask:
		return RxStatusResponse{}, fmt.Errorf("%w: filter match type %d", ErrInvalidStatusField, fm)
	case mt > rxStatusTypeMask:
		return RxStatusResponse{}, fmt.Errorf("%w: message type %d", ErrInvalidStatusField, mt)
	case rm > rxStatusMessageMask:
		return RxStatusResponse{}, fmt.Errorf("%w: received message type %d", ErrInvalidStatusField, rm)
	}
	return RxStatusResponse{FilterMatch: fm, MessageType: mt, Received: rm}, nil
}

func RxStatusFromByte(b byte) RxStatusResponse {
	return RxStatusResponse{
		FilterMatch: FilterMatchType(b >> rxStatusFilterShift & rxStatusFilterMask),
		MessageType: MessageReceivedType(b >> rxStatusTypeShift & rxStatusTypeMask),
		Received:    ReceivedMessageType(b >> rxStatusMessageShift & rxStatusMessageMask),
		Reserved:    b&(1<<rxStatusReservedBit) != 0,
	}
}

// Byte encodes st. Field values wider than their bit group are
// truncated.
func (st RxStatusResponse) Byte() byte {
	b := byte(st.FilterMatch)&rxStatusFilterMask<<rxStatusFilterShift |
		byte(st.MessageType)&rxStatusTypeMask<<rxStatusTypeShift |
		byte(st.Received)&rxStatusMessageMask<<rxStatusMessageShift
	if st.Reserved {
		b |= 1 << rxStatusReservedBit
	}
	return b
}

func (st RxStatusResponse) String() string {
	return fmt.Sprintf("%v, %v, filter %v", st.Received, st.MessageType, st.FilterMatch)
}
