// Package wire implements the Wayland wire format: a length-prefixed,
// opcoded byte stream over AF_UNIX with file descriptors carried
// out-of-band via SCM_RIGHTS, mirroring the length-prefixed framing style
// bnema-waymon/internal/network/protocol.go uses for its own transport.
package wire

import (
	"encoding/binary"
	"fmt"
)

// Fixed is a signed 24.8 sub-pixel fixed-point value, the wire
// representation of fractional coordinates.
type Fixed int32

// FixedFromFloat64 converts a float64 into 24.8 fixed-point.
func FixedFromFloat64(v float64) Fixed {
	return Fixed(int32(v * 256))
}

// ToFloat64 converts back to a float64.
func (f Fixed) ToFloat64() float64 {
	return float64(f) / 256.0
}

// ToInt truncates toward zero, discarding the fractional byte.
func (f Fixed) ToInt() int32 {
	return int32(f) / 256
}

const (
	headerLen = 8 // object id (4) + opcode (2) + length (2)

	// MaxMessageLen bounds a single message's total length, guarding
	// against a hostile or broken peer sending an unbounded length header.
	MaxMessageLen = 1 << 16
)

// Message is one decoded wire message: a request if read from a client, an
// event if about to be written to one.
type Message struct {
	ObjectID uint32
	Opcode   uint16
	Args     []byte // encoded argument payload, header stripped
	FDs      []int  // fds carried by this message, in argument order
}

// ErrProtocolParse reports a malformed wire message: bad length header,
// length not a multiple of 4, or a truncated argument.
type ErrProtocolParse struct {
	Reason string
}

func (e *ErrProtocolParse) Error() string {
	return fmt.Sprintf("protocol parse error: %s", e.Reason)
}

// Encode serializes a message header + args into a byte slice ready to
// enqueue on a Writer.
func Encode(m Message) ([]byte, error) {
	total := headerLen + len(m.Args)
	if total%4 != 0 {
		return nil, &ErrProtocolParse{Reason: "message length not a multiple of 4"}
	}
	if total > MaxMessageLen {
		return nil, &ErrProtocolParse{Reason: "message exceeds maximum length"}
	}
	buf := make([]byte, total)
	binary.LittleEndian.PutUint32(buf[0:4], m.ObjectID)
	binary.LittleEndian.PutUint16(buf[4:6], m.Opcode)
	binary.LittleEndian.PutUint16(buf[6:8], uint16(total))
	copy(buf[headerLen:], m.Args)
	return buf, nil
}

// DecodeHeader reads only the 8-byte header from the front of buf,
// returning the object id, opcode, and declared total length.
func DecodeHeader(buf []byte) (objectID uint32, opcode uint16, length uint16, err error) {
	if len(buf) < headerLen {
		return 0, 0, 0, &ErrProtocolParse{Reason: "short header"}
	}
	objectID = binary.LittleEndian.Uint32(buf[0:4])
	opcode = binary.LittleEndian.Uint16(buf[4:6])
	length = binary.LittleEndian.Uint16(buf[6:8])
	if length < headerLen || length%4 != 0 {
		return 0, 0, 0, &ErrProtocolParse{Reason: "invalid length header"}
	}
	return objectID, opcode, length, nil
}
