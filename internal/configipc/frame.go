// Package configipc implements the Configuration ABI collaborator's wire
// framing. The real collaborator is a dynamically loaded library invoked
// through a `CONFIG_ENTRY` symbol (a spec Non-goal as an implementation);
// this package only carries the message envelope a process on the other
// end of that boundary would exchange with the compositor, re-grounded on
// protobuf's `encoding/protowire` tag/varint encoder in place of the
// original's bincode serialization — the same "versioned, compact" shape,
// a different concrete codec.
package configipc

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Frame is one message exchanged across the Configuration ABI boundary: a
// type tag plus an opaque payload whose shape is determined by that tag
// (see messages.go).
type Frame struct {
	Type    uint32
	Payload []byte
}

const (
	fieldType    = protowire.Number(1)
	fieldPayload = protowire.Number(2)
)

// Encode serializes f using two protowire fields: a varint type tag and a
// length-delimited payload, in that order.
func Encode(f Frame) []byte {
	var buf []byte
	buf = protowire.AppendTag(buf, fieldType, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(f.Type))
	buf = protowire.AppendTag(buf, fieldPayload, protowire.BytesType)
	buf = protowire.AppendBytes(buf, f.Payload)
	return buf
}

// ErrMalformedFrame reports a frame that could not be parsed back out of
// its wire bytes.
type ErrMalformedFrame struct {
	Reason string
}

func (e *ErrMalformedFrame) Error() string {
	return fmt.Sprintf("configipc: malformed frame: %s", e.Reason)
}

// Decode parses a Frame out of buf, returning the number of bytes
// consumed.
func Decode(buf []byte) (Frame, int, error) {
	var f Frame
	var consumed int

	tag, wt, tn := protowire.ConsumeTag(buf)
	if tn < 0 || wt != protowire.VarintType || tag != fieldType {
		return f, 0, &ErrMalformedFrame{Reason: "expected type tag"}
	}
	buf = buf[tn:]
	typeVal, n := protowire.ConsumeVarint(buf)
	if n < 0 {
		return f, 0, &ErrMalformedFrame{Reason: "truncated type varint"}
	}
	buf = buf[n:]
	consumed += tn + n
	f.Type = uint32(typeVal)

	tag, wt, tn = protowire.ConsumeTag(buf)
	if tn < 0 || wt != protowire.BytesType || tag != fieldPayload {
		return f, 0, &ErrMalformedFrame{Reason: "expected payload tag"}
	}
	buf = buf[tn:]
	payload, n := protowire.ConsumeBytes(buf)
	if n < 0 {
		return f, 0, &ErrMalformedFrame{Reason: "truncated payload"}
	}
	consumed += tn + n
	f.Payload = append([]byte(nil), payload...)

	return f, consumed, nil
}
