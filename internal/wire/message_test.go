package wire

import "testing"

func TestEncodeDecodeHeaderRoundTrip(t *testing.T) {
	aw := NewArgWriter().Int32(-7).Uint32(42).Fixed(FixedFromFloat64(12.5))
	encoded, err := Encode(Message{ObjectID: 3, Opcode: 1, Args: aw.Bytes()})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	objectID, opcode, length, err := DecodeHeader(encoded)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if objectID != 3 || opcode != 1 {
		t.Fatalf("got objectID=%d opcode=%d", objectID, opcode)
	}
	if int(length) != len(encoded) {
		t.Fatalf("length header %d does not match encoded size %d", length, len(encoded))
	}

	ar := NewArgReader(Message{Args: encoded[headerLen:]})
	if v := ar.Int32(); v != -7 {
		t.Errorf("Int32 round trip: got %d", v)
	}
	if v := ar.Uint32(); v != 42 {
		t.Errorf("Uint32 round trip: got %d", v)
	}
	if v := ar.Fixed(); v.ToFloat64() != 12.5 {
		t.Errorf("Fixed round trip: got %v", v.ToFloat64())
	}
	if err := ar.Err(); err != nil {
		t.Errorf("unexpected decode error: %v", err)
	}
}

func TestStringAndArrayRoundTrip(t *testing.T) {
	aw := NewArgWriter().String("wl_surface").Array([]byte{1, 2, 3, 4, 5})
	ar := NewArgReader(Message{Args: aw.Bytes()})

	if s := ar.String(); s != "wl_surface" {
		t.Errorf("String round trip: got %q", s)
	}
	if arr := ar.Array(); string(arr) != "\x01\x02\x03\x04\x05" {
		t.Errorf("Array round trip: got %v", arr)
	}
	if err := ar.Err(); err != nil {
		t.Errorf("unexpected decode error: %v", err)
	}
}

func TestNewIDRoundTrip(t *testing.T) {
	aw := NewArgWriter().NewID(0xdeadbeef)
	ar := NewArgReader(Message{Args: aw.Bytes()})
	if got := ar.NewID(); got != 0xdeadbeef {
		t.Errorf("NewID round trip: got %#x", got)
	}
}

func TestMessageLengthMustBeMultipleOf4(t *testing.T) {
	_, err := Encode(Message{ObjectID: 1, Opcode: 0, Args: []byte{1, 2, 3}})
	if err == nil {
		t.Fatal("expected an error for a non-4-aligned message length")
	}
}

func TestDecodeHeaderRejectsShortBuffer(t *testing.T) {
	_, _, _, err := DecodeHeader([]byte{1, 2, 3})
	if err == nil {
		t.Fatal("expected an error decoding a header shorter than 8 bytes")
	}
}

func TestArgReaderFailsPastBounds(t *testing.T) {
	ar := NewArgReader(Message{Args: []byte{1, 2}})
	ar.Uint32()
	if err := ar.Err(); err == nil {
		t.Fatal("expected an error reading past the argument buffer")
	}
}

func TestFDQueueExhaustedIsProtocolError(t *testing.T) {
	ar := NewArgReader(Message{Args: nil, FDs: nil})
	fd := ar.FD()
	if fd != -1 {
		t.Fatalf("expected -1 for an empty fd queue, got %d", fd)
	}
	if err := ar.Err(); err == nil {
		t.Fatal("expected a protocol error when the fd queue underflows")
	}
}
