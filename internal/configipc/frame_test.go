package configipc

import "testing"

func TestFrameEncodeDecodeRoundTrip(t *testing.T) {
	f := Frame{Type: ConfigSetLogLevel, Payload: []byte("debug")}
	buf := Encode(f)

	got, n, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("expected to consume %d bytes, consumed %d", len(buf), n)
	}
	if got.Type != f.Type || string(got.Payload) != string(f.Payload) {
		t.Fatalf("roundtrip mismatch: got %+v", got)
	}
}

func TestShortcutBindingRoundTrip(t *testing.T) {
	b := ShortcutBinding{Mods: 0x41, Keysym: 't', Action: 7}
	buf := EncodeShortcutBinding(b)
	got, err := DecodeShortcutBinding(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != b {
		t.Fatalf("expected %+v, got %+v", b, got)
	}
}

func TestInvokeShortcutRoundTrip(t *testing.T) {
	p := InvokeShortcutPayload{SeatID: 1, Mods: 0x10, Keysym: 'q', Action: 3}
	buf := EncodeInvokeShortcut(p)
	got, err := DecodeInvokeShortcut(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != p {
		t.Fatalf("expected %+v, got %+v", p, got)
	}
}

func TestDecodeRejectsTruncatedFrame(t *testing.T) {
	f := Frame{Type: ConfigQuit, Payload: []byte("x")}
	buf := Encode(f)
	_, _, err := Decode(buf[:len(buf)-1])
	if err == nil {
		t.Fatalf("expected an error decoding a truncated frame")
	}
}
