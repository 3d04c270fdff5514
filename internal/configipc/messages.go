package configipc

import "google.golang.org/protobuf/encoding/protowire"

// Message type tags, matching the Configuration ABI's two directions:
// ServerToConfig frames notify the collaborator of compositor state
// changes, ConfigToServer frames are the collaborator's requests back
// into the compositor (shortcut table edits, log-level changes, ...).
const (
	ServerNewSeat uint32 = iota
	ServerSeatRemoved
	ServerGraphicsInitialized
	ServerInvokeShortcut
	ServerIdle
)

const (
	ConfigBindShortcut uint32 = 1000 + iota
	ConfigUnbindShortcut
	ConfigSetLogLevel
	ConfigQuit
	ConfigTakeScreenshot
)

// ShortcutBinding is the payload of a ConfigBindShortcut/
// ConfigUnbindShortcut frame: a (modifier mask, keysym) pair plus the
// opaque action value the seat's shortcut table stores against it.
type ShortcutBinding struct {
	Mods   uint32
	Keysym uint32
	Action uint32
}

func EncodeShortcutBinding(b ShortcutBinding) []byte {
	var buf []byte
	buf = protowire.AppendTag(buf, 1, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(b.Mods))
	buf = protowire.AppendTag(buf, 2, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(b.Keysym))
	buf = protowire.AppendTag(buf, 3, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(b.Action))
	return buf
}

func DecodeShortcutBinding(buf []byte) (ShortcutBinding, error) {
	var b ShortcutBinding
	fields := []*uint32{&b.Mods, &b.Keysym, &b.Action}
	for _, dst := range fields {
		_, _, tn := protowire.ConsumeTag(buf)
		if tn < 0 {
			return b, &ErrMalformedFrame{Reason: "shortcut binding: truncated tag"}
		}
		buf = buf[tn:]
		v, n := protowire.ConsumeVarint(buf)
		if n < 0 {
			return b, &ErrMalformedFrame{Reason: "shortcut binding: truncated varint"}
		}
		buf = buf[n:]
		*dst = uint32(v)
	}
	return b, nil
}

// InvokeShortcutPayload is ServerInvokeShortcut's payload.
type InvokeShortcutPayload struct {
	SeatID uint32
	Mods   uint32
	Keysym uint32
	Action uint32
}

func EncodeInvokeShortcut(p InvokeShortcutPayload) []byte {
	var buf []byte
	vals := []uint32{p.SeatID, p.Mods, p.Keysym, p.Action}
	for i, v := range vals {
		buf = protowire.AppendTag(buf, protowire.Number(i+1), protowire.VarintType)
		buf = protowire.AppendVarint(buf, uint64(v))
	}
	return buf
}

func DecodeInvokeShortcut(buf []byte) (InvokeShortcutPayload, error) {
	var p InvokeShortcutPayload
	fields := []*uint32{&p.SeatID, &p.Mods, &p.Keysym, &p.Action}
	for _, dst := range fields {
		_, _, tn := protowire.ConsumeTag(buf)
		if tn < 0 {
			return p, &ErrMalformedFrame{Reason: "invoke shortcut: truncated tag"}
		}
		buf = buf[tn:]
		v, n := protowire.ConsumeVarint(buf)
		if n < 0 {
			return p, &ErrMalformedFrame{Reason: "invoke shortcut: truncated varint"}
		}
		buf = buf[n:]
		*dst = uint32(v)
	}
	return p, nil
}
