package configipc

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bnema/waycore/internal/scene"
	"github.com/bnema/waycore/internal/seat"
	"github.com/bnema/waycore/internal/xkb"
)

// Bridge pumps length-prefixed Frames to and from the Configuration ABI
// collaborator's transport (a pipe to the loaded library's host process,
// in the real ABI; a net.Conn or any io.ReadWriteCloser in tests).
type Bridge struct {
	rw      io.ReadWriteCloser
	handler ConfigHandler
}

func NewBridge(rw io.ReadWriteCloser, handler ConfigHandler) *Bridge {
	return &Bridge{rw: rw, handler: handler}
}

// SendServerEvent frames and writes a ServerToConfig notification.
func (b *Bridge) SendServerEvent(f Frame) error {
	return b.writeFrame(f)
}

// InvokeShortcut implements internal/seat.ShortcutInvoker: a triggered
// shortcut is forwarded to the attached collaborator as a
// ServerInvokeShortcut frame rather than acted on locally, since the
// shortcut table's actions are opaque values the collaborator assigned.
func (b *Bridge) InvokeShortcut(seatID scene.SeatID, mods xkb.ModMask, keysym uint32, action seat.ShortcutAction) {
	payload := EncodeInvokeShortcut(InvokeShortcutPayload{
		SeatID: uint32(seatID),
		Mods:   uint32(mods),
		Keysym: keysym,
		Action: uint32(action),
	})
	_ = b.writeFrame(Frame{Type: ServerInvokeShortcut, Payload: payload})
}

func (b *Bridge) writeFrame(f Frame) error {
	body := Encode(f)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(body)))
	if _, err := b.rw.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := b.rw.Write(body)
	return err
}

// ErrFrameTooLarge guards against a corrupt or hostile length prefix.
type ErrFrameTooLarge struct{ Len uint32 }

func (e *ErrFrameTooLarge) Error() string {
	return fmt.Sprintf("configipc: frame length %d exceeds limit", e.Len)
}

const maxFrameLen = 1 << 20

func (b *Bridge) readFrame() (Frame, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(b.rw, lenBuf[:]); err != nil {
		return Frame{}, err
	}
	length := binary.LittleEndian.Uint32(lenBuf[:])
	if length > maxFrameLen {
		return Frame{}, &ErrFrameTooLarge{Len: length}
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(b.rw, body); err != nil {
		return Frame{}, err
	}
	f, _, err := Decode(body)
	return f, err
}

// Run reads ConfigToServer frames until the transport closes or ctx-like
// cancellation is signaled by the caller closing rw, dispatching each to
// handler.
func (b *Bridge) Run() error {
	for {
		f, err := b.readFrame()
		if err != nil {
			return err
		}
		if err := b.dispatch(f); err != nil {
			return err
		}
	}
}

func (b *Bridge) dispatch(f Frame) error {
	switch f.Type {
	case ConfigBindShortcut:
		binding, err := DecodeShortcutBinding(f.Payload)
		if err != nil {
			return err
		}
		b.handler.BindShortcut(binding.Mods, binding.Keysym, binding.Action)
	case ConfigUnbindShortcut:
		binding, err := DecodeShortcutBinding(f.Payload)
		if err != nil {
			return err
		}
		b.handler.UnbindShortcut(binding.Mods, binding.Keysym)
	case ConfigSetLogLevel:
		b.handler.SetLogLevel(string(f.Payload))
	case ConfigQuit:
		b.handler.Quit()
	case ConfigTakeScreenshot:
		return b.handler.TakeScreenshot()
	}
	return nil
}

func (b *Bridge) Close() error {
	return b.rw.Close()
}
