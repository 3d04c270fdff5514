package protocol

import (
	"github.com/bnema/waycore/internal/client"
	"github.com/bnema/waycore/internal/object"
	"github.com/bnema/waycore/internal/scene"
	"github.com/bnema/waycore/internal/seat"
	"github.com/bnema/waycore/internal/wire"
)

const (
	capPointer  uint32 = 1
	capKeyboard uint32 = 2
)

// SeatObject is wl_seat: one client's binding onto one logical seat.io
// get_pointer/get_keyboard hand back objects this core tracks in Core so
// a scene node's OnPointer*/OnKey* callbacks can find the right
// destination for a given (client, scene.SeatID) pair.
type SeatObject struct {
	id      object.ID
	client  *client.Client
	core    *Core
	seat    *seat.Seat
	version uint32
}

func (s *SeatObject) ID() object.ID              { return s.id }
func (s *SeatObject) Interface() *object.Interface { return seatInterface }
func (s *SeatObject) BoundVersion() uint32        { return s.version }
func (s *SeatObject) OnDestroy()                  {}

// Announce sends the capabilities and (if the client's version supports
// it) name events right after binding.
func (s *SeatObject) Announce(name string) {
	_ = s.client.SendEvent(s, 0, wire.NewArgWriter().Uint32(capPointer|capKeyboard))
	_ = s.client.SendEvent(s, 1, wire.NewArgWriter().String(name))
}

func (s *SeatObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	switch opcode {
	case 0: // get_pointer
		newID := args.NewID()
		if err := args.Err(); err != nil {
			return err
		}
		po := &PointerObject{id: object.ID(newID), client: s.client, core: s.core, seat: s.seat, version: s.version}
		if err := s.client.Registry.AddClientObj(po.id, po); err != nil {
			return err
		}
		s.core.trackPointer(s.client.ID(), s.seat.ID, po)
		return nil
	case 1: // get_keyboard
		newID := args.NewID()
		if err := args.Err(); err != nil {
			return err
		}
		ko := &KeyboardObject{id: object.ID(newID), client: s.client, core: s.core, seat: s.seat, version: s.version}
		if err := s.client.Registry.AddClientObj(ko.id, ko); err != nil {
			return err
		}
		s.core.trackKeyboard(s.client.ID(), s.seat.ID, ko)
		ko.sendKeymap()
		return nil
	case 2: // get_touch
		newID := args.NewID()
		if err := args.Err(); err != nil {
			return err
		}
		return s.client.Registry.AddClientObj(object.ID(newID), &TouchObject{id: object.ID(newID), client: s.client})
	case 3: // release
		return s.client.RemoveObject(s.id, s.core.displayObj(s.client), deleteIDOpcode)
	}
	return &object.ErrInvalidOpcode{Interface: seatInterface.Name, Opcode: opcode}
}

// TouchObject is wl_touch. Touch input isn't wired into internal/seat's
// router (no touch events arrive over InputEvent), so this is a valid but
// inert object — it only needs to exist to satisfy get_touch.
type TouchObject struct {
	id     object.ID
	client *client.Client
}

func (t *TouchObject) ID() object.ID              { return t.id }
func (t *TouchObject) Interface() *object.Interface { return touchInterface }
func (t *TouchObject) BoundVersion() uint32        { return 1 }
func (t *TouchObject) OnDestroy()                  {}
func (t *TouchObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	if opcode != 0 {
		return &object.ErrInvalidOpcode{Interface: touchInterface.Name, Opcode: opcode}
	}
	return nil
}

// PointerObject is wl_pointer: the event sink internal/seat's node
// callbacks write through.
type PointerObject struct {
	id      object.ID
	client  *client.Client
	core    *Core
	seat    *seat.Seat
	version uint32
}

func (p *PointerObject) ID() object.ID              { return p.id }
func (p *PointerObject) Interface() *object.Interface { return pointerInterface }
func (p *PointerObject) BoundVersion() uint32        { return p.version }

func (p *PointerObject) OnDestroy() {
	p.core.untrackPointer(p.client.ID(), p.seat.ID)
}

func (p *PointerObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	switch opcode {
	case 0: // set_cursor
		args.Uint32() // serial
		args.ObjectID()
		args.Int32()
		args.Int32()
		return args.Err()
	case 1: // release
		return p.client.RemoveObject(p.id, p.core.displayObj(p.client), deleteIDOpcode)
	}
	return &object.ErrInvalidOpcode{Interface: pointerInterface.Name, Opcode: opcode}
}

func (p *PointerObject) surfaceFor(n *scene.Node) object.ID {
	if so, ok := p.core.surfaceOf(n); ok {
		return so.id
	}
	return 0
}

func (p *PointerObject) Enter(n *scene.Node, x, y int32) {
	serial := p.client.NextSerial()
	_ = p.client.SendEvent(p, 0, wire.NewArgWriter().Uint32(serial).ObjectID(uint32(p.surfaceFor(n))).Fixed(wire.Fixed(x<<8)).Fixed(wire.Fixed(y<<8)))
}

func (p *PointerObject) Leave(n *scene.Node) {
	serial := p.client.NextSerial()
	_ = p.client.SendEvent(p, 1, wire.NewArgWriter().Uint32(serial).ObjectID(uint32(p.surfaceFor(n))))
}

// Motion's time field is hardcoded to 0: real event timestamps come from
// the backend input collaborator, which this core doesn't implement.
func (p *PointerObject) Motion(x, y int32) {
	_ = p.client.SendEvent(p, 2, wire.NewArgWriter().Uint32(0).Fixed(wire.Fixed(x<<8)).Fixed(wire.Fixed(y<<8)))
}

// Button's time field is hardcoded to 0, for the same reason as Motion.
func (p *PointerObject) Button(button uint32, pressed bool) {
	serial := p.client.NextSerial()
	state := uint32(0)
	if pressed {
		state = 1
	}
	_ = p.client.SendEvent(p, 3, wire.NewArgWriter().Uint32(serial).Uint32(0).Uint32(button).Uint32(state))
}

func (p *PointerObject) Axis(ev scene.AxisEvent) {
	if ev.HasSource {
		_ = p.client.SendEvent(p, 6, wire.NewArgWriter().Uint32(uint32(ev.Source)))
	}
	for axis := 0; axis < 2; axis++ {
		if ev.HasValue[axis] {
			_ = p.client.SendEvent(p, 4, wire.NewArgWriter().Uint32(0).Uint32(uint32(axis)).Fixed(wire.Fixed(ev.Value[axis])))
		}
		if ev.HasDiscrete[axis] {
			_ = p.client.SendEvent(p, 8, wire.NewArgWriter().Uint32(uint32(axis)).Int32(ev.Discrete[axis]))
		}
		if ev.Stop[axis] {
			_ = p.client.SendEvent(p, 7, wire.NewArgWriter().Uint32(0).Uint32(uint32(axis)))
		}
	}
	_ = p.client.SendEvent(p, 5, wire.NewArgWriter())
}

// KeyboardObject is wl_keyboard.
type KeyboardObject struct {
	id      object.ID
	client  *client.Client
	core    *Core
	seat    *seat.Seat
	version uint32
}

func (k *KeyboardObject) ID() object.ID              { return k.id }
func (k *KeyboardObject) Interface() *object.Interface { return keyboardInterface }
func (k *KeyboardObject) BoundVersion() uint32        { return k.version }

func (k *KeyboardObject) OnDestroy() {
	k.core.untrackKeyboard(k.client.ID(), k.seat.ID)
}

func (k *KeyboardObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	if opcode != 0 { // release, since v3
		return &object.ErrInvalidOpcode{Interface: keyboardInterface.Name, Opcode: opcode}
	}
	return k.client.RemoveObject(k.id, k.core.displayObj(k.client), deleteIDOpcode)
}

func (k *KeyboardObject) sendKeymap() {
	fd, size, err := buildKeymapFD()
	if err != nil {
		k.core.Disp.Log("keyboard: building keymap fd: %v", err)
		return
	}
	_ = k.client.SendEvent(k, 0, wire.NewArgWriter().Uint32(1).FD(fd).Uint32(size))
	_ = k.client.SendEvent(k, 5, wire.NewArgWriter().Uint32(25).Uint32(600)) // repeat_info: rate, delay
}

func (k *KeyboardObject) surfaceFor(n *scene.Node) object.ID {
	if so, ok := k.core.surfaceOf(n); ok {
		return so.id
	}
	return 0
}

func (k *KeyboardObject) Enter(n *scene.Node, pressedKeys []uint32) {
	serial := k.client.NextSerial()
	keys := make([]byte, len(pressedKeys)*4)
	for i, key := range pressedKeys {
		b := wire.NewArgWriter().Uint32(key).Bytes()
		copy(keys[i*4:], b)
	}
	_ = k.client.SendEvent(k, 1, wire.NewArgWriter().Uint32(serial).ObjectID(uint32(k.surfaceFor(n))).Array(keys))
}

func (k *KeyboardObject) Leave(n *scene.Node) {
	serial := k.client.NextSerial()
	_ = k.client.SendEvent(k, 2, wire.NewArgWriter().Uint32(serial).ObjectID(uint32(k.surfaceFor(n))))
}

func (k *KeyboardObject) Key(keycode uint32, pressed bool) {
	serial := k.client.NextSerial()
	state := uint32(0)
	if pressed {
		state = 1
	}
	_ = k.client.SendEvent(k, 3, wire.NewArgWriter().Uint32(serial).Uint32(0).Uint32(keycode).Uint32(state))
}

func (k *KeyboardObject) Modifiers(depressed, latched, locked, group uint32) {
	serial := k.client.NextSerial()
	_ = k.client.SendEvent(k, 4, wire.NewArgWriter().Uint32(serial).Uint32(depressed).Uint32(latched).Uint32(locked).Uint32(group))
}
