package xkb

// FakeKeyboardState is a minimal in-memory KeyboardState used by
// internal/seat's tests in place of a real libxkbcommon binding.
type FakeKeyboardState struct {
	mods    Modifiers
	keysyms map[uint32][]uint32
}

func NewFakeKeyboardState() *FakeKeyboardState {
	return &FakeKeyboardState{keysyms: make(map[uint32][]uint32)}
}

// SetKeysym registers the keysym a keycode produces, independent of
// modifier state, for test fixtures.
func (f *FakeKeyboardState) SetKeysym(keycode uint32, sym uint32) {
	f.keysyms[keycode] = []uint32{sym}
}

func (f *FakeKeyboardState) Modifiers() Modifiers {
	return f.mods
}

func (f *FakeKeyboardState) UnmodifiedKeysyms(keycode uint32) []uint32 {
	return f.keysyms[keycode]
}

// modBit maps a subset of Linux input-event keycodes to the modifier bit
// they latch, enough for shortcut-ordering tests without a real keymap.
var modBit = map[uint32]ModMask{
	125: ModSuper, // KEY_LEFTMETA
	29:  ModControl,
	56:  ModAlt,
	42:  ModShift,
}

func (f *FakeKeyboardState) UpdateKey(keycode uint32, pressed bool) (Modifiers, bool) {
	before := f.mods
	if bit, ok := modBit[keycode]; ok {
		if pressed {
			f.mods.Depressed |= bit
		} else {
			f.mods.Depressed &^= bit
		}
	}
	return f.mods, f.mods != before
}
