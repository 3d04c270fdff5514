// Package xkb declares the opaque keyboard-state collaborator the input
// router consumes: libxkbcommon keymap handling itself is a spec
// Non-goal, so this package only carries the interface and modifier
// bitmask constants a real binding (or a test fake) must honor.
package xkb

// ModMask is an xkb modifier bitmask (Shift, Control, Mod1/Alt,
// Mod4/Super, ...). Bit assignment matches libxkbcommon's default
// virtual-modifier layout closely enough for shortcut-table keys to be
// stable across a session.
type ModMask uint32

const (
	ModShift ModMask = 1 << iota
	ModCapsLock
	ModControl
	ModAlt // Mod1
	ModNumLock
	ModMod3
	ModSuper // Mod4
	ModMod5
)

// Modifiers is the full modifier tuple delivered on a wl_keyboard
// modifiers event.
type Modifiers struct {
	Depressed ModMask
	Latched   ModMask
	Locked    ModMask
	Group     uint32
}

// Effective ORs the depressed and latched masks, the bitmask the
// shortcut table matches against.
func (m Modifiers) Effective() ModMask {
	return m.Depressed | m.Latched
}

// KeyboardState is one seat's keyboard state machine. A real
// implementation wraps libxkbcommon's xkb_state; this module never links
// against it directly per the Non-goal boundary.
type KeyboardState interface {
	// Modifiers returns the tuple currently in effect, without mutating
	// state.
	Modifiers() Modifiers

	// UnmodifiedKeysyms returns the keysyms keycode would produce under
	// the *current* (pre-update) modifier state — required because the
	// shortcut test must run before xkb state is updated for this key
	// event.
	UnmodifiedKeysyms(keycode uint32) []uint32

	// UpdateKey feeds one key press/release into the state machine and
	// returns the resulting Modifiers plus whether they changed from the
	// pre-update tuple.
	UpdateKey(keycode uint32, pressed bool) (mods Modifiers, changed bool)
}
