package protocol

import (
	"os"

	"golang.org/x/sys/unix"
)

// minimalKeymap is a bare XKB keymap string naming the "us" layout.
// internal/xkb's fake keyboard state resolves keysyms from raw
// evdev keycodes directly rather than compiling a real xkbcommon
// keymap, so the one handed to clients only needs to be well-formed
// enough for a client's own xkbcommon to load without surprising the
// user with a blank layout.
const minimalKeymap = `xkb_keymap {
	xkb_keycodes  { include "evdev+aliases(qwerty)" };
	xkb_types     { include "complete" };
	xkb_compat    { include "complete" };
	xkb_symbols   { include "pc+us+inet(evdev)" };
};
`

// buildKeymapFD writes the keymap into an unsealed memfd and returns its fd
// and size, ready for wl_keyboard.keymap's SCM_RIGHTS transfer.
func buildKeymapFD() (int, uint32, error) {
	fd, err := unix.MemfdCreate("waycore-keymap", 0)
	if err != nil {
		return -1, 0, err
	}
	f := os.NewFile(uintptr(fd), "waycore-keymap")
	if _, err := f.WriteString(minimalKeymap); err != nil {
		f.Close()
		return -1, 0, err
	}
	size := uint32(len(minimalKeymap))
	_, _ = f.Seek(0, 0)
	return int(f.Fd()), size, nil
}
