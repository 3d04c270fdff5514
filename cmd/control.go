package cmd

import (
	"fmt"
	"os"

	"github.com/bnema/waycore/internal/display"
)

// controlClient dials the running compositor's control socket, resolved
// from $WAYLAND_DISPLAY and $XDG_RUNTIME_DIR the same way a Wayland
// client would resolve the wire socket itself.
func controlClient() (*display.ControlClient, error) {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return nil, fmt.Errorf("XDG_RUNTIME_DIR is not set")
	}
	displayName := os.Getenv("WAYLAND_DISPLAY")
	if displayName == "" {
		displayName = "wayland-0"
	}
	path := display.ControlSocketPath(runtimeDir, displayName)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no compositor listening on %s: %w", displayName, err)
	}
	return display.NewControlClient(path), nil
}
