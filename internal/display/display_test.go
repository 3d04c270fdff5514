package display

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/waycore/internal/scene"
)

func TestListenClaimsFreeDisplayName(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)

	d := New(nil)
	name, err := d.Listen()
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer d.Close()

	if name != "wayland-0" {
		t.Fatalf("expected wayland-0, got %s", name)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Fatalf("expected socket file to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, name+".lock")); err != nil {
		t.Fatalf("expected lock file to exist: %v", err)
	}
}

func TestListenSkipsLockedNameForSecondInstance(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)

	first := New(nil)
	name1, err := first.Listen()
	if err != nil {
		t.Fatalf("first listen: %v", err)
	}
	defer first.Close()

	second := New(nil)
	name2, err := second.Listen()
	if err != nil {
		t.Fatalf("second listen: %v", err)
	}
	defer second.Close()

	if name1 == name2 {
		t.Fatalf("expected distinct display names, got %s twice", name1)
	}
}

func TestUnlockClearsLockFlagAndDestroysLockSurfaces(t *testing.T) {
	d := New(nil)
	output := scene.NewNode(1, scene.KindOutput)
	output.Output = scene.NewOutputData(scene.Rect{W: 100, H: 100})
	lockSurface := scene.NewNode(2, scene.KindLockSurface)
	output.Output.LockSurface = lockSurface
	output.AddChild(lockSurface)
	d.Tree.AddOutput(output)
	d.Tree.Locked = true

	var leftSeats []scene.SeatID
	lockSurface.OnKeyboardLeave = func(seat scene.SeatID) { leftSeats = append(leftSeats, seat) }

	d.Unlock()

	if d.Tree.Locked {
		t.Fatalf("expected Locked to be cleared")
	}
	if output.Output.LockSurface != nil {
		t.Fatalf("expected lock surface cleared from output")
	}
	if len(lockSurface.Children) != 0 || lockSurface.Parent != nil {
		t.Fatalf("expected lock surface unlinked from tree")
	}
}
