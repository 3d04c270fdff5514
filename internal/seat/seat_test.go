package seat

import (
	"testing"

	"github.com/bnema/waycore/internal/scene"
	"github.com/bnema/waycore/internal/xkb"
)

const keySuper = 125
const keyT = 20
const symSuper = 0xffeb
const symT = 't'

func newTestSeat() (*Seat, *scene.Tree, *scene.Node) {
	tree := scene.NewTree()
	output := scene.NewNode(1, scene.KindOutput)
	output.Output = scene.NewOutputData(scene.Rect{X: 0, Y: 0, W: 1920, H: 1080})
	tree.AddOutput(output)

	ws := scene.NewNode(2, scene.KindWorkspace)
	ws.AcceptsInput = true
	output.Output.ActiveWorkspace = ws
	output.AddChild(ws)

	s := New(1, tree, xkb.NewFakeKeyboardState(), nil)
	s.CurrentOutput = output
	s.updatePointerFocus()
	return s, tree, ws
}

func TestShortcutConsumesKeyExactlyOnce(t *testing.T) {
	s, _, ws := newTestSeat()
	fake := s.Keyboard.(*xkb.FakeKeyboardState)
	fake.SetKeysym(keyT, symT)

	var delivered int
	ws.OnKey = func(seat scene.SeatID, keycode uint32, pressed bool) {
		if keycode == keyT {
			delivered++
		}
	}
	s.SetKeyboardFocus(ws)
	inv := &countingInvoker{}
	s.Config = inv

	s.AddShortcut(xkb.ModSuper, symT, 1)

	s.HandleKey(keySuper, true) // press Super (modifier, not itself a shortcut keysym)
	s.HandleKey(keyT, true)     // press t under Super -> shortcut match, consumed
	s.HandleKey(keyT, false)    // release t -> also consumed, no key event
	s.HandleKey(keySuper, false)

	if delivered != 0 {
		t.Fatalf("expected shortcut to consume key, but OnKey fired %d times for 't'", delivered)
	}
	if inv.calls != 1 {
		t.Fatalf("expected exactly one shortcut invocation, got %d", inv.calls)
	}
}

type countingInvoker struct{ calls int }

func (c *countingInvoker) InvokeShortcut(seat scene.SeatID, mods xkb.ModMask, keysym uint32, action ShortcutAction) {
	c.calls++
}

func TestKeyDeliveredWhenNoShortcutMatches(t *testing.T) {
	s, _, ws := newTestSeat()
	fake := s.Keyboard.(*xkb.FakeKeyboardState)
	fake.SetKeysym(keyT, symT)

	var pressEvents, releaseEvents int
	ws.OnKey = func(seat scene.SeatID, keycode uint32, pressed bool) {
		if pressed {
			pressEvents++
		} else {
			releaseEvents++
		}
	}
	s.SetKeyboardFocus(ws)

	s.HandleKey(keyT, true)
	s.HandleKey(keyT, false)

	if pressEvents != 1 || releaseEvents != 1 {
		t.Fatalf("expected one press and one release, got press=%d release=%d", pressEvents, releaseEvents)
	}
}

func TestModifiersDeliveredAfterKeyOnlyWhenChanged(t *testing.T) {
	s, _, ws := newTestSeat()
	var order []string
	ws.OnKey = func(seat scene.SeatID, keycode uint32, pressed bool) { order = append(order, "key") }
	ws.OnModifiers = func(seat scene.SeatID, d, l, lo, g uint32) { order = append(order, "modifiers") }
	s.SetKeyboardFocus(ws)
	order = nil

	s.HandleKey(keySuper, true)

	if len(order) != 2 || order[0] != "key" || order[1] != "modifiers" {
		t.Fatalf("expected [key modifiers], got %v", order)
	}
}

func TestAddRemoveShortcutRestoresPriorState(t *testing.T) {
	s, _, _ := newTestSeat()
	if len(s.Shortcuts) != 0 {
		t.Fatalf("expected empty table initially")
	}
	s.AddShortcut(xkb.ModSuper, symT, 1)
	s.RemoveShortcut(xkb.ModSuper, symT)
	if len(s.Shortcuts) != 0 {
		t.Fatalf("expected table restored to empty, got %v", s.Shortcuts)
	}
}

func TestMotionClampsToFarEdgeMinusOne(t *testing.T) {
	s, _, _ := newTestSeat()
	s.PosX, s.PosY = 1900, 1000

	s.HandleMotion(500, 500)

	if int32(s.PosX) != 1919 {
		t.Fatalf("expected x clamped to 1919, got %v", s.PosX)
	}
	if int32(s.PosY) != 1079 {
		t.Fatalf("expected y clamped to 1079, got %v", s.PosY)
	}
}

func TestMotionSwitchesOutputOnExit(t *testing.T) {
	s, tree, _ := newTestSeat()
	second := scene.NewNode(3, scene.KindOutput)
	second.Output = scene.NewOutputData(scene.Rect{X: 0, Y: 0, W: 1920, H: 1080})
	second.Output.GlobalX = 1920
	ws2 := scene.NewNode(4, scene.KindWorkspace)
	ws2.AcceptsInput = true
	second.Output.ActiveWorkspace = ws2
	second.AddChild(ws2)
	tree.AddOutput(second)

	s.PosX, s.PosY = 100, 100
	s.HandleMotion(2000, 0)

	if s.CurrentOutput != second {
		t.Fatalf("expected seat to switch to second output")
	}
	if int32(s.PosX) != 180 {
		t.Fatalf("expected local x 180 on second output, got %v", s.PosX)
	}
}

func TestAxisWithoutSourceEmitsOnlyAxis(t *testing.T) {
	s, _, ws := newTestSeat()
	var got *scene.AxisEvent
	ws.OnAxis = func(seat scene.SeatID, ev scene.AxisEvent) { e := ev; got = &e }

	s.HandleAxis(0, 120)
	s.HandleAxis(1, 60)
	s.HandleFrame()

	if got == nil {
		t.Fatalf("expected an axis event")
	}
	if got.HasSource {
		t.Fatalf("expected no axis source")
	}
	if !got.HasValue[0] || got.Value[0] != 120 {
		t.Fatalf("expected horizontal value 120, got %+v", got.Value)
	}
	if !got.HasValue[1] || got.Value[1] != 60 {
		t.Fatalf("expected vertical value 60, got %+v", got.Value)
	}
}

func TestFocusLeaveBeforeEnterOnToplevelDestroy(t *testing.T) {
	s, _, ws := newTestSeat()
	t1 := scene.NewNode(10, scene.KindToplevel)
	t2 := scene.NewNode(11, scene.KindToplevel)
	ws.AddChild(t1)
	ws.AddChild(t2)

	var order []string
	t1.OnKeyboardLeave = func(scene.SeatID) { order = append(order, "leave-t1") }
	t2.OnKeyboardEnter = func(scene.SeatID, []uint32) { order = append(order, "enter-t2") }
	t2.OnModifiers = func(scene.SeatID, uint32, uint32, uint32, uint32) { order = append(order, "modifiers-t2") }

	s.SetKeyboardFocus(t2)
	s.SetKeyboardFocus(t1)
	order = nil

	seats := map[scene.SeatID]scene.SeatCoordinator{s.ID: s}
	scene.DestroyNode(t1, seats)

	if len(order) != 3 || order[0] != "leave-t1" || order[1] != "enter-t2" || order[2] != "modifiers-t2" {
		t.Fatalf("expected leave-t1, enter-t2, modifiers-t2 in order, got %v", order)
	}
}
