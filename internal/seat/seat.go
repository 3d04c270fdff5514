// Package seat implements the input router: translation of raw backend
// input events into serialized protocol events delivered through the
// scene graph.
package seat

import (
	"math"

	"github.com/bnema/waycore/internal/scene"
	"github.com/bnema/waycore/internal/xkb"
)

// PointerOwner selects which delivery policy a button/motion event uses.
type PointerOwner int

const (
	PointerOwnerDefault PointerOwner = iota
	PointerOwnerGrab
	PointerOwnerDnd
)

// KeyboardOwner selects keyboard delivery policy; only Default is wired
// at the router level today, Grab exists for an input-method-style
// collaborator to claim exclusive key delivery.
type KeyboardOwner int

const (
	KeyboardOwnerDefault KeyboardOwner = iota
	KeyboardOwnerGrab
)

// ShortcutKey is the compound key of the shortcut table: an effective
// modifier mask plus a keysym.
type ShortcutKey struct {
	Mods    xkb.ModMask
	Keysym  uint32
}

// ShortcutAction is the opaque value a shortcut table entry carries
// through to the configuration collaborator's invoke_shortcut callback.
type ShortcutAction uint32

// ShortcutInvoker is the configuration ABI collaborator's shortcut-facing
// surface.
type ShortcutInvoker interface {
	InvokeShortcut(seat scene.SeatID, mods xkb.ModMask, keysym uint32, action ShortcutAction)
}

// Seat is a logical user: the pointer/keyboard/touch state machine
// operating over one scene Tree.
type Seat struct {
	ID   scene.SeatID
	Tree *scene.Tree

	Keyboard xkb.KeyboardState
	Config   ShortcutInvoker

	CurrentOutput *scene.Node
	PosX, PosY    float64 // sub-pixel position local to CurrentOutput

	PointerFocusStack []scene.FoundNode
	KeyboardFocus     *scene.Node
	FocusHistory      []*scene.Node // most-recently-focused toplevels, index 0 = most recent

	PointerOwner PointerOwner
	KeyboardOwner KeyboardOwner
	grabNode      *scene.Node
	dndTarget     *scene.Node

	pressedKeys  map[uint32]bool
	consumedKeys map[uint32]bool

	Shortcuts map[ShortcutKey]ShortcutAction

	Pending PendingScroll
}

func New(id scene.SeatID, tree *scene.Tree, kb xkb.KeyboardState, config ShortcutInvoker) *Seat {
	return &Seat{
		ID:           id,
		Tree:         tree,
		Keyboard:     kb,
		Config:       config,
		pressedKeys:  make(map[uint32]bool),
		consumedKeys: make(map[uint32]bool),
		Shortcuts:    make(map[ShortcutKey]ShortcutAction),
	}
}

// AddShortcut registers a shortcut atomically with respect to dispatch —
// the single-threaded event loop guarantees no HandleKey call can observe
// a table half-updated.
func (s *Seat) AddShortcut(mods xkb.ModMask, keysym uint32, action ShortcutAction) {
	s.Shortcuts[ShortcutKey{Mods: mods, Keysym: keysym}] = action
}

// RemoveShortcut restores the table to what it was before the matching
// AddShortcut.
func (s *Seat) RemoveShortcut(mods xkb.ModMask, keysym uint32) {
	delete(s.Shortcuts, ShortcutKey{Mods: mods, Keysym: keysym})
}

// AddShortcutRaw and RemoveShortcutRaw adapt the shortcut table to the
// Configuration ABI collaborator's raw uint32 wire representation
// (internal/configipc.ShortcutTable), keeping that package free of an
// internal/xkb import.
func (s *Seat) AddShortcutRaw(mods, keysym, action uint32) {
	s.AddShortcut(xkb.ModMask(mods), keysym, ShortcutAction(action))
}

func (s *Seat) RemoveShortcutRaw(mods, keysym uint32) {
	s.RemoveShortcut(xkb.ModMask(mods), keysym)
}

func (s *Seat) currentPointerTarget() *scene.Node {
	if len(s.PointerFocusStack) == 0 {
		return nil
	}
	return s.PointerFocusStack[len(s.PointerFocusStack)-1].Node
}

// HandleMotion adds (dx, dy) to the current sub-pixel position. If the
// rounded point leaves the current output, every output is searched for
// one that now contains it; otherwise the position is clamped to the
// current output's far edges (minus one), preserving the fractional part.
func (s *Seat) HandleMotion(dx, dy float64) {
	if s.CurrentOutput == nil {
		return
	}
	od := s.CurrentOutput.Output
	newLocalX := s.PosX + dx
	newLocalY := s.PosY + dy
	globalX := od.GlobalX + int32(math.Round(newLocalX))
	globalY := od.GlobalY + int32(math.Round(newLocalY))

	switch {
	case od.Contains(globalX, globalY):
		s.PosX, s.PosY = newLocalX, newLocalY
	case s.switchOutputIfContains(globalX, globalY):
		// position already updated by switchOutputIfContains
	default:
		s.PosX = clampFarEdge(newLocalX, od.Rect.W)
		s.PosY = clampFarEdge(newLocalY, od.Rect.H)
	}
	s.updatePointerFocus()
}

func (s *Seat) switchOutputIfContains(globalX, globalY int32) bool {
	other := s.Tree.OutputAt(globalX, globalY)
	if other == nil || other == s.CurrentOutput {
		return false
	}
	s.CurrentOutput = other
	s.PosX = float64(globalX - other.Output.GlobalX)
	s.PosY = float64(globalY - other.Output.GlobalY)
	return true
}

// clampFarEdge clamps v's integer part to dim-1 whenever v reaches or
// exceeds dim, preserving the fractional component of the overshoot —
// never dim itself, per the boundary invariant.
func clampFarEdge(v float64, dim int32) float64 {
	if v < 0 {
		return 0
	}
	max := float64(dim)
	if v < max {
		return v
	}
	frac := v - math.Floor(v)
	if frac >= 1 {
		frac = 0
	}
	return float64(dim-1) + frac
}

// HandleConnectorPosition adopts outputNode as the current output and
// sets the absolute local position directly — used for input devices
// (graphics tablets, touchscreens) tied to a specific physical output.
func (s *Seat) HandleConnectorPosition(outputNode *scene.Node, localX, localY float64) {
	s.CurrentOutput = outputNode
	s.PosX, s.PosY = localX, localY
	s.updatePointerFocus()
}

func (s *Seat) updatePointerFocus() {
	if s.CurrentOutput == nil {
		return
	}
	path := scene.FindTreeAt(s.Tree, s.CurrentOutput, int32(s.PosX), int32(s.PosY), scene.UsecaseDefault)

	common := 0
	for common < len(path) && common < len(s.PointerFocusStack) && path[common].Node == s.PointerFocusStack[common].Node {
		common++
	}
	for i := len(s.PointerFocusStack) - 1; i >= common; i-- {
		n := s.PointerFocusStack[i].Node
		n.SeatState.RemovePointer(s.ID)
		if n.OnPointerLeave != nil {
			n.OnPointerLeave(s.ID)
		}
	}
	for i := common; i < len(path); i++ {
		n := path[i].Node
		n.SeatState.AddPointer(s.ID)
		if n.OnPointerEnter != nil {
			n.OnPointerEnter(s.ID, path[i].X, path[i].Y)
		}
	}
	s.PointerFocusStack = path

	if target := s.currentPointerTarget(); target != nil && target.OnPointerMotion != nil {
		deepest := path[len(path)-1]
		target.OnPointerMotion(s.ID, deepest.X, deepest.Y)
	}
}

// HandleButton delegates to the pointer-owner state machine: default
// routing dispatches to the node under the pointer and claims keyboard
// focus on press of an input-accepting surface; grab delivers
// exclusively to the grabbed node until release.
func (s *Seat) HandleButton(code uint32, pressed bool) {
	switch s.PointerOwner {
	case PointerOwnerGrab:
		if s.grabNode != nil && s.grabNode.OnPointerButton != nil {
			s.grabNode.OnPointerButton(s.ID, code, pressed)
		}
		if !pressed {
			if s.grabNode != nil {
				s.grabNode.SeatState.RemoveGrab(s.ID)
			}
			s.PointerOwner = PointerOwnerDefault
			s.grabNode = nil
		}
	case PointerOwnerDnd:
		if s.dndTarget != nil && s.dndTarget.OnPointerButton != nil {
			s.dndTarget.OnPointerButton(s.ID, code, pressed)
		}
	default:
		target := s.currentPointerTarget()
		if target == nil {
			return
		}
		if target.OnPointerButton != nil {
			target.OnPointerButton(s.ID, code, pressed)
		}
		if pressed {
			if target.AcceptsInput {
				s.SetKeyboardFocus(target)
			}
			target.SeatState.AddGrab(s.ID)
			s.grabNode = target
			s.PointerOwner = PointerOwnerGrab
		}
	}
}

// RevertGrabToDefault implements scene.SeatCoordinator.
func (s *Seat) RevertGrabToDefault(seat scene.SeatID) {
	if seat != s.ID {
		return
	}
	s.PointerOwner = PointerOwnerDefault
	s.grabNode = nil
}

// FireDndTargetRemoved implements scene.SeatCoordinator.
func (s *Seat) FireDndTargetRemoved(seat scene.SeatID) {
	if seat != s.ID {
		return
	}
	if s.PointerOwner == PointerOwnerDnd {
		s.PointerOwner = PointerOwnerDefault
	}
	s.dndTarget = nil
}

// PopPointerFocusAbove implements scene.SeatCoordinator: pops the
// pointer-focus stack down to, but not including, node, firing leave on
// each popped entry.
func (s *Seat) PopPointerFocusAbove(seat scene.SeatID, node *scene.Node) {
	if seat != s.ID {
		return
	}
	idx := -1
	for i, fn := range s.PointerFocusStack {
		if fn.Node == node {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	for i := len(s.PointerFocusStack) - 1; i > idx; i-- {
		n := s.PointerFocusStack[i].Node
		n.SeatState.RemovePointer(s.ID)
		if n.OnPointerLeave != nil {
			n.OnPointerLeave(s.ID)
		}
	}
	s.PointerFocusStack = s.PointerFocusStack[:idx+1]
}

// ReleaseKeyboardFocus implements scene.SeatCoordinator: releases
// keyboard focus from node and, if a more recent toplevel exists in
// FocusHistory, refocuses it through the same leave/enter/modifiers
// sequence SetKeyboardFocus uses.
func (s *Seat) ReleaseKeyboardFocus(seat scene.SeatID, node *scene.Node) {
	if seat != s.ID || s.KeyboardFocus != node {
		return
	}
	if node.OnKeyboardLeave != nil {
		node.OnKeyboardLeave(s.ID)
	}
	s.KeyboardFocus = nil
	s.removeFromFocusHistory(node)

	if len(s.FocusHistory) == 0 {
		return
	}
	next := s.FocusHistory[0]
	s.KeyboardFocus = next
	next.SeatState.AddKeyboard(s.ID)
	if next.OnKeyboardEnter != nil {
		next.OnKeyboardEnter(s.ID, s.pressedKeySlice())
	}
	mods := s.Keyboard.Modifiers()
	if next.OnModifiers != nil {
		next.OnModifiers(s.ID, uint32(mods.Depressed), uint32(mods.Latched), uint32(mods.Locked), mods.Group)
	}
}

// SetKeyboardFocus runs the three-step focus protocol: leave on the old
// object, enter (with pressed keys) on the new, then modifiers.
func (s *Seat) SetKeyboardFocus(newNode *scene.Node) {
	if s.KeyboardFocus == newNode {
		return
	}
	if old := s.KeyboardFocus; old != nil {
		old.SeatState.RemoveKeyboard(s.ID)
		if old.OnKeyboardLeave != nil {
			old.OnKeyboardLeave(s.ID)
		}
	}
	s.KeyboardFocus = newNode
	if newNode == nil {
		return
	}
	newNode.SeatState.AddKeyboard(s.ID)
	if newNode.OnKeyboardEnter != nil {
		newNode.OnKeyboardEnter(s.ID, s.pressedKeySlice())
	}
	mods := s.Keyboard.Modifiers()
	if newNode.OnModifiers != nil {
		newNode.OnModifiers(s.ID, uint32(mods.Depressed), uint32(mods.Latched), uint32(mods.Locked), mods.Group)
	}
	if newNode.Kind == scene.KindToplevel {
		s.pushFocusHistory(newNode)
	}
}

func (s *Seat) pressedKeySlice() []uint32 {
	out := make([]uint32, 0, len(s.pressedKeys))
	for k := range s.pressedKeys {
		out = append(out, k)
	}
	return out
}

func (s *Seat) pushFocusHistory(n *scene.Node) {
	s.removeFromFocusHistory(n)
	s.FocusHistory = append([]*scene.Node{n}, s.FocusHistory...)
}

func (s *Seat) removeFromFocusHistory(n *scene.Node) {
	for i, h := range s.FocusHistory {
		if h == n {
			s.FocusHistory = append(s.FocusHistory[:i], s.FocusHistory[i+1:]...)
			return
		}
	}
}

// HandleKey maintains the pressed-keys set and implements the ordering
// invariant: the shortcut test runs under the pre-update modifier set,
// before xkb state advances; key is delivered only when no shortcut
// consumed it; modifiers is delivered after key, only when changed.
func (s *Seat) HandleKey(keycode uint32, pressed bool) {
	if pressed {
		if s.pressedKeys[keycode] {
			return // repeat that doesn't change membership
		}
		s.pressedKeys[keycode] = true
	} else {
		if !s.pressedKeys[keycode] {
			return
		}
		delete(s.pressedKeys, keycode)
	}

	consumed := false
	if pressed {
		effMods := s.Keyboard.Modifiers().Effective()
		for _, sym := range s.Keyboard.UnmodifiedKeysyms(keycode) {
			if action, ok := s.Shortcuts[ShortcutKey{Mods: effMods, Keysym: sym}]; ok {
				if s.Config != nil {
					s.Config.InvokeShortcut(s.ID, effMods, sym, action)
				}
				consumed = true
				s.consumedKeys[keycode] = true
				break
			}
		}
	} else if s.consumedKeys[keycode] {
		consumed = true
		delete(s.consumedKeys, keycode)
	}

	if !consumed && s.KeyboardFocus != nil && s.KeyboardFocus.OnKey != nil {
		s.KeyboardFocus.OnKey(s.ID, keycode, pressed)
	}

	mods, changed := s.Keyboard.UpdateKey(keycode, pressed)
	if changed && s.KeyboardFocus != nil && s.KeyboardFocus.OnModifiers != nil {
		s.KeyboardFocus.OnModifiers(s.ID, uint32(mods.Depressed), uint32(mods.Latched), uint32(mods.Locked), mods.Group)
	}
}
