package scene

import "testing"

type recordingCoordinator struct {
	reverted  []SeatID
	dndFired  []SeatID
	popped    []SeatID
	released  []SeatID
}

func (r *recordingCoordinator) RevertGrabToDefault(seat SeatID)          { r.reverted = append(r.reverted, seat) }
func (r *recordingCoordinator) FireDndTargetRemoved(seat SeatID)         { r.dndFired = append(r.dndFired, seat) }
func (r *recordingCoordinator) PopPointerFocusAbove(seat SeatID, n *Node) { r.popped = append(r.popped, seat) }
func (r *recordingCoordinator) ReleaseKeyboardFocus(seat SeatID, n *Node) { r.released = append(r.released, seat) }

func TestDestroyNodeClearsAllSeatReferences(t *testing.T) {
	root := NewNode(1, KindRoot)
	child := NewNode(2, KindSurface)
	root.AddChild(child)

	child.SeatState.AddGrab(1)
	child.SeatState.AddDnd(1)
	child.SeatState.AddPointer(1)
	child.SeatState.AddKeyboard(1)

	coord := &recordingCoordinator{}
	seats := map[SeatID]SeatCoordinator{1: coord}

	DestroyNode(child, seats)

	if child.SeatState.HasPointer(1) || child.SeatState.HasKeyboard(1) {
		t.Fatal("expected all seat references cleared after DestroyNode")
	}
	if len(root.Children) != 0 {
		t.Fatal("expected destroyed node unlinked from its parent")
	}
}

func TestDestroyNodeVisitsEveryChildInAWideSubtree(t *testing.T) {
	root := NewNode(1, KindRoot)
	children := make([]*Node, 5)
	for i := range children {
		c := NewNode(NodeID(i+2), KindSurface)
		c.SeatState.AddKeyboard(1)
		root.AddChild(c)
		children[i] = c
	}

	coord := &recordingCoordinator{}
	seats := map[SeatID]SeatCoordinator{1: coord}

	DestroyNode(root, seats)

	for i, c := range children {
		if c.SeatState.HasKeyboard(1) {
			t.Fatalf("child %d: expected seat references cleared after DestroyNode", i)
		}
	}
	if len(coord.released) != len(children) {
		t.Fatalf("expected ReleaseKeyboardFocus called for all %d children, got %d", len(children), len(coord.released))
	}
}

func TestDestroyNodeOrdering(t *testing.T) {
	n := NewNode(1, KindSurface)
	n.SeatState.AddGrab(1)
	n.SeatState.AddDnd(1)
	n.SeatState.AddPointer(1)
	n.SeatState.AddKeyboard(1)

	var order []string
	coord := &orderRecorder{order: &order}
	seats := map[SeatID]SeatCoordinator{1: coord}

	DestroyNode(n, seats)

	want := []string{"grab", "dnd", "pointer", "keyboard"}
	if len(order) != len(want) {
		t.Fatalf("expected %d callbacks, got %v", len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

type orderRecorder struct{ order *[]string }

func (o *orderRecorder) RevertGrabToDefault(seat SeatID)           { *o.order = append(*o.order, "grab") }
func (o *orderRecorder) FireDndTargetRemoved(seat SeatID)          { *o.order = append(*o.order, "dnd") }
func (o *orderRecorder) PopPointerFocusAbove(seat SeatID, n *Node) { *o.order = append(*o.order, "pointer") }
func (o *orderRecorder) ReleaseKeyboardFocus(seat SeatID, n *Node) { *o.order = append(*o.order, "keyboard") }
