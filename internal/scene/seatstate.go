package scene

// NodeSeatState records which seats currently have pointer, keyboard,
// grab, or dnd anchored on a node — the back-reference half of the
// node<->seat cycle described in the design notes.
type NodeSeatState struct {
	pointer  map[SeatID]bool
	keyboard map[SeatID]bool
	grab     map[SeatID]bool
	dnd      map[SeatID]bool
}

func NewNodeSeatState() *NodeSeatState {
	return &NodeSeatState{
		pointer:  make(map[SeatID]bool),
		keyboard: make(map[SeatID]bool),
		grab:     make(map[SeatID]bool),
		dnd:      make(map[SeatID]bool),
	}
}

func (s *NodeSeatState) AddPointer(seat SeatID)  { s.pointer[seat] = true }
func (s *NodeSeatState) AddKeyboard(seat SeatID) { s.keyboard[seat] = true }
func (s *NodeSeatState) AddGrab(seat SeatID)     { s.grab[seat] = true }
func (s *NodeSeatState) AddDnd(seat SeatID)      { s.dnd[seat] = true }

func (s *NodeSeatState) RemovePointer(seat SeatID)  { delete(s.pointer, seat) }
func (s *NodeSeatState) RemoveKeyboard(seat SeatID) { delete(s.keyboard, seat) }
func (s *NodeSeatState) RemoveGrab(seat SeatID)     { delete(s.grab, seat) }
func (s *NodeSeatState) RemoveDnd(seat SeatID)      { delete(s.dnd, seat) }

func (s *NodeSeatState) HasPointer(seat SeatID) bool  { return s.pointer[seat] }
func (s *NodeSeatState) HasKeyboard(seat SeatID) bool { return s.keyboard[seat] }

func (s *NodeSeatState) IsEmpty() bool {
	return len(s.pointer) == 0 && len(s.keyboard) == 0 && len(s.grab) == 0 && len(s.dnd) == 0
}

// SeatCoordinator is the subset of seat behavior NodeSeatState.Destroy
// needs, implemented by internal/seat's Seat and injected here to
// avoid a scene->seat import cycle.
type SeatCoordinator interface {
	// RevertGrabToDefault reverts the seat's pointer-owner state machine
	// from button-grab back to default routing.
	RevertGrabToDefault(seat SeatID)
	// FireDndTargetRemoved notifies the seat's dnd state machine that its
	// current target node is gone.
	FireDndTargetRemoved(seat SeatID)
	// PopPointerFocusAbove pops the seat's pointer-focus stack down to,
	// but not including, node, firing leave on each popped entry.
	PopPointerFocusAbove(seat SeatID, node *Node)
	// ReleaseKeyboardFocus releases keyboard focus from node, optionally
	// refocusing the most-recently-focused toplevel in the seat's focus
	// history.
	ReleaseKeyboardFocus(seat SeatID, node *Node)
}

// Destroy runs the node-destruction sequence required whenever n is
// removed or becomes invisible: grabs -> dnd -> pointer -> keyboard, in
// that strict order, so that a seat's pointer-owner state machine
// observes a grab release before its pointer-focus stack is popped.
func (s *NodeSeatState) Destroy(n *Node, seats map[SeatID]SeatCoordinator) {
	for seat := range s.grab {
		if c := seats[seat]; c != nil {
			c.RevertGrabToDefault(seat)
		}
	}
	for seat := range s.dnd {
		if c := seats[seat]; c != nil {
			c.FireDndTargetRemoved(seat)
		}
	}
	for seat := range s.pointer {
		if c := seats[seat]; c != nil {
			c.PopPointerFocusAbove(seat, n)
		}
	}
	for seat := range s.keyboard {
		if c := seats[seat]; c != nil {
			c.ReleaseKeyboardFocus(seat, n)
		}
	}
	s.grab = make(map[SeatID]bool)
	s.dnd = make(map[SeatID]bool)
	s.pointer = make(map[SeatID]bool)
	s.keyboard = make(map[SeatID]bool)
}

// DestroyNode walks n's subtree bottom-up, running Destroy on every
// node's seat state, so destroying a subtree root clears every
// descendant's focus/grab/dnd references too.
func DestroyNode(n *Node, seats map[SeatID]SeatCoordinator) {
	// Snapshot first: each recursive call unlinks its node from n.Children
	// via RemoveChild, and ranging directly over n.Children while that
	// slice shifts underneath the range would skip siblings.
	for _, child := range append([]*Node(nil), n.Children...) {
		DestroyNode(child, seats)
	}
	n.SeatState.Destroy(n, seats)
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}
