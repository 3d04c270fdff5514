// Package scene implements the compositor's scene graph: the Root ->
// Output -> Workspace -> Container -> Toplevel -> Surface tree (plus
// stacked layers and popups), per-node seat-focus bookkeeping, and the
// find_tree_at traversal the input router uses to resolve a pointer
// position to a target node.
package scene

// NodeID identifies one scene node for the lifetime of the compositor.
type NodeID uint64

// SeatID identifies a seat without this package importing internal/seat —
// the "node->seat is a non-owning back-reference resolved via a lookup
// table keyed by SeatId" strategy from the design notes.
type SeatID uint32

// Kind tags a Node's variant. Concrete behavior differences are modeled
// as plain field/callback differences on the single Node struct rather
// than a type hierarchy, the "sum type" option the design notes allow.
type Kind int

const (
	KindRoot Kind = iota
	KindOutput
	KindWorkspace
	KindContainer
	KindToplevel
	KindSurface
	KindLayerSurface
	KindPopup
	KindLockSurface
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindOutput:
		return "output"
	case KindWorkspace:
		return "workspace"
	case KindContainer:
		return "container"
	case KindToplevel:
		return "toplevel"
	case KindSurface:
		return "surface"
	case KindLayerSurface:
		return "layer_surface"
	case KindPopup:
		return "popup"
	case KindLockSurface:
		return "lock_surface"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Node is one element of the scene graph.
type Node struct {
	ID     NodeID
	Kind   Kind
	Parent *Node

	// Children are searched in order; the first child (or the node
	// itself) whose subtree accepts the probed point wins. Ordering
	// within a list expresses stacking order where relevant (the caller
	// is responsible for keeping Output's layer/stacked lists in the
	// right paint order).
	Children []*Node

	// LocalX/LocalY is this node's offset within its parent's coordinate
	// frame. Width/Height of 0 means "unbounded" (containers/workspaces
	// that simply fill whatever rect their caller already clipped to).
	LocalX, LocalY int32
	Width, Height  int32

	Visible      bool
	AcceptsInput bool

	SeatState *NodeSeatState

	// Output is non-nil only for Kind == KindOutput; it carries the
	// layer lists, workspaces, and exclusive-zone bookkeeping an
	// output entity needs.
	Output *OutputData

	// Input callbacks let a protocol-layer object (wl_surface, a layer
	// surface, ...) plug in behavior without this package importing
	// internal/protocol. A nil callback is simply not invoked.
	OnPointerEnter  func(seat SeatID, x, y int32)
	OnPointerLeave  func(seat SeatID)
	OnPointerMotion func(seat SeatID, x, y int32)
	OnPointerButton func(seat SeatID, button uint32, pressed bool)
	OnAxis          func(seat SeatID, axis AxisEvent)

	OnKey           func(seat SeatID, keycode uint32, pressed bool)
	OnKeyboardEnter func(seat SeatID, pressedKeys []uint32)
	OnKeyboardLeave func(seat SeatID)
	// OnModifiers reports the full modifier tuple as plain values so this
	// package need not import internal/xkb.
	OnModifiers func(seat SeatID, depressed, latched, locked, group uint32)
}

// AxisEvent is the scroll-frame payload handed to a node's OnAxis
// callback — the scene package's view of seat's PendingScroll, kept
// dependency-free of internal/seat.
type AxisEvent struct {
	Source    int32
	HasSource bool
	Discrete  [2]int32
	Value     [2]int32 // fixed-point 24.8, one per axis
	Stop      [2]bool
	HasDiscrete [2]bool
	HasValue    [2]bool
}

// NewNode allocates a Node with its seat-state table initialized.
func NewNode(id NodeID, kind Kind) *Node {
	return &Node{
		ID:        id,
		Kind:      kind,
		Visible:   true,
		SeatState: NewNodeSeatState(),
	}
}

// AddChild appends child to n's child list and sets its Parent.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// RemoveChild unlinks child from n's child list. It does not run
// DestroyNode; callers that are actually destroying the node must call
// DestroyNode first so seat references are cleared before unlinking.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// AbsolutePosition walks the parent chain summing local offsets.
func (n *Node) AbsolutePosition() (x, y int32) {
	for cur := n; cur != nil; cur = cur.Parent {
		x += cur.LocalX
		y += cur.LocalY
	}
	return x, y
}

// contains reports whether local point (x,y) falls within n's bounds.
// Width/Height == 0 means unbounded.
func (n *Node) contains(x, y int32) bool {
	if n.Width == 0 && n.Height == 0 {
		return true
	}
	return x >= 0 && y >= 0 && x < n.Width && y < n.Height
}
