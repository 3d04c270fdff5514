package scene

// LayerBand is one of the four zwlr_layer_shell_v1 stacking bands.
type LayerBand int

const (
	LayerBackground LayerBand = iota
	LayerBottom
	LayerTop
	LayerOverlay
	numLayerBands
)

// PointerType distinguishes a seat's pointer from a tablet tool for the
// purpose of Output.PointerPositions' last-known-position map.
type PointerType struct {
	IsTabletTool bool
	ID           uint32 // a SeatID or a TabletToolID, per IsTabletTool
}

// Point is a local (x, y) position in 24.8 fixed units is handled by the
// caller; this package only stores the rounded integer component needed
// to restore a cursor's last position on re-entry.
type Point struct{ X, Y int32 }

// Rect is an axis-aligned rectangle in an output's local coordinate
// frame.
type Rect struct{ X, Y, W, H int32 }

func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// ExclusiveSize is the margin reserved at each of an output's four edges
// by layer surfaces requesting an exclusive zone.
type ExclusiveSize struct {
	Left, Right, Top, Bottom int32
}

// ConfigTearingMode is a distinct type from any VRR mode enum, kept
// separate to avoid coupling tearing-request semantics to refresh-rate
// semantics even though their variants share names.
type ConfigTearingMode int

const (
	TearingModeNever ConfigTearingMode = iota
	TearingModeAlways
	TearingModeWhenRequested
)

// OutputData is the Kind == KindOutput payload: everything an output
// entity owns beyond its position in the generic tree.
type OutputData struct {
	GlobalX, GlobalY int32
	Rect             Rect

	Layers [numLayerBands][]*Node

	Workspaces      []*Node
	ActiveWorkspace *Node

	Fullscreen  *Node
	LockSurface *Node

	// StackedAboveLayers holds popups and drag icons, searched before
	// even the overlay layer. Stacked holds floating toplevels, searched
	// after the layer bands but before the workspace container subtree.
	StackedAboveLayers []*Node
	Stacked            []*Node

	Exclusive ExclusiveSize
	// NonExclusiveRect is Rect shrunk by Exclusive on each edge,
	// recomputed whenever a layer surface's exclusive zone changes
	// (tree/output.rs's non_exclusive_rect) rather than derived ad hoc on
	// every hit test.
	NonExclusiveRect Rect

	Tearing ConfigTearingMode

	PointerPositions map[PointerType]Point
}

// NewOutputData builds an OutputData whose NonExclusiveRect initially
// equals Rect (no layer surfaces have claimed an exclusive zone yet).
func NewOutputData(rect Rect) *OutputData {
	return &OutputData{
		Rect:             rect,
		NonExclusiveRect: rect,
		PointerPositions: make(map[PointerType]Point),
	}
}

// RecomputeNonExclusiveRect shrinks Rect by the current Exclusive insets.
// Callers invoke this whenever a layer surface's requested exclusive zone
// changes.
func (o *OutputData) RecomputeNonExclusiveRect() {
	o.NonExclusiveRect = Rect{
		X: o.Rect.X + o.Exclusive.Left,
		Y: o.Rect.Y + o.Exclusive.Top,
		W: o.Rect.W - o.Exclusive.Left - o.Exclusive.Right,
		H: o.Rect.H - o.Exclusive.Top - o.Exclusive.Bottom,
	}
}

// Contains reports whether the global point (x, y) falls within the
// output's rectangle.
func (o *OutputData) Contains(x, y int32) bool {
	return x >= o.GlobalX && y >= o.GlobalY &&
		x < o.GlobalX+o.Rect.W && y < o.GlobalY+o.Rect.H
}
