package scene

// Usecase selects what find_tree_at is looking for: the default input
// target, or the nearest enclosing toplevel/workspace for operations like
// "focus the toplevel under the pointer" that don't care about the exact
// leaf surface.
type Usecase int

const (
	UsecaseDefault Usecase = iota
	UsecaseSelectToplevel
	UsecaseSelectWorkspace
)

// FoundNode is one entry in a find_tree_at traversal: the node and the
// probed point translated into that node's local coordinate frame.
type FoundNode struct {
	Node *Node
	X, Y int32
}

// Tree is the whole scene graph: a Root node whose children are Outputs,
// plus the session-lock flag that makes find_tree_at short-circuit to
// each output's lock surface.
type Tree struct {
	Root    *Node
	Outputs []*Node // Kind == KindOutput
	Locked  bool
}

func NewTree() *Tree {
	return &Tree{Root: NewNode(0, KindRoot)}
}

// AddOutput appends an output node as a child of Root and to the Outputs
// index.
func (t *Tree) AddOutput(n *Node) {
	t.Root.AddChild(n)
	t.Outputs = append(t.Outputs, n)
}

// OutputAt returns the output whose rectangle contains the global point
// (x, y), or nil if none does.
func (t *Tree) OutputAt(x, y int32) *Node {
	for _, out := range t.Outputs {
		if out.Output.Contains(x, y) {
			return out
		}
	}
	return nil
}

// findInSubtree walks n's children in order; the first child (or n
// itself, if it AcceptsInput and has no matching child) whose subtree
// contains the point wins. Coordinates are translated into each node's
// local frame as the walk descends.
func findInSubtree(n *Node, x, y int32) []FoundNode {
	if !n.Visible || !n.contains(x, y) {
		return nil
	}
	self := FoundNode{Node: n, X: x, Y: y}
	for _, child := range n.Children {
		cx, cy := x-child.LocalX, y-child.LocalY
		if path := findInSubtree(child, cx, cy); path != nil {
			return append([]FoundNode{self}, path...)
		}
	}
	if n.AcceptsInput {
		return []FoundNode{self}
	}
	return nil
}

// searchList tries each node in nodes, last-added first (topmost paints
// last), returning the first hit.
func searchList(nodes []*Node, x, y int32) []FoundNode {
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		lx, ly := x-n.LocalX, y-n.LocalY
		if path := findInSubtree(n, lx, ly); path != nil {
			return path
		}
	}
	return nil
}

// truncateForUsecase trims path to end at the first node matching the
// requested usecase, when one exists in the path; UsecaseDefault returns
// path unchanged.
func truncateForUsecase(path []FoundNode, usecase Usecase) []FoundNode {
	if usecase == UsecaseDefault {
		return path
	}
	want := KindToplevel
	if usecase == UsecaseSelectWorkspace {
		want = KindWorkspace
	}
	for i, fn := range path {
		if fn.Node.Kind == want {
			return path[:i+1]
		}
	}
	return nil
}

// FindTreeAt implements the fixed five-step priority search against a
// single output, given a pointer position already expressed in that
// output's local coordinate frame.
func FindTreeAt(tree *Tree, output *Node, x, y int32, usecase Usecase) []FoundNode {
	od := output.Output

	// 1. Lock surface short-circuits everything else.
	if tree.Locked && od.LockSurface != nil {
		lx, ly := x-od.LockSurface.LocalX, y-od.LockSurface.LocalY
		return truncateForUsecase(findInSubtree(od.LockSurface, lx, ly), usecase)
	}

	// 2. Stacked-above-layers: popups, drag icons.
	if path := searchList(od.StackedAboveLayers, x, y); path != nil {
		return truncateForUsecase(path, usecase)
	}

	// 3. Overlay then Top layer surfaces.
	if path := searchList(od.Layers[LayerOverlay], x, y); path != nil {
		return truncateForUsecase(path, usecase)
	}
	if path := searchList(od.Layers[LayerTop], x, y); path != nil {
		return truncateForUsecase(path, usecase)
	}

	// 4. Stacked nodes: floating toplevels.
	if path := searchList(od.Stacked, x, y); path != nil {
		return truncateForUsecase(path, usecase)
	}

	// 5. Fullscreen node if present, else the active workspace's
	// container subtree within the non-exclusive rect, falling back to
	// Bottom then Background.
	if od.Fullscreen != nil {
		lx, ly := x-od.Fullscreen.LocalX, y-od.Fullscreen.LocalY
		if path := findInSubtree(od.Fullscreen, lx, ly); path != nil {
			return truncateForUsecase(path, usecase)
		}
	}
	if od.ActiveWorkspace != nil && od.NonExclusiveRect.Contains(x, y) {
		ws := od.ActiveWorkspace
		lx, ly := x-ws.LocalX, y-ws.LocalY
		if path := findInSubtree(ws, lx, ly); path != nil {
			return truncateForUsecase(path, usecase)
		}
	}
	if path := searchList(od.Layers[LayerBottom], x, y); path != nil {
		return truncateForUsecase(path, usecase)
	}
	if path := searchList(od.Layers[LayerBackground], x, y); path != nil {
		return truncateForUsecase(path, usecase)
	}
	return nil
}
