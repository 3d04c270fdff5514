package protocol

import (
	"github.com/bnema/waycore/internal/client"
	"github.com/bnema/waycore/internal/object"
	"github.com/bnema/waycore/internal/scene"
	"github.com/bnema/waycore/internal/wire"
)

// CompositorObject is wl_compositor: the factory for surfaces and regions.
type CompositorObject struct {
	id      object.ID
	client  *client.Client
	core    *Core
	version uint32
}

func (c *CompositorObject) ID() object.ID              { return c.id }
func (c *CompositorObject) Interface() *object.Interface { return compositorInterface }
func (c *CompositorObject) BoundVersion() uint32        { return c.version }
func (c *CompositorObject) OnDestroy()                  {}

func (c *CompositorObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	switch opcode {
	case 0: // create_surface
		newID := args.NewID()
		if err := args.Err(); err != nil {
			return err
		}
		node := scene.NewNode(c.core.Disp.NextNodeID(), scene.KindSurface)
		surf := &SurfaceObject{id: object.ID(newID), client: c.client, core: c.core, node: node, version: c.version}
		if err := c.client.Registry.AddClientObj(surf.id, surf); err != nil {
			return err
		}
		c.core.trackSurface(node, surf)
		wireSurfaceInput(c.core, c.client, node)
		return nil
	case 1: // create_region
		newID := args.NewID()
		if err := args.Err(); err != nil {
			return err
		}
		region := &RegionObject{id: object.ID(newID), client: c.client}
		return c.client.Registry.AddClientObj(region.id, region)
	}
	return &object.ErrInvalidOpcode{Interface: compositorInterface.Name, Opcode: opcode}
}

// RegionObject is wl_region. Damage/opaque/input regions are advisory
// hints this core does not need for hit-testing (find_tree_at uses a
// node's rectangular bounds, not an arbitrary region), so it only tracks
// enough to be a valid, destroyable object.
type RegionObject struct {
	id     object.ID
	client *client.Client
}

func (r *RegionObject) ID() object.ID              { return r.id }
func (r *RegionObject) Interface() *object.Interface { return regionInterface }
func (r *RegionObject) BoundVersion() uint32        { return 1 }
func (r *RegionObject) OnDestroy()                  {}

func (r *RegionObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	if opcode > 2 {
		return &object.ErrInvalidOpcode{Interface: regionInterface.Name, Opcode: opcode}
	}
	if opcode == 0 { // destroy
		return r.client.RemoveObject(r.id, r.client.Registry.Lookup(1), deleteIDOpcode)
	}
	return nil // add(1), subtract(2) — no-ops on this core's hit-test model
}

// SurfaceObject is wl_surface: the pending/current double-buffered state
// machine, with its backing scene.Node created eagerly (unparented until
// some shell extension — xdg_toplevel, a layer surface — attaches it to
// the tree).
type SurfaceObject struct {
	id     object.ID
	client *client.Client
	core   *Core
	node   *scene.Node

	pendingFrame *CallbackObject
	version      uint32

	role string // "toplevel", "popup", "" (none yet)
}

func (s *SurfaceObject) ID() object.ID              { return s.id }
func (s *SurfaceObject) Interface() *object.Interface { return surfaceInterface }
func (s *SurfaceObject) BoundVersion() uint32        { return s.version }
func (s *SurfaceObject) OnDestroy() {
	seats := s.core.Disp.SeatCoordinators()
	scene.DestroyNode(s.node, seats)
	s.core.untrackSurface(s.node)
}

func (s *SurfaceObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	switch opcode {
	case 0: // destroy
		return s.client.RemoveObject(s.id, s.core.displayObj(s.client), deleteIDOpcode)
	case 1: // attach
		_ = args.ObjectID() // wl_buffer id; buffer contents are backend-owned, not tracked here
		_ = args.Int32()    // x
		_ = args.Int32()    // y
		return args.Err()
	case 2: // damage
		args.Int32()
		args.Int32()
		args.Int32()
		args.Int32()
		return args.Err()
	case 3: // frame
		newID := args.NewID()
		if err := args.Err(); err != nil {
			return err
		}
		cb := &CallbackObject{id: object.ID(newID), client: s.client}
		if err := s.client.Registry.AddClientObj(cb.id, cb); err != nil {
			return err
		}
		s.pendingFrame = cb
		return nil
	case 4, 5: // set_opaque_region, set_input_region
		args.ObjectID()
		return args.Err()
	case 6: // commit
		return nil
	case 7: // set_buffer_transform
		args.Int32()
		return args.Err()
	case 8: // set_buffer_scale
		args.Int32()
		return args.Err()
	case 9: // damage_buffer
		args.Int32()
		args.Int32()
		args.Int32()
		args.Int32()
		return args.Err()
	case 10: // offset
		args.Int32()
		args.Int32()
		return args.Err()
	}
	return &object.ErrInvalidOpcode{Interface: surfaceInterface.Name, Opcode: opcode}
}

// wireSurfaceInput plugs node's pointer/keyboard callbacks into whichever
// PointerObject/KeyboardObject the owning client has bound for the seat
// reported on each callback — a node is only ever focused by a seat after
// that client has already called wl_seat.get_pointer/get_keyboard, since
// focus requires a prior input event to have reached this node at all.
func wireSurfaceInput(core *Core, cl *client.Client, node *scene.Node) {
	node.OnPointerEnter = func(seatID scene.SeatID, x, y int32) {
		if po := core.pointerFor(cl.ID(), seatID); po != nil {
			po.Enter(node, x, y)
		}
	}
	node.OnPointerLeave = func(seatID scene.SeatID) {
		if po := core.pointerFor(cl.ID(), seatID); po != nil {
			po.Leave(node)
		}
	}
	node.OnPointerMotion = func(seatID scene.SeatID, x, y int32) {
		if po := core.pointerFor(cl.ID(), seatID); po != nil {
			po.Motion(x, y)
		}
	}
	node.OnPointerButton = func(seatID scene.SeatID, button uint32, pressed bool) {
		if po := core.pointerFor(cl.ID(), seatID); po != nil {
			po.Button(button, pressed)
		}
	}
	node.OnAxis = func(seatID scene.SeatID, ev scene.AxisEvent) {
		if po := core.pointerFor(cl.ID(), seatID); po != nil {
			po.Axis(ev)
		}
	}
	node.OnKeyboardEnter = func(seatID scene.SeatID, pressedKeys []uint32) {
		if ko := core.keyboardFor(cl.ID(), seatID); ko != nil {
			ko.Enter(node, pressedKeys)
		}
	}
	node.OnKeyboardLeave = func(seatID scene.SeatID) {
		if ko := core.keyboardFor(cl.ID(), seatID); ko != nil {
			ko.Leave(node)
		}
	}
	node.OnKey = func(seatID scene.SeatID, keycode uint32, pressed bool) {
		if ko := core.keyboardFor(cl.ID(), seatID); ko != nil {
			ko.Key(keycode, pressed)
		}
	}
	node.OnModifiers = func(seatID scene.SeatID, depressed, latched, locked, group uint32) {
		if ko := core.keyboardFor(cl.ID(), seatID); ko != nil {
			ko.Modifiers(depressed, latched, locked, group)
		}
	}
}

// FirePresented delivers a queued frame callback's done event, called by
// the backend's PresentedFunc once a commit's content has actually hit
// the screen.
func (s *SurfaceObject) FirePresented(msTimestamp uint32) error {
	if s.pendingFrame == nil {
		return nil
	}
	cb := s.pendingFrame
	s.pendingFrame = nil
	return cb.Fire(s.core.displayObj(s.client), msTimestamp)
}
