package protocol

import (
	"github.com/bnema/waycore/internal/client"
	"github.com/bnema/waycore/internal/object"
	"github.com/bnema/waycore/internal/scene"
	"github.com/bnema/waycore/internal/wire"
)

const defaultToplevelW, defaultToplevelH int32 = 800, 600

// WmBaseObject is xdg_wm_base: the factory xdg_surface is bound through.
type WmBaseObject struct {
	id      object.ID
	client  *client.Client
	core    *Core
	version uint32
}

func (w *WmBaseObject) ID() object.ID              { return w.id }
func (w *WmBaseObject) Interface() *object.Interface { return xdgWmBaseInterface }
func (w *WmBaseObject) BoundVersion() uint32        { return w.version }
func (w *WmBaseObject) OnDestroy()                  {}

func (w *WmBaseObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	switch opcode {
	case 0: // destroy
		return w.client.RemoveObject(w.id, w.core.displayObj(w.client), deleteIDOpcode)
	case 1: // create_positioner
		newID := args.NewID()
		if err := args.Err(); err != nil {
			return err
		}
		return w.client.Registry.AddClientObj(object.ID(newID), &PositionerObject{id: object.ID(newID), client: w.client})
	case 2: // get_xdg_surface
		newID := args.NewID()
		surfaceID := args.ObjectID()
		if err := args.Err(); err != nil {
			return err
		}
		obj := w.client.Registry.Lookup(object.ID(surfaceID))
		surf, ok := obj.(*SurfaceObject)
		if !ok || surf == nil {
			return &wire.ErrProtocolParse{Reason: "get_xdg_surface: object is not a wl_surface"}
		}
		xs := &XdgSurfaceObject{id: object.ID(newID), client: w.client, core: w.core, wmBase: w, surface: surf, version: w.version}
		return w.client.Registry.AddClientObj(xs.id, xs)
	case 3: // pong
		args.Uint32()
		return args.Err()
	}
	return &object.ErrInvalidOpcode{Interface: xdgWmBaseInterface.Name, Opcode: opcode}
}

// PositionerObject is xdg_positioner. Popup placement math isn't part of
// this core's scope (no layer-shell popup geometry solver), so every
// set_* request is accepted and ignored; xdg_surface.get_popup still
// receives a valid, destroyable object to reference.
type PositionerObject struct {
	id     object.ID
	client *client.Client
}

func (p *PositionerObject) ID() object.ID              { return p.id }
func (p *PositionerObject) Interface() *object.Interface { return positionerInterface }
func (p *PositionerObject) BoundVersion() uint32        { return 1 }
func (p *PositionerObject) OnDestroy()                  {}
func (p *PositionerObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	if int(opcode) >= positionerInterface.NumRequests() {
		return &object.ErrInvalidOpcode{Interface: positionerInterface.Name, Opcode: opcode}
	}
	return nil
}

// XdgSurfaceObject is xdg_surface: the role-neutral wrapper a wl_surface
// gets before becoming a toplevel or popup.
type XdgSurfaceObject struct {
	id      object.ID
	client  *client.Client
	core    *Core
	wmBase  *WmBaseObject
	surface *SurfaceObject
	version uint32

	toplevel *XdgToplevelObject
	popup    *XdgPopupObject
}

func (x *XdgSurfaceObject) ID() object.ID              { return x.id }
func (x *XdgSurfaceObject) Interface() *object.Interface { return xdgSurfaceInterface }
func (x *XdgSurfaceObject) BoundVersion() uint32        { return x.version }
func (x *XdgSurfaceObject) OnDestroy()                  {}

func (x *XdgSurfaceObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	switch opcode {
	case 0: // destroy
		return x.client.RemoveObject(x.id, x.core.displayObj(x.client), deleteIDOpcode)
	case 1: // get_toplevel
		newID := args.NewID()
		if err := args.Err(); err != nil {
			return err
		}
		tl := newToplevel(x, object.ID(newID))
		if err := x.client.Registry.AddClientObj(tl.id, tl); err != nil {
			return err
		}
		x.toplevel = tl
		return nil
	case 2: // get_popup
		newID := args.NewID()
		parentID := args.ObjectID() // optional; 0 means no parent
		args.ObjectID()             // positioner, placement math out of scope
		if err := args.Err(); err != nil {
			return err
		}
		var parent *XdgSurfaceObject
		if parentID != 0 {
			obj := x.client.Registry.Lookup(object.ID(parentID))
			ps, ok := obj.(*XdgSurfaceObject)
			if !ok || ps == nil {
				return &wire.ErrProtocolParse{Reason: "get_popup: parent is not an xdg_surface"}
			}
			parent = ps
		}
		popup := newPopup(x, object.ID(newID), parent)
		if err := x.client.Registry.AddClientObj(popup.id, popup); err != nil {
			return err
		}
		x.popup = popup
		return nil
	case 3: // set_window_geometry
		x1, y1 := args.Int32(), args.Int32()
		w, h := args.Int32(), args.Int32()
		if err := args.Err(); err != nil {
			return err
		}
		x.surface.node.LocalX, x.surface.node.LocalY = x1, y1
		x.surface.node.Width, x.surface.node.Height = w, h
		return nil
	case 4: // ack_configure
		args.Uint32()
		return args.Err()
	}
	return &object.ErrInvalidOpcode{Interface: xdgSurfaceInterface.Name, Opcode: opcode}
}

// Configure sends xdg_surface.configure with a fresh serial.
func (x *XdgSurfaceObject) Configure() uint32 {
	serial := x.client.NextSerial()
	_ = x.client.SendEvent(x, 0, wire.NewArgWriter().Uint32(serial))
	return serial
}

// XdgToplevelObject is xdg_toplevel: the window role, attached into the
// scene tree as a floating node on the output containing the global
// origin (0, 0); with no such output the node stays unattached.
type XdgToplevelObject struct {
	id       object.ID
	client   *client.Client
	core     *Core
	xdgSurf  *XdgSurfaceObject
	node     *scene.Node
	title    string
	appID    string
}

func newToplevel(xs *XdgSurfaceObject, id object.ID) *XdgToplevelObject {
	node := scene.NewNode(xs.core.Disp.NextNodeID(), scene.KindToplevel)
	node.Width, node.Height = defaultToplevelW, defaultToplevelH
	node.AddChild(xs.surface.node)
	xs.surface.node.AcceptsInput = true
	xs.surface.node.Width, xs.surface.node.Height = defaultToplevelW, defaultToplevelH

	tl := &XdgToplevelObject{id: id, client: xs.client, core: xs.core, xdgSurf: xs, node: node}
	if out := xs.core.Disp.Tree.OutputAt(0, 0); out != nil {
		out.Output.Stacked = append(out.Output.Stacked, node)
		out.AddChild(node)
	}
	xs.core.trackToplevel(node, tl)
	return tl
}

func (t *XdgToplevelObject) ID() object.ID              { return t.id }
func (t *XdgToplevelObject) Interface() *object.Interface { return xdgToplevelInterface }
func (t *XdgToplevelObject) BoundVersion() uint32        { return 1 }

func (t *XdgToplevelObject) OnDestroy() {
	seats := t.core.Disp.SeatCoordinators()
	if out := t.core.Disp.Tree.OutputAt(0, 0); out != nil {
		for i, n := range out.Output.Stacked {
			if n == t.node {
				out.Output.Stacked = append(out.Output.Stacked[:i], out.Output.Stacked[i+1:]...)
				break
			}
		}
	}
	scene.DestroyNode(t.node, seats)
	t.core.untrackToplevel(t.node)
}

func (t *XdgToplevelObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	switch opcode {
	case 0: // destroy
		return t.client.RemoveObject(t.id, t.core.displayObj(t.client), deleteIDOpcode)
	case 1: // set_parent
		args.ObjectID()
		return args.Err()
	case 2: // set_title
		t.title = args.String()
		return args.Err()
	case 3: // set_app_id
		t.appID = args.String()
		return args.Err()
	case 4: // show_window_menu
		args.ObjectID()
		args.Uint32()
		args.Int32()
		args.Int32()
		return args.Err()
	case 5: // move
		args.ObjectID()
		args.Uint32()
		return args.Err()
	case 6: // resize
		args.ObjectID()
		args.Uint32()
		args.Uint32()
		return args.Err()
	case 7, 8: // set_max_size, set_min_size
		args.Int32()
		args.Int32()
		return args.Err()
	case 9, 10: // set_maximized, unset_maximized
		return nil
	case 11, 12: // set_fullscreen, unset_fullscreen
		if opcode == 11 {
			args.ObjectID()
		}
		return args.Err()
	case 13: // set_minimized
		return nil
	}
	return &object.ErrInvalidOpcode{Interface: xdgToplevelInterface.Name, Opcode: opcode}
}

// Configure sends xdg_toplevel.configure followed by xdg_surface.configure,
// the pair every state change (resize, focus) must emit together.
func (t *XdgToplevelObject) Configure(width, height int32, states []uint32) {
	packed := make([]byte, len(states)*4)
	for i, st := range states {
		copy(packed[i*4:], wire.NewArgWriter().Uint32(st).Bytes())
	}
	_ = t.client.SendEvent(t, 0, wire.NewArgWriter().Int32(width).Int32(height).Array(packed))
	t.xdgSurf.Configure()
}

// Close sends xdg_toplevel.close, requesting the client destroy this
// window.
func (t *XdgToplevelObject) Close() {
	_ = t.client.SendEvent(t, 1, wire.NewArgWriter())
}

// XdgPopupObject is xdg_popup: a transient, stacked-above-everything
// surface anchored to a parent xdg_surface. Placement math (the
// positioner's anchor/gravity/constraint solving) isn't part of this
// core's scope: the popup node is placed at the local origin of the
// output containing the global origin (0, 0), and the parent is recorded
// but not used for placement; set_window_geometry only offsets the
// surface node inside the popup node.
type XdgPopupObject struct {
	id      object.ID
	client  *client.Client
	core    *Core
	xdgSurf *XdgSurfaceObject
	parent  *XdgSurfaceObject
	node    *scene.Node
}

func newPopup(xs *XdgSurfaceObject, id object.ID, parent *XdgSurfaceObject) *XdgPopupObject {
	node := scene.NewNode(xs.core.Disp.NextNodeID(), scene.KindPopup)
	node.Width, node.Height = xs.surface.node.Width, xs.surface.node.Height
	node.AddChild(xs.surface.node)
	xs.surface.node.AcceptsInput = true

	p := &XdgPopupObject{id: id, client: xs.client, core: xs.core, xdgSurf: xs, parent: parent, node: node}
	if out := xs.core.Disp.Tree.OutputAt(0, 0); out != nil {
		out.Output.StackedAboveLayers = append(out.Output.StackedAboveLayers, node)
		out.AddChild(node)
	}
	return p
}

func (p *XdgPopupObject) ID() object.ID               { return p.id }
func (p *XdgPopupObject) Interface() *object.Interface { return xdgPopupInterface }
func (p *XdgPopupObject) BoundVersion() uint32         { return 1 }

func (p *XdgPopupObject) OnDestroy() {
	seats := p.core.Disp.SeatCoordinators()
	if out := p.core.Disp.Tree.OutputAt(0, 0); out != nil {
		for i, n := range out.Output.StackedAboveLayers {
			if n == p.node {
				out.Output.StackedAboveLayers = append(out.Output.StackedAboveLayers[:i], out.Output.StackedAboveLayers[i+1:]...)
				break
			}
		}
	}
	scene.DestroyNode(p.node, seats)
}

func (p *XdgPopupObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	switch opcode {
	case 0: // destroy
		return p.client.RemoveObject(p.id, p.core.displayObj(p.client), deleteIDOpcode)
	case 1: // grab
		args.ObjectID() // seat
		args.Uint32()   // serial
		return args.Err()
	case 2: // reposition
		args.ObjectID() // positioner
		args.Uint32()   // token
		return args.Err()
	}
	return &object.ErrInvalidOpcode{Interface: xdgPopupInterface.Name, Opcode: opcode}
}

// Configure sends xdg_popup.configure followed by xdg_surface.configure,
// the pair every popup placement update must emit together.
func (p *XdgPopupObject) Configure(x, y, width, height int32) {
	_ = p.client.SendEvent(p, 0, wire.NewArgWriter().Int32(x).Int32(y).Int32(width).Int32(height))
	p.xdgSurf.Configure()
}

// Dismiss sends xdg_popup.popup_done, the signal that this popup has
// been dismissed (e.g. the parent grab was broken) and should be
// destroyed by the client.
func (p *XdgPopupObject) Dismiss() {
	_ = p.client.SendEvent(p, 1, wire.NewArgWriter())
}
