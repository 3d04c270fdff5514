package protocol

import (
	"github.com/bnema/waycore/internal/client"
	"github.com/bnema/waycore/internal/display"
	"github.com/bnema/waycore/internal/globalreg"
	"github.com/bnema/waycore/internal/object"
	"github.com/bnema/waycore/internal/scene"
	"github.com/bnema/waycore/internal/wire"
)

// Core holds the compositor-wide collaborators every protocol object
// needs beyond its own client/registry: the Display itself, and the
// hooks the jay_compositor singleton and the control socket both drive
// (screenshot, log file path, log level, quit).
type Core struct {
	Disp *display.Display

	SetLogLevelFn  func(level string) error
	QuitFn         func()
	ScreenshotFn   func() (string, error)
	LogFilePathFn  func() (string, error)

	registries map[*RegistryObject]bool

	pointers  map[client.ID]map[scene.SeatID]*PointerObject
	keyboards map[client.ID]map[scene.SeatID]*KeyboardObject
	surfaces  map[*scene.Node]*SurfaceObject
	toplevels map[*scene.Node]*XdgToplevelObject
}

func NewCore(d *display.Display) *Core {
	c := &Core{
		Disp:       d,
		registries: make(map[*RegistryObject]bool),
		pointers:   make(map[client.ID]map[scene.SeatID]*PointerObject),
		keyboards:  make(map[client.ID]map[scene.SeatID]*KeyboardObject),
		surfaces:   make(map[*scene.Node]*SurfaceObject),
		toplevels:  make(map[*scene.Node]*XdgToplevelObject),
	}
	d.Globals.SetBroadcast(c.broadcastAdd, c.broadcastRemove)
	return c
}

func (c *Core) trackPointer(cid client.ID, seat scene.SeatID, po *PointerObject) {
	if c.pointers[cid] == nil {
		c.pointers[cid] = make(map[scene.SeatID]*PointerObject)
	}
	c.pointers[cid][seat] = po
}

func (c *Core) untrackPointer(cid client.ID, seat scene.SeatID) {
	delete(c.pointers[cid], seat)
}

func (c *Core) pointerFor(cid client.ID, seat scene.SeatID) *PointerObject {
	return c.pointers[cid][seat]
}

func (c *Core) trackKeyboard(cid client.ID, seat scene.SeatID, ko *KeyboardObject) {
	if c.keyboards[cid] == nil {
		c.keyboards[cid] = make(map[scene.SeatID]*KeyboardObject)
	}
	c.keyboards[cid][seat] = ko
}

func (c *Core) untrackKeyboard(cid client.ID, seat scene.SeatID) {
	delete(c.keyboards[cid], seat)
}

func (c *Core) keyboardFor(cid client.ID, seat scene.SeatID) *KeyboardObject {
	return c.keyboards[cid][seat]
}

func (c *Core) trackSurface(n *scene.Node, s *SurfaceObject) {
	c.surfaces[n] = s
}

func (c *Core) untrackSurface(n *scene.Node) {
	delete(c.surfaces, n)
}

func (c *Core) surfaceOf(n *scene.Node) (*SurfaceObject, bool) {
	s, ok := c.surfaces[n]
	return s, ok
}

func (c *Core) trackToplevel(n *scene.Node, t *XdgToplevelObject) {
	c.toplevels[n] = t
}

func (c *Core) untrackToplevel(n *scene.Node) {
	delete(c.toplevels, n)
}

func (c *Core) broadcastAdd(g *globalreg.Global, _ bool) {
	for r := range c.registries {
		if g.Secure && !r.client.Privileged {
			continue
		}
		r.client.SendEvent(r, 0, wire.NewArgWriter().Uint32(uint32(g.Name)).String(g.Interface).Uint32(g.Version))
	}
}

func (c *Core) broadcastRemove(name globalreg.Name) {
	for r := range c.registries {
		r.client.SendEvent(r, 1, wire.NewArgWriter().Uint32(uint32(name)))
	}
}

// displayObj returns cl's bound wl_display object (always id 1), the
// object RemoveObject needs to emit a symmetric-delete confirmation.
func (c *Core) displayObj(cl *client.Client) object.Object {
	return cl.Registry.Lookup(1)
}

// Bootstrap returns a display.Bootstrap installing wl_display as object
// id 1 on every freshly accepted client, the way every Wayland
// connection preallocates it before the client sends a single byte.
func (c *Core) Bootstrap() display.Bootstrap {
	return func(d *display.Display, cl *client.Client) {
		disp := &DisplayObject{id: 1, client: cl, core: c}
		_ = cl.Registry.AddClientObj(disp.id, disp)
	}
}
