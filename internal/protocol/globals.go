package protocol

import (
	"fmt"

	"github.com/bnema/waycore/internal/client"
	"github.com/bnema/waycore/internal/object"
	"github.com/bnema/waycore/internal/scene"
	"github.com/bnema/waycore/internal/seat"
)

// asClient recovers the *client.Client a Global.Bind closure receives as
// its opaque requester — always an *client.Client in practice, since
// the wl_registry.bind handler in this package is the only caller of
// Registry.Bind and it always passes the dispatching client.
func asClient(requester any) *client.Client {
	cl, _ := requester.(*client.Client)
	return cl
}

// RegisterCoreGlobals advertises wl_compositor, xdg_wm_base and the
// secure jay_compositor — the globals that exist regardless of seat or
// output topology. Call
// once at startup, before Listen.
func (c *Core) RegisterCoreGlobals() error {
	if _, err := c.Disp.Globals.Add("wl_compositor", 6, true, false, c.bindCompositor); err != nil {
		return err
	}
	if _, err := c.Disp.Globals.Add("xdg_wm_base", 1, true, false, c.bindWmBase); err != nil {
		return err
	}
	if _, err := c.Disp.Globals.Add("jay_compositor", 1, true, true, c.bindJayCompositor); err != nil {
		return err
	}
	return nil
}

// RegisterSeat advertises s as a new wl_seat global, named for the
// Configuration ABI's ServerNewSeat event.
func (c *Core) RegisterSeat(s *seat.Seat, name string) error {
	_, err := c.Disp.Globals.Add("wl_seat", 5, false, false, func(requester any, newID, version uint32) error {
		cl := asClient(requester)
		obj := &SeatObject{id: object.ID(newID), client: cl, core: c, seat: s, version: version}
		if err := cl.Registry.AddClientObj(obj.id, obj); err != nil {
			return err
		}
		obj.Announce(name)
		return nil
	})
	return err
}

// RegisterOutput advertises node (Kind == KindOutput) as a new wl_output
// global.
func (c *Core) RegisterOutput(node *scene.Node, name string) error {
	_, err := c.Disp.Globals.Add("wl_output", 4, false, false, func(requester any, newID, version uint32) error {
		cl := asClient(requester)
		obj := &OutputObject{id: object.ID(newID), client: cl, core: c, node: node, name: name, version: version}
		if err := cl.Registry.AddClientObj(obj.id, obj); err != nil {
			return err
		}
		obj.Announce()
		return nil
	})
	return err
}

func (c *Core) bindCompositor(requester any, newID, version uint32) error {
	cl := asClient(requester)
	if cl == nil {
		return fmt.Errorf("wl_compositor bind: no requesting client")
	}
	obj := &CompositorObject{id: object.ID(newID), client: cl, core: c, version: version}
	return cl.Registry.AddClientObj(obj.id, obj)
}

func (c *Core) bindWmBase(requester any, newID, version uint32) error {
	cl := asClient(requester)
	if cl == nil {
		return fmt.Errorf("xdg_wm_base bind: no requesting client")
	}
	obj := &WmBaseObject{id: object.ID(newID), client: cl, core: c, version: version}
	return cl.Registry.AddClientObj(obj.id, obj)
}

func (c *Core) bindJayCompositor(requester any, newID, version uint32) error {
	cl := asClient(requester)
	if cl == nil {
		return fmt.Errorf("jay_compositor bind: no requesting client")
	}
	obj := &JayCompositorObject{id: object.ID(newID), client: cl, core: c}
	return cl.Registry.AddClientObj(obj.id, obj)
}
