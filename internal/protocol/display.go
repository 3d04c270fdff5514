package protocol

import (
	"github.com/bnema/waycore/internal/client"
	"github.com/bnema/waycore/internal/globalreg"
	"github.com/bnema/waycore/internal/object"
	"github.com/bnema/waycore/internal/wire"
)

// DisplayObject is wl_display, preallocated as id 1 on every connection
// before the client sends anything.
type DisplayObject struct {
	id     object.ID
	client *client.Client
	core   *Core
}

func (d *DisplayObject) ID() object.ID           { return d.id }
func (d *DisplayObject) Interface() *object.Interface { return displayInterface }
func (d *DisplayObject) BoundVersion() uint32    { return 1 }
func (d *DisplayObject) OnDestroy()              {}

// DeleteID sends wl_display.delete_id; client.RemoveObject takes the
// display object and this opcode to emit the symmetric-delete
// confirmation.
const deleteIDOpcode = 1

func (d *DisplayObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	switch opcode {
	case 0: // sync
		newID := args.NewID()
		if err := args.Err(); err != nil {
			return err
		}
		cb := &CallbackObject{id: object.ID(newID), client: d.client}
		if err := d.client.Registry.AddClientObj(cb.id, cb); err != nil {
			return err
		}
		if err := d.client.SendEvent(cb, 0, wire.NewArgWriter().Uint32(0)); err != nil {
			return err
		}
		return d.client.RemoveObject(cb.id, d, deleteIDOpcode)
	case 1: // get_registry
		newID := args.NewID()
		if err := args.Err(); err != nil {
			return err
		}
		reg := &RegistryObject{id: object.ID(newID), client: d.client, core: d.core}
		if err := d.client.Registry.AddClientObj(reg.id, reg); err != nil {
			return err
		}
		d.core.registries[reg] = true
		d.core.Disp.Globals.Replay(d.client.Privileged, func(g *globalreg.Global) {
			_ = d.client.SendEvent(reg, 0, wire.NewArgWriter().Uint32(uint32(g.Name)).String(g.Interface).Uint32(g.Version))
		})
		return nil
	}
	return &object.ErrInvalidOpcode{Interface: displayInterface.Name, Opcode: opcode}
}

// CallbackObject is wl_callback: it fires done exactly once and is then
// torn down, used by wl_display.sync and wl_surface.frame alike.
type CallbackObject struct {
	id     object.ID
	client *client.Client
}

func (c *CallbackObject) ID() object.ID           { return c.id }
func (c *CallbackObject) Interface() *object.Interface { return callbackInterface }
func (c *CallbackObject) BoundVersion() uint32    { return 1 }
func (c *CallbackObject) OnDestroy()              {}

func (c *CallbackObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	return &object.ErrInvalidOpcode{Interface: callbackInterface.Name, Opcode: opcode}
}

// Fire sends the done event carrying data (a frame callback's presentation
// timestamp, or 0 for a bare sync), then removes itself from the client's
// registry.
func (c *CallbackObject) Fire(displayObj object.Object, data uint32) error {
	if err := c.client.SendEvent(c, 0, wire.NewArgWriter().Uint32(data)); err != nil {
		return err
	}
	return c.client.RemoveObject(c.id, displayObj, deleteIDOpcode)
}

// RegistryObject is wl_registry: the client's live view onto the global
// registry, tracked by Core so a later Add/Remove can broadcast to it.
type RegistryObject struct {
	id     object.ID
	client *client.Client
	core   *Core
}

func (r *RegistryObject) ID() object.ID           { return r.id }
func (r *RegistryObject) Interface() *object.Interface { return registryInterface }
func (r *RegistryObject) BoundVersion() uint32    { return 1 }

func (r *RegistryObject) OnDestroy() {
	delete(r.core.registries, r)
}

func (r *RegistryObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	if opcode != 0 {
		return &object.ErrInvalidOpcode{Interface: registryInterface.Name, Opcode: opcode}
	}
	name := args.Uint32()
	_ = args.String() // interface name; the global itself is the source of truth
	version := args.Uint32()
	newID := args.NewID()
	if err := args.Err(); err != nil {
		return err
	}
	return r.core.Disp.Globals.Bind(globalreg.Name(name), version, newID, r.client.Privileged, r.client)
}
