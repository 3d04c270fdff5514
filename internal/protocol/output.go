package protocol

import (
	"github.com/bnema/waycore/internal/client"
	"github.com/bnema/waycore/internal/object"
	"github.com/bnema/waycore/internal/scene"
	"github.com/bnema/waycore/internal/wire"
)

// OutputObject is wl_output: one client's binding onto a physical
// connector's scene.Node.
type OutputObject struct {
	id      object.ID
	client  *client.Client
	core    *Core
	node    *scene.Node
	name    string
	version uint32
}

func (o *OutputObject) ID() object.ID              { return o.id }
func (o *OutputObject) Interface() *object.Interface { return outputInterface }
func (o *OutputObject) BoundVersion() uint32        { return o.version }
func (o *OutputObject) OnDestroy()                  {}

func (o *OutputObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	if opcode != 0 { // release, since v3
		return &object.ErrInvalidOpcode{Interface: outputInterface.Name, Opcode: opcode}
	}
	return o.client.RemoveObject(o.id, o.core.displayObj(o.client), deleteIDOpcode)
}

// Announce sends the full geometry/mode/scale/name/description/done
// sequence a client expects right after binding.
func (o *OutputObject) Announce() {
	od := o.node.Output
	_ = o.client.SendEvent(o, 0, wire.NewArgWriter().
		Int32(od.GlobalX).Int32(od.GlobalY).
		Int32(od.Rect.W*10).Int32(od.Rect.H*10). // physical size in mm; 1:10 px placeholder
		Int32(0).                                // subpixel unknown
		String("waycore").String(o.name).
		Int32(0)) // transform normal
	_ = o.client.SendEvent(o, 1, wire.NewArgWriter().Uint32(0x1|0x2 /* current|preferred */).Int32(od.Rect.W).Int32(od.Rect.H).Int32(60000))
	_ = o.client.SendEvent(o, 3, wire.NewArgWriter().Int32(1)) // scale
	_ = o.client.SendEvent(o, 4, wire.NewArgWriter().String(o.name))
	_ = o.client.SendEvent(o, 5, wire.NewArgWriter().String(o.name))
	_ = o.client.SendEvent(o, 2, wire.NewArgWriter())
}
