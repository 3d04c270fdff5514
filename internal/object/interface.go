// Package object implements the per-client object registry: the mapping
// from 32-bit wire ids to typed, versioned server-side objects, and the
// id-space rules that govern who may allocate which ids.
package object

import "github.com/bnema/waycore/internal/wire"

// ID is a client-scoped object id. Id 0 is never assigned to a real
// object; it is reserved on the wire to mean "no object".
type ID uint32

// ServerIDStart is the first id in the server-allocated range. Ids below
// it are reserved for client-allocated new-id arguments (wl_registry.bind,
// wl_compositor.create_surface, ...); ids at or above it are allocated by
// the server itself when an event itself carries a new_id (none of the
// standard interfaces this core implements do, but the range is reserved
// the way upstream Wayland reserves it).
const ServerIDStart ID = 0xff000000

// Interface describes one protocol interface's static shape: its name,
// how many requests/events it has, and the since-version each one
// requires. Index 0 in each Since slice is opcode 0.
type Interface struct {
	Name          string
	Version       uint32
	RequestSince  []uint32
	EventSince    []uint32
	// DestroyOpcode, if >= 0, is the opcode of this interface's "destroy"
	// request — the one that triggers remove_obj's symmetric-delete
	// confirmation-event behavior.
	DestroyOpcode int
}

func (i *Interface) NumRequests() int { return len(i.RequestSince) }
func (i *Interface) NumEvents() int   { return len(i.EventSince) }

// RequestSupported reports whether opcode is in range and allowed at the
// object's bound version.
func (i *Interface) RequestSupported(opcode uint16, boundVersion uint32) bool {
	if int(opcode) >= len(i.RequestSince) {
		return false
	}
	return boundVersion >= i.RequestSince[opcode]
}

// EventAllowed reports whether an event of the given opcode may be sent
// to a client bound at boundVersion — never a protocol error, just a
// silent suppression for clients that predate the event.
func (i *Interface) EventAllowed(opcode uint16, boundVersion uint32) bool {
	if int(opcode) >= len(i.EventSince) {
		return false
	}
	return boundVersion >= i.EventSince[opcode]
}

// Object is a protocol-visible entity identified by (owning client, ID).
// Concrete implementations live in internal/protocol; this package only
// needs their shape to route dispatch and lifecycle.
type Object interface {
	ID() ID
	Interface() *Interface
	BoundVersion() uint32

	// Dispatch decodes and executes one request. opcode is assumed
	// already range/version-checked by the Registry; a handler that
	// returns an error causes the calling client to be torn down with
	// that error as the protocol error message.
	Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error

	// OnDestroy is invoked exactly once when the object is removed from
	// its registry (explicit request, client disconnect, or cascade),
	// giving the concrete object a chance to unlink itself from any
	// scene/seat state that holds a non-owning back-reference to it.
	OnDestroy()
}
