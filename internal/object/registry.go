package object

import "fmt"

// ErrInvalidID reports an add_client_obj call whose id violates the
// id-space rules: out of the client range, already in use, or zero.
type ErrInvalidID struct {
	ID     ID
	Reason string
}

func (e *ErrInvalidID) Error() string {
	return fmt.Sprintf("invalid object id %d: %s", e.ID, e.Reason)
}

// Registry is one client's ObjectId -> Object table.
type Registry struct {
	objects map[ID]Object
	nextSrv ID

	// pendingDestroy holds ids whose destruction has been requested but
	// not yet finalized this dispatch turn, so a confirmation event (or a
	// cascading reference) can still observe them; the invariant is "no
	// id is reused while a destruction ack is outstanding".
	pendingDestroy map[ID]bool
}

func NewRegistry() *Registry {
	return &Registry{
		objects:        make(map[ID]Object),
		nextSrv:        ServerIDStart,
		pendingDestroy: make(map[ID]bool),
	}
}

// AddClientObj inserts an object whose id was supplied by the client as a
// new-id argument.
func (r *Registry) AddClientObj(id ID, obj Object) error {
	if id == 0 {
		return &ErrInvalidID{ID: id, Reason: "id zero is reserved"}
	}
	if id >= ServerIDStart {
		return &ErrInvalidID{ID: id, Reason: "id is outside the client-allocated range"}
	}
	if _, exists := r.objects[id]; exists {
		return &ErrInvalidID{ID: id, Reason: "id already in use"}
	}
	if r.pendingDestroy[id] {
		return &ErrInvalidID{ID: id, Reason: "id has an outstanding destruction ack"}
	}
	r.objects[id] = obj
	return nil
}

// AddServerObj allocates the next id from the server range and inserts
// obj under it, returning the assigned id.
func (r *Registry) AddServerObj(obj Object) ID {
	id := r.nextSrv
	r.nextSrv++
	r.objects[id] = obj
	return id
}

// Lookup returns the live object for id, or nil if none (already
// destroyed, or never existed) — dispatching to a nil lookup is always a
// no-op, never a handler invocation.
func (r *Registry) Lookup(id ID) Object {
	return r.objects[id]
}

// RemoveObj removes id from the table, invoking OnDestroy and returning
// the removed object so the caller can decide whether a symmetric-delete
// confirmation event is owed. needsAck marks the id as having an
// outstanding destruction confirmation until AckDestroyed is called.
func (r *Registry) RemoveObj(id ID, needsAck bool) Object {
	obj, ok := r.objects[id]
	if !ok {
		return nil
	}
	delete(r.objects, id)
	obj.OnDestroy()
	if needsAck {
		r.pendingDestroy[id] = true
	}
	return obj
}

// AckDestroyed clears the outstanding-ack marker for id once its
// confirmation event has been flushed, permitting id reuse.
func (r *Registry) AckDestroyed(id ID) {
	delete(r.pendingDestroy, id)
}

// Dispatch looks up id, validates opcode against the object's interface
// and bound version, and invokes its handler. A missing object is a
// silent no-op (never a handler invocation, per the dispatch-on-destroyed
// invariant). An opcode out of range or below its since-version is an
// ErrInvalidOpcode/ErrInvalidVersion protocol error.
func (r *Registry) Dispatch(id ID, opcode uint16, decode func(obj Object) error) error {
	obj := r.Lookup(id)
	if obj == nil {
		return nil
	}
	iface := obj.Interface()
	if int(opcode) >= iface.NumRequests() {
		return &ErrInvalidOpcode{Interface: iface.Name, Opcode: opcode}
	}
	if !iface.RequestSupported(opcode, obj.BoundVersion()) {
		return &ErrInvalidVersion{Interface: iface.Name, Opcode: opcode, Bound: obj.BoundVersion()}
	}
	return decode(obj)
}

// All returns every live object, for cascading destruction on client
// teardown. Order is unspecified.
func (r *Registry) All() []Object {
	out := make([]Object, 0, len(r.objects))
	for _, obj := range r.objects {
		out = append(out, obj)
	}
	return out
}

// ErrInvalidOpcode reports a request opcode outside an interface's
// declared request table.
type ErrInvalidOpcode struct {
	Interface string
	Opcode    uint16
}

func (e *ErrInvalidOpcode) Error() string {
	return fmt.Sprintf("invalid opcode %d for interface %s", e.Opcode, e.Interface)
}

// ErrInvalidVersion reports a request sent below its since-version.
type ErrInvalidVersion struct {
	Interface string
	Opcode    uint16
	Bound     uint32
}

func (e *ErrInvalidVersion) Error() string {
	return fmt.Sprintf("opcode %d on interface %s requires a higher version than bound (%d)", e.Opcode, e.Interface, e.Bound)
}
