// Package client implements the per-connection Client: its object
// registry, serial counter, symmetric-delete policy, and cascading
// teardown on disconnect or fatal protocol error.
package client

import (
	"fmt"

	"github.com/bnema/waycore/internal/object"
	"github.com/bnema/waycore/internal/wire"
)

// ID identifies a connected client for the lifetime of its connection.
// Ids are never reused within one compositor run.
type ID uint64

// Client is a connected peer: its wire connection, its object table, and
// the policy flags that shape how it is addressed.
type Client struct {
	id   ID
	conn *wire.Conn

	Registry *object.Registry

	serial uint32

	// SymmetricDelete mirrors jay_compositor's enable_symmetric_delete
	// request: when set, RemoveObj echoes a deletion-confirmation event
	// back to the client instead of silently dropping the id.
	SymmetricDelete bool

	// Privileged gates which secure-flagged globals this client's
	// registry bindings may see.
	Privileged bool

	destroyed bool
}

func New(id ID, conn *wire.Conn) *Client {
	return &Client{
		id:       id,
		conn:     conn,
		Registry: object.NewRegistry(),
	}
}

func (c *Client) ID() ID { return c.id }

// NextSerial allocates a fresh per-client serial. Every focus-protocol
// step (leave, enter, modifiers) and every jay_compositor callback that
// expects correlation uses a freshly allocated serial, never a reused
// one.
func (c *Client) NextSerial() uint32 {
	c.serial++
	return c.serial
}

// SendEvent encodes and enqueues one event on obj, silently dropping it if
// the client's bound version predates the event's since-version — this is
// never a protocol error, only the object.Registry.Dispatch catching an
// unsupported *request* is.
func (c *Client) SendEvent(obj object.Object, opcode uint16, args *wire.ArgWriter) error {
	iface := obj.Interface()
	if !iface.EventAllowed(opcode, obj.BoundVersion()) {
		return nil
	}
	encoded, err := wire.Encode(wire.Message{ObjectID: uint32(obj.ID()), Opcode: opcode, Args: args.Bytes()})
	if err != nil {
		return fmt.Errorf("encoding event %d on %s: %w", opcode, iface.Name, err)
	}
	return c.conn.Enqueue(encoded, args.FDs())
}

// FlushBoundary flushes all buffered events — called at the end of each
// input-event fan-out and each wire-message dispatch, the two points
// where buffered events must reach the client before blocking again.
func (c *Client) FlushBoundary() error {
	return c.conn.Flush()
}

// Destroy cascades destruction across every object this client still
// owns and closes its connection. It is idempotent: a second call is a
// no-op, matching the "destruction deferred to a quiescent point, but
// only runs once" cancellation rule.
func (c *Client) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	for _, obj := range c.Registry.All() {
		c.Registry.RemoveObj(obj.ID(), false)
	}
	_ = c.conn.Close()
}

func (c *Client) Destroyed() bool { return c.destroyed }

// RemoveObject removes id from the client's registry, emitting the
// symmetric-delete confirmation event (wl_display.delete_id) when the
// client has opted into symmetric-delete mode.
func (c *Client) RemoveObject(id object.ID, displayObj object.Object, deleteIDOpcode uint16) error {
	c.Registry.RemoveObj(id, c.SymmetricDelete)
	if !c.SymmetricDelete || displayObj == nil {
		return nil
	}
	args := wire.NewArgWriter().NewID(uint32(id))
	if err := c.SendEvent(displayObj, deleteIDOpcode, args); err != nil {
		return err
	}
	c.Registry.AckDestroyed(id)
	return nil
}
