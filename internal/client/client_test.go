package client

import (
	"testing"

	"github.com/bnema/waycore/internal/object"
	"github.com/bnema/waycore/internal/wire"
	"github.com/stretchr/testify/require"
)

func TestNextSerialMonotonic(t *testing.T) {
	c := New(1, wire.NewConn(nil))
	s1 := c.NextSerial()
	s2 := c.NextSerial()
	s3 := c.NextSerial()
	require.Less(t, s1, s2)
	require.Less(t, s2, s3)
}

func TestDestroyCascadesToAllObjects(t *testing.T) {
	c := New(1, wire.NewConn(nil))

	iface := &object.Interface{Name: "wl_surface", Version: 1, RequestSince: []uint32{1}, EventSince: []uint32{}}
	destroyed := map[object.ID]bool{}
	makeObj := func(id object.ID) *recordingObject {
		return &recordingObject{id: id, iface: iface, onDestroy: func() { destroyed[id] = true }}
	}

	require.NoError(t, c.Registry.AddClientObj(1, makeObj(1)))
	require.NoError(t, c.Registry.AddClientObj(2, makeObj(2)))

	for _, obj := range c.Registry.All() {
		c.Registry.RemoveObj(obj.ID(), false)
	}

	require.True(t, destroyed[1])
	require.True(t, destroyed[2])
	require.Empty(t, c.Registry.All())
}

func TestRemoveObjectSkipsConfirmationWithoutSymmetricDelete(t *testing.T) {
	c := New(1, wire.NewConn(nil))
	iface := &object.Interface{Name: "jay_compositor", Version: 1, RequestSince: []uint32{1}, EventSince: []uint32{1}}
	obj := &recordingObject{id: 5, iface: iface, onDestroy: func() {}}
	require.NoError(t, c.Registry.AddClientObj(5, obj))

	// SymmetricDelete is false, so no event is sent and this must not
	// touch the (nil) underlying connection.
	err := c.RemoveObject(5, nil, 0)
	require.NoError(t, err)
	require.Nil(t, c.Registry.Lookup(5))
}

type recordingObject struct {
	id        object.ID
	iface     *object.Interface
	onDestroy func()
}

func (r *recordingObject) ID() object.ID               { return r.id }
func (r *recordingObject) Interface() *object.Interface { return r.iface }
func (r *recordingObject) BoundVersion() uint32         { return 1 }
func (r *recordingObject) OnDestroy()                   { r.onDestroy() }
func (r *recordingObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	return nil
}
