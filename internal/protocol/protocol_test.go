package protocol

import (
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/bnema/waycore/internal/client"
	"github.com/bnema/waycore/internal/display"
	"github.com/bnema/waycore/internal/object"
	"github.com/bnema/waycore/internal/wire"
)

// newClientPair builds a *client.Client wired to one end of a real
// AF_UNIX socketpair, handing the test the other end's *wire.Reader so it
// can observe flushed events the way a real Wayland client would.
func newClientPair(t *testing.T) (*client.Client, *wire.Reader) {
	t.Helper()
	fds, err := syscall.Socketpair(syscall.AF_UNIX, syscall.SOCK_STREAM, 0)
	if err != nil {
		t.Fatalf("socketpair: %v", err)
	}
	serverFile := os.NewFile(uintptr(fds[0]), "server")
	clientFile := os.NewFile(uintptr(fds[1]), "client")
	serverConn, err := net.FileConn(serverFile)
	if err != nil {
		t.Fatalf("server FileConn: %v", err)
	}
	clientConn, err := net.FileConn(clientFile)
	if err != nil {
		t.Fatalf("client FileConn: %v", err)
	}
	serverFile.Close()
	clientFile.Close()
	t.Cleanup(func() { serverConn.Close(); clientConn.Close() })

	serverUC := serverConn.(*net.UnixConn)
	clientUC := clientConn.(*net.UnixConn)

	cl := client.New(1, wire.NewConn(serverUC))
	reader := wire.NewReader(wire.NewConn(clientUC))
	return cl, reader
}

func newTestCore(t *testing.T) (*Core, *client.Client, *wire.Reader) {
	t.Helper()
	d := display.New(nil)
	core := NewCore(d)
	if err := core.RegisterCoreGlobals(); err != nil {
		t.Fatalf("register globals: %v", err)
	}
	cl, reader := newClientPair(t)
	disp := &DisplayObject{id: 1, client: cl, core: core}
	if err := cl.Registry.AddClientObj(1, disp); err != nil {
		t.Fatalf("install wl_display: %v", err)
	}
	return core, cl, reader
}

func dispatchOn(t *testing.T, cl *client.Client, id object.ID, opcode uint16, args *wire.ArgWriter) {
	t.Helper()
	obj := cl.Registry.Lookup(id)
	if obj == nil {
		t.Fatalf("no object at id %d", id)
	}
	msg := wire.Message{ObjectID: uint32(id), Opcode: opcode, Args: args.Bytes(), FDs: args.FDs()}
	if err := obj.Dispatch(opcode, wire.NewArgReader(msg), msg.FDs); err != nil {
		t.Fatalf("dispatch opcode %d on %d: %v", opcode, id, err)
	}
	if err := cl.FlushBoundary(); err != nil {
		t.Fatalf("flush: %v", err)
	}
}

func TestDisplaySyncFiresCallbackDone(t *testing.T) {
	_, cl, reader := newTestCore(t)

	dispatchOn(t, cl, 1, 0, wire.NewArgWriter().NewID(2)) // wl_display.sync(callback=2)

	msg, err := reader.Next()
	if err != nil {
		t.Fatalf("reading callback.done: %v", err)
	}
	if msg.ObjectID != 2 || msg.Opcode != 0 {
		t.Fatalf("expected callback.done on object 2, got object=%d opcode=%d", msg.ObjectID, msg.Opcode)
	}
}

func TestRegistryBindCreatesCompositor(t *testing.T) {
	_, cl, reader := newTestCore(t)

	dispatchOn(t, cl, 1, 1, wire.NewArgWriter().NewID(2)) // wl_display.get_registry(registry=2)

	// drain the global advertisement(s) sent during Replay.
	var globalName uint32
	for {
		msg, err := reader.Next()
		if err != nil {
			t.Fatalf("reading registry.global: %v", err)
		}
		if msg.ObjectID == 2 && msg.Opcode == 0 {
			ar := wire.NewArgReader(msg)
			name := ar.Uint32()
			iface := ar.String()
			ar.Uint32() // version
			if iface == "wl_compositor" {
				globalName = name
				break
			}
		}
	}

	dispatchOn(t, cl, 2, 0, wire.NewArgWriter().Uint32(globalName).String("wl_compositor").Uint32(6).NewID(3))

	obj := cl.Registry.Lookup(3)
	if _, ok := obj.(*CompositorObject); !ok {
		t.Fatalf("expected a *CompositorObject at id 3, got %T", obj)
	}
}

func TestSurfaceFrameFiresOnPresented(t *testing.T) {
	core, cl, reader := newTestCore(t)

	comp := &CompositorObject{id: 2, client: cl, core: core, version: 6}
	if err := cl.Registry.AddClientObj(2, comp); err != nil {
		t.Fatalf("install compositor: %v", err)
	}
	dispatchOn(t, cl, 2, 0, wire.NewArgWriter().NewID(3)) // create_surface

	dispatchOn(t, cl, 3, 3, wire.NewArgWriter().NewID(4)) // wl_surface.frame(callback=4)

	surf := cl.Registry.Lookup(3).(*SurfaceObject)
	if err := surf.FirePresented(12345); err != nil {
		t.Fatalf("FirePresented: %v", err)
	}
	if err := cl.FlushBoundary(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	msg, err := reader.Next()
	if err != nil {
		t.Fatalf("reading frame done: %v", err)
	}
	if msg.ObjectID != 4 || msg.Opcode != 0 {
		t.Fatalf("expected callback.done on object 4, got object=%d opcode=%d", msg.ObjectID, msg.Opcode)
	}
	ar := wire.NewArgReader(msg)
	if v := ar.Uint32(); v != 12345 {
		t.Fatalf("expected presentation timestamp 12345, got %d", v)
	}
}

func TestXdgSurfaceGetPopupCreatesARealPopupObject(t *testing.T) {
	core, cl, _ := newTestCore(t)

	comp := &CompositorObject{id: 2, client: cl, core: core, version: 6}
	if err := cl.Registry.AddClientObj(2, comp); err != nil {
		t.Fatalf("install compositor: %v", err)
	}
	dispatchOn(t, cl, 2, 0, wire.NewArgWriter().NewID(3)) // create_surface(surface=3)

	wmBase := &WmBaseObject{id: 4, client: cl, core: core, version: 1}
	if err := cl.Registry.AddClientObj(4, wmBase); err != nil {
		t.Fatalf("install wm_base: %v", err)
	}
	dispatchOn(t, cl, 4, 1, wire.NewArgWriter().NewID(5))             // create_positioner(positioner=5)
	dispatchOn(t, cl, 4, 2, wire.NewArgWriter().NewID(6).ObjectID(3)) // get_xdg_surface(xdg_surface=6, surface=3)

	dispatchOn(t, cl, 6, 2, wire.NewArgWriter().NewID(7).ObjectID(0).ObjectID(5)) // get_popup(popup=7, parent=0, positioner=5)

	obj := cl.Registry.Lookup(7)
	popup, ok := obj.(*XdgPopupObject)
	if !ok {
		t.Fatalf("expected *XdgPopupObject at id 7, got %T", obj)
	}
	if popup.Interface().Name != "xdg_popup" {
		t.Fatalf("expected xdg_popup interface, got %q", popup.Interface().Name)
	}

	// grab dispatches against the popup's own request table rather than
	// the positioner's.
	dispatchOn(t, cl, 7, 1, wire.NewArgWriter().ObjectID(0).Uint32(1)) // grab(seat=0, serial=1)
}

func TestJayCompositorUnlockForcesSymmetricDelete(t *testing.T) {
	core, cl, _ := newTestCore(t)

	jc := &JayCompositorObject{id: 2, client: cl, core: core}
	if err := cl.Registry.AddClientObj(2, jc); err != nil {
		t.Fatalf("install jay_compositor: %v", err)
	}
	dispatchOn(t, cl, 2, 8, wire.NewArgWriter()) // unlock

	if !cl.SymmetricDelete {
		t.Fatal("expected unlock to force-enable symmetric delete")
	}
}
