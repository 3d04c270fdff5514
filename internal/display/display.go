// Package display implements the compositor's top-level event loop and
// Wayland socket lifecycle: binding `$XDG_RUNTIME_DIR/$WAYLAND_DISPLAY`
// plus its `.lock` sibling, accepting client connections, and routing
// each decoded wire message to the right client's object registry. It
// wires together internal/object, internal/client, internal/globalreg,
// internal/scene, and internal/seat without owning any single Wayland
// interface's behavior — those live in internal/protocol and are plugged
// in through Bootstrap.
package display

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/bnema/waycore/internal/client"
	"github.com/bnema/waycore/internal/globalreg"
	"github.com/bnema/waycore/internal/object"
	"github.com/bnema/waycore/internal/scene"
	"github.com/bnema/waycore/internal/seat"
	"github.com/bnema/waycore/internal/wire"
)

// Bootstrap installs the wl_display singleton (object id 1) into a
// freshly accepted client's registry. internal/protocol supplies the
// concrete closure; this package only calls it.
type Bootstrap func(d *Display, c *client.Client)

// Display is the compositor's single-threaded core. Every exported field
// is only ever touched from the Run goroutine once it starts — the
// accept and per-client read loops communicate with it exclusively
// through the buffered events channel.
type Display struct {
	Tree    *scene.Tree
	Globals *globalreg.Registry
	Seats   map[scene.SeatID]*seat.Seat
	Clients map[client.ID]*client.Client

	Log func(format string, args ...any)

	bootstrap    Bootstrap
	nextClientID client.ID
	nextNode     scene.NodeID

	listener    *net.UnixListener
	socketPath  string
	displayName string
	lockFile    *os.File

	events chan event
	quit   chan struct{}
}

type event struct {
	client *client.Client
	msg    wire.Message
	err    error
}

func New(bootstrap Bootstrap) *Display {
	return &Display{
		Tree:    scene.NewTree(),
		Globals: globalreg.NewRegistry(),
		Seats:   make(map[scene.SeatID]*seat.Seat),
		Clients: make(map[client.ID]*client.Client),
		Log:     func(string, ...any) {},

		bootstrap: bootstrap,
		nextNode:  1, // 0 is reserved for Tree.Root
		events:    make(chan event, 64),
		quit:      make(chan struct{}),
	}
}

// NextNodeID allocates a fresh scene.NodeID, used by internal/protocol
// whenever a request creates a new scene node (a surface, a toplevel, an
// output).
func (d *Display) NextNodeID() scene.NodeID {
	id := d.nextNode
	d.nextNode++
	return id
}

// ErrNoFreeDisplayName reports that every wayland-0..wayland-31 name is
// already locked by another compositor instance.
type ErrNoFreeDisplayName struct{}

func (e *ErrNoFreeDisplayName) Error() string {
	return "no free wayland display name in wayland-0..wayland-31"
}

// Listen claims the first free `$WAYLAND_DISPLAY` name under
// `$XDG_RUNTIME_DIR`, following the same lock-file-then-bind sequence
// every Wayland compositor uses to avoid two compositors racing onto the
// same socket path. Returns the claimed display name (e.g. "wayland-0").
func (d *Display) Listen() (string, error) {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return "", fmt.Errorf("display: XDG_RUNTIME_DIR is not set")
	}

	for i := 0; i < 32; i++ {
		name := fmt.Sprintf("wayland-%d", i)
		sockPath := filepath.Join(runtimeDir, name)
		lockPath := sockPath + ".lock"

		lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
		if err != nil {
			continue
		}
		if err := unix.Flock(int(lockFile.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
			lockFile.Close()
			continue
		}

		os.Remove(sockPath) // a stale socket left by a process that held this lock and crashed
		l, err := net.ListenUnix("unix", &net.UnixAddr{Name: sockPath, Net: "unix"})
		if err != nil {
			lockFile.Close()
			continue
		}
		os.Chmod(sockPath, 0700)

		d.listener = l
		d.socketPath = sockPath
		d.displayName = name
		d.lockFile = lockFile
		return name, nil
	}
	return "", &ErrNoFreeDisplayName{}
}

// DisplayName returns the name claimed by Listen, or "" before Listen
// succeeds.
func (d *Display) DisplayName() string { return d.displayName }

// SetBootstrap installs the per-client bootstrap closure after
// construction. internal/protocol.Core needs a *Display before it can
// build its Bootstrap closure (the closure installs wl_display bound to
// this core), so callers wire this in after NewCore rather than passing
// it to New.
func (d *Display) SetBootstrap(b Bootstrap) {
	d.bootstrap = b
}

func (d *Display) acceptLoop() {
	for {
		uc, err := d.listener.AcceptUnix()
		if err != nil {
			return
		}
		d.nextClientID++
		id := d.nextClientID
		conn := wire.NewConn(uc)
		c := client.New(id, conn)

		d.events <- event{client: c, msg: wire.Message{}, err: nil} // registers the client on the loop goroutine
		if d.bootstrap != nil {
			d.bootstrap(d, c)
		}
		go d.readLoop(c, conn)
	}
}

func (d *Display) readLoop(c *client.Client, conn *wire.Conn) {
	r := wire.NewReader(conn)
	for {
		msg, err := r.Next()
		if err != nil {
			d.events <- event{client: c, err: err}
			return
		}
		d.events <- event{client: c, msg: msg}
	}
}

// Run pumps the event loop until Stop is called. Every client dispatch
// and its resulting event fan-out happen inline on this goroutine, the
// "no locks needed" single-threaded guarantee the rest of the core relies
// on.
func (d *Display) Run() error {
	go d.acceptLoop()
	for {
		select {
		case ev := <-d.events:
			d.handle(ev)
		case <-d.quit:
			return nil
		}
	}
}

func (d *Display) handle(ev event) {
	if _, known := d.Clients[ev.client.ID()]; !known {
		d.Clients[ev.client.ID()] = ev.client
		return
	}
	if ev.err != nil {
		d.disconnect(ev.client)
		return
	}
	err := ev.client.Registry.Dispatch(object.ID(ev.msg.ObjectID), ev.msg.Opcode, func(obj object.Object) error {
		return obj.Dispatch(ev.msg.Opcode, wire.NewArgReader(ev.msg), ev.msg.FDs)
	})
	if err != nil {
		d.Log("client %d: protocol error: %v", ev.client.ID(), err)
		d.disconnect(ev.client)
		return
	}
	if err := ev.client.FlushBoundary(); err != nil {
		d.disconnect(ev.client)
	}
}

func (d *Display) disconnect(c *client.Client) {
	c.Destroy()
	delete(d.Clients, c.ID())
}

// Stop unblocks Run.
func (d *Display) Stop() { close(d.quit) }

// Close releases the listener, lock file, and socket path.
func (d *Display) Close() error {
	if d.listener != nil {
		d.listener.Close()
	}
	if d.lockFile != nil {
		d.lockFile.Close()
	}
	if d.socketPath != "" {
		os.Remove(d.socketPath)
		os.Remove(d.socketPath + ".lock")
	}
	return nil
}

// SeatCoordinators adapts Seats to the map DestroyNode and
// NodeSeatState.Destroy require; internal/protocol calls this whenever a
// scene node it owns is torn down.
func (d *Display) SeatCoordinators() map[scene.SeatID]scene.SeatCoordinator {
	m := make(map[scene.SeatID]scene.SeatCoordinator, len(d.Seats))
	for id, s := range d.Seats {
		m[id] = s
	}
	return m
}

// Unlock clears the session-lock flag and destroys every output's lock
// surface, per jay_compositor's unlock request: unlocking always
// force-clears the lock state even if no lock surface was ever created
// for a given output.
func (d *Display) Unlock() {
	d.Tree.Locked = false
	seats := d.SeatCoordinators()
	for _, out := range d.Tree.Outputs {
		ls := out.Output.LockSurface
		if ls == nil {
			continue
		}
		out.Output.LockSurface = nil
		scene.DestroyNode(ls, seats)
	}
}
