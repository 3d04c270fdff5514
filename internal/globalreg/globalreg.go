// Package globalreg implements the per-display global registry: the
// ordered list of advertisable interfaces, singleton/secure gating, and
// the bind/broadcast protocol that drives wl_registry.
package globalreg

import "fmt"

// Name is a monotonically increasing global identifier.
type Name uint32

// Global is one server-wide advertisable interface instance.
type Global struct {
	Name      Name
	Interface string
	Version   uint32
	Singleton bool
	Secure    bool

	// Bind constructs a new protocol object bound to this global for the
	// requesting client, at the negotiated version, installing it under
	// newID in the client's registry. requester is opaque here (an
	// *internal/client.Client in practice) so this package need not
	// import internal/client; the concrete closure lives in
	// internal/protocol, which is the only package that knows how to
	// build e.g. a wl_compositor from a global.
	Bind func(requester any, newID uint32, version uint32) error
}

// ErrSingletonExists reports a second Add of a singleton global's
// interface while the first is still registered.
type ErrSingletonExists struct{ Interface string }

func (e *ErrSingletonExists) Error() string {
	return fmt.Sprintf("global %s is a singleton and already registered", e.Interface)
}

// ErrNoSuchGlobal reports a bind-by-name for a name never advertised or
// already removed.
type ErrNoSuchGlobal struct{ Name Name }

func (e *ErrNoSuchGlobal) Error() string {
	return fmt.Sprintf("no global with name %d", e.Name)
}

// ErrVersionTooHigh reports a bind request for a version above the
// global's declared version.
type ErrVersionTooHigh struct {
	Interface        string
	Requested, Bound uint32
}

func (e *ErrVersionTooHigh) Error() string {
	return fmt.Sprintf("%s: requested version %d exceeds declared version %d", e.Interface, e.Requested, e.Bound)
}

// Registry is the per-display global registry. It is not safe for
// concurrent use; the cooperative single-threaded event loop is the only
// caller.
type Registry struct {
	globals      map[Name]*Global
	order        []Name
	nextName     Name
	singletonSet map[string]bool

	// onAdd/onRemove are invoked for every currently-bound wl_registry,
	// broadcasting the add/remove the way wl_registry.global and
	// wl_registry.global_remove do. Installed by internal/protocol's
	// NewCore at startup.
	onAdd    func(g *Global, privileged bool)
	onRemove func(name Name)
}

func NewRegistry() *Registry {
	return &Registry{
		globals:      make(map[Name]*Global),
		singletonSet: make(map[string]bool),
		nextName:     1,
	}
}

// SetBroadcast installs the callbacks used to fan out Add/Remove to every
// bound wl_registry object.
func (r *Registry) SetBroadcast(onAdd func(g *Global, privileged bool), onRemove func(name Name)) {
	r.onAdd = onAdd
	r.onRemove = onRemove
}

// Add registers a new global, broadcasting it to every already-bound
// registry. Returns ErrSingletonExists if iface.Singleton and one is
// already registered.
func (r *Registry) Add(iface string, version uint32, singleton, secure bool, bind func(requester any, newID, version uint32) error) (*Global, error) {
	if singleton && r.singletonSet[iface] {
		return nil, &ErrSingletonExists{Interface: iface}
	}
	g := &Global{
		Name:      r.nextName,
		Interface: iface,
		Version:   version,
		Singleton: singleton,
		Secure:    secure,
		Bind:      bind,
	}
	r.globals[g.Name] = g
	r.order = append(r.order, g.Name)
	r.nextName++
	if singleton {
		r.singletonSet[iface] = true
	}
	if r.onAdd != nil {
		r.onAdd(g, false)
	}
	return g, nil
}

// Remove unregisters a global by name and broadcasts its removal.
func (r *Registry) Remove(name Name) {
	g, ok := r.globals[name]
	if !ok {
		return
	}
	delete(r.globals, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if g.Singleton {
		delete(r.singletonSet, g.Interface)
	}
	if r.onRemove != nil {
		r.onRemove(name)
	}
}

// Replay calls emit for every currently registered global, in
// registration order, respecting privilege against each global's Secure
// flag — used when a client first creates a wl_registry binding.
func (r *Registry) Replay(privileged bool, emit func(g *Global)) {
	for _, name := range r.order {
		g := r.globals[name]
		if g.Secure && !privileged {
			continue
		}
		emit(g)
	}
}

// Bind resolves a bind request: name must exist, version must not exceed
// the global's declared version, and a secure global requires privilege.
// requester is passed through to the global's Bind closure unchanged.
func (r *Registry) Bind(name Name, requestedVersion uint32, newID uint32, privileged bool, requester any) error {
	g, ok := r.globals[name]
	if !ok {
		return &ErrNoSuchGlobal{Name: name}
	}
	if g.Secure && !privileged {
		return &ErrNoSuchGlobal{Name: name}
	}
	if requestedVersion > g.Version {
		return &ErrVersionTooHigh{Interface: g.Interface, Requested: requestedVersion, Bound: g.Version}
	}
	return g.Bind(requester, newID, requestedVersion)
}

// Get returns the global registered under name, or nil.
func (r *Registry) Get(name Name) *Global {
	return r.globals[name]
}
