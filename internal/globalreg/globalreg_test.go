package globalreg

import "testing"

func noopBind(requester any, newID, version uint32) error { return nil }

func TestSingletonRejectsSecondAdd(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Add("wl_compositor", 5, true, false, noopBind); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := r.Add("wl_compositor", 5, true, false, noopBind); err == nil {
		t.Fatal("expected ErrSingletonExists on second singleton add")
	}
}

func TestBindRejectsUnknownName(t *testing.T) {
	r := NewRegistry()
	err := r.Bind(999, 1, 10, true, nil)
	if _, ok := err.(*ErrNoSuchGlobal); !ok {
		t.Fatalf("expected ErrNoSuchGlobal, got %T (%v)", err, err)
	}
}

func TestBindRejectsExcessVersion(t *testing.T) {
	r := NewRegistry()
	g, _ := r.Add("wl_seat", 7, false, false, noopBind)
	err := r.Bind(g.Name, 8, 10, true, nil)
	if _, ok := err.(*ErrVersionTooHigh); !ok {
		t.Fatalf("expected ErrVersionTooHigh, got %T (%v)", err, err)
	}
}

func TestBindRejectsSecureForUnprivileged(t *testing.T) {
	r := NewRegistry()
	g, _ := r.Add("jay_compositor", 1, true, true, noopBind)
	err := r.Bind(g.Name, 1, 10, false, nil)
	if err == nil {
		t.Fatal("expected bind to be rejected for an unprivileged client")
	}
}

func TestReplaySkipsSecureForUnprivileged(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Add("wl_compositor", 5, false, false, noopBind)
	_, _ = r.Add("jay_compositor", 1, false, true, noopBind)

	var seen []string
	r.Replay(false, func(g *Global) { seen = append(seen, g.Interface) })
	if len(seen) != 1 || seen[0] != "wl_compositor" {
		t.Fatalf("expected only wl_compositor visible to unprivileged client, got %v", seen)
	}

	seen = nil
	r.Replay(true, func(g *Global) { seen = append(seen, g.Interface) })
	if len(seen) != 2 {
		t.Fatalf("expected both globals visible to privileged client, got %v", seen)
	}
}

func TestAddBroadcastsToExistingCallback(t *testing.T) {
	r := NewRegistry()
	var added []string
	r.SetBroadcast(func(g *Global, privileged bool) { added = append(added, g.Interface) }, nil)

	_, _ = r.Add("wl_output", 4, false, false, noopBind)
	if len(added) != 1 || added[0] != "wl_output" {
		t.Fatalf("expected broadcast of wl_output, got %v", added)
	}
}

func TestRemoveBroadcastsByName(t *testing.T) {
	r := NewRegistry()
	var removed []Name
	r.SetBroadcast(nil, func(name Name) { removed = append(removed, name) })

	g, _ := r.Add("wl_output", 4, false, false, noopBind)
	r.Remove(g.Name)
	if len(removed) != 1 || removed[0] != g.Name {
		t.Fatalf("expected removal broadcast for %d, got %v", g.Name, removed)
	}
	if r.Get(g.Name) != nil {
		t.Fatal("expected global to be gone after Remove")
	}
}
