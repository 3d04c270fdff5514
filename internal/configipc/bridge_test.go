package configipc

import (
	"net"
	"testing"
)

type recordingHandler struct {
	bound   []ShortcutBinding
	level   string
	quit    bool
}

func (h *recordingHandler) BindShortcut(mods, keysym, action uint32) {
	h.bound = append(h.bound, ShortcutBinding{Mods: mods, Keysym: keysym, Action: action})
}
func (h *recordingHandler) UnbindShortcut(mods, keysym uint32) {}
func (h *recordingHandler) SetLogLevel(level string)           { h.level = level }
func (h *recordingHandler) Quit()                               { h.quit = true }
func (h *recordingHandler) TakeScreenshot() error               { return nil }

func TestBridgeDispatchesConfigRequests(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	handler := &recordingHandler{}
	serverBridge := NewBridge(serverConn, handler)
	done := make(chan error, 1)
	go func() { done <- serverBridge.Run() }()

	clientBridge := NewBridge(clientConn, nil)
	if err := clientBridge.SendServerEvent(Frame{
		Type:    ConfigBindShortcut,
		Payload: EncodeShortcutBinding(ShortcutBinding{Mods: 0x1, Keysym: 't', Action: 9}),
	}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := clientBridge.SendServerEvent(Frame{Type: ConfigSetLogLevel, Payload: []byte("warn")}); err != nil {
		t.Fatalf("send: %v", err)
	}

	clientConn.Close()
	<-done

	if len(handler.bound) != 1 || handler.bound[0].Keysym != 't' {
		t.Fatalf("expected one bind-shortcut dispatch, got %+v", handler.bound)
	}
	if handler.level != "warn" {
		t.Fatalf("expected log level 'warn', got %q", handler.level)
	}
}
