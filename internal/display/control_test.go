package display

import (
	"path/filepath"
	"testing"
)

type fakeControlHandler struct {
	quitCalled bool
	level      string
}

func (h *fakeControlHandler) Screenshot() (string, error)  { return "/tmp/shot.png", nil }
func (h *fakeControlHandler) LogFilePath() (string, error) { return "/tmp/jay.log", nil }
func (h *fakeControlHandler) Quit()                        { h.quitCalled = true }
func (h *fakeControlHandler) SetLogLevel(level string) error {
	h.level = level
	return nil
}

func TestControlServerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "control.sock")
	handler := &fakeControlHandler{}
	srv, err := NewControlServer(path, handler)
	if err != nil {
		t.Fatalf("new control server: %v", err)
	}
	go srv.Serve()
	defer srv.Close()

	client := NewControlClient(path)

	if resp, err := client.Send("screenshot"); err != nil || resp != "/tmp/shot.png" {
		t.Fatalf("screenshot: resp=%q err=%v", resp, err)
	}
	if resp, err := client.Send("log"); err != nil || resp != "/tmp/jay.log" {
		t.Fatalf("log: resp=%q err=%v", resp, err)
	}
	if _, err := client.Send("set-log-level debug"); err != nil {
		t.Fatalf("set-log-level: %v", err)
	}
	if handler.level != "debug" {
		t.Fatalf("expected level 'debug', got %q", handler.level)
	}
	if _, err := client.Send("quit"); err != nil {
		t.Fatalf("quit: %v", err)
	}
	if !handler.quitCalled {
		t.Fatalf("expected quit to be called")
	}
}

func TestControlServerUnknownCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "control.sock")
	srv, err := NewControlServer(path, &fakeControlHandler{})
	if err != nil {
		t.Fatalf("new control server: %v", err)
	}
	go srv.Serve()
	defer srv.Close()

	client := NewControlClient(path)
	_, err = client.Send("bogus")
	if err == nil {
		t.Fatalf("expected an error for an unknown command")
	}
}
