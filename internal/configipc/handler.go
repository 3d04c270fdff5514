package configipc

// ConfigHandler is the compositor-side surface the Configuration ABI
// collaborator drives: shortcut table edits, log level, and lifecycle
// requests (quit, screenshot) mirroring jay_compositor's request set.
type ConfigHandler interface {
	BindShortcut(mods, keysym, action uint32)
	UnbindShortcut(mods, keysym uint32)
	SetLogLevel(level string)
	Quit()
	TakeScreenshot() error
}

// DefaultHandler is the built-in ConfigHandler used when no external
// collaborator is loaded: shortcuts and log level apply directly,
// lifecycle requests are no-ops a real Display wires up.
type DefaultHandler struct {
	Shortcuts   ShortcutTable
	LogLevelSet func(level string)
	QuitFunc    func()
	ScreenshotFunc func() error
}

// ShortcutTable is the subset of internal/seat.Seat's shortcut API the
// handler needs, kept as an interface so this package does not import
// internal/seat.
type ShortcutTable interface {
	AddShortcutRaw(mods, keysym, action uint32)
	RemoveShortcutRaw(mods, keysym uint32)
}

func NewDefaultHandler(shortcuts ShortcutTable) *DefaultHandler {
	return &DefaultHandler{Shortcuts: shortcuts}
}

func (h *DefaultHandler) BindShortcut(mods, keysym, action uint32) {
	if h.Shortcuts != nil {
		h.Shortcuts.AddShortcutRaw(mods, keysym, action)
	}
}

func (h *DefaultHandler) UnbindShortcut(mods, keysym uint32) {
	if h.Shortcuts != nil {
		h.Shortcuts.RemoveShortcutRaw(mods, keysym)
	}
}

func (h *DefaultHandler) SetLogLevel(level string) {
	if h.LogLevelSet != nil {
		h.LogLevelSet(level)
	}
}

func (h *DefaultHandler) Quit() {
	if h.QuitFunc != nil {
		h.QuitFunc()
	}
}

func (h *DefaultHandler) TakeScreenshot() error {
	if h.ScreenshotFunc != nil {
		return h.ScreenshotFunc()
	}
	return nil
}
