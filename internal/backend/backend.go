// Package backend declares the external collaborators the core only
// *commands*: rendering, mode-setting, and raw input devices are all spec
// Non-goals as implementations. This package carries their interface
// shape so internal/scene and internal/seat can be written against a
// stable contract without linking GPU or DRM/KMS code.
package backend

import "time"

// Framebuffer is a render target the core can ask a Connector to present.
type Framebuffer interface {
	Width() int32
	Height() int32
}

// Texture is a GPU-resident image, e.g. a rendered workspace title or a
// client buffer imported for screencopy's dmabuf path.
type Texture interface {
	Width() int32
	Height() int32
}

// Connector is one physical display output's mode-setting and
// presentation surface.
type Connector interface {
	Name() string
	CurrentMode() (width, height int32, refreshMilliHz int32)
	// Present schedules fb for display on the next vblank; PresentedFunc
	// is invoked with the presentation timestamp once the kernel
	// confirms it, the (tv_sec, tv_nsec, refresh, sequence, flags) tuple
	// screencast/screencopy listeners expect.
	Present(fb Framebuffer, onPresented PresentedFunc) error
}

// PresentedFunc receives a connector's presentation-feedback tuple.
type PresentedFunc func(tvSec int64, tvNsec int64, refreshNs int64, sequence uint64, flags uint32)

// InputEventKind tags one raw event from a backend input device.
type InputEventKind int

const (
	EventKey InputEventKind = iota
	EventConnectorPosition
	EventMotion
	EventButton
	EventAxisSource
	EventAxisDiscrete
	EventAxis
	EventAxisStop
	EventFrame
)

// InputEvent is one tagged raw event from an input source, before the
// seat package translates it into wire events.
type InputEvent struct {
	Kind InputEventKind
	Time time.Duration

	// Key
	Keycode uint32
	Pressed bool

	// ConnectorPosition
	ConnectorName string
	AbsX, AbsY    float64 // 0..1 normalized across the connector's mode

	// Motion
	DX, DY float64

	// Button
	ButtonCode uint32

	// Axis family
	AxisIndex   int32 // 0 = horizontal, 1 = vertical
	AxisSource  int32
	AxisDiscrete int32
	AxisValue   float64
}

// InputSource is a backend's raw-event stream. Close stops delivery and
// releases the underlying device fd.
type InputSource interface {
	Events() <-chan InputEvent
	Close() error
}
