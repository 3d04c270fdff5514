// Package protocol implements the concrete Wayland interfaces the
// protocol core advertises: wl_display, wl_registry, wl_callback,
// wl_compositor, wl_surface, wl_seat (+ wl_pointer/wl_keyboard),
// wl_output, the xdg-shell subset needed for toplevels, and
// jay_compositor (the Configuration-ABI-adjacent compositor singleton
// carried over from the original compositor this protocol core
// reimplements). Every object here is a thin adapter: the actual state
// lives in internal/object,
// internal/client, internal/globalreg, internal/scene, and
// internal/seat; this package only translates wire requests into calls
// on that state and scene/seat callbacks back into wire events.
package protocol

import "github.com/bnema/waycore/internal/object"

var displayInterface = &object.Interface{
	Name:          "wl_display",
	Version:       1,
	RequestSince:  []uint32{1, 1}, // sync, get_registry
	EventSince:    []uint32{1, 1}, // error, delete_id
	DestroyOpcode: -1,
}

var registryInterface = &object.Interface{
	Name:          "wl_registry",
	Version:       1,
	RequestSince:  []uint32{1},    // bind
	EventSince:    []uint32{1, 1}, // global, global_remove
	DestroyOpcode: -1,
}

var callbackInterface = &object.Interface{
	Name:          "wl_callback",
	Version:       1,
	RequestSince:  []uint32{},
	EventSince:    []uint32{1}, // done
	DestroyOpcode: -1,
}

var compositorInterface = &object.Interface{
	Name:          "wl_compositor",
	Version:       1,
	RequestSince:  []uint32{1, 1}, // create_surface, create_region
	EventSince:    []uint32{},
	DestroyOpcode: -1,
}

var regionInterface = &object.Interface{
	Name:          "wl_region",
	Version:       1,
	RequestSince:  []uint32{1, 1, 1}, // destroy, add, subtract
	EventSince:    []uint32{},
	DestroyOpcode: 0,
}

var surfaceInterface = &object.Interface{
	Name:    "wl_surface",
	Version: 6,
	RequestSince: []uint32{
		1, // destroy
		1, // attach
		1, // damage
		1, // frame
		1, // set_opaque_region
		1, // set_input_region
		1, // commit
		2, // set_buffer_transform
		3, // set_buffer_scale
		4, // damage_buffer
		5, // offset
	},
	EventSince: []uint32{
		1, // enter
		1, // leave
		6, // preferred_buffer_scale
		6, // preferred_buffer_transform
	},
	DestroyOpcode: 0,
}

var seatInterface = &object.Interface{
	Name:    "wl_seat",
	Version: 5,
	RequestSince: []uint32{
		1, // get_pointer
		1, // get_keyboard
		1, // get_touch
		5, // release
	},
	EventSince: []uint32{
		1, // capabilities
		2, // name
	},
	DestroyOpcode: -1,
}

var touchInterface = &object.Interface{
	Name:          "wl_touch",
	Version:       1,
	RequestSince:  []uint32{3}, // release
	EventSince:    []uint32{},
	DestroyOpcode: -1,
}

var pointerInterface = &object.Interface{
	Name:    "wl_pointer",
	Version: 5,
	RequestSince: []uint32{
		1, // set_cursor
		3, // release
	},
	EventSince: []uint32{
		1, // enter
		1, // leave
		1, // motion
		1, // button
		1, // axis
		5, // frame
		5, // axis_source
		5, // axis_stop
		5, // axis_discrete
	},
	DestroyOpcode: -1,
}

var keyboardInterface = &object.Interface{
	Name:    "wl_keyboard",
	Version: 4,
	RequestSince: []uint32{
		3, // release
	},
	EventSince: []uint32{
		1, // keymap
		1, // enter
		1, // leave
		1, // key
		1, // modifiers
		4, // repeat_info
	},
	DestroyOpcode: -1,
}

var outputInterface = &object.Interface{
	Name:    "wl_output",
	Version: 4,
	RequestSince: []uint32{
		3, // release
	},
	EventSince: []uint32{
		1, // geometry
		1, // mode
		2, // done
		2, // scale
		4, // name
		4, // description
	},
	DestroyOpcode: -1,
}

var positionerInterface = &object.Interface{
	Name:    "xdg_positioner",
	Version: 1,
	RequestSince: []uint32{
		1, // destroy
		1, // set_size
		1, // set_anchor_rect
		1, // set_anchor
		1, // set_gravity
		1, // set_constraint_adjustment
		1, // set_offset
		3, // set_reactive
		3, // set_parent_size
		3, // set_parent_configure
	},
	EventSince:    []uint32{},
	DestroyOpcode: 0,
}

var xdgWmBaseInterface = &object.Interface{
	Name:          "xdg_wm_base",
	Version:       1,
	RequestSince:  []uint32{1, 1, 1, 1}, // destroy, create_positioner, get_xdg_surface, pong
	EventSince:    []uint32{1},          // ping
	DestroyOpcode: 0,
}

var xdgSurfaceInterface = &object.Interface{
	Name:          "xdg_surface",
	Version:       1,
	RequestSince:  []uint32{1, 1, 1, 1, 1}, // destroy, get_toplevel, get_popup, set_window_geometry, ack_configure
	EventSince:    []uint32{1},             // configure
	DestroyOpcode: 0,
}

var xdgPopupInterface = &object.Interface{
	Name:    "xdg_popup",
	Version: 1,
	RequestSince: []uint32{
		1, // destroy
		1, // grab
		3, // reposition
	},
	EventSince: []uint32{
		1, // configure
		1, // popup_done
		3, // repositioned
	},
	DestroyOpcode: 0,
}

var xdgToplevelInterface = &object.Interface{
	Name:    "xdg_toplevel",
	Version: 1,
	RequestSince: []uint32{
		1, // destroy
		1, // set_parent
		1, // set_title
		1, // set_app_id
		1, // show_window_menu
		1, // move
		1, // resize
		1, // set_max_size
		1, // set_min_size
		1, // set_maximized
		1, // unset_maximized
		1, // set_fullscreen
		1, // unset_fullscreen
		1, // set_minimized
	},
	EventSince:    []uint32{1, 1}, // configure, close
	DestroyOpcode: 0,
}

var jayCompositorInterface = &object.Interface{
	Name:    "jay_compositor",
	Version: 1,
	RequestSince: []uint32{
		1, // destroy
		1, // get_log_file
		1, // quit
		1, // set_log_level
		1, // take_screenshot
		1, // get_idle
		1, // get_client_id
		1, // enable_symmetric_delete
		1, // unlock
	},
	EventSince:    []uint32{1}, // client_id
	DestroyOpcode: 0,
}

var idleInterface = &object.Interface{
	Name:          "jay_idle",
	Version:       1,
	RequestSince:  []uint32{1}, // destroy
	EventSince:    []uint32{},
	DestroyOpcode: 0,
}

var jayLogFileInterface = &object.Interface{
	Name:          "jay_log_file",
	Version:       1,
	RequestSince:  []uint32{},
	EventSince:    []uint32{1}, // path
	DestroyOpcode: -1,
}

var jayScreenshotInterface = &object.Interface{
	Name:          "jay_screenshot",
	Version:       1,
	RequestSince:  []uint32{},
	EventSince:    []uint32{1, 1}, // ready, failed
	DestroyOpcode: -1,
}
