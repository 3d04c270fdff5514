package ui

import (
	"strings"
	"testing"
)

func TestFormatControl(t *testing.T) {
	tests := []struct {
		name string
		key  string
		desc string
	}{
		{name: "basic control", key: "q", desc: "Quit"},
		{name: "longer key", key: "Mod+Shift+Return", desc: "Spawn terminal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatControl(tt.key, tt.desc)
			if !strings.Contains(got, tt.key) {
				t.Errorf("FormatControl() missing key %q", tt.key)
			}
			if !strings.Contains(got, tt.desc) {
				t.Errorf("FormatControl() missing description %q", tt.desc)
			}
		})
	}
}

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		name    string
		running bool
		status  string
	}{
		{name: "running status", running: true, status: "compositor running"},
		{name: "stopped status", running: false, status: "compositor stopped"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatStatus(tt.running, tt.status)
			if !strings.Contains(got, tt.status) {
				t.Errorf("FormatStatus() missing status text %q", tt.status)
			}
			if tt.running && !strings.Contains(got, "●") {
				t.Errorf("FormatStatus() running=true should contain filled circle")
			}
			if !tt.running && !strings.Contains(got, "○") {
				t.Errorf("FormatStatus() running=false should contain empty circle")
			}
		})
	}
}

func TestFormatListItem(t *testing.T) {
	tests := []struct {
		name   string
		item   string
		active bool
	}{
		{name: "inactive item", item: "/tmp/shot-1.png", active: false},
		{name: "active item", item: "/tmp/shot-2.png", active: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatListItem(tt.item, tt.active)
			if !strings.Contains(got, "•") {
				t.Errorf("FormatListItem() missing bullet point")
			}
			if !strings.Contains(got, tt.item) {
				t.Errorf("FormatListItem() missing item text %q", tt.item)
			}
		})
	}
}

func TestFormatLevelLine(t *testing.T) {
	tests := []struct {
		level   string
		message string
	}{
		{level: "info", message: "compositor started"},
		{level: "ERROR", message: "backend connector lost"},
		{level: "debug", message: "dispatch wl_surface.commit"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			got := FormatLevelLine(tt.level, tt.message)
			if !strings.Contains(got, tt.message) {
				t.Errorf("FormatLevelLine() missing message %q", tt.message)
			}
			if !strings.Contains(strings.ToUpper(got), strings.ToUpper(tt.level)) {
				t.Errorf("FormatLevelLine() missing level %q", tt.level)
			}
		})
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		content string
	}{
		{name: "short content", width: 20, content: "Test"},
		{name: "exact width", width: 4, content: "Test"},
		{name: "content longer than width", width: 2, content: "Test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Center(tt.width, tt.content)
			if !strings.Contains(got, tt.content) {
				t.Errorf("Center() missing content %q", tt.content)
			}
		})
	}
}

func TestRight(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		content string
	}{
		{name: "short content", width: 20, content: "Test"},
		{name: "exact width", width: 4, content: "Test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Right(tt.width, tt.content)
			if !strings.Contains(got, tt.content) {
				t.Errorf("Right() missing content %q", tt.content)
			}
		})
	}
}

func TestCreateSeparator(t *testing.T) {
	got := CreateSeparator(10, "-")
	if !strings.Contains(got, "-") {
		t.Errorf("CreateSeparator() missing separator character")
	}
}
