package config

import (
	"strings"

	"gioui.org/io/event"
	"gioui.org/io/key"
)

// HotkeysConfig holds the launcher keyboard shortcuts as strings such as
// "Cmd+F" or "Escape". An empty string disables the shortcut.
type HotkeysConfig struct {
	Hide         string `json:"hide"`
	NextPage     string `json:"nextPage"`
	PrevPage     string `json:"prevPage"`
	FirstPage    string `json:"firstPage"`
	LastPage     string `json:"lastPage"`
	Search       string `json:"search"`
	Rescan       string `json:"rescan"`
	RenameFolder string `json:"renameFolder"`
}

// Hotkey is one parsed shortcut: a key plus the exact modifier set.
type Hotkey struct {
	Key       key.Name
	Modifiers key.Modifiers
}

var modifierNames = map[string]key.Modifiers{
	"ctrl": key.ModCtrl, "control": key.ModCtrl,
	"shift": key.ModShift,
	"alt":   key.ModAlt, "option": key.ModAlt,
	"cmd": key.ModCommand, "command": key.ModCommand,
	"super": key.ModSuper, "meta": key.ModSuper, "win": key.ModSuper,
}

// modifierOrder is how String spells modifiers.
var modifierOrder = []struct {
	mod  key.Modifiers
	name string
}{
	{key.ModCtrl, "Ctrl"},
	{key.ModCommand, "Cmd"},
	{key.ModShift, "Shift"},
	{key.ModAlt, "Alt"},
	{key.ModSuper, "Super"},
}

var keyNames = map[string]key.Name{
	"up": key.NameUpArrow, "down": key.NameDownArrow,
	"left": key.NameLeftArrow, "right": key.NameRightArrow,
	"home": key.NameHome, "end": key.NameEnd,
	"pageup": key.NamePageUp, "pgup": key.NamePageUp,
	"pagedown": key.NamePageDown, "pgdn": key.NamePageDown,
	"enter": key.NameReturn, "return": key.NameReturn,
	"escape": key.NameEscape, "esc": key.NameEscape,
	"tab": key.NameTab, "space": key.NameSpace,
	"f1": key.NameF1, "f2": key.NameF2, "f3": key.NameF3, "f4": key.NameF4,
	"f5": key.NameF5, "f6": key.NameF6, "f7": key.NameF7, "f8": key.NameF8,
	"f9": key.NameF9, "f10": key.NameF10, "f11": key.NameF11, "f12": key.NameF12,
}

// ParseHotkey parses "Ctrl+Shift+N" style strings. Modifier and key names
// are case-insensitive; unknown names are taken as gio key names verbatim.
func ParseHotkey(s string) Hotkey {
	var h Hotkey
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		if mod, ok := modifierNames[strings.ToLower(part)]; ok {
			h.Modifiers |= mod
			continue
		}
		h.Key = parseKeyName(part)
	}
	if h.Key == "" {
		return Hotkey{}
	}
	return h
}

func parseKeyName(s string) key.Name {
	if len(s) == 1 {
		// Letter keys are reported upper case.
		return key.Name(strings.ToUpper(s))
	}
	if name, ok := keyNames[strings.ToLower(s)]; ok {
		return name
	}
	return key.Name(s)
}

// Matches reports whether k is this hotkey. Modifiers must match exactly so
// Cmd+Left and Cmd+Shift+Left stay distinct.
func (h Hotkey) Matches(k key.Event) bool {
	return h.Key != "" && k.Name == h.Key && k.Modifiers == h.Modifiers
}

func (h Hotkey) IsEmpty() bool {
	return h.Key == ""
}

func (h Hotkey) String() string {
	if h.Key == "" {
		return ""
	}
	var b strings.Builder
	for _, m := range modifierOrder {
		if h.Modifiers.Contain(m.mod) {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	b.WriteString(string(h.Key))
	return b.String()
}

// Filter returns the key.Filter delivering this hotkey to focus.
func (h Hotkey) Filter(focus event.Tag) key.Filter {
	return key.Filter{Focus: focus, Name: h.Key, Required: h.Modifiers}
}

// HotkeyMatcher holds the parsed launcher shortcuts.
type HotkeyMatcher struct {
	Hide         Hotkey
	NextPage     Hotkey
	PrevPage     Hotkey
	FirstPage    Hotkey
	LastPage     Hotkey
	Search       Hotkey
	Rescan       Hotkey
	RenameFolder Hotkey
}

func NewHotkeyMatcher(cfg HotkeysConfig) *HotkeyMatcher {
	return &HotkeyMatcher{
		Hide:         ParseHotkey(cfg.Hide),
		NextPage:     ParseHotkey(cfg.NextPage),
		PrevPage:     ParseHotkey(cfg.PrevPage),
		FirstPage:    ParseHotkey(cfg.FirstPage),
		LastPage:     ParseHotkey(cfg.LastPage),
		Search:       ParseHotkey(cfg.Search),
		Rescan:       ParseHotkey(cfg.Rescan),
		RenameFolder: ParseHotkey(cfg.RenameFolder),
	}
}

// All returns the configured hotkeys without duplicates, for registering
// key filters.
func (m *HotkeyMatcher) All() []Hotkey {
	seen := make(map[Hotkey]bool)
	var out []Hotkey
	for _, h := range []Hotkey{m.Hide, m.NextPage, m.PrevPage, m.FirstPage, m.LastPage, m.Search, m.Rescan, m.RenameFolder} {
		if h.IsEmpty() || seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}
