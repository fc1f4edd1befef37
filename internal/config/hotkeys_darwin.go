//go:build darwin

package config

// DefaultHotkeys returns the default keyboard shortcuts for macOS
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		Hide:         "Escape",
		NextPage:     "Cmd+Right",
		PrevPage:     "Cmd+Left",
		FirstPage:    "Cmd+Up",
		LastPage:     "Cmd+Down",
		Search:       "Cmd+F",
		Rescan:       "Cmd+R",
		RenameFolder: "Return",
	}
}
