//go:build !darwin

package config

// DefaultHotkeys returns the default keyboard shortcuts for Windows/Linux
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		Hide:         "Escape",
		NextPage:     "PageDown",
		PrevPage:     "PageUp",
		FirstPage:    "Home",
		LastPage:     "End",
		Search:       "Ctrl+F",
		Rescan:       "F5",
		RenameFolder: "F2",
	}
}
