package catalog

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// DesktopEntry holds the keys of a freedesktop .desktop file that the
// launcher cares about.
type DesktopEntry struct {
	Type      string
	Name      string
	Icon      string
	Exec      string
	NoDisplay bool
	Hidden    bool
}

// Launchable reports whether the entry describes an application that should
// appear in the grid.
func (e DesktopEntry) Launchable() bool {
	return e.Type == "Application" && !e.NoDisplay && !e.Hidden
}

// ParseDesktopEntry reads the [Desktop Entry] group from r. Localized keys
// such as Name[de] are ignored.
func ParseDesktopEntry(r io.Reader) (DesktopEntry, error) {
	var entry DesktopEntry
	inGroup := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inGroup = line == "[Desktop Entry]"
			continue
		}
		if !inGroup {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "Type":
			entry.Type = value
		case "Name":
			entry.Name = value
		case "Icon":
			entry.Icon = value
		case "Exec":
			entry.Exec = value
		case "NoDisplay":
			entry.NoDisplay = value == "true"
		case "Hidden":
			entry.Hidden = value == "true"
		}
	}
	return entry, scanner.Err()
}

// ReadDesktopEntry parses the .desktop file at path.
func ReadDesktopEntry(path string) (DesktopEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return DesktopEntry{}, err
	}
	defer f.Close()
	return ParseDesktopEntry(f)
}
