package debug

import "testing"

func TestParseCategories(t *testing.T) {
	tests := []struct {
		spec string
		on   []Category
		off  []Category
	}{
		{"", []Category{APP, DRAG, WATCH}, []Category{UI_LAYOUT}},
		{"all", Categories, nil},
		{"none", nil, Categories},
		{" drag, Board ", []Category{DRAG, BOARD}, []Category{APP, UI_LAYOUT}},
		{"ui_layout", []Category{UI_LAYOUT}, []Category{UI}},
	}
	for _, tt := range tests {
		got := ParseCategories(tt.spec)
		for _, c := range tt.on {
			if !got[c] {
				t.Errorf("ParseCategories(%q)[%s] = false, want true", tt.spec, c)
			}
		}
		for _, c := range tt.off {
			if got[c] {
				t.Errorf("ParseCategories(%q)[%s] = true, want false", tt.spec, c)
			}
		}
	}
}
