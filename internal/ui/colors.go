package ui

import "image/color"

// Theme colors - these are variables so they can be modified for light mode
var (
	colBackground   = color.NRGBA{R: 24, G: 28, B: 38, A: 255}
	colLabel        = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colLabelShadow  = color.NRGBA{R: 0, G: 0, B: 0, A: 120}
	colDot          = color.NRGBA{R: 255, G: 255, B: 255, A: 90}
	colDotActive    = color.NRGBA{R: 255, G: 255, B: 255, A: 230}
	colBackdrop     = color.NRGBA{R: 0, G: 0, B: 0, A: 140}
	colPanel        = color.NRGBA{R: 70, G: 74, B: 88, A: 235}
	colFolderTarget = color.NRGBA{R: 255, G: 255, B: 255, A: 70}
	colSearchBg     = color.NRGBA{R: 255, G: 255, B: 255, A: 40}
	colPlaceholder  = color.NRGBA{R: 120, G: 120, B: 130, A: 255}
	// Config error banner colors
	colErrorBannerBg   = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
	colErrorBannerText = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// useLightColors switches the palette for the light theme.
func useLightColors() {
	colBackground = color.NRGBA{R: 236, G: 238, B: 242, A: 255}
	colLabel = color.NRGBA{R: 20, G: 20, B: 24, A: 255}
	colLabelShadow = color.NRGBA{A: 0}
	colDot = color.NRGBA{R: 0, G: 0, B: 0, A: 70}
	colDotActive = color.NRGBA{R: 0, G: 0, B: 0, A: 200}
	colPanel = color.NRGBA{R: 250, G: 250, B: 252, A: 240}
	colFolderTarget = color.NRGBA{R: 0, G: 0, B: 0, A: 40}
	colSearchBg = color.NRGBA{R: 0, G: 0, B: 0, A: 25}
}
