// Package layout provides pure functions for aspect-fit dimension calculations.
package layout

// Fixed margins between the viewport edge and the art panel's content, per
// side of each axis. The viewable area is the viewport minus gap, border and
// padding on both sides.
const (
	HorizViewportGap = 6
	HorizBorderWidth = 1
	HorizPadding     = 2

	VertViewportGap = 3
	VertBorderWidth = 1
	VertPadding     = 1
)

const (
	horizMargin = (HorizViewportGap + HorizBorderWidth + HorizPadding) * 2
	vertMargin  = (VertViewportGap + VertBorderWidth + VertPadding) * 2
)

// ArtSize computes the character-cell dimensions for converted artwork so
// that its on-screen aspect ratio matches the source image as closely as
// integer cell counts allow. fontAspect is cell width over cell height in
// pixels, correcting for non-square terminal cells; imageAspect is pixel
// width over pixel height of the decoded image.
//
// When the image is wide relative to the viewable area, width is the
// limiting dimension and the full viewable width is used. Otherwise height
// limits, and the width follows from
//
//	rows = cols * fontAspect / imageAspect
//
// solved for cols at rows = viewable height. Results are clamped to at
// least one cell so a viewport smaller than the fixed margins cannot
// underflow.
func ArtSize(viewportWidth, viewportHeight int, fontAspect, imageAspect float64) (cols, rows int) {
	viewableWidth := max(viewportWidth-horizMargin, 1)
	viewableHeight := max(viewportHeight-vertMargin, 1)

	viewportAspect := float64(viewableWidth) * fontAspect / float64(viewableHeight)
	if imageAspect > viewportAspect {
		cols = viewableWidth
	} else {
		cols = max(int(float64(viewableHeight)*imageAspect/fontAspect), 1)
	}
	rows = max(int(float64(cols)*fontAspect/imageAspect), 1)
	return cols, rows
}

// MessageBox computes the outer panel size and vertical content padding for
// a single-line placeholder message. The panel is sized toward a visual
// square from the smaller viewport dimension, so the message sits in a
// balanced bordered box instead of a one-row sliver, and the padding
// centers the line vertically.
func MessageBox(viewportWidth, viewportHeight int, fontAspect float64) (width, height, vertPad int) {
	viewableWidth := max(viewportWidth-HorizViewportGap*2, 1)
	viewableHeight := max(viewportHeight-VertViewportGap*2, 1)

	viewportAspect := float64(viewableWidth) * fontAspect / float64(viewableHeight)
	if viewportAspect < 1.0 {
		// Taller than wide: width drives the square.
		width = viewableWidth
		height = max(int(float64(width)*fontAspect), 2*VertBorderWidth+1)
		vertPad = (height - 2*VertBorderWidth - 1) / 2
	} else {
		// Wider than tall: height drives the square.
		height = viewableHeight
		width = max(int(float64(height)/fontAspect), 1)
		vertPad = max(viewableHeight/2-VertBorderWidth-2, 0)
	}
	return width, height, vertPad
}

// Center returns the top-left position that centers a w x h box inside an
// outer area. Positions never go negative when the box is larger than the
// area.
func Center(outerWidth, outerHeight, width, height int) (x, y int) {
	return max((outerWidth-width)/2, 0), max((outerHeight-height)/2, 0)
}
