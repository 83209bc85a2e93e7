// Package ascii renders decoded images as colorized character rows.
package ascii

import (
	"fmt"
	"image"
	"strings"

	"github.com/qeesung/image2ascii/convert"
)

// Converter wraps the image2ascii converter behind the pipeline's Converter
// contract. Safe to reuse across conversions; each call is independent.
type Converter struct {
	conv *convert.ImageConverter
}

// New returns a ready converter.
func New() *Converter {
	return &Converter{conv: convert.NewImageConverter()}
}

// Convert renders img into exactly rows lines of cols colored characters.
// Sizing decisions belong to the caller; terminal-fitting is disabled so the
// output matches the requested cell grid.
func (c *Converter) Convert(img image.Image, cols, rows int) ([]string, error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("invalid target size %dx%d", cols, rows)
	}

	opts := convert.DefaultOptions
	opts.FixedWidth = cols
	opts.FixedHeight = rows
	opts.FitScreen = false
	opts.StretchedScreen = false
	opts.Colored = true

	out := c.conv.Image2ASCIIString(img, &opts)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) == 0 || lines[0] == "" && len(lines) == 1 {
		return nil, fmt.Errorf("converter produced no output for %dx%d image", cols, rows)
	}
	return lines, nil
}
