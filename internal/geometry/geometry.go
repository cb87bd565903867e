// Package geometry parses pattern geometry descriptors.
package geometry

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed is returned when a descriptor is missing a required field or
// carries an invalid value.
var ErrMalformed = errors.New("malformed geometry descriptor")

// Mode controls whether paths are filled or stroked.
type Mode string

const (
	ModeFill       Mode = "fill"
	ModeStroke     Mode = "stroke"
	ModeStrokeJoin Mode = "stroke-join"
)

// validModes is the set of recognized mode values.
var validModes = map[Mode]bool{
	ModeFill:       true,
	ModeStroke:     true,
	ModeStrokeJoin: true,
}

// Stroked reports whether paths in this mode are drawn as unfilled outlines.
func (m Mode) Stroked() bool {
	return m == ModeStroke || m == ModeStrokeJoin
}

// Descriptor is the parsed geometry of one tileable pattern.
type Descriptor struct {
	Path    []string
	Width   float64
	Height  float64
	VHeight float64
	Mode    Mode
	Spacing [2]float64
}

// document mirrors the persisted JSON layout. Pointers distinguish missing
// fields from zero values.
type document struct {
	Path    []string  `json:"path"`
	Width   *float64  `json:"width"`
	Height  *float64  `json:"height"`
	VHeight *float64  `json:"vHeight"`
	Mode    *Mode     `json:"mode"`
	Spacing []float64 `json:"spacing"`
}

// Parse decodes descriptor text. vHeight defaults to 0 and spacing to [0,0];
// every other field is required.
func Parse(data []byte) (*Descriptor, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if len(doc.Path) == 0 {
		return nil, fmt.Errorf("%w: path is required", ErrMalformed)
	}
	for i, p := range doc.Path {
		if p == "" {
			return nil, fmt.Errorf("%w: path[%d] is empty", ErrMalformed, i)
		}
	}
	if doc.Width == nil {
		return nil, fmt.Errorf("%w: width is required", ErrMalformed)
	}
	if doc.Height == nil {
		return nil, fmt.Errorf("%w: height is required", ErrMalformed)
	}
	if doc.Mode == nil {
		return nil, fmt.Errorf("%w: mode is required", ErrMalformed)
	}
	if !validModes[*doc.Mode] {
		return nil, fmt.Errorf("%w: invalid mode %q: must be one of fill, stroke, stroke-join", ErrMalformed, *doc.Mode)
	}

	d := &Descriptor{
		Path:   doc.Path,
		Width:  *doc.Width,
		Height: *doc.Height,
		Mode:   *doc.Mode,
	}
	if doc.VHeight != nil {
		d.VHeight = *doc.VHeight
	}
	if doc.Spacing != nil {
		if len(doc.Spacing) != 2 {
			return nil, fmt.Errorf("%w: spacing must have exactly 2 entries, got %d", ErrMalformed, len(doc.Spacing))
		}
		d.Spacing = [2]float64{doc.Spacing[0], doc.Spacing[1]}
	}
	return d, nil
}

// ParseString is Parse for descriptor text held as a string.
func ParseString(text string) (*Descriptor, error) {
	return Parse([]byte(text))
}
