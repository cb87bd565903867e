// Package synth turns pattern geometry and a colour palette into a tileable
// SVG background.
package synth

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/ziadkadry99/tilepat/internal/geometry"
)

// Options are the rendering parameters that are not part of the geometry.
type Options struct {
	Scale       float64 `json:"scale" yaml:"scale" koanf:"scale"`
	Angle       float64 `json:"angle" yaml:"angle" koanf:"angle"`
	StrokeWidth float64 `json:"stroke_width" yaml:"stroke_width" koanf:"stroke_width"`
	// Join selects round joins and caps for stroke-join geometry when 2;
	// any other value gives square caps.
	Join     int     `json:"join" yaml:"join" koanf:"join"`
	MoveLeft float64 `json:"move_left" yaml:"move_left" koanf:"move_left"`
	MoveUp   float64 `json:"move_up" yaml:"move_up" koanf:"move_up"`
}

// DefaultOptions returns the parameters used for catalog backgrounds.
func DefaultOptions() Options {
	return Options{
		Scale:       1,
		Angle:       0,
		StrokeWidth: 1,
		Join:        1,
	}
}

// JoinRound is the Join value that selects round joins and caps.
const JoinRound = 2

// fallbackColor is used when the palette has no colour at all.
const fallbackColor = "currentColor"

// colorKey identifies a (colorCounts, maxColors, path index) combination.
type colorKey struct {
	colorCounts int
	maxColors   int
	index       int
}

// firstColorOverrides lists the combinations that render with the first
// palette colour instead of their own slot.
var firstColorOverrides = map[colorKey]bool{
	{colorCounts: 3, maxColors: 4, index: 2}: true,
	{colorCounts: 4, maxColors: 5, index: 3}: true,
	{colorCounts: 3, maxColors: 5, index: 3}: true,
	{colorCounts: 3, maxColors: 5, index: 2}: true,
}

// layout holds the quantities derived from a descriptor and palette.
type layout struct {
	colors      []string // colors[0] is a reserved placeholder and never drawn
	maxColors   int
	colorCounts int
	vHeight     float64
}

func newLayout(d *geometry.Descriptor, palette []string) layout {
	colors := make([]string, 0, len(palette)+1)
	colors = append(colors, "")
	colors = append(colors, palette...)
	return layout{
		colors:      colors,
		maxColors:   len(d.Path) + 1,
		colorCounts: len(palette) + 1,
		vHeight:     d.VHeight,
	}
}

// unbanded reports whether the geometry has no vertical banding and more
// than one path.
func (l layout) unbanded() bool {
	return l.vHeight == 0 && l.maxColors > 2
}

// first returns the first real palette colour.
func (l layout) first() string {
	if len(l.colors) > 1 {
		return l.colors[1]
	}
	return fallbackColor
}

// colorFor returns the colour of path i.
func (l layout) colorFor(i int) string {
	if l.unbanded() {
		if l.colorCounts == 2 || firstColorOverrides[colorKey{l.colorCounts, l.maxColors, i}] {
			return l.first()
		}
	}
	if i+1 < len(l.colors) {
		return l.colors[i+1]
	}
	return l.first()
}

// pathCount returns how many paths are drawn.
func (l layout) pathCount(paths int) int {
	n := l.colorCounts
	if l.unbanded() {
		n = l.maxColors - 1
	}
	return min(paths, n)
}

// tileSize returns the width and height of one pattern tile.
func (l layout) tileSize(d *geometry.Descriptor) (float64, float64) {
	w := d.Width + d.Spacing[0]
	h := d.Height - l.vHeight*float64(l.maxColors-l.colorCounts) + d.Spacing[1]
	return w, h
}

// Render returns a minimal SVG document tiling the geometry across a covering
// rectangle. d must have at least one path.
func Render(d *geometry.Descriptor, palette []string, opts Options) string {
	l := newLayout(d, palette)
	w, h := l.tileSize(d)

	var b strings.Builder
	b.WriteString("<svg xmlns='http://www.w3.org/2000/svg' width='100%' height='100%'>")
	b.WriteString("<defs><pattern id='a' patternUnits='userSpaceOnUse'")
	b.WriteString(" width='" + num(w) + "' height='" + num(h) + "'")
	b.WriteString(" patternTransform='scale(" + num(opts.Scale) + ") rotate(" + num(opts.Angle) + ")'>")
	for i := range l.pathCount(len(d.Path)) {
		writePath(&b, d, i, l.colorFor(i), opts)
	}
	b.WriteString("</pattern></defs>")
	b.WriteString("<rect width='800%' height='800%'")
	b.WriteString(" transform='translate(" + num(opts.Scale*opts.MoveLeft) + "," + num(opts.Scale*opts.MoveUp) + ")'")
	b.WriteString(" fill='url(#a)'/></svg>")
	return b.String()
}

func writePath(b *strings.Builder, d *geometry.Descriptor, i int, color string, opts Options) {
	b.WriteString("<path d='")
	escape(b, d.Path[i])
	b.WriteString("'")
	if shift := d.Spacing[0] / 2; shift != 0 {
		b.WriteString(" transform='translate(" + num(shift) + ",0)'")
	}
	if d.Mode == geometry.ModeStrokeJoin {
		if opts.Join == JoinRound {
			b.WriteString(" stroke-linejoin='round' stroke-linecap='round'")
		} else {
			b.WriteString(" stroke-linecap='square'")
		}
	}
	b.WriteString(" stroke-width='" + num(opts.StrokeWidth) + "'")
	if d.Mode.Stroked() {
		b.WriteString(" stroke='")
		escape(b, color)
		b.WriteString("' fill='none'/>")
	} else {
		b.WriteString(" stroke='none' fill='")
		escape(b, color)
		b.WriteString("'/>")
	}
}

func escape(b *strings.Builder, s string) {
	// strings.Builder writes never fail.
	_ = xml.EscapeText(b, []byte(s))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Background renders the geometry and returns it as a CSS url() value.
func Background(d *geometry.Descriptor, palette []string, opts Options) string {
	return DataURL(Render(d, palette, opts))
}
