package catalog

// Families is the built-in catalog. Every identifier it expands to must have
// a geometry resource under internal/assets/patterns.
var Families = []Family{
	{Base: "polka-dots"},
	{Base: "chevron", Suffixes: []Suffix{Range(1, 3)}},
	{Base: "waves", Suffixes: []Suffix{Range(1, 3)}},
	{Base: "diagonal-stripes", Suffixes: []Suffix{Range(1, 2)}},
	{Base: "squares-and-circles", Suffixes: []Suffix{Range(1, 2)}},
	{Base: "hexagons", Suffixes: []Suffix{Num(1), Tok("alt")}},
	{Base: "zigzag", Suffixes: []Suffix{Range(1, 2), Num(4)}},
	{Base: "checkerboard"},
	{Base: "triangles", Suffixes: []Suffix{Range(1, 2)}},
	{Base: "bricks"},
	{Base: "plus-signs", Suffixes: []Suffix{Range(1, 2)}},
	{Base: "scales", Suffixes: []Suffix{Tok("wide")}},
	{Base: "herringbone"},
	{Base: "crosshatch", Suffixes: []Suffix{Range(1, 2)}},
	{Base: "stacked-bands", Suffixes: []Suffix{Range(1, 2)}},
}
