package synth

import (
	"regexp"
	"strings"
)

var (
	interTagSpace = regexp.MustCompile(`>\s+<`)
	spaceRun      = regexp.MustCompile(`\s+`)
)

// Minify collapses whitespace between tags and squeezes the remaining runs
// of whitespace to single spaces.
func Minify(svg string) string {
	svg = interTagSpace.ReplaceAllString(svg, "><")
	svg = spaceRun.ReplaceAllString(svg, " ")
	return strings.TrimSpace(svg)
}

// encoder escapes the characters that are unsafe inside a CSS data URI.
// strings.Replacer makes a single pass, so "%" is never encoded twice.
var encoder = strings.NewReplacer(
	"%", "%25",
	"#", "%23",
	"<", "%3C",
	">", "%3E",
	"&", "%26",
	`"`, "%22",
	"'", "%27",
)

// Encode minifies svg and percent-encodes it for embedding in a data URI.
func Encode(svg string) string {
	return encoder.Replace(Minify(svg))
}

// DataURLPrefix starts every value returned by DataURL.
const DataURLPrefix = `url("data:image/svg+xml;utf8,`

// DataURL wraps svg in a CSS url() value usable as background-image.
func DataURL(svg string) string {
	return DataURLPrefix + Encode(svg) + `")`
}
