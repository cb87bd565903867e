// Package palette parses and normalises caller-supplied colour lists.
package palette

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidColor is returned for a colour that is not a hex RGB value.
var ErrInvalidColor = errors.New("invalid color")

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Normalize returns c as a lower-case "#rrggbb" or "#rgb" string.
func Normalize(c string) (string, error) {
	c = strings.TrimSpace(c)
	m := hexColor.FindStringSubmatch(c)
	if m == nil {
		return "", fmt.Errorf("%w %q: want #rgb or #rrggbb", ErrInvalidColor, c)
	}
	return "#" + strings.ToLower(m[1]), nil
}

// Parse splits a comma separated colour list and normalises each entry.
// Blank input returns fallback.
func Parse(list string, fallback []string) ([]string, error) {
	var colors []string
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := Normalize(part)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	if len(colors) == 0 {
		return fallback, nil
	}
	return colors, nil
}

// FromSlice normalises every colour in colors, for lists that arrive already
// split (repeated query parameters, YAML sequences).
func FromSlice(colors []string) ([]string, error) {
	out := make([]string, 0, len(colors))
	for _, c := range colors {
		n, err := Normalize(c)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
