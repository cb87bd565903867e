// Package assets embeds the geometry resources shipped with tilepat.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed patterns/*.json
var patterns embed.FS

// FS returns the embedded resource tree. Geometry for an identifier lives at
// patterns/<id>.json.
func FS() fs.FS {
	return patterns
}
