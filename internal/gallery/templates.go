package gallery

// DefaultIntro is the markdown shown above the tiles.
const DefaultIntro = "# Pattern gallery\n\n" +
	"Every tile below is a repeating SVG background. Click a tile to open the raw SVG.\n\n" +
	"Use a pattern from the API as a CSS background:\n\n" +
	"```css\n" +
	".hero {\n" +
	"  background-image: url(\"data:image/svg+xml;utf8,...\");\n" +
	"}\n" +
	"```\n"

// pageTemplate is the html/template for index.html.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; margin: 0; color: #1a202c; }
    header { padding: 2rem 2rem 1rem; max-width: 960px; }
    .palette { display: flex; gap: .5rem; margin-top: 1rem; }
    .swatch { width: 1.5rem; height: 1.5rem; border-radius: 4px; border: 1px solid #cbd5e0; }
    .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(200px, 1fr)); gap: 1rem; padding: 1rem 2rem 2rem; }
    .tile { display: block; border-radius: 8px; overflow: hidden; border: 1px solid #e2e8f0; color: inherit; text-decoration: none; }
    .preview { height: 140px; }
    .label { padding: .5rem .75rem; font-size: .875rem; }
    .label code { color: #718096; font-size: .75rem; }
    pre { padding: 1rem; border-radius: 6px; overflow-x: auto; }
  </style>
</head>
<body>
  <header>
    {{.Intro}}
    <div class="palette">
      {{range .Palette}}<span class="swatch" title="{{.}}" style="background-color: {{.}}"></span>{{end}}
    </div>
  </header>
  <main class="grid">
    {{range .Tiles}}
    <a class="tile" id="{{.ID}}" href="{{.File}}">
      <div class="preview" style="background-image: {{.Background}}"></div>
      <div class="label">{{.Title}}<br><code>{{.ID}}</code></div>
    </a>
    {{end}}
  </main>
</body>
</html>
`
