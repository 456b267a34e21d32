// Package templates holds the templ components of the web GUI. The
// components are built programmatically with templ.ComponentFunc and stream
// straight to the response writer.
package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// esc escapes text for safe interpolation into HTML.
func esc(s string) string {
	return html.EscapeString(s)
}

// Layout wraps content in the full HTML page scaffolding.
func Layout(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="color-scheme" content="light">
<title>%s</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body>
<main class="container">
`, esc(title))
		if err != nil {
			return err
		}

		if err := content.Render(ctx, w); err != nil {
			return err
		}

		_, err = io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}
