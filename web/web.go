// Package web embeds the HTML templates served by the upload page.
package web

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html
var templateFS embed.FS

func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"humanBytes": func(n int64) string {
			if n < 0 {
				n = 0
			}
			return humanize.Bytes(uint64(n))
		},
		"pngDataURI": func(data []byte) template.URL {
			return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data))
		},
		"confidence": func(c float64) string {
			return fmt.Sprintf("%.4f", c)
		},
	}
}
