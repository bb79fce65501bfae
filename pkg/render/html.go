package render

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/artem13815/cvbuilder/pkg/resume"
)

//go:embed template.html
var resumeTemplate string

var tpl = template.Must(template.New("resume").Parse(resumeTemplate))

// Веб-безопасные семейства, на которые headless Chrome всегда способен.
// Всё остальное отклоняем до запуска рендера, чтобы отказ был адресным.
var supportedFonts = map[string]struct{}{
	"Roboto":          {},
	"Open Sans":       {},
	"Lato":            {},
	"Montserrat":      {},
	"Arial":           {},
	"Georgia":         {},
	"Times New Roman": {},
	"Courier New":     {},
}

// RenderHTML превращает документ в готовую HTML-страницу для печати.
func RenderHTML(d resume.Document) (string, error) {
	if _, ok := supportedFonts[d.Settings.FontFamily]; !ok {
		return "", UnsupportedFontError(d.Settings.FontFamily)
	}
	var buf bytes.Buffer
	data := map[string]any{
		"Profile":  d.Profile,
		"Settings": d.Settings,
		"Title":    d.Title,
	}
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
