package render

import (
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"pdfworker/internal/domain"
)

// Markdown renders the document model as Markdown by converting the HTML
// form. Headings, tables, and data-URI images survive the conversion.
func Markdown(model *domain.DocumentModel) (string, error) {
	return htmltomarkdown.ConvertString(HTML(model))
}
