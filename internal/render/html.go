// Package render serializes the assembled document model into consumer
// formats. The HTML output mirrors the structure produced by the Azure
// Document Intelligence HTML conversion so downstream consumers see an
// identical shape regardless of which engine produced the model.
package render

import (
	"encoding/base64"
	"fmt"
	"strings"

	"pdfworker/internal/domain"
)

// escaper replaces the HTML-significant characters in a single pass, so an
// ampersand introduced by one substitution is never re-escaped by another.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// HTML renders the document model deterministically. Content blocks are
// walked in order; a block whose content_id resolves to nothing is skipped,
// never an error.
func HTML(model *domain.DocumentModel) string {
	paragraphs := make(map[string]*domain.Paragraph, len(model.Paragraphs))
	for i := range model.Paragraphs {
		paragraphs[model.Paragraphs[i].ID] = &model.Paragraphs[i]
	}
	tables := make(map[string]*domain.Table, len(model.Tables))
	for i := range model.Tables {
		tables[model.Tables[i].ID] = &model.Tables[i]
	}
	images := make(map[string]*domain.Image, len(model.Images))
	for i := range model.Images {
		images[model.Images[i].ID] = &model.Images[i]
	}

	var b strings.Builder
	b.WriteString(`<html><head><meta charset="utf-8"></head><body>`)

	for _, block := range model.ContentBlocks {
		switch block.Type {
		case domain.BlockTypeParagraph:
			if p, ok := paragraphs[block.ContentID]; ok {
				tag := roleTag(p.Role)
				fmt.Fprintf(&b, "<%s>%s</%s>", tag, escaper.Replace(p.Content), tag)
			}
		case domain.BlockTypeTable:
			if t, ok := tables[block.ContentID]; ok {
				writeTable(&b, t)
			}
		case domain.BlockTypeImage:
			if img, ok := images[block.ContentID]; ok && len(img.Data) > 0 {
				fmt.Fprintf(&b, `<img src="data:%s;base64,%s" />`,
					img.MimeType, base64.StdEncoding.EncodeToString(img.Data))
			}
		}
	}

	b.WriteString("</body></html>")
	return b.String()
}

func roleTag(role domain.ParagraphRole) string {
	switch role {
	case domain.RoleTitle:
		return "h1"
	case domain.RoleSectionHeading:
		return "h2"
	default:
		return "p"
	}
}

func writeTable(b *strings.Builder, t *domain.Table) {
	fmt.Fprintf(b, `<table border="1" id="%s"><tbody>`, t.ID)

	// Place cells on a rows×columns grid; positions outside it are dropped.
	grid := make([][]*domain.Cell, t.Rows)
	for r := range grid {
		grid[r] = make([]*domain.Cell, t.Columns)
	}
	for i := range t.Cells {
		c := &t.Cells[i]
		if c.RowIndex >= 0 && c.RowIndex < t.Rows && c.ColumnIndex >= 0 && c.ColumnIndex < t.Columns {
			grid[c.RowIndex][c.ColumnIndex] = c
		}
	}

	for _, row := range grid {
		b.WriteString("<tr>")
		for _, cell := range row {
			if cell == nil {
				b.WriteString("<td></td>")
				continue
			}
			tag := "td"
			if cell.Kind == domain.CellKindColumnHeader {
				tag = "th"
			}
			var spans string
			if cell.ColumnSpan > 1 {
				spans += fmt.Sprintf(` colspan="%d"`, cell.ColumnSpan)
			}
			if cell.RowSpan > 1 {
				spans += fmt.Sprintf(` rowspan="%d"`, cell.RowSpan)
			}
			fmt.Fprintf(b, "<%s%s>%s</%s>", tag, spans, escaper.Replace(cell.Content), tag)
		}
		b.WriteString("</tr>")
	}

	b.WriteString("</tbody></table>")
}
