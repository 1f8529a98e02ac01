package render

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pdfworker/internal/domain"
)

func TestHTML_EmptyModel(t *testing.T) {
	out := HTML(&domain.DocumentModel{})
	assert.Equal(t, `<html><head><meta charset="utf-8"></head><body></body></html>`, out)
}

func TestHTML_ParagraphRoles(t *testing.T) {
	model := &domain.DocumentModel{
		Paragraphs: []domain.Paragraph{
			{ID: "para-0", Content: "Report Title", Role: domain.RoleTitle},
			{ID: "para-1", Content: "Background", Role: domain.RoleSectionHeading},
			{ID: "para-2", Content: "Body text."},
		},
		ContentBlocks: []domain.ContentBlock{
			{Type: domain.BlockTypeParagraph, ContentID: "para-0"},
			{Type: domain.BlockTypeParagraph, ContentID: "para-1"},
			{Type: domain.BlockTypeParagraph, ContentID: "para-2"},
		},
	}

	out := HTML(model)
	assert.Contains(t, out, "<h1>Report Title</h1>")
	assert.Contains(t, out, "<h2>Background</h2>")
	assert.Contains(t, out, "<p>Body text.</p>")
}

func TestHTML_EscapesOnce(t *testing.T) {
	model := &domain.DocumentModel{
		Paragraphs: []domain.Paragraph{
			{ID: "para-0", Content: `<h1>Hi</h1> & "quotes" 'here'`},
		},
		ContentBlocks: []domain.ContentBlock{
			{Type: domain.BlockTypeParagraph, ContentID: "para-0"},
		},
	}

	out := HTML(model)
	assert.Contains(t, out, "<p>&lt;h1&gt;Hi&lt;/h1&gt; &amp; &quot;quotes&quot; &#039;here&#039;</p>")
	assert.NotContains(t, out, "&amp;lt;")
	assert.NotContains(t, out, "&amp;amp;")
}

func TestHTML_UnresolvedBlockSkipped(t *testing.T) {
	model := &domain.DocumentModel{
		Paragraphs: []domain.Paragraph{
			{ID: "para-0", Content: "kept"},
		},
		ContentBlocks: []domain.ContentBlock{
			{Type: domain.BlockTypeParagraph, ContentID: "para-0"},
			{Type: domain.BlockTypeParagraph, ContentID: "para-missing"},
			{Type: domain.BlockTypeTable, ContentID: "table-missing"},
			{Type: domain.BlockTypeImage, ContentID: "img-missing"},
		},
	}

	out := HTML(model)
	assert.Equal(t, `<html><head><meta charset="utf-8"></head><body><p>kept</p></body></html>`, out)
}

func TestHTML_Table(t *testing.T) {
	model := &domain.DocumentModel{
		Tables: []domain.Table{
			{
				ID:      "table-0",
				Rows:    2,
				Columns: 2,
				Cells: []domain.Cell{
					{RowIndex: 0, ColumnIndex: 0, RowSpan: 1, ColumnSpan: 2, Content: "Header", Kind: domain.CellKindColumnHeader},
					{RowIndex: 1, ColumnIndex: 0, RowSpan: 1, ColumnSpan: 1, Content: "a < b"},
				},
			},
		},
		ContentBlocks: []domain.ContentBlock{
			{Type: domain.BlockTypeTable, ContentID: "table-0"},
		},
	}

	out := HTML(model)
	assert.Contains(t, out, `<table border="1" id="table-0"><tbody>`)
	// Header cell spans two columns; span attributes appear only when > 1.
	assert.Contains(t, out, `<th colspan="2">Header</th>`)
	assert.NotContains(t, out, `rowspan="1"`)
	assert.NotContains(t, out, `colspan="1"`)
	// Grid hole at (1,1) renders as an empty td.
	assert.Contains(t, out, "<tr><td>a &lt; b</td><td></td></tr>")
	assert.Contains(t, out, "</tbody></table>")
}

func TestHTML_TableCellOutsideGridDropped(t *testing.T) {
	model := &domain.DocumentModel{
		Tables: []domain.Table{
			{
				ID:      "table-0",
				Rows:    1,
				Columns: 1,
				Cells: []domain.Cell{
					{RowIndex: 0, ColumnIndex: 0, Content: "in"},
					{RowIndex: 5, ColumnIndex: 5, Content: "out"},
				},
			},
		},
		ContentBlocks: []domain.ContentBlock{
			{Type: domain.BlockTypeTable, ContentID: "table-0"},
		},
	}

	out := HTML(model)
	assert.Contains(t, out, "<td>in</td>")
	assert.NotContains(t, out, "out")
}

func TestHTML_Image(t *testing.T) {
	data := []byte{0x89, 0x50, 0x4e, 0x47}
	model := &domain.DocumentModel{
		Images: []domain.Image{
			{ID: "img-0", MimeType: "image/png", Data: data},
		},
		ContentBlocks: []domain.ContentBlock{
			{Type: domain.BlockTypeImage, ContentID: "img-0"},
		},
	}

	out := HTML(model)
	want := fmt.Sprintf(`<img src="data:image/png;base64,%s" />`, base64.StdEncoding.EncodeToString(data))
	assert.Contains(t, out, want)
}

func TestHTML_EmptyImageDataSkipped(t *testing.T) {
	model := &domain.DocumentModel{
		Images: []domain.Image{
			{ID: "img-0", MimeType: "image/png"},
		},
		ContentBlocks: []domain.ContentBlock{
			{Type: domain.BlockTypeImage, ContentID: "img-0"},
		},
	}

	out := HTML(model)
	assert.NotContains(t, out, "<img")
}

func TestHTML_BlockOrderPreserved(t *testing.T) {
	model := &domain.DocumentModel{
		Paragraphs: []domain.Paragraph{
			{ID: "para-0", Content: "first"},
			{ID: "para-1", Content: "second"},
		},
		ContentBlocks: []domain.ContentBlock{
			{Type: domain.BlockTypeParagraph, ContentID: "para-1"},
			{Type: domain.BlockTypeParagraph, ContentID: "para-0"},
		},
	}

	out := HTML(model)
	assert.Less(t, strings.Index(out, "second"), strings.Index(out, "first"))
}
