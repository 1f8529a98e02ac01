package extract

import (
	"strings"

	"pdfworker/internal/domain"
)

// Assemble composes the final document model from classified paragraphs,
// tables, and images. Paragraphs whose region is covered by a table are
// dropped first.
//
// FullText is the newline join of the retained paragraphs in their original
// extraction order, not in content-block order: when source order and
// geometric order diverge, readability of the flat text favors source order.
// Pages is the caller-supplied total and is never recomputed.
func Assemble(paragraphs []domain.Paragraph, tables []domain.Table, images []domain.Image, totalPages int, modelUsed string) domain.DocumentModel {
	filtered := FilterTableOverlaps(paragraphs, tables)

	parts := make([]string, len(filtered))
	for i := range filtered {
		parts[i] = filtered[i].Content
	}

	if filtered == nil {
		filtered = []domain.Paragraph{}
	}
	if tables == nil {
		tables = []domain.Table{}
	}
	if images == nil {
		images = []domain.Image{}
	}

	return domain.DocumentModel{
		ModelUsed:     modelUsed,
		Pages:         totalPages,
		Paragraphs:    filtered,
		Tables:        tables,
		Images:        images,
		FullText:      strings.Join(parts, "\n"),
		ContentBlocks: BuildContentBlocks(filtered, tables, images),
	}
}
