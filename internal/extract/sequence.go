package extract

import (
	"sort"

	"pdfworker/internal/domain"
)

// BuildContentBlocks produces one positional block per paragraph, table, and
// image, ordered by (page, y_position). The append order before sorting is
// paragraphs, then tables, then images, and the sort is stable, which fixes
// the tie-break for elements sharing a position.
func BuildContentBlocks(paragraphs []domain.Paragraph, tables []domain.Table, images []domain.Image) []domain.ContentBlock {
	blocks := make([]domain.ContentBlock, 0, len(paragraphs)+len(tables)+len(images))

	for i := range paragraphs {
		blocks = append(blocks, domain.ContentBlock{
			Type:      domain.BlockTypeParagraph,
			Page:      paragraphs[i].PageNumber,
			YPosition: paragraphs[i].BoundingBox.YMin,
			ContentID: paragraphs[i].ID,
		})
	}
	for i := range tables {
		blocks = append(blocks, domain.ContentBlock{
			Type:      domain.BlockTypeTable,
			Page:      tables[i].PageNumber,
			YPosition: tables[i].BoundingBox.YMin,
			ContentID: tables[i].ID,
		})
	}
	for i := range images {
		blocks = append(blocks, domain.ContentBlock{
			Type:      domain.BlockTypeImage,
			Page:      images[i].PageNumber,
			YPosition: images[i].BoundingBox.YMin,
			ContentID: images[i].ID,
		})
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].Page != blocks[j].Page {
			return blocks[i].Page < blocks[j].Page
		}
		return blocks[i].YPosition < blocks[j].YPosition
	})

	return blocks
}
