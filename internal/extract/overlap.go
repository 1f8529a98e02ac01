package extract

import (
	"math"

	"pdfworker/internal/domain"
)

// FilterTableOverlaps returns the paragraphs whose bounding box has no
// positive-area overlap with any table on the same page. Tables already carry
// the overlapping text as cells, so keeping both would duplicate content.
// Tables and images are never filtered.
func FilterTableOverlaps(paragraphs []domain.Paragraph, tables []domain.Table) []domain.Paragraph {
	if len(tables) == 0 {
		return paragraphs
	}

	filtered := make([]domain.Paragraph, 0, len(paragraphs))
	for i := range paragraphs {
		if !overlapsAnyTable(&paragraphs[i], tables) {
			filtered = append(filtered, paragraphs[i])
		}
	}
	return filtered
}

func overlapsAnyTable(p *domain.Paragraph, tables []domain.Table) bool {
	for t := range tables {
		if p.PageNumber != tables[t].PageNumber {
			continue
		}
		if boxesOverlap(p.BoundingBox, tables[t].BoundingBox) {
			return true
		}
	}
	return false
}

func boxesOverlap(a, b domain.BoundingBox) bool {
	overlapX := math.Max(0, math.Min(a.XMax, b.XMax)-math.Max(a.XMin, b.XMin))
	overlapY := math.Max(0, math.Min(a.YMax, b.YMax)-math.Max(a.YMin, b.YMin))
	return overlapX > 0 && overlapY > 0
}
