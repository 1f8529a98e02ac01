package extract

import (
	"math"

	"pdfworker/internal/domain"
)

const (
	// bodyWeightCap limits how much a single long paragraph can dominate the
	// body-size distribution.
	bodyWeightCap = 200

	defaultBodySize = 12.0
)

// ClassifyRoles assigns a semantic role to every paragraph in place based on
// font heuristics. It is a no-op on an empty slice and idempotent for a given
// pair of thresholds.
//
// Two passes: first the dominant body font size is detected from a
// length-weighted frequency distribution, then each paragraph is classified
// against the thresholds and the body size.
func ClassifyRoles(paragraphs []domain.Paragraph, titleThreshold, headingThreshold float64) {
	if len(paragraphs) == 0 {
		return
	}

	bodySize := detectBodyFontSize(paragraphs)

	for i := range paragraphs {
		paragraphs[i].Role = classifyOne(
			paragraphs[i].Font.Size,
			paragraphs[i].Font.Bold,
			bodySize,
			titleThreshold,
			headingThreshold,
		)
	}
}

// detectBodyFontSize finds the most frequent font size, weighting each
// paragraph by its content length so body text dominates. Sizes are rounded
// to one decimal. A frequency tie is broken toward the smallest size.
func detectBodyFontSize(paragraphs []domain.Paragraph) float64 {
	weights := make(map[float64]int)
	for i := range paragraphs {
		w := len(paragraphs[i].Content)
		if w > bodyWeightCap {
			w = bodyWeightCap
		}
		if w == 0 {
			continue
		}
		size := math.Round(paragraphs[i].Font.Size*10) / 10
		weights[size] += w
	}

	if len(weights) == 0 {
		return defaultBodySize
	}

	best := 0.0
	bestWeight := -1
	for size, w := range weights {
		if w > bestWeight || (w == bestWeight && size < best) {
			best = size
			bestWeight = w
		}
	}
	return best
}

func classifyOne(size float64, bold bool, bodySize, titleThreshold, headingThreshold float64) domain.ParagraphRole {
	if size >= titleThreshold {
		return domain.RoleTitle
	}
	if size >= bodySize*1.5 && bold {
		return domain.RoleTitle
	}
	if size >= headingThreshold {
		return domain.RoleSectionHeading
	}
	if bold && size > bodySize*1.1 {
		return domain.RoleSectionHeading
	}
	return domain.RoleNone
}
