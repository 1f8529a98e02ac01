package pdfengine

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"pdfworker/internal/domain"
	"pdfworker/internal/port"
)

const (
	// rowTolerance is the Y distance (points) within which fragments belong
	// to the same visual line.
	rowTolerance = 3.0

	// wordSpaceMultiplier of the font size: horizontal gaps wider than this
	// are word boundaries.
	wordSpaceMultiplier = 0.3

	// blockGapMultiplier of the font size: vertical gaps wider than this
	// split consecutive lines into separate blocks.
	blockGapMultiplier = 1.8
)

type row struct {
	y     float64 // baseline, PDF bottom-up coordinates
	chars []pdf.Text
}

// buildBlocks groups raw text fragments into lines and lines into blocks,
// converting from the PDF's bottom-up coordinates into the top-down page
// space the document model uses.
func buildBlocks(texts []pdf.Text, pageHeight float64) []port.TextBlock {
	chars := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		chars = append(chars, t)
	}
	if len(chars) == 0 {
		return nil
	}

	rows := groupRows(chars)

	var blocks []port.TextBlock
	var current []row
	for i, r := range rows {
		if i > 0 {
			gap := rows[i-1].y - r.y
			if gap > blockGapMultiplier*maxFontSize(rows[i-1].chars) {
				blocks = append(blocks, buildBlock(current, pageHeight))
				current = nil
			}
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		blocks = append(blocks, buildBlock(current, pageHeight))
	}
	return blocks
}

// groupRows clusters fragments into visual lines, top of the page first.
func groupRows(chars []pdf.Text) []row {
	sort.SliceStable(chars, func(i, j int) bool {
		if chars[i].Y != chars[j].Y {
			return chars[i].Y > chars[j].Y
		}
		return chars[i].X < chars[j].X
	})

	var rows []row
	for _, c := range chars {
		if len(rows) > 0 && rows[len(rows)-1].y-c.Y <= rowTolerance {
			rows[len(rows)-1].chars = append(rows[len(rows)-1].chars, c)
			continue
		}
		rows = append(rows, row{y: c.Y, chars: []pdf.Text{c}})
	}

	for i := range rows {
		sort.SliceStable(rows[i].chars, func(a, b int) bool {
			return rows[i].chars[a].X < rows[i].chars[b].X
		})
	}
	return rows
}

func buildBlock(rows []row, pageHeight float64) port.TextBlock {
	block := port.TextBlock{
		BBox: domain.BoundingBox{XMin: 1e18, YMin: 1e18, XMax: -1e18, YMax: -1e18},
	}

	for _, r := range rows {
		block.Lines = append(block.Lines, buildLine(r.chars))
		for _, c := range r.chars {
			top := pageHeight - c.Y - c.FontSize
			bottom := pageHeight - c.Y
			if c.X < block.BBox.XMin {
				block.BBox.XMin = c.X
			}
			if c.X+c.W > block.BBox.XMax {
				block.BBox.XMax = c.X + c.W
			}
			if top < block.BBox.YMin {
				block.BBox.YMin = top
			}
			if bottom > block.BBox.YMax {
				block.BBox.YMax = bottom
			}
		}
	}
	return block
}

// buildLine merges ordered fragments into spans. A new span starts whenever
// the font face or size changes; a gap wider than the word-space threshold
// becomes a single space inside the span.
func buildLine(chars []pdf.Text) port.TextLine {
	var line port.TextLine
	var span *port.TextSpan
	var text strings.Builder
	prevEnd := 0.0

	flush := func() {
		if span != nil {
			span.Text = text.String()
			line.Spans = append(line.Spans, *span)
			span = nil
			text.Reset()
		}
	}

	for _, c := range chars {
		if span == nil || span.FontName != c.Font || span.Size != c.FontSize {
			flush()
			span = &port.TextSpan{
				FontName: c.Font,
				Size:     c.FontSize,
				Flags:    fontFlags(c.Font),
			}
		} else if c.X-prevEnd > wordSpaceMultiplier*c.FontSize {
			text.WriteByte(' ')
		}
		text.WriteString(c.S)
		prevEnd = c.X + c.W
	}
	flush()
	return line
}

// fontFlags maps font-name conventions onto the span flag bits. The text
// layer exposes no style bits directly, so bold is inferred from the face
// name, which is how subset fonts like "ABCDEE+Arial-BoldMT" advertise it.
func fontFlags(fontName string) int {
	if strings.Contains(fontName, "Bold") || strings.Contains(fontName, "Black") {
		return port.SpanFlagBold
	}
	return 0
}

func maxFontSize(chars []pdf.Text) float64 {
	max := 0.0
	for _, c := range chars {
		if c.FontSize > max {
			max = c.FontSize
		}
	}
	if max == 0 {
		max = 12
	}
	return max
}
