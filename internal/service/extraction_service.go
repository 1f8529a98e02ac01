package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"pdfworker/internal/config"
	"pdfworker/internal/csvexport"
	"pdfworker/internal/domain"
	"pdfworker/internal/extract"
	"pdfworker/internal/port"
	"pdfworker/internal/render"
)

// Output formats accepted by ExtractOptions.OutputFormat.
const (
	FormatJSON     = "json"
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

// ExtractOptions are the caller-supplied knobs for one extraction.
type ExtractOptions struct {
	// OutputFormat selects json (default), html, markdown, or csv.
	OutputFormat string

	// Pages is an optional 1-indexed selection like "1,3,5-10". Empty means
	// every page. Selected pages beyond the document are silently skipped.
	Pages string

	// IncludeImages embeds images into the document model.
	IncludeImages bool
}

// ExtractInput is the DTO for extraction requests.
type ExtractInput struct {
	Data    []byte
	Options ExtractOptions
}

// ExtractOutput carries the serialized document model plus processing
// metadata.
type ExtractOutput struct {
	Body     []byte
	Format   string
	Metadata map[string]string
}

// ExtractionService turns a PDF into an ordered document model and
// serializes it.
type ExtractionService interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}

type extractionService struct {
	engine port.Engine
	cfg    *config.ExtractionConfig
}

// NewExtractionService creates an ExtractionService backed by the given
// engine.
func NewExtractionService(engine port.Engine, cfg *config.ExtractionConfig) ExtractionService {
	return &extractionService{engine: engine, cfg: cfg}
}

func (s *extractionService) Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error) {
	doc, err := s.engine.Open(input.Data)
	if err != nil {
		return nil, err
	}
	defer func() { _ = doc.Close() }()

	totalPages := doc.PageCount()

	pageNumbers := make([]int, 0, totalPages)
	if input.Options.Pages != "" {
		pageNumbers, err = extract.ParsePageRange(input.Options.Pages)
		if err != nil {
			return nil, err
		}
	} else {
		for n := 1; n <= totalPages; n++ {
			pageNumbers = append(pageNumbers, n)
		}
	}

	var (
		paragraphs []domain.Paragraph
		tables     []domain.Table
		images     []domain.Image

		paraCounter, tableCounter, imgCounter int
		pagesProcessed                        int
	)

	for _, pageNum := range pageNumbers {
		if pageNum < 1 || pageNum > totalPages {
			continue
		}
		pagesProcessed++

		content, err := doc.Page(pageNum, input.Options.IncludeImages)
		if err != nil {
			log.Printf("extractionService: skipping page %d: %v", pageNum, err)
			continue
		}

		for _, block := range content.Blocks {
			if p, ok := paragraphFromBlock(block, pageNum, paraCounter); ok {
				paragraphs = append(paragraphs, p)
				paraCounter++
			}
		}
		for _, grid := range content.Tables {
			if t, ok := tableFromGrid(grid, pageNum, tableCounter); ok {
				tables = append(tables, t)
				tableCounter++
			}
		}
		for _, obj := range content.Images {
			images = append(images, imageFromObject(obj, pageNum, imgCounter))
			imgCounter++
		}
	}

	extract.ClassifyRoles(paragraphs, s.cfg.TitleFontSizeThreshold, s.cfg.HeadingFontSizeThreshold)

	// With an explicit selection the model reports the selected page count,
	// not the document total.
	pages := totalPages
	if input.Options.Pages != "" {
		pages = len(pageNumbers)
	}

	model := extract.Assemble(paragraphs, tables, images, pages, s.engine.Name())

	body, format, err := serialize(&model, input.Options.OutputFormat)
	if err != nil {
		return nil, err
	}

	log.Printf("extractionService: processed %d pages, %d paragraphs, %d tables, %d images",
		pagesProcessed, len(paragraphs), len(tables), len(images))

	return &ExtractOutput{
		Body:   body,
		Format: format,
		Metadata: map[string]string{
			"pages_processed":  strconv.Itoa(pagesProcessed),
			"total_paragraphs": strconv.Itoa(len(paragraphs)),
			"total_tables":     strconv.Itoa(len(tables)),
			"model_used":       s.engine.Name(),
		},
	}, nil
}

func serialize(model *domain.DocumentModel, format string) ([]byte, string, error) {
	switch format {
	case FormatHTML:
		return []byte(render.HTML(model)), FormatHTML, nil
	case FormatMarkdown:
		md, err := render.Markdown(model)
		if err != nil {
			return nil, "", fmt.Errorf("rendering markdown: %w", err)
		}
		return []byte(md), FormatMarkdown, nil
	case FormatCSV:
		var buf bytes.Buffer
		buf.Write(csvexport.BOM)
		w := csvexport.NewWriter(&buf)
		if err := w.WriteTables(model.Tables); err != nil {
			return nil, "", fmt.Errorf("writing table csv: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, "", fmt.Errorf("writing table csv: %w", err)
		}
		return buf.Bytes(), FormatCSV, nil
	default:
		body, err := json.MarshalIndent(model, "", "  ")
		if err != nil {
			return nil, "", fmt.Errorf("marshaling document model: %w", err)
		}
		return body, FormatJSON, nil
	}
}

// paragraphFromBlock flattens a text block into one paragraph: lines joined
// by newline, spans within a line joined by a space, font size averaged over
// the spans and rounded to one decimal, primary font name by span frequency,
// bold when any span is bold.
func paragraphFromBlock(block port.TextBlock, pageNum, counter int) (domain.Paragraph, bool) {
	var (
		lineTexts  []string
		sizeSum    float64
		spanCount  int
		fontCounts = make(map[string]int)
		fontOrder  []string
		bold       bool
	)

	for _, line := range block.Lines {
		var spanTexts []string
		for _, span := range line.Spans {
			if trimmed := strings.TrimSpace(span.Text); trimmed == "" {
				continue
			}
			spanTexts = append(spanTexts, span.Text)
			sizeSum += span.Size
			spanCount++
			if _, seen := fontCounts[span.FontName]; !seen {
				fontOrder = append(fontOrder, span.FontName)
			}
			fontCounts[span.FontName]++
			if span.Flags&port.SpanFlagBold != 0 {
				bold = true
			}
		}
		if len(spanTexts) > 0 {
			lineTexts = append(lineTexts, strings.Join(spanTexts, " "))
		}
	}

	content := strings.TrimSpace(strings.Join(lineTexts, "\n"))
	if content == "" {
		return domain.Paragraph{}, false
	}

	avgSize := 12.0
	if spanCount > 0 {
		avgSize = math.Round(sizeSum/float64(spanCount)*10) / 10
	}

	primaryFont := ""
	bestCount := 0
	for _, name := range fontOrder {
		if fontCounts[name] > bestCount {
			primaryFont = name
			bestCount = fontCounts[name]
		}
	}

	return domain.Paragraph{
		ID:          fmt.Sprintf("para-%d", counter),
		Content:     content,
		PageNumber:  pageNum,
		BoundingBox: block.BBox,
		Font: domain.Font{
			Name: primaryFont,
			Size: avgSize,
			Bold: bold,
		},
	}, true
}

// tableFromGrid converts a detected row-major grid into a table. Row 0 is
// the header row; the engine reports no merged cells, so spans are always 1.
func tableFromGrid(grid port.TableGrid, pageNum, counter int) (domain.Table, bool) {
	if len(grid.Cells) == 0 {
		return domain.Table{}, false
	}

	columns := 0
	for _, row := range grid.Cells {
		if len(row) > columns {
			columns = len(row)
		}
	}

	var cells []domain.Cell
	for rowIdx, row := range grid.Cells {
		for colIdx, cell := range row {
			kind := domain.CellKindContent
			if rowIdx == 0 {
				kind = domain.CellKindColumnHeader
			}
			content := ""
			if cell != nil {
				content = *cell
			}
			cells = append(cells, domain.Cell{
				RowIndex:    rowIdx,
				ColumnIndex: colIdx,
				RowSpan:     1,
				ColumnSpan:  1,
				Content:     content,
				Kind:        kind,
			})
		}
	}

	return domain.Table{
		ID:          fmt.Sprintf("table-%d", counter),
		PageNumber:  pageNum,
		Rows:        len(grid.Cells),
		Columns:     columns,
		Cells:       cells,
		BoundingBox: grid.BBox,
	}, true
}

func imageFromObject(obj port.ImageObject, pageNum, counter int) domain.Image {
	var bbox domain.BoundingBox
	if len(obj.Rects) > 0 {
		bbox = obj.Rects[0]
	}
	return domain.Image{
		ID:          fmt.Sprintf("img-%d", counter),
		PageNumber:  pageNum,
		MimeType:    obj.MimeType,
		Data:        obj.Data,
		BoundingBox: bbox,
	}
}
