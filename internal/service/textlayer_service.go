package service

import (
	"context"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"pdfworker/internal/config"
	"pdfworker/internal/port"
)

// PageTextLayer reports the text-layer state of one page.
type PageTextLayer struct {
	Page         int  `json:"page"`
	HasTextLayer bool `json:"has_text_layer"`
	CharCount    int  `json:"char_count"`
}

// TextLayerReport is the result of scanning a document for extractable text.
type TextLayerReport struct {
	TotalPages int             `json:"total_pages"`
	Pages      []PageTextLayer `json:"pages"`
}

// TextLayerService detects which pages carry an extractable text layer, the
// usual precheck before deciding whether a document needs OCR elsewhere.
type TextLayerService interface {
	Detect(ctx context.Context, data []byte, charThreshold int) (*TextLayerReport, map[string]string, error)
}

type textLayerService struct {
	engine port.Engine
	cfg    *config.ExtractionConfig
}

// NewTextLayerService creates a TextLayerService backed by the given engine.
func NewTextLayerService(engine port.Engine, cfg *config.ExtractionConfig) TextLayerService {
	return &textLayerService{engine: engine, cfg: cfg}
}

func (s *textLayerService) Detect(ctx context.Context, data []byte, charThreshold int) (*TextLayerReport, map[string]string, error) {
	if charThreshold <= 0 {
		charThreshold = s.cfg.TextLayerCharThreshold
	}

	doc, err := s.engine.Open(data)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = doc.Close() }()

	report := &TextLayerReport{TotalPages: doc.PageCount()}
	withText := 0

	for n := 1; n <= doc.PageCount(); n++ {
		text, err := doc.PlainText(n)
		if err != nil {
			// A single unreadable page counts as having no text layer.
			log.Printf("textLayerService: page %d text extraction failed: %v", n, err)
			text = ""
		}
		charCount := utf8.RuneCountInString(strings.TrimSpace(text))
		hasLayer := charCount >= charThreshold
		if hasLayer {
			withText++
		}
		report.Pages = append(report.Pages, PageTextLayer{
			Page:         n,
			HasTextLayer: hasLayer,
			CharCount:    charCount,
		})
	}

	metadata := map[string]string{
		"total_pages":     strconv.Itoa(report.TotalPages),
		"pages_with_text": strconv.Itoa(withText),
		"threshold":       strconv.Itoa(charThreshold),
	}

	return report, metadata, nil
}
