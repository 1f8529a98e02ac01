// Package pdfengine is the native implementation of the port.Engine
// collaborator. Span-level text comes from the document's text layer via
// ledongthuc/pdf; pdfcpu handles validation, the page count, and embedded
// image extraction.
//
// The native engine performs no table-structure inference, so every page's
// TableGrids slice is empty. The pipeline still handles tables supplied by
// any other engine implementation.
package pdfengine

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"pdfworker/internal/domain"
	"pdfworker/internal/port"
)

// Engine opens PDF documents from memory.
type Engine struct {
	conf *model.Configuration
}

// New creates the native PDF engine.
func New() *Engine {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Engine{conf: conf}
}

// Name implements port.Engine.
func (e *Engine) Name() string { return "native" }

// Open decodes a PDF from memory. Both underlying readers must accept the
// document; anything else is a fatal domain.ErrInvalidDocument.
func (e *Engine) Open(data []byte) (port.Document, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), e.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}

	return &document{
		ctx:    ctx,
		reader: reader,
		fonts:  make(map[string]*pdf.Font),
	}, nil
}

type document struct {
	ctx    *model.Context
	reader *pdf.Reader
	fonts  map[string]*pdf.Font
}

func (d *document) PageCount() int { return d.ctx.PageCount }

func (d *document) Close() error { return nil }

// Page extracts the primitives for one 1-indexed page. The underlying
// content-stream parser panics on some malformed streams; the panic is
// converted into a per-page error so callers can skip the page and continue.
func (d *document) Page(n int, withImages bool) (content *port.PageContent, err error) {
	if n < 1 || n > d.PageCount() {
		return nil, fmt.Errorf("page %d out of range (1-%d)", n, d.PageCount())
	}

	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = fmt.Errorf("page %d: content parsing failed: %v", n, r)
		}
	}()

	pc := &port.PageContent{}

	page := d.reader.Page(n)
	if !page.V.IsNull() {
		texts := page.Content().Text
		pc.Blocks = buildBlocks(texts, mediaBoxHeight(page))
	}

	if withImages {
		pc.Images = d.pageImages(n)
	}

	return pc, nil
}

// pageImages pulls embedded images via pdfcpu. A failing page is logged and
// yields no images; it never fails the request.
func (d *document) pageImages(n int) []port.ImageObject {
	extracted, err := pdfcpu.ExtractPageImages(d.ctx, n, false)
	if err != nil {
		log.Printf("pdfengine: image extraction failed on page %d: %v", n, err)
		return nil
	}

	objNrs := make([]int, 0, len(extracted))
	for objNr := range extracted {
		objNrs = append(objNrs, objNr)
	}
	sort.Ints(objNrs)

	var images []port.ImageObject
	for _, objNr := range objNrs {
		img := extracted[objNr]
		data, err := io.ReadAll(img)
		if err != nil || len(data) == 0 {
			log.Printf("pdfengine: failed to read image obj %d on page %d: %v", objNr, n, err)
			continue
		}
		// No placement rectangles are recoverable here; the zero bbox is
		// part of the image contract.
		images = append(images, port.ImageObject{
			Data:     data,
			MimeType: "image/" + img.FileType,
		})
	}
	return images
}

// PlainText returns the raw text layer of one page.
func (d *document) PlainText(n int) (text string, err error) {
	if n < 1 || n > d.PageCount() {
		return "", fmt.Errorf("page %d out of range (1-%d)", n, d.PageCount())
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("page %d: text extraction failed: %v", n, r)
		}
	}()

	page := d.reader.Page(n)
	if page.V.IsNull() {
		return "", nil
	}

	for _, name := range page.Fonts() {
		if _, ok := d.fonts[name]; !ok {
			f := page.Font(name)
			d.fonts[name] = &f
		}
	}

	return page.GetPlainText(d.fonts)
}

// mediaBoxHeight resolves the page height from the MediaBox, walking up the
// page tree for inherited boxes. Falls back to US Letter.
func mediaBoxHeight(page pdf.Page) float64 {
	v := page.V
	for !v.IsNull() {
		if mb := v.Key("MediaBox"); !mb.IsNull() && mb.Len() == 4 {
			if h := mb.Index(3).Float64() - mb.Index(1).Float64(); h > 0 {
				return h
			}
		}
		v = v.Key("Parent")
	}
	return 792
}
