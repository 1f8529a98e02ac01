package port

import "pdfworker/internal/domain"

// SpanFlagBold is bit 4 of TextSpan.Flags. A block is bold when at least one
// of its spans carries this flag.
const SpanFlagBold = 16

// TextSpan is a run of text with uniform font metadata.
type TextSpan struct {
	Text     string
	FontName string
	Size     float64
	Flags    int
}

// TextLine is one visual line of spans.
type TextLine struct {
	Spans []TextSpan
}

// TextBlock is a group of lines sharing a bounding box, roughly one
// paragraph of page content.
type TextBlock struct {
	BBox  domain.BoundingBox
	Lines []TextLine
}

// TableGrid is a detected table as a row-major grid of cell strings.
// A nil entry is an empty cell. Row 0 is the header row.
type TableGrid struct {
	BBox  domain.BoundingBox
	Cells [][]*string
}

// ImageObject is an embedded image payload with zero or more placement
// rectangles; the first rectangle is used, or an all-zero box when none.
type ImageObject struct {
	Data     []byte
	MimeType string
	Rects    []domain.BoundingBox
}

// PageContent is everything the engine reports for one page.
type PageContent struct {
	Blocks []TextBlock
	Tables []TableGrid
	Images []ImageObject
}

// Document is an open document handle. Page numbers are 1-indexed.
type Document interface {
	PageCount() int

	// Page returns the extraction primitives for one page. Images are only
	// decoded when withImages is set.
	Page(n int, withImages bool) (*PageContent, error)

	// PlainText returns the raw text layer of one page, used for text-layer
	// detection.
	PlainText(n int) (string, error)

	Close() error
}

// Engine is the PDF-parsing collaborator supplying page-level extraction
// primitives.
type Engine interface {
	// Name identifies the engine in the document model's model_used field.
	Name() string

	// Open decodes a document from memory. A document that cannot be decoded
	// returns domain.ErrInvalidDocument.
	Open(data []byte) (Document, error)
}
