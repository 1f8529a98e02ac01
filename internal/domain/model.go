package domain

// BoundingBox is an axis-aligned rectangle in page coordinates, with the
// origin at the top-left corner of the page.
type BoundingBox struct {
	XMin float64 `json:"x_min"`
	YMin float64 `json:"y_min"`
	XMax float64 `json:"x_max"`
	YMax float64 `json:"y_max"`
}

// Font holds the font metadata of a paragraph. Size is rounded to one
// decimal place.
type Font struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
	Bold bool    `json:"bold"`
}

// Paragraph is a block of extracted text with font metadata. Role is unset
// until RoleClassifier runs, and stays unset for body text.
type Paragraph struct {
	ID          string        `json:"id"`
	Content     string        `json:"content"`
	Role        ParagraphRole `json:"role"`
	PageNumber  int           `json:"page_number"`
	BoundingBox BoundingBox   `json:"bounding_box"`
	Font        Font          `json:"font"`
}

// Cell is a single table cell addressed by its grid position.
type Cell struct {
	RowIndex    int      `json:"row_index"`
	ColumnIndex int      `json:"column_index"`
	RowSpan     int      `json:"row_span"`
	ColumnSpan  int      `json:"column_span"`
	Content     string   `json:"content"`
	Kind        CellKind `json:"kind"`
}

// Table is a detected table with a row-major cell grid.
type Table struct {
	ID          string      `json:"id"`
	PageNumber  int         `json:"page_number"`
	Rows        int         `json:"rows"`
	Columns     int         `json:"columns"`
	Cells       []Cell      `json:"cells"`
	BoundingBox BoundingBox `json:"bounding_box"`
}

// Image is an embedded image with its raw payload. Data serializes as base64.
type Image struct {
	ID          string      `json:"id"`
	PageNumber  int         `json:"page_number"`
	MimeType    string      `json:"mime_type"`
	Data        []byte      `json:"data"`
	BoundingBox BoundingBox `json:"bounding_box"`
}

// ContentBlock is a positional pointer into the paragraph/table/image
// collections. It owns nothing; ContentID resolves in the collection named
// by Type.
type ContentBlock struct {
	Type      BlockType `json:"type"`
	Page      int       `json:"page"`
	YPosition float64   `json:"y_position"`
	ContentID string    `json:"content_id"`
}

// DocumentModel is the assembled, reading-ordered document.
type DocumentModel struct {
	ModelUsed     string         `json:"model_used"`
	Pages         int            `json:"pages"`
	Paragraphs    []Paragraph    `json:"paragraphs"`
	Tables        []Table        `json:"tables"`
	Images        []Image        `json:"images"`
	FullText      string         `json:"full_text"`
	ContentBlocks []ContentBlock `json:"content_blocks"`
}
