package domain

import "encoding/json"

// ParagraphRole is the semantic role assigned to a paragraph. The zero value
// means body text and serializes as JSON null.
type ParagraphRole string

const (
	RoleNone           ParagraphRole = ""
	RoleTitle          ParagraphRole = "title"
	RoleSectionHeading ParagraphRole = "sectionHeading"
)

// MarshalJSON emits null for the unset role.
func (r ParagraphRole) MarshalJSON() ([]byte, error) {
	if r == RoleNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(r))
}

// UnmarshalJSON accepts null as the unset role.
func (r *ParagraphRole) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = RoleNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParagraphRole(s)
	return nil
}

// CellKind distinguishes header cells from content cells. Row 0 of a detected
// table is always the header row.
type CellKind string

const (
	CellKindColumnHeader CellKind = "columnHeader"
	CellKindContent      CellKind = "content"
)

// BlockType names the collection a ContentBlock points into.
type BlockType string

const (
	BlockTypeParagraph BlockType = "paragraph"
	BlockTypeTable     BlockType = "table"
	BlockTypeImage     BlockType = "image"
)
