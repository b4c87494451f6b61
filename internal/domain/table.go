package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateTag is returned when a reference table maps the same tag twice
var ErrDuplicateTag = errors.New("duplicate tag")

// Point is an attribute insertion point
type Point struct {
	X, Y, Z float64
}

// AttributeRecord is one attribute read from a block reference on a layout
type AttributeRecord struct {
	Layout    string
	BlockName string
	Tag       string
	Value     string
	Position  Point
}

// TableRow is one entry of the reference table, or of the mapped data
// produced from it for a single layout
type TableRow struct {
	Tag         string
	Role        Role
	Value       string
	StaticValue string
	Layout      string
}

// AttributeUpdate is one value to write back into a drawing.
// An empty Layout means every layout; an empty BlockName every block.
type AttributeUpdate struct {
	Layout    string
	BlockName string
	Tag       string
	Value     string
}

// Update converts the row into a write-back request
func (r TableRow) Update() AttributeUpdate {
	return AttributeUpdate{Layout: r.Layout, Tag: r.Tag, Value: r.Value}
}

// Updates converts rows into write-back requests, preserving order
func Updates(rows []TableRow) []AttributeUpdate {
	out := make([]AttributeUpdate, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Update())
	}
	return out
}

// CloneRows returns an independent copy of rows
func CloneRows(rows []TableRow) []TableRow {
	if rows == nil {
		return nil
	}
	out := make([]TableRow, len(rows))
	copy(out, rows)
	return out
}

// ValidateTable rejects reference tables that list a tag more than once
func ValidateTable(rows []TableRow) error {
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.Tag) == "" {
			return fmt.Errorf("reference table contains a row without a tag")
		}
		if seen[r.Tag] {
			return fmt.Errorf("%w: %s", ErrDuplicateTag, r.Tag)
		}
		seen[r.Tag] = true
	}
	return nil
}

// FirstValue returns the value of the first row with role
func FirstValue(rows []TableRow, role Role) (string, bool) {
	for _, r := range rows {
		if r.Role == role {
			return r.Value, true
		}
	}
	return "", false
}

// LastValue returns the value of the last row with role
func LastValue(rows []TableRow, role Role) (string, bool) {
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Role == role {
			return rows[i].Value, true
		}
	}
	return "", false
}
