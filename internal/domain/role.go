package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RevisionField names one attribute of a revision slot
type RevisionField string

const (
	FieldRev      RevisionField = "REV"
	FieldDate     RevisionField = "DATE"
	FieldDesc     RevisionField = "DESC"
	FieldDesigner RevisionField = "DESIGNER"
	FieldDrafted  RevisionField = "DRAFTED"
	FieldChecked  RevisionField = "CHECKED"
	FieldRPEQ     RevisionField = "RPEQ"
	FieldRPEQSign RevisionField = "RPEQSIGN"
	FieldCompany  RevisionField = "COMPANY"
)

// RevisionFields lists the known slot fields in display order
var RevisionFields = []RevisionField{
	FieldRev,
	FieldDate,
	FieldDesc,
	FieldDesigner,
	FieldDrafted,
	FieldChecked,
	FieldRPEQ,
	FieldRPEQSign,
	FieldCompany,
}

// MaxRevisionSlots is the number of slots offered as assignment options
const MaxRevisionSlots = 10

// ModelLayoutName is the model-space layout, never processed
const ModelLayoutName = "Model"

// ParseRevisionField returns the field for s when it is one of RevisionFields
func ParseRevisionField(s string) (RevisionField, bool) {
	for _, f := range RevisionFields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// RoleKind classifies a Role
type RoleKind int

const (
	RoleUnassigned RoleKind = iota
	RoleFixed
	RoleRevisionSlot
)

func (k RoleKind) String() string {
	switch k {
	case RoleFixed:
		return "fixed"
	case RoleRevisionSlot:
		return "revision"
	default:
		return "unassigned"
	}
}

// Role is the semantic meaning of an attribute tag. It is either a fixed
// name (REVISION, DWG No., STATIC...) or a revision slot field.
// The zero value is the unassigned role.
type Role struct {
	kind  RoleKind
	name  string
	index int
	field RevisionField
}

// Fixed role names
const (
	NameRevision      = "REVISION"
	NameDrawingNumber = "DWG No."
	NameVariable      = "VARIABLE"
	NameStatic        = "STATIC"
)

var (
	RoleRevision      = Fixed(NameRevision)
	RoleDrawingNumber = Fixed(NameDrawingNumber)
	RoleVariable      = Fixed(NameVariable)
	RoleStatic        = Fixed(NameStatic)
)

// TitleCount is the number of drawing title lines
const TitleCount = 4

// Fixed creates a fixed role with the given name
func Fixed(name string) Role {
	if name == "" {
		return Role{}
	}
	return Role{kind: RoleFixed, name: name}
}

// RevisionSlot creates the role for field of revision slot index (1-based)
func RevisionSlot(index int, field RevisionField) Role {
	return Role{kind: RoleRevisionSlot, index: index, field: field}
}

// TitleRole returns the role of drawing title line n (1-based)
func TitleRole(n int) Role {
	return Fixed(fmt.Sprintf("DWG TITLE %d", n))
}

// ParseRole converts a stored role string into a Role.
// "REV <i> <FIELD>" with a known field and i >= 1 is a revision slot,
// the empty string is unassigned, anything else is a fixed role.
func ParseRole(s string) Role {
	if s == "" {
		return Role{}
	}
	parts := strings.Split(s, " ")
	if len(parts) == 3 && parts[0] == "REV" {
		if idx, err := strconv.Atoi(parts[1]); err == nil && idx >= 1 {
			if field, ok := ParseRevisionField(parts[2]); ok {
				return RevisionSlot(idx, field)
			}
		}
	}
	return Fixed(s)
}

// String renders the role in its stored form
func (r Role) String() string {
	switch r.kind {
	case RoleFixed:
		return r.name
	case RoleRevisionSlot:
		return fmt.Sprintf("REV %d %s", r.index, r.field)
	default:
		return ""
	}
}

// Kind returns the role classification
func (r Role) Kind() RoleKind { return r.kind }

// IsAssigned reports whether the role is anything but unassigned
func (r Role) IsAssigned() bool { return r.kind != RoleUnassigned }

// Slot returns the slot index and field of a revision slot role
func (r Role) Slot() (int, RevisionField, bool) {
	if r.kind != RoleRevisionSlot {
		return 0, "", false
	}
	return r.index, r.field, true
}

// AssignmentOptions returns every role string a tag can be assigned to
func AssignmentOptions() []string {
	opts := []string{NameRevision, NameDrawingNumber, NameVariable, NameStatic}
	for i := 1; i <= TitleCount; i++ {
		opts = append(opts, TitleRole(i).String())
	}
	for i := 1; i <= MaxRevisionSlots; i++ {
		for _, f := range RevisionFields {
			opts = append(opts, RevisionSlot(i, f).String())
		}
	}
	return opts
}

// IsAssignmentOption reports whether s is one of AssignmentOptions
func IsAssignmentOption(s string) bool {
	for _, opt := range AssignmentOptions() {
		if opt == s {
			return true
		}
	}
	return false
}

// orderedLabels returns the keys of labels with the known revision fields
// first, in canonical order, then any others sorted. REV is never a label.
func orderedLabels(labels map[string]string) []string {
	rank := func(k string) int {
		u := strings.ToUpper(k)
		for i, f := range RevisionFields {
			if string(f) == u {
				return i
			}
		}
		return len(RevisionFields)
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		if strings.ToUpper(k) != string(FieldRev) {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := rank(keys[i]), rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	return keys
}
