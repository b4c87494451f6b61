package domain

import (
	"strconv"
	"strings"
	"unicode"
)

// RevisionType selects how the next revision label is computed
type RevisionType string

const (
	RevisionAlphabetical RevisionType = "Alphabetical"
	RevisionNumerical    RevisionType = "Numerical"
	RevisionHardset      RevisionType = "Hardset Revision"
)

// RevisionTypes lists the accepted revision types
var RevisionTypes = []RevisionType{RevisionAlphabetical, RevisionNumerical, RevisionHardset}

// CurrentRevision is the last contiguous revision slot holding a REV value
type CurrentRevision struct {
	Value string
	Index int
	Found bool
}

// MaxRevisionIndex returns the highest slot index assigned anywhere in rows
func MaxRevisionIndex(rows []TableRow) int {
	highest := 0
	for _, r := range rows {
		if idx, _, ok := r.Role.Slot(); ok && idx > highest {
			highest = idx
		}
	}
	return highest
}

// slotFilled reports whether any field of slot index has a value
func slotFilled(rows []TableRow, index int) bool {
	for _, r := range rows {
		if idx, _, ok := r.Role.Slot(); ok && idx == index && r.Value != "" {
			return true
		}
	}
	return false
}

// LatestRevision scans slots upward from 1 and stops at the first empty
// slot. It returns the REV value and index of the highest slot scanned
// whose REV field is set.
func LatestRevision(rows []TableRow) CurrentRevision {
	var cur CurrentRevision
	top := MaxRevisionIndex(rows)
	for i := 1; i <= top; i++ {
		if !slotFilled(rows, i) {
			break
		}
		role := RevisionSlot(i, FieldRev)
		for _, r := range rows {
			if r.Role == role && r.Value != "" {
				cur = CurrentRevision{Value: r.Value, Index: i, Found: true}
				break
			}
		}
	}
	return cur
}

// RevisionsFull reports whether every slot from 1 to the highest assigned
// index holds at least one value. A table without slots is full.
func RevisionsFull(rows []TableRow) bool {
	top := MaxRevisionIndex(rows)
	for i := 1; i <= top; i++ {
		if !slotFilled(rows, i) {
			return false
		}
	}
	return true
}

type slotEntry struct {
	field RevisionField
	tag   string
	value string
}

// ShiftRevisions moves every slot down by one. Slot i receives slot i+1's
// values under a tag renumbered from i+1 to i, the top slot is emptied
// and the REVISION row is cleared. The returned rows are the full delta.
func ShiftRevisions(rows []TableRow, layout string) []TableRow {
	top := MaxRevisionIndex(rows)
	slots := make(map[int][]slotEntry, top)
	for _, r := range rows {
		idx, field, ok := r.Role.Slot()
		if !ok {
			continue
		}
		entries := slots[idx]
		replaced := false
		for k := range entries {
			if entries[k].field == field {
				entries[k].tag = r.Tag
				entries[k].value = r.Value
				replaced = true
				break
			}
		}
		if !replaced {
			entries = append(entries, slotEntry{field: field, tag: r.Tag, value: r.Value})
		}
		slots[idx] = entries
	}

	var out []TableRow
	for i := 1; i < top; i++ {
		from, to := strconv.Itoa(i+1), strconv.Itoa(i)
		for _, e := range slots[i+1] {
			out = append(out, TableRow{
				Tag:    strings.ReplaceAll(e.tag, from, to),
				Role:   RevisionSlot(i, e.field),
				Value:  e.value,
				Layout: layout,
			})
		}
	}

	for _, f := range RevisionFields {
		role := RevisionSlot(top, f)
		for _, r := range rows {
			if r.Role == role {
				if r.Tag != "" {
					out = append(out, TableRow{Tag: r.Tag, Role: role, Layout: layout})
				}
				break
			}
		}
	}

	for _, r := range rows {
		if r.Role == RoleRevision {
			out = append(out, TableRow{
				Tag:         r.Tag,
				Role:        RoleRevision,
				StaticValue: r.StaticValue,
				Layout:      layout,
			})
			break
		}
	}
	return out
}

// NextRevisionValue computes the label following prior
func NextRevisionValue(kind RevisionType, prior, hardset string) (string, error) {
	switch kind {
	case RevisionAlphabetical:
		if prior == "" || allRunes(prior, unicode.IsDigit) {
			return "A", nil
		}
		runes := []rune(prior)
		if len(runes) != 1 {
			return "", &RevisionError{Type: kind, Prior: prior}
		}
		return string(unicode.ToUpper(runes[0]) + 1), nil
	case RevisionNumerical:
		if prior == "" {
			return "1", nil
		}
		if allRunes(prior, unicode.IsLetter) {
			return "0", nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(prior))
		if err != nil {
			return "", &RevisionError{Type: kind, Prior: prior}
		}
		return strconv.Itoa(n + 1), nil
	case RevisionHardset:
		if hardset == "" {
			return "", &ConfigError{Setting: "hardset_revision", Message: "hardset revision is not defined"}
		}
		return hardset, nil
	default:
		return "", &ConfigError{Setting: "revision_type", Message: "unknown revision type " + strconv.Quote(string(kind))}
	}
}

func allRunes(s string, pred func(rune) bool) bool {
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return s != ""
}

// deltaBuilder accumulates touched rows without mutating the source table
type deltaBuilder struct {
	target    []TableRow
	delta     []TableRow
	positions map[int]int
}

func newDeltaBuilder(target []TableRow, shifted bool) *deltaBuilder {
	b := &deltaBuilder{target: target, positions: make(map[int]int)}
	if shifted {
		b.delta = CloneRows(target)
		for i := range target {
			b.positions[i] = i
		}
	}
	return b
}

func (b *deltaBuilder) set(role Role, value string) bool {
	for i, r := range b.target {
		if r.Role != role {
			continue
		}
		if pos, ok := b.positions[i]; ok {
			b.delta[pos].Value = value
			return true
		}
		r.Value = value
		b.positions[i] = len(b.delta)
		b.delta = append(b.delta, r)
		return true
	}
	return false
}

// IncrementRevision computes the rows touched by writing a new revision
// into rows. When every slot is filled the history is shifted down first
// and the new revision reuses the current index; otherwise it goes into
// the next slot. The input is not modified.
func IncrementRevision(rows []TableRow, settings RunSettings, layout string) ([]TableRow, error) {
	full := RevisionsFull(rows)
	current := LatestRevision(rows)

	target := rows
	newIndex := current.Index + 1
	if full {
		target = ShiftRevisions(rows, layout)
		newIndex = current.Index
	}

	value, err := NextRevisionValue(settings.RevisionType, current.Value, settings.HardsetRevision)
	if err != nil {
		return nil, err
	}

	b := newDeltaBuilder(target, full)
	for _, label := range orderedLabels(settings.Attributes) {
		text := settings.Attributes[label]
		if strings.TrimSpace(text) == "" {
			continue
		}
		role := slotRole(newIndex, label)
		if !b.set(role, text) {
			return nil, &MissingFieldError{Role: role, Label: label}
		}
	}

	revRole := RevisionSlot(newIndex, FieldRev)
	if !b.set(revRole, value) {
		return nil, &MissingFieldError{Role: revRole}
	}
	b.set(RoleRevision, value)

	return b.delta, nil
}

func slotRole(index int, label string) Role {
	label = strings.ToUpper(label)
	if field, ok := ParseRevisionField(label); ok && index >= 1 {
		return RevisionSlot(index, field)
	}
	return Fixed("REV " + strconv.Itoa(index) + " " + label)
}

// ApplyDelta returns a copy of snapshot with the value of every row whose
// tag appears in delta replaced by the last delta value for that tag
func ApplyDelta(snapshot, delta []TableRow) []TableRow {
	values := make(map[string]string, len(delta))
	for _, d := range delta {
		values[d.Tag] = d.Value
	}
	out := CloneRows(snapshot)
	for i := range out {
		if v, ok := values[out[i].Tag]; ok {
			out[i].Value = v
		}
	}
	return out
}
