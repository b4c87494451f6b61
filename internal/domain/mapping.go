package domain

import (
	"errors"
	"sort"
	"strings"
)

// ErrNothingToSave is returned when a mapping proposal holds no assignments
var ErrNothingToSave = errors.New("no mappings were provided")

// FieldMapping is the persisted tag to role dictionary used as the default
// assignment for newly extracted tags
type FieldMapping map[string]string

// Clone returns an independent copy
func (m FieldMapping) Clone() FieldMapping {
	out := make(FieldMapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Tags returns the mapped tags sorted case-insensitively
func (m FieldMapping) Tags() []string {
	tags := make([]string, 0, len(m))
	for t := range m {
		tags = append(tags, t)
	}
	sortFold(tags)
	return tags
}

// Role returns the parsed role for tag
func (m FieldMapping) Role(tag string) Role {
	return ParseRole(m[tag])
}

func sortFold(s []string) {
	sort.SliceStable(s, func(i, j int) bool {
		li, lj := strings.ToLower(s[i]), strings.ToLower(s[j])
		if li != lj {
			return li < lj
		}
		return s[i] < s[j]
	})
}

// MappingStatus describes how a proposed assignment relates to the stored one
type MappingStatus string

const (
	StatusUnmapped   MappingStatus = "Unmapped"
	StatusMapped     MappingStatus = "Mapped (OK)"
	StatusNewChanged MappingStatus = "New/Changed"
)

// StatusOf classifies the proposed role for tag against existing
func StatusOf(existing FieldMapping, tag, proposed string) MappingStatus {
	proposed = strings.TrimSpace(proposed)
	if proposed == "" {
		return StatusUnmapped
	}
	if old := existing[tag]; old != "" && old == proposed {
		return StatusMapped
	}
	return StatusNewChanged
}

// Resolution is the user's answer to a mapping conflict
type Resolution int

const (
	ResolveKeep Resolution = iota
	ResolveReplace
	ResolveKeepAll
	ResolveReplaceAll
	ResolveCancel
)

func (r Resolution) String() string {
	switch r {
	case ResolveReplace:
		return "replace"
	case ResolveKeepAll:
		return "keep-all"
	case ResolveReplaceAll:
		return "replace-all"
	case ResolveCancel:
		return "cancel"
	default:
		return "keep"
	}
}

// Conflict is a tag whose stored role differs from the proposed one
type Conflict struct {
	Tag      string
	Existing string
	Proposed string
}

// MergeResult reports what a mapping merge did
type MergeResult struct {
	Mapping   FieldMapping
	Added     []string
	Replaced  []string
	Kept      []string
	Cancelled bool
}

// Changed reports whether the merged mapping differs from the stored one
func (r MergeResult) Changed() bool {
	return !r.Cancelled && (len(r.Added) > 0 || len(r.Replaced) > 0)
}

// MergeMapping merges proposed into existing. New tags are added, equal
// assignments are left alone, and every differing assignment is put to
// resolve. ReplaceAll and KeepAll answer every later conflict without
// asking. Cancel abandons the merge and leaves existing as it was.
// Proposed tags are visited in case-insensitive order.
func MergeMapping(existing, proposed FieldMapping, resolve func(Conflict) Resolution) (MergeResult, error) {
	cleaned := make(FieldMapping, len(proposed))
	for tag, role := range proposed {
		tag, role = strings.TrimSpace(tag), strings.TrimSpace(role)
		if tag != "" && role != "" {
			cleaned[tag] = role
		}
	}
	if len(cleaned) == 0 {
		return MergeResult{Mapping: existing.Clone()}, ErrNothingToSave
	}

	res := MergeResult{Mapping: existing.Clone()}
	var sticky *Resolution
	for _, tag := range cleaned.Tags() {
		role := cleaned[tag]
		old, ok := res.Mapping[tag]
		if !ok {
			res.Mapping[tag] = role
			res.Added = append(res.Added, tag)
			continue
		}
		if old == role {
			continue
		}

		answer := ResolveKeep
		if sticky != nil {
			answer = *sticky
		} else if resolve != nil {
			answer = resolve(Conflict{Tag: tag, Existing: old, Proposed: role})
		}

		switch answer {
		case ResolveCancel:
			return MergeResult{Mapping: existing.Clone(), Cancelled: true}, nil
		case ResolveReplaceAll:
			a := ResolveReplace
			sticky = &a
			fallthrough
		case ResolveReplace:
			res.Mapping[tag] = role
			res.Replaced = append(res.Replaced, tag)
		case ResolveKeepAll:
			a := ResolveKeep
			sticky = &a
			fallthrough
		default:
			res.Kept = append(res.Kept, tag)
		}
	}
	return res, nil
}

// SampleRow is one distinct tag of a sample extraction with the role
// proposed for it
type SampleRow struct {
	Tag    string
	Sample string
	Role   Role
	Status MappingStatus
}

// ProposeSample collapses extracted records to one row per tag, keeping the
// first sample value, and proposes the stored role for each. Stored roles
// that are not assignment options are left unassigned.
func ProposeSample(records []AttributeRecord, mapping FieldMapping) []SampleRow {
	seen := make(map[string]bool, len(records))
	var rows []SampleRow
	for _, rec := range records {
		tag := strings.TrimSpace(rec.Tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		var role Role
		if stored := mapping[tag]; IsAssignmentOption(stored) {
			role = ParseRole(stored)
		}
		rows = append(rows, SampleRow{
			Tag:    tag,
			Sample: rec.Value,
			Role:   role,
			Status: StatusOf(mapping, tag, role.String()),
		})
	}
	return rows
}

// ReferenceTable turns sample rows into a reference table, one row per tag
func ReferenceTable(rows []SampleRow) []TableRow {
	out := make([]TableRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, TableRow{Tag: r.Tag, Role: r.Role, Value: r.Sample})
	}
	return out
}
