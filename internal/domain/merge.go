package domain

// MapExtracted pairs every extracted attribute with the reference rows of
// the same tag. The result carries the reference role and static value
// with the extracted value, stamped with layout.
func MapExtracted(reference []TableRow, extracted []AttributeRecord, layout string) []TableRow {
	var mapped []TableRow
	for _, rec := range extracted {
		for _, ref := range reference {
			if ref.Tag != rec.Tag {
				continue
			}
			mapped = append(mapped, TableRow{
				Tag:         ref.Tag,
				Role:        ref.Role,
				Value:       rec.Value,
				StaticValue: ref.StaticValue,
				Layout:      layout,
			})
		}
	}
	return mapped
}

// StaticAssignments returns one update row per STATIC reference row, its
// static value becoming the value to write. Empty static values are kept.
func StaticAssignments(reference []TableRow, layout string) []TableRow {
	var out []TableRow
	for _, ref := range reference {
		if ref.Role != RoleStatic {
			continue
		}
		out = append(out, TableRow{
			Tag:         ref.Tag,
			Role:        ref.Role,
			Value:       ref.StaticValue,
			StaticValue: ref.StaticValue,
			Layout:      layout,
		})
	}
	return out
}

// ReadReplace substitutes every snapshot value that is a key of pairs and
// merges the substitutions into updates by tag. An update already present
// for the tag keeps its position and takes the new value, otherwise the
// row is appended. Updates sharing a tag collapse into the first one.
// Both inputs are left untouched.
func ReadReplace(snapshot, updates []TableRow, pairs map[string]string, layout string) ([]TableRow, []TableRow) {
	outSnapshot := CloneRows(snapshot)

	merged := make([]TableRow, 0, len(updates))
	position := make(map[string]int, len(updates))
	for _, u := range updates {
		if pos, ok := position[u.Tag]; ok {
			merged[pos] = u
			continue
		}
		position[u.Tag] = len(merged)
		merged = append(merged, u)
	}

	if len(pairs) == 0 {
		return outSnapshot, merged
	}

	for i := range outSnapshot {
		replacement, ok := pairs[outSnapshot[i].Value]
		if !ok {
			continue
		}
		outSnapshot[i].Value = replacement
		tag := outSnapshot[i].Tag
		if pos, ok := position[tag]; ok {
			merged[pos].Value = replacement
			continue
		}
		position[tag] = len(merged)
		merged = append(merged, TableRow{
			Tag:         tag,
			Role:        outSnapshot[i].Role,
			Value:       replacement,
			StaticValue: outSnapshot[i].StaticValue,
			Layout:      layout,
		})
	}
	return outSnapshot, merged
}
