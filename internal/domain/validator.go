package domain

import "sort"

// Validator checks extracted layouts against the crucial tags of a
// reference table. Crucial tags are every tag whose role is not VARIABLE.
type Validator struct {
	crucial map[string]struct{}
}

// NewValidator builds a validator from the run's reference table
func NewValidator(reference []TableRow) *Validator {
	v := &Validator{crucial: make(map[string]struct{}, len(reference))}
	for _, r := range reference {
		if r.Role == RoleVariable {
			continue
		}
		v.crucial[r.Tag] = struct{}{}
	}
	return v
}

// CrucialTags returns the crucial tag set, sorted
func (v *Validator) CrucialTags() []string {
	out := make([]string, 0, len(v.crucial))
	for t := range v.crucial {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Missing returns the crucial tags absent from extracted, sorted.
// A nil result means the layout passes.
func (v *Validator) Missing(extracted []AttributeRecord) []string {
	present := make(map[string]struct{}, len(extracted))
	for _, rec := range extracted {
		present[rec.Tag] = struct{}{}
	}
	var missing []string
	for t := range v.crucial {
		if _, ok := present[t]; !ok {
			missing = append(missing, t)
		}
	}
	sort.Strings(missing)
	return missing
}
