package commands

import (
	"fmt"
	"strings"

	"titleblock/internal/application"
	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

// MapFieldsResult contains the result of a mapping update
type MapFieldsResult struct {
	Merge   domain.MergeResult
	Saved   bool
	Message string
}

// MapFieldsCommand merges proposed tag assignments into the stored field
// mapping. Conflicting assignments are put to the resolver.
type MapFieldsCommand struct {
	store    ports.MappingStore
	resolver ports.ConflictResolver
	Proposed domain.FieldMapping
}

// NewMapFieldsCommand creates a new MapFieldsCommand. A nil resolver keeps
// every stored assignment.
func NewMapFieldsCommand(store ports.MappingStore, resolver ports.ConflictResolver, proposed domain.FieldMapping) *MapFieldsCommand {
	return &MapFieldsCommand{
		store:    store,
		resolver: resolver,
		Proposed: proposed,
	}
}

// ProposalFromTable collects the assigned rows of a reference table
func ProposalFromTable(rows []domain.TableRow) domain.FieldMapping {
	out := make(domain.FieldMapping, len(rows))
	for _, r := range rows {
		if r.Role.IsAssigned() && strings.TrimSpace(r.Tag) != "" {
			out[r.Tag] = r.Role.String()
		}
	}
	return out
}

// Validate checks that there is something to save and that every proposed
// role is an assignment option
func (c *MapFieldsCommand) Validate() error {
	if len(c.Proposed) == 0 {
		return &application.ValidationError{
			Field:   "mapping",
			Message: domain.ErrNothingToSave.Error(),
		}
	}
	for _, tag := range c.Proposed.Tags() {
		role := strings.TrimSpace(c.Proposed[tag])
		if role == "" || strings.TrimSpace(tag) == "" {
			continue
		}
		if !domain.IsAssignmentOption(role) {
			return &application.ValidationError{
				Field:   "mapping",
				Message: fmt.Sprintf("tag %s: unknown assignment %q", tag, role),
			}
		}
	}
	return nil
}

// Execute performs the merge and stores the result when it changed
func (c *MapFieldsCommand) Execute() (*MapFieldsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	existing, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load field mapping: %w", err)
	}

	var resolve func(domain.Conflict) domain.Resolution
	if c.resolver != nil {
		resolve = c.resolver.Resolve
	}

	merge, err := domain.MergeMapping(existing, c.Proposed, resolve)
	if err != nil {
		return nil, err
	}

	res := &MapFieldsResult{Merge: merge}
	switch {
	case merge.Cancelled:
		res.Message = "Mapping update cancelled"
		return res, nil
	case !merge.Changed():
		res.Message = "Mapping is already up to date"
		return res, nil
	}

	if err := c.store.Save(merge.Mapping); err != nil {
		return nil, fmt.Errorf("failed to save field mapping: %w", err)
	}
	res.Saved = true
	res.Message = fmt.Sprintf("Saved %s: %d added, %d replaced, %d kept",
		c.store.Path(), len(merge.Added), len(merge.Replaced), len(merge.Kept))
	return res, nil
}
