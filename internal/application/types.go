package application

import "titleblock/internal/domain"

// Re-export domain types for use by adapters
type (
	TableRow        = domain.TableRow
	SummaryEntry    = domain.SummaryEntry
	SkippedEntry    = domain.SkippedEntry
	RunSettings     = domain.RunSettings
	FieldMapping    = domain.FieldMapping
	MappingStatus   = domain.MappingStatus
	Role            = domain.Role
	Conflict        = domain.Conflict
	Resolution      = domain.Resolution
	RevisionType    = domain.RevisionType
	SampleRow       = domain.SampleRow
	AttributeRecord = domain.AttributeRecord
)

// ParseRole converts a stored role string into a Role
func ParseRole(s string) Role {
	return domain.ParseRole(s)
}

// AssignmentOptions returns every role a tag can be assigned to
func AssignmentOptions() []string {
	return domain.AssignmentOptions()
}
