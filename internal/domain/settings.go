package domain

import (
	"fmt"
	"sort"
	"strings"
)

// RunSettings is the configuration snapshot for one batch run
type RunSettings struct {
	PurgeAll           bool
	ETransmit          bool
	ZoomExtents        bool
	RenameSheets       bool
	PlotToPDF          bool
	ReadReplaceEnabled bool
	IncrementRevision  bool

	RevisionType    RevisionType
	HardsetRevision string
	PlotStyleTable  string

	// Attributes maps a revision field label (DATE, DESC...) to the text
	// written into the new revision slot
	Attributes map[string]string
	// ReadReplace maps a value to find onto its replacement
	ReadReplace map[string]string
}

// DefaultRunSettings returns the settings used when none are stored
func DefaultRunSettings() RunSettings {
	return RunSettings{
		ZoomExtents:  true,
		RevisionType: RevisionAlphabetical,
		Attributes:   map[string]string{},
		ReadReplace:  map[string]string{},
	}
}

// Validate checks the settings against the reference table they will run
// with. Revision attributes are only checked when IncrementRevision is set.
// Every problem found is reported in a single SettingsError.
func (s RunSettings) Validate(reference []TableRow) error {
	var problems []string

	if s.RevisionType == RevisionHardset && strings.TrimSpace(s.HardsetRevision) == "" {
		problems = append(problems, "Hardset Revision requires a value.")
	}

	if !s.IncrementRevision {
		return settingsProblems(problems)
	}

	known := false
	for _, t := range RevisionTypes {
		if s.RevisionType == t {
			known = true
			break
		}
	}
	if !known {
		problems = append(problems, fmt.Sprintf("Unknown revision type '%s'.", s.RevisionType))
	}

	used := make(map[string]bool)
	for _, row := range reference {
		_, field, ok := row.Role.Slot()
		if !ok || field == FieldRev {
			continue
		}
		used[string(field)] = true
	}

	attrs := make(map[string]string, len(s.Attributes))
	for k, v := range s.Attributes {
		attrs[strings.ToUpper(k)] = v
	}

	fields := make([]string, 0, len(used))
	for f := range used {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, f := range fields {
		if strings.TrimSpace(attrs[f]) == "" {
			problems = append(problems, fmt.Sprintf("Attribute '%s' is a required revision field but is missing from revision data.", f))
		}
	}

	labels := make([]string, 0, len(attrs))
	for k := range attrs {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	for _, k := range labels {
		if attrs[k] != "" && !used[k] {
			problems = append(problems, fmt.Sprintf("Setting '%s' is populated but is not included in the table data.", k))
		}
	}

	return settingsProblems(problems)
}

func settingsProblems(problems []string) error {
	if len(problems) > 0 {
		return &SettingsError{Problems: problems}
	}
	return nil
}
