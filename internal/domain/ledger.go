package domain

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// NotAvailable stands in for a summary field with no value
const NotAvailable = "N/A"

// TitleSeparator joins the non-empty drawing title lines
const TitleSeparator = " - "

// SummaryEntry describes one successfully processed layout
type SummaryEntry struct {
	File                string
	Layout              string
	Revision            string
	RevisionDescription string
	DrawingNumber       string
	DrawingTitle        string
}

// Summarize builds the summary of a layout from its mapped data and the
// updates written to it. Updates overlay the layout values by role, the
// description comes from the current revision slot of layoutData.
func Summarize(layoutData, updates []TableRow) SummaryEntry {
	overlay := make(map[Role]string, len(updates))
	for _, u := range updates {
		overlay[u.Role] = u.Value
	}
	merged := CloneRows(layoutData)
	for i := range merged {
		if v, ok := overlay[merged[i].Role]; ok {
			merged[i].Value = v
		}
	}

	titleRoles := make(map[Role]bool, TitleCount)
	for i := 1; i <= TitleCount; i++ {
		titleRoles[TitleRole(i)] = true
	}
	var titles []string
	for _, r := range merged {
		if titleRoles[r.Role] && r.Value != "" {
			titles = append(titles, r.Value)
		}
	}

	var desc string
	if cur := LatestRevision(layoutData); cur.Found {
		desc, _ = FirstValue(merged, RevisionSlot(cur.Index, FieldDesc))
	}

	revision, _ := FirstValue(merged, RoleRevision)
	number, _ := FirstValue(merged, RoleDrawingNumber)

	return SummaryEntry{
		Revision:            orNotAvailable(revision),
		RevisionDescription: orNotAvailable(desc),
		DrawingNumber:       orNotAvailable(number),
		DrawingTitle:        orNotAvailable(strings.Join(titles, TitleSeparator)),
	}
}

func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// Ledger accumulates summary entries in insertion order
type Ledger struct {
	mu      sync.Mutex
	entries []SummaryEntry
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{}
}

// Record summarizes a processed layout and appends the result
func (l *Ledger) Record(file, layout string, layoutData, updates []TableRow) SummaryEntry {
	e := Summarize(layoutData, updates)
	e.File = file
	e.Layout = layout
	l.Add(e)
	return e
}

// Add appends an already built entry
func (l *Ledger) Add(e SummaryEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

// Summary returns a copy of every entry in insertion order
func (l *Ledger) Summary() []SummaryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]SummaryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear empties the ledger
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// UnknownLayout identifies a layout whose name could not be read
const UnknownLayout = "<Unknown Layout>"

// SkippedEntry is a file or layout left unprocessed, with the reason why
type SkippedEntry struct {
	Identifier string
	Reason     string
	Detail     string
	At         time.Time
}

// FileIdentifier identifies a whole drawing file
func FileIdentifier(file string) string {
	return file
}

// LayoutIdentifier identifies one layout of a drawing file
func LayoutIdentifier(file, layout string) string {
	return fmt.Sprintf("%s - %s", file, layout)
}

// SkippedList accumulates skipped entries for a session
type SkippedList struct {
	mu      sync.Mutex
	entries []SkippedEntry
}

// NewSkippedList creates an empty list
func NewSkippedList() *SkippedList {
	return &SkippedList{}
}

// Add appends an entry
func (s *SkippedList) Add(e SkippedEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

// Entries returns a copy of the entries in insertion order
func (s *SkippedList) Entries() []SkippedEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SkippedEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries
func (s *SkippedList) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear empties the list
func (s *SkippedList) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}
