package domain

import "testing"

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		layout  []TableRow
		updates []TableRow
		want    SummaryEntry
	}{
		{
			name: "update overlays layout values",
			layout: []TableRow{
				{Tag: "T1", Role: RoleDrawingNumber, Value: "DWG-100"},
				{Tag: "T2", Role: RoleRevision, Value: "A"},
				{Tag: "T3", Role: RevisionSlot(1, FieldRev), Value: "A"},
				{Tag: "T4", Role: RevisionSlot(1, FieldDesc), Value: "ISSUED"},
				{Tag: "T5", Role: TitleRole(1), Value: "SITE"},
				{Tag: "T6", Role: TitleRole(2), Value: ""},
				{Tag: "T7", Role: TitleRole(3), Value: "PLAN"},
			},
			updates: []TableRow{{Tag: "T2", Role: RoleRevision, Value: "B"}},
			want: SummaryEntry{
				Revision:            "B",
				RevisionDescription: "ISSUED",
				DrawingNumber:       "DWG-100",
				DrawingTitle:        "SITE - PLAN",
			},
		},
		{
			name:   "missing values become N/A",
			layout: []TableRow{{Tag: "T1", Role: RoleDrawingNumber, Value: ""}},
			want: SummaryEntry{
				Revision:            NotAvailable,
				RevisionDescription: NotAvailable,
				DrawingNumber:       NotAvailable,
				DrawingTitle:        NotAvailable,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.layout, tt.updates); got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLedger(t *testing.T) {
	l := NewLedger()
	l.Record("a.dwg", "L1", []TableRow{{Tag: "T1", Role: RoleDrawingNumber, Value: "1"}}, nil)
	l.Record("b.dwg", "L1", []TableRow{{Tag: "T1", Role: RoleDrawingNumber, Value: "2"}}, nil)

	got := l.Summary()
	if len(got) != 2 || got[0].DrawingNumber != "1" || got[1].DrawingNumber != "2" {
		t.Fatalf("Summary() = %+v", got)
	}
	if got[1].File != "b.dwg" || got[1].Layout != "L1" {
		t.Errorf("expected file and layout to be stamped, got %+v", got[1])
	}

	got[0].DrawingNumber = "changed"
	if l.Summary()[0].DrawingNumber != "1" {
		t.Error("Summary() returned shared storage")
	}

	l.Clear()
	if l.Len() != 0 {
		t.Errorf("expected empty ledger after Clear, got %d", l.Len())
	}
}

func TestSkippedList(t *testing.T) {
	s := NewSkippedList()
	s.Add(SkippedEntry{Identifier: FileIdentifier("a.dwg"), Reason: "open failed"})
	s.Add(SkippedEntry{Identifier: LayoutIdentifier("a.dwg", "L2"), Reason: "missing"})

	entries := s.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Identifier != "a.dwg - L2" {
		t.Errorf("Identifier = %q, want %q", entries[1].Identifier, "a.dwg - L2")
	}

	s.Clear()
	if s.Len() != 0 {
		t.Error("expected empty list after Clear")
	}
}
