package domain

import (
	"errors"
	"testing"
)

func slotRow(tag string, i int, f RevisionField, value string) TableRow {
	return TableRow{Tag: tag, Role: RevisionSlot(i, f), Value: value}
}

// fullTable has three slots, all filled, plus REVISION and a drawing number
func fullTable() []TableRow {
	return []TableRow{
		{Tag: "DWGNO", Role: RoleDrawingNumber, Value: "DWG-1"},
		{Tag: "REVISION", Role: RoleRevision, Value: "C", StaticValue: "keep"},
		slotRow("R1", 1, FieldRev, "A"),
		slotRow("R1_DATE", 1, FieldDate, "01.01.24"),
		slotRow("R1_DESC", 1, FieldDesc, "FIRST"),
		slotRow("R2", 2, FieldRev, "B"),
		slotRow("R2_DATE", 2, FieldDate, "02.01.24"),
		slotRow("R2_DESC", 2, FieldDesc, "SECOND"),
		slotRow("R3", 3, FieldRev, "C"),
		slotRow("R3_DATE", 3, FieldDate, "03.01.24"),
		slotRow("R3_DESC", 3, FieldDesc, "THIRD"),
	}
}

func valueByTag(rows []TableRow, tag string) (string, bool) {
	for _, r := range rows {
		if r.Tag == tag {
			return r.Value, true
		}
	}
	return "", false
}

func TestLatestRevision(t *testing.T) {
	tests := []struct {
		name      string
		rows      []TableRow
		wantValue string
		wantIndex int
		wantFound bool
	}{
		{
			name: "no slots",
			rows: []TableRow{{Tag: "T1", Role: RoleDrawingNumber, Value: "X"}},
		},
		{
			name: "empty slots",
			rows: []TableRow{slotRow("R1", 1, FieldRev, ""), slotRow("R2", 2, FieldRev, "")},
		},
		{
			name:      "contiguous slots",
			rows:      []TableRow{slotRow("R1", 1, FieldRev, "A"), slotRow("R2", 2, FieldRev, "B"), slotRow("R3", 3, FieldRev, "")},
			wantValue: "B",
			wantIndex: 2,
			wantFound: true,
		},
		{
			name:      "gap stops the scan",
			rows:      []TableRow{slotRow("R1", 1, FieldRev, "A"), slotRow("R2", 2, FieldRev, ""), slotRow("R3", 3, FieldRev, "C")},
			wantValue: "A",
			wantIndex: 1,
			wantFound: true,
		},
		{
			name: "filled slot without REV value keeps previous",
			rows: []TableRow{
				slotRow("R1", 1, FieldRev, "A"),
				slotRow("R2", 2, FieldRev, ""),
				slotRow("R2_DATE", 2, FieldDate, "today"),
			},
			wantValue: "A",
			wantIndex: 1,
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LatestRevision(tt.rows)
			if got.Value != tt.wantValue || got.Index != tt.wantIndex || got.Found != tt.wantFound {
				t.Errorf("LatestRevision() = %+v, want value=%q index=%d found=%v", got, tt.wantValue, tt.wantIndex, tt.wantFound)
			}
		})
	}
}

func TestRevisionsFull(t *testing.T) {
	if !RevisionsFull(fullTable()) {
		t.Error("expected full table to be full")
	}
	if !RevisionsFull(nil) {
		t.Error("expected table without slots to be full")
	}
	rows := []TableRow{slotRow("R1", 1, FieldRev, "A"), slotRow("R2", 2, FieldRev, "")}
	if RevisionsFull(rows) {
		t.Error("expected table with empty slot 2 not to be full")
	}
}

func TestNextRevisionValue(t *testing.T) {
	tests := []struct {
		name    string
		kind    RevisionType
		prior   string
		hardset string
		want    string
		wantErr error
	}{
		{name: "alphabetical from nothing", kind: RevisionAlphabetical, want: "A"},
		{name: "alphabetical from number", kind: RevisionAlphabetical, prior: "3", want: "A"},
		{name: "alphabetical next letter", kind: RevisionAlphabetical, prior: "B", want: "C"},
		{name: "alphabetical lower case", kind: RevisionAlphabetical, prior: "b", want: "C"},
		{name: "alphabetical past Z", kind: RevisionAlphabetical, prior: "Z", want: "["},
		{name: "alphabetical multi char", kind: RevisionAlphabetical, prior: "AB", wantErr: ErrInvalidRevision},
		{name: "numerical from nothing", kind: RevisionNumerical, want: "1"},
		{name: "numerical from letter", kind: RevisionNumerical, prior: "C", want: "0"},
		{name: "numerical increment", kind: RevisionNumerical, prior: "9", want: "10"},
		{name: "numerical padded", kind: RevisionNumerical, prior: " 4 ", want: "5"},
		{name: "numerical mixed", kind: RevisionNumerical, prior: "P1", wantErr: ErrInvalidRevision},
		{name: "hardset", kind: RevisionHardset, hardset: "IFC", want: "IFC"},
		{name: "hardset unset", kind: RevisionHardset, wantErr: ErrInvalidConfig},
		{name: "unknown type", kind: RevisionType("Roman"), wantErr: ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextRevisionValue(tt.kind, tt.prior, tt.hardset)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NextRevisionValue() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NextRevisionValue() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("NextRevisionValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShiftRevisions(t *testing.T) {
	shifted := ShiftRevisions(fullTable(), "Layout1")

	want := []struct {
		tag   string
		role  Role
		value string
	}{
		{"R1", RevisionSlot(1, FieldRev), "B"},
		{"R1_DATE", RevisionSlot(1, FieldDate), "02.01.24"},
		{"R1_DESC", RevisionSlot(1, FieldDesc), "SECOND"},
		{"R2", RevisionSlot(2, FieldRev), "C"},
		{"R2_DATE", RevisionSlot(2, FieldDate), "03.01.24"},
		{"R2_DESC", RevisionSlot(2, FieldDesc), "THIRD"},
		{"R3", RevisionSlot(3, FieldRev), ""},
		{"R3_DATE", RevisionSlot(3, FieldDate), ""},
		{"R3_DESC", RevisionSlot(3, FieldDesc), ""},
		{"REVISION", RoleRevision, ""},
	}

	if len(shifted) != len(want) {
		t.Fatalf("expected %d rows, got %d: %+v", len(want), len(shifted), shifted)
	}
	for i, w := range want {
		got := shifted[i]
		if got.Tag != w.tag || got.Role != w.role || got.Value != w.value {
			t.Errorf("row %d = {%s %s %q}, want {%s %s %q}", i, got.Tag, got.Role, got.Value, w.tag, w.role, w.value)
		}
		if got.Layout != "Layout1" {
			t.Errorf("row %d layout = %q, want Layout1", i, got.Layout)
		}
	}
	if last := shifted[len(shifted)-1]; last.StaticValue != "keep" {
		t.Errorf("REVISION static value = %q, want keep", last.StaticValue)
	}
}

func TestIncrementRevision_Rotation(t *testing.T) {
	settings := RunSettings{
		IncrementRevision: true,
		RevisionType:      RevisionAlphabetical,
		Attributes:        map[string]string{"DATE": "04.01.24", "DESC": "FOURTH"},
	}

	table := fullTable()
	delta, err := IncrementRevision(table, settings, "Layout1")
	if err != nil {
		t.Fatalf("IncrementRevision() unexpected error: %v", err)
	}

	checks := map[string]string{
		"R1": "B", "R1_DESC": "SECOND",
		"R2": "C", "R2_DESC": "THIRD",
		"R3": "D", "R3_DATE": "04.01.24", "R3_DESC": "FOURTH",
		"REVISION": "D",
	}
	for tag, want := range checks {
		got, ok := valueByTag(delta, tag)
		if !ok || got != want {
			t.Errorf("delta %s = %q (present %v), want %q", tag, got, ok, want)
		}
	}

	if v, _ := valueByTag(table, "R1"); v != "A" {
		t.Errorf("input table was modified: R1 = %q", v)
	}

	// a second pass over the new state rotates again and never grows a slot
	next := ApplyDelta(table, delta)
	delta2, err := IncrementRevision(next, settings, "Layout1")
	if err != nil {
		t.Fatalf("second IncrementRevision() unexpected error: %v", err)
	}
	if MaxRevisionIndex(delta2) != 3 {
		t.Errorf("expected no slot beyond 3, got max %d", MaxRevisionIndex(delta2))
	}
	if v, _ := valueByTag(delta2, "R1"); v != "C" {
		t.Errorf("second pass R1 = %q, want C", v)
	}
	if v, _ := valueByTag(delta2, "R3"); v != "E" {
		t.Errorf("second pass R3 = %q, want E", v)
	}
}

func TestIncrementRevision_NotFull(t *testing.T) {
	rows := []TableRow{
		{Tag: "REV", Role: RoleRevision, Value: "A"},
		slotRow("R1", 1, FieldRev, "A"),
		slotRow("R1_DATE", 1, FieldDate, "01.01.24"),
		slotRow("R2", 2, FieldRev, ""),
		slotRow("R2_DATE", 2, FieldDate, ""),
		slotRow("R3", 3, FieldRev, ""),
		slotRow("R3_DATE", 3, FieldDate, ""),
	}
	settings := RunSettings{
		RevisionType: RevisionAlphabetical,
		Attributes:   map[string]string{"date": "05.05.24", "DESC": "   "},
	}

	delta, err := IncrementRevision(rows, settings, "L")
	if err != nil {
		t.Fatalf("IncrementRevision() unexpected error: %v", err)
	}

	want := []struct{ tag, value string }{
		{"R2_DATE", "05.05.24"},
		{"R2", "B"},
		{"REV", "B"},
	}
	if len(delta) != len(want) {
		t.Fatalf("expected %d touched rows, got %d: %+v", len(want), len(delta), delta)
	}
	for i, w := range want {
		if delta[i].Tag != w.tag || delta[i].Value != w.value {
			t.Errorf("delta[%d] = %s=%q, want %s=%q", i, delta[i].Tag, delta[i].Value, w.tag, w.value)
		}
	}
}

func TestIncrementRevision_Errors(t *testing.T) {
	tests := []struct {
		name     string
		rows     []TableRow
		settings RunSettings
		wantErr  error
	}{
		{
			name:     "attribute without slot row",
			rows:     []TableRow{slotRow("R1", 1, FieldRev, "")},
			settings: RunSettings{RevisionType: RevisionNumerical, Attributes: map[string]string{"CHECKED": "JB"}},
			wantErr:  ErrMissingField,
		},
		{
			name:     "no slot rows at all",
			rows:     []TableRow{{Tag: "T", Role: RoleRevision}},
			settings: RunSettings{RevisionType: RevisionNumerical},
			wantErr:  ErrMissingField,
		},
		{
			name:     "hardset without value",
			rows:     []TableRow{slotRow("R1", 1, FieldRev, "")},
			settings: RunSettings{RevisionType: RevisionHardset},
			wantErr:  ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := IncrementRevision(tt.rows, tt.settings, "L")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("IncrementRevision() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDelta(t *testing.T) {
	snapshot := []TableRow{
		{Tag: "A", Value: "1"},
		{Tag: "B", Value: "2"},
	}
	delta := []TableRow{{Tag: "B", Value: "x"}, {Tag: "B", Value: "y"}, {Tag: "Z", Value: "z"}}

	got := ApplyDelta(snapshot, delta)
	if got[0].Value != "1" || got[1].Value != "y" {
		t.Errorf("ApplyDelta() = %+v", got)
	}
	if snapshot[1].Value != "2" {
		t.Error("ApplyDelta() modified its input")
	}
	if len(got) != 2 {
		t.Errorf("expected delta-only tags to be ignored, got %d rows", len(got))
	}
}
