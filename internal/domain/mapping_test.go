package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestMergeMapping_Idempotent(t *testing.T) {
	existing := FieldMapping{"T1": "DWG No."}
	asked := 0
	resolve := func(Conflict) Resolution {
		asked++
		return ResolveReplace
	}

	res, err := MergeMapping(existing, FieldMapping{"T1": "DWG No."}, resolve)
	if err != nil {
		t.Fatalf("MergeMapping() unexpected error: %v", err)
	}
	if asked != 0 {
		t.Errorf("expected no conflict prompt, got %d", asked)
	}
	if res.Changed() {
		t.Error("expected unchanged mapping")
	}
	if !reflect.DeepEqual(res.Mapping, existing) {
		t.Errorf("Mapping = %v, want %v", res.Mapping, existing)
	}
}

func TestMergeMapping_Conflicts(t *testing.T) {
	existing := FieldMapping{"a": "REVISION", "B": "STATIC", "c": "VARIABLE", "NEW0": ""}
	proposed := FieldMapping{"a": "DWG No.", "B": "VARIABLE", "c": "STATIC", "d": "DWG TITLE 1", " ": "x", "e": " "}

	tests := []struct {
		name      string
		answers   []Resolution
		want      FieldMapping
		wantAsked int
		cancelled bool
	}{
		{
			name:      "keep every conflict",
			answers:   []Resolution{ResolveKeep, ResolveKeep, ResolveKeep},
			want:      FieldMapping{"a": "REVISION", "B": "STATIC", "c": "VARIABLE", "d": "DWG TITLE 1", "NEW0": ""},
			wantAsked: 3,
		},
		{
			name:      "replace first then keep",
			answers:   []Resolution{ResolveReplace, ResolveKeep, ResolveKeep},
			want:      FieldMapping{"a": "DWG No.", "B": "STATIC", "c": "VARIABLE", "d": "DWG TITLE 1", "NEW0": ""},
			wantAsked: 3,
		},
		{
			name:      "replace all answers the rest",
			answers:   []Resolution{ResolveKeep, ResolveReplaceAll},
			want:      FieldMapping{"a": "REVISION", "B": "VARIABLE", "c": "STATIC", "d": "DWG TITLE 1", "NEW0": ""},
			wantAsked: 2,
		},
		{
			name:      "keep all answers the rest",
			answers:   []Resolution{ResolveReplace, ResolveKeepAll},
			want:      FieldMapping{"a": "DWG No.", "B": "STATIC", "c": "VARIABLE", "d": "DWG TITLE 1", "NEW0": ""},
			wantAsked: 2,
		},
		{
			name:      "cancel discards everything",
			answers:   []Resolution{ResolveReplace, ResolveCancel},
			want:      existing,
			wantAsked: 2,
			cancelled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asked := 0
			var order []string
			res, err := MergeMapping(existing, proposed, func(c Conflict) Resolution {
				order = append(order, c.Tag)
				a := tt.answers[asked]
				asked++
				return a
			})
			if err != nil {
				t.Fatalf("MergeMapping() unexpected error: %v", err)
			}
			if asked != tt.wantAsked {
				t.Errorf("asked %d times, want %d", asked, tt.wantAsked)
			}
			if res.Cancelled != tt.cancelled {
				t.Errorf("Cancelled = %v, want %v", res.Cancelled, tt.cancelled)
			}
			if !reflect.DeepEqual(res.Mapping, tt.want) {
				t.Errorf("Mapping = %v, want %v", res.Mapping, tt.want)
			}
			if len(order) > 0 && order[0] != "a" {
				t.Errorf("expected case-insensitive order starting with a, got %v", order)
			}
		})
	}
}

func TestMergeMapping_NothingToSave(t *testing.T) {
	_, err := MergeMapping(FieldMapping{}, FieldMapping{"T1": "  "}, nil)
	if !errors.Is(err, ErrNothingToSave) {
		t.Errorf("expected ErrNothingToSave, got %v", err)
	}
}

func TestMergeMapping_NilResolverKeeps(t *testing.T) {
	res, err := MergeMapping(FieldMapping{"T1": "REVISION"}, FieldMapping{"T1": "STATIC"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Mapping["T1"] != "REVISION" {
		t.Errorf("expected conflict to be kept without a resolver, got %q", res.Mapping["T1"])
	}
}

func TestStatusOf(t *testing.T) {
	existing := FieldMapping{"T1": "REVISION"}
	tests := []struct {
		tag, proposed string
		want          MappingStatus
	}{
		{"T1", "", StatusUnmapped},
		{"T1", "REVISION", StatusMapped},
		{"T1", "STATIC", StatusNewChanged},
		{"T9", "STATIC", StatusNewChanged},
	}
	for _, tt := range tests {
		if got := StatusOf(existing, tt.tag, tt.proposed); got != tt.want {
			t.Errorf("StatusOf(%s, %q) = %s, want %s", tt.tag, tt.proposed, got, tt.want)
		}
	}
}

func TestProposeSample(t *testing.T) {
	records := []AttributeRecord{
		{Tag: "T1", Value: "DWG-1"},
		{Tag: "T2", Value: "A"},
		{Tag: "T1", Value: "ignored"},
		{Tag: "T3", Value: "x"},
	}
	mapping := FieldMapping{"T1": "DWG No.", "T3": "REV 99 NOTHING"}

	rows := ProposeSample(records, mapping)
	if len(rows) != 3 {
		t.Fatalf("expected one row per tag, got %d", len(rows))
	}
	if rows[0].Sample != "DWG-1" || rows[0].Role != RoleDrawingNumber || rows[0].Status != StatusMapped {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Role.IsAssigned() || rows[1].Status != StatusUnmapped {
		t.Errorf("row 1 = %+v", rows[1])
	}
	if rows[2].Role.IsAssigned() {
		t.Errorf("expected invalid stored role to stay unassigned, got %s", rows[2].Role)
	}

	table := ReferenceTable(rows)
	if err := ValidateTable(table); err != nil {
		t.Errorf("ValidateTable() unexpected error: %v", err)
	}
}
