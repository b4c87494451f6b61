package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in       string
		wantKind RoleKind
		want     Role
	}{
		{"", RoleUnassigned, Role{}},
		{"REVISION", RoleFixed, RoleRevision},
		{"DWG No.", RoleFixed, RoleDrawingNumber},
		{"DWG TITLE 3", RoleFixed, TitleRole(3)},
		{"REV 2 DATE", RoleRevisionSlot, RevisionSlot(2, FieldDate)},
		{"REV 10 RPEQSIGN", RoleRevisionSlot, RevisionSlot(10, FieldRPEQSign)},
		{"REV 0 DATE", RoleFixed, Fixed("REV 0 DATE")},
		{"REV x DATE", RoleFixed, Fixed("REV x DATE")},
		{"REV 1 COLOUR", RoleFixed, Fixed("REV 1 COLOUR")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseRole(tt.in)
			if got.Kind() != tt.wantKind {
				t.Errorf("ParseRole(%q).Kind() = %s, want %s", tt.in, got.Kind(), tt.wantKind)
			}
			if got != tt.want {
				t.Errorf("ParseRole(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestAssignmentOptions(t *testing.T) {
	opts := AssignmentOptions()
	want := 4 + TitleCount + MaxRevisionSlots*len(RevisionFields)
	if len(opts) != want {
		t.Errorf("expected %d options, got %d", want, len(opts))
	}
	for _, s := range []string{"VARIABLE", "DWG TITLE 4", "REV 10 COMPANY"} {
		if !IsAssignmentOption(s) {
			t.Errorf("expected %q to be an option", s)
		}
	}
	if IsAssignmentOption("REV 11 REV") {
		t.Error("slot 11 should not be offered")
	}
}

func TestValidateTable(t *testing.T) {
	err := ValidateTable([]TableRow{{Tag: "A"}, {Tag: "B"}, {Tag: "A"}})
	if !errors.Is(err, ErrDuplicateTag) {
		t.Errorf("expected ErrDuplicateTag, got %v", err)
	}
	if err := ValidateTable([]TableRow{{Tag: " "}}); err == nil {
		t.Error("expected blank tag to be rejected")
	}
}
