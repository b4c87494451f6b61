package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"titleblock/internal/application"
	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

func TestMappingStore_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Dict", "AttributeDictionary.yaml")
	store := NewMappingStore(path)

	m, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(m) != 0 {
		t.Errorf("expected empty mapping, got %v", m)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected mapping file to be created: %v", err)
	}
}

func TestMappingStore_RoundTrip(t *testing.T) {
	store := NewMappingStore(filepath.Join(t.TempDir(), "map.yaml"))
	want := domain.FieldMapping{"b": "VARIABLE", "A": "DWG No.", "T3": "REV 1 REV"}

	if err := store.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	data, _ := os.ReadFile(store.Path())
	if !strings.HasPrefix(string(data), "A: DWG No.\nb: VARIABLE\n") {
		t.Errorf("expected case-insensitive tag order, got:\n%s", data)
	}
}

func TestMappingStore_ParseErrorNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("T1: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewMappingStore(path).Load()
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("expected error to name %s, got %v", path, err)
	}
}

func TestTableStore_RoundTrip(t *testing.T) {
	store := NewTableStore(filepath.Join(t.TempDir(), "table.yaml"))
	want := &ports.ReferenceTable{
		SampleFile: "sample.dwg",
		PlotStyle:  "mono.ctb",
		Rows: []domain.TableRow{
			{Tag: "T1", Role: domain.RoleDrawingNumber, Value: "A-1"},
			{Tag: "T2", Role: domain.RevisionSlot(3, domain.FieldDate), Value: "01/02"},
			{Tag: "T3", Role: domain.RoleStatic, StaticValue: "ACME"},
			{Tag: "T4", Value: "free"},
		},
	}

	if err := store.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestTableStore_LoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewTableStore(filepath.Join(dir, "none.yaml")).Load()
	if !errors.Is(err, application.ErrNoReferenceTable) {
		t.Errorf("expected ErrNoReferenceTable, got %v", err)
	}

	tests := []struct {
		name    string
		content string
	}{
		{"duplicate tag", "rows:\n  - {tag: T1, value: a}\n  - {tag: T1, value: b}\n"},
		{"unknown assignment", "rows:\n  - {tag: T1, value: a, assignment: REV 0 REV}\n"},
		{"malformed", "rows: {"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := NewTableStore(path).Load()
			if !errors.Is(err, domain.ErrParse) {
				t.Errorf("expected parse error, got %v", err)
			}
		})
	}
}

func TestSettingsStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store := NewSettingsStore(path)

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, domain.DefaultRunSettings()) {
		t.Errorf("expected defaults, got %+v", got)
	}

	partial := "increment_revision: true\nrevision_type: Numerical\nattributes:\n  DESC: ISSUED FOR REVIEW\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}
	got, err = store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !got.ZoomExtents {
		t.Error("expected zoom_extents to keep its default")
	}
	if !got.IncrementRevision || got.RevisionType != domain.RevisionNumerical {
		t.Errorf("unexpected revision settings: %+v", got)
	}
	if got.Attributes["DESC"] != "ISSUED FOR REVIEW" {
		t.Errorf("unexpected attributes: %v", got.Attributes)
	}

	got.PlotToPDF = true
	got.ReadReplace = map[string]string{"OLD": "NEW"}
	if err := store.Save(got); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	again, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(again, got) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", again, got)
	}
}

func TestDrawingFinder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"B.dwg", "A.dwg", "notes.txt", filepath.Join("sub", "C.dwg")} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "folder.dwg"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		pattern string
		want    []string
	}{
		{"", []string{"A.dwg", "B.dwg"}},
		{"**/*.dwg", []string{"A.dwg", "B.dwg", filepath.Join("sub", "C.dwg")}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			f, err := NewDrawingFinder(tt.pattern)
			if err != nil {
				t.Fatalf("NewDrawingFinder failed: %v", err)
			}
			got, err := f.Find(dir)
			if err != nil {
				t.Fatalf("Find failed: %v", err)
			}
			var want []string
			for _, w := range tt.want {
				want = append(want, filepath.Join(dir, w))
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}

	if _, err := NewDrawingFinder("[unclosed"); err == nil {
		t.Error("expected invalid pattern error")
	}
}
