package export_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mgarrido/harvest-export/internal/export"
)

func TestResolveOutputPath(t *testing.T) {
	tests := []struct {
		name      string
		outputDir string
		want      string
	}{
		{"harvest_export.csv", "output", filepath.Join("output", "harvest_export.csv")},
		{filepath.Join("custom", "file.csv"), "output", filepath.Join("custom", "file.csv")},
		{"/abs/file.csv", "output", "/abs/file.csv"},
	}
	for _, tt := range tests {
		if got := export.ResolveOutputPath(tt.name, tt.outputDir); got != tt.want {
			t.Errorf("ResolveOutputPath(%q, %q) = %q, want %q", tt.name, tt.outputDir, got, tt.want)
		}
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.csv")
	header := []string{"Date", "Notes", "Hours"}
	records := [][]string{
		{"2026-08-17", "plain", "2"},
		{"2026-08-18", "with,comma and \"quotes\"", "1.5"},
		{"2026-08-19", "multi\nline", "0.25"},
	}

	if err := export.WriteCSV(path, header, records); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	got, err := export.ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	want := append([][]string{header}, records...)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %v\nwant %v", got, want)
	}

	// No temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file still present after successful write")
	}
}

func TestWriteCSVFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	// A directory at the target path makes the temp-file create fail.
	path := filepath.Join(dir, "out.csv")
	if err := os.MkdirAll(path+".tmp", 0o755); err != nil {
		t.Fatal(err)
	}

	err := export.WriteCSV(path, []string{"a"}, nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("failed write produced an output file")
	}
}

func TestWriteRawJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "raw.json")
	payload := map[string][]int{"time_entries": {1, 2, 3}}

	if err := export.WriteRawJSON(path, payload); err != nil {
		t.Fatalf("WriteRawJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	want := "{\n  \"time_entries\": [\n    1,\n    2,\n    3\n  ]\n}"
	if string(data) != want {
		t.Errorf("raw JSON = %q, want pretty-printed %q", data, want)
	}
}
