// Package export writes the CSV and raw JSON artifacts.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ResolveOutputPath places a bare filename under the configured output
// directory; a name that already carries a directory is used as-is.
func ResolveOutputPath(name, outputDir string) string {
	if filepath.Dir(name) != "." {
		return name
	}
	return filepath.Join(outputDir, name)
}

// WriteCSV writes header plus records as UTF-8 comma-delimited CSV,
// creating missing parent directories. The write goes through a
// temporary file renamed into place on success, so a failure mid-write
// never leaves a truncated export behind.
func WriteCSV(path string, header []string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	w := csv.NewWriter(f)
	writeErr := w.Write(header)
	if writeErr == nil {
		writeErr = w.WriteAll(records)
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing CSV: %w", writeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ReadCSV loads a previously written export as a rectangular grid.
func ReadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Resume blocks make rows ragged relative to the header.
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV %s: %w", path, err)
	}
	return rows, nil
}

// WriteRawJSON pretty-prints v to path, creating parent directories.
// Uses the same atomic temp-and-rename scheme as WriteCSV.
func WriteRawJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
