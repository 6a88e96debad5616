package vocab

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column names expected in the vocabulary CSV header.
const (
	ColumnEnglish       = "English"
	ColumnCategory      = "Vocabulary Category"
	DefaultScriptColumn = "Syriac"
)

//go:embed vocab_list.csv
var defaultList string

// ReadCSV parses a vocabulary CSV with a header row. scriptColumn names the
// column holding the prompt text; an empty value selects DefaultScriptColumn.
// Rows that lack any required value are kept out of the result.
func ReadCSV(r io.Reader, scriptColumn string) ([]Record, error) {
	if scriptColumn == "" {
		scriptColumn = DefaultScriptColumn
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // Ragged rows are filtered, not rejected
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	englishIdx, scriptIdx, categoryIdx := -1, -1, -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch name {
		case ColumnEnglish:
			englishIdx = i
		case scriptColumn:
			scriptIdx = i
		case ColumnCategory:
			categoryIdx = i
		}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		rec := Record{
			English:      field(row, englishIdx),
			TargetScript: field(row, scriptIdx),
			Category:     field(row, categoryIdx),
		}.normalize()
		if !rec.Complete() {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// field returns row[idx] or "" when the column is absent or the row is short.
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// LoadFile reads a vocabulary CSV from disk into a catalog.
func LoadFile(path, scriptColumn string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary: %w", err)
	}
	defer f.Close()

	records, err := ReadCSV(f, scriptColumn)
	if err != nil {
		return nil, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}
	return NewCatalog(records), nil
}

// Load returns the catalog at path, or the built-in list when path is empty.
func Load(path, scriptColumn string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path, scriptColumn)
}

// Default returns the catalog built from the embedded vocabulary list.
func Default() *Catalog {
	records, err := ReadCSV(strings.NewReader(defaultList), DefaultScriptColumn)
	if err != nil {
		panic(fmt.Sprintf("embedded vocabulary is malformed: %v", err))
	}
	return NewCatalog(records)
}
