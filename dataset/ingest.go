package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ============================================================================
// CSV INGESTION · Parses raw CSV into schema-typed rows
// ============================================================================
// Every measure is coerced to Number here and nowhere else. Dimensions are
// trimmed; null tokens become "". A missing non-nullable value rejects the
// whole dataset with ErrInvalidRecord.
// ============================================================================

// ErrInvalidRecord marks a structurally invalid dataset record.
var ErrInvalidRecord = errors.New("invalid dataset record")

// Row is one ingested record keyed by schema column.
type Row struct {
	Dimensions map[string]string
	Measures   map[string]Number
}

// ParseCSV parses CSV bytes into Rows using the schema for classification.
// Header names are matched case-insensitively; unknown columns are skipped.
func ParseCSV(data []byte, sch Schema) ([]Row, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s headers: %w", sch.Name, err)
	}

	// column index -> schema column
	mapping := make([]*Column, len(headers))
	seen := make(map[string]bool, len(headers))
	for i, h := range headers {
		if c, ok := sch.Column(toSnakeCase(h)); ok {
			col := c
			mapping[i] = &col
			seen[c.Key] = true
		}
	}
	for _, c := range sch.Columns {
		if !seen[c.Key] {
			return nil, fmt.Errorf("%w: %s is missing column %q", ErrInvalidRecord, sch.Name, c.Key)
		}
	}

	var rows []Row
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrInvalidRecord, sch.Name, line, err)
		}

		row := Row{
			Dimensions: make(map[string]string),
			Measures:   make(map[string]Number),
		}
		for i, val := range record {
			if i >= len(mapping) || mapping[i] == nil {
				continue
			}
			col := mapping[i]
			switch col.Kind {
			case Measure:
				n := ParseNumber(val)
				if !n.Valid && !col.Nullable {
					return nil, fmt.Errorf("%w: %s line %d: %s=%q is not numeric",
						ErrInvalidRecord, sch.Name, line, col.Key, val)
				}
				row.Measures[col.Key] = n
			default:
				v := strings.TrimSpace(val)
				if isNullToken(v) {
					v = ""
				}
				if v == "" && !col.Nullable {
					return nil, fmt.Errorf("%w: %s line %d: %s %s is empty",
						ErrInvalidRecord, sch.Name, line, col.Kind, col.Key)
				}
				row.Dimensions[col.Key] = v
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// toSnakeCase converts "Column Name" → "column_name".
func toSnakeCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
