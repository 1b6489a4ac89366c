package record

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"maps"
	"slices"

	"github.com/matzehuels/prism/pkg/errors"
)

// WriteJSON encodes records as an indented JSON array.
func WriteJSON(w io.Writer, recs []Record) error {
	if recs == nil {
		recs = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}

// WriteCSV encodes records with a header row. When columns is empty the
// header is the sorted union of every record's fields.
func WriteCSV(w io.Writer, recs []Record, columns ...string) error {
	if len(columns) == 0 {
		columns = Columns(recs)
	}
	if len(columns) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no columns to write")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	row := make([]string, len(columns))
	for _, rec := range recs {
		for i, col := range columns {
			row[i] = ""
			if v, ok := rec[col]; ok {
				row[i] = v.String()
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Columns returns the sorted union of field names across recs.
func Columns(recs []Record) []string {
	seen := make(map[string]struct{})
	for _, rec := range recs {
		for k := range rec {
			seen[k] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}
