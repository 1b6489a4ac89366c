package record

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/prism/pkg/errors"
)

// Format identifies an input encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the input format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupportedFileType,
			"unsupported file type %q: use JSON (.json), CSV (.csv) or YAML (.yaml, .yml)", filepath.Ext(path))
	}
}

// ParseFormat validates a format name given on the command line.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupportedFileType, "unsupported input format %q (must be json, csv or yaml)", s)
	}
}

// Read decodes records from r in the given format.
func Read(r io.Reader, format Format) ([]Record, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatCSV:
		return ReadCSV(r)
	case FormatYAML:
		return ReadYAML(r)
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedFileType, "unsupported input format %q", format)
	}
}

// ImportFile reads the file at path and decodes it according to its
// extension. The file is closed before ImportFile returns.
func ImportFile(path string) ([]Record, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	recs, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// ReadJSON decodes a JSON array of objects.
//
//	[
//	  {"label": "Product A", "value": 42},
//	  {"label": "Product B", "value": "78"}
//	]
//
// Array elements that are not objects become empty records so that item
// indexes (and therefore default labels and palette colors) are preserved.
// A top-level value that is not an array is rejected.
func ReadJSON(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, errors.New(errors.ErrCodeInvalidJSON, "expected a JSON array of records, got %s", typeErr.Value)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidJSON, err, "decode records")
	}

	recs := make([]Record, len(raw))
	for i, msg := range raw {
		rec := Record{}
		trimmed := bytes.TrimSpace(msg)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			d := json.NewDecoder(bytes.NewReader(trimmed))
			d.UseNumber()
			var obj map[string]any
			if err := d.Decode(&obj); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidJSON, err, "record %d", i)
			}
			rec = fromMap(obj)
		}
		recs[i] = rec
	}
	return recs, nil
}

// ReadYAML decodes a YAML sequence of mappings. Scalars follow the same rules
// as [ReadJSON]; non-mapping elements become empty records.
func ReadYAML(r io.Reader) ([]Record, error) {
	var raw []any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidYAML, err, "decode records")
	}

	recs := make([]Record, len(raw))
	for i, item := range raw {
		switch m := item.(type) {
		case map[string]any:
			recs[i] = fromMap(m)
		case map[any]any:
			conv := make(map[string]any, len(m))
			for k, v := range m {
				conv[fmt.Sprint(k)] = v
			}
			recs[i] = fromMap(conv)
		default:
			recs[i] = Record{}
		}
	}
	return recs, nil
}

// ReadCSV decodes comma-separated data whose first row holds the field names.
//
// Header names and cells are trimmed. Blank rows are skipped, empty cells are
// omitted from the record, and cells that parse as finite floats become
// numbers. Rows may be shorter or longer than the header; extra cells are
// ignored.
func ReadCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidCSV, "missing header row")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCSV, err, "read header row")
	}

	columns := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if errors.ValidateFieldName(h) == nil {
			columns[i] = h
		}
	}

	var recs []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCSV, err, "read row")
		}

		rec := Record{}
		for i, cell := range row {
			if i >= len(columns) {
				break
			}
			cell = strings.TrimSpace(cell)
			if columns[i] == "" || cell == "" {
				continue
			}
			rec[columns[i]] = parseCell(cell)
		}
		if len(rec) == 0 && blankRow(row) {
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func parseCell(cell string) Value {
	if f, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Number(f)
	}
	return String(cell)
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func fromMap(m map[string]any) Record {
	rec := make(Record, len(m))
	for k, v := range m {
		if val, ok := fromAny(v); ok {
			rec[k] = val
		}
	}
	return rec
}

// fromAny converts a decoded JSON/YAML scalar into a Value. Nulls and
// nested structures report false.
func fromAny(v any) (Value, bool) {
	switch x := v.(type) {
	case nil:
		return Value{}, false
	case string:
		return String(x), true
	case bool:
		return String(strconv.FormatBool(x)), true
	case json.Number:
		if f, err := x.Float64(); err == nil && !math.IsInf(f, 0) {
			return Number(f), true
		}
		return String(x.String()), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return String(strconv.FormatFloat(x, 'g', -1, 64)), true
		}
		return Number(x), true
	case float32:
		return fromAny(float64(x))
	case int:
		return Number(float64(x)), true
	case int64:
		return Number(float64(x)), true
	case uint64:
		return Number(float64(x)), true
	case time.Time:
		return String(x.Format(time.RFC3339)), true
	default:
		return Value{}, false
	}
}
