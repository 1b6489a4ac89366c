// Package record provides the loosely-typed input rows that prism charts are
// built from, and the readers that produce them.
//
// A [Record] maps field names to scalar [Value]s (a number or a string). The
// field set is not fixed: two rows of the same file may carry different keys,
// and a row may omit a field a chart needs. Turning a record into the typed
// shape a chart requires is the job of pkg/chart; this package only preserves
// what the user supplied, in input order.
//
// # Ingestion
//
// Records are read from JSON, CSV or YAML:
//
//	recs, err := record.ImportFile("sales.csv")    // dispatch on extension
//	recs, err := record.ReadJSON(r)                // [{"label": "A", "value": 3}, ...]
//	recs, err := record.ReadCSV(r)                 // header row + data rows
//	recs, err := record.ReadYAML(r)                // - {label: A, value: 3}
//
// Scalar rules are shared by all readers:
//   - numbers (and CSV cells that parse as finite floats) become numeric values
//   - strings stay strings; booleans become "true"/"false"
//   - null, empty CSV cells, nested arrays and objects are dropped
//
// Ingestion is the only place prism reports malformed input; every error is
// an *errors.Error with an INVALID_* or UNSUPPORTED_FILE_TYPE code.
//
// # Samples
//
// [Sample] returns small built-in datasets for each chart type, useful for
// trying prism without preparing a file.
package record
