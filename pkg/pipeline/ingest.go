package pipeline

import (
	"github.com/matzehuels/prism/pkg/record"
)

// Ingest reads the records of opts.Source. The format follows the file
// extension.
func Ingest(opts Options) ([]record.Record, error) {
	return record.ImportFile(opts.Source)
}
