package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/prism/pkg/errors"
	"github.com/matzehuels/prism/pkg/record"
)

// sampleCommand creates the sample command, which writes a built-in dataset
// for a chart type.
func (c *CLI) sampleCommand() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "sample [chart]",
		Short: "Write a built-in sample dataset",
		Long: `Write the built-in sample dataset for a chart type as JSON or CSV.

Without arguments, lists the available samples. The format defaults to the
extension of -o, then to JSON. Without -o the data goes to stdout.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: record.SampleNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, name := range record.SampleNames() {
					fmt.Println(name)
				}
				return nil
			}

			recs, err := record.Sample(args[0])
			if err != nil {
				return err
			}
			f, err := sampleFormat(format, output)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := writeRecords(&buf, recs, f); err != nil {
				return err
			}
			if output == "" {
				_, err := os.Stdout.Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Wrote %d %s records", len(recs), args[0])
			printFile(output)
			printNextStep("Render it", fmt.Sprintf("prism render %s -c %s", output, args[0]))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json, csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// sampleFormat picks the sample output format from the flag or the output
// file extension. YAML is read but not written.
func sampleFormat(format, output string) (record.Format, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(output), ".")
	}
	if format == "" {
		return record.FormatJSON, nil
	}
	f, err := record.ParseFormat(format)
	if err != nil {
		return "", err
	}
	if f != record.FormatJSON && f != record.FormatCSV {
		return "", errors.New(errors.ErrCodeInvalidFormat, "samples are written as json or csv, not %s", f)
	}
	return f, nil
}

func writeRecords(w io.Writer, recs []record.Record, f record.Format) error {
	if f == record.FormatCSV {
		return record.WriteCSV(w, recs)
	}
	return record.WriteJSON(w, recs)
}
