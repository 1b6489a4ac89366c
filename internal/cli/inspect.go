package cli

import (
	"fmt"
	"strconv"

	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"

	"github.com/matzehuels/prism/pkg/chart"
	"github.com/matzehuels/prism/pkg/errors"
	"github.com/matzehuels/prism/pkg/geom"
	"github.com/matzehuels/prism/pkg/pipeline"
	"github.com/matzehuels/prism/pkg/record"
)

// inspectCommand creates the inspect command, which shows how records are
// coerced for a chart type without rendering anything.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags chartFlags
		limit int
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show coerced chart items and summary statistics",
		Long: `Show how a data file is coerced for a chart type.

Prints the first items as a table (substituted values are marked) followed
by summary statistics of the values that drive the layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &flags)
			opts.Source = args[0]
			if err := c.resolveChart(&opts, args[0]); err != nil {
				return err
			}
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}

			items, scene, err := inspectData(opts)
			if err != nil {
				return err
			}

			headers, rows := itemRows(items, limit)
			fmt.Println(renderTable(headers, rows))
			if n := items.Len(); limit > 0 && n > limit {
				printDetail("... %d more", n-limit)
			}
			printNewline()

			summary, err := summarize(items, scene)
			if err != nil {
				return err
			}
			for _, s := range summary {
				printKeyValue(s.name, s.value)
			}
			return nil
		},
	}

	flags.registerLayout(cmd.Flags())
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum items to list (0: all)")

	registerCompletions(cmd)
	return cmd
}

// inspectData coerces the records of opts.Source once and lays out those
// same items, so unseeded jitter agrees between the table and the summary.
func inspectData(opts pipeline.Options) (chart.Items, geom.Scene, error) {
	recs, err := record.ImportFile(opts.Source)
	if err != nil {
		return chart.Items{}, geom.Scene{}, err
	}
	if len(recs) == 0 {
		return chart.Items{}, geom.Scene{}, errors.New(errors.ErrCodeEmptyDataset, "%s contains no records", opts.Source)
	}
	items := pipeline.Coerce(recs, opts)
	scene, err := pipeline.LayoutItems(items, opts)
	return items, scene, err
}

// stat is one line of the summary.
type stat struct {
	name  string
	value string
}

// itemRows lays out the first limit items as table rows.
func itemRows(items chart.Items, limit int) ([]string, [][]string) {
	n := items.Len()
	if limit > 0 && n > limit {
		n = limit
	}

	var (
		headers []string
		rows    = make([][]string, 0, n)
	)
	switch items.Type {
	case chart.Bar, chart.Pie:
		headers = []string{"#", "label", "value"}
		for i, it := range items.Bars[:n] {
			rows = append(rows, []string{strconv.Itoa(i), it.Label, num(it.Value)})
		}
	case chart.Scatter:
		headers = []string{"#", "label", "x", "y", "z", "size", "jittered"}
		for i, it := range items.Points[:n] {
			rows = append(rows, []string{strconv.Itoa(i), it.Label,
				num(it.X), num(it.Y), num(it.Z), num(it.Size), mark(it.Jittered)})
		}
	case chart.Surface:
		headers = []string{"#", "x", "y", "z", "imputed"}
		for i, it := range items.Surface[:n] {
			rows = append(rows, []string{strconv.Itoa(i), num(it.X), num(it.Y), num(it.Z), mark(it.Imputed)})
		}
	}
	return headers, rows
}

// summarize computes the statistics shown below the item table.
func summarize(items chart.Items, scene geom.Scene) ([]stat, error) {
	out := []stat{
		{"chart", string(items.Type)},
		{"items", strconv.Itoa(items.Len())},
		{"elements", strconv.Itoa(scene.Len())},
	}

	switch items.Type {
	case chart.Bar, chart.Pie:
		values := make(stats.Float64Data, len(items.Bars))
		for i, it := range items.Bars {
			values[i] = it.Value
		}
		s, err := describe("value", values)
		if err != nil {
			return nil, err
		}
		out = append(out, s...)
		if items.Type == chart.Pie {
			sum, _ := stats.Sum(values)
			out = append(out, stat{"total", num(sum)})
		}

	case chart.Scatter:
		xs := make(stats.Float64Data, len(items.Points))
		ys := make(stats.Float64Data, len(items.Points))
		zs := make(stats.Float64Data, len(items.Points))
		jittered := 0
		for i, p := range items.Points {
			xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
			if p.Jittered {
				jittered++
			}
		}
		for _, axis := range []struct {
			name string
			data stats.Float64Data
		}{{"x", xs}, {"y", ys}, {"z", zs}} {
			r, err := spread(axis.data)
			if err != nil {
				return nil, err
			}
			out = append(out, stat{axis.name, r})
		}
		out = append(out, stat{"jittered", strconv.Itoa(jittered)})

	case chart.Surface:
		ys := make(stats.Float64Data, len(items.Surface))
		imputed := 0
		for i, p := range items.Surface {
			ys[i] = p.Y
			if p.Imputed {
				imputed++
			}
		}
		s, err := describe("height", ys)
		if err != nil {
			return nil, err
		}
		out = append(out, s...)
		out = append(out, stat{"imputed", strconv.Itoa(imputed)})
		if m := scene.Surface; m != nil {
			out = append(out,
				stat{"mode", m.Mode},
				stat{"segments", strconv.Itoa(m.Segments)})
		}
	}
	return out, nil
}

// describe returns the min, max, mean, median and standard deviation of data.
func describe(name string, data stats.Float64Data) ([]stat, error) {
	r, err := spread(data)
	if err != nil {
		return nil, err
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return nil, err
	}
	sd, err := stats.StandardDeviation(data)
	if err != nil {
		return nil, err
	}
	return []stat{
		{name, r},
		{"mean", num(mean)},
		{"median", num(median)},
		{"stddev", num(sd)},
	}, nil
}

// spread formats the range of data as "min .. max".
func spread(data stats.Float64Data) (string, error) {
	lo, err := stats.Min(data)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeEmptyDataset, err, "summarize")
	}
	hi, err := stats.Max(data)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeEmptyDataset, err, "summarize")
	}
	return num(lo) + " .. " + num(hi), nil
}

func num(f float64) string { return strconv.FormatFloat(f, 'g', 6, 64) }

func mark(b bool) string {
	if b {
		return "*"
	}
	return ""
}
