package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/prism/pkg/errors"
	"github.com/matzehuels/prism/pkg/pipeline"
	"github.com/matzehuels/prism/pkg/record"
)

// renderCommand creates the render command: ingest → layout → render in one
// step, for one or more input files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags chartFlags
		jobs  int
	)

	cmd := &cobra.Command{
		Use:   "render [files...]",
		Short: "Render data files as 3D chart scenes and previews",
		Long: `Render data files as 3D chart scenes and previews.

Each input (JSON array, CSV or YAML sequence of records) is coerced to the
chart type's items, laid out as a 3D scene and written in every requested
format next to the input, or under -o. The JSON scene is named
<input>.scene.json, and no output may replace an input. With several inputs,
-o names a directory and files are rendered concurrently.

Without --chart, prism asks interactively on a terminal and fails otherwise.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &flags)
			opts.SetRenderDefaults()
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := c.resolveChart(&opts, args[0]); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args, opts, flags.output, jobs)
		},
	}

	flags.registerLayout(cmd.Flags())
	flags.registerRender(cmd.Flags())
	flags.registerCommon(cmd.Flags(), "output file (single input and format), base path, or directory (several inputs)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "files rendered concurrently")

	registerCompletions(cmd)
	return cmd
}

// resolveChart fills in opts.Chart from the interactive picker when neither
// flag nor config provide one.
func (c *CLI) resolveChart(opts *pipeline.Options, input string) error {
	if opts.Chart != "" {
		_, err := pipeline.ValidateChart(opts.Chart)
		return err
	}
	if !interactive() {
		return errors.New(errors.ErrCodeInvalidInput, "--chart is required (one of: bar, scatter, pie, surface)")
	}
	recs, err := record.ImportFile(input)
	if err != nil {
		return err
	}
	t, err := pickChart(record.Columns(recs))
	if err != nil {
		return err
	}
	opts.Chart = string(t)
	return nil
}

// renderOutcome is the result of rendering one input.
type renderOutcome struct {
	input  string
	files  []string
	result *pipeline.Result
}

// runRender renders every input with at most jobs in flight. The first
// failure cancels the rest.
func (c *CLI) runRender(ctx context.Context, inputs []string, opts pipeline.Options, output string, jobs int) error {
	runner, err := c.newRunner(ctx, opts.NoCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	multi := len(inputs) > 1
	if multi && output != "" {
		if err := os.MkdirAll(output, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	prog := newProgress(loggerFromContext(ctx))
	var done atomic.Int32
	spinner := newSpinnerWithContext(ctx, renderMessage(0, len(inputs)))
	spinner.Start()

	outcomes := make([]renderOutcome, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, input := range inputs {
		g.Go(func() error {
			fileOpts := opts
			fileOpts.Source = input
			result, err := runner.Execute(gctx, fileOpts)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}

			base := basePath(output, input)
			if multi && output != "" {
				base = filepath.Join(output, filepath.Base(stem(input)))
			}
			files, err := writeArtifacts(result.Artifacts, fileOpts.Formats, base, output, input, multi)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			outcomes[i] = renderOutcome{input: input, files: files, result: result}
			spinner.SetMessage(renderMessage(int(done.Add(1)), len(inputs)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("rendered %d inputs", len(inputs)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, o := range outcomes {
		printSuccess("Rendered %s (%s)", o.input, o.result.Scene.Chart)
		for _, f := range o.files {
			printFile(f)
		}
		printStats(o.result.Stats.Records, o.result.Stats.Elements, o.result.CacheInfo.LayoutHit)
	}
	return nil
}

func renderMessage(done, total int) string {
	if total == 1 {
		return "Rendering..."
	}
	return fmt.Sprintf("Rendering %d/%d...", done, total)
}

// writeArtifacts writes each artifact to base.<format>, with the JSON scene
// going to base.scene.json. A single format with an explicit output file name
// is written to exactly that name. No artifact may replace the input file.
func writeArtifacts(artifacts map[string][]byte, formats []string, base, output, input string, multi bool) ([]string, error) {
	var files []string
	for _, format := range formats {
		path := base + "." + format
		if format == pipeline.FormatJSON {
			path = base + ".scene.json"
		}
		if len(formats) == 1 && output != "" && !multi && filepath.Ext(output) != "" {
			path = output
		}
		if samePath(path, input) {
			return files, errors.New(errors.ErrCodeInvalidPath, "%s output would overwrite input %s (use -o)", format, input)
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return files, fmt.Errorf("write %s: %w", path, err)
		}
		files = append(files, path)
	}
	return files, nil
}

// samePath reports whether a and b name the same file.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
