package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/prism/pkg/geom"
)

// layoutCommand creates the layout command: ingest → layout, writing the
// scene JSON without rendering previews.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute a 3D scene from a data file",
		Long: `Compute a 3D scene from a data file and write it as scene JSON.

The scene can be rendered later with 'prism visualize' or loaded directly by
a 3D engine. Output defaults to <input>.scene.json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &flags)
			opts.Source = args[0]
			if err := c.resolveChart(&opts, args[0]); err != nil {
				return err
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, opts.NoCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			if err := opts.ValidateForLayout(); err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Computing layout...")
			spinner.Start()

			recs, err := runner.Ingest(ctx, opts)
			if err != nil {
				spinner.StopWithError("Ingest failed")
				return err
			}
			scene, cached, err := runner.LayoutWithCacheInfo(ctx, recs, opts)
			if err != nil {
				spinner.StopWithError("Layout failed")
				return err
			}
			spinner.Stop()

			out := flags.output
			if out == "" {
				out = stem(args[0]) + ".scene.json"
			}
			if err := geom.WriteSceneFile(scene, out); err != nil {
				return fmt.Errorf("write scene: %w", err)
			}

			printSuccess("Scene computed (%s)", scene.Chart)
			printFile(out)
			printStats(len(recs), scene.Len(), cached)
			printNextStep("Render previews", "prism visualize "+out)
			return nil
		},
	}

	flags.registerLayout(cmd.Flags())
	flags.registerCommon(cmd.Flags(), "output scene file (default: <input>.scene.json)")

	registerCompletions(cmd)
	return cmd
}
