package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/prism/pkg/geom"
)

// visualizeCommand creates the visualize command: render a previously
// computed scene JSON to previews.
func (c *CLI) visualizeCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "visualize [scene.json]",
		Short: "Render a scene JSON file to SVG, PNG or PDF",
		Long: `Render a scene JSON file, as written by 'prism layout', to previews.

The chart type is taken from the scene. Output defaults to the scene path
with its .scene.json suffix replaced by the format extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input := args[0]

			scene, err := geom.ReadSceneFile(input)
			if err != nil {
				return err
			}

			opts := c.options(cmd, &flags)
			opts.Source = input
			opts.Chart = scene.Chart
			opts.SetRenderDefaults()
			if err := opts.ValidateForRender(); err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, opts.NoCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			spinner := newSpinnerWithContext(ctx, "Rendering...")
			spinner.Start()
			artifacts, cached, err := runner.RenderWithCacheInfo(ctx, scene, opts)
			if err != nil {
				spinner.StopWithError("Render failed")
				return err
			}
			spinner.Stop()

			base := basePath(flags.output, strings.TrimSuffix(input, ".scene.json"))
			files, err := writeArtifacts(artifacts, opts.Formats, base, flags.output, input, false)
			if err != nil {
				return err
			}

			printSuccess("Rendered %s scene", scene.Chart)
			for _, f := range files {
				printFile(f)
			}
			if cached {
				printDetail("(cached)")
			}
			return nil
		},
	}

	flags.registerRender(cmd.Flags())
	flags.registerCommon(cmd.Flags(), "output file or base path")

	registerCompletions(cmd)
	return cmd
}
