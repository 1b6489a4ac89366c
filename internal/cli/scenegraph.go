package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/prism/pkg/errors"
	"github.com/matzehuels/prism/pkg/geom"
	"github.com/matzehuels/prism/pkg/render/nodelink"
)

// scenegraphCommand creates the scenegraph command, a debugging view of a
// scene's element tree drawn with Graphviz.
func (c *CLI) scenegraphCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
		scale    float64
	)

	cmd := &cobra.Command{
		Use:   "scenegraph [scene.json]",
		Short: "Draw the element tree of a scene",
		Long: `Draw the element tree of a scene JSON file as a node-link diagram.

Each bar, point, wedge or mesh is a node filled with its color, with its
caption and value labels as leaves. --detailed adds positions and sizes.
The dot format writes the Graphviz source without rendering it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			scene, err := geom.ReadSceneFile(input)
			if err != nil {
				return err
			}

			format = strings.ToLower(format)
			data, err := renderSceneGraph(cmd.Context(), scene, format, nodelink.Options{Detailed: detailed}, scale)
			if err != nil {
				return err
			}

			out := output
			if out == "" {
				out = strings.TrimSuffix(stem(input), ".scene") + ".scenegraph." + format
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			printSuccess("Scene graph written (%d elements)", scene.Len())
			printFile(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, dot, png, pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <scene>.scenegraph.<format>)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show positions and sizes")
	cmd.Flags().Float64Var(&scale, "scale", 2, "PNG scale factor")

	return cmd
}

func renderSceneGraph(ctx context.Context, s geom.Scene, format string, opts nodelink.Options, scale float64) ([]byte, error) {
	dot := nodelink.ToDOT(s, opts)
	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg":
		return nodelink.RenderSVG(ctx, dot)
	case "png":
		return nodelink.RenderPNG(ctx, dot, scale)
	case "pdf":
		return nodelink.RenderPDF(ctx, dot)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid scene graph format: %s (must be svg, dot, png or pdf)", format)
}
