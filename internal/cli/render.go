package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jusunglee/railmap-go/internal/aggregate"
	"github.com/jusunglee/railmap-go/internal/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

type renderOptions struct {
	top     string
	format  string
	output  string
	tickets bool
}

func newRenderCmd(opts *globalOptions) *cobra.Command {
	ro := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Export the route map as Graphviz DOT or SVG",
		Example: `  railmap render --top 30 --format svg -o map.svg
  railmap render --format dot | dot -Kneato -Tpng > map.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, ro)
		},
	}

	cmd.Flags().StringVarP(&ro.top, "top", "n", "10", `number of routes to draw, or "all"`)
	cmd.Flags().StringVarP(&ro.format, "format", "f", formatSVG, "output format: svg or dot")
	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&ro.tickets, "tickets", true, "label edges with tickets sold")
	return cmd
}

func runRender(cmd *cobra.Command, opts *globalOptions, ro *renderOptions) error {
	if ro.format != formatDOT && ro.format != formatSVG {
		return fmt.Errorf("unsupported format %q (want svg or dot)", ro.format)
	}
	limit, err := aggregate.ParseLimit(ro.top)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := loadClient(ctx, opts)
	if err != nil {
		return err
	}

	e, err := client.Elements(limit)
	if err != nil {
		return err
	}

	stations, err := client.Stations()
	if err != nil {
		return err
	}
	labels := make(map[string]string)
	for _, s := range stations {
		if s.Label != nil {
			labels[s.Name] = s.Label.Label
		}
	}

	dot := render.ToDOT(e, render.Options{Labels: labels, ShowTickets: ro.tickets})
	out := []byte(dot)
	if ro.format == formatSVG {
		prog := newProgress(loggerFromContext(ctx))
		if out, err = render.RenderSVG(ctx, dot); err != nil {
			return err
		}
		prog.done("Rendered SVG")
	}

	var w io.Writer = cmd.OutOrStdout()
	if ro.output != "" {
		f, err := os.Create(ro.output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if _, err := w.Write(out); err != nil {
		return err
	}

	if ro.output != "" {
		loggerFromContext(ctx).Info("Wrote map", "path", ro.output, "format", ro.format)
	}
	return nil
}
