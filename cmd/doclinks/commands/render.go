package commands

import (
	"cmp"
	"context"
	"fmt"

	"git.home.luguber.info/inful/doclinks/internal/generate"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	RunFlags `embed:""`
	Output   string `short:"o" help:"Output directory (default: output.directory from config, then ./out)"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	res, err := r.execute(context.Background(), cfg)
	if err != nil {
		return err
	}

	dir := cmp.Or(r.Output, cfg.Output.Directory, "./out")
	if err := generate.WriteOutput(dir, res); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "Wrote %d links, %d tutorials to %s (run %s, %d diagnostics)\n",
		res.Registry.Len(), len(res.Tutorials), dir, res.RunID, res.Diagnostics.Len())
	return nil
}
