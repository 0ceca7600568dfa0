package commands

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
	"git.home.luguber.info/inful/doclinks/internal/linkstore"
)

// RunsCmd implements the 'runs' command.
type RunsCmd struct {
	Limit int `short:"n" help:"Show at most this many runs (0 for all)" default:"10"`
}

func (r *RunsCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Store.Path == "" {
		return errors.ConfigError("store.path is not configured").Build()
	}
	store, err := linkstore.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Runs(context.Background())
	if err != nil {
		return err
	}
	if r.Limit > 0 && len(runs) > r.Limit {
		runs = runs[:r.Limit]
	}
	out := g.out()
	for _, run := range runs {
		_, _ = fmt.Fprintf(out, "%s  %s  %d links  %d diagnostics\n",
			run.ID, run.CreatedAt.Format(time.RFC3339), run.Entries, run.Diagnostics)
	}
	return nil
}
