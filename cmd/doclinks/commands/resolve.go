package commands

import (
	"context"
	"log/slog"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/doclinks/internal/config"
	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
	"git.home.luguber.info/inful/doclinks/internal/generate"
)

// RunFlags are shared by the commands that execute a generation run.
type RunFlags struct {
	Doclets   string `arg:"" name:"doclets" help:"JSON or YAML doclet dump" type:"existingfile"`
	Tutorials string `short:"t" name:"tutorials" help:"Directory containing tutorials" type:"existingdir"`
	Strict    bool   `help:"Fail when resolution reports errors"`
}

func (f RunFlags) execute(ctx context.Context, cfg *config.Config) (*generate.Result, error) {
	svc := generate.NewService(generate.WithLogger(slog.Default()))
	return svc.Run(ctx, generate.Request{
		Config:      cfg,
		DocletPath:  f.Doclets,
		TutorialDir: f.Tutorials,
		Strict:      f.Strict,
	})
}

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	RunFlags `embed:""`
}

func (r *ResolveCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	res, err := r.execute(context.Background(), cfg)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(generate.LinkMap{RunID: res.RunID, Entries: res.Registry.Snapshot()})
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode link map").Build()
	}
	_, err = g.out().Write(data)
	return err
}
