package commands

import (
	"cmp"
	"context"
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/doclinks/internal/diagnostics"
	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
	"git.home.luguber.info/inful/doclinks/internal/generate"
	"git.home.luguber.info/inful/doclinks/internal/linkid"
	"git.home.luguber.info/inful/doclinks/internal/linkverify"
	"git.home.luguber.info/inful/doclinks/internal/logfields"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	Dir    string `arg:"" name:"dir" help:"Directory of generated HTML" type:"existingdir"`
	Links  string `help:"Link map written by 'render' (default: DIR/links.yaml)"`
	Strict bool   `help:"Fail when broken links are found"`
}

func (v *VerifyCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	lm, err := generate.ReadLinkMap(cmp.Or(v.Links, filepath.Join(v.Dir, generate.LinksFile)))
	if err != nil {
		return err
	}

	registry := linkid.New(linkid.WithExtension(cfg.Output.FileExtension))
	registry.Restore(lm.Entries)

	diags := diagnostics.New()
	report, err := linkverify.NewVerifier(registry, diags).VerifyDir(context.Background(), v.Dir)
	if err != nil {
		return err
	}

	out := g.out()
	for _, b := range report.Broken {
		_, _ = fmt.Fprintf(out, "%s:%d: %s (%s)\n", b.Source, b.Link.Line, b.Link.URL, b.Reason)
	}
	_, _ = fmt.Fprintf(out, "Checked %d links in %d pages, %d broken\n", report.Checked, report.Pages, len(report.Broken))

	if v.Strict && len(report.Broken) > 0 {
		return errors.LinkError(fmt.Sprintf("%d broken links", len(report.Broken))).
			WithContext(logfields.KeyPath, v.Dir).
			Build()
	}
	return nil
}
