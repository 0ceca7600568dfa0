package generate

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/doclinks/internal/config"
	"git.home.luguber.info/inful/doclinks/internal/diagnostics"
	"git.home.luguber.info/inful/doclinks/internal/doclet"
	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
	"git.home.luguber.info/inful/doclinks/internal/linkid"
	"git.home.luguber.info/inful/doclinks/internal/links"
	"git.home.luguber.info/inful/doclinks/internal/linkstore"
	"git.home.luguber.info/inful/doclinks/internal/logfields"
	"git.home.luguber.info/inful/doclinks/internal/markdown"
	"git.home.luguber.info/inful/doclinks/internal/metrics"
	"git.home.luguber.info/inful/doclinks/internal/observability"
	"git.home.luguber.info/inful/doclinks/internal/symbols"
	"git.home.luguber.info/inful/doclinks/internal/tutorial"
)

func newRunID() string {
	return uuid.NewString()
}

// Run executes a complete generation run: load, prune, register, decorate,
// render and persist. Resolution problems are collected in the result's
// diagnostics; only I/O failures (and, in strict mode, error diagnostics)
// are returned as errors.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	start := s.now()
	if req.Config == nil {
		return nil, errors.ConfigError("config required").Build()
	}
	if req.DocletPath == "" {
		return nil, errors.InputError("doclet path required").Build()
	}
	cfg := req.Config

	result := &Result{
		RunID:     s.newRunID(),
		StartTime: start,
		Tutorials: make(map[string]string),
	}
	ctx = observability.WithRunID(ctx, result.RunID)
	ctx = observability.WithSource(ctx, req.DocletPath)

	rec, gatherer := s.metricsFor(cfg)
	diags := diagnostics.New(
		diagnostics.WithLogger(observability.Logger(ctx, s.logger)),
		diagnostics.WithRecorder(rec),
	)
	result.Diagnostics = diags

	store, closeStore, err := s.openStore(cfg)
	if err != nil {
		return result, err
	}
	defer closeStore()

	// Stage: load and prune.
	ctx = observability.WithStage(ctx, "load")
	graph, err := doclet.Load(req.DocletPath)
	if err != nil {
		return result, err
	}
	result.Graph = graph
	result.Pruned = symbols.Prune(graph, symbols.AccessFilter{
		Access:  cfg.Opts.AccessStrings(),
		Private: cfg.Opts.Private,
	})
	symbols.AddEventListeners(graph)
	observability.DebugContext(ctx, "Loaded doclets",
		logfields.Count(graph.Len()), slog.Int("pruned", result.Pruned))

	// Stage: restore identities from the previous run.
	registry := linkid.New(
		linkid.WithExtension(cfg.Output.FileExtension),
		linkid.WithRecorder(rec),
	)
	result.Registry = registry
	if store != nil {
		ctx = observability.WithStage(ctx, "restore")
		restored, err := restore(ctx, store, registry)
		if err != nil {
			return result, err
		}
		result.Restored = restored
	}

	// Stage: tutorials.
	var tree *tutorial.Tree
	if req.TutorialDir != "" {
		ctx = observability.WithStage(ctx, "tutorials")
		tree, err = loadTutorials(req.TutorialDir, diags)
		if err != nil {
			return result, err
		}
		observability.DebugContext(ctx, "Loaded tutorials", logfields.Count(tree.Len()))
	}

	resolverOpts := []links.Option{
		links.WithDiagnostics(diags),
		links.WithRecorder(rec),
		links.WithMonospaceLinks(cfg.Templates.MonospaceLinks),
		links.WithCleverLinks(cfg.Templates.CleverLinks),
		links.WithGlobalName(cfg.Output.GlobalName),
	}
	if tree != nil {
		resolverOpts = append(resolverOpts, links.WithTutorials(tree))
	}
	resolver := links.NewResolver(registry, resolverOpts...)

	// Stage: register every symbol before any link is built, so forward
	// references resolve.
	ctx = observability.WithStage(ctx, "register")
	registered := register(ctx, resolver, graph)
	observability.DebugContext(ctx, "Registered links", logfields.Count(registered))

	// Stage: decorate.
	ctx = observability.WithStage(ctx, "decorate")
	renderer := markdown.NewRenderer(resolver, markdown.Options{})
	decorate(resolver, renderer, graph, diags)
	observability.DebugContext(ctx, "Decorated doclets", slog.Int("diagnostics", diags.Len()))

	if tree != nil {
		ctx = observability.WithStage(ctx, "render_tutorials")
		renderTutorials(ctx, resolver, renderer, tree, result.Tutorials, diags)
		observability.DebugContext(ctx, "Rendered tutorials", logfields.Count(len(result.Tutorials)))
	}

	result.Duration = s.now().Sub(start)
	rec.SetRegisteredLinks(registry.Len())
	rec.ObserveRunDuration(result.Duration)

	// Stage: persist.
	if store != nil {
		ctx = observability.WithStage(ctx, "persist")
		run := linkstore.Run{
			ID:          result.RunID,
			CreatedAt:   start,
			Diagnostics: diags.Len(),
			Metadata:    map[string]string{"source": req.DocletPath},
		}
		if err := store.SaveSnapshot(ctx, run, registry.Snapshot()); err != nil {
			return result, err
		}
	}
	if cfg.Metrics.Textfile != "" && gatherer != nil {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile, gatherer); err != nil {
			return result, errors.WrapError(err, errors.CategoryFileSystem, "failed to write metrics textfile").
				WithContext(logfields.KeyPath, cfg.Metrics.Textfile).
				Build()
		}
	}

	ctx = observability.WithStage(ctx, "done")
	observability.InfoContext(ctx, "Generation run complete",
		logfields.Count(registry.Len()),
		slog.Int("diagnostics", diags.Len()),
		logfields.DurationMS(float64(result.Duration.Microseconds())/1000))

	if !req.Strict && diags.HasErrors() {
		observability.WarnContext(ctx, "Resolution reported errors",
			logfields.Count(diags.Len()))
	}
	if req.Strict {
		if err := diags.Err(errors.SeverityError); err != nil {
			return result, errors.WrapError(err, errors.CategoryLink, "resolution reported errors").
				WithContext(logfields.KeyCount, diags.Len()).
				Build()
		}
	}
	return result, nil
}

// metricsFor returns the injected recorder, a fresh Prometheus recorder when
// metrics are enabled, or a no-op recorder.
func (s *Service) metricsFor(cfg *config.Config) (metrics.Recorder, prom.Gatherer) {
	if s.recorder != nil {
		return s.recorder, s.gatherer
	}
	if !cfg.Metrics.Enabled {
		return metrics.NoopRecorder{}, nil
	}
	reg := prom.NewRegistry()
	return metrics.NewPrometheusRecorder(reg), reg
}

func (s *Service) openStore(cfg *config.Config) (linkstore.Store, func(), error) {
	if s.store != nil {
		return s.store, func() {}, nil
	}
	if cfg.Store.Path == "" {
		return nil, func() {}, nil
	}
	st, err := linkstore.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return nil, nil, err
	}
	return st, func() {
		if err := st.Close(); err != nil {
			s.logger.Warn("Failed to close link store", logfields.Error(err))
		}
	}, nil
}

func restore(ctx context.Context, store linkstore.Store, registry *linkid.Registry) (bool, error) {
	latest, ok, err := store.Latest(ctx)
	if err != nil || !ok {
		return false, err
	}
	entries, err := store.LoadSnapshot(ctx, latest.ID)
	if err != nil {
		return false, err
	}
	registry.Restore(entries)
	observability.DebugContext(ctx, "Restored link identities",
		slog.String("previous_run", latest.ID), logfields.Count(len(entries)))
	return true, nil
}

// loadTutorials returns the tutorial tree. Problems with single tutorials
// become warnings; an unreadable directory fails the run.
func loadTutorials(dir string, diags *diagnostics.List) (*tutorial.Tree, error) {
	tree, err := tutorial.LoadDir(dir)
	if tree == nil {
		return nil, err
	}
	var merr *multierror.Error
	if stderrors.As(err, &merr) {
		for _, e := range merr.Errors {
			diags.Add(asWarning(e))
		}
	} else if err != nil {
		diags.Add(asWarning(err))
	}
	return tree, nil
}

func asWarning(err error) *errors.ClassifiedError {
	ce, ok := errors.AsClassified(err)
	if !ok {
		return errors.WrapError(err, errors.CategoryTutorial, "tutorial problem").Warning().Build()
	}
	b := errors.WrapError(ce.Cause(), ce.Category(), ce.Message()).Warning()
	for k, v := range ce.Context() {
		b.WithContext(k, v)
	}
	return b.Build()
}

// register assigns a URL to every doclet in graph order. The first doclet
// with a given longname decides its identity. The registry keeps URLs
// unencoded; they are encoded when an href is emitted.
func register(ctx context.Context, r *links.Resolver, g *doclet.Graph) int {
	registry := r.Registry()
	seen := make(map[string]bool, g.Len())
	for _, d := range g.All() {
		if d.Longname == "" {
			continue
		}
		if seen[d.Longname] {
			observability.DebugContext(ctx, "Longname already registered, keeping first",
				logfields.Longname(d.Longname), logfields.Kind(string(d.Kind)))
			continue
		}
		seen[d.Longname] = true
		if url := r.RawLink(d); url != "" {
			registry.RegisterLink(d.Longname, url)
		}
	}
	for _, d := range g.All() {
		if id, ok := registry.IDFor(d.Longname); ok {
			d.ID = id
		}
	}
	return len(seen)
}

// needsSignature reports whether d is rendered with a call signature.
func needsSignature(d *doclet.Doclet) bool {
	switch d.Kind {
	case doclet.KindFunction, doclet.KindClass:
		return true
	case doclet.KindTypedef, doclet.KindMember:
		for _, name := range d.TypeNames() {
			if name == "function" || name == "Function" {
				return true
			}
		}
	}
	return false
}

func decorate(r *links.Resolver, renderer *markdown.Renderer, g *doclet.Graph, diags *diagnostics.List) {
	signer := symbols.NewSigner(r)
	for _, d := range g.All() {
		switch {
		case needsSignature(d):
			symbols.AddSignatureParams(d)
			signer.AddSignatureReturns(d)
			symbols.AddAttribs(d)
		case d.Kind == doclet.KindMember || d.Kind == doclet.KindConstant:
			signer.AddSignatureTypes(d)
			symbols.AddAttribs(d)
		}

		if d.Description == "" {
			continue
		}
		html, err := renderer.Render(d.Description)
		if err != nil {
			diags.Add(errors.WrapError(err, errors.CategoryInput, "failed to render description").
				WithContext(logfields.KeyLongname, d.Longname).
				Warning().
				Build())
			continue
		}
		d.DescriptionHTML = html
	}
}

func renderTutorials(ctx context.Context, r *links.Resolver, renderer *markdown.Renderer, tree *tutorial.Tree, out map[string]string, diags *diagnostics.List) {
	for _, name := range tree.Names() {
		t, _ := tree.GetByName(name)
		url, ok := r.TutorialURL(name)
		if !ok {
			continue
		}
		html, err := renderer.RenderTutorial(t)
		if err != nil {
			diags.Add(errors.WrapError(err, errors.CategoryTutorial, fmt.Sprintf("failed to render tutorial %q", name)).
				WithContext(logfields.KeyTutorial, name).
				Warning().
				Build())
			continue
		}
		out[name] = html
		observability.DebugContext(ctx, "Rendered tutorial", logfields.Tutorial(name), logfields.Filename(url))
	}
}
