package linkverify

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/doclinks/internal/diagnostics"
	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
	"git.home.luguber.info/inful/doclinks/internal/linkid"
	"git.home.luguber.info/inful/doclinks/internal/logfields"
)

// Reason explains why a link is broken.
type Reason string

const (
	ReasonUnknownFile     Reason = "unknown_file"
	ReasonUnknownFragment Reason = "unknown_fragment"
	ReasonMalformed       Reason = "malformed"
)

// BrokenLink is one internal link that does not resolve.
type BrokenLink struct {
	Source string // page or description the link was found in
	Link   *Link
	Reason Reason
}

// Report summarises one verification.
type Report struct {
	Pages   int
	Checked int
	Broken  []BrokenLink
}

func (r *Report) merge(o Report) {
	r.Pages += o.Pages
	r.Checked += o.Checked
	r.Broken = append(r.Broken, o.Broken...)
}

// Verifier checks links against the files and fragments of a registry.
type Verifier struct {
	registry *linkid.Registry
	diags    *diagnostics.List
}

// NewVerifier returns a Verifier bound to reg. Broken links are added to diags
// as link warnings.
func NewVerifier(reg *linkid.Registry, diags *diagnostics.List) *Verifier {
	if diags == nil {
		diags = diagnostics.New()
	}
	return &Verifier{registry: reg, diags: diags}
}

// VerifyHTML checks every internal anchor in r.
func (v *Verifier) VerifyHTML(source string, r io.Reader) (Report, error) {
	links, err := ExtractLinksFromReader(r)
	if err != nil {
		return Report{}, err
	}

	return v.verifyLinks(source, links), nil
}

// VerifyHTMLString is VerifyHTML for an in-memory fragment.
func (v *Verifier) VerifyHTMLString(source, fragment string) (Report, error) {
	return v.VerifyHTML(source, strings.NewReader(fragment))
}

// VerifyDir checks every file under dir carrying the registry's extension.
func (v *Verifier) VerifyDir(ctx context.Context, dir string) (Report, error) {
	var report Report
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || filepath.Ext(p) != v.registry.Extension() {
			return nil
		}
		links, err := ExtractLinks(p)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, p)
		report.merge(v.verifyLinks(rel, links))
		return nil
	})
	if err != nil {
		return report, errors.WrapError(err, errors.CategoryFileSystem, "failed to verify output directory").
			WithContext(logfields.KeyPath, dir).
			Build()
	}
	slog.Info("Link verification complete",
		logfields.Path(dir),
		slog.Int("pages", report.Pages),
		slog.Int("checked", report.Checked),
		slog.Int("broken", len(report.Broken)))
	return report, nil
}

func (v *Verifier) verifyLinks(source string, links []*Link) Report {
	report := Report{Pages: 1}
	for _, l := range links {
		if !ShouldVerifyLink(l) {
			continue
		}
		report.Checked++
		reason, ok := v.check(l.URL)
		if ok {
			continue
		}
		report.Broken = append(report.Broken, BrokenLink{Source: source, Link: l, Reason: reason})
		v.diags.Add(errors.LinkError("broken internal link").
			WithContext(logfields.KeyPath, source).
			WithContext(logfields.KeyURL, l.URL).
			WithContext("reason", string(reason)).
			Build())
	}
	return report
}

// check resolves an internal href against the registry.
func (v *Verifier) check(href string) (Reason, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return ReasonMalformed, false
	}
	file := path.Base(path.Clean(u.Path))
	if u.Path == "" || file == "." || file == "/" {
		return ReasonMalformed, false
	}
	if !v.registry.HasFile(file) {
		return ReasonUnknownFile, false
	}
	if u.Fragment != "" && !v.registry.HasFragment(file, u.Fragment) {
		return ReasonUnknownFragment, false
	}
	return "", true
}
