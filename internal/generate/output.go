package generate

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/doclinks/internal/doclet"
	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
	"git.home.luguber.info/inful/doclinks/internal/linkid"
	"git.home.luguber.info/inful/doclinks/internal/logfields"
)

// Output file names written by WriteOutput.
const (
	LinksFile   = "links.yaml"
	DocletsFile = "doclets.yaml"
)

// LinkMap is the serialized form of a run's link map.
type LinkMap struct {
	RunID   string         `yaml:"runId"`
	Entries []linkid.Entry `yaml:"entries"`
}

// WriteOutput writes the link map, the decorated doclets and every rendered
// tutorial (under its allocated filename) into dir.
func WriteOutput(dir string, res *Result) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext(logfields.KeyPath, dir).
			Build()
	}

	if err := writeYAML(filepath.Join(dir, LinksFile), LinkMap{
		RunID:   res.RunID,
		Entries: res.Registry.Snapshot(),
	}); err != nil {
		return err
	}

	var doclets []*doclet.Doclet
	if res.Graph != nil {
		doclets = res.Graph.All()
	}
	if err := writeYAML(filepath.Join(dir, DocletsFile), doclets); err != nil {
		return err
	}

	for name, html := range res.Tutorials {
		filename := res.Registry.TutorialURL(name)
		path := filepath.Join(dir, filename)
		if err := os.WriteFile(path, []byte(html), 0o600); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to write tutorial").
				WithContext(logfields.KeyTutorial, name).
				WithContext(logfields.KeyPath, path).
				Build()
		}
	}
	return nil
}

// ReadLinkMap reads a links.yaml file written by WriteOutput.
func ReadLinkMap(path string) (*LinkMap, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read link map").
			WithContext(logfields.KeyPath, path).
			Build()
	}
	var lm LinkMap
	if err := yaml.Unmarshal(data, &lm); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInput, "failed to decode link map").
			WithContext(logfields.KeyPath, path).
			Build()
	}
	return &lm, nil
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode output").Build()
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output").
			WithContext(logfields.KeyPath, path).
			Build()
	}
	return nil
}
