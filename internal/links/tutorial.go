package links

import (
	"fmt"

	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
	"git.home.luguber.info/inful/doclinks/internal/logfields"
)

// MissingTutorial styles the plain-text fallback of a link to a tutorial that
// does not exist.
type MissingTutorial struct {
	Prefix    string // prepended to the tutorial name
	Tag       string // wraps the text in <Tag>...</Tag> when set
	ClassName string // class attribute of the wrapping tag
}

// TutorialURL returns the URL of the named tutorial, allocating it on first
// use. Unknown tutorials are reported and yield ok == false.
func (r *Resolver) TutorialURL(name string) (string, bool) {
	if !r.tutorials.Has(name) {
		r.diags.Add(errors.TutorialError("no such tutorial").
			WithContext(logfields.KeyTutorial, name).
			Build())
		return "", false
	}
	return r.registry.TutorialURL(name), true
}

// ToTutorial renders a link to the named tutorial with content as its text,
// defaulting to the tutorial's title. A missing tutorial is reported and
// renders as styled plain text. An empty name is reported and renders nothing.
func (r *Resolver) ToTutorial(name, content string, missing *MissingTutorial) (string, bool) {
	if name == "" {
		r.diags.Add(errors.TutorialError("missing required tutorial name").Build())
		return "", false
	}

	if !r.tutorials.Has(name) {
		r.diags.Add(errors.TutorialError("link to unknown tutorial").
			WithContext(logfields.KeyTutorial, name).
			Build())
		return missingTutorial(name, missing), true
	}
	if content == "" {
		title, ok := r.tutorials.Title(name)
		content = name
		if ok && title != "" {
			content = title
		}
	}
	url := r.registry.TutorialURL(name)
	return anchor(EncodeURI(url), "", content), true
}

func missingTutorial(name string, missing *MissingTutorial) string {
	if missing == nil {
		missing = &MissingTutorial{}
	}
	text := missing.Prefix + name
	if missing.Tag == "" {
		return text
	}
	class := ""
	if missing.ClassName != "" {
		class = fmt.Sprintf(` class="%s"`, missing.ClassName)
	}
	return fmt.Sprintf("<%s%s>%s</%s>", missing.Tag, class, text, missing.Tag)
}
