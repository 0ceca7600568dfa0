package symbols

import (
	"slices"

	"git.home.luguber.info/inful/doclinks/internal/doclet"
)

// AddEventListeners records, on every event doclet, the longnames of the
// doclets that listen to it. Existing entries are not duplicated.
func AddEventListeners(g *doclet.Graph) {
	events := g.Find(ofKind(doclet.KindEvent))
	listeners := g.Find(func(d *doclet.Doclet) bool { return len(d.Listens) > 0 })
	for _, ev := range events {
		for _, l := range listeners {
			if slices.Contains(l.Listens, ev.Longname) && !slices.Contains(ev.Listeners, l.Longname) {
				ev.Listeners = append(ev.Listeners, l.Longname)
			}
		}
	}
}
