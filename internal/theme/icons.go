package theme

import (
	"time"

	"git.home.luguber.info/inful/essential/internal/host"
	"git.home.luguber.info/inful/essential/internal/icons"
	"git.home.luguber.info/inful/essential/internal/logfields"
	"git.home.luguber.info/inful/essential/internal/metrics"
	"git.home.luguber.info/inful/essential/internal/tabs"
)

// PixIcon renders a legacy icon through the host renderer, wrapped in a Font Awesome glyph when
// the icon token is mapped.
func (r *Renderer) PixIcon(icon host.Icon) string {
	defer r.observe("pix_icon", time.Now())

	alt := icon.Alt
	if v, ok := icon.Attributes["alt"]; ok {
		alt = v
	}
	out, hit := icons.Wrap(icon.Pix, alt, r.req.Renderer.RenderPixIcon(icon))
	if hit {
		r.recorder.IncIconLookup(metrics.ResultHit)
	} else {
		r.recorder.IncIconLookup(metrics.ResultMiss)
		r.logger.Debug("No glyph for icon", logfields.Icon(icon.Pix))
	}
	return out
}

// TabTree renders tabs as Bootstrap nav tabs. It is "" when there are no tabs.
func (r *Renderer) TabTree(t []tabs.Tab) string {
	defer r.observe("tab_tree", time.Now())
	return tabs.RenderTree(t)
}

// Tab renders a single tab.
func (r *Renderer) Tab(t tabs.Tab) string { return tabs.RenderTab(t) }
