package theme

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"git.home.luguber.info/inful/essential/internal/config"
	"git.home.luguber.info/inful/essential/internal/host"
	"git.home.luguber.info/inful/essential/internal/markup"
)

// Footer placeholders substituted by Footer.
const (
	PerformanceInfoToken = "%%PERFORMANCEINFO%%"
	EndHTMLToken         = "%%ENDHTML%%"
)

// perfDebugFooter is the perf_debug level from which performance information is shown.
const perfDebugFooter = 7

// Navbar renders the breadcrumb trail. Style 0 disables the trail and only the opening tag is
// emitted.
func (r *Renderer) Navbar() string {
	defer r.observe("navbar", time.Now())

	style := r.theme.BreadcrumbStyle
	var b strings.Builder
	b.WriteString(markup.StartTag("ul", markup.Class("breadcrumb style"+strconv.Itoa(style))))
	if style == 0 {
		return b.String()
	}
	for i, item := range r.req.Page.Navbar {
		item.HideIcon = true
		b.WriteString(markup.Tag("li", r.req.Renderer.RenderNavItem(item),
			markup.A("style", "z-index:"+strconv.Itoa(100-(i+1))+";")))
	}
	b.WriteString(markup.EndTag("ul"))
	return b.String()
}

var notificationClasses = map[string]string{
	"notifyproblem":   "alert alert-error",
	"notifysuccess":   "alert alert-success",
	"notifymessage":   "alert alert-info",
	"redirectmessage": "alert alert-block alert-info",
}

// Notification renders a cleaned message as a Bootstrap alert. class is one of notifyproblem,
// notifysuccess, notifymessage or redirectmessage; "" means notifyproblem.
func (r *Renderer) Notification(message, class string) string {
	defer r.observe("notification", time.Now())

	if class == "" {
		class = "notifyproblem"
	}
	return markup.Div(markup.CleanText(message), notificationClasses[class])
}

// Footer fills the placeholders of a footer template: performance information (when the site's
// perf_debug level is above 7 and the host collected it) and the host's end code.
func (r *Renderer) Footer(footer string) string {
	defer r.observe("footer", time.Now())

	perf := ""
	if r.site.PerfDebug > perfDebugFooter && r.req.Performance != nil {
		perf = r.PerformanceInfo(*r.req.Performance)
	}
	footer = strings.ReplaceAll(footer, PerformanceInfoToken, perf)
	return strings.ReplaceAll(footer, EndHTMLToken, r.req.Renderer.EndCode())
}

// PerformanceInfo renders the performance panel. The "min" setting shows page load time,
// memory and database queries; "max" adds peak memory, included files and server load.
func (r *Renderer) PerformanceInfo(p host.PerformanceInfo) string {
	item := func(class, id string, a any) string {
		return li(markup.Span(markup.Escape(r.str(id, "theme_essential", a)), class))
	}
	var b strings.Builder
	b.WriteString(markup.StartDiv("performanceinfo"))
	b.WriteString(markup.Tag("h5", markup.Escape(r.str("perfinfo", "theme_essential"))))
	b.WriteString("<ul>")
	b.WriteString(item("perf-realtime", "perf_realtime", strconv.FormatFloat(p.RealTime.Seconds(), 'f', 3, 64)+" secs"))
	b.WriteString(item("perf-memory", "perf_memory", humanize.IBytes(uint64(max(p.MemoryTotal, 0)))))
	if r.theme.PerfInfo == config.PerfInfoMax {
		b.WriteString(item("perf-peak", "perf_peak", humanize.IBytes(uint64(max(p.MemoryPeak, 0)))))
		b.WriteString(item("perf-includes", "perf_includes", p.IncludeFiles))
	}
	b.WriteString(item("perf-dbqueries", "perf_dbqueries", p.DBQueries))
	if r.theme.PerfInfo == config.PerfInfoMax {
		b.WriteString(item("perf-load", "perf_load", strconv.FormatFloat(p.ServerLoad, 'f', 2, 64)))
	}
	b.WriteString("</ul></div>")
	return b.String()
}

// Heading delegates to the host except on single-section course pages, where the course title
// is suppressed.
func (r *Renderer) Heading(text string, level int, classes, id string) string {
	defer r.observe("heading", time.Now())

	if r.req.Page.Section != 0 {
		return ""
	}
	return r.req.Renderer.Heading(text, level, classes, id)
}

// EditButton renders the "Turn editing on/off" button for url.
func (r *Renderer) EditButton(url *host.URL) string {
	defer r.observe("edit_button", time.Now())

	u := url.WithParam("sesskey", r.sessKey())
	var btn, title, icon string
	if r.req.Page.Editing {
		u = u.WithParam("edit", "off")
		btn, title, icon = "btn-inverse", r.str("turneditingoff", ""), "fa-power-off"
	} else {
		u = u.WithParam("edit", "on")
		btn, title, icon = "btn", r.str("turneditingon", ""), "fa-edit"
	}
	return markup.Tag("a",
		markup.Tag("i", "", markup.Class(icon+" fa fa-fw"))+markup.Escape(title),
		markup.A("href", u.Out()), markup.Class("btn "+btn), markup.A("title", title))
}

var socialIcons = map[string]string{
	"googleplus": "google-plus",
	"website":    "globe",
	"ios":        "apple",
	"winphone":   "windows",
}

var jsQuote = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// SocialNetwork renders the button for a configured social network, or "" when the network has
// no URL.
func (r *Renderer) SocialNetwork(network string) string {
	link := r.theme.Social[network]
	if link == "" {
		return ""
	}
	icon := network
	if mapped, ok := socialIcons[network]; ok {
		icon = mapped
	}
	button := markup.Tag("button",
		markup.Tag("i", "", markup.Class("fa fa-"+icon+" fa-inverse"))+markup.Tag("span", "", markup.Class("sr-only")),
		markup.A("type", "button"),
		markup.Class("socialicon "+network),
		markup.A("onclick", "window.open('"+jsQuote.Replace(link)+"')"),
		markup.A("title", r.str(network, "theme_essential")),
	)
	return li(button)
}

// SocialNetworks renders every configured network in display order.
func (r *Renderer) SocialNetworks() string {
	defer r.observe("social_networks", time.Now())

	var b strings.Builder
	for _, n := range config.SocialNetworks {
		b.WriteString(r.SocialNetwork(n))
	}
	return b.String()
}
