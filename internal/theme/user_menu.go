package theme

import (
	"context"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/essential/internal/config"
	"git.home.luguber.info/inful/essential/internal/host"
	"git.home.luguber.info/inful/essential/internal/logfields"
	"git.home.luguber.info/inful/essential/internal/markup"
)

const userPictureSize = 35

func itemLabel(icon, text string) string {
	return markup.Em(markup.Icon(icon) + markup.Escape(text))
}

func menuItem(u *host.URL, label string) string {
	return li(markup.Link(u.Out(), label))
}

func dropdownToggle(contents string) string {
	return markup.Link("#", contents, markup.Class("dropdown-toggle"), markup.A("data-toggle", "dropdown"))
}

// UserMenu renders the login link, the guest menu or the full user menu depending on the session.
// It is "" during installation. A request without a session gets the login link.
func (r *Renderer) UserMenu(ctx context.Context) string {
	defer r.observe("user_menu", time.Now())

	if r.req.Session != nil && r.req.Session.DuringInstall() {
		return ""
	}

	var b strings.Builder
	b.WriteString(markup.StartTag("ul", markup.Class("nav")))
	b.WriteString(markup.StartTag("li", markup.Class("dropdown")))

	switch {
	case !r.loggedIn():
		label := markup.Em(markup.Icon("sign-in") + markup.Escape(r.str("login", "")))
		b.WriteString(markup.Link(host.NewURL("/login/index.php").Out(), label, markup.Class("loginurl")))
	case r.guest():
		pic := r.req.Renderer.UserPicture(r.req.User, userPictureSize, false)
		b.WriteString(dropdownToggle(pic + markup.Escape(r.str("guest", "")) + markup.Icon("caret-right")))
		b.WriteString(markup.StartTag("ul", markup.Class("dropdown-menu pull-right")))
		b.WriteString(r.logoutItem())
		b.WriteString(r.HelpLink())
		b.WriteString(markup.EndTag("ul"))
	default:
		r.authenticatedMenu(ctx, &b)
	}

	b.WriteString(markup.EndTag("li"))
	b.WriteString(markup.EndTag("ul"))
	return b.String()
}

func (r *Renderer) authenticatedMenu(ctx context.Context, b *strings.Builder) {
	user := r.req.User
	course := r.req.Page.Course
	uid := strconv.FormatInt(user.ID, 10)

	pic := r.req.Renderer.UserPicture(user, userPictureSize, false)
	b.WriteString(dropdownToggle(pic + markup.Escape(user.FirstName) + markup.Icon("caret-right")))
	b.WriteString(markup.StartTag("ul", markup.Class("dropdown-menu pull-right")))

	profile := host.NewURL("/user/profile.php", host.P("id", uid))
	if real, ok := r.req.Session.LoggedInAs(); ok {
		label := markup.Em(markup.Icon("key") + markup.Escape(real.FullName()) +
			markup.Escape(r.str("loggedinas", "theme_essential")) + markup.Escape(user.FullName()))
		b.WriteString(menuItem(profile, label))
	} else {
		b.WriteString(menuItem(profile, itemLabel("user", user.FullName())))
	}

	if user.Remote && r.req.Directory != nil {
		provider, ok, err := r.req.Directory.MnetHost(ctx, user.MnetHostID)
		switch {
		case err != nil:
			r.logger.Warn("Failed to resolve identity provider", logfields.Hook("user_menu"), logfields.Error(err))
		case ok:
			label := markup.Em(markup.Icon("users") + markup.Escape(r.str("loggedinfrom", "theme_essential")+provider.Name))
			b.WriteString(menuItem(host.NewURL(provider.WWWRoot), label))
		}
	}

	if r.req.Session.IsRoleSwitched(course.ID) {
		u := host.NewURL("/course/switchrole.php",
			host.P("id", strconv.FormatInt(course.ID, 10)),
			host.P("sesskey", r.sessKey()),
			host.P("switchrole", "0"),
			host.P("returnurl", r.pageURL().OutAsLocal(r.site.WWWRoot)),
		)
		b.WriteString(menuItem(u, itemLabel("users", r.str("switchrolereturn", ""))))
	}

	b.WriteString(r.preferences(course.ContextID, uid))
	b.WriteString(markup.EmptyTag("hr", markup.Class("sep")))

	if r.hasCapability("moodle/calendar:manageownentries", course.ContextID) {
		b.WriteString(menuItem(host.NewURL("/calendar/view.php"), itemLabel("calendar", r.str("pluginname", "block_calendar_month"))))
	}
	if r.site.Messaging {
		b.WriteString(menuItem(host.NewURL("/message/index.php"), itemLabel("envelope", r.str("pluginname", "block_messages"))))
	}

	for _, ext := range r.extensions {
		for _, l := range ext.UserMenuItems(ctx, r.req) {
			b.WriteString(menuItem(l.URL, itemLabel(l.Icon, l.Label)))
			if l.SeparatorAfter {
				b.WriteString(markup.EmptyTag("hr", markup.Class("sep")))
			}
		}
	}

	b.WriteString(r.logoutItem())
	b.WriteString(r.HelpLink())
	b.WriteString(markup.EndTag("ul"))
}

func (r *Renderer) logoutItem() string {
	u := host.NewURL("/login/logout.php", host.P("sesskey", r.sessKey()))
	return menuItem(u, itemLabel("sign-out", r.str("logout", "")))
}

// preferences renders the preferences submenu of the user menu.
func (r *Renderer) preferences(contextID int64, uid string) string {
	var b strings.Builder
	b.WriteString(markup.StartTag("li", markup.Class("dropdown-submenu preferences")))
	b.WriteString(dropdownToggle(itemLabel("cog", r.str("profile", ""))))
	b.WriteString(markup.StartTag("ul", markup.Class("dropdown-menu")))
	if r.hasCapability("moodle/user:editownprofile", contextID) {
		b.WriteString(menuItem(host.NewURL("/user/edit.php", host.P("id", uid)), itemLabel("user", r.str("editmyprofile", ""))))
	}
	if r.hasCapability("moodle/user:changeownpassword", contextID) {
		b.WriteString(menuItem(host.NewURL("/login/change_password.php", host.P("id", uid)), itemLabel("key", r.str("changepassword", ""))))
	}
	if r.hasCapability("moodle/user:editownmessageprofile", contextID) {
		b.WriteString(menuItem(host.NewURL("/message/edit.php", host.P("id", uid)), itemLabel("comments", r.str("messagepreferences", "theme_essential"))))
	}
	b.WriteString("</ul></li>")
	return b.String()
}

// HelpLink renders the help entry of the user menu according to the help link settings. Invalid
// settings render a warning entry without a target.
func (r *Renderer) HelpLink() string {
	label := itemLabel("question-circle", r.str("help", ""))
	help := r.theme.HelpLink

	switch r.theme.HelpLinkType {
	case config.HelpLinkEmail:
		var href string
		switch {
		case validEmail(help):
			href = "mailto:" + help + "?cc=" + r.req.User.Email
		case help != "" && validEmail(r.site.SupportEmail):
			href = "mailto:" + r.site.SupportEmail + "?cc=" + r.req.User.Email
		default:
			r.logger.Debug("Help link has no valid email address", logfields.Hook("help_link"))
			label = markup.Em(markup.Tag("i", "", markup.Class("fa fa-exclamation-triangle red")) + markup.Escape(r.str("invalidemail", "")))
		}
		return li(markup.Link(href, label))
	case config.HelpLinkURL:
		var href, target string
		switch {
		case validURL(help):
			href, target = help, "_blank"
		case help == "" && validURL(r.site.SupportPage):
			href, target = r.site.SupportPage, "_blank"
		default:
			r.logger.Debug("Help link has no valid URL", logfields.Hook("help_link"))
			label = markup.Em(markup.Tag("i", "", markup.Class("fa fa-exclamation-triangle red")) + markup.Escape(r.str("invalidurl", "error")))
		}
		return li(markup.Link(href, label, markup.A("target", target)))
	default:
		return ""
	}
}

func validEmail(s string) bool {
	if s == "" || strings.ContainsAny(s, " <>") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
