package theme

import (
	"context"
	"strconv"
	"time"

	"git.home.luguber.info/inful/essential/internal/config"
	"git.home.luguber.info/inful/essential/internal/host"
	"git.home.luguber.info/inful/essential/internal/logfields"
	"git.home.luguber.info/inful/essential/internal/markup"
	"git.home.luguber.info/inful/essential/internal/menu"
)

// Menu sort keys.
const (
	sortLanguage   = 100
	sortCourses    = 200
	sortColours    = 300
	sortActivities = 400
	sortSiteMenus  = 500
	sortMessages   = 9999
)

func courseURL(id int64) *host.URL {
	return host.NewURL("/course/view.php", host.P("id", strconv.FormatInt(id, 10)))
}

// CustomMenu renders the custom menu from items, or from the site's custom menu items when
// items is empty.
func (r *Renderer) CustomMenu(items string) string {
	defer r.observe("custom_menu", time.Now())

	if items == "" {
		items = r.site.CustomMenuItems
	}
	return r.render(menu.Parse(items, r.req.Strings.Current()))
}

// LanguageMenu renders the language switcher. It is empty unless at least two languages are
// installed, the site enables the menu, and the course does not force a language.
func (r *Renderer) LanguageMenu() string {
	defer r.observe("language_menu", time.Now())

	m := menu.New()
	langs := r.req.Strings.Translations()
	course := r.req.Page.Course
	if len(langs) < 2 || !r.site.LangMenu || (course.ID != host.SiteID && course.Lang != "") {
		return r.render(m)
	}

	strLang := r.str("language", "")
	current := strLang
	for _, l := range langs {
		if l.Code == r.req.Strings.Current() {
			current = l.Name
			break
		}
	}
	node := m.AddSorted(markup.Icon("flag")+markup.Escape(current), host.NewURL("#"), strLang, sortLanguage)
	for _, l := range langs {
		node.Add(markup.Icon("language")+markup.Escape(l.Name), r.pageURL().WithParam("lang", l.Code), l.Name)
	}
	r.serializer.Language = node
	return r.render(m)
}

func (r *Renderer) myCoursesTitle() string {
	switch r.theme.MyCourseTitle {
	case config.CourseTitleModule:
		return r.str("mymodules", "theme_essential")
	case config.CourseTitleUnit:
		return r.str("myunits", "theme_essential")
	case config.CourseTitleClass:
		return r.str("myclasses", "theme_essential")
	default:
		return r.str("mycourses", "theme_essential")
	}
}

// CoursesMenu lists the user's enrolled courses. Hidden courses are listed, dimmed, only for
// users who may view them.
func (r *Renderer) CoursesMenu(ctx context.Context) string {
	defer r.observe("courses_menu", time.Now())

	m := menu.New()
	if !r.loggedIn() || r.guest() || !r.theme.DisplayMyCourses {
		return r.render(m)
	}

	title := r.myCoursesTitle()
	branch := m.AddSorted(markup.Icon("briefcase")+markup.Escape(title), host.NewURL("/my/index.php"), title, sortCourses)

	var courses []host.Course
	if r.req.Courses != nil {
		var err error
		courses, err = r.req.Courses.EnrolledCourses(ctx, r.req.User.ID)
		if err != nil {
			r.logger.Warn("Failed to load enrolled courses", logfields.Hook("courses_menu"), logfields.Error(err))
			courses = nil
		}
	}
	items := make([]named[host.Course], 0, len(courses))
	for _, c := range courses {
		items = append(items, named[host.Course]{name: c.FullName, val: c})
	}
	sortByName(r, items)

	viewHidden := r.hasCapability("moodle/course:viewhiddencourses", host.SystemContextID)
	count := 0
	for _, it := range items {
		c := it.val
		switch {
		case c.Visible:
			branch.Add(markup.Icon("graduation-cap")+markup.Escape(c.FullName), courseURL(c.ID), c.ShortName)
		case viewHidden:
			label := markup.Span(markup.Icon("eye-slash")+markup.Escape(c.FullName), "dimmed_text")
			branch.Add(label, courseURL(c.ID), c.ShortName)
		default:
			continue
		}
		count++
	}
	if count == 0 {
		none := r.str("noenrolments", "theme_essential")
		branch.Add(markup.Em(markup.Escape(none)), host.NewURL("#"), none)
	}
	return r.render(m)
}

// ThemeColoursMenu offers the default and the enabled alternative colour schemes.
func (r *Renderer) ThemeColoursMenu() string {
	defer r.observe("theme_colours_menu", time.Now())

	m := menu.New()
	if r.guest() {
		return r.render(m)
	}
	var enabled []int
	for n := 1; n <= config.MaxAlternativeColours; n++ {
		if _, ok := r.theme.AlternativeColour(n); ok {
			enabled = append(enabled, n)
		}
	}
	if len(enabled) == 0 {
		return r.render(m)
	}

	title := r.str("themecolors", "theme_essential")
	branch := m.AddSorted(markup.Icon("th-large")+markup.Escape(title), host.NewURL("#"), title, sortColours)

	def := r.str("defaultcolors", "theme_essential")
	branch.Add(markup.Icon("square colours-default")+markup.Escape(def),
		r.pageURL().WithParam("essentialcolours", "default"), def)
	for _, n := range enabled {
		ac, _ := r.theme.AlternativeColour(n)
		label := ac.Name
		if label == "" {
			label = r.str("alternativecolors", "theme_essential", n)
		}
		scheme := "alternative" + strconv.Itoa(n)
		branch.Add(markup.Icon("square colours-"+scheme)+markup.Escape(label),
			r.pageURL().WithParam("essentialcolours", scheme), label)
	}
	return r.render(m)
}

// ActivitiesMenu lists the activity types used in the current course, resources grouped into
// one entry. Only course and incourse pages have it.
func (r *Renderer) ActivitiesMenu(ctx context.Context) string {
	defer r.observe("activities_menu", time.Now())

	if layout := r.req.Page.Layout; layout != "course" && layout != "incourse" {
		return ""
	}
	return r.render(r.memoized("activities", func() *menu.Menu { return r.buildActivities(ctx) }))
}

const resourcesKey = "resources"

func (r *Renderer) buildActivities(ctx context.Context) *menu.Menu {
	course := r.req.Page.Course
	var activities []host.Activity
	if r.req.Courses != nil {
		var err error
		activities, err = r.req.Courses.Activities(ctx, course.ID)
		if err != nil {
			r.logger.Warn("Failed to load course activities", logfields.Hook("activities_menu"),
				logfields.CourseID(course.ID), logfields.Error(err))
		}
	}

	seen := make(map[string]bool)
	var names []named[struct{}]
	for _, a := range activities {
		if !a.UserVisible || !a.HasView {
			continue
		}
		key, name := a.ModName, a.PluralName
		if a.Archetype == host.ArchetypeResource {
			key, name = resourcesKey, r.str("resources", "")
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, named[struct{}]{key: key, name: name})
	}
	sortByName(r, names)

	m := menu.New()
	title := r.str("activities", "theme_essential")
	id := strconv.FormatInt(course.ID, 10)
	node := m.AddSorted(markup.Icon("tasks")+markup.Escape(title), courseURL(course.ID), title, sortActivities)
	for _, n := range names {
		var icon string
		var u *host.URL
		if n.key == resourcesKey {
			icon = r.PixIcon(host.Icon{Pix: "icon", Component: "mod_page", Attributes: map[string]string{"class": "icon"}})
			u = host.NewURL("/course/resources.php", host.P("id", id))
		} else {
			icon = markup.EmptyTag("img", markup.A("src", r.req.Renderer.PixURL("icon", n.key)), markup.Class("icon"), markup.A("alt", ""))
			u = host.NewURL("/mod/"+n.key+"/index.php", host.P("id", id))
		}
		node.Add(icon+markup.Escape(n.name), u, n.name)
	}
	return m
}

type menuEntry struct {
	icon, id, component string
	url                 *host.URL
}

// siteMenu builds a one-branch menu: the first entry is the branch, the rest its children.
func (r *Renderer) siteMenu(entries ...menuEntry) *menu.Menu {
	m := menu.New()
	var branch *menu.Node
	for i, e := range entries {
		title := r.str(e.id, e.component)
		label := markup.Icon(e.icon) + markup.Escape(title)
		if i == 0 {
			branch = m.AddSorted(label, e.url, title, sortSiteMenus)
			continue
		}
		branch.Add(label, e.url, title)
	}
	return m
}

// HomeMenu renders the home menu: site home, dashboard, log out and shut down.
func (r *Renderer) HomeMenu() string {
	defer r.observe("home_menu", time.Now())

	return r.render(r.memoized("home", func() *menu.Menu {
		return r.siteMenu(
			menuEntry{"home", "home", "", host.NewURL("/")},
			menuEntry{"university", "myhome", "", host.NewURL("/my")},
			menuEntry{"sign-out", "logout", "", host.NewURL("/login/logout.php", host.P("sesskey", r.sessKey()))},
			menuEntry{"power-off", "shutdown", "theme_essential", host.NewURL("/")},
		)
	}))
}

// OnlineCoursesMenu renders the online courses entry.
func (r *Renderer) OnlineCoursesMenu() string {
	defer r.observe("online_courses_menu", time.Now())

	return r.render(r.memoized("online_courses", func() *menu.Menu {
		return r.siteMenu(menuEntry{"list", "onlinecourses", "theme_essential", host.NewURL("/")})
	}))
}

// HandsOnCoursesMenu renders the hands-on courses menu.
func (r *Renderer) HandsOnCoursesMenu() string {
	defer r.observe("hands_on_courses_menu", time.Now())

	return r.render(r.memoized("hands_on_courses", func() *menu.Menu {
		return r.siteMenu(
			menuEntry{"hand-o-right", "handsoncourses", "theme_essential", host.NewURL("/")},
			menuEntry{"map-marker", "trainingcentres", "theme_essential", host.NewURL("/")},
			menuEntry{"book", "booktraining", "theme_essential", host.NewURL("/")},
		)
	}))
}

// HelpMenu renders the help menu.
func (r *Renderer) HelpMenu() string {
	defer r.observe("help_menu", time.Now())

	return r.render(r.memoized("help", func() *menu.Menu {
		return r.siteMenu(
			menuEntry{"question-circle", "help", "theme_essential", host.NewURL("/")},
			menuEntry{"book", "useevolution", "theme_essential", host.NewURL("/")},
			menuEntry{"life-ring", "faq", "theme_essential", host.NewURL("/")},
			menuEntry{"comment-o", "contactus", "theme_essential", host.NewURL("/")},
		)
	}))
}
