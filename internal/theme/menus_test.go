package theme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/essential/internal/config"
	"git.home.luguber.info/inful/essential/internal/fixture"
	"git.home.luguber.info/inful/essential/internal/metrics"
)

const emptyMenu = `<ul class="nav"></ul>`

func titles(items []*html.Node) []string {
	var out []string
	for _, li := range items {
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "a" {
				out = append(out, attr(c, "title"))
				break
			}
		}
	}
	return out
}

func TestCustomMenu(t *testing.T) {
	items := "Community|https://moodle.org\n" +
		"-Support|https://moodle.org/support|Free support\n" +
		"German only|/de|Nur deutsch|de\n" +
		"Docs|https://docs.moodle.org"

	r := newTestRenderer(t, nil, nil)
	out := r.CustomMenu(items)

	nodes := parse(t, out)
	top := findAll(nodes, byClass("nav"))
	require.Len(t, top, 1)
	dropdowns := findAll(nodes, byClass("dropdown"))
	require.Len(t, dropdowns, 1)
	assert.Equal(t, []string{"https://moodle.org", "https://moodle.org/support", "https://docs.moodle.org"}, hrefs(t, out))
	assert.Equal(t, []string{"Free support"}, titles(childItems(t, out)))
	assert.NotContains(t, out, "German only")
}

func TestCustomMenu_FromSiteSettings(t *testing.T) {
	r := newTestRenderer(t, nil, func(c *config.Config) { c.Site.CustomMenuItems = "Docs|https://docs.moodle.org" })
	assert.Equal(t, `<ul class="nav"><li><a href="https://docs.moodle.org" title="Docs">Docs</a></li></ul>`, r.CustomMenu(""))

	r = newTestRenderer(t, nil, nil)
	assert.Equal(t, emptyMenu, r.CustomMenu(""))
}

func TestLanguageMenu(t *testing.T) {
	r := newTestRenderer(t, nil, nil)
	out := r.LanguageMenu()

	lm := findAll(parse(t, out), byClass("langmenu"))
	require.Len(t, lm, 1)
	assert.True(t, hasClass(lm[0], "dropdown"))
	assert.Contains(t, text(lm[0]), "English")
	assert.Equal(t, []string{"Deutsch", "English", "français"}, titles(childItems(t, out)))
	assert.Contains(t, hrefs(t, out), "/course/view.php?id=2&lang=de")
}

func TestLanguageMenu_Hidden(t *testing.T) {
	forced := newTestRenderer(t, func(f *fixture.Fixture) { f.Page.Course.Lang = "fr" }, nil)
	assert.Equal(t, emptyMenu, forced.LanguageMenu())

	disabled := newTestRenderer(t, nil, func(c *config.Config) { c.Site.LangMenu = false })
	assert.Equal(t, emptyMenu, disabled.LanguageMenu())

	front := newTestRenderer(t, func(f *fixture.Fixture) { f.Page.Course.ID, f.Page.Course.Lang = 1, "fr" }, nil)
	assert.NotEqual(t, emptyMenu, front.LanguageMenu())
}

func TestCoursesMenu(t *testing.T) {
	r := newTestRenderer(t, nil, nil)
	out := r.CoursesMenu(context.Background())

	items := childItems(t, out)
	assert.Equal(t, []string{"ASTRO099", "ASTRO201", "ASTRO101"}, titles(items))
	assert.Len(t, findAll(items[:1], byClass("dimmed_text")), 1)
	assert.Contains(t, hrefs(t, out), "/my/index.php")
	assert.Contains(t, out, "My courses")
}

func TestCoursesMenu_HiddenCoursesNeedCapability(t *testing.T) {
	r := newTestRenderer(t, func(f *fixture.Fixture) {
		delete(f.Capabilities, "moodle/course:viewhiddencourses")
	}, func(c *config.Config) { c.Theme.MyCourseTitle = config.CourseTitleModule })
	out := r.CoursesMenu(context.Background())

	assert.Equal(t, []string{"ASTRO201", "ASTRO101"}, titles(childItems(t, out)))
	assert.Contains(t, out, "My modules")
}

func TestCoursesMenu_NoEnrolments(t *testing.T) {
	r := newTestRenderer(t, func(f *fixture.Fixture) { f.Courses = nil }, nil)
	out := r.CoursesMenu(context.Background())

	items := childItems(t, out)
	require.Len(t, items, 1)
	assert.Equal(t, "You have no current enrolments", text(items[0]))
}

func TestCoursesMenu_Empty(t *testing.T) {
	assert.Equal(t, emptyMenu, newTestRenderer(t, anonymous, nil).CoursesMenu(context.Background()))
	assert.Equal(t, emptyMenu, newTestRenderer(t, guest, nil).CoursesMenu(context.Background()))
	off := newTestRenderer(t, nil, func(c *config.Config) { c.Theme.DisplayMyCourses = false })
	assert.Equal(t, emptyMenu, off.CoursesMenu(context.Background()))
}

func TestThemeColoursMenu(t *testing.T) {
	assert.Equal(t, emptyMenu, newTestRenderer(t, nil, nil).ThemeColoursMenu())

	colours := func(c *config.Config) {
		c.Theme.AlternativeColours = []config.AlternativeColour{
			{Enabled: true, Name: "Night"},
			{Enabled: false, Name: "Unused"},
			{Enabled: true},
		}
	}
	out := newTestRenderer(t, nil, colours).ThemeColoursMenu()
	assert.Equal(t, []string{"Default colours", "Night", "Alternative colours 3"}, titles(childItems(t, out)))
	assert.Contains(t, hrefs(t, out), "/course/view.php?id=2&essentialcolours=alternative3")

	assert.Equal(t, emptyMenu, newTestRenderer(t, guest, colours).ThemeColoursMenu())
}

func TestActivitiesMenu(t *testing.T) {
	rec := newCountingRecorder()
	r := newTestRenderer(t, nil, nil, WithRecorder(rec))
	out := r.ActivitiesMenu(context.Background())

	items := childItems(t, out)
	assert.Equal(t, []string{"Assignments", "Forums", "Quizzes", "Resources"}, titles(items))
	assert.Contains(t, hrefs(t, out), "/course/resources.php?id=2")
	assert.Contains(t, hrefs(t, out), "/mod/forum/index.php?id=2")
	imgs := findAll(items[1:2], byTag("img"))
	require.Len(t, imgs, 1)
	assert.Equal(t, "/theme/image.php/essential/forum/-1/icon", attr(imgs[0], "src"))

	assert.Equal(t, out, r.ActivitiesMenu(context.Background()))
	assert.Equal(t, 1, rec.menus["activities"][metrics.ResultMiss])
	assert.Equal(t, 1, rec.menus["activities"][metrics.ResultHit])
}

func TestActivitiesMenu_OtherLayouts(t *testing.T) {
	r := newTestRenderer(t, func(f *fixture.Fixture) { f.Page.Layout = "frontpage" }, nil)
	assert.Empty(t, r.ActivitiesMenu(context.Background()))
}

func TestSiteMenus(t *testing.T) {
	rec := newCountingRecorder()
	r := newTestRenderer(t, nil, nil, WithRecorder(rec))

	home := r.HomeMenu()
	assert.Contains(t, hrefs(t, home), "/login/logout.php?sesskey=a1b2c3d4")
	assert.Equal(t, []string{"Dashboard", "Log out", "Shut down"}, titles(childItems(t, home)))
	assert.Equal(t, home, r.HomeMenu())
	assert.Equal(t, 1, rec.menus["home"][metrics.ResultHit])

	assert.Equal(t, `<ul class="nav"><li><a href="/" title="Online courses"><i class="fa fa-list"></i>Online courses</a></li></ul>`,
		r.OnlineCoursesMenu())
	assert.Equal(t, []string{"Training centres", "Book a training"}, titles(childItems(t, r.HandsOnCoursesMenu())))
	assert.Equal(t, []string{"Using the platform", "FAQ", "Contact us"}, titles(childItems(t, r.HelpMenu())))
}
