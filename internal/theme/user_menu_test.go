package theme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/essential/internal/config"
	"git.home.luguber.info/inful/essential/internal/fixture"
	"git.home.luguber.info/inful/essential/internal/host"
	"git.home.luguber.info/inful/essential/internal/lang"
)

func TestUserMenu_DuringInstall(t *testing.T) {
	r := newTestRenderer(t, func(f *fixture.Fixture) { f.Session.DuringInstall = true }, nil)
	assert.Empty(t, r.UserMenu(context.Background()))
}

func TestUserMenu_Anonymous(t *testing.T) {
	r := newTestRenderer(t, anonymous, nil)
	want := `<ul class="nav"><li class="dropdown">` +
		`<a href="/login/index.php" class="loginurl"><em><i class="fa fa-sign-in"></i>Log in</em></a>` +
		`</li></ul>`
	assert.Equal(t, want, r.UserMenu(context.Background()))
}

func TestUserMenu_NoSession(t *testing.T) {
	f, err := fixture.Demo()
	require.NoError(t, err)
	bundle, err := lang.Load()
	require.NoError(t, err)
	req := f.Request(bundle, func(r *host.Request) { r.Session = nil })
	out := New(req, config.Default()).UserMenu(context.Background())

	assert.Equal(t, []string{"/login/index.php"}, hrefs(t, out))
	assert.Contains(t, out, `class="loginurl"`)
}

func TestUserMenu_Guest(t *testing.T) {
	r := newTestRenderer(t, guest, nil)
	out := r.UserMenu(context.Background())

	toggles := findAll(parse(t, out), byClass("dropdown-toggle"))
	require.Len(t, toggles, 1)
	assert.Contains(t, text(toggles[0]), "Guest")
	assert.Equal(t, []string{"#", "/login/logout.php?sesskey=x"}, hrefs(t, out))
	assert.NotContains(t, out, "preferences")
}

func TestUserMenu_Authenticated(t *testing.T) {
	r := newTestRenderer(t, nil, nil)
	out := r.UserMenu(context.Background())

	assert.Equal(t, []string{
		"#",
		"/user/profile.php?id=7",
		"#",
		"/user/edit.php?id=7",
		"/login/change_password.php?id=7",
		"/message/edit.php?id=7",
		"/calendar/view.php",
		"/message/index.php",
		"/login/logout.php?sesskey=a1b2c3d4",
	}, hrefs(t, out))

	nodes := parse(t, out)
	assert.Len(t, findAll(nodes, byClass("preferences")), 1)
	assert.Len(t, findAll(nodes, byClass("sep")), 1)
	pics := findAll(nodes, byClass("userpicture"))
	require.Len(t, pics, 1)
	assert.Equal(t, "35", attr(pics[0], "width"))
	assert.Contains(t, out, "Ada Lovelace")
}

func TestUserMenu_CapabilitiesAndMessaging(t *testing.T) {
	r := newTestRenderer(t, func(f *fixture.Fixture) { f.Capabilities = nil },
		func(c *config.Config) { c.Site.Messaging = false })
	out := r.UserMenu(context.Background())

	assert.Equal(t, []string{"#", "/user/profile.php?id=7", "#", "/login/logout.php?sesskey=a1b2c3d4"}, hrefs(t, out))
}

func TestUserMenu_LoggedInAs(t *testing.T) {
	r := newTestRenderer(t, func(f *fixture.Fixture) {
		f.Session.LoggedInAs = &fixture.User{ID: 2, FirstName: "Admin", LastName: "User"}
	}, nil)
	out := r.UserMenu(context.Background())

	assert.Contains(t, out, `<em><i class="fa fa-key"></i>Admin User logged in as Ada Lovelace</em>`)
}

func TestUserMenu_RemoteUser(t *testing.T) {
	r := newTestRenderer(t, func(f *fixture.Fixture) {
		f.User.Remote = true
		f.User.MnetHostID = 3
		f.MnetHosts = []fixture.MnetHost{{ID: 3, Name: "Partner", WWWRoot: "https://partner.example"}}
	}, nil)
	out := r.UserMenu(context.Background())

	assert.Contains(t, hrefs(t, out), "https://partner.example")
	assert.Contains(t, out, "Logged in from: Partner")
}

func TestUserMenu_RoleSwitched(t *testing.T) {
	r := newTestRenderer(t, func(f *fixture.Fixture) { f.Session.RoleSwitched = []int64{2} }, nil)
	out := r.UserMenu(context.Background())

	assert.Contains(t, hrefs(t, out),
		"/course/switchrole.php?id=2&sesskey=a1b2c3d4&switchrole=0&returnurl=%2Fcourse%2Fview.php%3Fid%3D2")
	assert.Contains(t, out, "Return to my normal role")
}

func TestUserMenu_Extensions(t *testing.T) {
	r := newTestRenderer(t, nil, nil,
		WithUserMenuExtensions(PrivateFiles{}, ForumPosts{}, Grades{}, Badges{Enabled: true}))
	out := r.UserMenu(context.Background())

	links := hrefs(t, out)
	for _, want := range []string{
		"/user/files.php",
		"/mod/forum/user.php?id=7",
		"/mod/forum/user.php?id=7&mode=discussions",
		"/grade/report/overview/index.php?id=2&userid=7",
		"/grade/report/user/index.php?id=2&userid=7",
	} {
		assert.Contains(t, links, want)
	}
	assert.NotContains(t, links, "/badges/mybadges.php")
	assert.Len(t, findAll(parse(t, out), byClass("sep")), 2)
	assert.Equal(t, "/login/logout.php?sesskey=a1b2c3d4", links[len(links)-1])
}

func TestGrades_FrontPage(t *testing.T) {
	r := newTestRenderer(t, func(f *fixture.Fixture) {
		f.Page.Course.ID = 1
		f.Page.Course.ContextID = 2
	}, nil, WithUserMenuExtensions(Grades{}))
	links := hrefs(t, r.UserMenu(context.Background()))

	assert.Contains(t, links, "/grade/report/overview/index.php?id=2&userid=7")
	assert.NotContains(t, links, "/grade/report/user/index.php?id=1&userid=7")
}

func TestGrades_FrontPageChecksFirstCourseOnly(t *testing.T) {
	r := newTestRenderer(t, func(f *fixture.Fixture) {
		f.Page.Course.ID = 1
		f.Page.Course.ContextID = 2
		// granted in Celestial Mechanics only; Introduction to Astronomy has the lower id
		f.Capabilities["gradereport/user:view"] = []int64{4}
	}, nil, WithUserMenuExtensions(Grades{}))
	links := hrefs(t, r.UserMenu(context.Background()))

	for _, l := range links {
		assert.NotContains(t, l, "/grade/report/")
	}
}

func TestHelpLink(t *testing.T) {
	tests := []struct {
		name     string
		settings func(*config.Config)
		href     string
		target   string
		label    string
	}{
		{
			name:     "none",
			settings: func(c *config.Config) { c.Theme.HelpLinkType = config.HelpLinkNone },
		},
		{
			name: "email",
			settings: func(c *config.Config) {
				c.Theme.HelpLinkType, c.Theme.HelpLink = config.HelpLinkEmail, "help@example.com"
			},
			href:  "mailto:help@example.com?cc=ada@example.com",
			label: "Help",
		},
		{
			name: "invalid email falls back to support email",
			settings: func(c *config.Config) {
				c.Theme.HelpLinkType, c.Theme.HelpLink = config.HelpLinkEmail, "not an address"
				c.Site.SupportEmail = "support@example.com"
			},
			href:  "mailto:support@example.com?cc=ada@example.com",
			label: "Help",
		},
		{
			name:     "missing email",
			settings: func(c *config.Config) { c.Theme.HelpLinkType = config.HelpLinkEmail },
			label:    "Invalid email address",
		},
		{
			name: "url",
			settings: func(c *config.Config) {
				c.Theme.HelpLinkType, c.Theme.HelpLink = config.HelpLinkURL, "https://help.example.com"
			},
			href:   "https://help.example.com",
			target: "_blank",
			label:  "Help",
		},
		{
			name: "missing url falls back to support page",
			settings: func(c *config.Config) {
				c.Theme.HelpLinkType = config.HelpLinkURL
				c.Site.SupportPage = "https://support.example.com"
			},
			href:   "https://support.example.com",
			target: "_blank",
			label:  "Help",
		},
		{
			name: "url without scheme",
			settings: func(c *config.Config) {
				c.Theme.HelpLinkType, c.Theme.HelpLink = config.HelpLinkURL, "help.example.com"
				c.Site.SupportPage = "https://support.example.com"
			},
			label: "Invalid URL",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := newTestRenderer(t, nil, tt.settings).HelpLink()
			if tt.label == "" {
				assert.Empty(t, out)
				return
			}
			links := findAll(parse(t, out), byTag("a"))
			require.Len(t, links, 1)
			assert.Equal(t, tt.href, attr(links[0], "href"))
			assert.Equal(t, tt.target, attr(links[0], "target"))
			assert.Equal(t, tt.label, text(links[0]))
			if tt.href == "" {
				assert.Len(t, findAll(links, byClass("red")), 1)
				for _, a := range links[0].Attr {
					assert.NotEqual(t, "href", a.Key)
				}
			}
		})
	}
}
