package theme

import (
	"cmp"
	"context"
	"slices"
	"strconv"

	"git.home.luguber.info/inful/essential/internal/host"
)

// MenuLink is one entry contributed to the user menu.
type MenuLink struct {
	Icon  string
	Label string
	URL   *host.URL
	// SeparatorAfter draws a separator below the entry.
	SeparatorAfter bool
}

// UserMenuExtension contributes entries to the authenticated user menu, between the messaging
// entry and the logout entry.
type UserMenuExtension interface {
	UserMenuItems(ctx context.Context, req host.Request) []MenuLink
}

// PrivateFiles links to the user's private files.
type PrivateFiles struct{}

func (PrivateFiles) UserMenuItems(_ context.Context, req host.Request) []MenuLink {
	if req.Permissions == nil || !req.Permissions.HasCapability("moodle/user:manageownfiles", req.Page.Course.ContextID) {
		return nil
	}
	return []MenuLink{{
		Icon:  "file",
		Label: req.Strings.Get("privatefiles", "block_private_files"),
		URL:   host.NewURL("/user/files.php"),
	}}
}

// ForumPosts links to the user's forum posts and discussions.
type ForumPosts struct{}

func (ForumPosts) UserMenuItems(_ context.Context, req host.Request) []MenuLink {
	if req.Permissions == nil || !req.Permissions.HasCapability("mod/forum:viewdiscussion", req.Page.Course.ContextID) {
		return nil
	}
	id := strconv.FormatInt(req.User.ID, 10)
	return []MenuLink{
		{Icon: "list-alt", Label: req.Strings.Get("forumposts", "mod_forum"), URL: host.NewURL("/mod/forum/user.php", host.P("id", id))},
		{Icon: "list", Label: req.Strings.Get("discussions", "mod_forum"), URL: host.NewURL("/mod/forum/user.php", host.P("id", id), host.P("mode", "discussions")), SeparatorAfter: true},
	}
}

// Grades links to grade reports. On the front page only the first enrolled course, visible courses
// first and then by id, is considered, and it must be visible and grant the grade report.
type Grades struct{}

func (Grades) UserMenuItems(ctx context.Context, req host.Request) []MenuLink {
	if req.Permissions == nil {
		return nil
	}
	uid := strconv.FormatInt(req.User.ID, 10)
	overview := func(courseID int64) MenuLink {
		return MenuLink{
			Icon:  "list-alt",
			Label: req.Strings.Get("mygrades", "theme_essential"),
			URL:   host.NewURL("/grade/report/overview/index.php", host.P("id", strconv.FormatInt(courseID, 10)), host.P("userid", uid)),
		}
	}

	course := req.Page.Course
	if course.ID == host.SiteID {
		if req.Courses == nil {
			return nil
		}
		courses, err := req.Courses.EnrolledCourses(ctx, req.User.ID)
		if err != nil || len(courses) == 0 {
			return nil
		}
		first := slices.MinFunc(courses, func(a, b host.Course) int {
			if a.Visible != b.Visible {
				if a.Visible {
					return -1
				}
				return 1
			}
			return cmp.Compare(a.ID, b.ID)
		})
		if !first.Visible || !req.Permissions.HasCapability("gradereport/user:view", first.ContextID) {
			return nil
		}
		return []MenuLink{overview(first.ID)}
	}
	if !req.Permissions.HasCapability("gradereport/user:view", course.ContextID) {
		return nil
	}
	return []MenuLink{
		overview(course.ID),
		{
			Icon:  "list-alt",
			Label: req.Strings.Get("coursegrades", "theme_essential"),
			URL:   host.NewURL("/grade/report/user/index.php", host.P("id", strconv.FormatInt(course.ID, 10)), host.P("userid", uid)),
		},
	}
}

// Badges links to the user's badges when badges are enabled on the site.
type Badges struct {
	Enabled bool
}

func (b Badges) UserMenuItems(_ context.Context, req host.Request) []MenuLink {
	if !b.Enabled || req.Permissions == nil || !req.Permissions.HasCapability("moodle/badges:manageownbadges", req.Page.Course.ContextID) {
		return nil
	}
	return []MenuLink{{
		Icon:           "certificate",
		Label:          req.Strings.Get("badges", ""),
		URL:            host.NewURL("/badges/mybadges.php"),
		SeparatorAfter: true,
	}}
}
