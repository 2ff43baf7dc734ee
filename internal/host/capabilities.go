package host

import (
	"context"
	"time"
)

// PageRenderer is the host's base renderer. The theme delegates to it for primitives it does not
// override.
type PageRenderer interface {
	RenderNavItem(item NavItem) string
	UserPicture(u User, size int, link bool) string
	RenderPixIcon(icon Icon) string
	PixURL(name, component string) string
	Heading(text string, level int, classes, id string) string
	// EndCode returns the JavaScript and markup the host appends before </body>.
	EndCode() string
}

// Strings looks up localized strings. Component "" means core.
type Strings interface {
	Get(id, component string, a ...any) string
	// Translations lists installed language packs.
	Translations() []Translation
	// Current returns the active language code.
	Current() string
}

// Permissions evaluates capabilities in a context.
type Permissions interface {
	HasCapability(capability string, contextID int64) bool
}

// Session exposes the login state of the current request.
type Session interface {
	IsLoggedIn() bool
	IsGuest() bool
	// LoggedInAs returns the real user when an administrator is logged in as someone else.
	LoggedInAs() (User, bool)
	SessKey() string
	IsRoleSwitched(courseID int64) bool
	DuringInstall() bool
}

// Courses answers enrolment and course-module queries.
type Courses interface {
	// EnrolledCourses returns the user's courses ordered by full name.
	EnrolledCourses(ctx context.Context, userID int64) ([]Course, error)
	Activities(ctx context.Context, courseID int64) ([]Activity, error)
}

// Directory resolves users and network hosts.
type Directory interface {
	MnetHost(ctx context.Context, id int64) (MnetHost, bool, error)
}

// MessageStore is the query interface for the messages panel. Rows come back newest first.
type MessageStore interface {
	Unread(ctx context.Context, userID int64, limit int) ([]MessageRecord, error)
	Read(ctx context.Context, userID int64, limit int) ([]MessageRecord, error)
	User(ctx context.Context, id int64) (User, bool, error)
}

// Request bundles everything the host hands the theme for one render pass.
type Request struct {
	Page        Page
	User        User
	Now         time.Time
	RequestID   string
	Renderer    PageRenderer
	Strings     Strings
	Permissions Permissions
	Session     Session
	Courses     Courses
	Directory   Directory
	Messages    MessageStore
	// Performance is nil unless the host collected it.
	Performance *PerformanceInfo
}
