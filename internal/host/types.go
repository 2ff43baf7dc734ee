package host

import (
	"strings"
	"time"
)

// SiteID is the id of the front page course.
const SiteID int64 = 1

// SystemContextID is the permission context of the whole site.
const SystemContextID int64 = 1

// User is the subset of a user record the theme reads.
type User struct {
	ID         int64
	FirstName  string
	LastName   string
	Email      string
	MnetHostID int64
	// Remote is set for users authenticated by another network host.
	Remote bool
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Course is the subset of a course record the theme reads.
type Course struct {
	ID        int64
	FullName  string
	ShortName string
	Visible   bool
	// Lang is a forced course language; empty when the course does not force one.
	Lang string
	// ContextID is the permission context of the course.
	ContextID int64
}

// NavItem is one breadcrumb entry.
type NavItem struct {
	Text     string
	Title    string
	URL      *URL
	HideIcon bool
}

// Page describes the page being rendered.
type Page struct {
	URL    *URL
	Layout string
	Course Course
	// Editing reports whether the user has editing mode turned on.
	Editing bool
	// Section is the single-section parameter of a course page; zero when absent.
	Section int
	Navbar  []NavItem
}

// Icon describes a legacy pix icon.
type Icon struct {
	Pix        string
	Component  string
	Alt        string
	Attributes map[string]string
}

// Archetype classifies activity modules.
type Archetype int

const (
	ArchetypeOther Archetype = iota
	ArchetypeResource
	ArchetypeAssignment
)

// Activity is one course module instance as seen by the current user.
type Activity struct {
	ModName     string
	PluralName  string
	UserVisible bool
	HasView     bool
	Archetype   Archetype
}

// MnetHost is a remote identity provider.
type MnetHost struct {
	ID      int64
	Name    string
	WWWRoot string
}

// Translation is an installed language pack.
type Translation struct {
	Code string
	Name string
}

// Message formats.
const (
	FormatMoodle   = 0
	FormatHTML     = 1
	FormatPlain    = 2
	FormatMarkdown = 4
)

// MessageRecord is one row of the message or message_read table.
type MessageRecord struct {
	ID           int64
	SmallMessage string
	FromUserID   int64
	ToUserID     int64
	TimeCreated  time.Time
	TimeRead     time.Time // zero for unread messages
	Format       int
	Notification bool
	ContextURL   string
}

// PerformanceInfo is the host's performance snapshot for the footer.
type PerformanceInfo struct {
	RealTime     time.Duration
	MemoryTotal  int64
	MemoryPeak   int64
	IncludeFiles int
	DBQueries    int
	ServerLoad   float64
}
