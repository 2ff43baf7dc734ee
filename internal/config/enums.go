package config

import (
	"git.home.luguber.info/inful/essential/internal/foundation/normalization"
)

// CourseTitle selects the wording of the "my courses" menu.
type CourseTitle string

const (
	CourseTitleCourse CourseTitle = "course"
	CourseTitleModule CourseTitle = "module"
	CourseTitleUnit   CourseTitle = "unit"
	CourseTitleClass  CourseTitle = "class"
)

var courseTitleNormalizer = normalization.NewNormalizer("my_course_title", map[string]CourseTitle{
	"course":  CourseTitleCourse,
	"courses": CourseTitleCourse,
	"module":  CourseTitleModule,
	"modules": CourseTitleModule,
	"unit":    CourseTitleUnit,
	"units":   CourseTitleUnit,
	"class":   CourseTitleClass,
	"classes": CourseTitleClass,
}, CourseTitleCourse)

// PerfInfo selects how much performance information the footer shows.
type PerfInfo string

const (
	PerfInfoMin PerfInfo = "min"
	PerfInfoMax PerfInfo = "max"
)

var perfInfoNormalizer = normalization.NewNormalizer("perf_info", map[string]PerfInfo{
	"min":     PerfInfoMin,
	"minimal": PerfInfoMin,
	"max":     PerfInfoMax,
	"full":    PerfInfoMax,
}, PerfInfoMin)

// HelpLinkType selects the kind of help link in the user menu.
type HelpLinkType int

const (
	HelpLinkNone  HelpLinkType = 0
	HelpLinkEmail HelpLinkType = 1
	HelpLinkURL   HelpLinkType = 2
)

// SocialNetworks lists the networks the theme can render buttons for, in display order.
var SocialNetworks = []string{
	"facebook", "flickr", "twitter", "googleplus", "linkedin", "pinterest", "instagram",
	"youtube", "skype", "website", "vk", "ios", "android", "winphone",
}
