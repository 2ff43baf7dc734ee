package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"git.home.luguber.info/inful/essential/internal/foundation/errors"
)

// MaxAlternativeColours is the number of alternative colour schemes the theme supports.
const MaxAlternativeColours = 3

// Normalize canonicalizes enumerated settings. Unknown spellings are validation errors.
func (c *Config) Normalize() error {
	title, err := courseTitleNormalizer.NormalizeWithError(string(c.Theme.MyCourseTitle))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid theme setting").
			WithContext("setting", "theme.my_course_title").Build()
	}
	c.Theme.MyCourseTitle = title

	perf, err := perfInfoNormalizer.NormalizeWithError(string(c.Theme.PerfInfo))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid theme setting").
			WithContext("setting", "theme.perf_info").Build()
	}
	c.Theme.PerfInfo = perf

	level, err := logLevelNormalizer.NormalizeWithError(string(c.Logging.Level))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid logging setting").
			WithContext("setting", "logging.level").Build()
	}
	c.Logging.Level = level

	format, err := logFormatNormalizer.NormalizeWithError(string(c.Logging.Format))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid logging setting").
			WithContext("setting", "logging.format").Build()
	}
	c.Logging.Format = format

	for name, link := range c.Theme.Social {
		c.Theme.Social[name] = strings.TrimSpace(link)
	}
	c.Theme.HelpLink = strings.TrimSpace(c.Theme.HelpLink)
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	invalid := func(setting, msg string, args ...any) error {
		return errors.ValidationError(fmt.Sprintf(msg, args...)).WithContext("setting", setting).Build()
	}

	if c.Theme.BreadcrumbStyle < 0 || c.Theme.BreadcrumbStyle > 4 {
		return invalid("theme.breadcrumb_style", "breadcrumb style must be between 0 and 4, got %d", c.Theme.BreadcrumbStyle)
	}
	if c.Theme.HelpLinkType < HelpLinkNone || c.Theme.HelpLinkType > HelpLinkURL {
		return invalid("theme.help_link_type", "help link type must be 0 (none), 1 (email) or 2 (url), got %d", c.Theme.HelpLinkType)
	}
	if len(c.Theme.AlternativeColours) > MaxAlternativeColours {
		return invalid("theme.alternative_colours", "at most %d alternative colour schemes are supported, got %d",
			MaxAlternativeColours, len(c.Theme.AlternativeColours))
	}
	for name := range c.Theme.Social {
		if !slices.Contains(SocialNetworks, name) {
			return invalid("theme.social", "unknown social network %q", name)
		}
	}
	if c.Site.PerfDebug < 0 {
		return invalid("site.perf_debug", "perf debug level must not be negative")
	}
	if c.Site.WWWRoot != "" {
		u, err := url.Parse(c.Site.WWWRoot)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return invalid("site.wwwroot", "wwwroot must be an absolute URL, got %q", c.Site.WWWRoot)
		}
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return invalid("metrics.path", "metrics path must start with '/', got %q", c.Metrics.Path)
	}
	return nil
}

// AlternativeColour returns scheme n (1-based) and whether it is enabled.
func (t ThemeSettings) AlternativeColour(n int) (AlternativeColour, bool) {
	if n < 1 || n > len(t.AlternativeColours) {
		return AlternativeColour{}, false
	}
	ac := t.AlternativeColours[n-1]
	return ac, ac.Enabled
}
