// Package config loads the theme settings file.
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/essential/internal/foundation/errors"
)

// Config is the settings file: theme settings, the site-level settings the theme reads, and
// settings for the CLI and preview server.
type Config struct {
	Theme   ThemeSettings `yaml:"theme"`
	Site    SiteSettings  `yaml:"site"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Preview PreviewConfig `yaml:"preview"`
}

// ThemeSettings are the theme's own settings.
type ThemeSettings struct {
	// BreadcrumbStyle selects the breadcrumb style class; 0 disables the trail.
	BreadcrumbStyle  int         `yaml:"breadcrumb_style"`
	DisplayMyCourses bool        `yaml:"display_my_courses"`
	MyCourseTitle    CourseTitle `yaml:"my_course_title"`
	// AlternativeColours holds up to three alternative colour schemes, numbered from 1.
	AlternativeColours []AlternativeColour `yaml:"alternative_colours,omitempty"`
	HelpLinkType       HelpLinkType        `yaml:"help_link_type"`
	HelpLink           string              `yaml:"help_link,omitempty"`
	PerfInfo           PerfInfo            `yaml:"perf_info"`
	// Social maps a network name (see SocialNetworks) to its URL.
	Social map[string]string `yaml:"social,omitempty"`
	// UserMenuExtensions names the registered user menu plugins to enable, in menu order.
	UserMenuExtensions []string `yaml:"user_menu_extensions,omitempty"`
}

// AlternativeColour is one alternative colour scheme.
type AlternativeColour struct {
	Enabled bool   `yaml:"enabled"`
	Name    string `yaml:"name,omitempty"`
}

// SiteSettings mirror site-wide settings owned by the host.
type SiteSettings struct {
	WWWRoot         string `yaml:"wwwroot"`
	Messaging       bool   `yaml:"messaging"`
	LangMenu        bool   `yaml:"lang_menu"`
	SupportEmail    string `yaml:"support_email,omitempty"`
	SupportPage     string `yaml:"support_page,omitempty"`
	PerfDebug       int    `yaml:"perf_debug"`
	CustomMenuItems string `yaml:"custom_menu_items,omitempty"`
	EnableBadges    bool   `yaml:"enable_badges"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig controls the Prometheus endpoint of the preview server.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	Listen   string        `yaml:"listen"`
	Fixture  string        `yaml:"fixture"`
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns the settings used when no file is given. They match parsing an empty file.
func Default() *Config {
	c := defaultsForDecode()
	applyDefaults(c)
	return c
}

func applyDefaults(c *Config) {
	if c.Theme.MyCourseTitle == "" {
		c.Theme.MyCourseTitle = CourseTitleCourse
	}
	if c.Theme.PerfInfo == "" {
		c.Theme.PerfInfo = PerfInfoMin
	}
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Preview.Listen == "" {
		c.Preview.Listen = "127.0.0.1:8080"
	}
	if c.Preview.Fixture == "" {
		c.Preview.Fixture = "fixture.yaml"
	}
	if c.Preview.Debounce <= 0 {
		c.Preview.Debounce = 300 * time.Millisecond
	}
}

// Load reads the settings file at path. .env and .env.local are loaded first; ${VAR}
// references in the file are expanded from the environment.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapError(err, errors.CategoryConfig, "configuration file not found").
				WithContext("path", path).Fatal().Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read configuration file").
			WithContext("path", path).Build()
	}
	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse decodes, normalizes and validates settings. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	c := defaultsForDecode()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.WrapError(err, errors.CategoryConfig, "parse configuration").Fatal().Build()
	}
	applyDefaults(c)
	if err := c.Normalize(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// defaultsForDecode pre-fills boolean settings whose default is true, since YAML cannot tell
// an absent key from false after decoding.
func defaultsForDecode() *Config {
	return &Config{
		Theme: ThemeSettings{BreadcrumbStyle: 1, DisplayMyCourses: true},
		Site:  SiteSettings{Messaging: true, LangMenu: true},
	}
}

// Init writes an example settings file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.NewError(errors.CategoryConfig, "configuration file already exists (use --force to overwrite)").
			WithContext("path", path).Build()
	}

	example := defaultsForDecode()
	applyDefaults(example)
	example.Site.WWWRoot = "http://localhost:8080"
	example.Site.SupportEmail = "support@example.org"
	example.Site.CustomMenuItems = "Community|https://moodle.org\n-Forums|https://moodle.org/forums|Forums\n-Docs|https://docs.moodle.org"
	example.Theme.AlternativeColours = []AlternativeColour{{Enabled: true, Name: "Ocean"}, {Enabled: false}, {Enabled: false}}
	example.Theme.HelpLinkType = HelpLinkEmail
	example.Theme.HelpLink = "help@example.org"
	example.Theme.Social = map[string]string{"twitter": "https://twitter.com/example", "website": "https://example.org"}
	example.Theme.UserMenuExtensions = []string{"private_files", "forum_posts", "grades"}

	data, err := yaml.Marshal(example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "marshal example configuration").Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write configuration file").
			WithContext("path", path).Build()
	}
	return nil
}
