// Package usermenu registers the optional user menu sections as plugins: private files, forum
// posts, grades and badges.
package usermenu

import (
	"git.home.luguber.info/inful/essential/internal/plugin"
	"git.home.luguber.info/inful/essential/internal/theme"
	"git.home.luguber.info/inful/essential/internal/version"
)

// Section is a user menu plugin built from a constructor.
type Section struct {
	plugin.BasePlugin
	name, description string
	build             func(pc *plugin.PluginContext) theme.UserMenuExtension
}

var _ plugin.UserMenuPlugin = (*Section)(nil)

func (e *Section) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        e.name,
		Version:     version.ThemeVersion,
		Type:        plugin.PluginTypeUserMenu,
		Description: e.description,
		Dependencies: []plugin.PluginDependency{
			{Name: "essential", Version: version.ThemeVersion},
		},
	}
}

func (e *Section) Extension(pc *plugin.PluginContext) theme.UserMenuExtension { return e.build(pc) }

// Extensions returns the built-in user menu plugins.
func Sections() []*Section {
	return []*Section{
		{
			name:        "private_files",
			description: "Link to the user's private files",
			build:       func(*plugin.PluginContext) theme.UserMenuExtension { return theme.PrivateFiles{} },
		},
		{
			name:        "forum_posts",
			description: "Links to the user's forum posts and discussions",
			build:       func(*plugin.PluginContext) theme.UserMenuExtension { return theme.ForumPosts{} },
		},
		{
			name:        "grades",
			description: "Links to grade reports",
			build:       func(*plugin.PluginContext) theme.UserMenuExtension { return theme.Grades{} },
		},
		{
			name:        "badges",
			description: "Link to the user's badges when badges are enabled",
			build: func(pc *plugin.PluginContext) theme.UserMenuExtension {
				return theme.Badges{Enabled: pc.Config.Site.EnableBadges}
			},
		},
	}
}

func init() {
	for _, e := range Sections() {
		plugin.MustRegister(e)
	}
}
