package plugin

import (
	"git.home.luguber.info/inful/essential/internal/host"
	"git.home.luguber.info/inful/essential/internal/theme"
)

// PluginType identifies the category of plugin.
type PluginType string

const (
	// PluginTypeTheme provides a page renderer.
	PluginTypeTheme PluginType = "theme"

	// PluginTypeUserMenu contributes entries to the user menu.
	PluginTypeUserMenu PluginType = "user_menu"
)

// IsValid returns true if the plugin type is recognized.
func (t PluginType) IsValid() bool {
	switch t {
	case PluginTypeTheme, PluginTypeUserMenu:
		return true
	default:
		return false
	}
}

func (t PluginType) String() string { return string(t) }

// ThemePlugin creates renderers for a theme.
type ThemePlugin interface {
	Plugin

	// ThemeName returns the theme's directory name.
	ThemeName() string

	// NewRenderer creates a renderer for one request.
	NewRenderer(pc *PluginContext, req host.Request) *theme.Renderer
}

// UserMenuPlugin provides a user menu extension.
type UserMenuPlugin interface {
	Plugin

	Extension(pc *PluginContext) theme.UserMenuExtension
}

// PluginCapability describes optional features a plugin may provide.
type PluginCapability string

const (
	CapabilityMessages      PluginCapability = "messages"
	CapabilityLanguageMenu  PluginCapability = "language_menu"
	CapabilityColourSchemes PluginCapability = "colour_schemes"
	CapabilityIcons         PluginCapability = "icons"
	CapabilityMetrics       PluginCapability = "metrics"
)

func (c PluginCapability) String() string { return string(c) }
