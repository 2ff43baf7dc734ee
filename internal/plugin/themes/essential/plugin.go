// Package essential registers the Essential theme.
package essential

import (
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/essential/internal/config"
	"git.home.luguber.info/inful/essential/internal/foundation/errors"
	"git.home.luguber.info/inful/essential/internal/host"
	"git.home.luguber.info/inful/essential/internal/plugin"
	"git.home.luguber.info/inful/essential/internal/theme"
	"git.home.luguber.info/inful/essential/internal/version"
)

// Name is the theme's plugin name.
const Name = "essential"

// Plugin is the Essential theme plugin.
type Plugin struct{}

var _ plugin.ThemePlugin = (*Plugin)(nil)

func (p *Plugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        Name,
		Version:     version.ThemeVersion,
		Type:        plugin.PluginTypeTheme,
		Description: "Bootstrap 2 and Font Awesome theme with message, course and language menus",
		Author:      "Gareth J Barnard, Julian Ridden",
		Capabilities: []string{
			plugin.CapabilityMessages.String(),
			plugin.CapabilityLanguageMenu.String(),
			plugin.CapabilityColourSchemes.String(),
			plugin.CapabilityIcons.String(),
			plugin.CapabilityMetrics.String(),
		},
	}
}

// Validate checks a theme settings section by parsing it like the theme section of a settings
// file.
func (p *Plugin) Validate(settings map[string]any) error {
	data, err := yaml.Marshal(map[string]any{"theme": settings})
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "encode theme settings").Build()
	}
	_, err = config.Parse(data)
	return err
}

func (p *Plugin) ThemeName() string { return Name }

// NewRenderer creates an Essential renderer for req using the context's settings and services.
func (p *Plugin) NewRenderer(pc *plugin.PluginContext, req host.Request) *theme.Renderer {
	return theme.New(req, pc.Config, pc.RendererOptions()...)
}

func init() {
	plugin.MustRegister(&Plugin{})
}
