// Package plugin provides the plugin registry for themes and user menu extensions.
package plugin

import (
	"golang.org/x/mod/semver"

	"git.home.luguber.info/inful/essential/internal/foundation/errors"
)

// Plugin is a registrable theme component.
type Plugin interface {
	// Metadata returns the plugin's metadata (name, version, type, capabilities).
	Metadata() PluginMetadata

	// Validate checks the plugin's settings. Settings use the keys of the settings file section
	// the plugin reads.
	Validate(settings map[string]any) error
}

// PluginMetadata describes a plugin's identity and capabilities.
type PluginMetadata struct {
	// Name is the unique plugin identifier (e.g., "essential", "private_files").
	Name string

	// Version is a semantic version with a leading "v" (e.g., "v2.6.0").
	Version string

	Type        PluginType
	Description string
	Author      string

	// Capabilities lists optional features this plugin provides.
	Capabilities []string

	// Dependencies lists other plugins this plugin requires.
	Dependencies []PluginDependency
}

// PluginDependency describes a required or optional plugin dependency.
type PluginDependency struct {
	Name string
	// Version is the minimum version required.
	Version  string
	Optional bool
}

// String returns name@version (type).
func (m PluginMetadata) String() string {
	return m.Name + "@" + m.Version + " (" + string(m.Type) + ")"
}

// Validate checks if the plugin metadata is valid.
func (m PluginMetadata) Validate() error {
	if m.Name == "" {
		return errors.ValidationError("plugin name is required").Build()
	}
	if !semver.IsValid(m.Version) {
		return errors.ValidationError("plugin version must be a semantic version").
			WithContext("plugin", m.Name).
			WithContext("version", m.Version).
			Build()
	}
	if !m.Type.IsValid() {
		return errors.ValidationError("invalid plugin type").
			WithContext("plugin", m.Name).
			WithContext("type", string(m.Type)).
			Build()
	}
	return nil
}

// BasePlugin provides a Validate that accepts any settings.
type BasePlugin struct{}

// Validate is a no-op default implementation.
func (b *BasePlugin) Validate(map[string]any) error { return nil }
