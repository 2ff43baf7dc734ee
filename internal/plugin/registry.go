package plugin

import (
	"slices"
	"sync"

	"golang.org/x/mod/semver"

	"git.home.luguber.info/inful/essential/internal/foundation/errors"
	"git.home.luguber.info/inful/essential/internal/host"
	"git.home.luguber.info/inful/essential/internal/theme"
)

// Registry manages plugin registration and discovery.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]map[string]Plugin // map[name]map[version]Plugin
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]map[string]Plugin),
	}
}

// Register adds a plugin to the registry.
// Returns an error if a plugin with the same name and version already exists.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return errors.ValidationError("cannot register nil plugin").Build()
	}

	metadata := p.Metadata()
	if err := metadata.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.plugins[metadata.Name] == nil {
		r.plugins[metadata.Name] = make(map[string]Plugin)
	}
	if _, exists := r.plugins[metadata.Name][metadata.Version]; exists {
		return errors.ValidationError("plugin already registered").
			WithContext("plugin", metadata.Name).
			WithContext("version", metadata.Version).
			Build()
	}

	r.plugins[metadata.Name][metadata.Version] = p
	return nil
}

func notFound(name string) error {
	return errors.NotFoundError("plugin not found").WithContext("plugin", name).Build()
}

// Get retrieves a specific plugin by name and version.
func (r *Registry) Get(name, version string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions, ok := r.plugins[name]
	if !ok {
		return nil, notFound(name)
	}
	p, ok := versions[version]
	if !ok {
		return nil, errors.NotFoundError("plugin version not found").
			WithContext("plugin", name).
			WithContext("version", version).
			Build()
	}
	return p, nil
}

// GetLatest retrieves the highest registered version of a plugin.
func (r *Registry) GetLatest(name string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions, ok := r.plugins[name]
	if !ok || len(versions) == 0 {
		return nil, notFound(name)
	}
	latest := ""
	for v := range versions {
		if latest == "" || semver.Compare(v, latest) > 0 {
			latest = v
		}
	}
	return versions[latest], nil
}

// List returns all registered plugins ordered by name, then version.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Plugin
	for _, versions := range r.plugins {
		for _, p := range versions {
			result = append(result, p)
		}
	}
	slices.SortFunc(result, func(a, b Plugin) int {
		am, bm := a.Metadata(), b.Metadata()
		if am.Name != bm.Name {
			if am.Name < bm.Name {
				return -1
			}
			return 1
		}
		return semver.Compare(am.Version, bm.Version)
	})
	return result
}

// ListByType returns all plugins of a specific type.
func (r *Registry) ListByType(pluginType PluginType) []Plugin {
	var result []Plugin
	for _, p := range r.List() {
		if p.Metadata().Type == pluginType {
			result = append(result, p)
		}
	}
	return result
}

// ListVersions returns all registered versions of a plugin, lowest first.
func (r *Registry) ListVersions(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions, ok := r.plugins[name]
	if !ok {
		return nil
	}
	result := make([]string, 0, len(versions))
	for v := range versions {
		result = append(result, v)
	}
	semver.Sort(result)
	return result
}

// Has checks if a plugin with the given name exists (any version).
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.plugins[name]
	return ok
}

// Unregister removes a plugin from the registry.
func (r *Registry) Unregister(name, version string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	versions, ok := r.plugins[name]
	if !ok {
		return notFound(name)
	}
	if _, ok := versions[version]; !ok {
		return errors.NotFoundError("plugin version not found").
			WithContext("plugin", name).
			WithContext("version", version).
			Build()
	}
	delete(versions, version)
	if len(versions) == 0 {
		delete(r.plugins, name)
	}
	return nil
}

// Count returns the total number of registered plugins (all versions).
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, versions := range r.plugins {
		count += len(versions)
	}
	return count
}

// Theme returns the latest version of the named theme plugin.
func (r *Registry) Theme(name string) (ThemePlugin, error) {
	p, err := r.GetLatest(name)
	if err != nil {
		return nil, err
	}
	tp, ok := p.(ThemePlugin)
	if !ok {
		return nil, errors.ValidationError("plugin is not a theme").
			WithContext("plugin", name).
			WithContext("type", string(p.Metadata().Type)).
			Build()
	}
	return tp, nil
}

// ResolveExtensions looks up the named user menu plugins and returns their extensions in the
// given order.
func (r *Registry) ResolveExtensions(pc *PluginContext, names []string) ([]theme.UserMenuExtension, error) {
	out := make([]theme.UserMenuExtension, 0, len(names))
	for _, name := range names {
		p, err := r.GetLatest(name)
		if err != nil {
			return nil, err
		}
		up, ok := p.(UserMenuPlugin)
		if !ok {
			return nil, errors.ValidationError("plugin is not a user menu extension").
				WithContext("plugin", name).
				Build()
		}
		out = append(out, up.Extension(pc))
	}
	return out, nil
}

// NewRenderer resolves the named theme and user menu extensions and builds a renderer for req.
// The resolved extensions are stored on pc.
func (r *Registry) NewRenderer(pc *PluginContext, themeName string, extensions []string, req host.Request) (*theme.Renderer, error) {
	tp, err := r.Theme(themeName)
	if err != nil {
		return nil, err
	}
	ext, err := r.ResolveExtensions(pc, extensions)
	if err != nil {
		return nil, err
	}
	pc.Extensions = ext
	return tp.NewRenderer(pc, req), nil
}

// globalRegistry is the default plugin registry used throughout the application.
var globalRegistry = NewRegistry()

// DefaultRegistry returns the global plugin registry.
func DefaultRegistry() *Registry {
	return globalRegistry
}

// Register adds a plugin to the global registry.
func Register(p Plugin) error {
	return globalRegistry.Register(p)
}

// MustRegister registers p in the global registry and panics on failure. It is meant for
// package init functions.
func MustRegister(p Plugin) {
	if err := Register(p); err != nil {
		panic(err)
	}
}
