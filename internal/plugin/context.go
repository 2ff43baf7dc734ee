package plugin

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/essential/internal/config"
	"git.home.luguber.info/inful/essential/internal/metrics"
	"git.home.luguber.info/inful/essential/internal/theme"
)

// PluginContext carries the process-wide services plugins build renderers with.
type PluginContext struct {
	Context context.Context
	Logger  *slog.Logger
	Config  *config.Config

	// Recorder receives render metrics; nil means no metrics.
	Recorder metrics.Recorder

	// Extensions are the resolved user menu extensions, in menu order.
	Extensions []theme.UserMenuExtension
}

// NewPluginContext creates a plugin context. A nil cfg uses the default settings and a nil
// logger uses slog.Default().
func NewPluginContext(ctx context.Context, logger *slog.Logger, cfg *config.Config) *PluginContext {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PluginContext{
		Context: ctx,
		Logger:  logger,
		Config:  cfg,
	}
}

// RendererOptions returns the renderer options for the context's services.
func (pc *PluginContext) RendererOptions() []theme.Option {
	opts := []theme.Option{
		theme.WithLogger(pc.Logger),
		theme.WithUserMenuExtensions(pc.Extensions...),
	}
	if pc.Recorder != nil {
		opts = append(opts, theme.WithRecorder(pc.Recorder))
	}
	return opts
}
