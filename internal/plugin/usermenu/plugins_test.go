package usermenu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/essential/internal/config"
	"git.home.luguber.info/inful/essential/internal/plugin"
	"git.home.luguber.info/inful/essential/internal/theme"
)

func TestRegistered(t *testing.T) {
	names := make([]string, 0)
	for _, p := range plugin.DefaultRegistry().ListByType(plugin.PluginTypeUserMenu) {
		names = append(names, p.Metadata().Name)
	}
	assert.Equal(t, []string{"badges", "forum_posts", "grades", "private_files"}, names)
}

func TestResolve(t *testing.T) {
	cfg := config.Default()
	cfg.Site.EnableBadges = true
	pc := plugin.NewPluginContext(context.Background(), nil, cfg)

	ext, err := plugin.DefaultRegistry().ResolveExtensions(pc, []string{"grades", "badges"})
	require.NoError(t, err)
	require.Len(t, ext, 2)
	assert.Equal(t, theme.Grades{}, ext[0])
	assert.Equal(t, theme.Badges{Enabled: true}, ext[1])
}
