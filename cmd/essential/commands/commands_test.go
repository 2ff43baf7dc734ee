package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/essential/internal/foundation/errors"
	_ "git.home.luguber.info/inful/essential/internal/plugin/themes/essential"
	_ "git.home.luguber.info/inful/essential/internal/plugin/usermenu"
)

// run parses args against a fresh CLI with settings from a missing file in a temp dir and runs
// the selected command, returning its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli := &CLI{}
	g := &Global{Out: &out}
	parser, err := kong.New(cli,
		kong.Name("essential"),
		kong.Vars{"version": "test"},
		kong.Bind(g),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)

	if !hasConfigFlag(args) {
		args = append([]string{"--config", filepath.Join(t.TempDir(), "essential.yaml")}, args...)
	}
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	err = ctx.Run(g, cli)
	return out.String(), err
}

func hasConfigFlag(args []string) bool {
	for _, a := range args {
		if a == "--config" || a == "-c" {
			return true
		}
	}
	return false
}

func TestRender_SingleHook(t *testing.T) {
	out, err := run(t, "render", "--hook", "user_menu")
	require.NoError(t, err)
	assert.Contains(t, out, "Log out")
	assert.NotContains(t, out, "== user_menu ==")
}

func TestRender_AllHooks(t *testing.T) {
	out, err := run(t, "render")
	require.NoError(t, err)
	assert.Contains(t, out, "== navbar ==")
	assert.Contains(t, out, "== messages_menu ==")
	assert.Contains(t, out, "== user_menu ==")
}

func TestRender_Lang(t *testing.T) {
	out, err := run(t, "render", "-k", "user_menu", "--lang", "fr")
	require.NoError(t, err)
	assert.Contains(t, out, "Déconnexion")
}

func TestRender_Page(t *testing.T) {
	out, err := run(t, "render", "--page")
	require.NoError(t, err)
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "M.util.js_complete();")
}

func TestRender_UnknownHook(t *testing.T) {
	_, err := run(t, "render", "-k", "nope")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestRender_UnknownTheme(t *testing.T) {
	_, err := run(t, "render", "--theme", "nope")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestRender_InvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "essential.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: {unknown_key: 1}\n"), 0o600))
	_, err := run(t, "--config", path, "render")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestRender_FromSQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "messages.db")
	_, err := run(t, "messages", "seed", "--db", db)
	require.NoError(t, err)

	out, err := run(t, "render", "-k", "messages_menu", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Thanks!")
}

func TestIcons(t *testing.T) {
	out, err := run(t, "icons")
	require.NoError(t, err)
	assert.Contains(t, out, "TOKEN")
	assert.Contains(t, out, "fa-lightbulb-o")

	out, err = run(t, "icons", "i/marker")
	require.NoError(t, err)
	assert.Equal(t, "lightbulb-o\n", out)

	out, err = run(t, "icons", "zz/none")
	require.NoError(t, err)
	assert.Contains(t, out, "no glyph")
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "init", "--output", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "initialized successfully")
	assert.FileExists(t, filepath.Join(dir, "essential.yaml"))

	_, err = run(t, "init", "--output", dir)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))

	_, err = run(t, "init", "--output", dir, "--force")
	require.NoError(t, err)

	_, err = run(t, "--config", filepath.Join(dir, "essential.yaml"), "render", "-k", "user_menu")
	require.NoError(t, err)
}

func TestMessages_SeedAndList(t *testing.T) {
	db := filepath.Join(t.TempDir(), "messages.db")
	out, err := run(t, "messages", "seed", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 5 messages")

	out, err = run(t, "messages", "list", "7", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "STATE")
	assert.Contains(t, out, "unread")
	assert.Contains(t, out, "4 new")

	out, err = run(t, "messages", "list", "99", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "no messages\n", out)
}

func TestPlugins(t *testing.T) {
	out, err := run(t, "plugins")
	require.NoError(t, err)
	assert.Contains(t, out, "essential")
	assert.Contains(t, out, "private_files")
	assert.Contains(t, out, "user_menu")
}
