package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/formbot/internal/cli/config"
)

func TestCollectKeys(t *testing.T) {
	keys := collectKeys("", reflect.ValueOf(*config.Default()))

	byKey := map[string]configKey{}
	for _, k := range keys {
		byKey[k.Key] = k
	}

	assert.Contains(t, byKey, "api.base_url")
	assert.Contains(t, byKey, "ui.view_idle")
	assert.Contains(t, byKey, "session.max_age")
	assert.Contains(t, byKey, "output")
	assert.NotContains(t, byKey, "verbose")
	assert.Equal(t, "`8765`", byKey["ui.port"].Default)
	assert.Equal(t, "time.Duration", byKey["api.timeout"].Type)
	assert.Equal(t, "(development value)", byKey["session.secret"].Default)
	assert.Empty(t, byKey["api.token"].Default)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "FORMBOT_UI_VIEW_IDLE", envName("ui.view_idle"))
	assert.Equal(t, "FORMBOT_OUTPUT", envName("output"))
}

func TestGenerateDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(filepath.Join(dir, "cli")))
	require.NoError(t, generateConfigDocs(filepath.Join(dir, "config")))

	read := func(parts ...string) string {
		data, err := os.ReadFile(filepath.Join(append([]string{dir}, parts...)...))
		require.NoError(t, err, filepath.Join(parts...))
		return string(data)
	}

	for _, name := range []string{"serve.md", "folders.md", "forms.md", "init.md", "version.md"} {
		assert.Contains(t, read("cli", "index.md"), "("+name+")")
	}

	index := read("cli", "index.md")
	assert.Contains(t, index, "| `FORMBOT_UI_VIEW_IDLE` | `ui.view_idle` |")
	assert.Contains(t, index, "`--output`, `-o`")

	folders := read("cli", "folders.md")
	assert.Contains(t, folders, "# formbot folders\n")
	assert.Contains(t, folders, "## formbot folders create")
	assert.Contains(t, folders, "formbot folders create <name>")
	assert.Contains(t, folders, "Aliases: `rm`")

	serve := read("cli", "serve.md")
	assert.Contains(t, serve, "`--no-browser`")
	assert.Contains(t, serve, "\nformbot serve --no-browser\n")
	assert.NotContains(t, serve, "`--api-url`", "persistent flags live on the index page")

	assert.Contains(t, read("config", "index.md"), "| `api.base_url` | `FORMBOT_API_BASE_URL` |")
}

func TestExampleText(t *testing.T) {
	in := "  # comment\n  formbot serve\n\n  formbot serve --port 3000"
	assert.Equal(t, "# comment\nformbot serve\n\nformbot serve --port 3000", exampleText(in))
}

func TestCodeList(t *testing.T) {
	assert.Equal(t, "`ls`, `rm`", codeList([]string{"ls", "rm"}))
	assert.Empty(t, codeList(nil))
}
