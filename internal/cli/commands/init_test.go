package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/formbot/internal/cli/config"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name     string
		setupDir func(t *testing.T, dir string) // setup before running
		args     []string
		wantErr  bool
	}{
		{
			name:    "init empty directory",
			args:    []string{},
			wantErr: false,
		},
		{
			name: "init existing config without force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "formbot.yaml"), []byte("existing"), 0600)
			},
			args:    []string{},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "formbot.yaml"), []byte("existing"), 0600)
			},
			args:    []string{"--force"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.ResetConfig()
			tmpDir := t.TempDir()
			t.Chdir(tmpDir)

			if tt.setupDir != nil {
				tt.setupDir(t, tmpDir)
			}

			cmd := NewInitCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			_, err = os.Stat(filepath.Join(tmpDir, "formbot.yaml"))
			assert.NoError(t, err, "expected formbot.yaml to exist")
		})
	}
}

func TestInitCommandMetadata(t *testing.T) {
	cmd := NewInitCommand()

	assert.Equal(t, "init [directory]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("force"), "--force flag should exist")
}

func TestInitCreatesValidConfig(t *testing.T) {
	config.ResetConfig()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"nested/dir"})
	require.NoError(t, cmd.Execute())

	content, err := os.ReadFile(filepath.Join("nested", "dir", "formbot.yaml"))
	require.NoError(t, err, "failed to read formbot.yaml")

	expectedContents := []string{
		"# formbot configuration.",
		"base_url: " + config.DefaultBaseURL,
		"timeout: 10s",
		"port: 8765",
		"default_theme: dark",
		"view_idle: 2m0s",
		"output: auto",
	}
	for _, expected := range expectedContents {
		assert.Contains(t, string(content), expected, "config should contain %q", expected)
	}
	assert.NotContains(t, string(content), "token:")
	assert.NotContains(t, string(content), "verbose")
}

func TestRenderConfigFile_FreshSecretEachTime(t *testing.T) {
	a, err := renderConfigFile(config.Default())
	require.NoError(t, err)
	b, err := renderConfigFile(config.Default())
	require.NoError(t, err)

	assert.NotEqual(t, string(a), string(b))
	assert.NotContains(t, string(a), config.DefaultSessionSecret)
}
