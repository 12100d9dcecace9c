package commands

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/formbot/internal/api"
	"github.com/leapstack-labs/formbot/internal/cli/config"
	"github.com/leapstack-labs/formbot/internal/cli/testutil"
)

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"port", "no-browser", "watch", "theme"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewFoldersCommand(t *testing.T) {
	cmd := NewFoldersCommand()

	assert.Equal(t, "folders", cmd.Use)
	assert.Contains(t, cmd.Aliases, "folder")

	for _, name := range []string{"list", "create", "delete"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestNewFormsCommand(t *testing.T) {
	cmd := NewFormsCommand()

	assert.Equal(t, "forms", cmd.Use)
	for _, name := range []string{"list", "delete"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	_, _, err := cmd.Find([]string{"create"})
	assert.Error(t, err, "forms are created in the builder, not the CLI")
}

func TestNewCommandContext_RequiresToken(t *testing.T) {
	config.ResetConfig()
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	_, err := NewCommandContext(cmd)
	assert.ErrorIs(t, err, ErrNoToken)

	cc := NewCommandContextWithoutClient(cmd)
	assert.Nil(t, cc.Client)
	assert.Equal(t, config.DefaultBaseURL, cc.Cfg.API.BaseURL)
}

// =============================================================================
// Rendering
// =============================================================================

func TestRenderFolders(t *testing.T) {
	folders := []api.Folder{{ID: "F1", Name: "Drafts"}, {ID: "F2", Name: "Live"}}

	t.Run("text", func(t *testing.T) {
		tr := testutil.NewTestRendererText()
		require.NoError(t, renderFolders(tr.Renderer, folders))
		assert.Contains(t, tr.Output(), "Folders")
		assert.Contains(t, tr.Output(), "Drafts")
		assert.Contains(t, tr.Output(), "│")
	})

	t.Run("markdown", func(t *testing.T) {
		tr := testutil.NewTestRendererMarkdown()
		require.NoError(t, renderFolders(tr.Renderer, folders))
		testutil.AssertNoANSI(t, tr.Output())
		testutil.AssertValidMarkdown(t, tr.Output())
		assert.Contains(t, tr.Output(), "| F2 | Live |")
	})

	t.Run("json", func(t *testing.T) {
		tr := testutil.NewTestRendererJSON()
		require.NoError(t, renderFolders(tr.Renderer, folders))
		assert.JSONEq(t, `[{"id":"F1","name":"Drafts"},{"id":"F2","name":"Live"}]`, tr.Output())
	})
}

func TestRenderForms(t *testing.T) {
	forms := []api.Form{{ID: "T1", Name: "Signup", Type: "classic"}}

	tr := testutil.NewTestRendererMarkdown()
	require.NoError(t, renderForms(tr.Renderer, forms))
	assert.Contains(t, tr.Output(), "| ID | NAME | TYPE |")
	assert.Contains(t, tr.Output(), "| T1 | Signup | classic |")

	tr = testutil.NewTestRendererJSON()
	require.NoError(t, renderForms(tr.Renderer, nil))
	assert.JSONEq(t, `[]`, tr.Output())
}

func TestRenderForms_EmptyText(t *testing.T) {
	tr := testutil.NewTestRenderer("text", false)
	require.NoError(t, renderForms(tr.Renderer, nil))
	assert.Contains(t, tr.Output(), "(0 rows)")
	assert.Empty(t, tr.ErrorOutput())
	testutil.AssertNoANSI(t, tr.Output())
}
