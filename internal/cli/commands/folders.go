package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/formbot/internal/api"
	"github.com/leapstack-labs/formbot/internal/cli/output"
)

// NewFoldersCommand creates the folders command group.
func NewFoldersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "folders",
		Aliases: []string{"folder"},
		Short:   "Manage folders",
		Long:    `List, create, and delete the folders of the signed-in user.`,
	}

	cmd.AddCommand(newFoldersListCommand())
	cmd.AddCommand(newFoldersCreateCommand())
	cmd.AddCommand(newFoldersDeleteCommand())
	return cmd
}

func newFoldersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List folders",
		Example: `  formbot folders list
  formbot folders list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			folders, err := cc.Client.ListFolders(cmd.Context())
			if err != nil {
				return err
			}
			cc.Logger.Debug("listed folders", "count", len(folders))
			return renderFolders(cc.Renderer, folders)
		},
	}
}

func renderFolders(r *output.Renderer, folders []api.Folder) error {
	if r.EffectiveMode() == output.ModeJSON {
		if folders == nil {
			folders = []api.Folder{}
		}
		return r.JSON(folders)
	}

	r.Header(1, "Folders")
	rows := make([][]string, 0, len(folders))
	for _, f := range folders {
		rows = append(rows, []string{f.ID, f.Name})
	}
	r.Table([]string{"ID", "NAME"}, rows)
	return nil
}

func newFoldersCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "create <name>",
		Short:   "Create a folder",
		Example: `  formbot folders create "Customer surveys"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("folder name must not be empty")
			}

			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			folder, err := cc.Client.CreateFolder(cmd.Context(), name)
			if err != nil {
				return err
			}
			cc.Logger.Info("folder created", "id", folder.ID)

			if cc.Renderer.EffectiveMode() == output.ModeJSON {
				return cc.Renderer.JSON(folder)
			}
			cc.Renderer.Success(fmt.Sprintf("Created folder %q (%s)", folder.Name, folder.ID))
			return nil
		},
	}
}

func newFoldersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a folder",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			if err := cc.Client.DeleteFolder(cmd.Context(), args[0]); err != nil {
				return err
			}
			cc.Logger.Info("folder deleted", "id", args[0])
			cc.Renderer.Success(fmt.Sprintf("Deleted folder %s", args[0]))
			return nil
		},
	}
}
