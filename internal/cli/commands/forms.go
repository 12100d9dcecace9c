package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/formbot/internal/api"
	"github.com/leapstack-labs/formbot/internal/cli/output"
)

// NewFormsCommand creates the forms command group.
func NewFormsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "forms",
		Aliases: []string{"form"},
		Short:   "Manage forms",
		Long:    `List and delete the forms of the signed-in user.`,
	}

	cmd.AddCommand(newFormsListCommand())
	cmd.AddCommand(newFormsDeleteCommand())
	return cmd
}

func newFormsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List forms",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			forms, err := cc.Client.ListForms(cmd.Context())
			if err != nil {
				return err
			}
			cc.Logger.Debug("listed forms", "count", len(forms))
			return renderForms(cc.Renderer, forms)
		},
	}
}

func renderForms(r *output.Renderer, forms []api.Form) error {
	if r.EffectiveMode() == output.ModeJSON {
		if forms == nil {
			forms = []api.Form{}
		}
		return r.JSON(forms)
	}

	r.Header(1, "Forms")
	rows := make([][]string, 0, len(forms))
	for _, f := range forms {
		rows = append(rows, []string{f.ID, f.Name, f.Type})
	}
	r.Table([]string{"ID", "NAME", "TYPE"}, rows)
	return nil
}

func newFormsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a form",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			if err := cc.Client.DeleteForm(cmd.Context(), args[0]); err != nil {
				return err
			}
			cc.Logger.Info("form deleted", "id", args[0])
			cc.Renderer.Success(fmt.Sprintf("Deleted form %s", args[0]))
			return nil
		},
	}
}
