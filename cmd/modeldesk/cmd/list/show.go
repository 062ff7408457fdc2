package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/modeldesk/internal/appcontext"
	"github.com/agentstation/modeldesk/internal/cmd/cmdutil"
	"github.com/agentstation/modeldesk/internal/cmd/table"
	"github.com/agentstation/modeldesk/pkg/errors"
	"github.com/agentstation/modeldesk/pkg/reconcile"
)

// NewShowCommand creates the show command.
func NewShowCommand(app appcontext.Interface) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:     "show KEY",
		GroupID: "core",
		Short:   "Show one record",
		Long: `Show prints the fields of one record. With --format json or yaml it prints
the document export would write for it, unknown fields included. --raw prints
the record exactly as it was imported.`,
		Example: `  modeldesk show llama3
  modeldesk show llama3 --format json
  modeldesk show llama3 --raw`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := app.Workspace()
			if err != nil {
				return err
			}
			key := args[0]
			r, err := ws.Get(key)
			if err != nil {
				return err
			}

			imported, found := ws.Raw(key)
			if raw {
				if !found {
					return errors.NewNotFoundError("imported record", key)
				}
				return cmdutil.Render(cmd, table.DocumentToTableData(imported), imported)
			}

			merged := reconcile.MergeToRaw(imported, r)
			return cmdutil.Render(cmd, table.RecordDetails(key, r, cmdutil.Labeler(app.Presets())), merged)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Show the record as it was imported")

	return cmd
}
