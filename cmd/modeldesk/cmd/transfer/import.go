// Package transfer provides the import and export commands.
package transfer

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/modeldesk/internal/appcontext"
	"github.com/agentstation/modeldesk/internal/cmd/cmdutil"
	"github.com/agentstation/modeldesk/internal/cmd/notify"
)

// NewImportCommand creates the import command.
func NewImportCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "import FILE",
		GroupID: "core",
		Short:   "Load model definitions into the workspace",
		Long: `Import replaces the workspace with the records in FILE, a JSON object or an
array of objects as exported by the gateway. Use "-" to read standard input.

Import clears the undo history. When FILE is not valid JSON the workspace is
left as it was.`,
		Example: `  modeldesk import models.json
  curl -s $GATEWAY/api/v1/models/export | modeldesk import -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := cmdutil.ReadInput(cmd, args[0])
			if err != nil {
				return err
			}
			ws, err := app.Workspace()
			if err != nil {
				return err
			}
			n, err := ws.Import(data)
			if err != nil {
				return err
			}
			if err := app.SaveWorkspace(); err != nil {
				return err
			}
			return notify.NewFromCommand(cmd).Success(fmt.Sprintf("Imported %d records", n))
		},
	}
}
