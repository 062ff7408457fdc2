package edit

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/modeldesk"
	"github.com/agentstation/modeldesk/internal/appcontext"
	"github.com/agentstation/modeldesk/internal/cmd/notify"
	"github.com/agentstation/modeldesk/pkg/logging"
)

// apply runs fn against the workspace, saves the session and reports the
// message fn returns along with the key of the record it touched. Nothing is
// saved when fn fails.
func apply(cmd *cobra.Command, app appcontext.Interface, fn func(*modeldesk.Workspace) (key, msg string, err error)) error {
	ws, err := app.Workspace()
	if err != nil {
		return err
	}
	key, msg, err := fn(ws)
	if err != nil {
		return err
	}
	if err := app.SaveWorkspace(); err != nil {
		return err
	}
	ctx := logging.WithRecord(logging.WithOperation(cmd.Context(), cmd.Name()), key)
	logger := logging.FromContext(ctx)
	logger.Debug().Int("history", ws.HistoryLen()).Msg(msg)
	return notify.NewFromCommand(cmd).Success(msg)
}
