// Package undo provides the undo and history commands.
package undo

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/agentstation/modeldesk/internal/appcontext"
	"github.com/agentstation/modeldesk/internal/cmd/cmdutil"
	"github.com/agentstation/modeldesk/internal/cmd/notify"
	"github.com/agentstation/modeldesk/internal/cmd/table"
	"github.com/agentstation/modeldesk/pkg/errors"
)

// NewCommand creates the undo command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:     "undo",
		GroupID: "edit",
		Short:   "Revert the most recent change",
		Long: `Undo restores the records as they were before the last change. The history
keeps the most recent 50 changes and is cleared by import.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := app.Workspace()
			if err != nil {
				return err
			}
			n := notify.NewFromCommand(cmd)

			undone := 0
			for ; undone < steps; undone++ {
				if err := ws.Undo(); err != nil {
					if !errors.IsNothingToUndo(err) {
						return err
					}
					break
				}
			}
			if undone == 0 {
				return n.Warning("Nothing to undo")
			}
			if err := app.SaveWorkspace(); err != nil {
				return err
			}
			return n.Success(fmt.Sprintf("Undid %d change(s)", undone),
				fmt.Sprintf("%d more available", ws.HistoryLen()))
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of changes to revert")

	return cmd
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "history",
		GroupID: "edit",
		Short:   "List the undo snapshots",
		Long: `History lists the saved snapshots, most recent first. Step 1 is the state
undo would restore.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := app.Workspace()
			if err != nil {
				return err
			}

			snaps := ws.History()
			rows := make([][]table.Row, len(snaps))
			structured := make([]map[string]any, 0, len(snaps))
			for i, snap := range snaps {
				keys := make([]string, len(snap))
				rows[i] = make([]table.Row, len(snap))
				for j, e := range snap {
					rows[i][j] = table.Row{Key: e.Key, Record: e.Record}
					keys[j] = e.Key
				}
				structured = append(structured, map[string]any{
					"step":    len(snaps) - i,
					"records": len(snap),
					"keys":    keys,
				})
			}
			slices.Reverse(structured)

			if len(snaps) == 0 {
				if err := notify.NewFromCommand(cmd).Info("No changes to undo"); err != nil {
					return err
				}
			}
			return cmdutil.Render(cmd, table.HistoryToTableData(rows), structured)
		},
	}
}
