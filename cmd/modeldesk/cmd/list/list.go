// Package list provides the commands that display workspace records.
package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/modeldesk"
	"github.com/agentstation/modeldesk/internal/appcontext"
	"github.com/agentstation/modeldesk/internal/cmd/cmdutil"
	"github.com/agentstation/modeldesk/internal/cmd/notify"
	"github.com/agentstation/modeldesk/internal/cmd/output"
	"github.com/agentstation/modeldesk/internal/cmd/table"
)

// NewCommand creates the list command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *cmdutil.ResourceFlags

	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Aliases: []string{"ls"},
		Short:   "List records in the workspace",
		Example: `  modeldesk list                     # All records in order
  modeldesk list --search llama      # Match id, name, description or tags
  modeldesk list --tag coding        # Records tagged "coding"
  modeldesk list --format wide       # Include capabilities and params`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags)
		},
	}
	flags = cmdutil.AddResourceFlags(cmd)

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, flags *cmdutil.ResourceFlags) error {
	ws, err := app.Workspace()
	if err != nil {
		return err
	}

	entries := Filter(ws, flags)

	format, err := cmdutil.OutputFormat(cmd)
	if err != nil {
		return err
	}

	rows := make([]table.Row, len(entries))
	docs := make([]map[string]any, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{Key: e.Key, Record: e.Record}
		docs[i] = map[string]any{"key": e.Key, "record": e.Record.ToMap()}
	}

	if format.IsTable() {
		_ = notify.NewFromCommand(cmd).Info(fmt.Sprintf("Found %d of %d records", len(entries), ws.Len()))
	}

	data := table.RecordsToTableData(rows, format == output.FormatWide, cmdutil.Labeler(app.Presets()))
	return cmdutil.Render(cmd, data, docs)
}

// Filter applies the search, tag and limit flags to the workspace records.
func Filter(ws *modeldesk.Workspace, flags *cmdutil.ResourceFlags) []modeldesk.Entry {
	var entries []modeldesk.Entry
	switch {
	case flags.Search == "" && flags.Tag != "":
		entries = ws.FilterByTag(flags.Tag)
	case flags.Tag != "":
		for _, e := range ws.Search(flags.Search) {
			if e.Record.HasTag(flags.Tag) {
				entries = append(entries, e)
			}
		}
	default:
		entries = ws.Search(flags.Search)
	}
	if flags.Limit > 0 && len(entries) > flags.Limit {
		entries = entries[:flags.Limit]
	}
	return entries
}
