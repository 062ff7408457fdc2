// Package diff provides the diff command.
package diff

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/modeldesk/internal/appcontext"
	"github.com/agentstation/modeldesk/internal/cmd/cmdutil"
	"github.com/agentstation/modeldesk/internal/cmd/notify"
	"github.com/agentstation/modeldesk/internal/cmd/output"
	"github.com/agentstation/modeldesk/pkg/differ"
)

// NewCommand creates the diff command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "diff [KEY...]",
		GroupID: "core",
		Short:   "Show what export would change",
		Long: `Diff compares each imported record with the document export would write for
it. Records created in the workspace show as added and deleted ones as
removed. Pass keys to limit the comparison.`,
		Example: `  modeldesk diff
  modeldesk diff llama3 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := app.Workspace()
			if err != nil {
				return err
			}
			format, err := cmdutil.OutputFormat(cmd)
			if err != nil {
				return err
			}

			cs := ws.Diff(args...)
			if format.IsTable() {
				if cs.IsEmpty() {
					return notify.NewFromCommand(cmd).Info("No changes")
				}
				cs.Print(cmd.OutOrStdout())
				return nil
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), view(cs))
		},
	}
}

type changesetView struct {
	Summary differ.ChangesetSummary `json:"summary" yaml:"summary"`
	Added   []string                `json:"added" yaml:"added"`
	Updated []differ.DocumentUpdate `json:"updated" yaml:"updated"`
	Removed []string                `json:"removed" yaml:"removed"`
}

func view(cs *differ.Changeset) changesetView {
	v := changesetView{
		Summary: cs.Summary,
		Added:   keys(cs.Added),
		Updated: cs.Updated,
		Removed: keys(cs.Removed),
	}
	if v.Updated == nil {
		v.Updated = []differ.DocumentUpdate{}
	}
	return v
}

func keys(docs []differ.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Key
	}
	return out
}
