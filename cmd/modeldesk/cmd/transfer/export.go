package transfer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/agentstation/modeldesk/internal/appcontext"
	"github.com/agentstation/modeldesk/internal/cmd/cmdutil"
	"github.com/agentstation/modeldesk/internal/cmd/notify"
	"github.com/agentstation/modeldesk/internal/localstore"
	"github.com/agentstation/modeldesk/pkg/constants"
	"github.com/agentstation/modeldesk/pkg/convert"
	"github.com/agentstation/modeldesk/pkg/errors"
)

// NewExportCommand creates the export command.
func NewExportCommand(app appcontext.Interface) *cobra.Command {
	var (
		outFile     string
		as          string
		toClipboard bool
	)

	cmd := &cobra.Command{
		Use:     "export",
		GroupID: "core",
		Short:   "Write the edited records",
		Long: `Export merges every edited record onto the document it was imported from
and writes the result. Fields the editor does not know about are kept as they
were, so the JSON output can be imported back into the gateway.

Formats:
  json      - gateway import format (default)
  yaml      - the same documents as YAML, for review
  markdown  - a summary table
  openai    - an OpenAI /v1/models list`,
		Example: `  modeldesk export > models.json
  modeldesk export -o models.json
  modeldesk export --as markdown -o MODELS.md
  modeldesk export --clipboard`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := convert.ParseFormat(as)
			if err != nil {
				return err
			}
			ws, err := app.Workspace()
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := ws.WriteExport(&buf, format, cmdutil.Labeler(app.Presets())); err != nil {
				return err
			}

			n := notify.NewFromCommand(cmd)
			switch {
			case toClipboard:
				if err := clipboard.WriteAll(buf.String()); err != nil {
					return errors.WrapIO("write", "clipboard", err)
				}
				return n.Success(fmt.Sprintf("Copied %d records to the clipboard", ws.Len()))
			case outFile != "":
				if err := localstore.WriteFileAtomic(outFile, buf.Bytes(), constants.FilePermissions); err != nil {
					return err
				}
				return n.Success(fmt.Sprintf("Exported %d records to %s", ws.Len(), outFile), ws.Result().Summary())
			default:
				_, err := io.Copy(cmd.OutOrStdout(), &buf)
				return err
			}
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVar(&as, "as", string(convert.FormatJSON), "Export format: json, yaml, markdown, openai")
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "Copy to the system clipboard")
	cmd.MarkFlagsMutuallyExclusive("output", "clipboard")

	return cmd
}
