package cmdutil

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/modeldesk/internal/cmd/globals"
	"github.com/agentstation/modeldesk/internal/cmd/output"
	"github.com/agentstation/modeldesk/internal/cmd/table"
	"github.com/agentstation/modeldesk/pkg/convert"
	"github.com/agentstation/modeldesk/pkg/errors"
	"github.com/agentstation/modeldesk/pkg/presets"
)

// StdinPath is the file argument that reads from standard input.
const StdinPath = "-"

// ReadInput reads the file at path, or the command's input when path is "-".
func ReadInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == StdinPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errors.WrapIO("read", "stdin", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // reading user-named files is the point
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return data, nil
}

// OutputFormat returns the format selected by the global --format flag.
func OutputFormat(cmd *cobra.Command) (output.Format, error) {
	return output.ParseFormat(globals.Parse(cmd).Format)
}

// Render writes to the command's output. Table formats print tableData and
// the other formats encode structured.
func Render(cmd *cobra.Command, tableData table.Data, structured any) error {
	format, err := OutputFormat(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if format.IsTable() {
		return output.NewFormatter(output.FormatTable).Format(out, tableData)
	}
	return output.NewFormatter(format).Format(out, convert.PlainValue(structured))
}

// Labeler returns the capability labeler of the stored presets. Defaults
// are used when the presets cannot be loaded.
func Labeler(m *presets.Manager) func(string) string {
	p := presets.Defaults()
	if m != nil {
		if loaded, err := m.Load(); err == nil {
			p = loaded
		}
	}
	return p.Label
}
