// Package preset provides the commands that manage tag and label presets.
package preset

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/modeldesk/internal/appcontext"
	"github.com/agentstation/modeldesk/internal/cmd/cmdutil"
	"github.com/agentstation/modeldesk/internal/cmd/notify"
	"github.com/agentstation/modeldesk/internal/cmd/table"
	"github.com/agentstation/modeldesk/internal/localstore"
	"github.com/agentstation/modeldesk/pkg/constants"
	"github.com/agentstation/modeldesk/pkg/errors"
	"github.com/agentstation/modeldesk/pkg/presets"
)

// NewCommand creates the presets command with its subcommands.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "presets",
		GroupID: "management",
		Aliases: []string{"preset"},
		Short:   "Manage tag and capability label presets",
		Long: `Presets are the tag names offered when editing records and the display
labels of capability flags. They live in the local store, not in the
workspace, and are kept across imports.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newShowCommand(app))
	cmd.AddCommand(newImportCommand(app))
	cmd.AddCommand(newExportCommand(app))
	cmd.AddCommand(newAddTagCommand(app))
	cmd.AddCommand(newRemoveTagCommand(app))
	cmd.AddCommand(newSetLabelCommand(app))
	cmd.AddCommand(newResetCommand(app))

	return cmd
}

func newShowCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.Presets().Load()
			if err != nil {
				return err
			}
			return cmdutil.Render(cmd, ToTableData(p), p)
		},
	}
}

func newImportCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the presets with a preset document",
		Long: `Import replaces the stored presets with FILE ("-" for standard input). A
malformed document leaves the stored presets unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := cmdutil.ReadInput(cmd, args[0])
			if err != nil {
				return err
			}
			p, err := app.Presets().Import(data)
			if err != nil {
				return err
			}
			return notify.NewFromCommand(cmd).Success(
				fmt.Sprintf("Imported %d tags and %d labels", len(p.Tags), len(p.Labels)))
		},
	}
}

func newExportCommand(app appcontext.Interface) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the presets as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := app.Presets().Export()
			if err != nil {
				return err
			}
			if outFile == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := localstore.WriteFileAtomic(outFile, data, constants.FilePermissions); err != nil {
				return err
			}
			return notify.NewFromCommand(cmd).Success("Exported presets to " + outFile)
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

func newAddTagCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "add-tag NAME...",
		Short:   "Add tag names",
		Example: `  modeldesk presets add-tag translation summarization`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var added []string
			_, err := app.Presets().Update(func(p *presets.Presets) error {
				for _, name := range args {
					if p.AddTag(name) {
						added = append(added, strings.TrimSpace(name))
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			n := notify.NewFromCommand(cmd)
			if len(added) == 0 {
				return n.Warning("No new tags", "every tag was empty or already present")
			}
			return n.Success("Added tags: " + strings.Join(added, ", "))
		},
	}
}

func newRemoveTagCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-tag NAME...",
		Short: "Remove tag names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var missing []string
			_, err := app.Presets().Update(func(p *presets.Presets) error {
				for _, name := range args {
					if !p.RemoveTag(name) {
						missing = append(missing, name)
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			n := notify.NewFromCommand(cmd)
			if len(missing) > 0 {
				if err := n.Warning("Unknown tags: " + strings.Join(missing, ", ")); err != nil {
					return err
				}
			}
			if removed := len(args) - len(missing); removed > 0 {
				return n.Success(fmt.Sprintf("Removed %d tag(s)", removed))
			}
			return nil
		},
	}
}

func newSetLabelCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "set-label FLAG [LABEL]",
		Short: "Set the display label of a capability flag",
		Long: `Set-label changes how a capability flag is shown in listings and exports.
Omit LABEL to drop the override and fall back to the flag name.`,
		Example: `  modeldesk presets set-label code_interpreter "Code Interpreter"
  modeldesk presets set-label vision`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flag := strings.TrimSpace(args[0])
			if flag == "" {
				return errors.NewValidationError("flag", args[0], "must not be empty")
			}
			label := ""
			if len(args) == 2 {
				label = args[1]
			}
			p, err := app.Presets().Update(func(p *presets.Presets) error {
				p.SetLabel(flag, label)
				return nil
			})
			if err != nil {
				return err
			}
			return notify.NewFromCommand(cmd).Success(fmt.Sprintf("%s is shown as %q", flag, p.Label(flag)))
		},
	}
}

func newResetCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the built-in presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.Presets().Reset(); err != nil {
				return err
			}
			return notify.NewFromCommand(cmd).Success("Restored default presets")
		},
	}
}

// ToTableData lists tags and labels as kind/name/value rows.
func ToTableData(p *presets.Presets) table.Data {
	rows := make([][]string, 0, len(p.Tags)+len(p.Labels))
	for _, t := range p.Tags {
		rows = append(rows, []string{"tag", t, ""})
	}
	for _, f := range p.LabelFlags() {
		rows = append(rows, []string{"label", f, p.Labels[f]})
	}
	return table.Data{
		Headers:         []string{"Kind", "Name", "Label"},
		Rows:            rows,
		ColumnAlignment: []table.Align{table.AlignLeft, table.AlignLeft, table.AlignLeft},
	}
}

