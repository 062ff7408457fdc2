package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/modeldesk/cmd/modeldesk/cmd/diff"
	"github.com/agentstation/modeldesk/cmd/modeldesk/cmd/edit"
	"github.com/agentstation/modeldesk/cmd/modeldesk/cmd/list"
	"github.com/agentstation/modeldesk/cmd/modeldesk/cmd/preset"
	"github.com/agentstation/modeldesk/cmd/modeldesk/cmd/transfer"
	"github.com/agentstation/modeldesk/cmd/modeldesk/cmd/undo"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(transfer.NewImportCommand(a))
	rootCmd.AddCommand(transfer.NewExportCommand(a))
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(list.NewShowCommand(a))
	rootCmd.AddCommand(diff.NewCommand(a))

	// Editing commands
	rootCmd.AddCommand(edit.NewNewCommand(a))
	rootCmd.AddCommand(edit.NewSetCommand(a))
	rootCmd.AddCommand(edit.NewDeleteCommand(a))
	rootCmd.AddCommand(edit.NewDuplicateCommand(a))
	rootCmd.AddCommand(edit.NewMoveCommand(a))
	rootCmd.AddCommand(undo.NewCommand(a))
	rootCmd.AddCommand(undo.NewHistoryCommand(a))

	// Management commands
	rootCmd.AddCommand(preset.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("modeldesk %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
