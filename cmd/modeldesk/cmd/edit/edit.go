// Package edit provides the commands that change workspace records. Every
// command saves the session afterwards so undo works on the next run.
package edit

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/modeldesk"
	"github.com/agentstation/modeldesk/internal/appcontext"
	"github.com/agentstation/modeldesk/pkg/errors"
	"github.com/agentstation/modeldesk/pkg/records"
)

// NewNewCommand creates the new command.
func NewNewCommand(app appcontext.Interface) *cobra.Command {
	var (
		id        string
		name      string
		baseModel string
	)

	cmd := &cobra.Command{
		Use:     "new",
		GroupID: "edit",
		Short:   "Add a new record",
		Long: `New appends a record with default fields. It has no imported counterpart,
so export writes it in full. Without --id a UUID is generated.`,
		Example: `  modeldesk new --id llama3-coder --name "Llama 3 Coder" --base-model llama3:8b`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := records.Defaults()
			r.ID = id
			r.Name = name
			r.IsActive = true
			if baseModel != "" {
				r.BaseModelID = &baseModel
			}
			return apply(cmd, app, func(ws *modeldesk.Workspace) (string, string, error) {
				key, err := ws.Add(r)
				if err != nil {
					return "", "", err
				}
				fmt.Fprintln(cmd.OutOrStdout(), key)
				return key, "Added record " + key, nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Record id (default: generated)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&baseModel, "base-model", "", "Model the record wraps")

	return cmd
}

// NewSetCommand creates the set command.
func NewSetCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "set KEY PATH VALUE",
		GroupID: "edit",
		Short:   "Set one field of a record",
		Long: `Set changes the field at a dotted path. VALUE is parsed as JSON and falls
back to a plain string, so 0.7, true, null and ["a"] keep their types.`,
		Example: `  modeldesk set llama3 name "Llama 3"
  modeldesk set llama3 params.temperature 0.7
  modeldesk set llama3 meta.capabilities.vision true
  modeldesk set llama3 meta.tags '[{"name":"coding"}]'`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, path, value := args[0], args[1], args[2]
			return apply(cmd, app, func(ws *modeldesk.Workspace) (string, string, error) {
				if err := ws.SetField(key, path, records.ParseValue(value)); err != nil {
					return "", "", err
				}
				return key, fmt.Sprintf("Set %s on %s", path, key), nil
			})
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "delete KEY",
		GroupID: "edit",
		Aliases: []string{"rm"},
		Short:   "Delete a record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			return apply(cmd, app, func(ws *modeldesk.Workspace) (string, string, error) {
				if err := ws.Delete(key); err != nil {
					return "", "", err
				}
				return key, "Deleted record " + key, nil
			})
		},
	}
}

// NewDuplicateCommand creates the duplicate command.
func NewDuplicateCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "duplicate KEY",
		GroupID: "edit",
		Aliases: []string{"dup"},
		Short:   "Copy a record",
		Long: `Duplicate inserts a copy of the record after it. The copy gets the id
"<id>-copy" and exports as a new record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			return apply(cmd, app, func(ws *modeldesk.Workspace) (string, string, error) {
				newKey, err := ws.Duplicate(key)
				if err != nil {
					return "", "", err
				}
				fmt.Fprintln(cmd.OutOrStdout(), newKey)
				return newKey, fmt.Sprintf("Duplicated %s as %s", key, newKey), nil
			})
		},
	}
}

// NewMoveCommand creates the move command.
func NewMoveCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "move KEY INDEX",
		GroupID: "edit",
		Aliases: []string{"mv"},
		Short:   "Move a record to another position",
		Example: `  modeldesk move llama3 0     # Make llama3 the first record`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.NewValidationError("index", args[1], "must be an integer")
			}
			return apply(cmd, app, func(ws *modeldesk.Workspace) (string, string, error) {
				if err := ws.Move(key, index); err != nil {
					return "", "", err
				}
				return key, fmt.Sprintf("Moved %s to position %d", key, index), nil
			})
		},
	}
}
