// Package cmdutil provides shared flags and helpers for modeldesk commands.
package cmdutil

import (
	"github.com/spf13/cobra"
)

// ResourceFlags holds flags for filtering record listings.
type ResourceFlags struct {
	Search string
	Tag    string
	Limit  int
}

// AddResourceFlags adds listing filter flags to a command.
func AddResourceFlags(cmd *cobra.Command) *ResourceFlags {
	flags := &ResourceFlags{}

	cmd.Flags().StringVarP(&flags.Search, "search", "s", "",
		"Search id, name, description and tags")
	cmd.Flags().StringVarP(&flags.Tag, "tag", "t", "",
		"Only records carrying this tag")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit number of results")

	return flags
}
