// Package listflags holds flags shared by list commands.
package listflags

import "github.com/spf13/cobra"

// AddOpenFlag adds a shared --open flag that hides completed items.
func AddOpenFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().Bool("open", false, "Only list items that are not completed")
		return
	}

	cmd.Flags().BoolVar(target, "open", false, "Only list items that are not completed")
}
