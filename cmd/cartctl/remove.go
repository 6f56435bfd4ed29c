package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <row-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a row from the cart",
	Long:    `Remove a cart row by its id or a unique prefix. Removing a row that does not exist is not an error.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rowID := args[0]
		if !currentCart.Has(rowID) {
			for _, item := range currentCart.Items() {
				if strings.HasPrefix(item.RowID, rowID) {
					rowID = item.RowID
					break
				}
			}
		}
		return currentCart.Remove(cmd.Context(), rowID)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
