package main

import (
	"github.com/spf13/cobra"
	"github.com/witify/go-cart/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive cart shell",
	Long: `Start an interactive shell for working with the cart: adding and
removing items, inspecting the pricing breakdown, and editing metadata.

Type 'help' in the shell for available commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCatalog(); err != nil {
			return err
		}

		r, err := repl.New(&repl.Config{
			Cart:    currentCart,
			Catalog: cat,
		})
		if err != nil {
			return err
		}
		return r.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
