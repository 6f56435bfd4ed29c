package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var emptyCmd = &cobra.Command{
	Use:   "empty",
	Short: "Remove every item from the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := currentCart.Empty(cmd.Context()); err != nil {
			return err
		}
		color.Yellow("cart emptied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(emptyCmd)
}
