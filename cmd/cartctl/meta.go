package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var metaCmd = &cobra.Command{
	Use:   "meta <key> [value]",
	Short: "Get or set cart metadata",
	Long:  `Read or write a free-form metadata value (shipping carrier, promo code, ...) persisted with the cart.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			v, ok := currentCart.GetMetaData(args[0])
			if !ok {
				return fmt.Errorf("metadata key %q is unset", args[0])
			}
			fmt.Println(v)
			return nil
		}
		return currentCart.SetMetaData(cmd.Context(), args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(metaCmd)
}
