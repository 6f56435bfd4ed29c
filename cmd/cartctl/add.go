package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/witify/go-cart/internal/types"
)

var addCmd = &cobra.Command{
	Use:   "add <product-id> [qty] [key=value ...]",
	Short: "Add a catalog product to the cart",
	Long: `Add a product from the catalog. Adding the same product with the same
options again merges into the existing row instead of creating a duplicate.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCatalog(); err != nil {
			return err
		}

		product, ok := cat.Get(args[0])
		if !ok {
			return fmt.Errorf("no product %q in catalog", args[0])
		}

		quantity := 1.0
		rest := args[1:]
		if len(rest) > 0 && !strings.Contains(rest[0], "=") {
			q, err := strconv.ParseFloat(rest[0], 64)
			if err != nil {
				return fmt.Errorf("invalid quantity %q", rest[0])
			}
			quantity = q
			rest = rest[1:]
		}

		options := types.Options{}
		for _, kv := range rest {
			k, v, found := strings.Cut(kv, "=")
			if !found {
				return fmt.Errorf("invalid option %q (want key=value)", kv)
			}
			options[k] = v
		}

		item, err := currentCart.Add(cmd.Context(), product, quantity, options)
		if err != nil {
			return err
		}

		color.Green("added %s x%v @ %.2f", item.Name, item.Quantity, item.Price)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
