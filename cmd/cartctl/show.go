package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart contents and pricing breakdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		if id, attached := currentIdentity().CurrentIdentityID(); attached {
			fmt.Printf("%s (identity: %s)\n", cyan("Cart"), id)
		} else {
			fmt.Printf("%s (guest)\n", cyan("Cart"))
		}

		items := currentCart.Items()
		if len(items) == 0 {
			fmt.Printf("  %s\n", gray("empty"))
			return nil
		}

		for _, item := range items {
			opts := ""
			if len(item.Options) > 0 {
				keys := make([]string, 0, len(item.Options))
				for k := range item.Options {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				parts := make([]string, len(keys))
				for i, k := range keys {
					parts[i] = k + "=" + item.Options[k]
				}
				opts = " [" + strings.Join(parts, " ") + "]"
			}
			fmt.Printf("  %s  %-20s x%-5v @ %8.2f = %8.2f%s\n",
				gray(item.RowID[:8]), item.Name, item.Quantity, item.Price, item.Total(), opts)
		}

		breakdown := currentCart.Lines()
		fmt.Println()
		fmt.Printf("  %-12s %10.2f\n", "subtotal", breakdown.Subtotal)

		for _, name := range currentCart.LineNames() {
			fmt.Printf("  %-12s %10.2f\n", name, breakdown.Lines[name])
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("  %s %10.2f\n", bold(fmt.Sprintf("%-12s", "total")), currentCart.Total())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
