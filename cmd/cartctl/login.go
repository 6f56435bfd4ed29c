package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/witify/go-cart/internal/cart"
	"github.com/witify/go-cart/internal/obs"
)

var loginCmd = &cobra.Command{
	Use:   "login <identity-id>",
	Short: "Attach an identity and reconcile the guest cart",
	Long: `Attach an identity to this session. The guest cart and any durable cart
stored for the identity are reconciled last-write-wins by timestamp: the guest
cart replaces the durable one only when it is strictly newer.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id := strings.TrimSpace(args[0])
		if id == "" {
			return fmt.Errorf("identity id must not be empty")
		}

		pipeline, err := cart.PipelineFromConfig(cfg.Lines)
		if err != nil {
			return err
		}

		// The login event sees a cart with the identity already attached.
		c, err := cart.New(ctx, &cart.Config{
			Session:  sess,
			Durable:  durable,
			Identity: cart.Identity(id),
			Pipeline: pipeline,
		})
		if err != nil {
			return err
		}

		if cfg.UpdateOnLogin {
			if err := c.ReconcileOnLogin(ctx); err != nil {
				return err
			}
			obs.Logger.Debug("reconciled on login", "identity", id, "items", len(c.Items()))
		}

		if err := os.WriteFile(identityFile(), []byte(id+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to record identity: %w", err)
		}

		color.Green("logged in as %s (%d items)", id, len(c.Items()))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Detach the current identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := os.Remove(identityFile())
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to clear identity: %w", err)
		}
		color.Yellow("logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
