package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/witify/go-cart/internal/cart"
	"github.com/witify/go-cart/internal/catalog"
	"github.com/witify/go-cart/internal/config"
	"github.com/witify/go-cart/internal/obs"
	"github.com/witify/go-cart/internal/session"
	"github.com/witify/go-cart/internal/storage"
	"github.com/witify/go-cart/internal/storage/postgres"
	"github.com/witify/go-cart/internal/storage/sqlite"
)

var (
	configPath  string
	catalogPath string
	identityArg string
	verbose     bool

	cfg         *config.Config
	sess        *session.FileStore
	durable     storage.DurableStore
	cat         *catalog.Catalog
	currentCart *cart.Cart
)

var rootCmd = &cobra.Command{
	Use:   "cartctl",
	Short: "Shopping cart state tool",
	Long: `cartctl drives a two-tier shopping cart: a file-backed session cart
for guests, and an identity-keyed durable store (sqlite or postgres) once a
shopper logs in. Login reconciles the two tiers last-write-wins by timestamp.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if durable != nil {
			return durable.Close()
		}
		return nil
	},
}

func setup(ctx context.Context) error {
	obs.Init(verbose)

	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	sess, err = session.NewFile(cfg.Session.Dir)
	if err != nil {
		return err
	}

	durable, err = openDurable(ctx)
	if err != nil {
		return err
	}

	if catalogPath != "" {
		cat, err = catalog.Load(catalogPath)
		if err != nil {
			return err
		}
	}

	pipeline, err := cart.PipelineFromConfig(cfg.Lines)
	if err != nil {
		return err
	}

	currentCart, err = cart.New(ctx, &cart.Config{
		Session:  sess,
		Durable:  durable,
		Identity: currentIdentity(),
		Pipeline: pipeline,
	})
	if err != nil {
		return err
	}

	obs.Logger.Debug("cart loaded",
		"items", len(currentCart.Items()),
		"driver", cfg.Storage.Driver,
		"session", sess.ID())
	return nil
}

func openDurable(ctx context.Context) (storage.DurableStore, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		return sqlite.New(cfg.Storage.Path)
	case "postgres":
		return postgres.New(ctx, cfg.Storage.DSN)
	case "memory":
		return storage.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// identityFile persists the logged-in identity between invocations, standing
// in for the auth subsystem a web application would provide.
func identityFile() string {
	return filepath.Join(cfg.Session.Dir, "identity")
}

func currentIdentity() cart.IdentityContext {
	if identityArg != "" {
		return cart.Identity(identityArg)
	}
	data, err := os.ReadFile(identityFile())
	if err != nil {
		return cart.Anonymous()
	}
	id := strings.TrimSpace(string(data))
	if id == "" {
		return cart.Anonymous()
	}
	return cart.Identity(id)
}

func requireCatalog() error {
	if cat == nil {
		return fmt.Errorf("no catalog loaded; pass --catalog <file>")
	}
	return nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "cartctl.yaml", "config file")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "product catalog file")
	rootCmd.PersistentFlags().StringVar(&identityArg, "identity", "", "act as this identity (overrides login state)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
