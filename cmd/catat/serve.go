package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/catatuang/catatuang/internal/auth"
	"github.com/catatuang/catatuang/internal/bot"
	"github.com/catatuang/catatuang/internal/config"
	"github.com/catatuang/catatuang/internal/identity"
	"github.com/catatuang/catatuang/internal/router"
	"github.com/catatuang/catatuang/internal/storage"
)

func serveCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bot against a console transport",
		Long: `Run the full message pipeline, reading one message per line from
stdin and printing replies to stdout. Useful for local testing and as the
wiring template for a real chat transport.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			dbPath, err := config.DatabasePath(viper.GetString("database.path"))
			if err != nil {
				return fmt.Errorf("failed to resolve database path: %w", err)
			}

			store, err := storage.NewSQLiteStorage(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			resolver := identity.NewResolver(store, nil,
				identity.WithCountryCode(viper.GetString("identity.country_code")),
				identity.WithLookupTimeout(lookupTimeout()),
			)
			r := router.New(store, store, auth.NewGenerator(0), viper.GetString("dashboard.url"))
			handler := bot.NewHandler(resolver, r, store, store, store)

			transport := bot.NewConsoleTransport(os.Stdin, os.Stdout, address)
			return handler.Run(ctx, transport)
		},
	}

	cmd.Flags().StringVar(&address, "address", "628123456789@s.whatsapp.net", "sender address for console messages")

	return cmd
}

func lookupTimeout() time.Duration {
	d := viper.GetDuration("identity.lookup_timeout")
	if d <= 0 {
		return identity.DefaultLookupTimeout
	}
	return d
}
