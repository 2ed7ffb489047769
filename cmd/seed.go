package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nutrishop/shop-manager/config"
	"github.com/nutrishop/shop-manager/internal/dependency"
	"github.com/nutrishop/shop-manager/internal/fixture"
	"github.com/nutrishop/shop-manager/internal/store"
	"github.com/nutrishop/shop-manager/log"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	var (
		seed      int64
		customers int
		orders    int
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a generated demo dataset into the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("cannot load a config %v", err.Error())
			}
			slog.SetDefault(log.New(cfg.Logger))
			ctx := context.Background()

			db, err := store.New(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			ds := fixture.Generate(time.Now(), seed, customers, orders)
			err = db.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
				return fixture.Load(ctx, rep.Seed(), ds)
			})
			if err != nil {
				return fmt.Errorf("cannot seed database: %w", err)
			}
			slog.Default().InfoContext(ctx, "database seeded",
				slog.Int("customers", customers),
				slog.Int("orders", len(ds.Orders)),
				slog.Int("products", len(ds.Products)),
			)
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&customers, "customers", 200, "number of customers")
	cmd.Flags().IntVar(&orders, "orders", 1500, "number of orders")
	return cmd
}
