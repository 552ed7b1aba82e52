package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/greenbasket/grocer-cli/internal/inventory"
)

var (
	invSeedFile  string
	invStaleDays int
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Manage the product inventory database",
}

var inventoryInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or migrate the inventory schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate inventory")
		}
		zap.L().Info("inventory schema ready")
		return nil
	},
}

var inventoryLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load products from a YAML seed file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		seed := invSeedFile
		if seed == "" {
			seed = cfg.Data.SeedFile
		}
		if seed == "" {
			return eris.New("inventory: provide --seed or set data.seed_file")
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate inventory")
		}

		n, err := inventory.LoadSeed(ctx, st, seed)
		if err != nil {
			return err
		}
		zap.L().Info("seed loaded", zap.String("file", seed), zap.Int("products", n))
		return nil
	},
}

var inventorySyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the inventory from store catalog feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("sync"); err != nil {
			return err
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate inventory")
		}

		syncer := inventory.NewSyncer(st, cfg.Sync)
		n, err := syncer.Sync(ctx, cfg.Sync.Feeds)
		if err != nil {
			return err
		}

		if invStaleDays > 0 {
			cutoff := time.Now().UTC().AddDate(0, 0, -invStaleDays)
			removed, err := st.DeleteStale(ctx, cutoff)
			if err != nil {
				return eris.Wrap(err, "delete stale products")
			}
			zap.L().Info("stale products removed", zap.Int("removed", removed))
		}

		zap.L().Info("sync complete", zap.Int("products", n))
		return nil
	},
}

var inventoryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show product counts per store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		counts, err := st.CountByStore(ctx)
		if err != nil {
			return eris.Wrap(err, "count products")
		}

		ids := make([]string, 0, len(counts))
		for id := range counts {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		total := 0
		for _, id := range ids {
			fmt.Printf("%-20s %d\n", id, counts[id])
			total += counts[id]
		}
		fmt.Printf("%-20s %d\n", "total", total)
		return nil
	},
}

func openStore(ctx context.Context) (inventory.Store, error) {
	if err := cfg.Validate("store"); err != nil {
		return nil, err
	}
	return inventory.Open(ctx, cfg.Store)
}

func init() {
	inventoryLoadCmd.Flags().StringVar(&invSeedFile, "seed", "", "YAML seed file (default from config)")
	inventorySyncCmd.Flags().IntVar(&invStaleDays, "prune-days", 0, "after sync, delete products not updated in this many days")

	inventoryCmd.AddCommand(inventoryInitCmd, inventoryLoadCmd, inventorySyncCmd, inventoryStatusCmd)
	rootCmd.AddCommand(inventoryCmd)
}
