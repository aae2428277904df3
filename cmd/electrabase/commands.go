package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/electrabase/internal/inventory"
	"github.com/dshills/electrabase/internal/mcp"
	"github.com/dshills/electrabase/pkg/types"
)

// open opens the configured inventory. sample forces sample seeding on.
func (a *app) open(ctx context.Context, sample bool) (*inventory.Inventory, error) {
	return inventory.Open(ctx, inventory.Options{
		DBPath:           a.cfg.Database.Path,
		EnableSampleData: sample || a.cfg.Features.EnableSampleData,
	})
}

// withInventory runs fn against an open inventory and closes it afterwards
func (a *app) withInventory(cmd *cobra.Command, fn func(ctx context.Context, inv *inventory.Inventory) error) error {
	ctx := cmd.Context()
	inv, err := a.open(ctx, false)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := inv.Close(); cerr != nil {
			zap.S().Warnw("failed to close inventory", "error", cerr)
		}
	}()
	return fn(ctx, inv)
}

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the inventory as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := zap.S().Named("serve")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			inv, err := a.open(ctx, false)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := inv.Close(); cerr != nil {
					log.Warnw("failed to close inventory", "error", cerr)
				}
			}()

			server := mcp.NewServer(inv, a.cfg.UI.LowStockThreshold)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				// stdin closing ends the session as well as a signal
				defer stop()
				return server.Serve(gctx)
			})
			g.Go(func() error {
				<-gctx.Done()
				log.Infow("shutting down")
				return nil
			})

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("server error: %w", err)
			}
			log.Infow("server stopped")
			return nil
		},
	}
}

func newCategoriesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with their component counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withInventory(cmd, func(ctx context.Context, inv *inventory.Inventory) error {
				categories, err := inv.ListCategories(ctx)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tKIND\tUNIT\tSYSTEM\tCOMPONENTS")
				for _, c := range categories {
					count, err := inv.ComponentCountForCategory(ctx, c.Name)
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\t%d\n", c.ID, c.Name, c.Kind(), c.DefaultUnit, c.IsSystem, count)
				}
				return w.Flush()
			})
		},
	}
}

func newListCommand(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List components ordered by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withInventory(cmd, func(ctx context.Context, inv *inventory.Inventory) error {
				var components []types.Component
				var err error
				if category != "" {
					components, err = inv.ListByCategory(ctx, category)
				} else {
					components, err = inv.ListComponents(ctx)
				}
				if err != nil {
					return err
				}

				threshold := a.cfg.UI.LowStockThreshold
				if err := printComponents(cmd.OutOrStdout(), components, threshold, a.cfg.UI.ShowLowStockWarnings); err != nil {
					return err
				}
				if a.cfg.UI.ShowLowStockWarnings {
					low := 0
					for _, c := range components {
						if c.IsLowStock(threshold) {
							low++
						}
					}
					if low > 0 {
						color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "%d component(s) below %d in stock\n", low, threshold)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Only list components in this category")
	return cmd
}

func newLowStockCommand(a *app) *cobra.Command {
	var threshold int
	cmd := &cobra.Command{
		Use:   "low-stock",
		Short: "List components below the stock threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.UI.LowStockThreshold
			}
			if threshold < 0 {
				return fmt.Errorf("threshold must not be negative, got %d", threshold)
			}
			return a.withInventory(cmd, func(ctx context.Context, inv *inventory.Inventory) error {
				components, err := inv.ListLowStock(ctx, threshold)
				if err != nil {
					return err
				}
				if len(components) == 0 {
					color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "No components below %d in stock\n", threshold)
					return nil
				}
				return printComponents(cmd.OutOrStdout(), components, threshold, true)
			})
		},
	}
	cmd.Flags().IntVar(&threshold, "threshold", 0, "Quantity threshold (defaults to ui.lowStockThreshold)")
	return cmd
}

func newSearchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Find components whose name contains term, ignoring case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withInventory(cmd, func(ctx context.Context, inv *inventory.Inventory) error {
				components, err := inv.SearchByName(ctx, args[0])
				if err != nil {
					return err
				}
				return printComponents(cmd.OutOrStdout(), components, a.cfg.UI.LowStockThreshold, a.cfg.UI.ShowLowStockWarnings)
			})
		},
	}
}

func newSeedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample components into an empty inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			inv, err := a.open(ctx, true)
			if err != nil {
				return err
			}
			defer inv.Close()

			stats, err := inv.Stats(ctx, a.cfg.UI.LowStockThreshold)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d components in %d categories (%d low stock)\n",
				stats.Components, stats.Categories, stats.LowStock)
			return nil
		},
	}
}

// printComponents writes components as a table. Low-stock quantities are
// highlighted when highlight is set.
func printComponents(out io.Writer, components []types.Component, threshold int, highlight bool) error {
	low := color.New(color.FgRed, color.Bold).SprintFunc()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMANUFACTURER\tCATEGORY\tQTY\tVALUE\tPACKAGE")
	for _, c := range components {
		qty := fmt.Sprintf("%d", c.Quantity)
		if highlight && c.IsLowStock(threshold) {
			qty = low(qty)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, c.Manufacturer, c.Category, qty, c.DisplayValue(), c.DisplayPackage())
	}
	return w.Flush()
}
