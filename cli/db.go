package cli

import (
	"time"

	"salestrend/database"

	"github.com/spf13/cobra"
)

func newDBCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the demo store tables",
	}
	cmd.AddCommand(newDBInitCmd(a), newDBDropCmd(a), newDBStatusCmd(a))
	return cmd
}

func newDBInitCmd(a *app) *cobra.Command {
	var (
		days int
		seed uint64
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Recreate the store tables and seed demo orders",
		Long: `Drop the customer, product and order tables, create the schema again and
fill it with generated demo orders. Users are kept. The same --seed always
produces the same orders relative to today.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.DropStoreSchema(ctx, pool); err != nil {
				return err
			}
			if err := database.CreateSchema(ctx, pool); err != nil {
				return err
			}
			summary, err := database.Seed(ctx, pool, database.SeedOptions{Days: days, Seed: seed, Now: time.Now()})
			if err != nil {
				return err
			}

			a.printer(cmd).Success("Seeded %d customers, %d products, %d orders (%d items)",
				summary.Customers, summary.Products, summary.Orders, summary.OrderItems)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 90, "days of order history to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "random seed for the generator")
	return cmd
}

func newDBDropCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drop",
		Short: "Drop the store tables (users are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.DropStoreSchema(ctx, pool); err != nil {
				return err
			}
			a.printer(cmd).Success("E-commerce tables deleted")
			return nil
		},
	}
}

func newDBStatusCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which tables exist and how many rows they hold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			status, err := database.Status(ctx, pool)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), status)
			}
			p := a.printer(cmd)
			p.Header("Database status")
			return p.Status(status)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
