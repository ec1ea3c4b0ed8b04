// Package cli contains the salestrend operator commands.
package cli

import (
	"context"
	"errors"
	"fmt"

	"salestrend/config"
	"salestrend/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfg     config.Config
	noColor bool
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "salestrend",
		Short: "Sales trend estimation for the e-commerce store",
		Long: `salestrend predicts per-product sales from the store's order history.

Example usage:
  salestrend db init --days 90         # Create tables and seed demo orders
  salestrend predict --advanced        # Predict from the last 30 days
  salestrend predict --products 1,4    # Only some products
  salestrend predict-file -i obs.json  # Predict from a file, no database`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	root.PersistentFlags().String("database-url", "", "Postgres connection string (default $DATABASE_URL)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable coloured output")
	_ = a.v.BindPFlag("DATABASE_URL", root.PersistentFlags().Lookup("database-url"))

	root.AddCommand(
		newPredictCmd(a),
		newPredictFileCmd(a),
		newDBCmd(a),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}

func (a *app) initConfig() error {
	cfg, err := config.LoadFrom(a.v)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg
	return nil
}

func (a *app) printer(cmd *cobra.Command) *printer {
	return newPrinter(cmd.OutOrStdout(), a.noColor)
}

// connect opens the pool; callers must defer database.Close.
func (a *app) connect(ctx context.Context) (*pgxpool.Pool, error) {
	if a.cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set (use --database-url)")
	}
	return database.Connect(ctx, a.cfg.DatabaseURL)
}
