package cli

import (
	"context"
	"fmt"

	"salestrend/database"
	"salestrend/prediction"
	"salestrend/repository"
	"salestrend/service"
	"salestrend/utils"

	"github.com/spf13/cobra"
)

type predictOptions struct {
	period   int
	products string
	advanced bool
	json     bool
}

func newPredictCmd(a *app) *cobra.Command {
	var opts predictOptions

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict sales from the order history in Postgres",
		Long: `Predict next-day, weekly and monthly sales for every product sold in the
trailing period. Orders that are delivered, shipped or pending count as sales.

Examples:
  salestrend predict                     # Last 30 days, all products
  salestrend predict --period 90         # Last 90 days
  salestrend predict --products 1,2,3    # Only these products
  salestrend predict --advanced --json   # Weekly seasonality, JSON output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := a.predictRunOptions(opts)
			if err != nil {
				return err
			}

			pool, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			svc := service.NewPredictionService(repository.NewSalesRepository(pool), prediction.New(a.cfg.Prediction))
			return a.runPredict(cmd, svc, run, opts.json)
		},
	}

	cmd.Flags().IntVar(&opts.period, "period", 0, "trailing days of history (default $PREDICTION_DEFAULT_PERIOD_DAYS)")
	cmd.Flags().StringVar(&opts.products, "products", "", "comma separated product ids")
	cmd.Flags().BoolVar(&opts.advanced, "advanced", false, "apply the weekly seasonality adjustment")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output as JSON")
	return cmd
}

func (a *app) predictRunOptions(opts predictOptions) (service.RunOptions, error) {
	period := opts.period
	if period <= 0 {
		period = a.cfg.DefaultPeriodDays
	}
	if period > a.cfg.MaxPeriodDays {
		return service.RunOptions{}, fmt.Errorf("period %d exceeds the maximum of %d days", period, a.cfg.MaxPeriodDays)
	}
	ids, err := utils.ParseIDList(opts.products)
	if err != nil {
		return service.RunOptions{}, err
	}
	return service.RunOptions{PeriodDays: period, ProductIDs: ids, Advanced: opts.advanced}, nil
}

func (a *app) runPredict(cmd *cobra.Command, svc *service.PredictionService, run service.RunOptions, asJSON bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := svc.Run(ctx, run)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), results)
	}

	p := a.printer(cmd)
	p.Header(fmt.Sprintf("Sales predictions (last %d days)", run.PeriodDays))
	return p.Predictions(results)
}
