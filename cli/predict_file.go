package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"salestrend/prediction"

	"github.com/spf13/cobra"
)

// fileObservation is one record of a predict-file input. Dates may be
// plain calendar dates or RFC 3339 timestamps.
type fileObservation struct {
	Date         string  `json:"date"`
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	DailySales   float64 `json:"daily_sales"`
	QuantitySold int64   `json:"quantity_sold"`
}

// LoadObservations decodes a JSON array of sales observations.
func LoadObservations(r io.Reader) ([]prediction.Observation, error) {
	var records []fileObservation
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding observations: %w", err)
	}

	obs := make([]prediction.Observation, 0, len(records))
	for i, rec := range records {
		date, err := parseDate(rec.Date)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if rec.ProductID <= 0 {
			return nil, fmt.Errorf("record %d: product_id must be positive", i)
		}
		obs = append(obs, prediction.Observation{
			Date:         date,
			ProductID:    rec.ProductID,
			ProductName:  rec.ProductName,
			DailySales:   rec.DailySales,
			QuantitySold: rec.QuantitySold,
		})
	}
	return obs, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

func newPredictFileCmd(a *app) *cobra.Command {
	var (
		input    string
		advanced bool
		asJSON   bool
		explain  bool
	)

	cmd := &cobra.Command{
		Use:   "predict-file",
		Short: "Predict sales from a JSON file of daily observations",
		Long: `Run the estimator over a JSON array of daily sales observations, without a
database. Each record has date, product_id, product_name, daily_sales and
quantity_sold.

Examples:
  salestrend predict-file -i history.json
  salestrend predict-file -i history.json --advanced --json
  cat history.json | salestrend predict-file -i - --explain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return fmt.Errorf("opening input: %w", err)
				}
				defer f.Close()
				r = f
			}

			obs, err := LoadObservations(r)
			if err != nil {
				return err
			}

			estimator := prediction.New(a.cfg.Prediction)
			if explain {
				diags := estimator.Explain(obs)
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), diags)
				}
				return a.printer(cmd).Diagnostics(diags)
			}

			var results []prediction.Result
			if advanced {
				results = estimator.PredictWithSeasonality(obs)
			} else {
				results = estimator.Predict(obs)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}

			p := a.printer(cmd)
			p.Header(fmt.Sprintf("Sales predictions (%d observations)", len(obs)))
			return p.Predictions(results)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "observations file, or - for stdin")
	cmd.Flags().BoolVar(&advanced, "advanced", false, "apply the weekly seasonality adjustment")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&explain, "explain", false, "show the smoothed series and fitted line per product")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
