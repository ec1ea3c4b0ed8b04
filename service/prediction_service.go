package service

import (
	"context"
	"fmt"
	"log"

	"salestrend/prediction"
	"salestrend/repository"
)

// SalesHistory is the read side the prediction service needs.
type SalesHistory interface {
	DailySales(ctx context.Context, f repository.SalesFilter) ([]prediction.Observation, error)
	TablesReady(ctx context.Context) error
}

// RunOptions selects the history a prediction run uses.
type RunOptions struct {
	PeriodDays int
	ProductIDs []int64
	// Advanced enables the weekly seasonality adjustment.
	Advanced bool
}

// PredictionService loads sales history and runs the estimator over it.
type PredictionService struct {
	history   SalesHistory
	estimator prediction.Estimator
}

func NewPredictionService(history SalesHistory, estimator prediction.Estimator) *PredictionService {
	return &PredictionService{history: history, estimator: estimator}
}

// Run returns the predictions for the products sold within the period.
// It returns repository.ErrTablesMissing when the store is not initialized.
func (s *PredictionService) Run(ctx context.Context, opts RunOptions) ([]prediction.Result, error) {
	if opts.PeriodDays < 1 {
		return nil, fmt.Errorf("period must be at least one day, got %d", opts.PeriodDays)
	}
	if err := s.history.TablesReady(ctx); err != nil {
		return nil, err
	}

	observations, err := s.history.DailySales(ctx, repository.SalesFilter{
		PeriodDays: opts.PeriodDays,
		ProductIDs: opts.ProductIDs,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[PREDICTIONS] %d observations over %d days (advanced=%v)", len(observations), opts.PeriodDays, opts.Advanced)

	if opts.Advanced {
		return s.estimator.PredictWithSeasonality(observations), nil
	}
	return s.estimator.Predict(observations), nil
}
