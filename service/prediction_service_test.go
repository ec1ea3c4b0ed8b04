package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"salestrend/prediction"
	"salestrend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHistory struct {
	observations []prediction.Observation
	readyErr     error
	salesErr     error
	gotFilter    repository.SalesFilter
}

func (f *fakeHistory) DailySales(_ context.Context, filter repository.SalesFilter) ([]prediction.Observation, error) {
	f.gotFilter = filter
	return f.observations, f.salesErr
}

func (f *fakeHistory) TablesReady(context.Context) error {
	return f.readyErr
}

func weeklySeries() []prediction.Observation {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	var obs []prediction.Observation
	for i := 0; i < 21; i++ {
		sales := 0.0
		switch i % 7 {
		case 0:
			sales = 200
		case 1:
			sales = 120
		}
		obs = append(obs, prediction.Observation{Date: start.AddDate(0, 0, i), ProductID: 9, ProductName: "Coffee", DailySales: sales})
	}
	return obs
}

func TestRun(t *testing.T) {
	history := &fakeHistory{observations: weeklySeries()}
	svc := NewPredictionService(history, prediction.Default())

	basic, err := svc.Run(context.Background(), RunOptions{PeriodDays: 30, ProductIDs: []int64{9}})
	require.NoError(t, err)
	require.Len(t, basic, 1)
	assert.Equal(t, repository.SalesFilter{PeriodDays: 30, ProductIDs: []int64{9}}, history.gotFilter)
	assert.False(t, strings.HasSuffix(basic[0].Recommendation, prediction.MsgWeeklyPattern))

	advanced, err := svc.Run(context.Background(), RunOptions{PeriodDays: 30, Advanced: true})
	require.NoError(t, err)
	require.Len(t, advanced, 1)
	assert.True(t, strings.HasSuffix(advanced[0].Recommendation, prediction.MsgWeeklyPattern))
}

func TestRun_Errors(t *testing.T) {
	svc := NewPredictionService(&fakeHistory{readyErr: repository.ErrTablesMissing}, prediction.Default())
	_, err := svc.Run(context.Background(), RunOptions{PeriodDays: 30})
	assert.ErrorIs(t, err, repository.ErrTablesMissing)

	boom := errors.New("boom")
	svc = NewPredictionService(&fakeHistory{salesErr: boom}, prediction.Default())
	_, err = svc.Run(context.Background(), RunOptions{PeriodDays: 30})
	assert.ErrorIs(t, err, boom)

	_, err = svc.Run(context.Background(), RunOptions{PeriodDays: 0})
	assert.Error(t, err)
}
