package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"eventbridge/internal/db/dbtest"
	"eventbridge/internal/models"
	gormrepository "eventbridge/internal/repository/gorm"
)

func ptr(v string) *string { return &v }

func newTestStore(t *testing.T) *gormrepository.Store {
	t.Helper()
	return gormrepository.New(dbtest.Open(t).Gorm)
}

func seedEvents(t *testing.T, store *gormrepository.Store) (models.KalshiEvent, models.PolymarketEvent) {
	t.Helper()
	ctx := context.Background()
	k := models.KalshiEvent{Ticker: ptr("KXRAIN-1"), EventTicker: ptr("KXRAIN"), SeriesTicker: ptr("KXWX")}
	p := models.PolymarketEvent{
		ConditionID:  ptr("0xabc"),
		Outcomes:     ptr(`["Yes","No"]`),
		ClobTokenIDs: ptr(`["t1","t2"]`),
	}
	require.NoError(t, store.CreateKalshiEvent(ctx, &k))
	require.NoError(t, store.CreatePolymarketEvent(ctx, &p))
	return k, p
}

func nopLogger() *zap.Logger { return zap.NewNop() }
