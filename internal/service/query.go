package service

import (
	"context"

	"go.uber.org/zap"

	"eventbridge/internal/models"
	"eventbridge/internal/repository"
)

// QueryService is the read side. Single lookups return nil when nothing
// matches; list reads never return nil and swallow store errors after
// logging them.
type QueryService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func (s *QueryService) GetKalshiEventByTicker(ctx context.Context, ticker string) (*models.KalshiEvent, error) {
	item, err := s.Repo.GetKalshiEventByTicker(ctx, ticker)
	return item, s.lookupError("get_kalshi_event_by_ticker", err)
}

func (s *QueryService) GetKalshiEventByID(ctx context.Context, id uint64) (*models.KalshiEvent, error) {
	item, err := s.Repo.GetKalshiEventByID(ctx, id)
	return item, s.lookupError("get_kalshi_event_by_id", err)
}

func (s *QueryService) GetPolymarketEventByConditionID(ctx context.Context, conditionID string) (*models.PolymarketEvent, error) {
	item, err := s.Repo.GetPolymarketEventByConditionID(ctx, conditionID)
	return item, s.lookupError("get_polymarket_event_by_condition_id", err)
}

func (s *QueryService) GetPolymarketEventByID(ctx context.Context, id uint64) (*models.PolymarketEvent, error) {
	item, err := s.Repo.GetPolymarketEventByID(ctx, id)
	return item, s.lookupError("get_polymarket_event_by_id", err)
}

func (s *QueryService) ListKalshiEventsByEventTicker(ctx context.Context, eventTicker string) []models.KalshiEvent {
	items, err := s.Repo.ListKalshiEventsByEventTicker(ctx, eventTicker)
	return orEmpty(s, "list_kalshi_events_by_event_ticker", items, err)
}

func (s *QueryService) ListKalshiEventsBySeriesTicker(ctx context.Context, seriesTicker string) []models.KalshiEvent {
	items, err := s.Repo.ListKalshiEventsBySeriesTicker(ctx, seriesTicker)
	return orEmpty(s, "list_kalshi_events_by_series_ticker", items, err)
}

func (s *QueryService) ListMappingsByKalshiID(ctx context.Context, kalshiID uint64) []models.MappingEvent {
	items, err := s.Repo.ListMappingsByKalshiID(ctx, kalshiID)
	return orEmpty(s, "list_mappings_by_kalshi_id", items, err)
}

func (s *QueryService) ListMappingsByPolymarketID(ctx context.Context, polymarketID uint64) []models.MappingEvent {
	items, err := s.Repo.ListMappingsByPolymarketID(ctx, polymarketID)
	return orEmpty(s, "list_mappings_by_polymarket_id", items, err)
}

// ListMappingsByPair returns the mappings between two events with both parents loaded.
func (s *QueryService) ListMappingsByPair(ctx context.Context, kalshiID, polymarketID uint64) []models.MappingEvent {
	items, err := s.Repo.ListMappingsByPair(ctx, kalshiID, polymarketID)
	return orEmpty(s, "list_mappings_by_pair", items, err)
}

func (s *QueryService) ListRelatedKalshiEvents(ctx context.Context, polymarketID uint64) []models.KalshiEvent {
	items, err := s.Repo.ListRelatedKalshiEvents(ctx, polymarketID)
	return orEmpty(s, "list_related_kalshi_events", items, err)
}

func (s *QueryService) ListRelatedPolymarketEvents(ctx context.Context, kalshiID uint64) []models.PolymarketEvent {
	items, err := s.Repo.ListRelatedPolymarketEvents(ctx, kalshiID)
	return orEmpty(s, "list_related_polymarket_events", items, err)
}

func (s *QueryService) ListKalshiTickers(ctx context.Context) []string {
	items, err := s.Repo.ListKalshiTickers(ctx)
	return orEmpty(s, "list_kalshi_tickers", items, err)
}

func (s *QueryService) ListClobTokenIDs(ctx context.Context) []string {
	items, err := s.Repo.ListClobTokenIDs(ctx)
	return orEmpty(s, "list_clob_token_ids", items, err)
}

func (s *QueryService) ListSyncStates(ctx context.Context) []models.SyncState {
	items, err := s.Repo.ListSyncStates(ctx)
	return orEmpty(s, "list_sync_states", items, err)
}

func (s *QueryService) lookupError(op string, err error) error {
	if err == nil {
		return nil
	}
	e := storeError(op, err)
	logFailure(s.Logger, e)
	return e
}

func orEmpty[T any](s *QueryService, op string, items []T, err error) []T {
	if err != nil {
		logFailure(s.Logger, storeError(op, err))
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}
