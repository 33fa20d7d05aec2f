package gormrepository

import (
	"context"

	"gorm.io/gorm"

	"eventbridge/internal/models"
)

func (s *Store) InsertKalshiEventsTx(ctx context.Context, tx *gorm.DB, items []models.KalshiEvent, batchSize int) error {
	if len(items) == 0 {
		return nil
	}
	return createInBatches(tx.WithContext(ctx), items, batchSize)
}

func (s *Store) CreateKalshiEvent(ctx context.Context, item *models.KalshiEvent) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) UpdateKalshiEventTx(ctx context.Context, tx *gorm.DB, id uint64, updates map[string]any) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	res := tx.WithContext(ctx).Model(&models.KalshiEvent{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected, res.Error
}

func (s *Store) UpdateKalshiEventByTickerTx(ctx context.Context, tx *gorm.DB, ticker string, updates map[string]any) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	res := tx.WithContext(ctx).Model(&models.KalshiEvent{}).Where("ticker = ?", ticker).Updates(updates)
	return res.RowsAffected, res.Error
}

func (s *Store) DeleteKalshiEvent(ctx context.Context, id uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kalshi_id = ?", id).Delete(&models.MappingEvent{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.KalshiEvent{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

func (s *Store) GetKalshiEventByID(ctx context.Context, id uint64) (*models.KalshiEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return s.GetKalshiEventByIDTx(ctx, s.db, id)
}

func (s *Store) GetKalshiEventByIDTx(ctx context.Context, tx *gorm.DB, id uint64) (*models.KalshiEvent, error) {
	return first[models.KalshiEvent](tx.WithContext(ctx), "id = ?", id)
}

func (s *Store) GetKalshiEventByTicker(ctx context.Context, ticker string) (*models.KalshiEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return first[models.KalshiEvent](s.db.WithContext(ctx), "ticker = ?", ticker)
}

func (s *Store) FindKalshiEventsByTickers(ctx context.Context, tickers []string) ([]models.KalshiEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	tickers = cleanStrings(tickers)
	if len(tickers) == 0 {
		return nil, nil
	}
	var items []models.KalshiEvent
	if err := s.db.WithContext(ctx).Where("ticker IN ?", tickers).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListKalshiEventsByEventTicker(ctx context.Context, eventTicker string) ([]models.KalshiEvent, error) {
	return s.listKalshiEventsBy(ctx, "event_ticker", eventTicker)
}

func (s *Store) ListKalshiEventsBySeriesTicker(ctx context.Context, seriesTicker string) ([]models.KalshiEvent, error) {
	return s.listKalshiEventsBy(ctx, "series_ticker", seriesTicker)
}

func (s *Store) listKalshiEventsBy(ctx context.Context, column, value string) ([]models.KalshiEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.KalshiEvent
	if err := s.db.WithContext(ctx).Where(column+" = ?", value).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
