package gormrepository

import (
	"context"

	"gorm.io/gorm"

	"eventbridge/internal/models"
)

func (s *Store) CreateMappingTx(ctx context.Context, tx *gorm.DB, item *models.MappingEvent) error {
	if item == nil {
		return nil
	}
	return tx.WithContext(ctx).Omit("KalshiEvent", "PolymarketEvent").Create(item).Error
}

func (s *Store) GetMapping(ctx context.Context, id uint64) (*models.MappingEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return s.GetMappingTx(ctx, s.db, id)
}

func (s *Store) GetMappingTx(ctx context.Context, tx *gorm.DB, id uint64) (*models.MappingEvent, error) {
	return first[models.MappingEvent](tx.WithContext(ctx), "id = ?", id)
}

func (s *Store) UpdateMappingTx(ctx context.Context, tx *gorm.DB, id uint64, updates map[string]any) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	res := tx.WithContext(ctx).Model(&models.MappingEvent{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected, res.Error
}

func (s *Store) DeleteMapping(ctx context.Context, id uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MappingEvent{})
	return res.RowsAffected, res.Error
}

func (s *Store) DeleteMappingsByPair(ctx context.Context, kalshiID, polymarketID uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("kalshi_id = ? AND polymarket_id = ?", kalshiID, polymarketID).
		Delete(&models.MappingEvent{})
	return res.RowsAffected, res.Error
}

func (s *Store) ListMappingsByKalshiID(ctx context.Context, kalshiID uint64) ([]models.MappingEvent, error) {
	return s.listMappings(ctx, false, "kalshi_id = ?", kalshiID)
}

func (s *Store) ListMappingsByPolymarketID(ctx context.Context, polymarketID uint64) ([]models.MappingEvent, error) {
	return s.listMappings(ctx, false, "polymarket_id = ?", polymarketID)
}

func (s *Store) ListMappingsByPair(ctx context.Context, kalshiID, polymarketID uint64) ([]models.MappingEvent, error) {
	return s.listMappings(ctx, true, "kalshi_id = ? AND polymarket_id = ?", kalshiID, polymarketID)
}

func (s *Store) listMappings(ctx context.Context, withParents bool, where string, args ...any) ([]models.MappingEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx)
	if withParents {
		query = query.Preload("KalshiEvent").Preload("PolymarketEvent")
	}
	var items []models.MappingEvent
	if err := query.Where(where, args...).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListRelatedKalshiEvents(ctx context.Context, polymarketID uint64) ([]models.KalshiEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	db := s.db.WithContext(ctx)
	linked := db.Model(&models.MappingEvent{}).Select("kalshi_id").Where("polymarket_id = ?", polymarketID)
	var items []models.KalshiEvent
	if err := db.Where("id IN (?)", linked).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListRelatedPolymarketEvents(ctx context.Context, kalshiID uint64) ([]models.PolymarketEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	db := s.db.WithContext(ctx)
	linked := db.Model(&models.MappingEvent{}).Select("polymarket_id").Where("kalshi_id = ?", kalshiID)
	var items []models.PolymarketEvent
	if err := db.Where("id IN (?)", linked).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListKalshiTickers(ctx context.Context) ([]string, error) {
	return s.pluckDistinct(ctx, "kalshi_ticker")
}

func (s *Store) ListClobTokenIDs(ctx context.Context) ([]string, error) {
	return s.pluckDistinct(ctx, "polymarket_clob_token_id")
}

func (s *Store) pluckDistinct(ctx context.Context, column string) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var out []string
	err := s.db.WithContext(ctx).
		Model(&models.MappingEvent{}).
		Distinct(column).
		Order(column + " asc").
		Pluck(column, &out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
