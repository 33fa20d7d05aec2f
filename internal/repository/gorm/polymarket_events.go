package gormrepository

import (
	"context"

	"gorm.io/gorm"

	"eventbridge/internal/models"
)

func (s *Store) InsertPolymarketEventsTx(ctx context.Context, tx *gorm.DB, items []models.PolymarketEvent, batchSize int) error {
	if len(items) == 0 {
		return nil
	}
	return createInBatches(tx.WithContext(ctx), items, batchSize)
}

func (s *Store) CreatePolymarketEvent(ctx context.Context, item *models.PolymarketEvent) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) UpdatePolymarketEventTx(ctx context.Context, tx *gorm.DB, conditionID string, updates map[string]any) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	res := tx.WithContext(ctx).Model(&models.PolymarketEvent{}).Where("condition_id = ?", conditionID).Updates(updates)
	return res.RowsAffected, res.Error
}

func (s *Store) DeletePolymarketEvent(ctx context.Context, conditionID string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		parents := tx.Model(&models.PolymarketEvent{}).Select("id").Where("condition_id = ?", conditionID)
		if err := tx.Where("polymarket_id IN (?)", parents).Delete(&models.MappingEvent{}).Error; err != nil {
			return err
		}
		res := tx.Where("condition_id = ?", conditionID).Delete(&models.PolymarketEvent{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

func (s *Store) GetPolymarketEventByID(ctx context.Context, id uint64) (*models.PolymarketEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return s.GetPolymarketEventByIDTx(ctx, s.db, id)
}

func (s *Store) GetPolymarketEventByIDTx(ctx context.Context, tx *gorm.DB, id uint64) (*models.PolymarketEvent, error) {
	return first[models.PolymarketEvent](tx.WithContext(ctx), "id = ?", id)
}

func (s *Store) GetPolymarketEventByConditionID(ctx context.Context, conditionID string) (*models.PolymarketEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return first[models.PolymarketEvent](s.db.WithContext(ctx), "condition_id = ?", conditionID)
}

func (s *Store) FindPolymarketEventsByConditionIDs(ctx context.Context, conditionIDs []string) ([]models.PolymarketEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	conditionIDs = cleanStrings(conditionIDs)
	if len(conditionIDs) == 0 {
		return nil, nil
	}
	var items []models.PolymarketEvent
	if err := s.db.WithContext(ctx).Where("condition_id IN ?", conditionIDs).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
