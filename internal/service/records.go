package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"eventbridge/internal/models"
	"eventbridge/internal/repository"
	"eventbridge/internal/schema"
)

// RecordService writes single events. Values are passed through without
// coercion and must already have the column's Go type.
type RecordService struct {
	Store  repository.Repository
	Logger *zap.Logger
}

func (s *RecordService) CreateKalshiEvent(ctx context.Context, fields map[string]any) (*models.KalshiEvent, error) {
	const op = "create_kalshi_event"
	rec, err := schema.KalshiEvents.Assign(fields)
	if err == nil {
		err = s.Store.CreateKalshiEvent(ctx, rec)
	}
	if err != nil {
		e := storeError(op, err)
		logFailure(s.Logger, e)
		return nil, e
	}
	return rec, nil
}

func (s *RecordService) CreatePolymarketEvent(ctx context.Context, fields map[string]any) (*models.PolymarketEvent, error) {
	const op = "create_polymarket_event"
	rec, err := schema.PolymarketEvents.Assign(fields)
	if err == nil {
		err = s.Store.CreatePolymarketEvent(ctx, rec)
	}
	if err != nil {
		e := storeError(op, err)
		logFailure(s.Logger, e)
		return nil, e
	}
	return rec, nil
}

// UpdateKalshiEvent updates by surrogate id.
func (s *RecordService) UpdateKalshiEvent(ctx context.Context, id uint64, fields map[string]any) error {
	const op = "update_kalshi_event"
	updates, err := schema.KalshiEvents.Updates(fields)
	if err != nil {
		e := storeError(op, err)
		logFailure(s.Logger, e, zap.Uint64("id", id))
		return e
	}
	var affected int64
	err = s.Store.InTx(ctx, func(tx *gorm.DB) error {
		var err error
		affected, err = s.Store.UpdateKalshiEventTx(ctx, tx, id, updates)
		return err
	})
	return s.checkAffected(op, affected, err, zap.Uint64("id", id))
}

// UpdatePolymarketEvent updates by condition id.
func (s *RecordService) UpdatePolymarketEvent(ctx context.Context, conditionID string, fields map[string]any) error {
	const op = "update_polymarket_event"
	updates, err := schema.PolymarketEvents.Updates(fields)
	if err != nil {
		e := storeError(op, err)
		logFailure(s.Logger, e, zap.String("condition_id", conditionID))
		return e
	}
	var affected int64
	err = s.Store.InTx(ctx, func(tx *gorm.DB) error {
		var err error
		affected, err = s.Store.UpdatePolymarketEventTx(ctx, tx, conditionID, updates)
		return err
	})
	return s.checkAffected(op, affected, err, zap.String("condition_id", conditionID))
}

// DeleteKalshiEvent deletes by surrogate id, together with its mappings.
func (s *RecordService) DeleteKalshiEvent(ctx context.Context, id uint64) error {
	affected, err := s.Store.DeleteKalshiEvent(ctx, id)
	return s.checkAffected("delete_kalshi_event", affected, err, zap.Uint64("id", id))
}

// DeletePolymarketEvent deletes by condition id, together with its mappings.
func (s *RecordService) DeletePolymarketEvent(ctx context.Context, conditionID string) error {
	affected, err := s.Store.DeletePolymarketEvent(ctx, conditionID)
	return s.checkAffected("delete_polymarket_event", affected, err, zap.String("condition_id", conditionID))
}

func (s *RecordService) checkAffected(op string, affected int64, err error, key zap.Field) error {
	var e *Error
	switch {
	case err != nil:
		e = storeError(op, err)
	case affected == 0:
		e = notFoundError(op, "no matching row")
	default:
		return nil
	}
	logFailure(s.Logger, e, key)
	return e
}
