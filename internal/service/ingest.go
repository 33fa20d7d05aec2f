package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"eventbridge/internal/repository"
	"eventbridge/internal/schema"
)

type Entity string

const (
	EntityKalshi     Entity = "kalshi"
	EntityPolymarket Entity = "polymarket"
)

const defaultBatchSize = 100

// IngestService imports loosely typed payloads. Each call is one
// transaction: either every accepted record is stored or none is.
type IngestService struct {
	Store     repository.Repository
	Logger    *zap.Logger
	BatchSize int
}

type IngestResult struct {
	Received    int `json:"received"`
	Inserted    int `json:"inserted"`
	Skipped     int `json:"skipped"`
	FieldErrors int `json:"field_errors"`
}

func (s *IngestService) BulkInsert(ctx context.Context, entity Entity, records []map[string]any, batchSize int) (IngestResult, error) {
	switch entity {
	case EntityKalshi:
		return s.BulkInsertKalshiEvents(ctx, records, batchSize)
	case EntityPolymarket:
		return s.BulkInsertPolymarketEvents(ctx, records, batchSize)
	default:
		err := validationError("bulk_insert", ErrUnknownEntity, "entity=%q", entity)
		logFailure(s.Logger, err)
		return IngestResult{Received: len(records)}, err
	}
}

func (s *IngestService) BulkInsertKalshiEvents(ctx context.Context, records []map[string]any, batchSize int) (IngestResult, error) {
	const op = "bulk_insert_kalshi_events"
	items, result := coerceAll(s.Logger, schema.KalshiEvents, records)
	if len(items) == 0 {
		return result, nil
	}
	err := s.Store.InTx(ctx, func(tx *gorm.DB) error {
		return s.Store.InsertKalshiEventsTx(ctx, tx, items, s.batchSize(batchSize))
	})
	return s.finish(op, result, len(items), err)
}

func (s *IngestService) BulkInsertPolymarketEvents(ctx context.Context, records []map[string]any, batchSize int) (IngestResult, error) {
	const op = "bulk_insert_polymarket_events"
	items, result := coerceAll(s.Logger, schema.PolymarketEvents, records)
	if len(items) == 0 {
		return result, nil
	}
	err := s.Store.InTx(ctx, func(tx *gorm.DB) error {
		return s.Store.InsertPolymarketEventsTx(ctx, tx, items, s.batchSize(batchSize))
	})
	return s.finish(op, result, len(items), err)
}

func (s *IngestService) finish(op string, result IngestResult, inserted int, err error) (IngestResult, error) {
	if err != nil {
		e := storeError(op, err)
		logFailure(s.Logger, e, zap.Int("records", result.Received))
		return result, e
	}
	result.Inserted = inserted
	if s.Logger != nil {
		s.Logger.Debug("bulk insert done",
			zap.String("op", op),
			zap.Int("inserted", result.Inserted),
			zap.Int("skipped", result.Skipped),
			zap.Int("field_errors", result.FieldErrors),
		)
	}
	return result, nil
}

func (s *IngestService) batchSize(size int) int {
	if size >= 1 {
		return size
	}
	if s.BatchSize >= 1 {
		return s.BatchSize
	}
	return defaultBatchSize
}

// coerceAll applies the bulk policy to every record. Records without a single
// declared key are skipped; failed fields are logged and stored as NULL.
func coerceAll[T any](log *zap.Logger, table *schema.Table[T], records []map[string]any) ([]T, IngestResult) {
	result := IngestResult{Received: len(records)}
	items := make([]T, 0, len(records))
	for i, raw := range records {
		rec, fieldErrs, ok := table.Coerce(raw)
		if !ok {
			result.Skipped++
			continue
		}
		result.FieldErrors += len(fieldErrs)
		if log != nil {
			for _, fe := range fieldErrs {
				log.Warn("field conversion failed",
					zap.String("table", table.Name),
					zap.Int("record", i),
					zap.String("field", fe.Key),
					zap.Any("value", fe.Value),
					zap.Error(fe.Err),
				)
			}
		}
		items = append(items, *rec)
	}
	return items, result
}
