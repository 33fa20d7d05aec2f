package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"eventbridge/internal/models"
	"eventbridge/internal/repository"
)

// MappingService links a Polymarket outcome to a Kalshi market.
type MappingService struct {
	Store  repository.Repository
	Logger *zap.Logger
}

// CreateMapping resolves outcome against the Polymarket event's co-indexed
// outcomes/clobTokenIds arrays and stores the resulting mapping row.
// Nothing is written unless every check passes.
func (s *MappingService) CreateMapping(ctx context.Context, kalshiID, polymarketID uint64, outcome string) (*models.MappingEvent, error) {
	const op = "create_mapping"
	var created *models.MappingEvent
	err := s.Store.InTx(ctx, func(tx *gorm.DB) error {
		poly, err := s.Store.GetPolymarketEventByIDTx(ctx, tx, polymarketID)
		if err != nil {
			return err
		}
		if poly == nil {
			return validationError(op, ErrPolymarketEventMissing, "polymarket_id=%d", polymarketID)
		}
		kalshi, err := s.Store.GetKalshiEventByIDTx(ctx, tx, kalshiID)
		if err != nil {
			return err
		}
		if kalshi == nil {
			return validationError(op, ErrKalshiEventMissing, "kalshi_id=%d", kalshiID)
		}
		tokenID, err := resolveOutcome(op, poly, outcome)
		if err != nil {
			return err
		}
		if kalshi.Ticker == nil || *kalshi.Ticker == "" {
			return validationError(op, ErrKalshiTickerMissing, "kalshi_id=%d", kalshiID)
		}
		m := &models.MappingEvent{
			KalshiID:     kalshi.ID,
			PolymarketID: poly.ID,
			Outcome:      outcome,
			ClobTokenID:  tokenID,
			KalshiTicker: *kalshi.Ticker,
		}
		if err := s.Store.CreateMappingTx(ctx, tx, m); err != nil {
			return err
		}
		created = m
		return nil
	})
	if err != nil {
		e := storeError(op, err)
		logFailure(s.Logger, e,
			zap.Uint64("kalshi_id", kalshiID),
			zap.Uint64("polymarket_id", polymarketID),
			zap.String("outcome", outcome),
		)
		return nil, e
	}
	return created, nil
}

// UpdateMappingParents re-points a mapping at other parents. A new Kalshi
// parent refreshes the ticker copy; a new Polymarket parent re-resolves the
// stored outcome against that event's arrays.
func (s *MappingService) UpdateMappingParents(ctx context.Context, id uint64, kalshiID, polymarketID *uint64) error {
	const op = "update_mapping_parents"
	if kalshiID == nil && polymarketID == nil {
		e := validationError(op, ErrNoFields, "mapping_id=%d", id)
		logFailure(s.Logger, e)
		return e
	}
	err := s.Store.InTx(ctx, func(tx *gorm.DB) error {
		current, err := s.Store.GetMappingTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return notFoundError(op, "mapping_id=%d", id)
		}
		updates := map[string]any{}
		if kalshiID != nil {
			kalshi, err := s.Store.GetKalshiEventByIDTx(ctx, tx, *kalshiID)
			if err != nil {
				return err
			}
			if kalshi == nil {
				return validationError(op, ErrKalshiEventMissing, "kalshi_id=%d", *kalshiID)
			}
			if kalshi.Ticker == nil || *kalshi.Ticker == "" {
				return validationError(op, ErrKalshiTickerMissing, "kalshi_id=%d", *kalshiID)
			}
			updates["kalshi_id"] = kalshi.ID
			updates["kalshi_ticker"] = *kalshi.Ticker
		}
		if polymarketID != nil {
			poly, err := s.Store.GetPolymarketEventByIDTx(ctx, tx, *polymarketID)
			if err != nil {
				return err
			}
			if poly == nil {
				return validationError(op, ErrPolymarketEventMissing, "polymarket_id=%d", *polymarketID)
			}
			tokenID, err := resolveOutcome(op, poly, current.Outcome)
			if err != nil {
				return err
			}
			updates["polymarket_id"] = poly.ID
			updates["polymarket_clob_token_id"] = tokenID
		}
		_, err = s.Store.UpdateMappingTx(ctx, tx, id, updates)
		return err
	})
	if err != nil {
		e := storeError(op, err)
		logFailure(s.Logger, e, zap.Uint64("mapping_id", id))
		return e
	}
	return nil
}

func (s *MappingService) DeleteMapping(ctx context.Context, id uint64) error {
	const op = "delete_mapping"
	affected, err := s.Store.DeleteMapping(ctx, id)
	return s.checkAffected(op, affected, err, zap.Uint64("mapping_id", id))
}

// DeleteMappingsByPair removes every mapping between the two events.
func (s *MappingService) DeleteMappingsByPair(ctx context.Context, kalshiID, polymarketID uint64) error {
	const op = "delete_mappings_by_pair"
	affected, err := s.Store.DeleteMappingsByPair(ctx, kalshiID, polymarketID)
	return s.checkAffected(op, affected, err, zap.Uint64("kalshi_id", kalshiID), zap.Uint64("polymarket_id", polymarketID))
}

func (s *MappingService) checkAffected(op string, affected int64, err error, fields ...zap.Field) error {
	var e *Error
	switch {
	case err != nil:
		e = storeError(op, err)
	case affected == 0:
		e = notFoundError(op, "no matching mapping")
	default:
		return nil
	}
	logFailure(s.Logger, e, fields...)
	return e
}

// resolveOutcome returns the token id co-indexed with the first occurrence of
// outcome.
func resolveOutcome(op string, poly *models.PolymarketEvent, outcome string) (string, error) {
	outcomes, err := decodeStringArray(poly.Outcomes)
	if err != nil {
		return "", validationError(op, ErrMalformedOutcomes, "outcomes: %v", err)
	}
	tokenIDs, err := decodeStringArray(poly.ClobTokenIDs)
	if err != nil {
		return "", validationError(op, ErrMalformedOutcomes, "clobTokenIds: %v", err)
	}
	if len(outcomes) != len(tokenIDs) {
		return "", validationError(op, ErrOutcomeLengthMismatch, "outcomes=%d clobTokenIds=%d", len(outcomes), len(tokenIDs))
	}
	for i, name := range outcomes {
		if name == outcome {
			return tokenIDs[i], nil
		}
	}
	return "", validationError(op, ErrOutcomeNotFound, "outcome %q not in [%s]", outcome, strings.Join(outcomes, ", "))
}

func decodeStringArray(raw *string) ([]string, error) {
	if raw == nil {
		return nil, errNullArray
	}
	var out []string
	if err := json.Unmarshal([]byte(*raw), &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errNullArray
	}
	return out, nil
}
