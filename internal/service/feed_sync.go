package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"eventbridge/internal/client/kalshi"
	polymarketgamma "eventbridge/internal/client/polymarket/gamma"
	"eventbridge/internal/models"
	"eventbridge/internal/repository"
	"eventbridge/internal/schema"
)

const (
	ScopeKalshi     = "kalshi"
	ScopePolymarket = "polymarket"
	ScopeAll        = "all"

	lookupChunkSize = 1000
)

type KalshiFeed interface {
	GetMarketsRaw(ctx context.Context, params kalshi.GetMarketsParams) (kalshi.MarketsPage, error)
}

type GammaFeed interface {
	GetMarketsRaw(ctx context.Context, params polymarketgamma.GetMarketsParams) ([]map[string]any, error)
}

// FeedSyncService pulls market pages from both venues. Unknown natural keys
// go through the bulk import path; known ones are refreshed in place. Each
// page and its cursor are committed together.
type FeedSyncService struct {
	Store     repository.Repository
	Kalshi    KalshiFeed
	Gamma     GammaFeed
	Logger    *zap.Logger
	BatchSize int
}

type SyncOptions struct {
	Scope        string
	Limit        int
	MaxPages     int
	Resume       bool
	KalshiStatus string
	Closed       *bool
}

type SyncResult struct {
	Scope       string `json:"scope"`
	Pages       int    `json:"pages"`
	Received    int    `json:"received"`
	Inserted    int    `json:"inserted"`
	Updated     int    `json:"updated"`
	Skipped     int    `json:"skipped"`
	FieldErrors int    `json:"field_errors"`
	Cursor      string `json:"cursor"`
	Done        bool   `json:"done"`
}

func (r *SyncResult) add(other SyncResult) {
	r.Pages += other.Pages
	r.Received += other.Received
	r.Inserted += other.Inserted
	r.Updated += other.Updated
	r.Skipped += other.Skipped
	r.FieldErrors += other.FieldErrors
}

func (s *FeedSyncService) Sync(ctx context.Context, opts SyncOptions) (SyncResult, error) {
	scope := strings.ToLower(strings.TrimSpace(opts.Scope))
	if scope == "" {
		scope = ScopeAll
	}
	switch scope {
	case ScopeKalshi:
		return s.syncKalshi(ctx, opts)
	case ScopePolymarket:
		return s.syncPolymarket(ctx, opts)
	case ScopeAll:
		// Each venue runs on the caller's ctx; a failing venue must not
		// cancel the other.
		var kalshiRes, polyRes SyncResult
		var kalshiErr, polyErr error
		var g errgroup.Group
		g.Go(func() error {
			kalshiRes, kalshiErr = s.syncKalshi(ctx, opts)
			return nil
		})
		g.Go(func() error {
			polyRes, polyErr = s.syncPolymarket(ctx, opts)
			return nil
		})
		_ = g.Wait()
		result := SyncResult{Scope: ScopeAll, Done: kalshiRes.Done && polyRes.Done}
		result.add(kalshiRes)
		result.add(polyRes)
		return result, errors.Join(kalshiErr, polyErr)
	default:
		return SyncResult{}, fmt.Errorf("unsupported scope: %s", scope)
	}
}

func (s *FeedSyncService) syncKalshi(ctx context.Context, opts SyncOptions) (SyncResult, error) {
	if s.Kalshi == nil {
		return SyncResult{}, fmt.Errorf("kalshi client is nil")
	}
	limit := normalizeLimit(opts.Limit)
	maxPages := normalizeMaxPages(opts.MaxPages)
	cursor := ""
	if opts.Resume {
		state, err := s.Store.GetSyncState(ctx, ScopeKalshi)
		if err != nil {
			return SyncResult{}, err
		}
		if state != nil && state.Cursor != nil {
			cursor = *state.Cursor
		}
	}

	result := SyncResult{Scope: ScopeKalshi}
	for page := 0; page < maxPages; page++ {
		resp, err := s.Kalshi.GetMarketsRaw(ctx, kalshi.GetMarketsParams{
			Limit:  limit,
			Cursor: cursor,
			Status: opts.KalshiStatus,
		})
		if err != nil {
			s.writeSyncError(ctx, ScopeKalshi, err)
			return result, err
		}
		plan, err := planPage(s.Logger, schema.KalshiEvents, resp.Markets, s.existingKalshiTickers(ctx))
		if err != nil {
			s.writeSyncError(ctx, ScopeKalshi, err)
			return result, err
		}

		now := time.Now().UTC()
		err = s.Store.InTx(ctx, func(tx *gorm.DB) error {
			if err := s.Store.InsertKalshiEventsTx(ctx, tx, plan.inserts, s.batchSize()); err != nil {
				return err
			}
			for _, upd := range plan.updates {
				if _, err := s.Store.UpdateKalshiEventByTickerTx(ctx, tx, upd.key, upd.values); err != nil {
					return err
				}
			}
			return s.Store.SaveSyncStateTx(ctx, tx, &models.SyncState{
				Scope:         ScopeKalshi,
				Cursor:        strPtr(resp.Cursor),
				LastAttemptAt: &now,
				LastSuccessAt: &now,
				StatsJSON:     statsJSON(plan.stats()),
			})
		})
		if err != nil {
			s.writeSyncError(ctx, ScopeKalshi, err)
			return result, err
		}

		result.add(plan.result())
		result.Cursor = resp.Cursor
		cursor = resp.Cursor
		if cursor == "" || len(resp.Markets) == 0 {
			result.Done = true
			break
		}
	}
	s.logDone(result)
	return result, nil
}

func (s *FeedSyncService) syncPolymarket(ctx context.Context, opts SyncOptions) (SyncResult, error) {
	if s.Gamma == nil {
		return SyncResult{}, fmt.Errorf("gamma client is nil")
	}
	limit := normalizeLimit(opts.Limit)
	maxPages := normalizeMaxPages(opts.MaxPages)
	offset := 0
	if opts.Resume {
		state, err := s.Store.GetSyncState(ctx, ScopePolymarket)
		if err != nil {
			return SyncResult{}, err
		}
		if state != nil && state.Cursor != nil {
			if parsed, err := strconv.Atoi(*state.Cursor); err == nil {
				offset = parsed
			}
		}
	}

	result := SyncResult{Scope: ScopePolymarket}
	for page := 0; page < maxPages; page++ {
		items, err := s.Gamma.GetMarketsRaw(ctx, polymarketgamma.GetMarketsParams{
			Limit:  limit,
			Offset: offset,
			Closed: opts.Closed,
		})
		if err != nil {
			s.writeSyncError(ctx, ScopePolymarket, err)
			return result, err
		}
		plan, err := planPage(s.Logger, schema.PolymarketEvents, items, s.existingConditionIDs(ctx))
		if err != nil {
			s.writeSyncError(ctx, ScopePolymarket, err)
			return result, err
		}

		// A short page is the end of the feed; the next run starts over.
		done := len(items) < limit
		nextOffset := offset + len(items)
		cursor := strconv.Itoa(nextOffset)
		if done {
			cursor = ""
		}

		now := time.Now().UTC()
		err = s.Store.InTx(ctx, func(tx *gorm.DB) error {
			if err := s.Store.InsertPolymarketEventsTx(ctx, tx, plan.inserts, s.batchSize()); err != nil {
				return err
			}
			for _, upd := range plan.updates {
				if _, err := s.Store.UpdatePolymarketEventTx(ctx, tx, upd.key, upd.values); err != nil {
					return err
				}
			}
			return s.Store.SaveSyncStateTx(ctx, tx, &models.SyncState{
				Scope:         ScopePolymarket,
				Cursor:        strPtr(cursor),
				LastAttemptAt: &now,
				LastSuccessAt: &now,
				StatsJSON:     statsJSON(plan.stats()),
			})
		})
		if err != nil {
			s.writeSyncError(ctx, ScopePolymarket, err)
			return result, err
		}

		result.add(plan.result())
		result.Cursor = cursor
		offset = nextOffset
		if done {
			result.Done = true
			break
		}
	}
	s.logDone(result)
	return result, nil
}

func (s *FeedSyncService) existingKalshiTickers(ctx context.Context) func([]string) (map[string]struct{}, error) {
	return func(keys []string) (map[string]struct{}, error) {
		found := make(map[string]struct{}, len(keys))
		for _, chunk := range chunkStrings(keys, lookupChunkSize) {
			items, err := s.Store.FindKalshiEventsByTickers(ctx, chunk)
			if err != nil {
				return nil, err
			}
			for _, item := range items {
				if item.Ticker != nil {
					found[*item.Ticker] = struct{}{}
				}
			}
		}
		return found, nil
	}
}

func (s *FeedSyncService) existingConditionIDs(ctx context.Context) func([]string) (map[string]struct{}, error) {
	return func(keys []string) (map[string]struct{}, error) {
		found := make(map[string]struct{}, len(keys))
		for _, chunk := range chunkStrings(keys, lookupChunkSize) {
			items, err := s.Store.FindPolymarketEventsByConditionIDs(ctx, chunk)
			if err != nil {
				return nil, err
			}
			for _, item := range items {
				if item.ConditionID != nil {
					found[*item.ConditionID] = struct{}{}
				}
			}
		}
		return found, nil
	}
}

// writeSyncError records the failed attempt and keeps the last committed
// cursor so a resumed run picks up where the previous success stopped.
func (s *FeedSyncService) writeSyncError(ctx context.Context, scope string, err error) {
	if s.Logger != nil {
		s.Logger.Warn("feed sync failed", zap.String("scope", scope), zap.Error(err))
	}
	ctx = context.WithoutCancel(ctx)
	state := &models.SyncState{Scope: scope}
	if prev, getErr := s.Store.GetSyncState(ctx, scope); getErr == nil && prev != nil {
		state = prev
	}
	now := time.Now().UTC()
	state.LastAttemptAt = &now
	state.LastError = strPtr(err.Error())
	saveErr := s.Store.InTx(ctx, func(tx *gorm.DB) error {
		return s.Store.SaveSyncStateTx(ctx, tx, state)
	})
	if saveErr != nil && s.Logger != nil {
		s.Logger.Error("save sync state failed", zap.String("scope", scope), zap.Error(saveErr))
	}
}

func (s *FeedSyncService) logDone(result SyncResult) {
	if s.Logger == nil {
		return
	}
	s.Logger.Info("feed sync done",
		zap.String("scope", result.Scope),
		zap.Int("pages", result.Pages),
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("field_errors", result.FieldErrors),
		zap.Bool("done", result.Done),
	)
}

func (s *FeedSyncService) batchSize() int {
	if s.BatchSize >= 1 {
		return s.BatchSize
	}
	return defaultBatchSize
}

type keyedUpdate struct {
	key    string
	values map[string]any
}

type pagePlan[T any] struct {
	inserts     []T
	updates     []keyedUpdate
	received    int
	skipped     int
	fieldErrors int
}

func (p pagePlan[T]) result() SyncResult {
	return SyncResult{
		Pages:       1,
		Received:    p.received,
		Inserted:    len(p.inserts),
		Updated:     len(p.updates),
		Skipped:     p.skipped,
		FieldErrors: p.fieldErrors,
	}
}

func (p pagePlan[T]) stats() map[string]int {
	return map[string]int{
		"received":     p.received,
		"inserted":     len(p.inserts),
		"updated":      len(p.updates),
		"skipped":      p.skipped,
		"field_errors": p.fieldErrors,
	}
}

// planPage splits a page into inserts for unseen natural keys and coerced
// updates for known ones. Payloads without a natural key and repeats of a key
// within the page are skipped.
func planPage[T any](log *zap.Logger, table *schema.Table[T], payloads []map[string]any, existing func([]string) (map[string]struct{}, error)) (pagePlan[T], error) {
	plan := pagePlan[T]{received: len(payloads)}
	keys := make([]string, 0, len(payloads))
	byKey := make(map[string]map[string]any, len(payloads))
	for _, raw := range payloads {
		key, ok := table.Identity(raw)
		if !ok {
			plan.skipped++
			continue
		}
		if _, dup := byKey[key]; dup {
			plan.skipped++
			continue
		}
		byKey[key] = raw
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return plan, nil
	}
	known, err := existing(keys)
	if err != nil {
		return plan, err
	}

	fresh := make([]map[string]any, 0, len(keys))
	for _, key := range keys {
		raw := byKey[key]
		if _, ok := known[key]; !ok {
			fresh = append(fresh, raw)
			continue
		}
		values, fieldErrs := table.CoerceUpdates(raw)
		plan.fieldErrors += len(fieldErrs)
		logFieldErrors(log, table.Name, key, fieldErrs)
		if len(values) > 0 {
			plan.updates = append(plan.updates, keyedUpdate{key: key, values: values})
		}
	}
	inserts, res := coerceAll(log, table, fresh)
	plan.inserts = inserts
	plan.fieldErrors += res.FieldErrors
	return plan, nil
}

func logFieldErrors(log *zap.Logger, table, key string, fieldErrs []schema.FieldError) {
	if log == nil {
		return
	}
	for _, fe := range fieldErrs {
		log.Warn("field conversion failed",
			zap.String("table", table),
			zap.String("key", key),
			zap.String("field", fe.Key),
			zap.Any("value", fe.Value),
			zap.Error(fe.Err),
		)
	}
}

func chunkStrings(items []string, size int) [][]string {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	if len(items) <= size {
		return [][]string{items}
	}
	chunks := make([][]string, 0, (len(items)/size)+1)
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[i:end])
	}
	return chunks
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 200
	}
	return limit
}

func normalizeMaxPages(maxPages int) int {
	if maxPages <= 0 {
		return 50
	}
	return maxPages
}

func statsJSON(stats map[string]int) datatypes.JSON {
	if len(stats) == 0 {
		return datatypes.JSON([]byte("null"))
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return datatypes.JSON([]byte("null"))
	}
	return datatypes.JSON(payload)
}

func strPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
