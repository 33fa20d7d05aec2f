package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventbridge/internal/client/kalshi"
	polymarketgamma "eventbridge/internal/client/polymarket/gamma"
)

type kalshiFeedServer struct {
	*httptest.Server
	yesBid  atomic.Int64
	fail    atomic.Bool
	cursors chan string
}

func newKalshiFeedServer(t *testing.T) *kalshiFeedServer {
	t.Helper()
	s := &kalshiFeedServer{cursors: make(chan string, 16)}
	s.yesBid.Store(10)
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.fail.Load() {
			http.Error(w, "upstream down", http.StatusBadGateway)
			return
		}
		cursor := r.URL.Query().Get("cursor")
		select {
		case s.cursors <- cursor:
		default:
		}
		bid := s.yesBid.Load()
		var body map[string]any
		switch cursor {
		case "":
			body = map[string]any{
				"cursor": "page-2",
				"markets": []map[string]any{
					{"ticker": "KX-A", "event_ticker": "KX", "yes_bid": bid, "status": "active"},
					{"ticker": "KX-B", "event_ticker": "KX", "yes_bid": bid},
					{"ticker": "KX-B", "event_ticker": "KX", "yes_bid": 99},
					{"event_ticker": "KX"},
				},
			}
		case "page-2":
			body = map[string]any{
				"cursor":  "",
				"markets": []map[string]any{{"ticker": "KX-C", "event_ticker": "KX", "yes_bid": bid}},
			}
		default:
			body = map[string]any{"cursor": "", "markets": []map[string]any{}}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(s.Close)
	return s
}

func newGammaFeedServer(t *testing.T, total int, delay time.Duration) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if delay > 0 {
			time.Sleep(delay)
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		items := []map[string]any{}
		for i := offset; i < total && len(items) < limit; i++ {
			items = append(items, map[string]any{
				"conditionId":  fmt.Sprintf("0x%02d", i),
				"outcomes":     `["Yes","No"]`,
				"clobTokenIds": fmt.Sprintf(`["y%d","n%d"]`, i, i),
				"volume":       "100.5",
				"createdAt":    "2024-03-01T12:00:00Z",
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(items)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSyncKalshiInsertsThenRefreshes(t *testing.T) {
	store := newTestStore(t)
	feed := newKalshiFeedServer(t)
	svc := &FeedSyncService{
		Store:  store,
		Kalshi: kalshi.NewClient(feed.Client(), feed.URL),
		Logger: nopLogger(),
	}
	ctx := context.Background()

	res, err := svc.Sync(ctx, SyncOptions{Scope: ScopeKalshi, Limit: 4, MaxPages: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, 5, res.Received)
	assert.Equal(t, 3, res.Inserted)
	assert.Equal(t, 0, res.Updated)
	assert.Equal(t, 2, res.Skipped)
	assert.True(t, res.Done)

	feed.yesBid.Store(55)
	res, err = svc.Sync(ctx, SyncOptions{Scope: ScopeKalshi, Limit: 4, MaxPages: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 3, res.Updated)

	rows, err := store.ListKalshiEventsByEventTicker(ctx, "KX")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, int64(55), *row.YesBid, *row.Ticker)
	}

	state, err := store.GetSyncState(ctx, ScopeKalshi)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Nil(t, state.Cursor)
	assert.Nil(t, state.LastError)
	require.NotNil(t, state.LastSuccessAt)

	var stats map[string]int
	require.NoError(t, json.Unmarshal(state.StatsJSON, &stats))
	assert.Equal(t, 1, stats["updated"])
}

func TestSyncKalshiResumesFromCursor(t *testing.T) {
	store := newTestStore(t)
	feed := newKalshiFeedServer(t)
	svc := &FeedSyncService{Store: store, Kalshi: kalshi.NewClient(feed.Client(), feed.URL), Logger: nopLogger()}
	ctx := context.Background()

	res, err := svc.Sync(ctx, SyncOptions{Scope: ScopeKalshi, MaxPages: 1})
	require.NoError(t, err)
	assert.False(t, res.Done)
	assert.Equal(t, "page-2", res.Cursor)
	assert.Equal(t, "", <-feed.cursors)

	res, err = svc.Sync(ctx, SyncOptions{Scope: ScopeKalshi, MaxPages: 1, Resume: true})
	require.NoError(t, err)
	assert.True(t, res.Done)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, "page-2", <-feed.cursors)
}

func TestSyncFailureKeepsCursor(t *testing.T) {
	store := newTestStore(t)
	feed := newKalshiFeedServer(t)
	svc := &FeedSyncService{Store: store, Kalshi: kalshi.NewClient(feed.Client(), feed.URL), Logger: nopLogger()}
	ctx := context.Background()

	_, err := svc.Sync(ctx, SyncOptions{Scope: ScopeKalshi, MaxPages: 1})
	require.NoError(t, err)

	feed.fail.Store(true)
	_, err = svc.Sync(ctx, SyncOptions{Scope: ScopeKalshi, MaxPages: 1, Resume: true})
	require.Error(t, err)
	var apiErr *kalshi.APIError
	assert.ErrorAs(t, err, &apiErr)

	state, err := store.GetSyncState(ctx, ScopeKalshi)
	require.NoError(t, err)
	require.NotNil(t, state)
	require.NotNil(t, state.Cursor)
	assert.Equal(t, "page-2", *state.Cursor)
	require.NotNil(t, state.LastError)
	assert.Contains(t, *state.LastError, "502")
}

func TestSyncPolymarketPagesByOffset(t *testing.T) {
	store := newTestStore(t)
	gamma := newGammaFeedServer(t, 5, 0)
	svc := &FeedSyncService{Store: store, Gamma: polymarketgamma.NewClient(gamma.Client(), gamma.URL), Logger: nopLogger()}
	ctx := context.Background()

	res, err := svc.Sync(ctx, SyncOptions{Scope: ScopePolymarket, Limit: 2, MaxPages: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Pages)
	assert.Equal(t, 5, res.Inserted)
	assert.True(t, res.Done)
	assert.Equal(t, "", res.Cursor)

	got, err := store.GetPolymarketEventByConditionID(ctx, "0x03")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `["y3","n3"]`, *got.ClobTokenIDs)
	require.NotNil(t, got.ExternalCreatedAt)
	assert.Equal(t, 2024, got.ExternalCreatedAt.UTC().Year())

	res, err = svc.Sync(ctx, SyncOptions{Scope: ScopePolymarket, Limit: 2, MaxPages: 1, Resume: true})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Updated)
	assert.Equal(t, "2", res.Cursor)
}

func TestSyncAllRunsBothVenues(t *testing.T) {
	store := newTestStore(t)
	feed := newKalshiFeedServer(t)
	gamma := newGammaFeedServer(t, 3, 0)
	svc := &FeedSyncService{
		Store:     store,
		Kalshi:    kalshi.NewClient(feed.Client(), feed.URL),
		Gamma:     polymarketgamma.NewClient(gamma.Client(), gamma.URL),
		Logger:    nopLogger(),
		BatchSize: 2,
	}

	res, err := svc.Sync(context.Background(), SyncOptions{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, ScopeAll, res.Scope)
	assert.Equal(t, 6, res.Inserted)
	assert.True(t, res.Done)

	states, err := store.ListSyncStates(context.Background())
	require.NoError(t, err)
	assert.Len(t, states, 2)
}

func TestSyncAllKeepsHealthyVenueGoing(t *testing.T) {
	store := newTestStore(t)
	feed := newKalshiFeedServer(t)
	feed.fail.Store(true)
	gamma := newGammaFeedServer(t, 3, 300*time.Millisecond)
	svc := &FeedSyncService{
		Store:  store,
		Kalshi: kalshi.NewClient(feed.Client(), feed.URL),
		Gamma:  polymarketgamma.NewClient(gamma.Client(), gamma.URL),
		Logger: nopLogger(),
	}
	ctx := context.Background()

	res, err := svc.Sync(ctx, SyncOptions{Limit: 10})
	require.Error(t, err)
	var apiErr *kalshi.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 3, res.Inserted)
	assert.False(t, res.Done)

	poly, err := store.GetSyncState(ctx, ScopePolymarket)
	require.NoError(t, err)
	require.NotNil(t, poly)
	assert.Nil(t, poly.LastError)
	require.NotNil(t, poly.LastSuccessAt)

	kal, err := store.GetSyncState(ctx, ScopeKalshi)
	require.NoError(t, err)
	require.NotNil(t, kal)
	require.NotNil(t, kal.LastError)
	assert.Contains(t, *kal.LastError, "502")

	got, err := store.GetPolymarketEventByConditionID(ctx, "0x02")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestSyncRejectsUnknownScope(t *testing.T) {
	svc := &FeedSyncService{Store: newTestStore(t), Logger: nopLogger()}
	_, err := svc.Sync(context.Background(), SyncOptions{Scope: "betfair"})
	require.Error(t, err)

	_, err = svc.Sync(context.Background(), SyncOptions{Scope: ScopeKalshi})
	require.Error(t, err)
}

func TestChunkStrings(t *testing.T) {
	assert.Nil(t, chunkStrings(nil, 10))
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, chunkStrings([]string{"a", "b", "c"}, 2))
	assert.Equal(t, [][]string{{"a"}}, chunkStrings([]string{"a"}, 1000))
}
