package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventbridge/internal/models"
)

func TestCreateMappingResolvesToken(t *testing.T) {
	store := newTestStore(t)
	svc := &MappingService{Store: store, Logger: nopLogger()}
	ctx := context.Background()
	k, p := seedEvents(t, store)

	m, err := svc.CreateMapping(ctx, k.ID, p.ID, "No")
	require.NoError(t, err)
	assert.Equal(t, "t2", m.ClobTokenID)
	assert.Equal(t, "KXRAIN-1", m.KalshiTicker)
	assert.Equal(t, "No", m.Outcome)

	rows, err := store.ListMappingsByPair(ctx, k.ID, p.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, m.ID, rows[0].ID)
}

func TestCreateMappingRejections(t *testing.T) {
	cases := []struct {
		name     string
		outcomes *string
		tokens   *string
		outcome  string
		want     error
	}{
		{name: "length mismatch", outcomes: ptr(`["Yes","No"]`), tokens: ptr(`["t1"]`), outcome: "Yes", want: ErrOutcomeLengthMismatch},
		{name: "malformed outcomes", outcomes: ptr(`Yes,No`), tokens: ptr(`["t1","t2"]`), outcome: "Yes", want: ErrMalformedOutcomes},
		{name: "null tokens", outcomes: ptr(`["Yes","No"]`), tokens: nil, outcome: "Yes", want: ErrMalformedOutcomes},
		{name: "unknown outcome", outcomes: ptr(`["Yes","No"]`), tokens: ptr(`["t1","t2"]`), outcome: "Maybe", want: ErrOutcomeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newTestStore(t)
			svc := &MappingService{Store: store, Logger: nopLogger()}
			ctx := context.Background()
			k := models.KalshiEvent{Ticker: ptr("KX-1")}
			p := models.PolymarketEvent{ConditionID: ptr("0x1"), Outcomes: tc.outcomes, ClobTokenIDs: tc.tokens}
			require.NoError(t, store.CreateKalshiEvent(ctx, &k))
			require.NoError(t, store.CreatePolymarketEvent(ctx, &p))

			_, err := svc.CreateMapping(ctx, k.ID, p.ID, tc.outcome)
			require.Error(t, err)
			assert.Equal(t, CodeValidation, CodeOf(err))
			assert.ErrorIs(t, err, tc.want)

			rows, err := store.ListMappingsByKalshiID(ctx, k.ID)
			require.NoError(t, err)
			assert.Empty(t, rows)
		})
	}
}

func TestCreateMappingUnknownOutcomeListsChoices(t *testing.T) {
	store := newTestStore(t)
	svc := &MappingService{Store: store, Logger: nopLogger()}
	k, p := seedEvents(t, store)

	_, err := svc.CreateMapping(context.Background(), k.ID, p.ID, "yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Yes, No")
}

func TestCreateMappingMissingParents(t *testing.T) {
	store := newTestStore(t)
	svc := &MappingService{Store: store, Logger: nopLogger()}
	ctx := context.Background()
	k, p := seedEvents(t, store)

	_, err := svc.CreateMapping(ctx, k.ID, p.ID+100, "Yes")
	assert.ErrorIs(t, err, ErrPolymarketEventMissing)

	_, err = svc.CreateMapping(ctx, k.ID+100, p.ID, "Yes")
	assert.ErrorIs(t, err, ErrKalshiEventMissing)

	blank := models.KalshiEvent{Title: ptr("no ticker")}
	require.NoError(t, store.CreateKalshiEvent(ctx, &blank))
	_, err = svc.CreateMapping(ctx, blank.ID, p.ID, "Yes")
	assert.ErrorIs(t, err, ErrKalshiTickerMissing)
	assert.Equal(t, CodeValidation, CodeOf(err))
}

func TestDuplicateMappingsAreAllowed(t *testing.T) {
	store := newTestStore(t)
	svc := &MappingService{Store: store, Logger: nopLogger()}
	ctx := context.Background()
	k, p := seedEvents(t, store)

	_, err := svc.CreateMapping(ctx, k.ID, p.ID, "Yes")
	require.NoError(t, err)
	_, err = svc.CreateMapping(ctx, k.ID, p.ID, "Yes")
	require.NoError(t, err)

	rows, err := store.ListMappingsByPair(ctx, k.ID, p.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestUpdateMappingParents(t *testing.T) {
	store := newTestStore(t)
	svc := &MappingService{Store: store, Logger: nopLogger()}
	ctx := context.Background()
	k, p := seedEvents(t, store)
	m, err := svc.CreateMapping(ctx, k.ID, p.ID, "No")
	require.NoError(t, err)

	k2 := models.KalshiEvent{Ticker: ptr("KXSNOW-1")}
	p2 := models.PolymarketEvent{ConditionID: ptr("0xdef"), Outcomes: ptr(`["No","Yes"]`), ClobTokenIDs: ptr(`["s1","s2"]`)}
	require.NoError(t, store.CreateKalshiEvent(ctx, &k2))
	require.NoError(t, store.CreatePolymarketEvent(ctx, &p2))

	require.NoError(t, svc.UpdateMappingParents(ctx, m.ID, &k2.ID, &p2.ID))

	got, err := store.GetMapping(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, k2.ID, got.KalshiID)
	assert.Equal(t, p2.ID, got.PolymarketID)
	assert.Equal(t, "KXSNOW-1", got.KalshiTicker)
	assert.Equal(t, "s1", got.ClobTokenID)
}

func TestUpdateMappingParentsRejections(t *testing.T) {
	store := newTestStore(t)
	svc := &MappingService{Store: store, Logger: nopLogger()}
	ctx := context.Background()
	k, p := seedEvents(t, store)
	m, err := svc.CreateMapping(ctx, k.ID, p.ID, "No")
	require.NoError(t, err)

	err = svc.UpdateMappingParents(ctx, m.ID, nil, nil)
	assert.ErrorIs(t, err, ErrNoFields)

	missing := uint64(999)
	err = svc.UpdateMappingParents(ctx, m.ID+1, &missing, nil)
	assert.Equal(t, CodeNotFound, CodeOf(err))

	err = svc.UpdateMappingParents(ctx, m.ID, &missing, nil)
	assert.ErrorIs(t, err, ErrKalshiEventMissing)

	noOutcome := models.PolymarketEvent{ConditionID: ptr("0x2"), Outcomes: ptr(`["Up","Down"]`), ClobTokenIDs: ptr(`["u","d"]`)}
	require.NoError(t, store.CreatePolymarketEvent(ctx, &noOutcome))
	err = svc.UpdateMappingParents(ctx, m.ID, nil, &noOutcome.ID)
	assert.ErrorIs(t, err, ErrOutcomeNotFound)

	got, err := store.GetMapping(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.PolymarketID)
	assert.Equal(t, "t2", got.ClobTokenID)
}

func TestDeleteMappings(t *testing.T) {
	store := newTestStore(t)
	svc := &MappingService{Store: store, Logger: nopLogger()}
	ctx := context.Background()
	k, p := seedEvents(t, store)

	first, err := svc.CreateMapping(ctx, k.ID, p.ID, "Yes")
	require.NoError(t, err)
	_, err = svc.CreateMapping(ctx, k.ID, p.ID, "No")
	require.NoError(t, err)
	_, err = svc.CreateMapping(ctx, k.ID, p.ID, "No")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMapping(ctx, first.ID))
	assert.Equal(t, CodeNotFound, CodeOf(svc.DeleteMapping(ctx, first.ID)))

	require.NoError(t, svc.DeleteMappingsByPair(ctx, k.ID, p.ID))
	assert.Equal(t, CodeNotFound, CodeOf(svc.DeleteMappingsByPair(ctx, k.ID, p.ID)))

	rows, err := store.ListMappingsByPair(ctx, k.ID, p.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDecodeStringArray_NullIsErrNullArray(t *testing.T) {
	for _, raw := range []*string{nil, ptr("null")} {
		if _, err := decodeStringArray(raw); err != errNullArray {
			t.Fatalf("raw=%v err=%v want errNullArray", raw, err)
		}
	}
	got, err := decodeStringArray(ptr(`["Yes","No"]`))
	if err != nil || len(got) != 2 {
		t.Fatalf("got=%v err=%v", got, err)
	}
}
