package repository

import (
	"context"

	"gorm.io/gorm"

	"eventbridge/internal/models"
)

// Transactor runs fn in one transaction. Inside fn only tx may be used.
type Transactor interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type KalshiEventRepository interface {
	InsertKalshiEventsTx(ctx context.Context, tx *gorm.DB, items []models.KalshiEvent, batchSize int) error
	CreateKalshiEvent(ctx context.Context, item *models.KalshiEvent) error
	UpdateKalshiEventTx(ctx context.Context, tx *gorm.DB, id uint64, updates map[string]any) (int64, error)
	UpdateKalshiEventByTickerTx(ctx context.Context, tx *gorm.DB, ticker string, updates map[string]any) (int64, error)
	// DeleteKalshiEvent removes the event and every mapping that references it.
	DeleteKalshiEvent(ctx context.Context, id uint64) (int64, error)
	GetKalshiEventByID(ctx context.Context, id uint64) (*models.KalshiEvent, error)
	GetKalshiEventByIDTx(ctx context.Context, tx *gorm.DB, id uint64) (*models.KalshiEvent, error)
	GetKalshiEventByTicker(ctx context.Context, ticker string) (*models.KalshiEvent, error)
	FindKalshiEventsByTickers(ctx context.Context, tickers []string) ([]models.KalshiEvent, error)
	ListKalshiEventsByEventTicker(ctx context.Context, eventTicker string) ([]models.KalshiEvent, error)
	ListKalshiEventsBySeriesTicker(ctx context.Context, seriesTicker string) ([]models.KalshiEvent, error)
}

type PolymarketEventRepository interface {
	InsertPolymarketEventsTx(ctx context.Context, tx *gorm.DB, items []models.PolymarketEvent, batchSize int) error
	CreatePolymarketEvent(ctx context.Context, item *models.PolymarketEvent) error
	UpdatePolymarketEventTx(ctx context.Context, tx *gorm.DB, conditionID string, updates map[string]any) (int64, error)
	// DeletePolymarketEvent removes the event and every mapping that references it.
	DeletePolymarketEvent(ctx context.Context, conditionID string) (int64, error)
	GetPolymarketEventByID(ctx context.Context, id uint64) (*models.PolymarketEvent, error)
	GetPolymarketEventByIDTx(ctx context.Context, tx *gorm.DB, id uint64) (*models.PolymarketEvent, error)
	GetPolymarketEventByConditionID(ctx context.Context, conditionID string) (*models.PolymarketEvent, error)
	FindPolymarketEventsByConditionIDs(ctx context.Context, conditionIDs []string) ([]models.PolymarketEvent, error)
}

type MappingRepository interface {
	CreateMappingTx(ctx context.Context, tx *gorm.DB, item *models.MappingEvent) error
	GetMapping(ctx context.Context, id uint64) (*models.MappingEvent, error)
	GetMappingTx(ctx context.Context, tx *gorm.DB, id uint64) (*models.MappingEvent, error)
	UpdateMappingTx(ctx context.Context, tx *gorm.DB, id uint64, updates map[string]any) (int64, error)
	DeleteMapping(ctx context.Context, id uint64) (int64, error)
	DeleteMappingsByPair(ctx context.Context, kalshiID, polymarketID uint64) (int64, error)
	ListMappingsByKalshiID(ctx context.Context, kalshiID uint64) ([]models.MappingEvent, error)
	ListMappingsByPolymarketID(ctx context.Context, polymarketID uint64) ([]models.MappingEvent, error)
	// ListMappingsByPair preloads both parent events.
	ListMappingsByPair(ctx context.Context, kalshiID, polymarketID uint64) ([]models.MappingEvent, error)
	ListRelatedKalshiEvents(ctx context.Context, polymarketID uint64) ([]models.KalshiEvent, error)
	ListRelatedPolymarketEvents(ctx context.Context, kalshiID uint64) ([]models.PolymarketEvent, error)
	ListKalshiTickers(ctx context.Context) ([]string, error)
	ListClobTokenIDs(ctx context.Context) ([]string, error)
}

type SyncStateRepository interface {
	GetSyncState(ctx context.Context, scope string) (*models.SyncState, error)
	SaveSyncStateTx(ctx context.Context, tx *gorm.DB, state *models.SyncState) error
	ListSyncStates(ctx context.Context) ([]models.SyncState, error)
}

// Repository is the data-access handle shared by the services.
type Repository interface {
	Transactor
	KalshiEventRepository
	PolymarketEventRepository
	MappingRepository
	SyncStateRepository
}
