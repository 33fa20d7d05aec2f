package models

// MappingEvent links one Polymarket outcome token to a Kalshi market.
// KalshiTicker is copied from the Kalshi parent when the row is created.
type MappingEvent struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement;comment:自增主键"`
	KalshiID     uint64 `gorm:"index;not null;comment:关联Kalshi市场ID"`
	PolymarketID uint64 `gorm:"index;not null;comment:关联Polymarket市场ID"`
	Outcome      string `gorm:"column:polymarket_outcome;type:text;not null;comment:结果名称"`
	ClobTokenID  string `gorm:"column:polymarket_clob_token_id;type:text;not null;comment:结果对应的CLOB合约ID"`
	KalshiTicker string `gorm:"column:kalshi_ticker;type:text;not null;comment:Kalshi市场代码快照"`

	KalshiEvent     *KalshiEvent     `gorm:"foreignKey:KalshiID;constraint:OnDelete:CASCADE"`
	PolymarketEvent *PolymarketEvent `gorm:"foreignKey:PolymarketID;constraint:OnDelete:CASCADE"`
}

func (MappingEvent) TableName() string {
	return "mapping_events"
}
