package models

import "time"

// PolymarketEvent is one market row from the Polymarket Gamma API.
// Outcomes and ClobTokenIDs hold co-indexed JSON arrays.
type PolymarketEvent struct {
	ID                          uint64     `gorm:"primaryKey;autoIncrement;comment:自增主键"`
	ConditionID                 *string    `gorm:"column:condition_id;type:text;uniqueIndex;comment:条件ID"`
	Slug                        *string    `gorm:"type:text;comment:URL友好标识"`
	Ticker                      *string    `gorm:"type:text"`
	StartDate                   *string    `gorm:"type:text"`
	EndDate                     *string    `gorm:"type:text"`
	Description                 *string    `gorm:"type:text;comment:市场描述"`
	Outcomes                    *string    `gorm:"type:text;comment:结果名称JSON数组"`
	OutcomePrices               *string    `gorm:"type:text"`
	ClobTokenIDs                *string    `gorm:"column:clob_token_ids;type:text;comment:CLOB合约ID JSON数组"`
	Volume                      *float64   `gorm:"comment:成交量"`
	Active                      *bool      `gorm:"comment:是否活跃"`
	Closed                      *bool      `gorm:"comment:是否已关闭"`
	EnableOrderBook             *bool      `gorm:"column:enable_order_book"`
	OrderPriceMinTickSize       *float64   `gorm:"column:order_price_min_tick_size"`
	OrderMinSize                *int64     `gorm:"column:order_min_size"`
	AcceptingOrders             *bool      `gorm:"column:accepting_orders"`
	NegRisk                     *bool      `gorm:"column:neg_risk"`
	NegRiskMarketID             *string    `gorm:"column:neg_risk_market_id;type:text"`
	NegRiskRequestID            *string    `gorm:"column:neg_risk_request_id;type:text"`
	Ready                       *bool
	ClobRewardsAssetAddress     *string    `gorm:"column:clob_rewards_asset_address;type:text"`
	ClobRewardsRewardsAmount    *int64     `gorm:"column:clob_rewards_rewards_amount"`
	ClobRewardsRewardsDailyRate *int64     `gorm:"column:clob_rewards_rewards_daily_rate"`
	ClobRewardsStartDate        *time.Time `gorm:"column:clob_rewards_start_date;type:date"`
	ClobRewardsEndDate          *string    `gorm:"column:clob_rewards_end_date;type:text"`
	RewardsMinSize              *int64     `gorm:"column:rewards_min_size"`
	RewardsMaxSpread            *float64   `gorm:"column:rewards_max_spread"`
	AutomaticallyActive         *bool      `gorm:"column:automatically_active"`
	ClearBookOnStart            *bool      `gorm:"column:clear_book_on_start"`
	Tags                        *string    `gorm:"type:text"`
	Cyom                        *bool      `gorm:"column:cyom"`
	ShowAllOutcomes             *bool      `gorm:"column:show_all_outcomes"`
	EnableNegRisk               *bool      `gorm:"column:enable_neg_risk"`
	StartTime                   *time.Time `gorm:"column:start_time;type:timestamp;comment:开始时间(无时区)"`
	NegRiskAugmented            *bool      `gorm:"column:neg_risk_augmented"`
	CountryName                 *string    `gorm:"column:country_name;type:text"`
	ElectionType                *string    `gorm:"column:election_type;type:text"`
	PendingDeployment           *bool      `gorm:"column:pending_deployment"`
	ExternalCreatedAt           *time.Time `gorm:"column:external_created_at;comment:外部创建时间"`
	ExternalUpdatedAt           *time.Time `gorm:"column:external_updated_at;index;comment:外部更新时间"`
}

func (PolymarketEvent) TableName() string {
	return "polymarket_events"
}
