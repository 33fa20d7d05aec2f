package models

// KalshiEvent is one market row from the Kalshi trade API. Ticker is the
// natural key; EventTicker and SeriesTicker group markets.
type KalshiEvent struct {
	ID                     uint64  `gorm:"primaryKey;autoIncrement;comment:自增主键"`
	Ticker                 *string `gorm:"type:text;uniqueIndex;comment:市场代码"`
	EventTicker            *string `gorm:"type:text;index;comment:事件代码"`
	SeriesTicker           *string `gorm:"type:text;index;comment:系列代码"`
	SubTitle               *string `gorm:"column:sub_title;type:text"`
	Subtitle               *string `gorm:"column:subtitle;type:text"`
	Title                  *string `gorm:"type:text;comment:标题"`
	CollateralReturnType   *string `gorm:"type:text"`
	MutuallyExclusive      *bool   `gorm:"comment:是否互斥"`
	Category               *string `gorm:"type:text"`
	MarketType             *string `gorm:"type:text"`
	YesSubTitle            *string `gorm:"column:yes_sub_title;type:text"`
	NoSubTitle             *string `gorm:"column:no_sub_title;type:text"`
	OpenTime               *string `gorm:"type:text;comment:开盘时间"`
	CloseTime              *string `gorm:"type:text;comment:收盘时间"`
	ExpectedExpirationTime *string `gorm:"type:text"`
	ExpirationTime         *string `gorm:"type:text"`
	LatestExpirationTime   *string `gorm:"type:text"`
	SettlementTimerSeconds *int64
	Status                 *string `gorm:"type:text;comment:状态"`
	ResponsePriceUnits     *string `gorm:"type:text"`
	NotionalValue          *int64
	TickSize               *int64
	YesBid                 *int64
	YesAsk                 *int64
	NoBid                  *int64
	NoAsk                  *int64
	LastPrice              *int64
	PreviousYesBid         *int64
	PreviousYesAsk         *int64
	PreviousPrice          *int64
	OpenInterest           *int64
	Result                 *string `gorm:"type:text;comment:结算结果"`
	CanCloseEarly          *bool
	ExpirationValue        *string `gorm:"type:text"`
	RiskLimitCents         *int64
	RulesPrimary           *string `gorm:"type:text"`
	RulesSecondary         *string `gorm:"type:text"`
}

func (KalshiEvent) TableName() string {
	return "kalshi_events"
}
