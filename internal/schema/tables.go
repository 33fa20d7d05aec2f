package schema

import (
	"time"

	"eventbridge/internal/models"
)

type (
	kalshi = models.KalshiEvent
	poly   = models.PolymarketEvent
)

// KalshiEvents accepts the Kalshi market payload keys (snake_case).
var KalshiEvents = NewTable[kalshi]("kalshi_events", "ticker",
	Text("ticker", "ticker", func(e *kalshi) **string { return &e.Ticker }),
	Text("event_ticker", "event_ticker", func(e *kalshi) **string { return &e.EventTicker }),
	Text("series_ticker", "series_ticker", func(e *kalshi) **string { return &e.SeriesTicker }),
	Text("sub_title", "sub_title", func(e *kalshi) **string { return &e.SubTitle }),
	Text("subtitle", "subtitle", func(e *kalshi) **string { return &e.Subtitle }),
	Text("title", "title", func(e *kalshi) **string { return &e.Title }),
	Text("collateral_return_type", "collateral_return_type", func(e *kalshi) **string { return &e.CollateralReturnType }),
	Bool("mutually_exclusive", "mutually_exclusive", func(e *kalshi) **bool { return &e.MutuallyExclusive }),
	Text("category", "category", func(e *kalshi) **string { return &e.Category }),
	Text("market_type", "market_type", func(e *kalshi) **string { return &e.MarketType }),
	Text("yes_sub_title", "yes_sub_title", func(e *kalshi) **string { return &e.YesSubTitle }),
	Text("no_sub_title", "no_sub_title", func(e *kalshi) **string { return &e.NoSubTitle }),
	Text("open_time", "open_time", func(e *kalshi) **string { return &e.OpenTime }),
	Text("close_time", "close_time", func(e *kalshi) **string { return &e.CloseTime }),
	Text("expected_expiration_time", "expected_expiration_time", func(e *kalshi) **string { return &e.ExpectedExpirationTime }),
	Text("expiration_time", "expiration_time", func(e *kalshi) **string { return &e.ExpirationTime }),
	Text("latest_expiration_time", "latest_expiration_time", func(e *kalshi) **string { return &e.LatestExpirationTime }),
	Int("settlement_timer_seconds", "settlement_timer_seconds", func(e *kalshi) **int64 { return &e.SettlementTimerSeconds }),
	Text("status", "status", func(e *kalshi) **string { return &e.Status }),
	Text("response_price_units", "response_price_units", func(e *kalshi) **string { return &e.ResponsePriceUnits }),
	Int("notional_value", "notional_value", func(e *kalshi) **int64 { return &e.NotionalValue }),
	Int("tick_size", "tick_size", func(e *kalshi) **int64 { return &e.TickSize }),
	Int("yes_bid", "yes_bid", func(e *kalshi) **int64 { return &e.YesBid }),
	Int("yes_ask", "yes_ask", func(e *kalshi) **int64 { return &e.YesAsk }),
	Int("no_bid", "no_bid", func(e *kalshi) **int64 { return &e.NoBid }),
	Int("no_ask", "no_ask", func(e *kalshi) **int64 { return &e.NoAsk }),
	Int("last_price", "last_price", func(e *kalshi) **int64 { return &e.LastPrice }),
	Int("previous_yes_bid", "previous_yes_bid", func(e *kalshi) **int64 { return &e.PreviousYesBid }),
	Int("previous_yes_ask", "previous_yes_ask", func(e *kalshi) **int64 { return &e.PreviousYesAsk }),
	Int("previous_price", "previous_price", func(e *kalshi) **int64 { return &e.PreviousPrice }),
	Int("open_interest", "open_interest", func(e *kalshi) **int64 { return &e.OpenInterest }),
	Text("result", "result", func(e *kalshi) **string { return &e.Result }),
	Bool("can_close_early", "can_close_early", func(e *kalshi) **bool { return &e.CanCloseEarly }),
	Text("expiration_value", "expiration_value", func(e *kalshi) **string { return &e.ExpirationValue }),
	Int("risk_limit_cents", "risk_limit_cents", func(e *kalshi) **int64 { return &e.RiskLimitCents }),
	Text("rules_primary", "rules_primary", func(e *kalshi) **string { return &e.RulesPrimary }),
	Text("rules_secondary", "rules_secondary", func(e *kalshi) **string { return &e.RulesSecondary }),
)

// PolymarketEvents accepts the Gamma market payload keys (camelCase).
var PolymarketEvents = NewTable[poly]("polymarket_events", "conditionId",
	Text("conditionId", "condition_id", func(e *poly) **string { return &e.ConditionID }),
	Text("slug", "slug", func(e *poly) **string { return &e.Slug }),
	Text("ticker", "ticker", func(e *poly) **string { return &e.Ticker }),
	Text("startDate", "start_date", func(e *poly) **string { return &e.StartDate }),
	Text("endDate", "end_date", func(e *poly) **string { return &e.EndDate }),
	Text("description", "description", func(e *poly) **string { return &e.Description }),
	Text("outcomes", "outcomes", func(e *poly) **string { return &e.Outcomes }),
	Text("outcomePrices", "outcome_prices", func(e *poly) **string { return &e.OutcomePrices }),
	Text("clobTokenIds", "clob_token_ids", func(e *poly) **string { return &e.ClobTokenIDs }),
	Float("volume", "volume", func(e *poly) **float64 { return &e.Volume }),
	Bool("active", "active", func(e *poly) **bool { return &e.Active }),
	Bool("closed", "closed", func(e *poly) **bool { return &e.Closed }),
	Bool("enableOrderBook", "enable_order_book", func(e *poly) **bool { return &e.EnableOrderBook }),
	Float("orderPriceMinTickSize", "order_price_min_tick_size", func(e *poly) **float64 { return &e.OrderPriceMinTickSize }),
	Int("orderMinSize", "order_min_size", func(e *poly) **int64 { return &e.OrderMinSize }),
	Bool("acceptingOrders", "accepting_orders", func(e *poly) **bool { return &e.AcceptingOrders }),
	Bool("negRisk", "neg_risk", func(e *poly) **bool { return &e.NegRisk }),
	Text("negRiskMarketID", "neg_risk_market_id", func(e *poly) **string { return &e.NegRiskMarketID }),
	Text("negRiskRequestID", "neg_risk_request_id", func(e *poly) **string { return &e.NegRiskRequestID }),
	Bool("ready", "ready", func(e *poly) **bool { return &e.Ready }),
	Text("clobRewardsAssetAddress", "clob_rewards_asset_address", func(e *poly) **string { return &e.ClobRewardsAssetAddress }),
	Int("clobRewardsRewardsAmount", "clob_rewards_rewards_amount", func(e *poly) **int64 { return &e.ClobRewardsRewardsAmount }),
	Int("clobRewardsRewardsDailyRate", "clob_rewards_rewards_daily_rate", func(e *poly) **int64 { return &e.ClobRewardsRewardsDailyRate }),
	Date("clobRewardsStartDate", "clob_rewards_start_date", func(e *poly) **time.Time { return &e.ClobRewardsStartDate }),
	Text("clobRewardsEndDate", "clob_rewards_end_date", func(e *poly) **string { return &e.ClobRewardsEndDate }),
	Int("rewardsMinSize", "rewards_min_size", func(e *poly) **int64 { return &e.RewardsMinSize }),
	Float("rewardsMaxSpread", "rewards_max_spread", func(e *poly) **float64 { return &e.RewardsMaxSpread }),
	Bool("automaticallyActive", "automatically_active", func(e *poly) **bool { return &e.AutomaticallyActive }),
	Bool("clearBookOnStart", "clear_book_on_start", func(e *poly) **bool { return &e.ClearBookOnStart }),
	Text("tags", "tags", func(e *poly) **string { return &e.Tags }),
	Bool("cyom", "cyom", func(e *poly) **bool { return &e.Cyom }),
	Bool("showAllOutcomes", "show_all_outcomes", func(e *poly) **bool { return &e.ShowAllOutcomes }),
	Bool("enableNegRisk", "enable_neg_risk", func(e *poly) **bool { return &e.EnableNegRisk }),
	Timestamp("startTime", "start_time", false, func(e *poly) **time.Time { return &e.StartTime }),
	Bool("negRiskAugmented", "neg_risk_augmented", func(e *poly) **bool { return &e.NegRiskAugmented }),
	Text("countryName", "country_name", func(e *poly) **string { return &e.CountryName }),
	Text("electionType", "election_type", func(e *poly) **string { return &e.ElectionType }),
	Bool("pendingDeployment", "pending_deployment", func(e *poly) **bool { return &e.PendingDeployment }),
	Timestamp("createdAt", "external_created_at", true, func(e *poly) **time.Time { return &e.ExternalCreatedAt }),
	Timestamp("updatedAt", "external_updated_at", true, func(e *poly) **time.Time { return &e.ExternalUpdatedAt }),
)
