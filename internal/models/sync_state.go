package models

import (
	"time"

	"gorm.io/datatypes"
)

// SyncState records feed pagination progress per scope ("kalshi", "polymarket").
type SyncState struct {
	Scope         string         `gorm:"primaryKey;type:text;comment:同步范围标识"`
	Cursor        *string        `gorm:"type:text;comment:分页游标"`
	LastSuccessAt *time.Time     `gorm:"comment:最近成功时间"`
	LastAttemptAt *time.Time     `gorm:"comment:最近尝试时间"`
	LastError     *string        `gorm:"type:text;comment:最近错误信息"`
	StatsJSON     datatypes.JSON `gorm:"comment:本轮统计JSON"`
}

func (SyncState) TableName() string {
	return "sync_state"
}
