package models

import "time"

// DailyStat is one aggregated counter bucket per metric and day, fed by the
// Redis counter flush.
type DailyStat struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Day       string    `gorm:"type:varchar(10);not null;index:ux_daily_stats_day_metric,unique,priority:1" json:"day"`
	Metric    string    `gorm:"type:varchar(64);not null;index:ux_daily_stats_day_metric,unique,priority:2" json:"metric"`
	Count     int64     `gorm:"not null;default:0" json:"count"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
