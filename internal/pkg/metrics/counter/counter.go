package counter

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/slotrix/slotrix/app/models"
	"github.com/slotrix/slotrix/internal/pkg/cache"
	"github.com/slotrix/slotrix/internal/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	webhookOutcomesKey = "webhook:counters:outcomes"
	bookingCreatedKey  = "booking:counters:created"
)

// Webhook outcome labels recorded per provider.
const (
	OutcomeProcessed = "processed"
	OutcomeDuplicate = "duplicate"
	OutcomeIgnored   = "ignored"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
)

// AddWebhookOutcome increments the pending counter for one webhook outcome in Redis
func AddWebhookOutcome(provider, outcome string) error {
	ctx := context.Background()
	field := fmt.Sprintf("webhook:%s:%s", provider, outcome)
	return cache.GetClient().HIncrBy(ctx, webhookOutcomesKey, field, 1).Err()
}

// AddBookingCreated increments the pending created-bookings counter for a tenant in Redis
func AddBookingCreated(tenantID string) error {
	ctx := context.Background()
	field := fmt.Sprintf("booking:%s:created", tenantID)
	return cache.GetClient().HIncrBy(ctx, bookingCreatedKey, field, 1).Err()
}

// FlushAll flushes all pending counters into the daily_stats table
func FlushAll() error {
	if err := flushHashToDailyStats(webhookOutcomesKey); err != nil {
		return err
	}
	return flushHashToDailyStats(bookingCreatedKey)
}

// Uses RENAME to a temporary key for atomic drain without losing in-flight increments.
func flushHashToDailyStats(redisKey string) error {
	ctx := context.Background()
	rdb := cache.GetClient()

	// Atomically move the hash to a temp key for draining
	tmpKey := fmt.Sprintf("%s:tmp:%d", redisKey, time.Now().UnixNano())
	if err := rdb.Do(ctx, "RENAME", redisKey, tmpKey).Err(); err != nil {
		// If key does not exist, nothing to flush
		if strings.Contains(strings.ToLower(err.Error()), "no such key") {
			return nil
		}
		if err.Error() == "redis: nil" {
			return nil
		}
		return err
	}

	// Ensure cleanup of tmpKey even if later steps fail
	defer rdb.Del(ctx, tmpKey)

	data, err := rdb.HGetAll(ctx, tmpKey).Result()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	day := time.Now().Format("2006-01-02")
	metrics := make([]string, 0, len(data))
	for metric := range data {
		metrics = append(metrics, metric)
	}
	// Stable write order keeps concurrent flushes deadlock-free
	sort.Strings(metrics)

	db := database.GetDB()
	for _, metric := range metrics {
		var inc int64
		if _, err := fmt.Sscan(data[metric], &inc); err != nil || inc == 0 {
			continue
		}
		stat := &models.DailyStat{Day: day, Metric: metric, Count: inc}
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "day"},
				{Name: "metric"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count": gorm.Expr("count + ?", inc),
			}),
		}).Create(stat).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// StartFlusher flushes counters on the given interval until the context ends.
func StartFlusher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := FlushAll(); err != nil {
					log.Printf("counter flush failed: %v", err)
				}
			}
		}
	}()
}
