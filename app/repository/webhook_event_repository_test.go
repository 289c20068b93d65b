package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/slotrix/slotrix/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.TenantMembership{},
		&models.WebhookEvent{},
	))
	return db
}

func TestGetOrCreateReceivedDeduplicates(t *testing.T) {
	db := newTestDB(t)
	repo := NewWebhookEventRepository(db)

	created, stored, err := repo.GetOrCreateReceived(&models.WebhookEvent{
		Provider:  models.WebhookProviderClerk,
		EventID:   "evt_1",
		EventType: "user.created",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.WebhookStatusReceived, stored.Status)

	created, stored2, err := repo.GetOrCreateReceived(&models.WebhookEvent{
		Provider:  models.WebhookProviderClerk,
		EventID:   "evt_1",
		EventType: "user.created",
	})
	require.NoError(t, err)
	assert.False(t, created, "second delivery must not win a new row")
	assert.Equal(t, stored.ID, stored2.ID)
}

func TestGetOrCreateReceivedScopesByProvider(t *testing.T) {
	db := newTestDB(t)
	repo := NewWebhookEventRepository(db)

	created, _, err := repo.GetOrCreateReceived(&models.WebhookEvent{
		Provider: models.WebhookProviderClerk, EventID: "evt_1", EventType: "user.created",
	})
	require.NoError(t, err)
	require.True(t, created)

	created, _, err = repo.GetOrCreateReceived(&models.WebhookEvent{
		Provider: models.WebhookProviderCheckout, EventID: "evt_1", EventType: "checkout.completed",
	})
	require.NoError(t, err)
	assert.True(t, created, "the same event id under another provider is a distinct delivery")
}

func TestMarkProcessedIsOneWay(t *testing.T) {
	db := newTestDB(t)
	repo := NewWebhookEventRepository(db)

	_, _, err := repo.GetOrCreateReceived(&models.WebhookEvent{
		Provider: models.WebhookProviderClerk, EventID: "evt_1", EventType: "user.created",
	})
	require.NoError(t, err)

	first := time.Now().Add(-time.Minute)
	require.NoError(t, repo.MarkProcessed(models.WebhookProviderClerk, "evt_1", first))

	stored, err := repo.GetByEventID(models.WebhookProviderClerk, "evt_1")
	require.NoError(t, err)
	require.True(t, stored.Processed())
	require.NotNil(t, stored.ProcessedAt)

	// A second call finds no row in "received" and must leave the
	// original processing timestamp alone.
	require.NoError(t, repo.MarkProcessed(models.WebhookProviderClerk, "evt_1", time.Now()))
	again, err := repo.GetByEventID(models.WebhookProviderClerk, "evt_1")
	require.NoError(t, err)
	assert.Equal(t, stored.ProcessedAt.Unix(), again.ProcessedAt.Unix())
}
