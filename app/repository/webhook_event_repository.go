package repository

import (
	"time"

	"github.com/slotrix/slotrix/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// webhookEventRepository implements the WebhookEventRepository interface
type webhookEventRepository struct {
	db *gorm.DB
}

// NewWebhookEventRepository creates a new event ledger repository instance
func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &webhookEventRepository{db: db}
}

// GetByEventID retrieves a ledger row by its provider-scoped event id
func (r *webhookEventRepository) GetByEventID(provider, eventID string) (*models.WebhookEvent, error) {
	var event models.WebhookEvent
	err := r.db.Where("provider = ? AND event_id = ?", provider, eventID).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetOrCreateReceived inserts the "received" ledger row for this delivery if
// no row exists yet, then returns whatever row is stored. The insert uses
// ON CONFLICT DO NOTHING so a racing duplicate delivery never errors; the
// loser simply reads the winner's row.
func (r *webhookEventRepository) GetOrCreateReceived(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	event.Status = models.WebhookStatusReceived
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "event_id"},
		},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.WebhookEvent
	if err := r.db.Where("provider = ? AND event_id = ?", event.Provider, event.EventID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

// MarkProcessed transitions the row from received to processed. The status
// guard keeps the transition one-way: a row that is already processed is
// never touched again.
func (r *webhookEventRepository) MarkProcessed(provider, eventID string, at time.Time) error {
	return r.db.Model(&models.WebhookEvent{}).
		Where("provider = ? AND event_id = ? AND status = ?", provider, eventID, models.WebhookStatusReceived).
		Updates(map[string]interface{}{
			"status":       models.WebhookStatusProcessed,
			"processed_at": at,
		}).Error
}
