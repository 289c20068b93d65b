package identitysync

import (
	"time"

	"github.com/slotrix/slotrix/app/models"
	"github.com/slotrix/slotrix/app/repository"
	"gorm.io/gorm"
)

// BeginLedgerEntry records the delivery in the event ledger inside the given
// transaction and reports whether it was already fully processed. The
// "received" row is written before any domain work so a concurrent duplicate
// delivery sees it; a delivery that crashed after "received" is simply redone
// on the next attempt.
func BeginLedgerEntry(tx *gorm.DB, entry *models.WebhookEvent) (alreadyProcessed bool, err error) {
	ledger := repository.NewWebhookEventRepository(tx)
	_, stored, err := ledger.GetOrCreateReceived(entry)
	if err != nil {
		return false, err
	}
	return stored.Processed(), nil
}

// CompleteLedgerEntry flips the ledger row to processed. It runs last in the
// transaction, after the domain mutations, so a rollback takes the ledger
// write with it and only the final successful attempt commits the row.
func CompleteLedgerEntry(tx *gorm.DB, provider, eventID string) error {
	return repository.NewWebhookEventRepository(tx).MarkProcessed(provider, eventID, time.Now())
}
