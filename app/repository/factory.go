package repository

import (
	"sync"

	"github.com/slotrix/slotrix/internal/pkg/database"
	"gorm.io/gorm"
)

// RepositoryFactory creates repository instances bound to one database handle.
// Handing it a transaction handle scopes every repository to that transaction,
// which is how the sync service keeps ledger and membership writes atomic.
type RepositoryFactory struct {
	db *gorm.DB
}

// NewRepositoryFactory creates a factory bound to the given handle.
func NewRepositoryFactory(db *gorm.DB) *RepositoryFactory {
	return &RepositoryFactory{db: db}
}

func (f *RepositoryFactory) GetUserRepository() UserRepository {
	return NewUserRepository(f.db)
}

func (f *RepositoryFactory) GetTenantRepository() TenantRepository {
	return NewTenantRepository(f.db)
}

func (f *RepositoryFactory) GetMembershipRepository() MembershipRepository {
	return NewMembershipRepository(f.db)
}

func (f *RepositoryFactory) GetWebhookEventRepository() WebhookEventRepository {
	return NewWebhookEventRepository(f.db)
}

func (f *RepositoryFactory) GetBookingRepository() BookingRepository {
	return NewBookingRepository(f.db)
}

func (f *RepositoryFactory) GetResourceRepository() ResourceRepository {
	return NewResourceRepository(f.db)
}

var (
	globalFactory     *RepositoryFactory
	globalFactoryOnce sync.Once
)

// GetGlobalFactory returns the singleton factory bound to the global database.
func GetGlobalFactory() *RepositoryFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewRepositoryFactory(database.GetDB())
	})
	return globalFactory
}
