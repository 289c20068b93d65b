package repository

import (
	"strings"
	"time"

	"github.com/slotrix/slotrix/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetByClerkID retrieves a user by their provider-assigned id
func (r *userRepository) GetByClerkID(clerkUserID string) (*models.User, error) {
	var user models.User
	err := r.db.Where("clerk_user_id = ?", clerkUserID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Upsert creates the user row on first sight and overwrites the synced
// attributes on every later delivery. The clerk_user_id is the conflict key.
func (r *userRepository) Upsert(user *models.User) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "clerk_user_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"first_name",
			"last_name",
			"email",
			"avatar_url",
			"deleted",
			"last_synced_at",
			"updated_at",
		}),
	}).Create(user).Error; err != nil {
		return err
	}

	// Ensure ID is populated after upsert.
	return r.db.Where("clerk_user_id = ?", user.ClerkUserID).First(user).Error
}

// MarkDeleted flags the user as removed on the provider side. The row is kept.
func (r *userRepository) MarkDeleted(clerkUserID string, at time.Time) error {
	id := strings.TrimSpace(clerkUserID)
	if id == "" {
		return gorm.ErrRecordNotFound
	}
	return r.db.Model(&models.User{}).
		Where("clerk_user_id = ?", id).
		Updates(map[string]interface{}{"deleted": true, "last_synced_at": at}).Error
}

// Count returns the total number of synced users
func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
