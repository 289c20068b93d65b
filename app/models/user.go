package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// User mirrors the identity provider's view of a person. Rows are created and
// mutated exclusively by the identity sync service; everything else treats
// them as read-only.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ClerkUserID  string     `gorm:"uniqueIndex;type:varchar(64);not null" json:"clerk_user_id" validate:"required,max=64"`
	FirstName    string     `gorm:"type:varchar(150);default:null" json:"first_name" validate:"max=150"`
	LastName     string     `gorm:"type:varchar(150);default:null" json:"last_name" validate:"max=150"`
	Email        string     `gorm:"type:varchar(200);index" json:"email" validate:"omitempty,email,max=200"`
	AvatarURL    string     `gorm:"type:varchar(255);default:null" json:"avatar_url" validate:"max=255"`
	Deleted      bool       `gorm:"default:false;index" json:"deleted"`
	LastSyncedAt *time.Time `gorm:"type:timestamp;default:null" json:"last_synced_at"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// DisplayName joins the name parts the provider gave us, falling back to the
// provider user id when both are empty.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.ClerkUserID
	}
	return name
}

// IsActive reports whether the provider still considers this user to exist.
func (u *User) IsActive() bool {
	return !u.Deleted
}
