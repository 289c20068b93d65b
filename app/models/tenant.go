package models

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Tenant is an isolated customer organization. All bookings, resources and
// memberships are scoped by its public id.
type Tenant struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PublicID     string    `gorm:"uniqueIndex;type:varchar(64);not null" json:"public_id"`
	Name         string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Slug         string    `gorm:"uniqueIndex;type:varchar(150);not null" json:"slug" validate:"required,min=2,max=150"`
	APIKeyHash   string    `gorm:"type:varchar(64);index;default:null" json:"-"`
	APIKeyPrefix string    `gorm:"type:varchar(12);default:null" json:"api_key_prefix"`
	Active       bool      `gorm:"default:true;index" json:"active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *Tenant) Validate() error {
	v := validator.New()

	return v.Struct(t)
}

// NewTenant builds a tenant with a freshly minted public id.
func NewTenant(name, slug string) (*Tenant, error) {
	t := &Tenant{
		PublicID: "tnt_" + uuid.NewString(),
		Name:     name,
		Slug:     slug,
		Active:   true,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// IssueAPIKey generates a new API key for the tenant and stores only its hash.
// The plaintext key is returned once and never persisted.
func (t *Tenant) IssueAPIKey() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	key := "sk_" + hex.EncodeToString(b)
	t.APIKeyHash = HashAPIKey(key)
	t.APIKeyPrefix = key[:10]
	return key, nil
}

// RevokeAPIKey clears the stored key material.
func (t *Tenant) RevokeAPIKey() {
	t.APIKeyHash = ""
	t.APIKeyPrefix = ""
}

// HasActiveAPIKey reports whether an API key is currently issued.
func (t *Tenant) HasActiveAPIKey() bool {
	return t.APIKeyHash != ""
}

// HashAPIKey returns the hex SHA-256 digest used for API key storage and lookup.
func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
