package models

import (
	"crypto/rand"
	"encoding/hex"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service is a client application allowed to initiate payments. Services are
// never deleted once payments reference them; Enabled=false disables them.
type Service struct {
	ID                 string                      `gorm:"primaryKey;size:36" json:"id"`
	Name               string                      `gorm:"size:255;not null" json:"name"`
	Slug               string                      `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	APIKey             string                      `gorm:"size:64;uniqueIndex;not null" json:"api_key"`
	APISecret          string                      `gorm:"size:80;not null" json:"-"`
	WebhookURL         string                      `gorm:"size:500" json:"webhook_url"`
	DefaultCallbackURL string                      `gorm:"size:500" json:"default_callback_url"`
	AllowedCurrencies  datatypes.JSONSlice[string] `json:"allowed_currencies"`
	AllowedIPs         datatypes.JSONSlice[string] `json:"allowed_ips"`
	Enabled            bool                        `gorm:"not null" json:"enabled"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.APIKey == "" || s.APISecret == "" {
		s.RotateCredentials()
	}
	return
}

// RotateCredentials issues a fresh key pair, invalidating the old one.
func (s *Service) RotateCredentials() {
	s.APIKey = "ak_" + randomHex(24)
	s.APISecret = "sk_" + randomHex(32)
}

// AllowsIP reports whether ip may call the API. An empty allowlist allows all.
func (s *Service) AllowsIP(ip string) bool {
	return len(s.AllowedIPs) == 0 || slices.Contains(s.AllowedIPs, ip)
}

// AllowsCurrency reports whether the service may charge in c. An empty set
// allows every supported currency.
func (s *Service) AllowsCurrency(c Currency) bool {
	if len(s.AllowedCurrencies) == 0 {
		return true
	}
	for _, allowed := range s.AllowedCurrencies {
		if strings.EqualFold(allowed, string(c)) {
			return true
		}
	}
	return false
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
