package store

import (
	"context"

	"github.com/acoruss/acoruss.github.io/internal/models"
	"gorm.io/gorm"
)

type ServiceStore struct {
	*repository[models.Service]
}

func NewServiceStore(db *gorm.DB) *ServiceStore {
	return &ServiceStore{New[models.Service](db)}
}

// GetByAPIKey resolves a bearer token. Disabled services are returned too;
// callers decide what a disabled service may do.
func (s *ServiceStore) GetByAPIKey(ctx context.Context, apiKey string) (*models.Service, error) {
	return s.first(ctx, "api_key = ?", apiKey)
}

func (s *ServiceStore) GetBySlug(ctx context.Context, slug string) (*models.Service, error) {
	return s.first(ctx, "slug = ?", slug)
}
