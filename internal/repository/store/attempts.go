package store

import (
	"context"

	"github.com/acoruss/acoruss.github.io/internal/models"
	"gorm.io/gorm"
)

// AttemptStore is append-only: attempts are recorded once and never updated.
type AttemptStore struct {
	*repository[models.WebhookDeliveryAttempt]
}

func NewAttemptStore(db *gorm.DB) *AttemptStore {
	return &AttemptStore{New[models.WebhookDeliveryAttempt](db)}
}

func (s *AttemptStore) Record(ctx context.Context, attempt *models.WebhookDeliveryAttempt) error {
	return s.Create(ctx, attempt)
}

func (s *AttemptStore) ListForPayment(ctx context.Context, reference string) ([]models.WebhookDeliveryAttempt, error) {
	var attempts []models.WebhookDeliveryAttempt
	err := s.db.WithContext(ctx).
		Where("payment_reference = ?", reference).
		Order("id").
		Find(&attempts).Error
	return attempts, err
}
