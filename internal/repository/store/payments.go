package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/acoruss/acoruss.github.io/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxTransitionAttempts = 5

// ErrConflict is returned when a payment kept changing underneath a transition.
var ErrConflict = errors.New("payment was modified concurrently")

// PaymentFilter narrows a payment listing. Page is 1-based.
type PaymentFilter struct {
	Status  models.PaymentStatus
	Email   string
	Page    int
	PerPage int
}

// PaymentStore persists payments. Every status or refund change goes through
// Transition, which serializes writers per reference with a version check.
type PaymentStore struct {
	*repository[models.Payment]
}

func NewPaymentStore(db *gorm.DB) *PaymentStore {
	return &PaymentStore{New[models.Payment](db)}
}

// CreateIdempotent inserts p unless the service already used p.IdempotencyKey.
// The insert and the duplicate check are one statement, so concurrent requests
// with the same key produce a single row. created is false when the existing
// row is returned instead.
func (s *PaymentStore) CreateIdempotent(ctx context.Context, p *models.Payment) (*models.Payment, bool, error) {
	if p.IdempotencyKey == nil {
		if err := s.Create(ctx, p); err != nil {
			return nil, false, err
		}
		return p, true, nil
	}

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "service_id"}, {Name: "idempotency_key"}},
			DoNothing: true,
		}).
		Create(p)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return p, true, nil
	}

	existing, err := s.GetByIdempotencyKey(ctx, p.ServiceID, *p.IdempotencyKey)
	if err != nil {
		return nil, false, fmt.Errorf("loading payment for idempotency key: %w", err)
	}
	return existing, false, nil
}

func (s *PaymentStore) GetByIdempotencyKey(ctx context.Context, serviceID, key string) (*models.Payment, error) {
	return s.first(ctx, "service_id = ? AND idempotency_key = ?", serviceID, key)
}

func (s *PaymentStore) GetByReference(ctx context.Context, reference string) (*models.Payment, error) {
	return s.first(ctx, "reference = ?", reference)
}

// GetForService returns the payment only when serviceID owns it. A payment of
// another service is reported as not found.
func (s *PaymentStore) GetForService(ctx context.Context, serviceID, reference string) (*models.Payment, error) {
	return s.first(ctx, "service_id = ? AND reference = ?", serviceID, reference)
}

// List returns one page of the service's payments, newest first, and the
// total number of matching rows.
func (s *PaymentStore) List(ctx context.Context, serviceID string, f PaymentFilter) ([]models.Payment, int64, error) {
	filtered := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Payment{}).Where("service_id = ?", serviceID)
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		if f.Email != "" {
			q = q.Where("email = ?", f.Email)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []models.Payment
	err := filtered().Order("created_at DESC").Order("id").
		Offset((f.Page - 1) * f.PerPage).
		Limit(f.PerPage).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// Transition loads the payment, applies fn and writes the result only if
// nobody else wrote the row in between. On a lost race the payment is reloaded
// and fn runs again. When fn fails nothing is written and the loaded payment is
// returned with the error.
func (s *PaymentStore) Transition(ctx context.Context, reference string, fn func(*models.Payment) error) (*models.Payment, error) {
	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		p, err := s.GetByReference(ctx, reference)
		if err != nil {
			return nil, err
		}

		current := p.Version
		if err := fn(p); err != nil {
			return p, err
		}
		p.Version = current + 1

		res := s.db.WithContext(ctx).
			Model(p).
			Where("version = ?", current).
			Select("*").
			Omit("id", "created_at").
			Updates(p)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 1 {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrConflict, reference)
}
