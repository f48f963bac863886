package store

import (
	"context"
	"errors"

	"github.com/acoruss/acoruss.github.io/internal/models"
	"gorm.io/gorm"
)

// repository is a generic GORM-based repository implementation.
// It provides the shared CRUD operations the typed stores build on.
type repository[T interface{}] struct {
	db *gorm.DB
}

// New creates a new generic repository instance for type T.
func New[T interface{}](db *gorm.DB) *repository[T] {
	return &repository[T]{
		db,
	}
}

// Create inserts a new entity into the database.
func (r *repository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// GetAll retrieves all entities of type T ordered by creation time.
func (r *repository[T]) GetAll(ctx context.Context) (*[]T, error) {
	var entities []T
	err := r.db.WithContext(ctx).Order("created_at").Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return &entities, nil
}

// GetByID retrieves a single entity by its ID.
func (r *repository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	return r.first(ctx, "id = ?", id)
}

// Update updates an existing entity identified by ID. Zero values are written.
func (r *repository[T]) Update(ctx context.Context, entity *T, id string) error {
	res := r.db.WithContext(ctx).Model(entity).Where("id = ?", id).Select("*").Updates(entity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *repository[T]) first(ctx context.Context, query string, args ...interface{}) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).Where(query, args...).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// AutoMigrate creates or updates the ledger tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Service{},
		&models.Payment{},
		&models.WebhookDeliveryAttempt{},
	)
}
