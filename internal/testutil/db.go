package testutil

import (
	"path/filepath"
	"testing"

	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/acoruss/acoruss.github.io/internal/repository/store"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated SQLite database in the test's temp dir. A single
// connection keeps concurrent test goroutines from tripping over SQLite locks.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "payments.db") + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, store.AutoMigrate(db))
	return db
}

// CreateService stores an enabled service with fresh credentials.
func CreateService(t *testing.T, db *gorm.DB, slug string, opts ...func(*models.Service)) *models.Service {
	t.Helper()

	svc := &models.Service{
		Name:       slug,
		Slug:       slug,
		WebhookURL: "https://" + slug + ".example.com/webhooks/payments",
		Enabled:    true,
	}
	for _, opt := range opts {
		opt(svc)
	}
	require.NoError(t, db.Create(svc).Error)
	return svc
}
