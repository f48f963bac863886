package config

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormConnect opens the ledger database. DB_DRIVER=sqlite is meant for local
// development; production runs on postgres.
func (db *DB) GormConnect() (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch db.DRIVER {
	case "sqlite":
		dialector = sqlite.Open(db.SQLITEPATH + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	case "postgres", "":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			db.HOST, db.USER, db.PASSWORD, db.NAME, db.PORT, db.SSLMODE,
		)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", db.DRIVER)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if db.DRIVER == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(db.MaxOpenConns)
		sqlDB.SetMaxIdleConns(db.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(db.ConnMaxLifetime)
	return conn, nil
}
