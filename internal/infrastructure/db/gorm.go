package db

import (
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"p2p-lending-ledger/internal/domain/borrower"
	"p2p-lending-ledger/internal/domain/lender"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	slog.Info("gorm: connected")
	return db, nil
}

// Migrate creates or updates the ledger schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&lender.Lender{},
		&lender.Transaction{},
		&borrower.Borrower{},
		&borrower.Loan{},
		&borrower.LenderContribution{},
		&borrower.Repayment{},
	)
}
