package product

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sarisaristore/sarisari-backend/internal/stock"
	"github.com/sarisaristore/sarisari-backend/pkg/db/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("extract sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := conn.AutoMigrate(&models.Product{}, &models.Variant{}, &models.StockBatch{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate test schema: %v", err)
	}
	return conn
}

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newServiceOverDB(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(conn), testTxRunner{db: conn}, stock.NewRepository(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}
