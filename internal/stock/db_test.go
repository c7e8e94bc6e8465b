package stock

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

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
	// one connection so every statement sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := conn.AutoMigrate(&models.Product{}, &models.Variant{}, &models.StockBatch{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate test schema: %v", err)
	}
	return conn
}

func mustCreateTestProduct(t *testing.T, conn *gorm.DB) *models.Product {
	t.Helper()

	product := &models.Product{Name: "Lucky Me Pancit Canton"}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
