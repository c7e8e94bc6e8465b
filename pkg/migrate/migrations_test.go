package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sarisaristore/sarisari-backend/pkg/migrate"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matches %q", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestProductsMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_products_table.sql")

	checks := []string{
		"CREATE TYPE product_status AS ENUM",
		"CREATE TABLE IF NOT EXISTS products",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_products_sku",
		"CREATE INDEX IF NOT EXISTS idx_products_status",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestStockBatchesMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_stock_batches_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS stock_batches",
		"quantity   INTEGER NOT NULL CHECK (quantity >= 1)",
		"CREATE INDEX IF NOT EXISTS idx_stock_batches_product_created",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCartItemsMigrationEnforcesOneRowPerProduct(t *testing.T) {
	content := readMigration(t, "*_create_cart_items_table.sql")

	if !strings.Contains(content, "CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_customer_product") {
		t.Errorf("cart_items migration must keep the (customer_id, product_id) unique index")
	}
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}
