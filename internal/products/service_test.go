package product

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sarisaristore/sarisari-backend/pkg/db/models"
	"github.com/sarisaristore/sarisari-backend/pkg/enums"
	pkgerrors "github.com/sarisaristore/sarisari-backend/pkg/errors"
	"github.com/sarisaristore/sarisari-backend/pkg/pagination"
)

func strPtr(s string) *string { return &s }

func TestCreateProductWithVariants(t *testing.T) {
	conn := openTestDB(t)
	svc := newServiceOverDB(t, conn)
	ctx := context.Background()

	dto, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:        "Sardinas",
		SKU:         strPtr("SARD-155"),
		Description: strPtr("155g can"),
		Images:      []string{"https://cdn.example.com/sardinas.jpg"},
		Variants: []VariantInput{
			{Name: "Regular", BasePrice: decimal.RequireFromString("22.00"), CostEach: decimal.RequireFromString("18.50")},
			{Name: "Spicy", BasePrice: decimal.RequireFromString("24.00"), CostEach: decimal.RequireFromString("19.00")},
		},
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	if dto.Name != "Sardinas" || dto.Status != "active" {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if len(dto.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(dto.Variants))
	}
	if dto.StockStatus != enums.StockStatusCritical || dto.TotalQuantity != 0 {
		t.Fatalf("new product must classify critical with 0 stock, got %s/%d", dto.StockStatus, dto.TotalQuantity)
	}
}

func TestCreateProductRejectsNegativeVariantPrice(t *testing.T) {
	conn := openTestDB(t)
	svc := newServiceOverDB(t, conn)

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name: "Suka",
		Variants: []VariantInput{
			{Name: "350ml", BasePrice: decimal.RequireFromString("-1.00")},
		},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateProductUpsertsVariantsByID(t *testing.T) {
	conn := openTestDB(t)
	svc := newServiceOverDB(t, conn)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Name: "Toyo",
		Variants: []VariantInput{
			{Name: "200ml", BasePrice: decimal.RequireFromString("15.00"), CostEach: decimal.RequireFromString("12.00")},
			{Name: "1L", BasePrice: decimal.RequireFromString("55.00"), CostEach: decimal.RequireFromString("46.00")},
		},
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	keptID := created.Variants[0].ID
	variants := []VariantInput{
		// keep the first row under a new price, drop the second, add a third
		{ID: &keptID, Name: "200ml", BasePrice: decimal.RequireFromString("16.00"), CostEach: decimal.RequireFromString("12.00")},
		{Name: "500ml", BasePrice: decimal.RequireFromString("32.00"), CostEach: decimal.RequireFromString("27.00")},
	}
	status := enums.ProductStatusInactive
	updated, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{
		Name:     strPtr("Toyo (Silver Swan)"),
		Status:   &status,
		Variants: &variants,
	})
	if err != nil {
		t.Fatalf("update product: %v", err)
	}

	if updated.Name != "Toyo (Silver Swan)" || updated.Status != "inactive" {
		t.Fatalf("unexpected dto: %+v", updated)
	}
	if len(updated.Variants) != 2 {
		t.Fatalf("expected 2 variants after replace, got %d", len(updated.Variants))
	}

	byID := map[uuid.UUID]VariantDTO{}
	for _, v := range updated.Variants {
		byID[v.ID] = v
	}
	kept, ok := byID[keptID]
	if !ok {
		t.Fatalf("variant %v must survive the update", keptID)
	}
	if kept.BasePrice != "16.00" {
		t.Fatalf("expected updated price 16.00, got %s", kept.BasePrice)
	}
}

func TestUpdateProductRejectsForeignVariantID(t *testing.T) {
	conn := openTestDB(t)
	svc := newServiceOverDB(t, conn)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Asukal"})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	foreign := uuid.New()
	variants := []VariantInput{{ID: &foreign, Name: "1kg", BasePrice: decimal.RequireFromString("80.00")}}
	_, err = svc.UpdateProduct(ctx, created.ID, UpdateProductInput{Variants: &variants})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateProductUnknownProduct(t *testing.T) {
	conn := openTestDB(t)
	svc := newServiceOverDB(t, conn)

	_, err := svc.UpdateProduct(context.Background(), uuid.New(), UpdateProductInput{Name: strPtr("Ghost")})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListProductsFilters(t *testing.T) {
	conn := openTestDB(t)
	svc := newServiceOverDB(t, conn)
	ctx := context.Background()

	if _, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Pancit Canton", SKU: strPtr("PC-01")}); err != nil {
		t.Fatalf("create: %v", err)
	}
	inactive := enums.ProductStatusInactive
	if _, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Kape Barako", Status: inactive}); err != nil {
		t.Fatalf("create: %v", err)
	}

	bySearch, err := svc.ListProducts(ctx, ListProductsInput{Search: "pancit"})
	if err != nil {
		t.Fatalf("list by search: %v", err)
	}
	if len(bySearch.Products) != 1 || bySearch.Products[0].Name != "Pancit Canton" {
		t.Fatalf("unexpected search result: %+v", bySearch.Products)
	}

	byStatus, err := svc.ListProducts(ctx, ListProductsInput{Status: &inactive})
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(byStatus.Products) != 1 || byStatus.Products[0].Name != "Kape Barako" {
		t.Fatalf("unexpected status result: %+v", byStatus.Products)
	}

	all, err := svc.ListProducts(ctx, ListProductsInput{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(all.Products))
	}
}

func TestListProductsNarrowsByIDs(t *testing.T) {
	conn := openTestDB(t)
	svc := newServiceOverDB(t, conn)
	ctx := context.Background()

	first, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Toyo"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Patis"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	listing, err := svc.ListProducts(ctx, ListProductsInput{IDs: []uuid.UUID{first.ID}})
	if err != nil {
		t.Fatalf("list by ids: %v", err)
	}
	if len(listing.Products) != 1 || listing.Products[0].ID != first.ID {
		t.Fatalf("unexpected id-filtered result: %+v", listing.Products)
	}
}

func TestListStorefrontExcludesUnstockedAndInactive(t *testing.T) {
	conn := openTestDB(t)
	svc := newServiceOverDB(t, conn)
	ctx := context.Background()

	stocked, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Mantika"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Walang Stock"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	inactive := enums.ProductStatusInactive
	hidden, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Hindi Benta", Status: inactive})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, productID := range []uuid.UUID{stocked.ID, hidden.ID} {
		batch := &models.StockBatch{ProductID: productID, Quantity: 8, Price: decimal.RequireFromString("75.50")}
		if err := conn.Create(batch).Error; err != nil {
			t.Fatalf("seed batch: %v", err)
		}
	}

	page, err := svc.ListStorefront(ctx, pagination.Params{})
	if err != nil {
		t.Fatalf("list storefront: %v", err)
	}
	if len(page.Products) != 1 {
		t.Fatalf("expected 1 storefront product, got %d", len(page.Products))
	}

	entry := page.Products[0]
	if entry.ID != stocked.ID {
		t.Fatalf("expected %v, got %v", stocked.ID, entry.ID)
	}
	if entry.UnitPrice != "75.50" {
		t.Fatalf("expected price 75.50, got %s", entry.UnitPrice)
	}
	if entry.StockStatus != enums.StockStatusLow || entry.TotalQuantity != 8 {
		t.Fatalf("expected low/8, got %s/%d", entry.StockStatus, entry.TotalQuantity)
	}
}

func TestListStorefrontPaginates(t *testing.T) {
	conn := openTestDB(t)
	svc := newServiceOverDB(t, conn)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		p := &models.Product{Name: "Item", Status: enums.ProductStatusActive, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := conn.Create(p).Error; err != nil {
			t.Fatalf("seed product: %v", err)
		}
		batch := &models.StockBatch{ProductID: p.ID, Quantity: 20, Price: decimal.RequireFromString("10.00")}
		if err := conn.Create(batch).Error; err != nil {
			t.Fatalf("seed batch: %v", err)
		}
	}

	first, err := svc.ListStorefront(ctx, pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Products) != 2 || first.NextCursor == nil {
		t.Fatalf("expected full first page with cursor, got %d items", len(first.Products))
	}

	second, err := svc.ListStorefront(ctx, pagination.Params{Limit: 2, Cursor: *first.NextCursor})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Products) != 1 || second.NextCursor != nil {
		t.Fatalf("expected final page of 1, got %d items", len(second.Products))
	}
}
