package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/towntreasure/backend/internal/domain/catalog"
	"github.com/towntreasure/backend/internal/domain/shared"
	"github.com/towntreasure/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeProductRepository is an in-memory catalog.ProductRepository
type fakeProductRepository struct {
	products map[uuid.UUID]catalog.Product
	failAll  error
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{products: make(map[uuid.UUID]catalog.Product)}
}

func (r *fakeProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	all := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, p)
	}
	return all, nil
}

func (r *fakeProductRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]catalog.Product, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	mine := make([]catalog.Product, 0)
	for _, p := range r.products {
		if p.SellerID == sellerID {
			mine = append(mine, p)
		}
	}
	return mine, nil
}

func (r *fakeProductRepository) FindByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	matched := make([]catalog.Product, 0)
	for _, p := range r.products {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (r *fakeProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	if r.failAll != nil {
		return r.failAll
	}
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func newTestProductService(repo catalog.ProductRepository) *ProductService {
	return NewProductService(
		repo,
		cache.NewInMemoryProductCache(),
		StaticRate(decimal.RequireFromString("133.50")),
		zap.NewNop(),
	)
}

func seedProduct(t *testing.T, repo *fakeProductRepository, name string, sellerID uuid.UUID) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, decimal.RequireFromString("25.99"), 10)
	require.NoError(t, err)
	product.SetSeller(sellerID, "Test Seller")
	require.NoError(t, repo.Save(context.Background(), product))
	return product
}

func TestProductService_List(t *testing.T) {
	t.Run("serves the database catalog when populated", func(t *testing.T) {
		repo := newFakeProductRepository()
		seedProduct(t, repo, "Handmade Ceramic Mug", uuid.New())
		svc := newTestProductService(repo)

		resp, err := svc.List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, SourceDatabase, resp.Source)
		assert.Len(t, resp.Products, 1)
	})

	t.Run("falls back to the built-in catalog when the query fails", func(t *testing.T) {
		repo := newFakeProductRepository()
		repo.failAll = errors.New("connection refused")
		svc := newTestProductService(repo)

		resp, err := svc.List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, SourceBuiltin, resp.Source)
		assert.NotEmpty(t, resp.Products)
	})

	t.Run("falls back when the database holds no listings", func(t *testing.T) {
		svc := newTestProductService(newFakeProductRepository())

		resp, err := svc.List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, SourceBuiltin, resp.Source)
		assert.NotEmpty(t, resp.Products)
	})

	t.Run("display prices carry the NPR conversion", func(t *testing.T) {
		repo := newFakeProductRepository()
		seedProduct(t, repo, "Handmade Ceramic Mug", uuid.New())
		svc := newTestProductService(repo)

		resp, err := svc.List(context.Background())

		require.NoError(t, err)
		// 25.99 * 133.50 rounded to cents
		assert.Equal(t, "3469.67", resp.Products[0].PriceNPR.String())
	})
}

func TestProductService_Get(t *testing.T) {
	t.Run("resolves database products", func(t *testing.T) {
		repo := newFakeProductRepository()
		product := seedProduct(t, repo, "Wool Scarf", uuid.New())
		svc := newTestProductService(repo)

		resp, err := svc.Get(context.Background(), product.ID)

		require.NoError(t, err)
		assert.Equal(t, "Wool Scarf", resp.Name)
	})

	t.Run("resolves built-in sample ids", func(t *testing.T) {
		svc := newTestProductService(newFakeProductRepository())
		sample := catalog.SampleProducts()[0]

		resp, err := svc.Get(context.Background(), sample.ID)

		require.NoError(t, err)
		assert.Equal(t, sample.Name, resp.Name)
	})

	t.Run("returns not found for unknown ids", func(t *testing.T) {
		svc := newTestProductService(newFakeProductRepository())

		_, err := svc.Get(context.Background(), uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_Create(t *testing.T) {
	repo := newFakeProductRepository()
	svc := newTestProductService(repo)
	sellerID := uuid.New()
	stock := 8

	resp, err := svc.Create(context.Background(), sellerID, "maya@example.com", CreateProductRequest{
		Name:     "Wooden Jewelry Box",
		Price:    decimal.RequireFromString("49.99"),
		Stock:    &stock,
		Category: "Handmade",
	})

	require.NoError(t, err)
	assert.Equal(t, sellerID, resp.SellerID)
	assert.Equal(t, "Handmade", resp.Category)

	stored, err := repo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, stored.Stock)
}

func TestProductService_Update(t *testing.T) {
	t.Run("only the owning seller may edit", func(t *testing.T) {
		repo := newFakeProductRepository()
		owner := uuid.New()
		product := seedProduct(t, repo, "Leather Wallet", owner)
		svc := newTestProductService(repo)

		name := "Stolen Wallet"
		_, err := svc.Update(context.Background(), uuid.New(), product.ID, UpdateProductRequest{Name: &name})

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("merges only the provided fields", func(t *testing.T) {
		repo := newFakeProductRepository()
		owner := uuid.New()
		product := seedProduct(t, repo, "Leather Wallet", owner)
		svc := newTestProductService(repo)

		price := decimal.RequireFromString("59.99")
		resp, err := svc.Update(context.Background(), owner, product.ID, UpdateProductRequest{Price: &price})

		require.NoError(t, err)
		assert.Equal(t, "Leather Wallet", resp.Name)
		assert.Equal(t, "59.99", resp.Price.String())
	})
}

func TestProductService_Delete(t *testing.T) {
	t.Run("removes the listing for the owner", func(t *testing.T) {
		repo := newFakeProductRepository()
		owner := uuid.New()
		product := seedProduct(t, repo, "Organic Raw Honey", owner)
		svc := newTestProductService(repo)

		require.NoError(t, svc.Delete(context.Background(), owner, product.ID))

		_, err := repo.FindByID(context.Background(), product.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("deleting an unknown id succeeds", func(t *testing.T) {
		svc := newTestProductService(newFakeProductRepository())
		assert.NoError(t, svc.Delete(context.Background(), uuid.New(), uuid.New()))
	})

	t.Run("rejects a non-owner", func(t *testing.T) {
		repo := newFakeProductRepository()
		product := seedProduct(t, repo, "Organic Raw Honey", uuid.New())
		svc := newTestProductService(repo)

		err := svc.Delete(context.Background(), uuid.New(), product.ID)

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestProductService_Lookup(t *testing.T) {
	repo := newFakeProductRepository()
	product := seedProduct(t, repo, "Handmade Ceramic Mug", uuid.New())
	svc := newTestProductService(repo)

	item, err := svc.Lookup(context.Background(), product.ID)

	require.NoError(t, err)
	assert.Equal(t, product.ID, item.ProductID)
	assert.Equal(t, "Handmade Ceramic Mug", item.Name)
	assert.Equal(t, 1, item.Quantity)
	assert.True(t, item.UnitPrice.Equal(product.Price))
}
