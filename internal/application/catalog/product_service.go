package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/towntreasure/backend/internal/domain/catalog"
	"github.com/towntreasure/backend/internal/domain/shared"
	"github.com/towntreasure/backend/internal/domain/shopping"
	"github.com/towntreasure/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Listing sources reported alongside the product list
const (
	SourceDatabase = "database"
	SourceBuiltin  = "builtin"
)

// RateSource provides the current USD to NPR rate for display prices
type RateSource interface {
	Rate() decimal.Decimal
}

// staticRate is the RateSource used when no FX provider is wired in
type staticRate struct{ rate decimal.Decimal }

func (s staticRate) Rate() decimal.Decimal { return s.rate }

// StaticRate returns a RateSource that always reports the given rate
func StaticRate(rate decimal.Decimal) RateSource {
	return staticRate{rate: rate}
}

// ProductService handles catalog business operations. Listing degrades
// to the built-in sample catalog when the database fails or is empty,
// so the storefront always has something to show.
type ProductService struct {
	productRepo catalog.ProductRepository
	cache       cache.ProductCache
	rates       RateSource
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	productCache cache.ProductCache,
	rates RateSource,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		cache:       productCache,
		rates:       rates,
		logger:      logger.Named("catalog"),
	}
}

// List returns all products, falling back to the built-in samples when
// the database errors or holds no listings
func (s *ProductService) List(ctx context.Context) (*ProductListResponse, error) {
	products, source := s.load(ctx)

	rate := s.rates.Rate()
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i], rate))
	}

	return &ProductListResponse{Products: responses, Source: source}, nil
}

func (s *ProductService) load(ctx context.Context) ([]catalog.Product, string) {
	if cached, err := s.cache.GetList(ctx); err == nil && cached != nil {
		return cached, SourceDatabase
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		s.logger.Warn("product listing query failed, serving built-in catalog", zap.Error(err))
		return catalog.SampleProducts(), SourceBuiltin
	}
	if len(products) == 0 {
		return catalog.SampleProducts(), SourceBuiltin
	}

	if err := s.cache.SetList(ctx, products); err != nil {
		s.logger.Debug("failed to cache product listing", zap.Error(err))
	}
	return products, SourceDatabase
}

// Get returns a single product by id. The built-in samples are
// consulted after the database so cart additions against the fallback
// catalog still resolve.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product, s.rates.Rate())
	return &resp, nil
}

func (s *ProductService) findProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("product lookup failed, consulting built-in catalog",
			zap.String("product_id", id.String()),
			zap.Error(err),
		)
	}

	for _, sample := range catalog.SampleProducts() {
		if sample.ID == id {
			p := sample
			return &p, nil
		}
	}
	return nil, shared.ErrNotFound
}

// Create lists a new product for the seller
func (s *ProductService) Create(ctx context.Context, sellerID uuid.UUID, sellerName string, req CreateProductRequest) (*ProductResponse, error) {
	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}

	product, err := catalog.NewProduct(req.Name, req.Price, stock)
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.Image != "" || req.Category != "" {
		if err := product.Update(req.Name, req.Description, req.Image, req.Category); err != nil {
			return nil, err
		}
	}
	product.Location = req.Location
	product.SetSeller(sellerID, sellerName)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)

	s.logger.Info("product listed",
		zap.String("product_id", product.ID.String()),
		zap.String("seller_id", sellerID.String()),
	)

	resp := ToProductResponse(product, s.rates.Rate())
	return &resp, nil
}

// Update edits a product listing. Only the owning seller may edit it.
func (s *ProductService) Update(ctx context.Context, sellerID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, shared.ErrForbidden
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	image := product.Image
	if req.Image != nil {
		image = *req.Image
	}
	category := product.Category
	if req.Category != nil {
		category = *req.Category
	}
	if err := product.Update(name, description, image, category); err != nil {
		return nil, err
	}

	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	if req.Location != nil {
		product.Location = *req.Location
		product.Touch()
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)

	resp := ToProductResponse(product, s.rates.Rate())
	return &resp, nil
}

// Delete removes a product listing. Only the owning seller may remove
// it; deleting an unknown id succeeds.
func (s *ProductService) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if product.SellerID != sellerID {
		return shared.ErrForbidden
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateListing(ctx)
	return nil
}

// ListBySeller returns the seller's own listings for the dashboard
func (s *ProductService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]ProductResponse, error) {
	products, err := s.productRepo.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	rate := s.rates.Rate()
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i], rate))
	}
	return responses, nil
}

// Lookup resolves a product id to the listing details captured on a
// cart line
func (s *ProductService) Lookup(ctx context.Context, id uuid.UUID) (shopping.CartItem, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return shopping.CartItem{}, err
	}

	return shopping.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  1,
		Image:     product.Image,
		Seller:    product.SellerName,
	}, nil
}

// Offers returns the currently active storefront promotions
func (s *ProductService) Offers(ctx context.Context) []PromotionResponse {
	active := catalog.ActivePromotions(time.Now())
	responses := make([]PromotionResponse, 0, len(active))
	for _, p := range active {
		responses = append(responses, ToPromotionResponse(p))
	}
	return responses
}

func (s *ProductService) invalidateListing(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Debug("failed to invalidate product cache", zap.Error(err))
	}
}
