package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/electro_shop/internal/cache"
	"github.com/Skotchmaster/electro_shop/internal/events"
	"github.com/Skotchmaster/electro_shop/internal/logging"
	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/repo"
	"github.com/Skotchmaster/electro_shop/internal/search"
	"github.com/Skotchmaster/electro_shop/internal/transport"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Cache  *cache.ProductCache
	Index  search.Index
	Events events.Publisher
}

func validateProduct(p *models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}
	return nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.Cache.Get(ctx, id); ok {
		return p, nil
	}
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	s.Cache.Set(ctx, p)
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, f repo.ProductFilter, offset, limit int) (int64, []models.Product, error) {
	if f.MaxStock != nil && *f.MaxStock < 0 {
		return 0, nil, fmt.Errorf("%w: max_stock must be >= 0", ErrValidation)
	}
	return s.Repo.ListProducts(ctx, f, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	prod := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		Price:       req.Price,
		Stock:       req.Stock,
		Image:       req.Image,
		Description: req.Description,
	}
	if err := validateProduct(prod); err != nil {
		return nil, err
	}
	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, "product_created", prod)
	return prod, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, id uuid.UUID, req transport.PatchProductRequest) (*models.Product, error) {
	prod, err := s.Repo.UpdateProduct(ctx, id, func(p *models.Product) error {
		if req.Name != nil {
			p.Name = strings.TrimSpace(*req.Name)
		}
		if req.Category != nil {
			p.Category = strings.TrimSpace(*req.Category)
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.Stock != nil {
			p.Stock = *req.Stock
		}
		if req.Image != nil {
			p.Image = *req.Image
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		return validateProduct(p)
	})
	if err != nil {
		return nil, notFound(err, "product")
	}

	s.afterWrite(ctx, "product_updated", prod)
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return notFound(err, "product")
	}

	s.Cache.Invalidate(ctx, id)
	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_delete_failed", "product_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicProducts, id.String(), events.New("product_deleted", id.String(), nil))
	return nil
}

func (s *CatalogService) TotalStock(ctx context.Context) (int64, error) {
	return s.Repo.TotalStock(ctx)
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.Repo.Categories(ctx)
}

// SearchProducts asks the search index first and falls back to a substring match.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.search")
	if strings.TrimSpace(q) == "" {
		return 0, []models.Product{}, nil
	}

	if s.Index != nil {
		total, ids, err := s.Index.Search(ctx, q, offset, limit)
		if err == nil {
			items, err := s.productsInOrder(ctx, ids)
			if err != nil {
				return 0, nil, err
			}
			return total, items, nil
		}
		l.Warn("search_index_failed", "reason", "falling back to database", "error", err)
	}

	return s.Repo.ListProducts(ctx, repo.ProductFilter{Query: q}, offset, limit)
}

func (s *CatalogService) productsInOrder(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	found, err := s.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// Reindex pushes every product into the search index.
func (s *CatalogService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	const batch = 100
	n := 0
	for offset := 0; ; offset += batch {
		_, items, err := s.Repo.ListProducts(ctx, repo.ProductFilter{}, offset, batch)
		if err != nil {
			return n, err
		}
		for i := range items {
			if err := s.Index.IndexProduct(ctx, &items[i]); err != nil {
				return n, err
			}
			n++
		}
		if len(items) < batch {
			return n, nil
		}
	}
}

// Refresh drops cached copies and reindexes products whose stock moved.
func (s *CatalogService) Refresh(ctx context.Context, ids ...uuid.UUID) {
	s.Cache.Invalidate(ctx, ids...)
	if s.Index == nil || len(ids) == 0 {
		return
	}
	items, err := s.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		logging.FromContext(ctx).Warn("search_refresh_failed", "error", err)
		return
	}
	for i := range items {
		if err := s.Index.IndexProduct(ctx, &items[i]); err != nil {
			logging.FromContext(ctx).Warn("search_index_failed", "product_id", items[i].ID, "error", err)
		}
	}
}

func (s *CatalogService) afterWrite(ctx context.Context, eventType string, p *models.Product) {
	s.Cache.Invalidate(ctx, p.ID)
	if s.Index != nil {
		if err := s.Index.IndexProduct(ctx, p); err != nil {
			logging.FromContext(ctx).Warn("search_index_failed", "product_id", p.ID, "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicProducts, p.ID.String(), events.New(eventType, p.ID.String(), map[string]any{
		"name":  p.Name,
		"price": p.Price,
		"stock": p.Stock,
	}))
}
