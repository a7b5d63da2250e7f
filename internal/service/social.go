package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/repo"
	"github.com/Skotchmaster/electro_shop/internal/transport"
)

type SocialService struct {
	Repo    *repo.GormRepo
	Catalog *CatalogService
}

// ToggleWishlist reports whether the product is on the wishlist afterwards.
func (s *SocialService) ToggleWishlist(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		return false, notFound(err, "product")
	}
	return s.Repo.ToggleWishlist(ctx, userID, productID)
}

func (s *SocialService) Wishlist(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	return s.Repo.WishlistProducts(ctx, userID)
}

func (s *SocialService) AddReview(ctx context.Context, productID, userID uuid.UUID, req transport.ReviewRequest) (*models.Review, *models.Product, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, notFound(err, "user")
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		UserName:  user.Name,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}
	prod, err := s.Repo.AddReview(ctx, review)
	if err != nil {
		return nil, nil, notFound(err, "product")
	}
	if s.Catalog != nil {
		s.Catalog.Refresh(ctx, productID)
	}
	return review, prod, nil
}

func (s *SocialService) Reviews(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	return s.Repo.ListReviews(ctx, productID)
}
