package repo

import (
	"context"

	"github.com/techhub-shop/techhub/internal/models"
)

func (r *GormRepo) CreateReview(ctx context.Context, rev *models.Review) error {
	return r.DB.WithContext(ctx).Create(rev).Error
}

func (r *GormRepo) ListReviewsByProduct(ctx context.Context, productID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.DB.WithContext(ctx).Where("product_id = ?", productID).Order("id ASC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
