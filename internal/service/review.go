package service

import (
	"context"
	"fmt"

	"github.com/techhub-shop/techhub/internal/logging"
	"github.com/techhub-shop/techhub/internal/models"
	"github.com/techhub-shop/techhub/internal/mykafka"
	"github.com/techhub-shop/techhub/internal/repo"
)

type ReviewService struct {
	Repo   *repo.GormRepo
	Events mykafka.Publisher
}

// Submit сохраняет оценку 1..5. Повторная оценка того же товара тем же
// пользователем допустима, уникальность не навязывается.
func (s *ReviewService) Submit(ctx context.Context, userID, productID uint, score int) (*models.Review, error) {
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("score must be between 1 and 5: %w", ErrValidation)
	}
	if userID == 0 || productID == 0 {
		return nil, fmt.Errorf("id_user and id_tovara are required: %w", ErrValidation)
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: productID,
		Score:     score,
	}
	if err := s.Repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	if s.Events != nil {
		event := map[string]interface{}{
			"type":       "review_created",
			"review_id":  review.ID,
			"user_id":    review.UserID,
			"product_id": review.ProductID,
			"score":      review.Score,
		}
		if err := s.Events.PublishEvent(ctx, "review_events", fmt.Sprint(review.ProductID), event); err != nil {
			logging.FromContext(ctx).Error("kafka_publish_error", "topic", "review_events", "error", err)
		}
	}

	return review, nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID uint) ([]models.Review, error) {
	return s.Repo.ListReviewsByProduct(ctx, productID)
}
