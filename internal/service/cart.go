package service

import (
	"context"
	"fmt"

	"github.com/techhub-shop/techhub/internal/models"
	"github.com/techhub-shop/techhub/internal/repo"
	"github.com/techhub-shop/techhub/internal/session"
)

type CartService struct {
	Sessions session.Store
	Repo     *repo.GormRepo
}

// CartLine -- строка корзины для отображения: повторные добавления одного
// товара схлопываются в количество, порядок задаёт первое добавление.
type CartLine struct {
	Product  models.Product `json:"product"`
	Quantity uint           `json:"quantity"`
}

func (s *CartService) Add(ctx context.Context, token string, productID uint) error {
	if productID == 0 {
		return fmt.Errorf("product_id must be positive: %w", ErrValidation)
	}
	return s.Sessions.Append(ctx, token, productID)
}

// Remove убирает первое вхождение товара; отсутствие товара -- no-op.
func (s *CartService) Remove(ctx context.Context, token string, productID uint) error {
	if productID == 0 {
		return fmt.Errorf("product_id must be positive: %w", ErrValidation)
	}
	return s.Sessions.RemoveFirst(ctx, token, productID)
}

func (s *CartService) Items(ctx context.Context, token string) ([]uint, error) {
	return s.Sessions.Cart(ctx, token)
}

func (s *CartService) View(ctx context.Context, token string) ([]CartLine, error) {
	ids, err := s.Sessions.Cart(ctx, token)
	if err != nil {
		return nil, err
	}

	catalog, err := s.Repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var lines []CartLine
	index := make(map[uint]int)
	for _, id := range ids {
		p, ok := catalog[id]
		if !ok {
			// товар успел исчезнуть из каталога
			continue
		}
		if i, seen := index[id]; seen {
			lines[i].Quantity++
			continue
		}
		index[id] = len(lines)
		lines = append(lines, CartLine{Product: p, Quantity: 1})
	}
	return lines, nil
}
