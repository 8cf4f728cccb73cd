package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Store хранит корзины анонимных сессий по непрозрачному токену из cookie.
// Корзина -- упорядоченный список id товаров, повторы допустимы.
type Store interface {
	// Create заводит пустую сессию и возвращает новый токен.
	Create(ctx context.Context) (string, error)
	Exists(ctx context.Context, token string) (bool, error)
	// Cart возвращает содержимое корзины; неизвестный токен даёт пустой список.
	Cart(ctx context.Context, token string) ([]uint, error)
	Append(ctx context.Context, token string, productID uint) error
	// RemoveFirst убирает первое вхождение товара; отсутствие товара -- не ошибка.
	RemoveFirst(ctx context.Context, token string, productID uint) error
}

func newToken() string {
	return uuid.NewString()
}

// MemoryStore держит корзины в памяти процесса. Mutex закрывает гонку
// read-modify-write при параллельных запросах одного браузера.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string][]uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]uint)}
}

func (s *MemoryStore) Create(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := newToken()
	s.carts[token] = []uint{}
	return token, nil
}

func (s *MemoryStore) Exists(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.carts[token]
	return ok, nil
}

func (s *MemoryStore) Cart(_ context.Context, token string) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[token]
	out := make([]uint, len(items))
	copy(out, items)
	return out, nil
}

func (s *MemoryStore) Append(_ context.Context, token string, productID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[token] = append(s.carts[token], productID)
	return nil
}

func (s *MemoryStore) RemoveFirst(_ context.Context, token string, productID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.carts[token]
	if !ok {
		return nil
	}
	for i, id := range items {
		if id == productID {
			s.carts[token] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}
