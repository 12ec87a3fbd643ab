package catalog

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/themilho/product-catalog/internal/domain"
)

type mockLister struct{ mock.Mock }

func (m *mockLister) List(ctx context.Context, favoritesOnly bool) ([]domain.Product, error) {
	args := m.Called(ctx, favoritesOnly)
	products, _ := args.Get(0).([]domain.Product)
	return products, args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Success(ctx context.Context, message string) { m.Called(ctx, message) }
func (m *mockNotifier) Error(ctx context.Context, message string)   { m.Called(ctx, message) }

type mockItemAPI struct{ mock.Mock }

func (m *mockItemAPI) SetFavorite(ctx context.Context, id int, favorite bool) (domain.Product, error) {
	args := m.Called(ctx, id, favorite)
	p, _ := args.Get(0).(domain.Product)
	return p, args.Error(1)
}

func (m *mockItemAPI) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}
