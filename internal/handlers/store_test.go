package handlers

import (
	"context"
	"testing"
	"time"

	"voltkart_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Mocks des stores : un champ fonction par méthode, comportement neutre
// quand le champ est nil.

type userStoreMock struct {
	findFn   func(ctx context.Context, mobileNumber string) (models.User, error)
	insertFn func(ctx context.Context, user models.User) error
}

func (m *userStoreMock) FindByMobile(ctx context.Context, mobileNumber string) (models.User, error) {
	if m.findFn == nil {
		return models.User{}, mongo.ErrNoDocuments
	}
	return m.findFn(ctx, mobileNumber)
}

func (m *userStoreMock) Insert(ctx context.Context, user models.User) error {
	if m.insertFn == nil {
		return nil
	}
	return m.insertFn(ctx, user)
}

type cartStoreMock struct {
	findFn    func(ctx context.Context, userID string) (models.Cart, error)
	insertFn  func(ctx context.Context, cart models.Cart) error
	replaceFn func(ctx context.Context, userID string, items []models.CartItem, updatedAt time.Time) error
	deleteFn  func(ctx context.Context, userID string) error
}

func (m *cartStoreMock) FindByUser(ctx context.Context, userID string) (models.Cart, error) {
	if m.findFn == nil {
		return models.Cart{}, mongo.ErrNoDocuments
	}
	return m.findFn(ctx, userID)
}

func (m *cartStoreMock) Insert(ctx context.Context, cart models.Cart) error {
	if m.insertFn == nil {
		return nil
	}
	return m.insertFn(ctx, cart)
}

func (m *cartStoreMock) ReplaceItems(ctx context.Context, userID string, items []models.CartItem, updatedAt time.Time) error {
	if m.replaceFn == nil {
		return nil
	}
	return m.replaceFn(ctx, userID, items, updatedAt)
}

func (m *cartStoreMock) DeleteByUser(ctx context.Context, userID string) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, userID)
}

type orderStoreMock struct {
	insertFn func(ctx context.Context, order models.Order) error
	findFn   func(ctx context.Context, userID string) ([]models.Order, error)
}

func (m *orderStoreMock) Insert(ctx context.Context, order models.Order) error {
	if m.insertFn == nil {
		return nil
	}
	return m.insertFn(ctx, order)
}

func (m *orderStoreMock) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	if m.findFn == nil {
		return nil, nil
	}
	return m.findFn(ctx, userID)
}

type stockStoreMock struct {
	findFn      func(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	decrementFn func(ctx context.Context, id primitive.ObjectID, quantity int) error
}

func (m *stockStoreMock) FindProduct(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	if m.findFn == nil {
		return models.Product{}, mongo.ErrNoDocuments
	}
	return m.findFn(ctx, id)
}

func (m *stockStoreMock) DecrementQuantity(ctx context.Context, id primitive.ObjectID, quantity int) error {
	if m.decrementFn == nil {
		return nil
	}
	return m.decrementFn(ctx, id, quantity)
}

// useStores substitue les stores pour la durée du test ; un argument nil
// laisse l'implémentation en place.
func useStores(t *testing.T, u userStore, c cartStore, o orderStore, s stockStore) {
	t.Helper()

	prevUsers, prevCarts, prevOrders, prevStock := users, carts, orders, stock
	if u != nil {
		users = u
	}
	if c != nil {
		carts = c
	}
	if o != nil {
		orders = o
	}
	if s != nil {
		stock = s
	}
	t.Cleanup(func() {
		users, carts, orders, stock = prevUsers, prevCarts, prevOrders, prevStock
	})
}
