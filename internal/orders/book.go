// Package orders keeps the order book: seed orders plus orders committed
// at checkout, append-only and in insertion order.
package orders

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rmedina/stockroom-backend/pkg/enums"
	pkgerrors "github.com/rmedina/stockroom-backend/pkg/errors"
	"github.com/rmedina/stockroom-backend/pkg/logger"
	"github.com/rmedina/stockroom-backend/pkg/models"
)

// Book holds every order the system knows about. Orders are only ever
// appended or have their status replaced; lines and totals are immutable
// once committed.
type Book struct {
	mu     sync.Mutex
	orders []models.Order
	byID   map[string]int
	logg   *logger.Logger
	now    func() time.Time
}

// NewBook builds an order book over the seed orders.
func NewBook(seed []models.Order, logg *logger.Logger) *Book {
	b := &Book{
		orders: make([]models.Order, len(seed)),
		byID:   make(map[string]int, len(seed)),
		logg:   logg,
		now:    time.Now,
	}
	copy(b.orders, seed)
	for i, order := range b.orders {
		b.byID[order.ID] = i
	}
	return b
}

// Get returns the order with the given ID.
func (b *Book) Get(id string) (models.Order, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := b.byID[id]
	if !ok {
		return models.Order{}, false
	}
	return b.orders[i], true
}

// List returns all orders in insertion order.
func (b *Book) List() []models.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Order, len(b.orders))
	copy(out, b.orders)
	return out
}

// Append commits a new order to the book.
func (b *Book) Append(order models.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.byID[order.ID] = len(b.orders)
	b.orders = append(b.orders, order)
}

// SetStatus replaces the status of an order and bumps UpdatedAt. Any valid
// status is accepted; the lifecycle graph is deliberately unconstrained.
func (b *Book) SetStatus(ctx context.Context, id string, status enums.OrderStatus) (models.Order, error) {
	if !status.IsValid() {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	i, ok := b.byID[id]
	if !ok {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	b.orders[i].Status = status
	b.orders[i].UpdatedAt = b.now()
	if b.logg != nil {
		b.logg.Info(b.logg.WithOrderID(ctx, id), "orders.status_updated")
	}
	return b.orders[i], nil
}

// ScopeForUser narrows a listing to what the caller may see. Admins see
// every order; everyone else only their own.
func ScopeForUser(orders []models.Order, isAdmin bool, userID string) []models.Order {
	if isAdmin {
		return orders
	}
	scoped := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if order.UserID == userID {
			scoped = append(scoped, order)
		}
	}
	return scoped
}

// Filter narrows orders by a case-insensitive substring match on the order
// ID and an exact status match. An empty axis leaves that axis unconstrained.
func Filter(orders []models.Order, term string, status enums.OrderStatus) []models.Order {
	needle := strings.ToLower(strings.TrimSpace(term))
	matched := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if needle != "" && !strings.Contains(strings.ToLower(order.ID), needle) {
			continue
		}
		if status != "" && order.Status != status {
			continue
		}
		matched = append(matched, order)
	}
	return matched
}
