// Package checkout turns the current cart into a committed order.
package checkout

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rmedina/stockroom-backend/internal/cart"
	"github.com/rmedina/stockroom-backend/internal/orders"
	"github.com/rmedina/stockroom-backend/internal/session"
	"github.com/rmedina/stockroom-backend/pkg/delay"
	"github.com/rmedina/stockroom-backend/pkg/enums"
	pkgerrors "github.com/rmedina/stockroom-backend/pkg/errors"
	"github.com/rmedina/stockroom-backend/pkg/logger"
	"github.com/rmedina/stockroom-backend/pkg/models"
)

// Service drives order placement. The simulated network pause is an
// injected collaborator so a real payment or fulfillment call can take its
// place without touching the commit sequence.
type Service struct {
	session *session.Store
	cart    *cart.Store
	orders  *orders.Book
	sleeper delay.Sleeper
	logg    *logger.Logger
	now     func() time.Time
	newID   func() string
}

// NewService wires the checkout service.
func NewService(sess *session.Store, crt *cart.Store, book *orders.Book, sleeper delay.Sleeper, logg *logger.Logger) *Service {
	if sleeper == nil {
		sleeper = delay.None{}
	}
	return &Service{
		session: sess,
		cart:    crt,
		orders:  book,
		sleeper: sleeper,
		logg:    logg,
		now:     time.Now,
		newID:   newOrderID,
	}
}

func newOrderID() string {
	return "o" + uuid.NewString()[:8]
}

// PlaceOrder validates the submission, captures line prices from the
// catalog join, waits out the injected delay, then commits the order and
// clears the cart. Cancellation during the delay aborts before anything is
// committed.
func (s *Service) PlaceOrder(ctx context.Context, shippingAddress string) (models.Order, error) {
	user, ok := s.session.Current()
	if !ok {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required to place an order")
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "shipping address is required")
	}

	// Prices are captured here: later catalog changes never alter the
	// committed total.
	resolved := s.cart.WithProducts()
	if len(resolved) == 0 {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	lines := make([]models.OrderLine, 0, len(resolved))
	for _, item := range resolved {
		lines = append(lines, models.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		})
	}
	total := s.cart.TotalPrice()

	if err := s.sleeper.Sleep(ctx); err != nil {
		return models.Order{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order submission interrupted")
	}

	submitted := s.now()
	order := models.Order{
		ID:              s.newID(),
		UserID:          user.ID,
		Items:           lines,
		Status:          enums.OrderStatusPending,
		TotalAmount:     total,
		ShippingAddress: strings.TrimSpace(shippingAddress),
		CreatedAt:       submitted,
		UpdatedAt:       submitted,
	}
	s.orders.Append(order)

	// The cart is only cleared once the order is in the book.
	if err := s.cart.Clear(ctx); err != nil {
		return order, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart after checkout")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, order.ID), "checkout.order_placed")
	}
	return order, nil
}
