package models

import (
	"time"

	"github.com/rmedina/stockroom-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// OrderLine captures a product at order time. Price is snapshotted at
// checkout so later catalog changes never alter historical totals.
type OrderLine struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Order is an append-only record created at checkout or loaded from the
// bundled seed data.
type Order struct {
	ID              string            `json:"id"`
	UserID          string            `json:"userId"`
	Items           []OrderLine       `json:"items"`
	Status          enums.OrderStatus `json:"status"`
	TotalAmount     decimal.Decimal   `json:"totalAmount"`
	ShippingAddress string            `json:"shippingAddress"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}
