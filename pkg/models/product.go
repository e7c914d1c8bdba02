package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog listing. The seeded catalog is the system of record
// and is never mutated in place; admin edits flow through the pending
// mutation path instead.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
