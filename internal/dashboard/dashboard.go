// Package dashboard aggregates catalog and order data for the admin
// overview.
package dashboard

import (
	"sort"

	"github.com/rmedina/stockroom-backend/internal/catalog"
	"github.com/rmedina/stockroom-backend/internal/orders"
	"github.com/rmedina/stockroom-backend/pkg/models"
	"github.com/shopspring/decimal"
)

const displayCap = 5

// Stats is the admin overview snapshot.
type Stats struct {
	TotalProducts int              `json:"totalProducts"`
	TotalOrders   int              `json:"totalOrders"`
	TotalRevenue  decimal.Decimal  `json:"totalRevenue"`
	LowStockCount int              `json:"lowStockCount"`
	LowStock      []models.Product `json:"lowStock"`
	RecentOrders  []models.Order   `json:"recentOrders"`
}

// Service derives the overview from the live stores on every call.
type Service struct {
	catalog *catalog.Store
	orders  *orders.Book
}

func NewService(store *catalog.Store, book *orders.Book) *Service {
	return &Service{catalog: store, orders: book}
}

// Stats builds the snapshot. Revenue sums every order regardless of status;
// list sections are capped for display while counts stay uncapped.
func (s *Service) Stats() Stats {
	all := s.orders.List()

	revenue := decimal.Zero
	for _, order := range all {
		revenue = revenue.Add(order.TotalAmount)
	}

	recent := make([]models.Order, len(all))
	copy(recent, all)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > displayCap {
		recent = recent[:displayCap]
	}

	return Stats{
		TotalProducts: s.catalog.Len(),
		TotalOrders:   len(all),
		TotalRevenue:  revenue,
		LowStockCount: len(s.catalog.LowStock(0)),
		LowStock:      s.catalog.LowStock(displayCap),
		RecentOrders:  recent,
	}
}
