// Package catalog holds the read-only product reference collection and the
// pure views derived from it.
package catalog

import (
	"sort"
	"strings"

	"github.com/rmedina/stockroom-backend/pkg/enums"
	"github.com/rmedina/stockroom-backend/pkg/models"
)

// Store is the immutable product list in bundle order. Admin mutations flow
// through the pending-mutation path and never modify this collection.
type Store struct {
	products []models.Product
	byID     map[string]models.Product
}

func NewStore(products []models.Product) *Store {
	s := &Store{
		products: make([]models.Product, len(products)),
		byID:     make(map[string]models.Product, len(products)),
	}
	copy(s.products, products)
	for _, product := range products {
		s.byID[product.ID] = product
	}
	return s
}

// Get returns the product with the given identifier.
func (s *Store) Get(id string) (models.Product, bool) {
	product, ok := s.byID[id]
	return product, ok
}

// List returns the full catalog in original order.
func (s *Store) List() []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len returns the catalog size.
func (s *Store) Len() int {
	return len(s.products)
}

// Filter retains products whose name or description contains term
// (case-insensitive) and whose category equals category when one is given.
// An empty term or category imposes no constraint on that axis.
func (s *Store) Filter(term, category string) []models.Product {
	result := make([]models.Product, 0, len(s.products))
	needle := strings.ToLower(term)
	for _, product := range s.products {
		if needle != "" &&
			!strings.Contains(strings.ToLower(product.Name), needle) &&
			!strings.Contains(strings.ToLower(product.Description), needle) {
			continue
		}
		if category != "" && product.Category != category {
			continue
		}
		result = append(result, product)
	}
	return result
}

// Categories returns the sorted set of distinct category values.
func (s *Store) Categories() []string {
	seen := make(map[string]struct{}, len(s.products))
	categories := make([]string, 0, len(s.products))
	for _, product := range s.products {
		if _, ok := seen[product.Category]; ok {
			continue
		}
		seen[product.Category] = struct{}{}
		categories = append(categories, product.Category)
	}
	sort.Strings(categories)
	return categories
}

// LowStock returns products below the low-stock threshold in bundle order,
// capped at limit when limit > 0.
func (s *Store) LowStock(limit int) []models.Product {
	low := make([]models.Product, 0)
	for _, product := range s.products {
		if product.Quantity < enums.LowStockThreshold {
			low = append(low, product)
		}
	}
	if limit > 0 && len(low) > limit {
		low = low[:limit]
	}
	return low
}
