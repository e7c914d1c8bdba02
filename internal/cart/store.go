// Package cart accumulates intended purchases for the active profile and
// derives totals by joining against the catalog.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	pkgerrors "github.com/rmedina/stockroom-backend/pkg/errors"
	"github.com/rmedina/stockroom-backend/pkg/kvstate"
	"github.com/rmedina/stockroom-backend/pkg/logger"
	"github.com/rmedina/stockroom-backend/pkg/models"
	"github.com/shopspring/decimal"
)

// SlotKey is the persisted slot holding the cart entries.
const SlotKey = "inventoryCart"

// Resolver looks up catalog products for joins and totals.
type Resolver interface {
	Get(id string) (models.Product, bool)
}

// ResolvedItem pairs a cart entry with its catalog product.
type ResolvedItem struct {
	models.CartItem
	Product models.Product
}

// Store owns the cart entry set: at most one entry per product, every
// quantity at least 1, entry order preserved. Each mutation runs to
// completion under the lock and rewrites the whole slot before returning.
type Store struct {
	mu      sync.Mutex
	items   []models.CartItem
	catalog Resolver
	slots   kvstate.Store
	logg    *logger.Logger
}

// NewStore builds the cart store and restores persisted entries. A payload
// that fails to decode, or whose entries violate the cart invariants, is
// discarded and the cart reset to empty.
func NewStore(ctx context.Context, catalog Resolver, slots kvstate.Store, logg *logger.Logger) (*Store, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog resolver required")
	}
	if slots == nil {
		return nil, fmt.Errorf("slot store required")
	}

	s := &Store{
		catalog: catalog,
		slots:   slots,
		logg:    logg,
	}
	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) restore(ctx context.Context) error {
	payload, ok, err := s.slots.Get(ctx, SlotKey)
	if err != nil {
		return fmt.Errorf("loading cart slot: %w", err)
	}
	if !ok {
		return nil
	}

	var saved []models.CartItem
	if err := json.Unmarshal(payload, &saved); err != nil || !validEntrySet(saved) {
		if s.logg != nil {
			s.logg.Warn(ctx, "cart.restore.malformed_slot_discarded")
		}
		return s.slots.Delete(ctx, SlotKey)
	}

	s.items = saved
	return nil
}

func validEntrySet(items []models.CartItem) bool {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.ProductID == "" || item.Quantity < 1 {
			return false
		}
		if _, dup := seen[item.ProductID]; dup {
			return false
		}
		seen[item.ProductID] = struct{}{}
	}
	return true
}

// Add increments an existing entry by quantity or appends a new entry at
// the end. Stock is not clamped here; callers clamp before invoking.
func (s *Store) Add(ctx context.Context, productID string, quantity int) error {
	if productID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, models.CartItem{ProductID: productID, Quantity: quantity})
	}
	return s.persist(ctx)
}

// Remove deletes the entry for productID. Absent entries are a silent no-op.
func (s *Store) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
	return s.persist(ctx)
}

func (s *Store) removeLocked(productID string) {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// UpdateQuantity replaces the stored quantity for productID. A quantity of
// zero or below behaves exactly as Remove. An absent entry is a no-op; the
// update path never inserts.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
		return s.persist(ctx)
	}

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	return s.persist(ctx)
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return s.persist(ctx)
}

func (s *Store) persist(ctx context.Context) error {
	entries := s.items
	if entries == nil {
		entries = []models.CartItem{}
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := s.slots.Put(ctx, SlotKey, payload); err != nil {
		return fmt.Errorf("persisting cart: %w", err)
	}
	return nil
}

// Items returns the raw entry set in entry order.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems sums quantities across all entries.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// WithProducts joins entries against the catalog preserving entry order.
// Entries whose product no longer resolves are dropped; stale slot state
// pointing at removed catalog data must not surface downstream.
func (s *Store) WithProducts() []ResolvedItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	resolved := make([]ResolvedItem, 0, len(s.items))
	for _, item := range s.items {
		product, ok := s.catalog.Get(item.ProductID)
		if !ok {
			continue
		}
		resolved = append(resolved, ResolvedItem{CartItem: item, Product: product})
	}
	return resolved
}

// TotalPrice sums price × quantity over resolvable entries.
func (s *Store) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.WithProducts() {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
