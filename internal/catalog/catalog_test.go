package catalog

import (
	"testing"

	"github.com/rmedina/stockroom-backend/pkg/enums"
	"github.com/rmedina/stockroom-backend/pkg/models"
	"github.com/shopspring/decimal"
)

func testProducts() []models.Product {
	return []models.Product{
		{ID: "p1", Name: "Wireless Headphones", Description: "Bluetooth over-ear", Price: decimal.NewFromFloat(129.99), Quantity: 45, Category: "Electronics"},
		{ID: "p2", Name: "Mechanical Keyboard", Description: "Hot-swappable switches", Price: decimal.NewFromFloat(89.50), Quantity: 8, Category: "Electronics"},
		{ID: "p3", Name: "Pour-Over Set", Description: "Ceramic dripper for coffee", Price: decimal.NewFromFloat(42), Quantity: 0, Category: "Kitchen"},
		{ID: "p4", Name: "Skillet", Description: "Cast iron, pre-seasoned", Price: decimal.NewFromFloat(34.95), Quantity: 10, Category: "Kitchen"},
	}
}

func TestGetAndList(t *testing.T) {
	store := NewStore(testProducts())

	product, ok := store.Get("p2")
	if !ok || product.Name != "Mechanical Keyboard" {
		t.Fatalf("expected p2 lookup to resolve, got %+v ok=%v", product, ok)
	}
	if _, ok := store.Get("missing"); ok {
		t.Fatalf("expected boolean miss for unknown id")
	}

	list := store.List()
	if len(list) != 4 {
		t.Fatalf("expected 4 products, got %d", len(list))
	}
	for i, want := range []string{"p1", "p2", "p3", "p4"} {
		if list[i].ID != want {
			t.Fatalf("expected original order, got %s at %d", list[i].ID, i)
		}
	}
}

func TestFilterEmptyAxesReturnsEverything(t *testing.T) {
	store := NewStore(testProducts())
	result := store.Filter("", "")
	if len(result) != store.Len() {
		t.Fatalf("empty filter must return the full list, got %d", len(result))
	}
	for i, want := range []string{"p1", "p2", "p3", "p4"} {
		if result[i].ID != want {
			t.Fatalf("filter must preserve original order, got %s at %d", result[i].ID, i)
		}
	}
}

func TestFilterMatchesNameAndDescription(t *testing.T) {
	store := NewStore(testProducts())

	tests := []struct {
		name     string
		term     string
		category string
		want     []string
	}{
		{name: "term against name, case-insensitive", term: "KEYBOARD", want: []string{"p2"}},
		{name: "term against description", term: "coffee", want: []string{"p3"}},
		{name: "category only", category: "Kitchen", want: []string{"p3", "p4"}},
		{name: "term and category must both hold", term: "cast", category: "Electronics", want: []string{}},
		{name: "category is exact match", category: "kitchen", want: []string{}},
		{name: "no matches", term: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := store.Filter(tt.term, tt.category)
			if len(result) != len(tt.want) {
				t.Fatalf("expected %d results, got %d", len(tt.want), len(result))
			}
			for i, id := range tt.want {
				if result[i].ID != id {
					t.Fatalf("expected %s at %d, got %s", id, i, result[i].ID)
				}
			}
		})
	}
}

func TestCategoriesSortedUnique(t *testing.T) {
	store := NewStore(testProducts())
	categories := store.Categories()
	want := []string{"Electronics", "Kitchen"}
	if len(categories) != len(want) {
		t.Fatalf("expected %v, got %v", want, categories)
	}
	for i := range want {
		if categories[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, categories)
		}
	}
}

func TestLowStock(t *testing.T) {
	store := NewStore(testProducts())

	low := store.LowStock(0)
	if len(low) != 2 {
		t.Fatalf("expected p2 and p3 below threshold, got %d", len(low))
	}
	if low[0].ID != "p2" || low[1].ID != "p3" {
		t.Fatalf("expected bundle order p2,p3 got %s,%s", low[0].ID, low[1].ID)
	}

	capped := store.LowStock(1)
	if len(capped) != 1 || capped[0].ID != "p2" {
		t.Fatalf("expected cap to keep first entry, got %+v", capped)
	}
}

func TestStockLevelClassification(t *testing.T) {
	tests := []struct {
		quantity int
		want     enums.StockLevel
	}{
		{quantity: 0, want: enums.StockLevelOut},
		{quantity: -3, want: enums.StockLevelOut},
		{quantity: 1, want: enums.StockLevelLow},
		{quantity: 9, want: enums.StockLevelLow},
		{quantity: 10, want: enums.StockLevelIn},
		{quantity: 45, want: enums.StockLevelIn},
	}
	for _, tt := range tests {
		if got := enums.StockLevelFor(tt.quantity); got != tt.want {
			t.Fatalf("quantity %d: expected %q got %q", tt.quantity, tt.want, got)
		}
	}
}
