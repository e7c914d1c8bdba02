package enums

// StockLevel is the three-way availability classification shown across
// catalog browsing, product detail, and the dashboard.
type StockLevel string

const (
	StockLevelOut StockLevel = "Out of Stock"
	StockLevelLow StockLevel = "Low Stock"
	StockLevelIn  StockLevel = "In Stock"
)

// LowStockThreshold is the quantity below which a product counts as low
// stock everywhere the classification is used.
const LowStockThreshold = 10

// String implements fmt.Stringer.
func (s StockLevel) String() string {
	return string(s)
}

// StockLevelFor classifies an available quantity.
func StockLevelFor(quantity int) StockLevel {
	switch {
	case quantity <= 0:
		return StockLevelOut
	case quantity < LowStockThreshold:
		return StockLevelLow
	default:
		return StockLevelIn
	}
}
