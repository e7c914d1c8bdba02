package models

// CartItem is one intended purchase line. The cart holds at most one item
// per product ID and every stored quantity is at least 1.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
