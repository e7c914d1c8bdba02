// Package seed loads the bundled reference collections. The JSON documents
// are the system of record: read-only once decoded, never written back.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/rmedina/stockroom-backend/pkg/models"
)

//go:embed data/users.json
var usersJSON []byte

//go:embed data/products.json
var productsJSON []byte

//go:embed data/orders.json
var ordersJSON []byte

// Data holds the decoded reference collections in bundle order.
type Data struct {
	Users    []models.User
	Products []models.Product
	Orders   []models.Order
}

// Load decodes the embedded collections. A decode failure means the binary
// shipped with broken data and is fatal at boot.
func Load() (*Data, error) {
	var users struct {
		Users []models.User `json:"users"`
	}
	if err := json.Unmarshal(usersJSON, &users); err != nil {
		return nil, fmt.Errorf("decoding bundled users: %w", err)
	}

	var products struct {
		Products []models.Product `json:"products"`
	}
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("decoding bundled products: %w", err)
	}

	var orders struct {
		Orders []models.Order `json:"orders"`
	}
	if err := json.Unmarshal(ordersJSON, &orders); err != nil {
		return nil, fmt.Errorf("decoding bundled orders: %w", err)
	}

	return &Data{
		Users:    users.Users,
		Products: products.Products,
		Orders:   orders.Orders,
	}, nil
}
