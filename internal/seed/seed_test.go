package seed

import "testing"

func TestLoadBundledData(t *testing.T) {
	data, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(data.Users) == 0 {
		t.Fatalf("expected bundled users")
	}
	if len(data.Products) == 0 {
		t.Fatalf("expected bundled products")
	}
	if len(data.Orders) == 0 {
		t.Fatalf("expected bundled orders")
	}

	for _, user := range data.Users {
		if !user.Role.IsValid() {
			t.Fatalf("user %s has invalid role %q", user.ID, user.Role)
		}
	}
	for _, product := range data.Products {
		if product.Price.IsNegative() {
			t.Fatalf("product %s has negative price", product.ID)
		}
		if product.Quantity < 0 {
			t.Fatalf("product %s has negative quantity", product.ID)
		}
	}
	for _, order := range data.Orders {
		if !order.Status.IsValid() {
			t.Fatalf("order %s has invalid status %q", order.ID, order.Status)
		}
		if len(order.Items) == 0 {
			t.Fatalf("order %s has no line items", order.ID)
		}
	}
}
