package importer

import (
	"strings"
	"testing"
)

func TestMapMaterialAliasEquivalence(t *testing.T) {
	t.Parallel()

	byUnitPrice := MapMaterial(map[string]string{"Name": "Olive Oil", "Unit Price": "12.50"})
	byPrice := MapMaterial(map[string]string{"Name": "Olive Oil", "price": "12.50"})

	if byUnitPrice.Cost != 12.5 {
		t.Fatalf("cost via Unit Price = %v, want 12.5", byUnitPrice.Cost)
	}
	if byUnitPrice.Cost != byPrice.Cost {
		t.Fatalf("Unit Price and price headers mapped differently: %v vs %v", byUnitPrice.Cost, byPrice.Cost)
	}
}

func TestMapMaterialDefaults(t *testing.T) {
	t.Parallel()

	material := MapMaterial(map[string]string{"item": "Shea Butter"})

	if material.Name != "Shea Butter" {
		t.Fatalf("Name = %q, want %q", material.Name, "Shea Butter")
	}
	if material.Unit != "kg" {
		t.Fatalf("Unit = %q, want default %q", material.Unit, "kg")
	}
	if material.Type != "other" {
		t.Fatalf("Type = %q, want default %q", material.Type, "other")
	}
	if material.Cost != 0 || material.Stock != 0 {
		t.Fatalf("numeric fields should default to zero, got cost=%v stock=%v", material.Cost, material.Stock)
	}
	if material.Supplier != "" || material.Notes != "" {
		t.Fatalf("absent text fields should be empty, got supplier=%q notes=%q", material.Supplier, material.Notes)
	}
}

func TestMapMaterialCaseInsensitiveHeaders(t *testing.T) {
	t.Parallel()

	material := MapMaterial(map[string]string{
		"  NAME  ":    "Castor Oil",
		"STOCK LEVEL": "40",
		"Vendor":      "Bulk Supplier Inc.",
	})

	if material.Name != "Castor Oil" {
		t.Fatalf("Name = %q, want %q", material.Name, "Castor Oil")
	}
	if material.Stock != 40 {
		t.Fatalf("Stock = %v, want 40", material.Stock)
	}
	if material.Supplier != "Bulk Supplier Inc." {
		t.Fatalf("Supplier = %q, want %q", material.Supplier, "Bulk Supplier Inc.")
	}
}

func TestMapProductDefaults(t *testing.T) {
	t.Parallel()

	product := MapProduct(map[string]string{"title": "Lavender Bar", "Retail Price": "6.99"})

	if product.Name != "Lavender Bar" {
		t.Fatalf("Name = %q, want %q", product.Name, "Lavender Bar")
	}
	if product.Weight != 100 {
		t.Fatalf("Weight = %v, want default 100", product.Weight)
	}
	if product.Price != 6.99 || product.Cost != 6.99 {
		t.Fatalf("price/cost share aliases: price=%v cost=%v, want 6.99", product.Price, product.Cost)
	}
	if product.Status != "active" {
		t.Fatalf("Status = %q, want default %q", product.Status, "active")
	}
	if product.ShopifyID != "" {
		t.Fatalf("ShopifyID = %q, want empty for imports", product.ShopifyID)
	}
}

func TestMapSupplyOrderDefaults(t *testing.T) {
	t.Parallel()

	order := MapSupplyOrder(map[string]string{"Product": "Olive Oil", "Quantity": "25"})

	if order.MaterialRef != "Olive Oil" {
		t.Fatalf("MaterialRef = %q, want %q", order.MaterialRef, "Olive Oil")
	}
	if order.Quantity != 25 {
		t.Fatalf("Quantity = %v, want 25", order.Quantity)
	}
	if order.Unit != "unit" {
		t.Fatalf("Unit = %q, want default %q", order.Unit, "unit")
	}
	if order.Status != "pending" {
		t.Fatalf("Status = %q, want default %q", order.Status, "pending")
	}
	if order.Date == "" {
		t.Fatal("Date should default to today, got empty string")
	}
}

func TestParseFloatOrZero(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{"plain", "12.5", 12.5},
		{"embedded", "$12.50 per kg", 12.5},
		{"negative", "-3", -3},
		{"garbage", "n/a", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseFloatOrZero(tt.value); got != tt.want {
				t.Fatalf("parseFloatOrZero(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestNewRecordIDUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := newRecordID()
		if id == "" || !strings.Contains(id, "-") {
			t.Fatalf("unexpected record id %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate record id generated: %q", id)
		}
		seen[id] = struct{}{}
	}

	// ids are always generated, never taken from the source row
	material := MapMaterial(map[string]string{"Name": "Olive Oil", "id": "42"})
	if material.ID == "42" {
		t.Fatal("mapper must not adopt externally supplied ids")
	}
}
