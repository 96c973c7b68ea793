// Package importer normalizes arbitrary spreadsheet exports onto the
// internal material, product and supply-order shapes. Column headers are
// matched case-insensitively against per-field alias lists, numeric cells
// parse tolerantly to zero, and missing fields take domain defaults; mapping
// a row never fails.
package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/soapyfluffs/soapmaker-web/models"
)

// Kind selects which alias table a row is mapped through.
type Kind string

const (
	KindMaterial    Kind = "materials"
	KindProduct     Kind = "products"
	KindSupplyOrder Kind = "supply orders"
)

var numberPattern = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// Material is a candidate material record assembled from one CSV row.
type Material struct {
	ID       string
	Name     string
	Type     string
	Cost     float64
	Unit     string
	Stock    float64
	Supplier string
	Notes    string
}

// Product is a candidate product record assembled from one CSV row.
type Product struct {
	ID          string
	Name        string
	Description string
	Weight      float64
	Price       float64
	Cost        float64
	SKU         string
	ShopifyID   string
	Status      string
}

// SupplyOrder is a candidate supply-order record assembled from one CSV row.
type SupplyOrder struct {
	ID          string
	OrderNumber string
	MaterialRef string
	Quantity    float64
	Unit        string
	Supplier    string
	Date        string
	Cost        float64
	Status      string
	Notes       string
}

// Alias lists are scanned in priority order; matching is case-insensitive
// against trimmed header names.
var (
	materialNameAliases     = []string{"name", "material", "item"}
	materialTypeAliases     = []string{"category", "type"}
	materialCostAliases     = []string{"unit price", "cost", "price"}
	materialUnitAliases     = []string{"unit", "measure unit"}
	materialStockAliases    = []string{"stock level", "stock", "quantity", "amount"}
	materialSupplierAliases = []string{"supplier", "vendor"}
	materialNotesAliases    = []string{"notes", "description"}

	productNameAliases   = []string{"name", "product", "title"}
	productDescAliases   = []string{"notes", "description", "details"}
	productWeightAliases = []string{"stock level", "weight", "size"}
	productPriceAliases  = []string{"retail price", "unit price", "price", "cost"}
	productSKUAliases    = []string{"sku", "code"}
	productStatusAliases = []string{"category", "status", "state"}

	orderRefAliases      = []string{"product", "sku", "name", "material", "item", "materialid"}
	orderQuantityAliases = []string{"quantity", "amount", "volume"}
	orderUnitAliases     = []string{"unit type", "unit", "measure unit"}
	orderSupplierAliases = []string{"supplier", "vendor"}
	orderDateAliases     = []string{"placed date", "expected date", "date", "order date"}
	orderCostAliases     = []string{"total price", "unit price", "cost", "price"}
	orderStatusAliases   = []string{"status", "state"}
	orderNumberAliases   = []string{"order number", "order id"}
	orderNotesAliases    = []string{"notes"}
)

// MapMaterial projects a raw row onto a candidate material. Absent fields
// become empty strings or domain defaults, never errors.
func MapMaterial(row map[string]string) Material {
	normalized := normalizeRow(row)

	return Material{
		ID:       newRecordID(),
		Name:     findField(normalized, materialNameAliases),
		Type:     fieldOrDefault(normalized, materialTypeAliases, models.MaterialTypeOther),
		Cost:     parseFloatOrZero(findField(normalized, materialCostAliases)),
		Unit:     fieldOrDefault(normalized, materialUnitAliases, "kg"),
		Stock:    parseFloatOrZero(findField(normalized, materialStockAliases)),
		Supplier: findField(normalized, materialSupplierAliases),
		Notes:    findField(normalized, materialNotesAliases),
	}
}

// MapProduct projects a raw row onto a candidate product. Weight defaults to
// 100 grams when the source column is missing or unparsable, and price and
// cost share one alias list because supplier exports rarely separate them.
func MapProduct(row map[string]string) Product {
	normalized := normalizeRow(row)

	weight := parseFloatOrZero(findField(normalized, productWeightAliases))
	if weight == 0 {
		weight = 100
	}

	return Product{
		ID:          newRecordID(),
		Name:        findField(normalized, productNameAliases),
		Description: findField(normalized, productDescAliases),
		Weight:      weight,
		Price:       parseFloatOrZero(findField(normalized, productPriceAliases)),
		Cost:        parseFloatOrZero(findField(normalized, productPriceAliases)),
		SKU:         findField(normalized, productSKUAliases),
		Status:      fieldOrDefault(normalized, productStatusAliases, models.ProductStatusActive),
	}
}

// MapSupplyOrder projects a raw row onto a candidate supply order. A missing
// order date defaults to today.
func MapSupplyOrder(row map[string]string) SupplyOrder {
	normalized := normalizeRow(row)

	return SupplyOrder{
		ID:          newRecordID(),
		OrderNumber: findField(normalized, orderNumberAliases),
		MaterialRef: findField(normalized, orderRefAliases),
		Quantity:    parseFloatOrZero(findField(normalized, orderQuantityAliases)),
		Unit:        fieldOrDefault(normalized, orderUnitAliases, "unit"),
		Supplier:    findField(normalized, orderSupplierAliases),
		Date:        fieldOrDefault(normalized, orderDateAliases, time.Now().UTC().Format("2006-01-02")),
		Cost:        parseFloatOrZero(findField(normalized, orderCostAliases)),
		Status:      fieldOrDefault(normalized, orderStatusAliases, "pending"),
		Notes:       findField(normalized, orderNotesAliases),
	}
}

func normalizeRow(row map[string]string) map[string]string {
	normalized := make(map[string]string, len(row))
	for key, value := range row {
		normalized[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return normalized
}

func findField(normalized map[string]string, aliases []string) string {
	for _, alias := range aliases {
		if value, ok := normalized[alias]; ok {
			return value
		}
	}
	return ""
}

func fieldOrDefault(normalized map[string]string, aliases []string, def string) string {
	if value := findField(normalized, aliases); value != "" {
		return value
	}
	return def
}

// parseFloatOrZero extracts the first numeric token from the value and
// substitutes zero on parse failure.
func parseFloatOrZero(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	match := numberPattern.FindString(value)
	if match == "" {
		return 0
	}

	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// newRecordID assigns every mapped record a fresh identifier regardless of
// the source data: a millisecond timestamp with a random suffix.
func newRecordID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
