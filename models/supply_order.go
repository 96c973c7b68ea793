package models

import "gorm.io/gorm"

// SupplyOrder tracks a purchase of material stock from a supplier.
// MaterialRef is the supplier's own reference for the material (a name or
// SKU), matched against the material catalogue outside this record. Date is
// kept as an ISO-8601 day string because imported spreadsheets rarely agree
// on anything richer.
type SupplyOrder struct {
	gorm.Model
	OrderNumber string  `json:"order_number"`
	MaterialRef string  `gorm:"not null;index" json:"material_ref"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Supplier    string  `json:"supplier"`
	Date        string  `json:"date"`
	Cost        float64 `json:"cost"`
	Status      string  `gorm:"not null;default:pending" json:"status"`
	Notes       string  `gorm:"type:text" json:"notes"`
}
