package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// BatchStatuses lists the production stages a batch moves through, in order.
var BatchStatuses = []string{
	"planned",
	"in-progress",
	"curing",
	"completed",
	"quality-check",
	"packaged",
	"shipped",
}

// DefaultBatchStatus is applied to new batches with no explicit status.
const DefaultBatchStatus = "planned"

// Batch records one production run of a recipe. Deleting the recipe does not
// delete the batch; lookups then fall back to an "unknown recipe" projection.
type Batch struct {
	gorm.Model
	RecipeID      uint            `gorm:"not null" json:"recipe_id"`
	Recipe        *Recipe         `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
	BatchNumber   string          `gorm:"index" json:"batch_number"`
	StartDate     time.Time       `json:"start_date"`
	Status        string          `gorm:"not null;default:planned" json:"status"`
	Yield         int             `json:"yield"`
	ActualCost    float64         `json:"actual_cost"`
	LaborHours    float64         `json:"labor_hours"`
	Notes         string          `gorm:"type:text" json:"notes"`
	QualityChecks []QualityCheck  `gorm:"foreignKey:BatchID" json:"quality_checks"`
	Documents     []BatchDocument `gorm:"foreignKey:BatchID" json:"documents"`
}

// QualityCheck is a named measurement taken against a batch, e.g. a pH test.
type QualityCheck struct {
	gorm.Model
	BatchID uint      `gorm:"not null" json:"batch_id"`
	Name    string    `gorm:"not null" json:"name"`
	Value   string    `json:"value"`
	Date    time.Time `json:"date"`
}

// BatchDocument is a file attached to a batch. Content is a self-contained
// base64 data URI so the record needs no companion blob store. Pages is
// populated for PDF uploads and zero otherwise.
type BatchDocument struct {
	gorm.Model
	BatchID     uint   `gorm:"not null" json:"batch_id"`
	Name        string `gorm:"not null" json:"name"`
	ContentType string `json:"content_type"`
	Content     string `gorm:"type:text" json:"content"`
	Pages       int    `json:"pages"`
}

// ValidBatchStatus reports whether the value is a recognised batch status.
func ValidBatchStatus(value string) bool {
	for _, status := range BatchStatuses {
		if status == value {
			return true
		}
	}
	return false
}

// NormalizeBatchStatus lowercases and trims the value, falling back to
// DefaultBatchStatus for anything unrecognised.
func NormalizeBatchStatus(value string) string {
	cleaned := strings.ToLower(strings.TrimSpace(value))
	if ValidBatchStatus(cleaned) {
		return cleaned
	}
	return DefaultBatchStatus
}
