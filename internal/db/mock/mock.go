package mock

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/soapyfluffs/soapmaker-web/internal/db"
	applog "github.com/soapyfluffs/soapmaker-web/internal/log"
	"github.com/soapyfluffs/soapmaker-web/models"
)

// New returns an in-memory sqlite database seeded with a small workshop
// dataset, used when no real database is configured.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := gorm.Open(sqlite.Open("file:soapmaker-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	olive := models.Material{
		Name:     "Olive Oil",
		Type:     models.MaterialTypeOil,
		SAPValue: 0.135,
		Cost:     10.00,
		Unit:     "kg",
		Stock:    100,
		Supplier: "Bulk Supplier Inc.",
		Notes:    "Extra virgin olive oil",
	}
	if err := database.WithContext(ctx).Create(&olive).Error; err != nil {
		return err
	}

	recipe := models.Recipe{
		Name:         "Basic Olive Oil Soap",
		Description:  "A gentle, moisturizing soap",
		WaterRatio:   38,
		SuperFat:     5,
		Instructions: "Mix oils, add lye solution, blend until trace, pour into mold.",
		Yield:        12,
		TotalWeight:  1200,
		LaborTime:    45,
		LaborCost:    15,
		Notes:        "Good for sensitive skin",
		Oils: []models.RecipeOil{
			{MaterialID: olive.ID, Weight: 1000, Unit: "g"},
		},
	}
	if err := database.WithContext(ctx).Create(&recipe).Error; err != nil {
		return err
	}

	product := models.Product{
		Name:        "Lavender Soap Bar",
		Description: "Gentle lavender soap with olive oil base",
		Weight:      100,
		Price:       6.99,
		Cost:        2.50,
		SKU:         "LAV-100",
		RecipeID:    &recipe.ID,
		Status:      models.ProductStatusActive,
	}
	if err := database.WithContext(ctx).Create(&product).Error; err != nil {
		return err
	}

	batch := models.Batch{
		RecipeID:    recipe.ID,
		BatchNumber: "B2024-001",
		StartDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:      "completed",
		Yield:       12,
		ActualCost:  30.25,
		LaborHours:  1,
		Notes:       "Batch came out perfect",
		QualityChecks: []models.QualityCheck{
			{Name: "pH Test", Value: "8.5", Date: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)},
		},
	}
	if err := database.WithContext(ctx).Create(&batch).Error; err != nil {
		return err
	}

	settings := models.DefaultSettings()
	if err := database.WithContext(ctx).Create(&settings).Error; err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
