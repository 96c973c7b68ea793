// Command import_csv loads material, product and supply-order CSV exports
// into the database in one run. Any of the three paths may be "-" to skip
// that kind.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/soapyfluffs/soapmaker-web/internal/config"
	"github.com/soapyfluffs/soapmaker-web/internal/db"
	"github.com/soapyfluffs/soapmaker-web/internal/importer"
	"github.com/soapyfluffs/soapmaker-web/internal/units"
	"github.com/soapyfluffs/soapmaker-web/models"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: import_csv <materials.csv> <products.csv> <supply_orders.csv>")
		fmt.Fprintln(os.Stderr, "use - to skip a file")
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2], os.Args[3]); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(materialsPath, productsPath, ordersPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Configure(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	materials, closeMaterials, err := openInput(materialsPath)
	if err != nil {
		return err
	}
	defer closeMaterials()

	products, closeProducts, err := openInput(productsPath)
	if err != nil {
		return err
	}
	defer closeProducts()

	orders, closeOrders, err := openInput(ordersPath)
	if err != nil {
		return err
	}
	defer closeOrders()

	result, err := importer.ImportAll(context.Background(), materials, products, orders)
	if err != nil {
		return err
	}

	if err := persist(database, result); err != nil {
		return fmt.Errorf("persist records: %w", err)
	}

	fmt.Fprintln(os.Stdout, result.Summary())
	return nil
}

// openInput opens one CSV path. "-" stands for an intentionally omitted
// file and yields an empty stream.
func openInput(path string) (io.Reader, func(), error) {
	if strings.TrimSpace(path) == "-" {
		return strings.NewReader(""), func() {}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return file, func() { file.Close() }, nil
}

func persist(database *gorm.DB, result importer.Result) error {
	return database.Transaction(func(tx *gorm.DB) error {
		for _, candidate := range result.Materials {
			materialType := models.NormalizeMaterialType(candidate.Type)
			material := models.Material{
				Name:     candidate.Name,
				Type:     materialType,
				Cost:     candidate.Cost,
				Unit:     units.NormalizeForCategory(candidate.Unit, materialType),
				Stock:    candidate.Stock,
				Supplier: candidate.Supplier,
				Notes:    candidate.Notes,
			}
			if err := tx.Create(&material).Error; err != nil {
				return fmt.Errorf("create material %q: %w", material.Name, err)
			}
		}
		for _, candidate := range result.Products {
			product := models.Product{
				Name:        candidate.Name,
				Description: candidate.Description,
				Weight:      candidate.Weight,
				Price:       candidate.Price,
				Cost:        candidate.Cost,
				SKU:         candidate.SKU,
				Status:      models.NormalizeProductStatus(candidate.Status),
			}
			if err := tx.Create(&product).Error; err != nil {
				return fmt.Errorf("create product %q: %w", product.Name, err)
			}
		}
		for _, candidate := range result.SupplyOrders {
			order := models.SupplyOrder{
				OrderNumber: candidate.OrderNumber,
				MaterialRef: candidate.MaterialRef,
				Quantity:    candidate.Quantity,
				Unit:        candidate.Unit,
				Supplier:    candidate.Supplier,
				Date:        candidate.Date,
				Cost:        candidate.Cost,
				Status:      candidate.Status,
				Notes:       candidate.Notes,
			}
			if err := tx.Create(&order).Error; err != nil {
				return fmt.Errorf("create supply order for %q: %w", order.MaterialRef, err)
			}
		}
		return nil
	})
}
