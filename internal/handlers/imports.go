package handlers

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"gorm.io/gorm"

	"github.com/soapyfluffs/soapmaker-web/internal/importer"
	applog "github.com/soapyfluffs/soapmaker-web/internal/log"
	"github.com/soapyfluffs/soapmaker-web/internal/units"
	"github.com/soapyfluffs/soapmaker-web/models"
)

// maxImportSize bounds the combined multipart import upload.
const maxImportSize = 32 << 20

type importResponse struct {
	Summary      string `json:"summary"`
	Materials    int    `json:"materials"`
	Products     int    `json:"products"`
	SupplyOrders int    `json:"supply_orders"`
	Warning      string `json:"warning,omitempty"`
}

// ImportCSV ingests up to three CSV files in one multipart request under the
// "materials", "products" and "supply_orders" fields. The run is atomic: a
// parse failure in any file rejects the whole upload and nothing is saved.
func ImportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if database == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		applog.Debug(ctx, "invalid import upload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	materials, closeMaterials := importFile(r, "materials")
	defer closeMaterials()
	products, closeProducts := importFile(r, "products")
	defer closeProducts()
	supplyOrders, closeOrders := importFile(r, "supply_orders")
	defer closeOrders()

	result, err := importer.ImportAll(ctx, materials, products, supplyOrders)
	if err != nil {
		applog.Error(ctx, "csv import failed", "error", err)
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := persistImport(ctx, result); err != nil {
		applog.Error(ctx, "failed to persist import", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to save imported records")
		return
	}

	summary := result.Summary()
	sessionPut(r, sessionImportSummaryKey, summary)
	applog.Info(ctx, "csv import completed",
		"materials", len(result.Materials),
		"products", len(result.Products),
		"supply_orders", len(result.SupplyOrders))

	resp := importResponse{
		Summary:      summary,
		Materials:    len(result.Materials),
		Products:     len(result.Products),
		SupplyOrders: len(result.SupplyOrders),
	}
	if result.Total() == 0 {
		resp.Warning = "no data imported"
	}
	writeJSON(w, http.StatusOK, resp)
}

// importFile opens one named upload, tolerating its absence. An absent file
// becomes an empty CSV stream so the pipeline sees three inputs either way.
func importFile(r *http.Request, field string) (io.Reader, func()) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return emptyCSV{}, func() {}
	}
	return file, func() { closeMultipart(file) }
}

func closeMultipart(file multipart.File) {
	if file != nil {
		file.Close()
	}
}

// emptyCSV stands in for an omitted upload.
type emptyCSV struct{}

func (emptyCSV) Read([]byte) (int, error) { return 0, io.EOF }

// persistImport writes all accepted records in one transaction so a
// database failure cannot leave a partial import behind.
func persistImport(ctx context.Context, result importer.Result) error {
	return database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
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
				return err
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
				return err
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
				return err
			}
		}
		return nil
	})
}
