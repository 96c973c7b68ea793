package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/soapyfluffs/soapmaker-web/internal/documents"
	applog "github.com/soapyfluffs/soapmaker-web/internal/log"
	"github.com/soapyfluffs/soapmaker-web/models"
)

// maxDocumentSize bounds a single uploaded attachment.
const maxDocumentSize = 10 << 20

type qualityCheckRequest struct {
	Name  string    `json:"name"`
	Value string    `json:"value"`
	Date  time.Time `json:"date"`
}

type batchRequest struct {
	RecipeID      uint                  `json:"recipe_id"`
	BatchNumber   string                `json:"batch_number"`
	StartDate     time.Time             `json:"start_date"`
	Status        string                `json:"status"`
	Yield         int                   `json:"yield"`
	ActualCost    float64               `json:"actual_cost"`
	LaborHours    float64               `json:"labor_hours"`
	Notes         string                `json:"notes"`
	QualityChecks []qualityCheckRequest `json:"quality_checks"`
}

// BatchResource handles REST-style interactions for production batches,
// including document uploads at /api/batches/{id}/documents.
func BatchResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	id, action, ok := resourceID(r, "/api/batches")
	if !ok {
		http.NotFound(w, r)
		return
	}

	if id == 0 {
		switch r.Method {
		case http.MethodGet:
			listBatches(w, r)
		case http.MethodPost:
			createBatch(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if action == "documents" {
		batchDocuments(w, r, id)
		return
	}

	switch r.Method {
	case http.MethodGet:
		showBatch(w, r, id)
	case http.MethodPut:
		updateBatch(w, r, id)
	case http.MethodDelete:
		deleteBatch(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listBatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var batches []models.Batch
	err := database.WithContext(ctx).
		Preload("QualityChecks").
		Order("start_date desc").
		Find(&batches).Error
	if err != nil {
		applog.Error(ctx, "failed to list batches", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load batches")
		return
	}
	writeJSON(w, http.StatusOK, batches)
}

func showBatch(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	var batch models.Batch
	err := database.WithContext(ctx).
		Preload("Recipe").
		Preload("QualityChecks").
		Preload("Documents").
		First(&batch, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load batch", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load batch")
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

func createBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload batchRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid batch payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	batch, errMsg := buildBatch(payload)
	if errMsg != "" {
		writeJSONError(w, http.StatusBadRequest, errMsg)
		return
	}

	if err := database.WithContext(ctx).Create(&batch).Error; err != nil {
		applog.Error(ctx, "failed to create batch", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to save batch")
		return
	}

	writeJSON(w, http.StatusCreated, batch)
}

func updateBatch(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()

	var batch models.Batch
	if err := database.WithContext(ctx).First(&batch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load batch for update", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load batch")
		return
	}

	var payload batchRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid batch payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	updated, errMsg := buildBatch(payload)
	if errMsg != "" {
		writeJSONError(w, http.StatusBadRequest, errMsg)
		return
	}
	updated.ID = batch.ID
	updated.CreatedAt = batch.CreatedAt

	// Quality checks are replaced wholesale; documents are managed through
	// their own endpoint and left untouched here.
	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("batch_id = ?", batch.ID).Delete(&models.QualityCheck{}).Error; err != nil {
			return err
		}
		return tx.Save(&updated).Error
	})
	if err != nil {
		applog.Error(ctx, "failed to update batch", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to save batch")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func deleteBatch(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Batch{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("batch_id = ?", id).Delete(&models.QualityCheck{}).Error; err != nil {
			return err
		}
		return tx.Where("batch_id = ?", id).Delete(&models.BatchDocument{}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to delete batch", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete batch")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// batchDocuments lists or attaches documents for one batch. Uploads arrive
// as multipart form data under the "document" field.
func batchDocuments(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()

	var batch models.Batch
	if err := database.WithContext(ctx).First(&batch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load batch for documents", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load batch")
		return
	}

	switch r.Method {
	case http.MethodGet:
		var docs []models.BatchDocument
		if err := database.WithContext(ctx).Where("batch_id = ?", id).Find(&docs).Error; err != nil {
			applog.Error(ctx, "failed to list batch documents", "error", err, "id", id)
			writeJSONError(w, http.StatusInternalServerError, "unable to load documents")
			return
		}
		writeJSON(w, http.StatusOK, docs)
	case http.MethodPost:
		uploadBatchDocument(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func uploadBatchDocument(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		applog.Debug(ctx, "invalid document upload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "document file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxDocumentSize))
	if err != nil {
		applog.Error(ctx, "failed to read uploaded document", "error", err, "batch_id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to read document")
		return
	}

	name := strings.TrimSpace(header.Filename)
	if name == "" {
		name = "untitled"
	}

	doc := documents.Encode(name, header.Header.Get("Content-Type"), content)
	doc.BatchID = id

	if err := database.WithContext(ctx).Create(&doc).Error; err != nil {
		applog.Error(ctx, "failed to save batch document", "error", err, "batch_id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to save document")
		return
	}

	applog.Info(ctx, "batch document stored", "batch_id", id, "name", doc.Name, "pages", doc.Pages)
	writeJSON(w, http.StatusCreated, doc)
}

func buildBatch(payload batchRequest) (models.Batch, string) {
	if payload.RecipeID == 0 {
		return models.Batch{}, "recipe_id is required"
	}

	startDate := payload.StartDate
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}

	batch := models.Batch{
		RecipeID:    payload.RecipeID,
		BatchNumber: strings.TrimSpace(payload.BatchNumber),
		StartDate:   startDate,
		Status:      models.NormalizeBatchStatus(payload.Status),
		Yield:       payload.Yield,
		ActualCost:  payload.ActualCost,
		LaborHours:  payload.LaborHours,
		Notes:       payload.Notes,
	}

	for _, check := range payload.QualityChecks {
		name := strings.TrimSpace(check.Name)
		if name == "" {
			return models.Batch{}, "quality check name is required"
		}
		date := check.Date
		if date.IsZero() {
			date = time.Now().UTC()
		}
		batch.QualityChecks = append(batch.QualityChecks, models.QualityCheck{
			Name:  name,
			Value: check.Value,
			Date:  date,
		})
	}

	return batch, ""
}
