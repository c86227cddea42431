package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/silverium/labelgen/constant"
	"github.com/silverium/labelgen/domain/kepingan"
	appLogger "github.com/silverium/labelgen/infrastructure/logger"
)

// LabelService is the domain surface the handlers depend on
type LabelService interface {
	GenerateBatch(ctx context.Context, productID uint, count int) (*kepingan.Download, error)
	PreviewLabel(ctx context.Context, productID uint) (*kepingan.Download, error)
	GenerateSheet(ctx context.Context, productID uint, count, cols, rows int) (*kepingan.Download, error)
	History(ctx context.Context, limit int) ([]kepingan.BatchRecord, error)
}

// Handler contains service dependencies for API handlers
type Handler struct {
	service LabelService
}

// BatchRequest is the request object for the batch endpoint
type BatchRequest struct {
	Count int `json:"count"`
}

// SheetRequest is the request object for the print sheet endpoint
type SheetRequest struct {
	Count int `json:"count"`
	Cols  int `json:"cols"`
	Rows  int `json:"rows"`
}

// HistoryResponse is the response for the batch history endpoint
type HistoryResponse struct {
	Batches []kepingan.BatchRecord `json:"batches"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// NewHandler creates a new API handler
func NewHandler(service LabelService) *Handler {
	return &Handler{
		service: service,
	}
}

// GenerateBatch handles the reserve → compose → commit → download flow
func (h *Handler) GenerateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingBatchRequest, appLogger.LoggerInfo{
		ContextFunction: constant.CtxGenerateBatch,
	})

	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		appLogger.CtxError(ctx, "Error decoding request body", appLogger.LoggerInfo{
			ContextFunction: constant.CtxGenerateBatch,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIDecodeRequest,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})

		WriteJSONError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	download, err := h.service.GenerateBatch(ctx, productID, req.Count)
	if err != nil {
		h.serviceError(ctx, w, err, constant.CtxGenerateBatch)
		return
	}

	writeDownload(w, download)
}

// PreviewLabel returns a single low-correction label without committing
func (h *Handler) PreviewLabel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	download, err := h.service.PreviewLabel(ctx, productID)
	if err != nil {
		h.serviceError(ctx, w, err, constant.CtxPreviewLabel)
		return
	}

	writeDownload(w, download)
}

// GenerateSheet returns an A4 print sheet PDF of committed labels
func (h *Handler) GenerateSheet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	var req SheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	download, err := h.service.GenerateSheet(ctx, productID, req.Count, req.Cols, req.Rows)
	if err != nil {
		h.serviceError(ctx, w, err, constant.CtxGenerateSheet)
		return
	}

	writeDownload(w, download)
}

// History lists committed batches
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	records, err := h.service.History(ctx, limit)
	if err != nil {
		WriteJSONError(w, "Error retrieving batch history", http.StatusInternalServerError)
		return
	}

	if records == nil {
		records = []kepingan.BatchRecord{}
	}

	WriteJSON(w, HistoryResponse{Batches: records}, http.StatusOK)
}

// productID parses the URL parameter, writing the error response itself
func (h *Handler) productID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "productID")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		WriteJSONError(w, constant.ErrInvalidProductID, http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}

// serviceError maps domain errors onto HTTP statuses
func (h *Handler) serviceError(ctx context.Context, w http.ResponseWriter, err error, fn string) {
	switch err.Error() {
	case constant.ErrInvalidProductID, constant.ErrInvalidCount, constant.ErrCustomSeriesSheet, constant.ErrUnknownTemplate:
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	case constant.ErrBatchInFlight:
		WriteJSONError(w, err.Error(), http.StatusConflict)
		return
	case constant.ErrUnauthorized:
		WriteJSONError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	appLogger.CtxError(ctx, "Label service error", appLogger.LoggerInfo{
		ContextFunction: fn,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeAPIServiceError,
			Message: err.Error(),
			Type:    constant.ErrTypeAPI,
		},
	})

	WriteJSONError(w, "Failed to generate labels", http.StatusInternalServerError)
}

// writeDownload sends a finished artifact as an attachment
func writeDownload(w http.ResponseWriter, d *kepingan.Download) {
	w.Header().Set("Content-Type", d.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+d.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(d.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(d.Data)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		return
	}
}

// WriteJSONError writes a JSON error response
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, ErrorResponse{
		Error: message,
		Code:  statusCode,
	}, statusCode)
}
