package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/silverium/labelgen/api/middleware"
	"github.com/silverium/labelgen/constant"
	"github.com/silverium/labelgen/domain/wilayah"
	"github.com/silverium/labelgen/infrastructure/cache"
	"github.com/silverium/labelgen/infrastructure/logger"
)

// SelectRequest picks one region at a level for the caller's address form
type SelectRequest struct {
	Level string `json:"level"`
	ID    string `json:"id"`
}

// WilayahHandler serves the cascading region form. Each authenticated
// subject gets its own selector so concurrent forms don't clobber each
// other's cascade.
type WilayahHandler struct {
	lookup wilayah.Lookup
	cache  *cache.NamespaceLRU

	mu sync.Mutex
}

// NewWilayahHandler creates a new region form handler
func NewWilayahHandler(lookup wilayah.Lookup, lru *cache.NamespaceLRU) *WilayahHandler {
	return &WilayahHandler{
		lookup: lookup,
		cache:  lru,
	}
}

// State returns the caller's current cascade snapshot
func (h *WilayahHandler) State(w http.ResponseWriter, r *http.Request) {
	sel := h.selector(r)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(sel.State())
}

// Select records a region choice and returns the refreshed cascade
func (h *WilayahHandler) Select(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.CtxWarn(ctx, "Invalid region select payload", logger.LoggerInfo{
			ContextFunction: constant.CtxSelect,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeAPIDecodeRequest,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		writeError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	level, ok := wilayah.LevelFromName(req.Level)
	if !ok {
		writeError(w, wilayah.ErrInvalidLevel, http.StatusBadRequest)
		return
	}

	sel := h.selector(r)
	if err := sel.Select(ctx, level, req.ID); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(sel.State())
}

// Reset clears the caller's cascade back to an unselected form, keeping the
// province options.
func (h *WilayahHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sel := h.selector(r)
	sel.Reset()

	logger.CtxDebug(r.Context(), "Region form reset", logger.LoggerInfo{
		ContextFunction: constant.CtxSelect,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(sel.State())
}

// selector returns the caller's selector, creating and loading it on first
// use. Creation and the initial load happen under the lock, so a concurrent
// request from the same subject never sees a published-but-unloaded
// selector. Selectors live in the shared LRU keyed by subject, so idle
// subjects age out instead of accumulating forever.
func (h *WilayahHandler) selector(r *http.Request) *wilayah.Selector {
	subject := middleware.Subject(r.Context())
	if subject == "" {
		subject = "anonymous"
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if val, found := h.cache.Get(constant.SelectorNamespace, subject); found {
		if sel, ok := val.(*wilayah.Selector); ok {
			return sel
		}
	}

	sel := wilayah.NewSelector(h.lookup, h.cache)
	sel.Load(r.Context())
	h.cache.Set(constant.SelectorNamespace, subject, sel)
	return sel
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
