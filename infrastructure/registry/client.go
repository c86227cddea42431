package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/silverium/labelgen/constant"
	"github.com/silverium/labelgen/domain/kepingan"
	appLogger "github.com/silverium/labelgen/infrastructure/logger"
	"github.com/silverium/labelgen/infrastructure/session"
)

// Client talks to the external Silverium product-registry API. Every
// response is decoded into a validated DTO so malformed payloads fail fast
// instead of propagating zero values into the pipeline.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Store
}

// StatusError is returned for non-2xx registry responses
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("registry %s returned status %d", e.Op, e.Status)
}

// NewClient creates a registry client bound to a session store
func NewClient(baseURL string, sess *session.Store) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		session: sess,
	}
}

type kepinganDTO struct {
	UniqueID       string    `json:"uniqueId"`
	ValidationCode string    `json:"validationCode"`
	ProductID      uint      `json:"productId"`
	ProductionDate time.Time `json:"productionDate"`
}

type previewRequest struct {
	Jumlah int `json:"jumlah"`
}

type previewResponse struct {
	Kepingan []kepinganDTO `json:"kepingan"`
}

type saveRequest struct {
	KepinganList []kepinganDTO `json:"kepinganList"`
}

type productResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"nama"`
	Gramasi  string `json:"gramasi"`
	Fineness string `json:"fineness"`
	Series   string `json:"series"`
}

// Product fetches display metadata for one product
func (c *Client) Product(ctx context.Context, productID uint) (*kepingan.Product, error) {
	var resp productResponse
	path := fmt.Sprintf("/api/admin/produk/%d", productID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, "product"); err != nil {
		return nil, err
	}

	if resp.Name == "" || resp.Gramasi == "" {
		appLogger.CtxError(ctx, "Invalid product payload from registry", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRegistry,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeRegistryValidate,
				Message: constant.ErrProductInvalid,
				Type:    constant.ErrTypeRegistry,
			},
			Data: map[string]interface{}{
				constant.DataProductID: productID,
			},
		})
		return nil, errors.New(constant.ErrProductInvalid)
	}

	return &kepingan.Product{
		ID:       resp.ID,
		Name:     resp.Name,
		Gramasi:  resp.Gramasi,
		Fineness: resp.Fineness,
		Series:   resp.Series,
	}, nil
}

// PreviewKepingan reserves count provisional identifier records. The
// response is validated: exact count, non-empty ids and codes, no duplicate
// unique id within the batch.
func (c *Client) PreviewKepingan(ctx context.Context, productID uint, count int) ([]kepingan.Kepingan, error) {
	var resp previewResponse
	path := fmt.Sprintf("/api/admin/produk/%d/preview-qr", productID)
	if err := c.do(ctx, http.MethodPost, path, previewRequest{Jumlah: count}, &resp, "preview-qr"); err != nil {
		return nil, err
	}

	if len(resp.Kepingan) != count {
		appLogger.CtxError(ctx, "Registry returned wrong record count", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRegistry,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeRegistryValidate,
				Message: constant.ErrCountMismatch,
				Type:    constant.ErrTypeRegistry,
			},
			Data: map[string]interface{}{
				constant.DataProductID: productID,
				constant.DataCount:     len(resp.Kepingan),
			},
		})
		return nil, errors.New(constant.ErrCountMismatch)
	}

	seen := make(map[string]bool, len(resp.Kepingan))
	list := make([]kepingan.Kepingan, 0, len(resp.Kepingan))
	for _, dto := range resp.Kepingan {
		if dto.UniqueID == "" {
			return nil, errors.New(constant.ErrEmptyUniqueID)
		}
		if dto.ValidationCode == "" {
			return nil, errors.New(constant.ErrEmptyValidation)
		}
		if seen[dto.UniqueID] {
			return nil, errors.New(constant.ErrDuplicateUniqueID)
		}
		seen[dto.UniqueID] = true

		list = append(list, kepingan.Kepingan{
			UniqueID:       dto.UniqueID,
			ValidationCode: dto.ValidationCode,
			ProductID:      dto.ProductID,
			ProductionDate: dto.ProductionDate,
		})
	}

	appLogger.CtxDebug(ctx, "Identifiers reserved", appLogger.LoggerInfo{
		ContextFunction: constant.CtxRegistry,
		Data: map[string]interface{}{
			constant.DataProductID: productID,
			constant.DataCount:     len(list),
		},
	})

	return list, nil
}

// SaveKepingan commits previously reserved identifiers so they become
// scannable. The registry returns no meaningful body beyond the status.
func (c *Client) SaveKepingan(ctx context.Context, list []kepingan.Kepingan) error {
	if len(list) == 0 {
		return errors.New(constant.ErrEmptyBatch)
	}

	dtos := make([]kepinganDTO, 0, len(list))
	for _, k := range list {
		dtos = append(dtos, kepinganDTO{
			UniqueID:       k.UniqueID,
			ValidationCode: k.ValidationCode,
			ProductID:      k.ProductID,
			ProductionDate: k.ProductionDate,
		})
	}

	return c.do(ctx, http.MethodPost, "/api/admin/produk/save-kepingan", saveRequest{KepinganList: dtos}, nil, "save-kepingan")
}

// do executes one request with bearer auth and decodes the response. A 401
// or 403 clears the session token before surfacing the error.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, op string) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		appLogger.CtxError(ctx, "Registry request failed", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRegistry,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeRegistryRequest,
				Message: err.Error(),
				Type:    constant.ErrTypeRegistry,
			},
			Data: map[string]interface{}{
				constant.DataURL: c.baseURL + path,
			},
		})
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.session.Clear()
		appLogger.CtxWarn(ctx, "Session token rejected, clearing session", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRegistry,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeRegistryAuth,
				Message: constant.ErrUnauthorized,
				Type:    constant.ErrTypeRegistry,
			},
			Data: map[string]interface{}{
				constant.DataStatus: resp.StatusCode,
			},
		})
		return errors.New(constant.ErrUnauthorized)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		appLogger.CtxError(ctx, "Registry returned non-success status", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRegistry,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeRegistryStatus,
				Message: fmt.Sprintf("status %d", resp.StatusCode),
				Type:    constant.ErrTypeRegistry,
			},
			Data: map[string]interface{}{
				constant.DataURL:    c.baseURL + path,
				constant.DataStatus: resp.StatusCode,
			},
		})
		return &StatusError{Op: op, Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		appLogger.CtxError(ctx, "Failed to decode registry response", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRegistry,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeRegistryDecode,
				Message: err.Error(),
				Type:    constant.ErrTypeRegistry,
			},
			Data: map[string]interface{}{
				constant.DataURL: c.baseURL + path,
			},
		})
		return err
	}

	return nil
}
