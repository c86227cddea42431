package kepingan

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/silverium/labelgen/constant"
	"github.com/silverium/labelgen/infrastructure/cache"
	"github.com/silverium/labelgen/infrastructure/logger"
)

// MaxBatchSize caps a single reservation request
const MaxBatchSize = 100

// DefaultHistoryLimit bounds journal listings when the caller gives none
const DefaultHistoryLimit = 50

// Service drives the reserve → compose → commit → package pipeline
type Service struct {
	registry Registry
	composer Composer
	packager Packager
	sheets   SheetBuilder
	journal  Journal
	cache    *cache.NamespaceLRU

	mu       sync.Mutex
	inflight map[uint]bool
}

// NewService creates a new kepingan service
func NewService(registry Registry, composer Composer, packager Packager, sheets SheetBuilder, journal Journal, lru *cache.NamespaceLRU) *Service {
	ctx := logger.NewRequestContext()

	logger.CtxDebug(ctx, "Creating kepingan service", logger.LoggerInfo{
		ContextFunction: constant.CtxDomain,
		Data: map[string]interface{}{
			constant.DataService: "kepingan",
		},
	})

	return &Service{
		registry: registry,
		composer: composer,
		packager: packager,
		sheets:   sheets,
		journal:  journal,
		cache:    lru,
		inflight: make(map[uint]bool),
	}
}

// GenerateBatch reserves count identifiers for the product, composes one
// label per identifier, commits the reservation and only then serializes the
// archive. A custom-series product short-circuits to a single generic QR with
// no reservation or commit.
func (s *Service) GenerateBatch(ctx context.Context, productID uint, count int) (*Download, error) {
	if err := s.validate(ctx, productID, count); err != nil {
		return nil, err
	}

	if !s.acquire(productID) {
		logger.CtxWarn(ctx, "Batch already in flight for product", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateBatch,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeBatchInFlight,
				Message: constant.ErrBatchInFlight,
				Type:    constant.ErrTypeValidation,
			},
			Data: map[string]interface{}{
				constant.DataProductID: productID,
			},
		})
		return nil, errors.New(constant.ErrBatchInFlight)
	}
	defer s.release(productID)

	product, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.Series == constant.SeriesCustom {
		return s.generateCustom(ctx, product)
	}

	entries, list, err := s.composeBatch(ctx, product, count)
	if err != nil {
		return nil, err
	}

	// Commit ordering contract: the registry must accept the reservation
	// before any archive exists, otherwise downloaded labels could reference
	// identifiers that were never saved.
	if err := s.commit(ctx, product, list); err != nil {
		return nil, err
	}

	data, err := s.packager.Pack(entries)
	if err != nil {
		logger.CtxError(ctx, "Failed to serialize archive", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateBatch,
			Error: &logger.CustomError{
				Code:    constant.ErrCodePackage,
				Message: err.Error(),
				Type:    constant.ErrTypeArchive,
			},
			Data: map[string]interface{}{
				constant.DataProductID: productID,
			},
		})
		return nil, err
	}

	filename := archiveName(product)
	s.record(ctx, product, len(list), filename)

	logger.CtxInfo(ctx, "Label batch generated", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerateBatch,
		Data: map[string]interface{}{
			constant.DataProductID:   productID,
			constant.DataCount:       len(list),
			constant.DataArchiveName: filename,
		},
	})

	return &Download{
		Filename:    filename,
		ContentType: "application/zip",
		Data:        data,
	}, nil
}

// PreviewLabel reserves a single identifier and composes one low-correction
// label without committing, so the identifier stays provisional.
func (s *Service) PreviewLabel(ctx context.Context, productID uint) (*Download, error) {
	if productID == 0 {
		return nil, errors.New(constant.ErrInvalidProductID)
	}

	// Previews reserve through the same registry call as batches, so they
	// share the per-product guard: at most one reservation in flight.
	if !s.acquire(productID) {
		logger.CtxWarn(ctx, "Batch already in flight for product", logger.LoggerInfo{
			ContextFunction: constant.CtxPreviewLabel,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeBatchInFlight,
				Message: constant.ErrBatchInFlight,
				Type:    constant.ErrTypeValidation,
			},
			Data: map[string]interface{}{
				constant.DataProductID: productID,
			},
		})
		return nil, errors.New(constant.ErrBatchInFlight)
	}
	defer s.release(productID)

	product, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.Series == constant.SeriesCustom {
		return s.generateCustom(ctx, product)
	}

	list, err := s.registry.PreviewKepingan(ctx, productID, 1)
	if err != nil {
		logger.CtxError(ctx, "Failed to reserve preview identifier", logger.LoggerInfo{
			ContextFunction: constant.CtxPreviewLabel,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeReservation,
				Message: err.Error(),
				Type:    constant.ErrTypeRegistry,
			},
			Data: map[string]interface{}{
				constant.DataProductID: productID,
			},
		})
		return nil, err
	}
	if len(list) == 0 {
		return nil, errors.New(constant.ErrEmptyBatch)
	}

	img, err := s.composer.ComposePreview(list[0], *product)
	if err != nil {
		logger.CtxError(ctx, "Failed to compose preview label", logger.LoggerInfo{
			ContextFunction: constant.CtxPreviewLabel,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeCompose,
				Message: err.Error(),
				Type:    constant.ErrTypeCompose,
			},
			Data: map[string]interface{}{
				constant.DataProductID: productID,
				constant.DataUniqueID:  list[0].UniqueID,
			},
		})
		return nil, err
	}

	return &Download{
		Filename:    fmt.Sprintf("preview_%s.png", list[0].Slice()),
		ContentType: "image/png",
		Data:        img,
	}, nil
}

// GenerateSheet runs the same pipeline as GenerateBatch but lays the labels
// out on a printable sheet instead of a zip. The commit still strictly
// precedes sheet serialization.
func (s *Service) GenerateSheet(ctx context.Context, productID uint, count, cols, rows int) (*Download, error) {
	if err := s.validate(ctx, productID, count); err != nil {
		return nil, err
	}

	if !s.acquire(productID) {
		return nil, errors.New(constant.ErrBatchInFlight)
	}
	defer s.release(productID)

	product, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.Series == constant.SeriesCustom {
		return nil, errors.New(constant.ErrCustomSeriesSheet)
	}

	entries, list, err := s.composeBatch(ctx, product, count)
	if err != nil {
		return nil, err
	}

	if err := s.commit(ctx, product, list); err != nil {
		return nil, err
	}

	data, err := s.sheets.Build(entries, cols, rows)
	if err != nil {
		logger.CtxError(ctx, "Failed to build print sheet", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateSheet,
			Error: &logger.CustomError{
				Code:    constant.ErrCodePackage,
				Message: err.Error(),
				Type:    constant.ErrTypeArchive,
			},
			Data: map[string]interface{}{
				constant.DataProductID: productID,
			},
		})
		return nil, err
	}

	filename := sheetName(product)
	s.record(ctx, product, len(list), filename)

	logger.CtxInfo(ctx, "Print sheet generated", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerateSheet,
		Data: map[string]interface{}{
			constant.DataProductID:   productID,
			constant.DataCount:       len(list),
			constant.DataArchiveName: filename,
		},
	})

	return &Download{
		Filename:    filename,
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

// History lists committed batches, newest first
func (s *Service) History(ctx context.Context, limit int) ([]BatchRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	records, err := s.journal.List(ctx, limit)
	if err != nil {
		logger.CtxError(ctx, "Failed to list batch history", logger.LoggerInfo{
			ContextFunction: constant.CtxHistory,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeJournal,
				Message: err.Error(),
				Type:    constant.ErrTypeJournal,
			},
		})
		return nil, err
	}

	return records, nil
}

func (s *Service) validate(ctx context.Context, productID uint, count int) error {
	if productID == 0 {
		logger.CtxWarn(ctx, "Invalid product id", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateBatch,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeInvalidProductID,
				Message: constant.ErrInvalidProductID,
				Type:    constant.ErrTypeValidation,
			},
		})
		return errors.New(constant.ErrInvalidProductID)
	}

	if count <= 0 || count > MaxBatchSize {
		logger.CtxWarn(ctx, "Invalid batch count", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateBatch,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeInvalidCount,
				Message: constant.ErrInvalidCount,
				Type:    constant.ErrTypeValidation,
			},
			Data: map[string]interface{}{
				constant.DataProductID: productID,
				constant.DataCount:     count,
			},
		})
		return errors.New(constant.ErrInvalidCount)
	}

	return nil
}

// product fetches display metadata, going through the cache first
func (s *Service) product(ctx context.Context, productID uint) (*Product, error) {
	key := strconv.FormatUint(uint64(productID), 10)
	if val, found := s.cache.Get(constant.ProductNamespace, key); found {
		if p, ok := val.(*Product); ok {
			return p, nil
		}
	}

	product, err := s.registry.Product(ctx, productID)
	if err != nil {
		logger.CtxError(ctx, "Failed to fetch product metadata", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateBatch,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeRegistryRequest,
				Message: err.Error(),
				Type:    constant.ErrTypeRegistry,
			},
			Data: map[string]interface{}{
				constant.DataProductID: productID,
			},
		})
		return nil, err
	}

	s.cache.Set(constant.ProductNamespace, key, product)
	return product, nil
}

// composeBatch reserves identifiers and composes one label per record. Any
// compositing failure aborts the whole batch before a commit is attempted.
func (s *Service) composeBatch(ctx context.Context, product *Product, count int) ([]Entry, []Kepingan, error) {
	list, err := s.registry.PreviewKepingan(ctx, product.ID, count)
	if err != nil {
		logger.CtxError(ctx, "Failed to reserve identifiers", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateBatch,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeReservation,
				Message: err.Error(),
				Type:    constant.ErrTypeRegistry,
			},
			Data: map[string]interface{}{
				constant.DataProductID: product.ID,
				constant.DataCount:     count,
			},
		})
		return nil, nil, err
	}

	if len(list) == 0 {
		return nil, nil, errors.New(constant.ErrEmptyBatch)
	}

	// Draws are sequential on purpose: the compositor reuses one raster
	// pipeline per iteration and is not safe for concurrent use.
	entries := make([]Entry, 0, len(list))
	for _, k := range list {
		img, composeErr := s.composer.ComposeLabel(k, *product)
		if composeErr != nil {
			logger.CtxError(ctx, "Failed to compose label, aborting batch", logger.LoggerInfo{
				ContextFunction: constant.CtxGenerateBatch,
				Error: &logger.CustomError{
					Code:    constant.ErrCodeCompose,
					Message: composeErr.Error(),
					Type:    constant.ErrTypeCompose,
				},
				Data: map[string]interface{}{
					constant.DataProductID: product.ID,
					constant.DataUniqueID:  k.UniqueID,
				},
			})
			return nil, nil, composeErr
		}

		entries = append(entries, Entry{
			Name: fmt.Sprintf("qrcode_%s_%s.png", k.Slice(), k.ValidationCode),
			Data: img,
		})
	}

	return entries, list, nil
}

func (s *Service) commit(ctx context.Context, product *Product, list []Kepingan) error {
	if len(list) == 0 {
		return errors.New(constant.ErrEmptyBatch)
	}

	if err := s.registry.SaveKepingan(ctx, list); err != nil {
		logger.CtxError(ctx, "Failed to commit identifiers, no archive produced", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateBatch,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeCommit,
				Message: err.Error(),
				Type:    constant.ErrTypeRegistry,
			},
			Data: map[string]interface{}{
				constant.DataProductID: product.ID,
				constant.DataCount:     len(list),
			},
		})
		return err
	}

	logger.CtxInfo(ctx, "Identifiers committed", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerateBatch,
		Data: map[string]interface{}{
			constant.DataProductID: product.ID,
			constant.DataCount:     len(list),
		},
	})

	return nil
}

func (s *Service) generateCustom(ctx context.Context, product *Product) (*Download, error) {
	img, err := s.composer.ComposeProduct(product.ID)
	if err != nil {
		logger.CtxError(ctx, "Failed to compose product QR", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateBatch,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeCompose,
				Message: err.Error(),
				Type:    constant.ErrTypeCompose,
			},
			Data: map[string]interface{}{
				constant.DataProductID: product.ID,
			},
		})
		return nil, err
	}

	logger.CtxInfo(ctx, "Custom series product QR generated", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerateBatch,
		Data: map[string]interface{}{
			constant.DataProductID: product.ID,
			constant.DataSeries:    product.Series,
		},
	})

	return &Download{
		Filename:    fmt.Sprintf("qr_product_%d.png", product.ID),
		ContentType: "image/png",
		Data:        img,
	}, nil
}

// record journals a committed batch. Journal failures are logged but do not
// fail the batch: the registry already accepted the identifiers.
func (s *Service) record(ctx context.Context, product *Product, count int, filename string) {
	rec := &BatchRecord{
		ProductID:   product.ID,
		ProductName: product.Name,
		Series:      product.Series,
		Count:       count,
		ArchiveName: filename,
	}

	if err := s.journal.Record(ctx, rec); err != nil {
		logger.CtxWarn(ctx, "Failed to journal batch", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateBatch,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeJournal,
				Message: err.Error(),
				Type:    constant.ErrTypeJournal,
			},
			Data: map[string]interface{}{
				constant.DataProductID:   product.ID,
				constant.DataArchiveName: filename,
			},
		})
	}
}

func (s *Service) acquire(productID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[productID] {
		return false
	}
	s.inflight[productID] = true
	return true
}

func (s *Service) release(productID uint) {
	s.mu.Lock()
	delete(s.inflight, productID)
	s.mu.Unlock()
}

func archiveName(p *Product) string {
	return fmt.Sprintf("QR_%s_%s_%s.zip", titleSeries(p.Series), compactName(p.Name), p.Gramasi)
}

func sheetName(p *Product) string {
	return fmt.Sprintf("QR_%s_%s_%s.pdf", titleSeries(p.Series), compactName(p.Name), p.Gramasi)
}

func titleSeries(series string) string {
	if series == "" {
		return "Generic"
	}
	first, size := utf8.DecodeRuneInString(series)
	return string(unicode.ToUpper(first)) + strings.ToLower(series[size:])
}

func compactName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "")
}
