package db

import (
	"context"
	"time"

	"github.com/silverium/labelgen/constant"
	"github.com/silverium/labelgen/domain/kepingan"
	appLogger "github.com/silverium/labelgen/infrastructure/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// SQLiteJournal implements kepingan.Journal
type SQLiteJournal struct {
	db *gorm.DB
}

// BatchModel is the GORM model for one committed batch
type BatchModel struct {
	ID          uint `gorm:"primaryKey"`
	ProductID   uint `gorm:"index;not null"`
	ProductName string
	Series      string
	Count       int
	ArchiveName string `gorm:"not null"`
	CreatedAt   time.Time
}

// GormLogger implements GORM's logger.Interface
type GormLogger struct{}

// LogMode implements the log.Interface method
func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	return l
}

// Info logs info messages
func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxInfo(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Warn logs warn messages
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxWarn(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Error logs error messages
func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxError(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeDBGeneral,
			Message: msg,
			Type:    constant.ErrTypeDB,
		},
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Trace logs SQL operations
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil {
		appLogger.CtxError(ctx, "SQL error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBGeneral,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataElapsed: elapsed.String(),
				constant.DataRows:    rows,
				constant.DataSQL:     sql,
			},
		})
		return
	}

	appLogger.CtxDebug(ctx, "SQL query", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataElapsed: elapsed.String(),
			constant.DataRows:    rows,
			constant.DataSQL:     sql,
		},
	})
}

// NewSQLiteJournal opens (and migrates) the batch journal database
func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	ctx := appLogger.NewRequestContext()

	appLogger.CtxDebug(ctx, "Opening SQLite database", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	dbLogger := &GormLogger{}

	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		appLogger.CtxError(ctx, "Failed to open database", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBOpen,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataPath: dbPath,
			},
		})
		return nil, err
	}

	if err := gdb.AutoMigrate(&BatchModel{}); err != nil {
		appLogger.CtxError(ctx, "Failed to migrate database schema", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBMigrate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return nil, err
	}

	appLogger.CtxInfo(ctx, "Database initialized successfully", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	return &SQLiteJournal{db: gdb}, nil
}

// Record persists a committed batch
func (j *SQLiteJournal) Record(ctx context.Context, rec *kepingan.BatchRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	result := j.db.Exec(`INSERT INTO batch_models (product_id, product_name, series, count, archive_name, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ProductID, rec.ProductName, rec.Series, rec.Count, rec.ArchiveName, rec.CreatedAt)

	if result.Error != nil {
		appLogger.CtxError(ctx, "Failed to insert batch record", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRecord,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBInsert,
				Message: result.Error.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataProductID:   rec.ProductID,
				constant.DataArchiveName: rec.ArchiveName,
			},
		})
		return result.Error
	}

	appLogger.CtxInfo(ctx, "Batch record stored", appLogger.LoggerInfo{
		ContextFunction: constant.CtxRecord,
		Data: map[string]interface{}{
			constant.DataProductID:   rec.ProductID,
			constant.DataCount:       rec.Count,
			constant.DataArchiveName: rec.ArchiveName,
		},
	})

	return nil
}

// List returns the most recent batch records, newest first
func (j *SQLiteJournal) List(ctx context.Context, limit int) ([]kepingan.BatchRecord, error) {
	rows, err := j.db.Raw(`SELECT id, product_id, product_name, series, count, archive_name, created_at FROM batch_models ORDER BY created_at DESC, id DESC LIMIT ?`, limit).Rows()
	if err != nil {
		appLogger.CtxError(ctx, "Database error while listing batches", appLogger.LoggerInfo{
			ContextFunction: constant.CtxList,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBLookup,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return nil, err
	}
	defer rows.Close()

	var records []kepingan.BatchRecord
	for rows.Next() {
		var model BatchModel
		if err := j.db.ScanRows(rows, &model); err != nil {
			appLogger.CtxError(ctx, "Failed to scan database rows", appLogger.LoggerInfo{
				ContextFunction: constant.CtxList,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeDBScanRows,
					Message: err.Error(),
					Type:    constant.ErrTypeDB,
				},
			})
			return nil, err
		}

		records = append(records, kepingan.BatchRecord{
			ID:          model.ID,
			ProductID:   model.ProductID,
			ProductName: model.ProductName,
			Series:      model.Series,
			Count:       model.Count,
			ArchiveName: model.ArchiveName,
			CreatedAt:   model.CreatedAt,
		})
	}

	if err := rows.Err(); err != nil {
		appLogger.CtxError(ctx, "Row iteration error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxList,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBRowIterate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return nil, err
	}

	return records, nil
}

// Close closes the database connection
func (j *SQLiteJournal) Close() error {
	ctx := context.Background()
	sqlDB, err := j.db.DB()
	if err != nil {
		appLogger.CtxError(ctx, "Failed to get database connection", appLogger.LoggerInfo{
			ContextFunction: constant.CtxClose,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBClose,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return err
	}

	appLogger.CtxInfo(ctx, "Closing database connection", appLogger.LoggerInfo{
		ContextFunction: constant.CtxClose,
	})

	return sqlDB.Close()
}
