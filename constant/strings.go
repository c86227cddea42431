package constant

// Request context keys
const (
	RequestIDKey = "request_id"
)

// HTTP header names
const (
	HeaderRequestID = "X-Request-ID"
)

// Function/Context names
const (
	// Domain context names
	CtxDomain        = "domain"
	CtxGenerateBatch = "GenerateBatch"
	CtxPreviewLabel  = "PreviewLabel"
	CtxGenerateSheet = "GenerateSheet"
	CtxHistory       = "History"
	CtxCompose       = "Compose"
	CtxSelect        = "Select"

	// Infrastructure context names
	CtxDB       = "db"
	CtxRecord   = "Record"
	CtxList     = "List"
	CtxClose    = "Close"
	CtxRegistry = "registry"
	CtxWilayah  = "wilayah"
	CtxAPI      = "api"

	// General context names
	CtxRouter = "Router"
	CtxMain   = "Main"
)

// Data field keys
const (
	// Service data fields
	DataService     = "service"
	DataProductID   = "product_id"
	DataProductName = "product_name"
	DataSeries      = "series"
	DataCount       = "count"
	DataUniqueID    = "unique_id"
	DataArchiveName = "archive_name"
	DataSizeKey     = "size_key"
	DataLevel       = "level"
	DataParentID    = "parent_id"
	DataOptions     = "options"

	// Database data fields
	DataPath         = "path"
	DataElapsed      = "elapsed"
	DataRows         = "rows"
	DataSQL          = "sql"
	DataData         = "data"
	DataRowsAffected = "rows_affected"

	// API data fields
	DataMethod      = "method"
	DataStatus      = "status"
	DataLatency     = "latency"
	DataSize        = "size"
	DataRemoteAddr  = "remote_addr"
	DataUserAgent   = "user_agent"
	DataPort        = "port"
	DataDBPath      = "db_path"
	DataEnvironment = "environment"
	DataURL         = "url"
)

// Error message constants
const (
	ErrInvalidProductID  = "product id must be a positive integer"
	ErrInvalidCount      = "count must be between 1 and the batch cap"
	ErrBatchInFlight     = "a batch for this product is already in progress"
	ErrEmptyBatch        = "batch contains no identifier records"
	ErrEmptyUniqueID     = "identifier record has an empty unique id"
	ErrEmptyValidation   = "identifier record has an empty validation code"
	ErrDuplicateUniqueID = "duplicate unique id within a single batch"
	ErrCountMismatch     = "registry returned a different number of records than requested"
	ErrUnknownTemplate   = "no label template registered for this size key"
	ErrUnauthorized      = "registry rejected the session token"
	ErrParentNotSelected = "parent region must be selected first"
	ErrEmptyArchive      = "refusing to build an empty archive"
	ErrCustomSeriesSheet = "custom series products have no per-unit labels to print"
	ErrBatchNotFound     = "batch record not found"
	ErrProductInvalid    = "registry returned an invalid product payload"
)

// Error types for categorization
const (
	ErrTypeValidation = "validation"
	ErrTypeRegistry   = "registry"
	ErrTypeCompose    = "compose"
	ErrTypeArchive    = "archive"
	ErrTypeJournal    = "journal"
	ErrTypeWilayah    = "wilayah"
	ErrTypeDB         = "db"
	ErrTypeAPI        = "api"
	ErrTypeApp        = "application"
)

// API routes
const (
	RouteBatch         = "/api/labels/{productID}/batch"
	RoutePreview       = "/api/labels/{productID}/preview"
	RouteSheet         = "/api/labels/{productID}/sheet"
	RouteBatchHistory  = "/api/batches"
	RouteWilayahState  = "/api/wilayah/state"
	RouteWilayahSelect = "/api/wilayah/select"
	RouteWilayahReset  = "/api/wilayah"
	RouteHealthcheck   = "/health"
)

// Log keys
const (
	LogTimeKey         = "time"
	LogLevelKey        = "level"
	LogNameKey         = "logger"
	LogCallerKey       = "caller"
	LogMessageKey      = "msg"
	LogStacktraceKey   = "stacktrace"
	LogRequestIDKey    = "request_id"
	LogFunctionKey     = "function"
	LogErrorCodeKey    = "error_code"
	LogErrorTypeKey    = "error_type"
	LogErrorMessageKey = "error_message"
	LogEncodingJSON    = "json"
	LogEncodingConsole = "console"
	LogOutputStdout    = "stdout"
	LogOutputStderr    = "stderr"
)

// Environment constants
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Message constants for application
const (
	MsgApplicationStarting  = "Application starting"
	MsgFailedToInitDB       = "Failed to initialize batch journal"
	MsgServerStarting       = "Server starting"
	MsgServerFailedToStart  = "Server failed to start"
	MsgServerShuttingDown   = "Server shutting down"
	MsgServerShutdownError  = "Error during server shutdown"
	MsgServerStopped        = "Server stopped"
	MsgRequestReceived      = "Request received"
	MsgRequestCompleted     = "Request completed"
	MsgSettingUpRoutes      = "Setting up API routes"
	MsgHealthcheckRequest   = "Handling healthcheck request"
	MsgHealthy              = "Healthy"
	MsgHandlingBatchRequest = "Handling label batch request"
)

// Series identifiers as the product registry reports them
const (
	SeriesCustom  = "custom"
	SeriesBullion = "bullion"
)

// Cache namespaces
const (
	ProductNamespace  = "PRODUCT"
	TemplateNamespace = "TEMPLATE"
	SelectorNamespace = "WILSEL"
	ProvinceNamespace = "PROV"
	CityNamespace     = "CITY"
	DistrictNamespace = "DIST"
	VillageNamespace  = "VILL"
)
