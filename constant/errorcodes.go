package constant

// Domain service error codes
const (
	// Kepingan service - Validation errors
	ErrCodeInvalidProductID = "SVC001"
	ErrCodeInvalidCount     = "SVC002"
	ErrCodeBatchInFlight    = "SVC003"
	ErrCodeEmptyBatch       = "SVC004"

	// Kepingan service - Pipeline errors
	ErrCodeReservation = "SVC101"
	ErrCodeCompose     = "SVC102"
	ErrCodeCommit      = "SVC103"
	ErrCodePackage     = "SVC104"
	ErrCodeJournal     = "SVC105"

	// Wilayah selector errors
	ErrCodeParentNotSelected = "WIL001"
	ErrCodeOptionFetch       = "WIL002"
)

// Registry client error codes
const (
	ErrCodeRegistryRequest  = "REG001"
	ErrCodeRegistryStatus   = "REG002"
	ErrCodeRegistryDecode   = "REG003"
	ErrCodeRegistryValidate = "REG004"
	ErrCodeRegistryAuth     = "REG005"
)

// Database error codes
const (
	ErrCodeDBGeneral = "DB500"

	// Connection errors
	ErrCodeDBOpen    = "DB001"
	ErrCodeDBMigrate = "DB002"

	// Record operation errors
	ErrCodeDBInsert = "DB101"

	// List operation errors
	ErrCodeDBLookup     = "DB201"
	ErrCodeDBScanRows   = "DB202"
	ErrCodeDBRowIterate = "DB203"

	// Close operation errors
	ErrCodeDBClose = "DB401"
)

// API and application error codes
const (
	ErrCodeAPIDecodeRequest = "API001"
	ErrCodeAPIServiceError  = "API002"
	ErrCodeAPIAuth          = "API003"
	ErrCodeAppDBInit        = "APP001"
	ErrCodeAppServerStart   = "APP002"
	ErrCodeAppShutdown      = "APP003"
)
