package kepingan

import (
	"context"
	"strings"
	"time"
)

// Kepingan is one physical/digital silver unit instance. It is reserved by
// the registry in a provisional state and becomes scannable only after a
// successful commit, after which it is immutable and owned by the registry.
type Kepingan struct {
	UniqueID       string    `json:"uniqueId"`
	ValidationCode string    `json:"validationCode"`
	ProductID      uint      `json:"productId"`
	ProductionDate time.Time `json:"productionDate"`
}

// Slice returns the short human-readable prefix of the unique id, the first
// six characters uppercased, as printed on the label and used in file names.
func (k Kepingan) Slice() string {
	id := k.UniqueID
	if len(id) > 6 {
		id = id[:6]
	}
	return strings.ToUpper(id)
}

// Product carries the display metadata needed on a label
type Product struct {
	ID       uint   `json:"id"`
	Name     string `json:"nama"`
	Gramasi  string `json:"gramasi"`
	Fineness string `json:"fineness"`
	Series   string `json:"series"`
}

// BatchRecord is the durable journal entry for one committed batch
type BatchRecord struct {
	ID          uint      `json:"id"`
	ProductID   uint      `json:"product_id"`
	ProductName string    `json:"product_name"`
	Series      string    `json:"series"`
	Count       int       `json:"count"`
	ArchiveName string    `json:"archive_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Entry is one named label image destined for an archive or print sheet
type Entry struct {
	Name string
	Data []byte
}

// Download is a finished artifact offered to the caller
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Registry is the external product-registry boundary
type Registry interface {
	Product(ctx context.Context, productID uint) (*Product, error)
	PreviewKepingan(ctx context.Context, productID uint, count int) ([]Kepingan, error)
	SaveKepingan(ctx context.Context, list []Kepingan) error
}

// Composer renders label images for kepingan and products
type Composer interface {
	ComposeLabel(k Kepingan, p Product) ([]byte, error)
	ComposePreview(k Kepingan, p Product) ([]byte, error)
	ComposeProduct(productID uint) ([]byte, error)
}

// Packager serializes named entries into a single archive
type Packager interface {
	Pack(entries []Entry) ([]byte, error)
}

// SheetBuilder lays entries out on a printable sheet
type SheetBuilder interface {
	Build(entries []Entry, cols, rows int) ([]byte, error)
}

// Journal persists batch records for audit and history listing
type Journal interface {
	Record(ctx context.Context, rec *BatchRecord) error
	List(ctx context.Context, limit int) ([]BatchRecord, error)
}
