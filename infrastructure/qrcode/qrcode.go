package qrcode

import (
	"image"
	"strconv"

	"github.com/skip2/go-qrcode"
)

// Level is the QR error-correction level
type Level = qrcode.RecoveryLevel

// Recovery levels used by the label flows. Preview favors render speed,
// archive favors print durability.
const (
	LevelPreview Level = qrcode.Low
	LevelArchive Level = qrcode.High
)

// Generator builds QR symbols for verification URLs
type Generator struct {
	verifBaseURL string
}

// NewGenerator creates a new QR code generator
func NewGenerator(verifBaseURL string) *Generator {
	return &Generator{
		verifBaseURL: verifBaseURL,
	}
}

// UnitPayload returns the scan payload for one kepingan: the fixed
// verification URL prefix concatenated with the unique id.
func (g *Generator) UnitPayload(uniqueID string) string {
	return g.verifBaseURL + "/verif/" + uniqueID
}

// ProductPayload returns the product-level verification URL used by the
// custom series, which carries no per-unit identifiers.
func (g *Generator) ProductPayload(productID uint) string {
	return g.verifBaseURL + "/verif/product/" + strconv.FormatUint(uint64(productID), 10)
}

// UnitImage renders the QR symbol for one kepingan as a raster at the given
// pixel size.
func (g *Generator) UnitImage(uniqueID string, level Level, size int) (image.Image, error) {
	q, err := qrcode.New(g.UnitPayload(uniqueID), level)
	if err != nil {
		return nil, err
	}
	return q.Image(size), nil
}

// ProductPNG renders the generic product QR as PNG bytes
func (g *Generator) ProductPNG(productID uint, size int) ([]byte, error) {
	var png []byte
	png, err := qrcode.Encode(g.ProductPayload(productID), qrcode.High, size)
	if err != nil {
		return nil, err
	}

	return png, nil
}
