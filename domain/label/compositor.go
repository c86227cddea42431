package label

import (
	"errors"
	"image"

	"github.com/silverium/labelgen/constant"
	"github.com/silverium/labelgen/domain/kepingan"
	"github.com/silverium/labelgen/infrastructure/qrcode"
)

// TitleText is the static label printed on every templated bullion label
const TitleText = "Silver Bar"

// Dimensions of the plain (non-templated) layout used by series that carry
// per-unit identifiers but no printed artwork.
const (
	plainWidth  = 480
	plainHeight = 620
	plainQRSize = 360
	plainQRX    = 60
	plainQRY    = 60
)

// productQRSize is the pixel size of the generic custom-series QR
const productQRSize = 512

// Renderer is the raster capability the compositor draws through. Keeping it
// behind an interface lets the template-driven algorithm run headlessly
// against an in-memory buffer.
type Renderer interface {
	DrawBackground(img image.Image)
	DrawImage(img image.Image, x, y int)
	DrawText(text string, x, y int, size float64)
	EncodePNG() ([]byte, error)
}

// RendererFactory opens a fresh renderer for one label. Each composition
// gets its own renderer because draws are stateful and strictly sequential.
type RendererFactory func(width, height int) Renderer

// AssetStore loads template background artwork
type AssetStore interface {
	Background(name string) (image.Image, error)
}

// Compositor renders label images. Output is deterministic: identical
// identifier, product and template yield byte-identical PNGs.
type Compositor struct {
	qr       *qrcode.Generator
	assets   AssetStore
	renderer RendererFactory
}

// NewCompositor creates a new label compositor
func NewCompositor(qr *qrcode.Generator, assets AssetStore, renderer RendererFactory) *Compositor {
	return &Compositor{
		qr:       qr,
		assets:   assets,
		renderer: renderer,
	}
}

// ComposeLabel renders the archive-quality label for one kepingan, with high
// error correction for print durability.
func (c *Compositor) ComposeLabel(k kepingan.Kepingan, p kepingan.Product) ([]byte, error) {
	return c.compose(k, p, qrcode.LevelArchive)
}

// ComposePreview renders a low-correction label for on-screen preview
func (c *Compositor) ComposePreview(k kepingan.Kepingan, p kepingan.Product) ([]byte, error) {
	return c.compose(k, p, qrcode.LevelPreview)
}

// ComposeProduct renders the generic product-level QR used by the custom
// series, which has no per-unit identifiers.
func (c *Compositor) ComposeProduct(productID uint) ([]byte, error) {
	return c.qr.ProductPNG(productID, productQRSize)
}

func (c *Compositor) compose(k kepingan.Kepingan, p kepingan.Product, level qrcode.Level) ([]byte, error) {
	if p.Series == constant.SeriesBullion {
		tmpl, ok := TemplateFor(p.Gramasi)
		if !ok {
			return nil, errors.New(constant.ErrUnknownTemplate)
		}
		return c.composeTemplated(k, p, tmpl, level)
	}

	return c.composePlain(k, level)
}

// composeTemplated draws in fixed order: background artwork, QR raster at the
// template's position, then the text overlays.
func (c *Compositor) composeTemplated(k kepingan.Kepingan, p kepingan.Product, tmpl Template, level qrcode.Level) ([]byte, error) {
	qrImg, err := c.qr.UnitImage(k.UniqueID, level, tmpl.QRSize)
	if err != nil {
		return nil, err
	}

	bg, err := c.assets.Background(tmpl.Background)
	if err != nil {
		return nil, err
	}

	r := c.renderer(tmpl.Width, tmpl.Height)
	r.DrawBackground(bg)
	r.DrawImage(qrImg, tmpl.QRX, tmpl.QRY)
	r.DrawText(TitleText, tmpl.Title.X, tmpl.Title.Y, tmpl.Title.Size)
	r.DrawText(p.Gramasi, tmpl.Gramasi.X, tmpl.Gramasi.Y, tmpl.Gramasi.Size)
	r.DrawText(p.Fineness, tmpl.Fineness.X, tmpl.Fineness.Y, tmpl.Fineness.Size)
	r.DrawText(k.ValidationCode, tmpl.Code.X, tmpl.Code.Y, tmpl.Code.Size)
	r.DrawText(k.Slice(), tmpl.Serial.X, tmpl.Serial.Y, tmpl.Serial.Size)

	return r.EncodePNG()
}

// composePlain draws the QR with the validation code and serial slice on a
// blank canvas, no artwork.
func (c *Compositor) composePlain(k kepingan.Kepingan, level qrcode.Level) ([]byte, error) {
	qrImg, err := c.qr.UnitImage(k.UniqueID, level, plainQRSize)
	if err != nil {
		return nil, err
	}

	r := c.renderer(plainWidth, plainHeight)
	r.DrawImage(qrImg, plainQRX, plainQRY)
	r.DrawText(k.ValidationCode, 170, 470, 22)
	r.DrawText(k.Slice(), 185, 520, 16)

	return r.EncodePNG()
}
