package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/silverium/labelgen/domain/label"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Raster implements label.Renderer on an in-memory NRGBA canvas. One Raster
// serves one label; draws are sequential, never concurrent.
type Raster struct {
	width  int
	height int
	canvas *image.NRGBA
}

// NewRaster opens a fresh white canvas. Its signature matches
// label.RendererFactory.
func NewRaster(width, height int) label.Renderer {
	return &Raster{
		width:  width,
		height: height,
		canvas: imaging.New(width, height, color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
	}
}

// DrawBackground fits the artwork to the full canvas
func (r *Raster) DrawBackground(img image.Image) {
	fitted := imaging.Resize(img, r.width, r.height, imaging.Lanczos)
	r.canvas = imaging.Paste(r.canvas, fitted, image.Pt(0, 0))
}

// DrawImage pastes a raster (the QR symbol) at its native size
func (r *Raster) DrawImage(img image.Image, x, y int) {
	r.canvas = imaging.Paste(r.canvas, img, image.Pt(x, y))
}

// DrawText renders black text with its top-left corner at (x, y), scaled so
// the glyph strip is size pixels tall. Nearest-neighbor scaling keeps the
// output deterministic across runs.
func (r *Raster) DrawText(text string, x, y int, size float64) {
	if text == "" {
		return
	}

	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil()
	h := face.Metrics().Height.Ceil()
	if w <= 0 || h <= 0 {
		return
	}

	strip := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  strip,
		Src:  image.NewUniform(color.NRGBA{A: 255}),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: face.Metrics().Ascent},
	}
	d.DrawString(text)

	scaled := strip
	if size > 0 && int(size+0.5) != h {
		sw := int(float64(w)*size/float64(h) + 0.5)
		sh := int(size + 0.5)
		if sw > 0 && sh > 0 {
			scaled = imaging.Resize(strip, sw, sh, imaging.NearestNeighbor)
		}
	}

	r.canvas = imaging.Overlay(r.canvas, scaled, image.Pt(x, y), 1.0)
}

// EncodePNG exports the composed canvas
func (r *Raster) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, r.canvas); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
