package printer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/silverium/labelgen/domain/kepingan"
	"github.com/stretchr/testify/assert"
)

func pngEntry(t *testing.T, name string) kepingan.Entry {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 48, 62))
	for y := 0; y < 62; y++ {
		for x := 0; x < 48; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}

	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return kepingan.Entry{Name: name, Data: buf.Bytes()}
}

func TestBuild_ProducesPDF(t *testing.T) {
	s := NewSheet()
	entries := []kepingan.Entry{
		pngEntry(t, "qrcode_ABCDEF_A1B2.png"),
		pngEntry(t, "qrcode_GHIJKL_C3D4.png"),
	}

	data, err := s.Build(entries, 3, 7)

	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestBuild_DefaultsGrid(t *testing.T) {
	s := NewSheet()

	data, err := s.Build([]kepingan.Entry{pngEntry(t, "qrcode_ABCDEF_A1B2.png")}, 0, 0)

	assert.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestBuild_OverflowStartsNewPage(t *testing.T) {
	s := NewSheet()

	// 2x2 grid holds four labels per page; five must spill onto a second
	entries := make([]kepingan.Entry, 0, 5)
	for i := 0; i < 5; i++ {
		entries = append(entries, pngEntry(t, fmt.Sprintf("qrcode_SERIAL%d_C0D%d.png", i, i)))
	}

	data, err := s.Build(entries, 2, 2)

	assert.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(data, []byte("/Type /Page\n")))
}

func TestBuild_MalformedImage(t *testing.T) {
	s := NewSheet()

	_, err := s.Build([]kepingan.Entry{{Name: "qrcode_X_Y.png", Data: []byte("not a png")}}, 3, 7)

	assert.Error(t, err)
}

func TestCaption(t *testing.T) {
	assert.Equal(t, "ABCDEF_A1B2", caption("qrcode_ABCDEF_A1B2.png"))
	assert.Equal(t, "preview_ABCDEF", caption("preview_ABCDEF.png"))
}
