package archive

import (
	"archive/zip"
	"bytes"
	"errors"

	"github.com/silverium/labelgen/constant"
	"github.com/silverium/labelgen/domain/kepingan"
)

// Zip serializes label entries into a single in-memory zip archive. It
// implements kepingan.Packager.
type Zip struct{}

// NewZip creates a zip packager
func NewZip() *Zip {
	return &Zip{}
}

// Pack writes each entry under its deterministic name and returns the
// finished archive. An empty entry list is refused rather than producing an
// empty file.
func (z *Zip) Pack(entries []kepingan.Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, errors.New(constant.ErrEmptyArchive)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			zw.Close()
			return nil, err
		}
		if _, err := w.Write(e.Data); err != nil {
			zw.Close()
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
