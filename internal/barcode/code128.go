// Package barcode renders rental barcode tokens as CODE 128 symbols.
package barcode

import (
	"bytes"
	"errors"
	"image"
	"image/png"

	bc "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"

	"rentauto-client/internal/domain"
)

// Default raster size of the symbol shown on the rental confirmation screen.
const (
	DefaultWidth  = 600
	DefaultHeight = 300
)

var (
	// ErrInvalidPayload marks payloads with characters outside the CODE 128 set.
	ErrInvalidPayload = errors.New("payload not encodable as CODE 128")
	// ErrRasterTooSmall marks a requested raster narrower than the encoded symbol.
	ErrRasterTooSmall = errors.New("raster too small for encoded barcode")
)

// Codec encodes rental tokens into fixed-size barcode rasters. It performs
// no I/O; decoding is done by a physical scanner or manual entry.
type Codec struct {
	width  int
	height int
}

// New returns a Codec rendering at the given raster size. Non-positive
// dimensions fall back to the defaults.
func New(width, height int) *Codec {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Codec{width: width, height: height}
}

// Encode renders payload as a CODE 128 symbol scaled to the codec's raster.
// Every module maps to pure black or white; there is no anti-aliasing.
func (c *Codec) Encode(payload string) (image.Image, error) {
	symbol, err := code128.Encode(payload)
	if err != nil {
		return nil, domain.NewEncodingFailure(
			"barcode payload contains unsupported characters", errors.Join(ErrInvalidPayload, err))
	}

	scaled, err := bc.Scale(symbol, c.width, c.height)
	if err != nil {
		return nil, domain.NewEncodingFailure(
			"barcode does not fit the requested raster", errors.Join(ErrRasterTooSmall, err))
	}
	return scaled, nil
}

// EncodePNG renders payload and returns the raster as PNG bytes.
func (c *Codec) EncodePNG(payload string) ([]byte, error) {
	img, err := c.Encode(payload)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, domain.NewEncodingFailure("failed to encode barcode PNG", err)
	}
	return buf.Bytes(), nil
}
