package barcode_test

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"

	"rentauto-client/internal/barcode"
	"rentauto-client/internal/domain"
)

func TestEncode(t *testing.T) {
	t.Run("Default raster size", func(t *testing.T) {
		codec := barcode.New(0, 0)
		img, err := codec.Encode("RNT-7-ABC")
		assert.NoError(t, err)
		bounds := img.Bounds()
		assert.Equal(t, barcode.DefaultWidth, bounds.Dx())
		assert.Equal(t, barcode.DefaultHeight, bounds.Dy())
	})

	t.Run("Modules are pure black or white", func(t *testing.T) {
		codec := barcode.New(600, 300)
		img, err := codec.Encode("RNT-42-0F3A")
		assert.NoError(t, err)

		sawBlack, sawWhite := false, false
		y := img.Bounds().Dy() / 2
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			switch gray {
			case 0:
				sawBlack = true
			case 255:
				sawWhite = true
			default:
				t.Fatalf("anti-aliased pixel %d at x=%d", gray, x)
			}
		}
		assert.True(t, sawBlack)
		assert.True(t, sawWhite)
	})

	t.Run("Deterministic for same payload", func(t *testing.T) {
		codec := barcode.New(600, 300)
		a, err := codec.EncodePNG("RNT-7-ABC")
		assert.NoError(t, err)
		b, err := codec.EncodePNG("RNT-7-ABC")
		assert.NoError(t, err)
		assert.True(t, bytes.Equal(a, b))
	})

	t.Run("Invalid payload", func(t *testing.T) {
		codec := barcode.New(600, 300)
		_, err := codec.Encode("токен")
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.FailureEncoding))
		assert.ErrorIs(t, err, barcode.ErrInvalidPayload)
	})

	t.Run("Empty payload", func(t *testing.T) {
		codec := barcode.New(600, 300)
		_, err := codec.Encode("")
		assert.Error(t, err)
		assert.ErrorIs(t, err, barcode.ErrInvalidPayload)
	})

	t.Run("Raster too small", func(t *testing.T) {
		codec := barcode.New(20, 10)
		_, err := codec.Encode("RNT-7-ABCDEFGH")
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.FailureEncoding))
		assert.ErrorIs(t, err, barcode.ErrRasterTooSmall)
	})
}

func TestEncodePNG(t *testing.T) {
	codec := barcode.New(600, 300)
	data, err := codec.EncodePNG("RNT-7-ABC")
	assert.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}
