//go:build !gocv
// +build !gocv

package vision

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"

	"agriassure/internal/domain/entity"
)

// Decoder decodes uploads with the standard image codecs plus WebP.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode returns entity.ErrDecode wrapped for empty or unreadable data.
func (d *Decoder) Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", entity.ErrDecode)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrDecode, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty image", entity.ErrDecode)
	}
	return img, nil
}

func resizeTo(img image.Image, size int) (image.Image, error) {
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return img, nil
	}
	return resize.Resize(uint(size), uint(size), img, resize.Bilinear), nil
}
