//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"agriassure/internal/domain/entity"
)

// Decoder decodes uploads through OpenCV.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode returns entity.ErrDecode wrapped for empty or unreadable data.
func (d *Decoder) Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", entity.ErrDecode)
	}
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrDecode, err)
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("%w: failed to decode image", entity.ErrDecode)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrDecode, err)
	}
	return img, nil
}

func resizeTo(img image.Image, size int) (image.Image, error) {
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return img, nil
	}

	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Resize(src, &dst, image.Pt(size, size), 0, 0, gocv.InterpolationLinear)
	if dst.Empty() {
		return nil, fmt.Errorf("opencv resize produced an empty image")
	}
	return dst.ToImage()
}
