package vision

import (
	"fmt"
	"image"
	"image/color"
)

// Transform describes how a model expects its input image:
// square resize, then per-channel (x - mean) / std on [0,1] RGB values, CHW layout.
type Transform struct {
	Size int
	Mean [3]float32
	Std  [3]float32
}

// DefaultTransform matches the 224x224, mean/std 0.5 preparation of the health gate.
func DefaultTransform() Transform {
	return Transform{
		Size: 224,
		Mean: [3]float32{0.5, 0.5, 0.5},
		Std:  [3]float32{0.5, 0.5, 0.5},
	}
}

// Len is the number of float32 values Tensor produces.
func (t Transform) Len() int {
	return 3 * t.Size * t.Size
}

// Tensor resizes img and writes it into a normalized CHW float32 slice.
func (t Transform) Tensor(img image.Image) ([]float32, error) {
	if t.Size <= 0 {
		return nil, fmt.Errorf("invalid transform size %d", t.Size)
	}
	for c := 0; c < 3; c++ {
		if t.Std[c] == 0 {
			return nil, fmt.Errorf("zero std for channel %d", c)
		}
	}

	resized, err := resizeTo(opaque(img), t.Size)
	if err != nil {
		return nil, fmt.Errorf("resize to %d: %w", t.Size, err)
	}
	b := resized.Bounds()
	if b.Dx() != t.Size || b.Dy() != t.Size {
		return nil, fmt.Errorf("resized image is %dx%d, want %d", b.Dx(), b.Dy(), t.Size)
	}
	plane := t.Size * t.Size
	out := make([]float32, 3*plane)

	for y := 0; y < t.Size; y++ {
		for x := 0; x < t.Size; x++ {
			r, g, bl, _ := resized.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := y*t.Size + x
			out[i] = (float32(r)/65535.0 - t.Mean[0]) / t.Std[0]
			out[plane+i] = (float32(g)/65535.0 - t.Mean[1]) / t.Std[1]
			out[2*plane+i] = (float32(bl)/65535.0 - t.Mean[2]) / t.Std[2]
		}
	}
	return out, nil
}

// opaque drops the alpha channel and keeps the stored color of every pixel,
// so transparent areas do not turn black.
func opaque(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			c.A = 0xff
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}
