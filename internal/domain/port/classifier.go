package port

import (
	"context"
	"image"

	"agriassure/internal/domain/entity"
)

// ImageDecoder turns upload bytes into a 3-channel raster image.
type ImageDecoder interface {
	// Decode returns an error wrapping entity.ErrDecode for unreadable input
	Decode(data []byte) (image.Image, error)
}

// ImageClassifier is a pre-trained image model returning its top class.
type ImageClassifier interface {
	// Classify prepares the image for the model and runs it
	Classify(ctx context.Context, img image.Image) (entity.Prediction, error)
}
