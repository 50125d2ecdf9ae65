package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode means the upload is not a readable raster image.
	ErrDecode = errors.New("cannot decode image")
	// ErrInference means a model call failed.
	ErrInference = errors.New("inference failed")
	// ErrUpstream means the third-party weather provider is unreachable or answered non-2xx.
	ErrUpstream = errors.New("weather service unavailable")
	// ErrNotFound means the upstream answered without the requested data.
	ErrNotFound = errors.New("weather data not found")
)

// UnknownCategoryError is returned when a categorical field holds a value
// outside the label set the encoder was fitted on.
type UnknownCategoryError struct {
	Field string
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("Unknown %s '%s'", e.Field, e.Value)
}

// ValidationError reports an input field outside its allowed range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
