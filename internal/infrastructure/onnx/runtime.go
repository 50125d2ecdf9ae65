package onnx

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
)

// Runtime stands for the process-wide onnxruntime environment.
// Create one at startup and Close it after every model is closed.
type Runtime struct{}

// NewRuntime initializes onnxruntime, loading the shared library from libPath when set.
func NewRuntime(libPath string) (*Runtime, error) {
	if libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}
	return &Runtime{}, nil
}

func (r *Runtime) Close() {
	ort.DestroyEnvironment()
}
