//go:build gocv
// +build gocv

package vision

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResizeTo_ExactSize(t *testing.T) {
	out, err := resizeTo(solid(50, 30, color.White), 8)
	require.NoError(t, err)
	require.Equal(t, 8, out.Bounds().Dx())
	require.Equal(t, 8, out.Bounds().Dy())
}
