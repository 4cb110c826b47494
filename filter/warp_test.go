package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/vidbuf/transform"
	"github.com/opd-ai/vidbuf/video"
)

func TestWarpIdentity(t *testing.T) {
	v := createTestVideo(video.NewSize(5, 4, 2, 3))
	w := NewWarpEffect([]transform.Matrix{transform.Identity(), transform.Identity()}, -1)

	out, err := w.Apply(v)
	require.NoError(t, err)
	assert.True(t, v.Equal(out))
	assert.Equal(t, "Warp(2)", w.GetName())
}

func TestWarpTranslation(t *testing.T) {
	v := createTestVideo(video.NewSize(4, 3, 1, 1))
	shift := transform.ParamsToMatrix([]float64{1, 0})

	out, err := NewWarpEffect([]transform.Matrix{shift}, -1).Apply(v)
	require.NoError(t, err)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, v.At(x+1, y, 0, 0), out.At(x, y, 0, 0))
		}
		assert.Equal(t, float32(-1), out.At(3, y, 0, 0), "outside source")
	}
}

func TestWarpBilinear(t *testing.T) {
	v := video.New(video.NewSize(2, 2, 1, 1))
	copy(v.Data(), []float32{0, 2, 4, 6})
	half := transform.ParamsToMatrix([]float64{0.5, 0.5})

	out, err := NewWarpEffect([]transform.Matrix{half}, 0).Apply(v)
	require.NoError(t, err)
	assert.InDelta(t, 3, out.At(0, 0, 0, 0), 1e-6)
}

func TestWarpFrameCountMismatch(t *testing.T) {
	_, err := NewWarpEffect(nil, 0).Apply(video.New(video.NewSize(2, 2, 1, 1)))
	assert.ErrorIs(t, err, ErrFrameCountMismatch)

	_, err = NewWarpEffect(nil, 0).Apply(nil)
	assert.ErrorIs(t, err, ErrNilVideo)
}
