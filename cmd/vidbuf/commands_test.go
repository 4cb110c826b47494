package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/vidbuf/filter"
	"github.com/opd-ai/vidbuf/framestore"
	"github.com/opd-ai/vidbuf/rawvideo"
	"github.com/opd-ai/vidbuf/transform"
	"github.com/opd-ai/vidbuf/video"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFrames(t *testing.T, dir string, sz video.Size) string {
	t.Helper()
	v := video.New(sz)
	for i := range v.Data() {
		v.Data()[i] = float32(i % 200)
	}
	pattern := filepath.Join(dir, "in_%02d.png")
	require.NoError(t, framestore.NewImageSequence(0, 255).Save(v, pattern, 1, 1))
	return pattern
}

func TestPackInfoUnpack(t *testing.T) {
	dir := t.TempDir()
	pattern := writeFrames(t, dir, video.NewSize(6, 4, 3, 3))

	out, err := run(t, "info", pattern, "--first", "1", "--last", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "samples per frame: 72")
	assert.Contains(t, out, "size: 6x4x3x3")

	raw := filepath.Join(dir, "clip.rvf.zst")
	_, err = run(t, "pack", pattern, raw, "--first", "1", "--last", "3")
	require.NoError(t, err)

	out, err = run(t, "info", raw)
	require.NoError(t, err)
	assert.Contains(t, out, "size: 6x4x3x3 (216 samples)")

	outPattern := filepath.Join(dir, "out_%02d.png")
	_, err = run(t, "unpack", raw, outPattern, "--ascii", filepath.Join(dir, "txt"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "out_03.png"))
	assert.FileExists(t, filepath.Join(dir, "txt_001_2.txt"))

	orig, err := framestore.NewImageSequence(0, 255).Load(pattern, 1, 3, 1)
	require.NoError(t, err)
	back, err := framestore.NewImageSequence(0, 255).Load(outPattern, 1, 3, 1)
	require.NoError(t, err)
	assert.True(t, orig.Equal(back))
}

func TestBlurAndBayer(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "mosaic.rvf")
	require.NoError(t, rawvideo.WriteFile(in, video.NewFilled(video.NewSize(8, 6, 3, 1), 4)))

	blurred := filepath.Join(dir, "blurred.rvf")
	_, err := run(t, "blur", in, blurred, "--radius", "2", "--temporal", "1")
	require.NoError(t, err)
	v, err := rawvideo.ReadFile(blurred)
	require.NoError(t, err)
	assert.InDelta(t, 4, v.At(0, 0, 0, 0), 1e-5)

	_, err = run(t, "blur", in, blurred, "--radius", "9")
	assert.ErrorIs(t, err, filter.ErrRadiusTooLarge)

	planes := filepath.Join(dir, "planes.rvf")
	_, err = run(t, "bayer", "pack", in, planes)
	require.NoError(t, err)
	p, err := rawvideo.ReadFile(planes)
	require.NoError(t, err)
	assert.Equal(t, video.NewSize(4, 3, 3, 4), p.Size())

	_, err = run(t, "bayer", "sideways", in, planes)
	assert.Error(t, err)
}

func TestTransformsAndWarp(t *testing.T) {
	dir := t.TempDir()
	legacy := filepath.Join(dir, "params.txt")
	params := []float64{0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0}
	require.NoError(t, transform.SaveLegacy(legacy, transform.Header{NParams: 6, NTransforms: 2, Width: 4, Height: 4}, params))

	matrices := filepath.Join(dir, "matrices.txt")
	_, err := run(t, "transforms", legacy, matrices, "--count", "2")
	require.NoError(t, err)
	ms, err := transform.LoadMatrices(matrices)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, transform.Identity(), ms[0])

	in := filepath.Join(dir, "clip.rvf")
	src := video.New(video.NewSize(4, 4, 2, 1))
	for i := range src.Data() {
		src.Data()[i] = float32(i)
	}
	require.NoError(t, rawvideo.WriteFile(in, src))

	out := filepath.Join(dir, "stable.rvf")
	_, err = run(t, "warp", in, legacy, out, "--background=-1")
	require.NoError(t, err)
	w, err := rawvideo.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, src.At(2, 1, 0, 0), w.At(2, 1, 0, 0))
	assert.Equal(t, src.At(2, 1, 1, 0), w.At(1, 1, 1, 0))
	assert.Equal(t, float32(-1), w.At(3, 1, 1, 0))
}

func TestTransformsNegativeCount(t *testing.T) {
	dir := t.TempDir()
	legacy := filepath.Join(dir, "params.txt")
	require.NoError(t, transform.SaveLegacy(legacy, transform.Header{NParams: 6, NTransforms: 1}, make([]float64, 6)))

	_, err := run(t, "transforms", legacy, filepath.Join(dir, "out.txt"), "--count=-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--count")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "vidbuf.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("compress: true\nlog_level: warn\n"), 0o644))

	in := filepath.Join(dir, "a.rvf")
	require.NoError(t, rawvideo.WriteFile(in, video.NewFilled(video.NewSize(3, 3, 1, 1), 1)))

	_, err := run(t, "--config", cfgPath, "blur", in, filepath.Join(dir, "b.rvf"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "b.rvf.zst"))

	_, err = run(t, "--log-level", "loud", "info", in)
	assert.Error(t, err)
}
