package cv_test

import (
	"testing"
	"time"

	"github.com/murkland/corevideo/cf"
	"github.com/murkland/corevideo/cv"
	"github.com/murkland/corevideo/cv/cvtest"
	"github.com/murkland/corevideo/mtl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetalTextureAttributesDictionary(t *testing.T) {
	rt := cvtest.Install(t)
	mode := mtl.StorageModePrivate
	attrs := cv.MetalTextureAttributes{
		Usage:       mtl.TextureUsageShaderRead | mtl.TextureUsageRenderTarget,
		StorageMode: &mode,
	}

	d, err := attrs.Dictionary()
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())

	usage, ok := d.Int64(cv.MetalTextureUsage)
	require.True(t, ok)
	assert.EqualValues(t, 5, usage)
	assert.Equal(t, attrs, cv.ParseMetalTextureAttributes(d))

	d.Release()
	assert.Equal(t, 0, rt.CF.Live())
}

func TestAttributesOmitZeroFields(t *testing.T) {
	rt := cvtest.Install(t)

	d, err := cv.MetalTextureAttributes{}.Dictionary()
	require.NoError(t, err)
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, cv.MetalTextureAttributes{}, cv.ParseMetalTextureAttributes(d))
	d.Release()

	d, err = cv.OpenGLBufferAttributes{Width: 320}.Dictionary()
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())
	assert.True(t, d.Contains(cv.OpenGLBufferWidth))
	assert.False(t, d.Contains(cv.OpenGLBufferHeight))
	d.Release()

	assert.Equal(t, 0, rt.CF.Live())
}

func TestOpenGLBufferPoolAttributesAgeIsSeconds(t *testing.T) {
	cvtest.Install(t)

	d, err := cv.OpenGLBufferPoolAttributes{MaximumBufferAge: 1500 * time.Millisecond}.Dictionary()
	require.NoError(t, err)
	defer d.Release()

	age, ok := d.Float64(cv.OpenGLBufferPoolMaximumBufferAge)
	require.True(t, ok)
	assert.Equal(t, 1.5, age)
}

func TestOpenGLBufferPoolAttributesMillisecondAges(t *testing.T) {
	cvtest.Install(t)

	for ms := 1; ms < 5000; ms++ {
		attrs := cv.OpenGLBufferPoolAttributes{MinimumBufferCount: 1, MaximumBufferAge: time.Duration(ms) * time.Millisecond}
		d, err := attrs.Dictionary()
		require.NoError(t, err)
		got := cv.ParseOpenGLBufferPoolAttributes(d)
		d.Release()
		if !assert.Equal(t, attrs, got, "%dms", ms) {
			break
		}
	}
}

func TestOpenGLBufferAttributesRoundTrip(t *testing.T) {
	cvtest.Install(t)
	attrs := cv.OpenGLBufferAttributes{
		Width:              1920,
		Height:             1080,
		Target:             0x0DE1,
		InternalFormat:     0x1908,
		MaximumMipmapLevel: 4,
	}

	d, err := attrs.Dictionary()
	require.NoError(t, err)
	defer d.Release()
	assert.Equal(t, 5, d.Len())
	assert.Equal(t, attrs, cv.ParseOpenGLBufferAttributes(d))
}

func TestAttributesWithoutCoreFoundation(t *testing.T) {
	cvtest.Install(t)
	prev := cf.SetRuntime(nil)
	defer cf.SetRuntime(prev)

	_, err := cv.OpenGLBufferAttributes{Width: 1}.Dictionary()
	assert.ErrorIs(t, err, cf.ErrUnsupported)
}
