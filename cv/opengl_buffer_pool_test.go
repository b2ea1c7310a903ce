package cv_test

import (
	"errors"
	"testing"
	"time"

	"github.com/murkland/corevideo/cf"
	"github.com/murkland/corevideo/cv"
	"github.com/murkland/corevideo/cv/cvtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttributes(t *testing.T) (*cf.Dictionary, *cf.Dictionary) {
	t.Helper()
	poolAttrs, err := cv.OpenGLBufferPoolAttributes{
		MinimumBufferCount: 3,
		MaximumBufferAge:   500 * time.Millisecond,
	}.Dictionary()
	require.NoError(t, err)
	bufAttrs, err := cv.OpenGLBufferAttributes{Width: 640, Height: 480}.Dictionary()
	require.NoError(t, err)
	return poolAttrs, bufAttrs
}

func TestOpenGLBufferPoolLifecycle(t *testing.T) {
	rt := cvtest.Install(t)
	poolAttrs, bufAttrs := newAttributes(t)

	pool, err := cv.NewOpenGLBufferPool(poolAttrs, bufAttrs)
	require.NoError(t, err)
	assert.Equal(t, 1, pool.RetainCount())
	assert.Equal(t, 2, rt.CF.Count(poolAttrs.Ref()))
	assert.Equal(t, 2, rt.CF.Count(bufAttrs.Ref()))

	buf, err := pool.CreateOpenGLBuffer()
	require.NoError(t, err)
	assert.Equal(t, 1, buf.RetainCount())
	assert.Equal(t, cv.Size{Width: 640, Height: 480}, buf.EncodedSize())
	assert.Equal(t, 1, rt.Vended())

	buf.Release()
	pool.Release()
	poolAttrs.Release()
	bufAttrs.Release()
	assert.Equal(t, 0, rt.CF.Live())
}

func TestOpenGLBufferPoolCloneIsNetZero(t *testing.T) {
	rt := cvtest.Install(t)
	pool, err := cv.NewOpenGLBufferPool(nil, nil)
	require.NoError(t, err)
	ref := pool.Ref()

	clones := make([]*cv.OpenGLBufferPool, 5)
	for i := range clones {
		clones[i] = pool.Clone()
	}
	assert.Equal(t, 6, rt.CF.Count(ref))
	for _, c := range clones {
		c.Release()
	}
	assert.Equal(t, 1, rt.CF.Count(ref))

	pool.Release()
	assert.False(t, rt.CF.Alive(ref))
	assert.Equal(t, rt.CF.Retains(ref)+1, rt.CF.Releases(ref))
}

func TestOpenGLBufferPoolAttributes(t *testing.T) {
	rt := cvtest.Install(t)
	poolAttrs, bufAttrs := newAttributes(t)
	defer poolAttrs.Release()
	defer bufAttrs.Release()

	pool, err := cv.NewOpenGLBufferPool(poolAttrs, bufAttrs)
	require.NoError(t, err)
	defer pool.Release()

	got, ok := pool.Attributes()
	require.True(t, ok)
	assert.Equal(t, 3, rt.CF.Count(poolAttrs.Ref()))
	assert.Equal(t, cv.OpenGLBufferPoolAttributes{
		MinimumBufferCount: 3,
		MaximumBufferAge:   500 * time.Millisecond,
	}, cv.ParseOpenGLBufferPoolAttributes(got))
	got.Release()
	assert.Equal(t, 2, rt.CF.Count(poolAttrs.Ref()))

	gotBuf, ok := pool.OpenGLBufferAttributes()
	require.True(t, ok)
	assert.Equal(t, cv.OpenGLBufferAttributes{Width: 640, Height: 480}, cv.ParseOpenGLBufferAttributes(gotBuf))
	gotBuf.Release()
	assert.Equal(t, 2, rt.CF.Count(bufAttrs.Ref()))
}

func TestOpenGLBufferPoolMissingAttributes(t *testing.T) {
	rt := cvtest.Install(t)
	pool, err := cv.NewOpenGLBufferPool(nil, nil)
	require.NoError(t, err)
	defer pool.Release()

	attrs, ok := pool.Attributes()
	assert.False(t, ok)
	assert.Nil(t, attrs)

	bufAttrs, ok := pool.OpenGLBufferAttributes()
	assert.False(t, ok)
	assert.Nil(t, bufAttrs)

	assert.Equal(t, 1, rt.CF.Count(pool.Ref()))
	assert.Equal(t, 0, rt.CF.Releases(pool.Ref()))
}

func TestOpenGLBufferPoolCreateFailure(t *testing.T) {
	rt := cvtest.Install(t)
	rt.FailPoolCreate(cv.ReturnInvalidPoolAttributes)

	pool, err := cv.NewOpenGLBufferPool(nil, nil)
	assert.Nil(t, pool)
	assert.Equal(t, cv.ReturnInvalidPoolAttributes, err)
	assert.True(t, errors.Is(err, cv.ReturnInvalidPoolAttributes))
	assert.Equal(t, 0, rt.CF.Live())
}

func TestOpenGLBufferPoolVendFailure(t *testing.T) {
	rt := cvtest.Install(t)
	pool, err := cv.NewOpenGLBufferPool(nil, nil)
	require.NoError(t, err)
	defer pool.Release()

	rt.FailVend(cv.ReturnWouldExceedAllocationThreshold)
	buf, err := pool.CreateOpenGLBuffer()
	assert.Nil(t, buf)
	assert.Equal(t, cv.ReturnWouldExceedAllocationThreshold, err)
	assert.Equal(t, 0, rt.Vended())
	assert.Equal(t, 1, rt.CF.Live())
}

func TestOpenGLBufferPoolFromObject(t *testing.T) {
	rt := cvtest.Install(t)
	pool, err := cv.NewOpenGLBufferPool(nil, nil)
	require.NoError(t, err)
	defer pool.Release()

	got, ok := cv.OpenGLBufferPoolFromObject(pool.Object)
	require.True(t, ok)
	assert.True(t, got.Equal(pool))
	assert.Equal(t, 2, rt.CF.Count(pool.Ref()))
	got.Release()

	_, ok = cv.OpenGLBufferFromObject(pool.Object)
	assert.False(t, ok)
	assert.Equal(t, rt.OpenGLBufferPoolGetTypeID(), cv.OpenGLBufferPoolTypeID())
	assert.Equal(t, 1, rt.CF.Count(pool.Ref()))
}
