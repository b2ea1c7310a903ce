package cv_test

import (
	"testing"

	"github.com/murkland/corevideo/cf"
	"github.com/murkland/corevideo/cv"
	"github.com/murkland/corevideo/cv/cvtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestNewOpenGLBuffer(t *testing.T) {
	rt := cvtest.Install(t)
	attrs, err := cv.OpenGLBufferAttributes{Target: 0x84F5, InternalFormat: 0x1908}.Dictionary()
	require.NoError(t, err)
	defer attrs.Release()

	buf, err := cv.NewOpenGLBuffer(64, 32, attrs)
	require.NoError(t, err)
	defer buf.Release()
	assert.Equal(t, cv.Size{Width: 64, Height: 32}, buf.EncodedSize())
	assert.Equal(t, rt.OpenGLBufferGetTypeID(), buf.TypeID())
	assert.Equal(t, rt.OpenGLBufferGetTypeID(), cv.OpenGLBufferTypeID())

	got, ok := buf.Attributes()
	require.True(t, ok)
	assert.Equal(t, 3, rt.CF.Count(attrs.Ref()))
	assert.Equal(t, cv.OpenGLBufferAttributes{Target: 0x84F5, InternalFormat: 0x1908}, cv.ParseOpenGLBufferAttributes(got))
	got.Release()
	assert.Equal(t, 2, rt.CF.Count(attrs.Ref()))
}

func TestNewOpenGLBufferWithoutAttributes(t *testing.T) {
	rt := cvtest.Install(t)
	buf, err := cv.NewOpenGLBuffer(16, 16, nil)
	require.NoError(t, err)

	attrs, ok := buf.Attributes()
	assert.False(t, ok)
	assert.Nil(t, attrs)

	buf.Release()
	assert.Equal(t, 0, rt.CF.Live())
}

func TestNewOpenGLBufferInvalidSize(t *testing.T) {
	rt := cvtest.Install(t)

	for _, size := range [][2]int{{0, 16}, {16, 0}, {-1, 16}} {
		buf, err := cv.NewOpenGLBuffer(size[0], size[1], nil)
		assert.Nil(t, buf)
		assert.Equal(t, cv.ReturnInvalidSize, err, "%v", size)
	}
	assert.Equal(t, 0, rt.CF.Live())
}

func TestNewOpenGLBufferFailure(t *testing.T) {
	rt := cvtest.Install(t)
	rt.FailBufferCreate(cv.ReturnAllocationFailed)

	buf, err := cv.NewOpenGLBuffer(16, 16, nil)
	assert.Nil(t, buf)
	assert.Equal(t, cv.ReturnAllocationFailed, err)
}

func TestOpenGLBufferFromObject(t *testing.T) {
	rt := cvtest.Install(t)
	buf, err := cv.NewOpenGLBuffer(16, 16, nil)
	require.NoError(t, err)
	defer buf.Release()

	got, ok := cv.OpenGLBufferFromObject(buf.Object)
	require.True(t, ok)
	assert.Equal(t, 2, rt.CF.Count(buf.Ref()))
	got.Release()
	assert.Equal(t, 1, rt.CF.Count(buf.Ref()))

	_, ok = cv.MetalTextureFromObject(buf.Object)
	assert.False(t, ok)
}

func TestOpenGLBufferConcurrentClones(t *testing.T) {
	defer goleak.VerifyNone(t)

	rt := cvtest.Install(t)
	buf, err := cv.NewOpenGLBuffer(16, 16, nil)
	require.NoError(t, err)
	ref := buf.Ref()

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			for j := 0; j < 100; j++ {
				c := buf.Clone()
				c.EncodedSize()
				c.Release()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 1, rt.CF.Count(ref))
	buf.Release()
	assert.False(t, rt.CF.Alive(ref))
}

func TestOpenGLBufferAttachments(t *testing.T) {
	rt := cvtest.Install(t)
	buf, err := cv.NewOpenGLBuffer(16, 16, nil)
	require.NoError(t, err)
	defer buf.Release()

	key := cf.MustString("ColorPrimaries")
	defer key.Release()
	value := cf.MustString("ITU_R_709_2")
	defer value.Release()

	_, _, ok := buf.Attachment(key)
	assert.False(t, ok)

	buf.SetAttachment(key, value, cv.AttachmentModeShouldPropagate)
	assert.Equal(t, 2, rt.CF.Count(value.Ref()))

	got, mode, ok := buf.Attachment(key)
	require.True(t, ok)
	assert.Equal(t, cv.AttachmentModeShouldPropagate, mode)
	assert.True(t, got.Equal(value))
	assert.Equal(t, 3, rt.CF.Count(value.Ref()))
	got.Release()

	buf.RemoveAttachment(key)
	assert.Equal(t, 1, rt.CF.Count(value.Ref()))
	_, _, ok = buf.Attachment(key)
	assert.False(t, ok)
}

func TestOpenGLBufferPropagateAttachments(t *testing.T) {
	rt := cvtest.Install(t)
	src, err := cv.NewOpenGLBuffer(16, 16, nil)
	require.NoError(t, err)
	defer src.Release()
	dst, err := cv.NewOpenGLBuffer(16, 16, nil)
	require.NoError(t, err)

	propagated := cf.MustString("propagated")
	defer propagated.Release()
	local := cf.MustString("local")
	defer local.Release()
	value, err := cf.NewInt64(1)
	require.NoError(t, err)
	defer value.Release()

	src.SetAttachment(propagated, value, cv.AttachmentModeShouldPropagate)
	src.SetAttachment(local, value, cv.AttachmentModeShouldNotPropagate)
	src.PropagateAttachments(dst)

	_, _, ok := dst.Attachment(propagated)
	assert.True(t, ok)
	_, _, ok = dst.Attachment(local)
	assert.False(t, ok)
	assert.Equal(t, 4, rt.CF.Count(value.Ref()))

	dst.RemoveAllAttachments()
	assert.Equal(t, 3, rt.CF.Count(value.Ref()))

	dst.SetAttachment(local, value, cv.AttachmentModeShouldNotPropagate)
	dst.Release()
	assert.Equal(t, 3, rt.CF.Count(value.Ref()))
}

func TestUnsupportedRuntime(t *testing.T) {
	prev := cv.SetRuntime(nil)
	defer cv.SetRuntime(prev)

	pool, err := cv.NewOpenGLBufferPool(nil, nil)
	assert.Nil(t, pool)
	assert.Equal(t, cv.ReturnUnsupported, err)

	buf, err := cv.NewOpenGLBuffer(16, 16, nil)
	assert.Nil(t, buf)
	assert.Equal(t, cv.ReturnUnsupported, err)

	assert.Panics(t, func() { cv.OpenGLBufferTypeID() })
	assert.Panics(t, func() { cv.MetalTextureUsage.Ref() })
}
