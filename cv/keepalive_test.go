package cv_test

import (
	"runtime"
	"testing"
	"time"

	"github.com/murkland/corevideo/cf"
	"github.com/murkland/corevideo/cv"
	"github.com/murkland/corevideo/cv/cvtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect runs the garbage collector and gives queued finalizers time to
// run, as could happen at any point during a foreign call.
func collect() {
	runtime.GC()
	time.Sleep(10 * time.Millisecond)
	runtime.GC()
}

type collectingRuntime struct {
	*cvtest.Runtime
}

func (r collectingRuntime) ImageBufferGetEncodedSize(image cf.TypeRef) cv.Size {
	collect()
	return r.Runtime.ImageBufferGetEncodedSize(image)
}

func (r collectingRuntime) OpenGLBufferPoolCreateOpenGLBuffer(pool cf.TypeRef, bufferOut *cf.TypeRef) cv.Return {
	collect()
	return r.Runtime.OpenGLBufferPoolCreateOpenGLBuffer(pool, bufferOut)
}

func (r collectingRuntime) BufferSetAttachment(buffer cf.TypeRef, key cf.TypeRef, value cf.TypeRef, mode cv.AttachmentMode) {
	collect()
	r.Runtime.BufferSetAttachment(buffer, key, value, mode)
}

func newTransientPool(t *testing.T) *cv.OpenGLBufferPool {
	poolAttrs, bufAttrs := newAttributes(t)
	defer poolAttrs.Release()
	defer bufAttrs.Release()

	pool, err := cv.NewOpenGLBufferPool(poolAttrs, bufAttrs)
	require.NoError(t, err)
	return pool
}

func newTransientBuffer(t *testing.T) *cv.OpenGLBuffer {
	buf, err := newTransientPool(t).CreateOpenGLBuffer()
	require.NoError(t, err)
	return buf
}

func TestBuffersSurviveCollectionDuringCalls(t *testing.T) {
	rt := cvtest.Install(t)
	cv.SetRuntime(collectingRuntime{rt})

	assert.Equal(t, cv.Size{Width: 640, Height: 480}, newTransientBuffer(t).EncodedSize())

	buf := newTransientBuffer(t)
	defer buf.Release()
	buf.SetAttachment(cf.MustString("Name"), cf.MustString("frame"), cv.AttachmentModeShouldPropagate)

	value, _, ok := buf.Attachment(cf.MustString("Name"))
	require.True(t, ok)
	defer value.Release()
	s, ok := cf.StringFromObject(value)
	require.True(t, ok)
	assert.Equal(t, "frame", s.String())
}
