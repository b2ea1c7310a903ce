package cv

import (
	"runtime"

	"github.com/murkland/corevideo/cf"
)

// OpenGLBuffer is a CVOpenGLBufferRef: an image buffer backed by an OpenGL
// pbuffer.
type OpenGLBuffer struct {
	imageBuffer
}

var _ ImageBuffer = (*OpenGLBuffer)(nil)

func openGLBufferOps(r Runtime) *cf.Ops {
	return &cf.Ops{Retain: r.OpenGLBufferRetain, Release: r.OpenGLBufferRelease}
}

func wrapOpenGLBuffer(r Runtime, ref cf.TypeRef, rule cf.Rule) *OpenGLBuffer {
	return &OpenGLBuffer{imageBuffer{buffer{cf.Wrap(ref, rule, openGLBufferOps(r)), r}}}
}

// NewOpenGLBuffer creates a standalone buffer outside of any pool.
func NewOpenGLBuffer(width int, height int, attributes *cf.Dictionary) (*OpenGLBuffer, error) {
	if rt == nil {
		return nil, ReturnUnsupported
	}
	if width <= 0 || height <= 0 {
		return nil, ReturnInvalidSize
	}
	defer runtime.KeepAlive(attributes)
	var ref cf.TypeRef
	if ret := rt.OpenGLBufferCreate(width, height, dictionaryRef(attributes), &ref); ret != ReturnSuccess {
		return nil, ret
	}
	return wrapOpenGLBuffer(rt, ref, cf.CreateRule), nil
}

// WrapOpenGLBuffer takes ownership of a CVOpenGLBufferRef following rule.
func WrapOpenGLBuffer(ref cf.TypeRef, rule cf.Rule) *OpenGLBuffer {
	return wrapOpenGLBuffer(mustRuntime(), ref, rule)
}

func OpenGLBufferTypeID() cf.TypeID {
	return mustRuntime().OpenGLBufferGetTypeID()
}

func OpenGLBufferFromObject(o *cf.Object) (*OpenGLBuffer, bool) {
	defer o.KeepAlive()
	r := mustRuntime()
	if !o.InstanceOf(r.OpenGLBufferGetTypeID()) {
		return nil, false
	}
	return wrapOpenGLBuffer(r, o.Ref(), cf.GetRule), true
}

func (b *OpenGLBuffer) Clone() *OpenGLBuffer {
	return &OpenGLBuffer{imageBuffer{buffer{b.Object.Clone(), b.rt}}}
}

// Attributes returns the buffer's attributes. CVOpenGLBufferGetAttributes
// hands out a borrowed dictionary, so it is retained here.
func (b *OpenGLBuffer) Attributes() (*cf.Dictionary, bool) {
	defer b.KeepAlive()
	ref := b.rt.OpenGLBufferGetAttributes(b.Ref())
	if ref == nil {
		return nil, false
	}
	return cf.WrapDictionary(ref, cf.GetRule), true
}
