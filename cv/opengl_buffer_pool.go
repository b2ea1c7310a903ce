package cv

import (
	"runtime"

	"github.com/murkland/corevideo/cf"
)

// OpenGLBufferPool is a CVOpenGLBufferPoolRef: a recycling pool of OpenGL
// buffers with identical attributes.
//
// Pools are not safe for concurrent use without external synchronization.
type OpenGLBufferPool struct {
	*cf.Object
	rt Runtime
}

func openGLBufferPoolOps(r Runtime) *cf.Ops {
	return &cf.Ops{Retain: r.OpenGLBufferPoolRetain, Release: r.OpenGLBufferPoolRelease}
}

func dictionaryRef(d *cf.Dictionary) cf.TypeRef {
	if d == nil {
		return nil
	}
	return d.Ref()
}

// NewOpenGLBufferPool creates a pool. Either attribute dictionary may be nil
// to use the framework defaults. On failure the error is the Return code.
func NewOpenGLBufferPool(poolAttributes *cf.Dictionary, openGLBufferAttributes *cf.Dictionary) (*OpenGLBufferPool, error) {
	if rt == nil {
		return nil, ReturnUnsupported
	}
	defer runtime.KeepAlive(openGLBufferAttributes)
	defer runtime.KeepAlive(poolAttributes)
	var ref cf.TypeRef
	if ret := rt.OpenGLBufferPoolCreate(dictionaryRef(poolAttributes), dictionaryRef(openGLBufferAttributes), &ref); ret != ReturnSuccess {
		return nil, ret
	}
	return WrapOpenGLBufferPool(ref, cf.CreateRule), nil
}

// WrapOpenGLBufferPool takes ownership of a CVOpenGLBufferPoolRef following
// rule.
func WrapOpenGLBufferPool(ref cf.TypeRef, rule cf.Rule) *OpenGLBufferPool {
	r := mustRuntime()
	return &OpenGLBufferPool{cf.Wrap(ref, rule, openGLBufferPoolOps(r)), r}
}

func OpenGLBufferPoolTypeID() cf.TypeID {
	return mustRuntime().OpenGLBufferPoolGetTypeID()
}

func OpenGLBufferPoolFromObject(o *cf.Object) (*OpenGLBufferPool, bool) {
	defer o.KeepAlive()
	r := mustRuntime()
	if !o.InstanceOf(r.OpenGLBufferPoolGetTypeID()) {
		return nil, false
	}
	return WrapOpenGLBufferPool(o.Ref(), cf.GetRule), true
}

func (p *OpenGLBufferPool) Clone() *OpenGLBufferPool {
	return &OpenGLBufferPool{p.Object.Clone(), p.rt}
}

// Attributes returns the pool attributes the pool was created with. The
// dictionary is a copy owned by the caller.
func (p *OpenGLBufferPool) Attributes() (*cf.Dictionary, bool) {
	defer p.KeepAlive()
	ref := p.rt.OpenGLBufferPoolGetAttributes(p.Ref())
	if ref == nil {
		return nil, false
	}
	return cf.WrapDictionary(ref, cf.CreateRule), true
}

// OpenGLBufferAttributes returns the attributes applied to buffers the pool
// vends. The dictionary is a copy owned by the caller.
func (p *OpenGLBufferPool) OpenGLBufferAttributes() (*cf.Dictionary, bool) {
	defer p.KeepAlive()
	ref := p.rt.OpenGLBufferPoolGetOpenGLBufferAttributes(p.Ref())
	if ref == nil {
		return nil, false
	}
	return cf.WrapDictionary(ref, cf.CreateRule), true
}

// CreateOpenGLBuffer takes a buffer from the pool, allocating one if none is
// free.
func (p *OpenGLBufferPool) CreateOpenGLBuffer() (*OpenGLBuffer, error) {
	defer p.KeepAlive()
	var ref cf.TypeRef
	if ret := p.rt.OpenGLBufferPoolCreateOpenGLBuffer(p.Ref(), &ref); ret != ReturnSuccess {
		return nil, ret
	}
	return wrapOpenGLBuffer(p.rt, ref, cf.CreateRule), nil
}
