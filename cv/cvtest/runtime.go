// Package cvtest provides an in-memory cv.Runtime layered on the cftest and
// mtltest fakes, so buffer ownership can be checked without CoreVideo.
package cvtest

import (
	"fmt"
	"sync"
	"testing"

	"github.com/murkland/corevideo/cf"
	"github.com/murkland/corevideo/cf/cftest"
	"github.com/murkland/corevideo/cv"
	"github.com/murkland/corevideo/mtl/mtltest"
)

// ImageDescriptor describes the geometry of a fake image buffer.
type ImageDescriptor struct {
	EncodedSize cv.Size
	DisplaySize cv.Size
	CleanRect   cv.Rect
	Flipped     bool
}

// MetalTextureDescriptor describes a fake CVMetalTexture. Texture is an
// mtltest texture, or nil for an image with no backing texture. Flipped is
// the raw Boolean the framework would report, so values other than 0 and 1
// can be exercised.
type MetalTextureDescriptor struct {
	Image      ImageDescriptor
	Texture    cf.TypeRef
	Flipped    uint8
	LowerLeft  cv.TexCoord
	LowerRight cv.TexCoord
	UpperRight cv.TexCoord
	UpperLeft  cv.TexCoord
}

type attachment struct {
	name  string
	key   cf.TypeRef
	value cf.TypeRef
	mode  cv.AttachmentMode
}

type image struct {
	desc ImageDescriptor

	mu          sync.Mutex
	attachments []attachment
	attributes  cf.TypeRef
	texture     *MetalTextureDescriptor
}

// Contents must not call back into the cf runtime: it runs with that
// runtime's lock held.
func (im *image) Contents() []cf.TypeRef {
	im.mu.Lock()
	defer im.mu.Unlock()
	refs := make([]cf.TypeRef, 0, 2*len(im.attachments)+1)
	for _, a := range im.attachments {
		refs = append(refs, a.key, a.value)
	}
	if im.attributes != nil {
		refs = append(refs, im.attributes)
	}
	return refs
}

type pool struct {
	attributes       cf.TypeRef
	bufferAttributes cf.TypeRef
}

func (p *pool) Contents() []cf.TypeRef {
	return []cf.TypeRef{p.attributes, p.bufferAttributes}
}

// Runtime is a fake cv.Runtime. CoreVideo objects live in the CF fake, so
// their counts are read with CF.Count, CF.Retains and CF.Releases.
type Runtime struct {
	CF  *cftest.Runtime
	MTL *mtltest.Runtime

	metalTextureTypeID cf.TypeID
	poolTypeID         cf.TypeID
	bufferTypeID       cf.TypeID

	mu                 sync.Mutex
	poolCreateReturn   cv.Return
	bufferCreateReturn cv.Return
	vendReturn         cv.Return
	vended             int
}

func New(cfr *cftest.Runtime, mtlr *mtltest.Runtime) *Runtime {
	return &Runtime{
		CF:                 cfr,
		MTL:                mtlr,
		metalTextureTypeID: cfr.RegisterType("CVMetalTexture"),
		poolTypeID:         cfr.RegisterType("CVOpenGLBufferPool"),
		bufferTypeID:       cfr.RegisterType("CVOpenGLBuffer"),
	}
}

// Install makes fresh CF, Metal and CoreVideo runtimes current for the
// duration of the test.
func Install(t testing.TB) *Runtime {
	r := New(cftest.Install(t), mtltest.Install(t))
	prev := cv.SetRuntime(r)
	t.Cleanup(func() {
		cv.SetRuntime(prev)
	})
	return r
}

// FailPoolCreate makes OpenGLBufferPoolCreate return ret.
func (r *Runtime) FailPoolCreate(ret cv.Return) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.poolCreateReturn = ret
}

// FailBufferCreate makes OpenGLBufferCreate return ret.
func (r *Runtime) FailBufferCreate(ret cv.Return) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bufferCreateReturn = ret
}

// FailVend makes OpenGLBufferPoolCreateOpenGLBuffer return ret.
func (r *Runtime) FailVend(ret cv.Return) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vendReturn = ret
}

// Vended returns how many buffers pools have handed out.
func (r *Runtime) Vended() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vended
}

// NewMetalTexture creates a CVMetalTexture at +1.
func (r *Runtime) NewMetalTexture(desc MetalTextureDescriptor) cf.TypeRef {
	d := desc
	return r.CF.NewObject(r.metalTextureTypeID, &image{desc: desc.Image, texture: &d})
}

func (r *Runtime) image(ref cf.TypeRef) *image {
	return r.CF.Value(ref).(*image)
}

func (r *Runtime) BufferGetAttachment(buffer cf.TypeRef, key cf.TypeRef) (cf.TypeRef, cv.AttachmentMode) {
	im := r.image(buffer)
	name := r.keyName(key)
	im.mu.Lock()
	defer im.mu.Unlock()
	for _, a := range im.attachments {
		if a.name == name {
			return a.value, a.mode
		}
	}
	return nil, 0
}

func (r *Runtime) BufferSetAttachment(buffer cf.TypeRef, key cf.TypeRef, value cf.TypeRef, mode cv.AttachmentMode) {
	im := r.image(buffer)
	name := r.keyName(key)
	r.CF.Retain(key)
	r.CF.Retain(value)

	im.mu.Lock()
	old := im.remove(name)
	im.attachments = append(im.attachments, attachment{name, key, value, mode})
	im.mu.Unlock()

	if old != nil {
		r.CF.Release(old.key)
		r.CF.Release(old.value)
	}
}

// keyName identifies an attachment key by its string contents, so keys are
// compared without touching the CF fake under an image lock.
func (r *Runtime) keyName(key cf.TypeRef) string {
	if s, ok := r.CF.Value(key).(string); ok {
		return s
	}
	return fmt.Sprintf("%p", key)
}

func (im *image) remove(name string) *attachment {
	for i, a := range im.attachments {
		if a.name == name {
			im.attachments = append(im.attachments[:i], im.attachments[i+1:]...)
			return &a
		}
	}
	return nil
}

func (r *Runtime) BufferRemoveAttachment(buffer cf.TypeRef, key cf.TypeRef) {
	im := r.image(buffer)
	name := r.keyName(key)
	im.mu.Lock()
	old := im.remove(name)
	im.mu.Unlock()

	if old != nil {
		r.CF.Release(old.key)
		r.CF.Release(old.value)
	}
}

func (r *Runtime) BufferRemoveAllAttachments(buffer cf.TypeRef) {
	im := r.image(buffer)
	im.mu.Lock()
	old := im.attachments
	im.attachments = nil
	im.mu.Unlock()

	for _, a := range old {
		r.CF.Release(a.key)
		r.CF.Release(a.value)
	}
}

func (r *Runtime) BufferPropagateAttachments(src cf.TypeRef, dst cf.TypeRef) {
	im := r.image(src)
	im.mu.Lock()
	attachments := append([]attachment(nil), im.attachments...)
	im.mu.Unlock()
	for _, a := range attachments {
		if a.mode == cv.AttachmentModeShouldPropagate {
			r.BufferSetAttachment(dst, a.key, a.value, a.mode)
		}
	}
}

func (r *Runtime) ImageBufferGetEncodedSize(image cf.TypeRef) cv.Size {
	return r.image(image).desc.EncodedSize
}

func (r *Runtime) ImageBufferGetDisplaySize(image cf.TypeRef) cv.Size {
	return r.image(image).desc.DisplaySize
}

func (r *Runtime) ImageBufferGetCleanRect(image cf.TypeRef) cv.Rect {
	return r.image(image).desc.CleanRect
}

func (r *Runtime) ImageBufferIsFlipped(image cf.TypeRef) bool {
	im := r.image(image)
	if im.texture != nil {
		return im.texture.Flipped != 0
	}
	return im.desc.Flipped
}

func (r *Runtime) metalTexture(ref cf.TypeRef) *MetalTextureDescriptor {
	im := r.image(ref)
	if im.texture == nil {
		panic("cvtest: not a CVMetalTexture")
	}
	return im.texture
}

func (r *Runtime) MetalTextureGetTypeID() cf.TypeID {
	return r.metalTextureTypeID
}

func (r *Runtime) MetalTextureGetTexture(image cf.TypeRef) cf.TypeRef {
	return r.metalTexture(image).Texture
}

func (r *Runtime) MetalTextureIsFlipped(image cf.TypeRef) uint8 {
	return r.metalTexture(image).Flipped
}

func (r *Runtime) MetalTextureGetCleanTexCoords(image cf.TypeRef, lowerLeft *[2]float32, lowerRight *[2]float32, upperRight *[2]float32, upperLeft *[2]float32) {
	d := r.metalTexture(image)
	*lowerLeft = [2]float32{d.LowerLeft.X, d.LowerLeft.Y}
	*lowerRight = [2]float32{d.LowerRight.X, d.LowerRight.Y}
	*upperRight = [2]float32{d.UpperRight.X, d.UpperRight.Y}
	*upperLeft = [2]float32{d.UpperLeft.X, d.UpperLeft.Y}
}

func (r *Runtime) MetalTextureUsageKey() cf.TypeRef {
	return r.CF.Constant("kCVMetalTextureUsage")
}

func (r *Runtime) MetalTextureStorageModeKey() cf.TypeRef {
	return r.CF.Constant("kCVMetalTextureStorageMode")
}

func (r *Runtime) OpenGLBufferPoolGetTypeID() cf.TypeID {
	return r.poolTypeID
}

func (r *Runtime) OpenGLBufferPoolRetain(pool cf.TypeRef) cf.TypeRef {
	return r.CF.Retain(pool)
}

func (r *Runtime) OpenGLBufferPoolRelease(pool cf.TypeRef) {
	r.CF.Release(pool)
}

func (r *Runtime) OpenGLBufferPoolCreate(poolAttributes cf.TypeRef, openGLBufferAttributes cf.TypeRef, poolOut *cf.TypeRef) cv.Return {
	r.mu.Lock()
	ret := r.poolCreateReturn
	r.mu.Unlock()
	if ret != cv.ReturnSuccess {
		return ret
	}

	p := &pool{
		attributes:       r.retainOrNil(poolAttributes),
		bufferAttributes: r.retainOrNil(openGLBufferAttributes),
	}
	*poolOut = r.CF.NewObject(r.poolTypeID, p)
	return cv.ReturnSuccess
}

func (r *Runtime) retainOrNil(ref cf.TypeRef) cf.TypeRef {
	if ref == nil {
		return nil
	}
	return r.CF.Retain(ref)
}

func (r *Runtime) pool(ref cf.TypeRef) *pool {
	return r.CF.Value(ref).(*pool)
}

// OpenGLBufferPoolGetAttributes returns a +1 reference, or nil for a pool
// created without pool attributes.
func (r *Runtime) OpenGLBufferPoolGetAttributes(pool cf.TypeRef) cf.TypeRef {
	return r.retainOrNil(r.pool(pool).attributes)
}

func (r *Runtime) OpenGLBufferPoolGetOpenGLBufferAttributes(pool cf.TypeRef) cf.TypeRef {
	return r.retainOrNil(r.pool(pool).bufferAttributes)
}

func (r *Runtime) OpenGLBufferPoolCreateOpenGLBuffer(pool cf.TypeRef, bufferOut *cf.TypeRef) cv.Return {
	r.mu.Lock()
	ret := r.vendReturn
	if ret == cv.ReturnSuccess {
		r.vended++
	}
	r.mu.Unlock()
	if ret != cv.ReturnSuccess {
		return ret
	}

	attrs := r.pool(pool).bufferAttributes
	width := r.intAttribute(attrs, r.OpenGLBufferWidthKey())
	height := r.intAttribute(attrs, r.OpenGLBufferHeightKey())
	*bufferOut = r.newBuffer(int(width), int(height), r.retainOrNil(attrs))
	return cv.ReturnSuccess
}

func (r *Runtime) intAttribute(dict cf.TypeRef, key cf.TypeRef) int64 {
	if dict == nil {
		return 0
	}
	v := r.CF.DictionaryGetValue(dict, key)
	if v == nil {
		return 0
	}
	return r.CF.NumberGetInt64(v)
}

func (r *Runtime) newBuffer(width int, height int, attributes cf.TypeRef) cf.TypeRef {
	size := cv.Size{Width: float64(width), Height: float64(height)}
	return r.CF.NewObject(r.bufferTypeID, &image{
		desc: ImageDescriptor{
			EncodedSize: size,
			DisplaySize: size,
			CleanRect:   cv.Rect{Width: size.Width, Height: size.Height},
			Flipped:     true,
		},
		attributes: attributes,
	})
}

func (r *Runtime) OpenGLBufferPoolMinimumBufferCountKey() cf.TypeRef {
	return r.CF.Constant("kCVOpenGLBufferPoolMinimumBufferCountKey")
}

func (r *Runtime) OpenGLBufferPoolMaximumBufferAgeKey() cf.TypeRef {
	return r.CF.Constant("kCVOpenGLBufferPoolMaximumBufferAgeKey")
}

func (r *Runtime) OpenGLBufferGetTypeID() cf.TypeID {
	return r.bufferTypeID
}

func (r *Runtime) OpenGLBufferRetain(buffer cf.TypeRef) cf.TypeRef {
	return r.CF.Retain(buffer)
}

func (r *Runtime) OpenGLBufferRelease(buffer cf.TypeRef) {
	r.CF.Release(buffer)
}

func (r *Runtime) OpenGLBufferCreate(width int, height int, attributes cf.TypeRef, bufferOut *cf.TypeRef) cv.Return {
	r.mu.Lock()
	ret := r.bufferCreateReturn
	r.mu.Unlock()
	if ret != cv.ReturnSuccess {
		return ret
	}

	*bufferOut = r.newBuffer(width, height, r.retainOrNil(attributes))
	return cv.ReturnSuccess
}

// OpenGLBufferGetAttributes returns a borrowed reference, or nil for a
// buffer created without attributes.
func (r *Runtime) OpenGLBufferGetAttributes(buffer cf.TypeRef) cf.TypeRef {
	im := r.image(buffer)
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.attributes
}

func (r *Runtime) OpenGLBufferWidthKey() cf.TypeRef {
	return r.CF.Constant("kCVOpenGLBufferWidth")
}

func (r *Runtime) OpenGLBufferHeightKey() cf.TypeRef {
	return r.CF.Constant("kCVOpenGLBufferHeight")
}

func (r *Runtime) OpenGLBufferTargetKey() cf.TypeRef {
	return r.CF.Constant("kCVOpenGLBufferTarget")
}

func (r *Runtime) OpenGLBufferInternalFormatKey() cf.TypeRef {
	return r.CF.Constant("kCVOpenGLBufferInternalFormat")
}

func (r *Runtime) OpenGLBufferMaximumMipmapLevelKey() cf.TypeRef {
	return r.CF.Constant("kCVOpenGLBufferMaximumMipmapLevel")
}
