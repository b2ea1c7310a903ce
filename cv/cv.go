// Package cv binds the parts of CoreVideo that hand out Metal textures and
// OpenGL buffers. Every foreign reference is owned by a cf.Object and
// released exactly once.
package cv

import (
	"fmt"

	"github.com/murkland/corevideo/cf"
)

// Runtime is the foreign CoreVideo surface. Methods named Create or Copy
// return +1 references through their out parameters, which are written only
// on ReturnSuccess. Get methods return borrowed references.
type Runtime interface {
	BufferGetAttachment(buffer cf.TypeRef, key cf.TypeRef) (cf.TypeRef, AttachmentMode)
	BufferSetAttachment(buffer cf.TypeRef, key cf.TypeRef, value cf.TypeRef, mode AttachmentMode)
	BufferRemoveAttachment(buffer cf.TypeRef, key cf.TypeRef)
	BufferRemoveAllAttachments(buffer cf.TypeRef)
	BufferPropagateAttachments(src cf.TypeRef, dst cf.TypeRef)

	ImageBufferGetEncodedSize(image cf.TypeRef) Size
	ImageBufferGetDisplaySize(image cf.TypeRef) Size
	ImageBufferGetCleanRect(image cf.TypeRef) Rect
	ImageBufferIsFlipped(image cf.TypeRef) bool

	MetalTextureGetTypeID() cf.TypeID
	MetalTextureGetTexture(image cf.TypeRef) cf.TypeRef
	MetalTextureIsFlipped(image cf.TypeRef) uint8
	MetalTextureGetCleanTexCoords(image cf.TypeRef, lowerLeft *[2]float32, lowerRight *[2]float32, upperRight *[2]float32, upperLeft *[2]float32)
	MetalTextureUsageKey() cf.TypeRef
	MetalTextureStorageModeKey() cf.TypeRef

	OpenGLBufferPoolGetTypeID() cf.TypeID
	OpenGLBufferPoolRetain(pool cf.TypeRef) cf.TypeRef
	OpenGLBufferPoolRelease(pool cf.TypeRef)
	OpenGLBufferPoolCreate(poolAttributes cf.TypeRef, openGLBufferAttributes cf.TypeRef, poolOut *cf.TypeRef) Return
	OpenGLBufferPoolGetAttributes(pool cf.TypeRef) cf.TypeRef
	OpenGLBufferPoolGetOpenGLBufferAttributes(pool cf.TypeRef) cf.TypeRef
	OpenGLBufferPoolCreateOpenGLBuffer(pool cf.TypeRef, bufferOut *cf.TypeRef) Return
	OpenGLBufferPoolMinimumBufferCountKey() cf.TypeRef
	OpenGLBufferPoolMaximumBufferAgeKey() cf.TypeRef

	OpenGLBufferGetTypeID() cf.TypeID
	OpenGLBufferRetain(buffer cf.TypeRef) cf.TypeRef
	OpenGLBufferRelease(buffer cf.TypeRef)
	OpenGLBufferCreate(width int, height int, attributes cf.TypeRef, bufferOut *cf.TypeRef) Return
	OpenGLBufferGetAttributes(buffer cf.TypeRef) cf.TypeRef
	OpenGLBufferWidthKey() cf.TypeRef
	OpenGLBufferHeightKey() cf.TypeRef
	OpenGLBufferTargetKey() cf.TypeRef
	OpenGLBufferInternalFormatKey() cf.TypeRef
	OpenGLBufferMaximumMipmapLevelKey() cf.TypeRef
}

var rt = platformRuntime()

// SetRuntime replaces the CoreVideo runtime and returns the previous one.
// Handles keep the runtime they were created with.
func SetRuntime(r Runtime) Runtime {
	prev := rt
	rt = r
	return prev
}

func mustRuntime() Runtime {
	if rt == nil {
		panic(ReturnUnsupported)
	}
	return rt
}

// Size mirrors CGSize.
type Size struct {
	Width  float64
	Height float64
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Rect mirrors CGRect.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}

// TexCoord is a normalized texture coordinate.
type TexCoord struct {
	X float32
	Y float32
}
