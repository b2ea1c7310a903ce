//go:build darwin && !ios

package cv

/*
#cgo CFLAGS: -x objective-c -fmodules -fobjc-arc -Wno-deprecated-declarations -DGL_SILENCE_DEPRECATION
#cgo LDFLAGS: -framework CoreVideo -framework CoreFoundation -framework Metal -framework OpenGL

#include <CoreFoundation/CoreFoundation.h>
#include <CoreVideo/CoreVideo.h>
#include <CoreVideo/CVMetalTexture.h>
#include <CoreVideo/CVOpenGLBufferPool.h>
#include <Metal/Metal.h>

static CFTypeRef cvgo_CVMetalTextureGetTexture(CVMetalTextureRef image) {
	return (__bridge CFTypeRef)CVMetalTextureGetTexture(image);
}
*/
import "C"
import (
	"unsafe"

	"github.com/murkland/corevideo/cf"
)

type darwinRuntime struct{}

func platformRuntime() Runtime {
	return darwinRuntime{}
}

func cvBuffer(ref cf.TypeRef) C.CVBufferRef {
	return C.CVBufferRef(unsafe.Pointer(ref))
}

func cvImage(ref cf.TypeRef) C.CVImageBufferRef {
	return C.CVImageBufferRef(unsafe.Pointer(ref))
}

func cvMetalTexture(ref cf.TypeRef) C.CVMetalTextureRef {
	return C.CVMetalTextureRef(unsafe.Pointer(ref))
}

func cvOpenGLBuffer(ref cf.TypeRef) C.CVOpenGLBufferRef {
	return C.CVOpenGLBufferRef(unsafe.Pointer(ref))
}

func cvPool(ref cf.TypeRef) C.CVOpenGLBufferPoolRef {
	return C.CVOpenGLBufferPoolRef(unsafe.Pointer(ref))
}

func cfString(ref cf.TypeRef) C.CFStringRef {
	return C.CFStringRef(unsafe.Pointer(ref))
}

func cfDictionary(ref cf.TypeRef) C.CFDictionaryRef {
	return C.CFDictionaryRef(unsafe.Pointer(ref))
}

func toRef(p unsafe.Pointer) cf.TypeRef {
	return cf.TypeRef(p)
}

func (darwinRuntime) BufferGetAttachment(buffer cf.TypeRef, key cf.TypeRef) (cf.TypeRef, AttachmentMode) {
	var mode C.CVAttachmentMode
	ref := C.CVBufferGetAttachment(cvBuffer(buffer), cfString(key), &mode)
	return toRef(unsafe.Pointer(ref)), AttachmentMode(mode)
}

func (darwinRuntime) BufferSetAttachment(buffer cf.TypeRef, key cf.TypeRef, value cf.TypeRef, mode AttachmentMode) {
	C.CVBufferSetAttachment(cvBuffer(buffer), cfString(key), C.CFTypeRef(value), C.CVAttachmentMode(mode))
}

func (darwinRuntime) BufferRemoveAttachment(buffer cf.TypeRef, key cf.TypeRef) {
	C.CVBufferRemoveAttachment(cvBuffer(buffer), cfString(key))
}

func (darwinRuntime) BufferRemoveAllAttachments(buffer cf.TypeRef) {
	C.CVBufferRemoveAllAttachments(cvBuffer(buffer))
}

func (darwinRuntime) BufferPropagateAttachments(src cf.TypeRef, dst cf.TypeRef) {
	C.CVBufferPropagateAttachments(cvBuffer(src), cvBuffer(dst))
}

func (darwinRuntime) ImageBufferGetEncodedSize(image cf.TypeRef) Size {
	s := C.CVImageBufferGetEncodedSize(cvImage(image))
	return Size{float64(s.width), float64(s.height)}
}

func (darwinRuntime) ImageBufferGetDisplaySize(image cf.TypeRef) Size {
	s := C.CVImageBufferGetDisplaySize(cvImage(image))
	return Size{float64(s.width), float64(s.height)}
}

func (darwinRuntime) ImageBufferGetCleanRect(image cf.TypeRef) Rect {
	r := C.CVImageBufferGetCleanRect(cvImage(image))
	return Rect{float64(r.origin.x), float64(r.origin.y), float64(r.size.width), float64(r.size.height)}
}

func (darwinRuntime) ImageBufferIsFlipped(image cf.TypeRef) bool {
	return C.CVImageBufferIsFlipped(cvImage(image)) != 0
}

func (darwinRuntime) MetalTextureGetTypeID() cf.TypeID {
	return cf.TypeID(C.CVMetalTextureGetTypeID())
}

func (darwinRuntime) MetalTextureGetTexture(image cf.TypeRef) cf.TypeRef {
	return toRef(unsafe.Pointer(C.cvgo_CVMetalTextureGetTexture(cvMetalTexture(image))))
}

func (darwinRuntime) MetalTextureIsFlipped(image cf.TypeRef) uint8 {
	return uint8(C.CVMetalTextureIsFlipped(cvMetalTexture(image)))
}

func (darwinRuntime) MetalTextureGetCleanTexCoords(image cf.TypeRef, lowerLeft *[2]float32, lowerRight *[2]float32, upperRight *[2]float32, upperLeft *[2]float32) {
	C.CVMetalTextureGetCleanTexCoords(cvMetalTexture(image),
		(*C.float)(unsafe.Pointer(&lowerLeft[0])),
		(*C.float)(unsafe.Pointer(&lowerRight[0])),
		(*C.float)(unsafe.Pointer(&upperRight[0])),
		(*C.float)(unsafe.Pointer(&upperLeft[0])))
}

func (darwinRuntime) MetalTextureUsageKey() cf.TypeRef {
	return toRef(unsafe.Pointer(C.kCVMetalTextureUsage))
}

func (darwinRuntime) MetalTextureStorageModeKey() cf.TypeRef {
	return toRef(unsafe.Pointer(C.kCVMetalTextureStorageMode))
}

func (darwinRuntime) OpenGLBufferPoolGetTypeID() cf.TypeID {
	return cf.TypeID(C.CVOpenGLBufferPoolGetTypeID())
}

func (darwinRuntime) OpenGLBufferPoolRetain(pool cf.TypeRef) cf.TypeRef {
	return toRef(unsafe.Pointer(C.CVOpenGLBufferPoolRetain(cvPool(pool))))
}

func (darwinRuntime) OpenGLBufferPoolRelease(pool cf.TypeRef) {
	C.CVOpenGLBufferPoolRelease(cvPool(pool))
}

func (darwinRuntime) OpenGLBufferPoolCreate(poolAttributes cf.TypeRef, openGLBufferAttributes cf.TypeRef, poolOut *cf.TypeRef) Return {
	var pool C.CVOpenGLBufferPoolRef
	ret := Return(C.CVOpenGLBufferPoolCreate(C.kCFAllocatorDefault, cfDictionary(poolAttributes), cfDictionary(openGLBufferAttributes), &pool))
	if ret == ReturnSuccess {
		*poolOut = toRef(unsafe.Pointer(pool))
	}
	return ret
}

func (darwinRuntime) OpenGLBufferPoolGetAttributes(pool cf.TypeRef) cf.TypeRef {
	return toRef(unsafe.Pointer(C.CVOpenGLBufferPoolGetAttributes(cvPool(pool))))
}

func (darwinRuntime) OpenGLBufferPoolGetOpenGLBufferAttributes(pool cf.TypeRef) cf.TypeRef {
	return toRef(unsafe.Pointer(C.CVOpenGLBufferPoolGetOpenGLBufferAttributes(cvPool(pool))))
}

func (darwinRuntime) OpenGLBufferPoolCreateOpenGLBuffer(pool cf.TypeRef, bufferOut *cf.TypeRef) Return {
	var buf C.CVOpenGLBufferRef
	ret := Return(C.CVOpenGLBufferPoolCreateOpenGLBuffer(C.kCFAllocatorDefault, cvPool(pool), &buf))
	if ret == ReturnSuccess {
		*bufferOut = toRef(unsafe.Pointer(buf))
	}
	return ret
}

func (darwinRuntime) OpenGLBufferPoolMinimumBufferCountKey() cf.TypeRef {
	return toRef(unsafe.Pointer(C.kCVOpenGLBufferPoolMinimumBufferCountKey))
}

func (darwinRuntime) OpenGLBufferPoolMaximumBufferAgeKey() cf.TypeRef {
	return toRef(unsafe.Pointer(C.kCVOpenGLBufferPoolMaximumBufferAgeKey))
}

func (darwinRuntime) OpenGLBufferGetTypeID() cf.TypeID {
	return cf.TypeID(C.CVOpenGLBufferGetTypeID())
}

func (darwinRuntime) OpenGLBufferRetain(buffer cf.TypeRef) cf.TypeRef {
	return toRef(unsafe.Pointer(C.CVOpenGLBufferRetain(cvOpenGLBuffer(buffer))))
}

func (darwinRuntime) OpenGLBufferRelease(buffer cf.TypeRef) {
	C.CVOpenGLBufferRelease(cvOpenGLBuffer(buffer))
}

func (darwinRuntime) OpenGLBufferCreate(width int, height int, attributes cf.TypeRef, bufferOut *cf.TypeRef) Return {
	var buf C.CVOpenGLBufferRef
	ret := Return(C.CVOpenGLBufferCreate(C.kCFAllocatorDefault, C.size_t(width), C.size_t(height), cfDictionary(attributes), &buf))
	if ret == ReturnSuccess {
		*bufferOut = toRef(unsafe.Pointer(buf))
	}
	return ret
}

func (darwinRuntime) OpenGLBufferGetAttributes(buffer cf.TypeRef) cf.TypeRef {
	return toRef(unsafe.Pointer(C.CVOpenGLBufferGetAttributes(cvOpenGLBuffer(buffer))))
}

func (darwinRuntime) OpenGLBufferWidthKey() cf.TypeRef {
	return toRef(unsafe.Pointer(C.kCVOpenGLBufferWidth))
}

func (darwinRuntime) OpenGLBufferHeightKey() cf.TypeRef {
	return toRef(unsafe.Pointer(C.kCVOpenGLBufferHeight))
}

func (darwinRuntime) OpenGLBufferTargetKey() cf.TypeRef {
	return toRef(unsafe.Pointer(C.kCVOpenGLBufferTarget))
}

func (darwinRuntime) OpenGLBufferInternalFormatKey() cf.TypeRef {
	return toRef(unsafe.Pointer(C.kCVOpenGLBufferInternalFormat))
}

func (darwinRuntime) OpenGLBufferMaximumMipmapLevelKey() cf.TypeRef {
	return toRef(unsafe.Pointer(C.kCVOpenGLBufferMaximumMipmapLevel))
}
