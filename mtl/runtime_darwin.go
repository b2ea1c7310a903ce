//go:build darwin

package mtl

/*
#cgo CFLAGS: -x objective-c -fmodules -fobjc-arc
#cgo LDFLAGS: -framework Metal -framework CoreFoundation

#include <CoreFoundation/CoreFoundation.h>
#include <Metal/Metal.h>

static NSUInteger cvgo_MTLTexture_width(CFTypeRef ref) {
	return ((__bridge id<MTLTexture>)ref).width;
}

static NSUInteger cvgo_MTLTexture_height(CFTypeRef ref) {
	return ((__bridge id<MTLTexture>)ref).height;
}

static NSUInteger cvgo_MTLTexture_pixelFormat(CFTypeRef ref) {
	return ((__bridge id<MTLTexture>)ref).pixelFormat;
}

static NSUInteger cvgo_MTLTexture_usage(CFTypeRef ref) {
	return ((__bridge id<MTLTexture>)ref).usage;
}

static NSUInteger cvgo_MTLTexture_storageMode(CFTypeRef ref) {
	return ((__bridge id<MTLTexture>)ref).storageMode;
}
*/
import "C"
import "github.com/murkland/corevideo/cf"

type darwinRuntime struct{}

func platformRuntime() Runtime {
	return darwinRuntime{}
}

// Objective-C objects are toll-free bridged to CFTypeRef for retain and
// release.
func (darwinRuntime) Retain(ref cf.TypeRef) cf.TypeRef {
	return cf.TypeRef(C.CFRetain(C.CFTypeRef(ref)))
}

func (darwinRuntime) Release(ref cf.TypeRef) {
	C.CFRelease(C.CFTypeRef(ref))
}

func (darwinRuntime) TextureWidth(ref cf.TypeRef) int {
	return int(C.cvgo_MTLTexture_width(C.CFTypeRef(ref)))
}

func (darwinRuntime) TextureHeight(ref cf.TypeRef) int {
	return int(C.cvgo_MTLTexture_height(C.CFTypeRef(ref)))
}

func (darwinRuntime) TexturePixelFormat(ref cf.TypeRef) PixelFormat {
	return PixelFormat(C.cvgo_MTLTexture_pixelFormat(C.CFTypeRef(ref)))
}

func (darwinRuntime) TextureUsage(ref cf.TypeRef) TextureUsage {
	return TextureUsage(C.cvgo_MTLTexture_usage(C.CFTypeRef(ref)))
}

func (darwinRuntime) TextureStorageMode(ref cf.TypeRef) StorageMode {
	return StorageMode(C.cvgo_MTLTexture_storageMode(C.CFTypeRef(ref)))
}
