package cv

import (
	"fmt"

	"github.com/murkland/corevideo/cf"
)

// MetalTextureKey names an attribute of a Metal texture cache's textures.
type MetalTextureKey int

const (
	MetalTextureUsage MetalTextureKey = iota
	MetalTextureStorageMode
)

// Ref returns the framework's string constant for k.
func (k MetalTextureKey) Ref() cf.TypeRef {
	r := mustRuntime()
	switch k {
	case MetalTextureUsage:
		return r.MetalTextureUsageKey()
	case MetalTextureStorageMode:
		return r.MetalTextureStorageModeKey()
	default:
		panic(fmt.Sprintf("cv: unknown metal texture key %d", int(k)))
	}
}

// CFString returns the key constant as an owned string.
func (k MetalTextureKey) CFString() *cf.String {
	return &cf.String{Object: cf.WrapUnderGetRule(k.Ref())}
}

func (k MetalTextureKey) String() string {
	switch k {
	case MetalTextureUsage:
		return "kCVMetalTextureUsage"
	case MetalTextureStorageMode:
		return "kCVMetalTextureStorageMode"
	default:
		return fmt.Sprintf("MetalTextureKey(%d)", int(k))
	}
}

// OpenGLBufferPoolKey names a pool-level attribute of an OpenGL buffer pool.
type OpenGLBufferPoolKey int

const (
	OpenGLBufferPoolMinimumBufferCount OpenGLBufferPoolKey = iota
	OpenGLBufferPoolMaximumBufferAge
)

func (k OpenGLBufferPoolKey) Ref() cf.TypeRef {
	r := mustRuntime()
	switch k {
	case OpenGLBufferPoolMinimumBufferCount:
		return r.OpenGLBufferPoolMinimumBufferCountKey()
	case OpenGLBufferPoolMaximumBufferAge:
		return r.OpenGLBufferPoolMaximumBufferAgeKey()
	default:
		panic(fmt.Sprintf("cv: unknown opengl buffer pool key %d", int(k)))
	}
}

func (k OpenGLBufferPoolKey) CFString() *cf.String {
	return &cf.String{Object: cf.WrapUnderGetRule(k.Ref())}
}

func (k OpenGLBufferPoolKey) String() string {
	switch k {
	case OpenGLBufferPoolMinimumBufferCount:
		return "kCVOpenGLBufferPoolMinimumBufferCountKey"
	case OpenGLBufferPoolMaximumBufferAge:
		return "kCVOpenGLBufferPoolMaximumBufferAgeKey"
	default:
		return fmt.Sprintf("OpenGLBufferPoolKey(%d)", int(k))
	}
}

// OpenGLBufferKey names an attribute of an OpenGL buffer.
type OpenGLBufferKey int

const (
	OpenGLBufferWidth OpenGLBufferKey = iota
	OpenGLBufferHeight
	OpenGLBufferTarget
	OpenGLBufferInternalFormat
	OpenGLBufferMaximumMipmapLevel
)

func (k OpenGLBufferKey) Ref() cf.TypeRef {
	r := mustRuntime()
	switch k {
	case OpenGLBufferWidth:
		return r.OpenGLBufferWidthKey()
	case OpenGLBufferHeight:
		return r.OpenGLBufferHeightKey()
	case OpenGLBufferTarget:
		return r.OpenGLBufferTargetKey()
	case OpenGLBufferInternalFormat:
		return r.OpenGLBufferInternalFormatKey()
	case OpenGLBufferMaximumMipmapLevel:
		return r.OpenGLBufferMaximumMipmapLevelKey()
	default:
		panic(fmt.Sprintf("cv: unknown opengl buffer key %d", int(k)))
	}
}

func (k OpenGLBufferKey) CFString() *cf.String {
	return &cf.String{Object: cf.WrapUnderGetRule(k.Ref())}
}

func (k OpenGLBufferKey) String() string {
	switch k {
	case OpenGLBufferWidth:
		return "kCVOpenGLBufferWidth"
	case OpenGLBufferHeight:
		return "kCVOpenGLBufferHeight"
	case OpenGLBufferTarget:
		return "kCVOpenGLBufferTarget"
	case OpenGLBufferInternalFormat:
		return "kCVOpenGLBufferInternalFormat"
	case OpenGLBufferMaximumMipmapLevel:
		return "kCVOpenGLBufferMaximumMipmapLevel"
	default:
		return fmt.Sprintf("OpenGLBufferKey(%d)", int(k))
	}
}
