// Package mtl is the small subset of Metal needed to use textures handed out
// by CoreVideo.
package mtl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/murkland/corevideo/cf"
)

// ErrUnsupported is returned when Metal is not available.
var ErrUnsupported = errors.New("mtl: Metal is not available on this platform")

// Runtime is the foreign Metal surface used by this package. Metal objects
// are Objective-C objects and carry their own reference count, separate
// from any CoreVideo object that hands them out.
type Runtime interface {
	Retain(ref cf.TypeRef) cf.TypeRef
	Release(ref cf.TypeRef)

	TextureWidth(ref cf.TypeRef) int
	TextureHeight(ref cf.TypeRef) int
	TexturePixelFormat(ref cf.TypeRef) PixelFormat
	TextureUsage(ref cf.TypeRef) TextureUsage
	TextureStorageMode(ref cf.TypeRef) StorageMode
}

var rt = platformRuntime()

// SetRuntime replaces the Metal runtime and returns the previous one.
func SetRuntime(r Runtime) Runtime {
	prev := rt
	rt = r
	return prev
}

// TextureUsage describes how a texture will be used. It mirrors
// MTLTextureUsage.
type TextureUsage uint

const (
	TextureUsageUnknown         TextureUsage = 0x0000
	TextureUsageShaderRead      TextureUsage = 0x0001
	TextureUsageShaderWrite     TextureUsage = 0x0002
	TextureUsageRenderTarget    TextureUsage = 0x0004
	TextureUsagePixelFormatView TextureUsage = 0x0010
)

var textureUsageNames = []struct {
	usage TextureUsage
	name  string
}{
	{TextureUsageShaderRead, "shader_read"},
	{TextureUsageShaderWrite, "shader_write"},
	{TextureUsageRenderTarget, "render_target"},
	{TextureUsagePixelFormatView, "pixel_format_view"},
}

func (u TextureUsage) String() string {
	if u == TextureUsageUnknown {
		return "unknown"
	}
	var parts []string
	rest := u
	for _, n := range textureUsageNames {
		if u&n.usage != 0 {
			parts = append(parts, n.name)
			rest &^= n.usage
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseTextureUsage parses the form produced by TextureUsage.String.
func ParseTextureUsage(s string) (TextureUsage, error) {
	if s == "" || s == "unknown" {
		return TextureUsageUnknown, nil
	}
	var u TextureUsage
outer:
	for _, part := range strings.Split(s, "|") {
		for _, n := range textureUsageNames {
			if part == n.name {
				u |= n.usage
				continue outer
			}
		}
		return 0, fmt.Errorf("unknown texture usage: %s", part)
	}
	return u, nil
}

func (u *TextureUsage) UnmarshalText(text []byte) error {
	v, err := ParseTextureUsage(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

func (u TextureUsage) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// StorageMode is where a resource's memory lives. It mirrors MTLStorageMode.
type StorageMode uint

const (
	StorageModeShared     StorageMode = 0
	StorageModeManaged    StorageMode = 1
	StorageModePrivate    StorageMode = 2
	StorageModeMemoryless StorageMode = 3
)

func (m StorageMode) String() string {
	switch m {
	case StorageModeShared:
		return "shared"
	case StorageModeManaged:
		return "managed"
	case StorageModePrivate:
		return "private"
	case StorageModeMemoryless:
		return "memoryless"
	default:
		return fmt.Sprintf("StorageMode(%d)", uint(m))
	}
}

func (m *StorageMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "shared":
		*m = StorageModeShared
	case "managed":
		*m = StorageModeManaged
	case "private":
		*m = StorageModePrivate
	case "memoryless":
		*m = StorageModeMemoryless
	default:
		return fmt.Errorf("unknown storage mode: %s", string(text))
	}
	return nil
}

func (m StorageMode) MarshalText() ([]byte, error) {
	switch m {
	case StorageModeShared, StorageModeManaged, StorageModePrivate, StorageModeMemoryless:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("unknown storage mode: %v", uint(m))
	}
}

// PixelFormat mirrors MTLPixelFormat. Values are passed through unchanged;
// only the common ones are named.
type PixelFormat uint

const (
	PixelFormatInvalid        PixelFormat = 0
	PixelFormatR8Unorm        PixelFormat = 10
	PixelFormatRG8Unorm       PixelFormat = 30
	PixelFormatRGBA8Unorm     PixelFormat = 70
	PixelFormatBGRA8Unorm     PixelFormat = 80
	PixelFormatBGRA8UnormSRGB PixelFormat = 81
	PixelFormatRGBA16Float    PixelFormat = 115
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatInvalid:
		return "invalid"
	case PixelFormatR8Unorm:
		return "r8unorm"
	case PixelFormatRG8Unorm:
		return "rg8unorm"
	case PixelFormatRGBA8Unorm:
		return "rgba8unorm"
	case PixelFormatBGRA8Unorm:
		return "bgra8unorm"
	case PixelFormatBGRA8UnormSRGB:
		return "bgra8unorm_srgb"
	case PixelFormatRGBA16Float:
		return "rgba16float"
	default:
		return fmt.Sprintf("PixelFormat(%d)", uint(f))
	}
}
