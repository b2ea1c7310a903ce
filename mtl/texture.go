package mtl

import (
	"fmt"

	"github.com/murkland/corevideo/cf"
)

// Texture is a reference to an id<MTLTexture>. It holds a Metal-side
// reference of its own and must be released when no longer needed.
//
// A texture is not a CoreFoundation object, so only ownership is taken from
// cf.Object; identity and accessors go through the Metal runtime.
type Texture struct {
	obj *cf.Object
	rt  Runtime
}

var _ cf.Type = (*Texture)(nil)

func textureOps(r Runtime) *cf.Ops {
	return &cf.Ops{Retain: r.Retain, Release: r.Release}
}

// WrapTexture takes ownership of an id<MTLTexture> following rule.
func WrapTexture(ref cf.TypeRef, rule cf.Rule) *Texture {
	if rt == nil {
		panic(ErrUnsupported)
	}
	return &Texture{cf.Wrap(ref, rule, textureOps(rt)), rt}
}

// Ref returns the id<MTLTexture>, valid while t is alive and unreleased.
func (t *Texture) Ref() cf.TypeRef {
	return t.obj.Ref()
}

func (t *Texture) Release() {
	t.obj.Release()
}

func (t *Texture) Released() bool {
	return t.obj.Released()
}

func (t *Texture) Clone() *Texture {
	return &Texture{t.obj.Clone(), t.rt}
}

// Equal reports whether both values refer to the same texture. Metal
// objects compare by identity.
func (t *Texture) Equal(other *Texture) bool {
	if other == nil {
		return false
	}
	defer other.obj.KeepAlive()
	defer t.obj.KeepAlive()
	return t.Ref() == other.Ref()
}

// Width is the width of the texture in pixels.
func (t *Texture) Width() int {
	defer t.obj.KeepAlive()
	return t.rt.TextureWidth(t.Ref())
}

// Height is the height of the texture in pixels.
func (t *Texture) Height() int {
	defer t.obj.KeepAlive()
	return t.rt.TextureHeight(t.Ref())
}

func (t *Texture) PixelFormat() PixelFormat {
	defer t.obj.KeepAlive()
	return t.rt.TexturePixelFormat(t.Ref())
}

func (t *Texture) Usage() TextureUsage {
	defer t.obj.KeepAlive()
	return t.rt.TextureUsage(t.Ref())
}

func (t *Texture) StorageMode() StorageMode {
	defer t.obj.KeepAlive()
	return t.rt.TextureStorageMode(t.Ref())
}

func (t *Texture) String() string {
	if t.Released() {
		return "<released>"
	}
	return fmt.Sprintf("<MTLTexture %dx%d %s>", t.Width(), t.Height(), t.PixelFormat())
}
