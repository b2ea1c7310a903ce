package cv

import (
	"github.com/murkland/corevideo/cf"
	"github.com/murkland/corevideo/mtl"
)

// MetalTexture is a CVMetalTextureRef: an image buffer backed by a Metal
// texture. Metal textures are vended by a texture cache; this type only
// reads them.
type MetalTexture struct {
	imageBuffer
}

var _ ImageBuffer = (*MetalTexture)(nil)

func MetalTextureTypeID() cf.TypeID {
	return mustRuntime().MetalTextureGetTypeID()
}

// WrapMetalTexture takes ownership of a CVMetalTextureRef following rule.
func WrapMetalTexture(ref cf.TypeRef, rule cf.Rule) *MetalTexture {
	return &MetalTexture{imageBuffer{buffer{cf.Wrap(ref, rule, nil), mustRuntime()}}}
}

// MetalTextureFromObject downcasts o. The result holds its own reference.
func MetalTextureFromObject(o *cf.Object) (*MetalTexture, bool) {
	defer o.KeepAlive()
	r := mustRuntime()
	if !o.InstanceOf(r.MetalTextureGetTypeID()) {
		return nil, false
	}
	return &MetalTexture{imageBuffer{buffer{o.Clone(), r}}}, true
}

func (t *MetalTexture) Clone() *MetalTexture {
	return &MetalTexture{imageBuffer{buffer{t.Object.Clone(), t.rt}}}
}

// Texture returns the Metal texture backing t, if there is one. The
// texture is retained on the Metal side; t's own count is untouched.
func (t *MetalTexture) Texture() (*mtl.Texture, bool) {
	defer t.KeepAlive()
	ref := t.rt.MetalTextureGetTexture(t.Ref())
	if ref == nil {
		return nil, false
	}
	return mtl.WrapTexture(ref, cf.GetRule), true
}

// IsFlipped reports whether the texture's origin is at the top left.
func (t *MetalTexture) IsFlipped() bool {
	defer t.KeepAlive()
	return t.rt.MetalTextureIsFlipped(t.Ref()) != 0
}

// CleanTexCoords returns the normalized texture coordinates of the clean
// aperture's corners.
func (t *MetalTexture) CleanTexCoords() (lowerLeft TexCoord, lowerRight TexCoord, upperRight TexCoord, upperLeft TexCoord) {
	defer t.KeepAlive()
	var ll, lr, ur, ul [2]float32
	t.rt.MetalTextureGetCleanTexCoords(t.Ref(), &ll, &lr, &ur, &ul)
	return TexCoord{ll[0], ll[1]}, TexCoord{lr[0], lr[1]}, TexCoord{ur[0], ur[1]}, TexCoord{ul[0], ul[1]}
}
