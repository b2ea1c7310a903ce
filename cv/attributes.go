package cv

import (
	"math"
	"time"

	"github.com/murkland/corevideo/cf"
	"github.com/murkland/corevideo/mtl"
)

type attributeBuilder struct {
	entries []cf.Entry
	owned   []*cf.Object
	err     error
}

func (b *attributeBuilder) add(key cf.Type, value *cf.Object) {
	b.entries = append(b.entries, cf.Entry{Key: key, Value: value})
	b.owned = append(b.owned, value)
}

func (b *attributeBuilder) addInt(key cf.Type, v int64) {
	if b.err != nil {
		return
	}
	n, err := cf.NewInt64(v)
	if err != nil {
		b.err = err
		return
	}
	b.add(key, n.Object)
}

func (b *attributeBuilder) addFloat(key cf.Type, v float64) {
	if b.err != nil {
		return
	}
	n, err := cf.NewFloat64(v)
	if err != nil {
		b.err = err
		return
	}
	b.add(key, n.Object)
}

// build creates the dictionary and drops the builder's references to the
// values, which the dictionary now retains.
func (b *attributeBuilder) build() (*cf.Dictionary, error) {
	defer func() {
		for _, o := range b.owned {
			o.Release()
		}
	}()
	if b.err != nil {
		return nil, b.err
	}
	return cf.NewDictionary(b.entries...)
}

// MetalTextureAttributes configures the textures a Metal texture cache
// produces.
type MetalTextureAttributes struct {
	// Usage is left to the cache when zero.
	Usage mtl.TextureUsage
	// StorageMode is left to the cache when nil.
	StorageMode *mtl.StorageMode
}

func (a MetalTextureAttributes) Dictionary() (*cf.Dictionary, error) {
	var b attributeBuilder
	if a.Usage != mtl.TextureUsageUnknown {
		b.addInt(MetalTextureUsage, int64(a.Usage))
	}
	if a.StorageMode != nil {
		b.addInt(MetalTextureStorageMode, int64(*a.StorageMode))
	}
	return b.build()
}

func ParseMetalTextureAttributes(d *cf.Dictionary) MetalTextureAttributes {
	var a MetalTextureAttributes
	if v, ok := d.Int64(MetalTextureUsage); ok {
		a.Usage = mtl.TextureUsage(v)
	}
	if v, ok := d.Int64(MetalTextureStorageMode); ok {
		mode := mtl.StorageMode(v)
		a.StorageMode = &mode
	}
	return a
}

// OpenGLBufferPoolAttributes configures how a pool recycles buffers.
type OpenGLBufferPoolAttributes struct {
	// MinimumBufferCount is how many buffers the pool keeps around even
	// when they are older than MaximumBufferAge.
	MinimumBufferCount int
	// MaximumBufferAge is how long an unused buffer is kept. The framework
	// default of one second applies when zero.
	MaximumBufferAge time.Duration
}

func (a OpenGLBufferPoolAttributes) Dictionary() (*cf.Dictionary, error) {
	var b attributeBuilder
	if a.MinimumBufferCount != 0 {
		b.addInt(OpenGLBufferPoolMinimumBufferCount, int64(a.MinimumBufferCount))
	}
	if a.MaximumBufferAge != 0 {
		b.addFloat(OpenGLBufferPoolMaximumBufferAge, a.MaximumBufferAge.Seconds())
	}
	return b.build()
}

func ParseOpenGLBufferPoolAttributes(d *cf.Dictionary) OpenGLBufferPoolAttributes {
	var a OpenGLBufferPoolAttributes
	if v, ok := d.Int64(OpenGLBufferPoolMinimumBufferCount); ok {
		a.MinimumBufferCount = int(v)
	}
	if v, ok := d.Float64(OpenGLBufferPoolMaximumBufferAge); ok {
		a.MaximumBufferAge = time.Duration(math.Round(v * float64(time.Second)))
	}
	return a
}

// OpenGLBufferAttributes describes the buffers an OpenGL buffer pool vends.
// Target and InternalFormat are GLenum values.
type OpenGLBufferAttributes struct {
	Width              int
	Height             int
	Target             uint32
	InternalFormat     uint32
	MaximumMipmapLevel int
}

func (a OpenGLBufferAttributes) Dictionary() (*cf.Dictionary, error) {
	var b attributeBuilder
	if a.Width != 0 {
		b.addInt(OpenGLBufferWidth, int64(a.Width))
	}
	if a.Height != 0 {
		b.addInt(OpenGLBufferHeight, int64(a.Height))
	}
	if a.Target != 0 {
		b.addInt(OpenGLBufferTarget, int64(a.Target))
	}
	if a.InternalFormat != 0 {
		b.addInt(OpenGLBufferInternalFormat, int64(a.InternalFormat))
	}
	if a.MaximumMipmapLevel != 0 {
		b.addInt(OpenGLBufferMaximumMipmapLevel, int64(a.MaximumMipmapLevel))
	}
	return b.build()
}

func ParseOpenGLBufferAttributes(d *cf.Dictionary) OpenGLBufferAttributes {
	var a OpenGLBufferAttributes
	if v, ok := d.Int64(OpenGLBufferWidth); ok {
		a.Width = int(v)
	}
	if v, ok := d.Int64(OpenGLBufferHeight); ok {
		a.Height = int(v)
	}
	if v, ok := d.Int64(OpenGLBufferTarget); ok {
		a.Target = uint32(v)
	}
	if v, ok := d.Int64(OpenGLBufferInternalFormat); ok {
		a.InternalFormat = uint32(v)
	}
	if v, ok := d.Int64(OpenGLBufferMaximumMipmapLevel); ok {
		a.MaximumMipmapLevel = int(v)
	}
	return a
}
