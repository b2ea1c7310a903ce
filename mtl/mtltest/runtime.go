// Package mtltest provides an in-memory mtl.Runtime that counts Metal-side
// retains and releases.
package mtltest

import (
	"fmt"
	"sync"
	"testing"
	"unsafe"

	"github.com/murkland/corevideo/cf"
	"github.com/murkland/corevideo/mtl"
)

// TextureDescriptor describes a fake texture.
type TextureDescriptor struct {
	Width       int
	Height      int
	PixelFormat mtl.PixelFormat
	Usage       mtl.TextureUsage
	StorageMode mtl.StorageMode
}

type texture struct {
	desc     TextureDescriptor
	count    int
	retains  int
	releases int
}

type Runtime struct {
	mu       sync.Mutex
	textures map[cf.TypeRef]*texture
}

func New() *Runtime {
	return &Runtime{textures: map[cf.TypeRef]*texture{}}
}

// Install makes a new Runtime current for the duration of the test.
func Install(t testing.TB) *Runtime {
	r := New()
	prev := mtl.SetRuntime(r)
	t.Cleanup(func() {
		mtl.SetRuntime(prev)
	})
	return r
}

// NewTexture creates a texture at +1.
func (r *Runtime) NewTexture(desc TextureDescriptor) cf.TypeRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	tex := &texture{desc: desc, count: 1}
	ref := cf.TypeRef(unsafe.Pointer(tex))
	r.textures[ref] = tex
	return ref
}

func (r *Runtime) lookup(ref cf.TypeRef) *texture {
	tex, ok := r.textures[ref]
	if !ok {
		panic(fmt.Sprintf("mtltest: unknown texture %p", ref))
	}
	if tex.count <= 0 {
		panic(fmt.Sprintf("mtltest: use of deallocated texture %p", ref))
	}
	return tex
}

func (r *Runtime) Count(ref cf.TypeRef) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.textures[ref].count
}

func (r *Runtime) Retains(ref cf.TypeRef) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.textures[ref].retains
}

func (r *Runtime) Releases(ref cf.TypeRef) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.textures[ref].releases
}

func (r *Runtime) Retain(ref cf.TypeRef) cf.TypeRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	tex := r.lookup(ref)
	tex.count++
	tex.retains++
	return ref
}

func (r *Runtime) Release(ref cf.TypeRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tex := r.lookup(ref)
	tex.count--
	tex.releases++
}

func (r *Runtime) desc(ref cf.TypeRef) TextureDescriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup(ref).desc
}

func (r *Runtime) TextureWidth(ref cf.TypeRef) int {
	return r.desc(ref).Width
}

func (r *Runtime) TextureHeight(ref cf.TypeRef) int {
	return r.desc(ref).Height
}

func (r *Runtime) TexturePixelFormat(ref cf.TypeRef) mtl.PixelFormat {
	return r.desc(ref).PixelFormat
}

func (r *Runtime) TextureUsage(ref cf.TypeRef) mtl.TextureUsage {
	return r.desc(ref).Usage
}

func (r *Runtime) TextureStorageMode(ref cf.TypeRef) mtl.StorageMode {
	return r.desc(ref).StorageMode
}
