package cv_test

import (
	"testing"

	"github.com/murkland/corevideo/cf"
	"github.com/murkland/corevideo/cv"
	"github.com/murkland/corevideo/cv/cvtest"
	"github.com/stretchr/testify/assert"
)

type key interface {
	cf.Type
	String() string
	CFString() *cf.String
}

func allKeys() []key {
	return []key{
		cv.MetalTextureUsage,
		cv.MetalTextureStorageMode,
		cv.OpenGLBufferPoolMinimumBufferCount,
		cv.OpenGLBufferPoolMaximumBufferAge,
		cv.OpenGLBufferWidth,
		cv.OpenGLBufferHeight,
		cv.OpenGLBufferTarget,
		cv.OpenGLBufferInternalFormat,
		cv.OpenGLBufferMaximumMipmapLevel,
	}
}

func TestKeysMapToFrameworkConstants(t *testing.T) {
	rt := cvtest.Install(t)

	seen := map[cf.TypeRef]string{}
	for _, k := range allKeys() {
		ref := k.Ref()
		assert.NotNil(t, ref, k.String())
		assert.Equal(t, rt.CF.Constant(k.String()), ref, k.String())
		assert.Equal(t, k.Ref(), ref, "%s is not stable", k.String())

		if other, ok := seen[ref]; ok {
			t.Errorf("%s and %s share a constant", k, other)
		}
		seen[ref] = k.String()
	}
}

func TestKeyCFString(t *testing.T) {
	cvtest.Install(t)

	s := cv.OpenGLBufferWidth.CFString()
	defer s.Release()
	assert.Equal(t, "kCVOpenGLBufferWidth", s.String())
}

func TestUnknownKeyNames(t *testing.T) {
	assert.Equal(t, "MetalTextureKey(9)", cv.MetalTextureKey(9).String())
	assert.Equal(t, "OpenGLBufferPoolKey(-1)", cv.OpenGLBufferPoolKey(-1).String())
	assert.Equal(t, "OpenGLBufferKey(42)", cv.OpenGLBufferKey(42).String())
}

func TestUnknownKeyRefPanics(t *testing.T) {
	cvtest.Install(t)

	assert.Panics(t, func() { cv.OpenGLBufferKey(42).Ref() })
}
