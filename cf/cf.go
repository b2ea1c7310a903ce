// Package cf wraps CoreFoundation references in Go values that each own
// exactly one reference count.
package cf

import (
	"errors"
	"unsafe"
)

// TypeRef is an opaque reference to a CoreFoundation-family object.
type TypeRef unsafe.Pointer

// TypeID identifies the concrete class of a CoreFoundation object.
type TypeID uint

var (
	ErrUnsupported      = errors.New("cf: CoreFoundation is not available on this platform")
	ErrAllocationFailed = errors.New("cf: allocation failed")
)

// Type is implemented by everything that can be handed to CoreFoundation as
// a CFTypeRef: wrapped objects and framework key constants.
type Type interface {
	Ref() TypeRef
}

// Runtime is the foreign CoreFoundation surface. References returned from
// the Create methods are at +1; everything else is borrowed.
type Runtime interface {
	Retain(ref TypeRef) TypeRef
	Release(ref TypeRef)
	GetTypeID(ref TypeRef) TypeID
	GetRetainCount(ref TypeRef) int
	Equal(a TypeRef, b TypeRef) bool
	Hash(ref TypeRef) uint
	CopyDescription(ref TypeRef) string

	StringGetTypeID() TypeID
	StringCreate(s string) TypeRef
	StringGetValue(ref TypeRef) string

	NumberGetTypeID() TypeID
	NumberCreateInt64(v int64) TypeRef
	NumberCreateFloat64(v float64) TypeRef
	NumberIsFloat(ref TypeRef) bool
	NumberGetInt64(ref TypeRef) int64
	NumberGetFloat64(ref TypeRef) float64

	BooleanGetTypeID() TypeID
	BooleanTrue() TypeRef
	BooleanFalse() TypeRef
	BooleanGetValue(ref TypeRef) bool

	DictionaryGetTypeID() TypeID
	DictionaryCreate(keys []TypeRef, values []TypeRef) TypeRef
	DictionaryGetCount(ref TypeRef) int
	DictionaryGetValue(ref TypeRef, key TypeRef) TypeRef
	DictionaryGetKeysAndValues(ref TypeRef) ([]TypeRef, []TypeRef)
}

var rt = platformRuntime()

// SetRuntime replaces the runtime used by objects wrapped from now on and
// returns the previous one. Objects keep the runtime they were wrapped with.
func SetRuntime(r Runtime) Runtime {
	prev := rt
	rt = r
	return prev
}

func mustRuntime() Runtime {
	if rt == nil {
		panic(ErrUnsupported)
	}
	return rt
}

// CurrentRuntime returns the installed runtime, or nil if CoreFoundation is
// unavailable.
func CurrentRuntime() Runtime {
	return rt
}
