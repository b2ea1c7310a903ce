// Package cftest provides an in-memory cf.Runtime that records every retain
// and release, for testing ownership without CoreFoundation.
package cftest

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"
	"unsafe"

	"github.com/murkland/corevideo/cf"
	"golang.org/x/exp/slices"
)

const (
	StringTypeID cf.TypeID = iota + 7
	NumberTypeID
	BooleanTypeID
	DictionaryTypeID

	firstUserTypeID cf.TypeID = 0x100
)

// Container is implemented by object values that hold references to other
// objects in the same runtime. Those references are released when the
// container's count reaches zero.
type Container interface {
	Contents() []cf.TypeRef
}

type object struct {
	typeID   cf.TypeID
	value    interface{}
	count    int
	retains  int
	releases int
	immortal bool
}

type dictionary struct {
	keys   []cf.TypeRef
	values []cf.TypeRef
}

func (d *dictionary) Contents() []cf.TypeRef {
	return append(append([]cf.TypeRef(nil), d.keys...), d.values...)
}

// Runtime is a fake cf.Runtime. It is safe for concurrent use, since
// finalizers release objects from their own goroutine.
type Runtime struct {
	mu         sync.Mutex
	objects    map[cf.TypeRef]*object
	constants  map[string]cf.TypeRef
	typeNames  map[cf.TypeID]string
	nextTypeID cf.TypeID
	trueRef    cf.TypeRef
	falseRef   cf.TypeRef
}

func New() *Runtime {
	r := &Runtime{
		objects:    map[cf.TypeRef]*object{},
		constants:  map[string]cf.TypeRef{},
		nextTypeID: firstUserTypeID,
		typeNames: map[cf.TypeID]string{
			StringTypeID:     "CFString",
			NumberTypeID:     "CFNumber",
			BooleanTypeID:    "CFBoolean",
			DictionaryTypeID: "CFDictionary",
		},
	}
	r.trueRef = r.newObject(BooleanTypeID, true, true)
	r.falseRef = r.newObject(BooleanTypeID, false, true)
	return r
}

// Install makes a new Runtime current for the duration of the test.
func Install(t testing.TB) *Runtime {
	r := New()
	prev := cf.SetRuntime(r)
	t.Cleanup(func() {
		cf.SetRuntime(prev)
	})
	return r
}

// RegisterType allocates a type id for objects created with NewObject.
func (r *Runtime) RegisterType(name string) cf.TypeID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextTypeID
	r.nextTypeID++
	r.typeNames[id] = name
	return id
}

func (r *Runtime) newObject(typeID cf.TypeID, value interface{}, immortal bool) cf.TypeRef {
	o := &object{typeID: typeID, value: value, count: 1, immortal: immortal}
	ref := cf.TypeRef(unsafe.Pointer(o))
	r.objects[ref] = o
	return ref
}

// NewObject creates an object at +1, as a Create function would.
func (r *Runtime) NewObject(typeID cf.TypeID, value interface{}) cf.TypeRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.newObject(typeID, value, false)
}

// Constant returns the immortal string constant with the given contents,
// the way framework globals such as kCVMetalTextureUsage behave.
func (r *Runtime) Constant(name string) cf.TypeRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ref, ok := r.constants[name]; ok {
		return ref
	}
	ref := r.newObject(StringTypeID, name, true)
	r.constants[name] = ref
	return ref
}

func (r *Runtime) lookup(ref cf.TypeRef) *object {
	o, ok := r.objects[ref]
	if !ok {
		panic(fmt.Sprintf("cftest: unknown reference %p", ref))
	}
	if o.count <= 0 && !o.immortal {
		panic(fmt.Sprintf("cftest: use of deallocated %s %p", r.typeNames[o.typeID], ref))
	}
	return o
}

// Value returns the payload the object was created with.
func (r *Runtime) Value(ref cf.TypeRef) interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup(ref).value
}

// SetValue replaces the payload of a live object.
func (r *Runtime) SetValue(ref cf.TypeRef, value interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookup(ref).value = value
}

// Count returns the current reference count, 0 once deallocated.
func (r *Runtime) Count(ref cf.TypeRef) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.objects[ref].count
}

// Retains returns how many times ref has been retained since creation.
func (r *Runtime) Retains(ref cf.TypeRef) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.objects[ref].retains
}

// Releases returns how many times ref has been released.
func (r *Runtime) Releases(ref cf.TypeRef) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.objects[ref].releases
}

// Alive reports whether ref still has a positive count.
func (r *Runtime) Alive(ref cf.TypeRef) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.objects[ref]
	return ok && (o.immortal || o.count > 0)
}

// Live returns the number of mortal objects that have not been deallocated.
func (r *Runtime) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, o := range r.objects {
		if !o.immortal && o.count > 0 {
			n++
		}
	}
	return n
}

func (r *Runtime) Retain(ref cf.TypeRef) cf.TypeRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.lookup(ref)
	o.count++
	o.retains++
	return ref
}

func (r *Runtime) Release(ref cf.TypeRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.release(ref)
}

func (r *Runtime) release(ref cf.TypeRef) {
	o := r.lookup(ref)
	o.releases++
	if o.immortal {
		return
	}
	o.count--
	if o.count > 0 {
		return
	}
	if c, ok := o.value.(Container); ok {
		for _, child := range c.Contents() {
			if child != nil {
				r.release(child)
			}
		}
	}
}

func (r *Runtime) GetTypeID(ref cf.TypeRef) cf.TypeID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup(ref).typeID
}

func (r *Runtime) GetRetainCount(ref cf.TypeRef) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.lookup(ref)
	if o.immortal {
		return math.MaxInt32
	}
	return o.count
}

func (r *Runtime) Equal(a cf.TypeRef, b cf.TypeRef) bool {
	if a == b {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	oa, ob := r.lookup(a), r.lookup(b)
	if oa.typeID != ob.typeID {
		return false
	}
	switch oa.value.(type) {
	case string, int64, float64, bool:
		return oa.value == ob.value
	}
	return false
}

func (r *Runtime) Hash(ref cf.TypeRef) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.lookup(ref)
	if s, ok := o.value.(string); ok {
		var h uint = 5381
		for i := 0; i < len(s); i++ {
			h = h*33 + uint(s[i])
		}
		return h
	}
	return uint(uintptr(ref))
}

func (r *Runtime) CopyDescription(ref cf.TypeRef) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.describe(ref)
}

func (r *Runtime) describe(ref cf.TypeRef) string {
	o := r.lookup(ref)
	switch v := o.value.(type) {
	case string:
		return v
	case *dictionary:
		entries := make([]string, len(v.keys))
		for i := range v.keys {
			entries[i] = fmt.Sprintf("%s = %s", r.describe(v.keys[i]), r.describe(v.values[i]))
		}
		slices.Sort(entries)
		return "{" + strings.Join(entries, "; ") + "}"
	case int64, float64, bool:
		return fmt.Sprint(v)
	}
	return fmt.Sprintf("<%s %p>", r.typeNames[o.typeID], ref)
}

func (r *Runtime) StringGetTypeID() cf.TypeID {
	return StringTypeID
}

func (r *Runtime) StringCreate(s string) cf.TypeRef {
	return r.NewObject(StringTypeID, s)
}

func (r *Runtime) StringGetValue(ref cf.TypeRef) string {
	return r.Value(ref).(string)
}

func (r *Runtime) NumberGetTypeID() cf.TypeID {
	return NumberTypeID
}

func (r *Runtime) NumberCreateInt64(v int64) cf.TypeRef {
	return r.NewObject(NumberTypeID, v)
}

func (r *Runtime) NumberCreateFloat64(v float64) cf.TypeRef {
	return r.NewObject(NumberTypeID, v)
}

func (r *Runtime) NumberIsFloat(ref cf.TypeRef) bool {
	_, ok := r.Value(ref).(float64)
	return ok
}

func (r *Runtime) NumberGetInt64(ref cf.TypeRef) int64 {
	switch v := r.Value(ref).(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

func (r *Runtime) NumberGetFloat64(ref cf.TypeRef) float64 {
	switch v := r.Value(ref).(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	}
	return 0
}

func (r *Runtime) BooleanGetTypeID() cf.TypeID {
	return BooleanTypeID
}

func (r *Runtime) BooleanTrue() cf.TypeRef {
	return r.trueRef
}

func (r *Runtime) BooleanFalse() cf.TypeRef {
	return r.falseRef
}

func (r *Runtime) BooleanGetValue(ref cf.TypeRef) bool {
	return r.Value(ref).(bool)
}

func (r *Runtime) DictionaryGetTypeID() cf.TypeID {
	return DictionaryTypeID
}

func (r *Runtime) DictionaryCreate(keys []cf.TypeRef, values []cf.TypeRef) cf.TypeRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := &dictionary{}
	for i := range keys {
		for _, ref := range []cf.TypeRef{keys[i], values[i]} {
			o := r.lookup(ref)
			o.count++
			o.retains++
		}
		d.keys = append(d.keys, keys[i])
		d.values = append(d.values, values[i])
	}
	return r.newObject(DictionaryTypeID, d, false)
}

func (r *Runtime) DictionaryGetCount(ref cf.TypeRef) int {
	return len(r.Value(ref).(*dictionary).keys)
}

func (r *Runtime) DictionaryGetValue(ref cf.TypeRef, key cf.TypeRef) cf.TypeRef {
	d := r.Value(ref).(*dictionary)
	for i, k := range d.keys {
		if r.Equal(k, key) {
			return d.values[i]
		}
	}
	return nil
}

func (r *Runtime) DictionaryGetKeysAndValues(ref cf.TypeRef) ([]cf.TypeRef, []cf.TypeRef) {
	d := r.Value(ref).(*dictionary)
	return append([]cf.TypeRef(nil), d.keys...), append([]cf.TypeRef(nil), d.values...)
}
