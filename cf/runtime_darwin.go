//go:build darwin

package cf

/*
#cgo LDFLAGS: -framework CoreFoundation

#include <CoreFoundation/CoreFoundation.h>
#include <stdlib.h>

static CFStringRef cvgo_CFStringCreate(const char *bytes, CFIndex n) {
	return CFStringCreateWithBytes(kCFAllocatorDefault, (const UInt8 *)bytes, n, kCFStringEncodingUTF8, false);
}

static char *cvgo_CFStringCopyUTF8(CFStringRef s, CFIndex *n) {
	CFIndex length = CFStringGetLength(s);
	CFIndex max = CFStringGetMaximumSizeForEncoding(length, kCFStringEncodingUTF8);
	char *buf = malloc(max + 1);
	if (buf == NULL) {
		*n = 0;
		return NULL;
	}
	CFIndex used = 0;
	CFStringGetBytes(s, CFRangeMake(0, length), kCFStringEncodingUTF8, 0, false, (UInt8 *)buf, max, &used);
	*n = used;
	return buf;
}

static CFNumberRef cvgo_CFNumberCreateInt64(int64_t v) {
	return CFNumberCreate(kCFAllocatorDefault, kCFNumberSInt64Type, &v);
}

static CFNumberRef cvgo_CFNumberCreateFloat64(double v) {
	return CFNumberCreate(kCFAllocatorDefault, kCFNumberFloat64Type, &v);
}

static int64_t cvgo_CFNumberGetInt64(CFNumberRef n) {
	int64_t v = 0;
	CFNumberGetValue(n, kCFNumberSInt64Type, &v);
	return v;
}

static double cvgo_CFNumberGetFloat64(CFNumberRef n) {
	double v = 0;
	CFNumberGetValue(n, kCFNumberFloat64Type, &v);
	return v;
}

static CFDictionaryRef cvgo_CFDictionaryCreate(const void **keys, const void **values, CFIndex n) {
	return CFDictionaryCreate(kCFAllocatorDefault, keys, values, n, &kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
}
*/
import "C"
import "unsafe"

type darwinRuntime struct{}

func platformRuntime() Runtime {
	return darwinRuntime{}
}

func cfString(ref TypeRef) C.CFStringRef {
	return C.CFStringRef(unsafe.Pointer(ref))
}

func cfNumber(ref TypeRef) C.CFNumberRef {
	return C.CFNumberRef(unsafe.Pointer(ref))
}

func cfDictionary(ref TypeRef) C.CFDictionaryRef {
	return C.CFDictionaryRef(unsafe.Pointer(ref))
}

func (darwinRuntime) Retain(ref TypeRef) TypeRef {
	return TypeRef(C.CFRetain(C.CFTypeRef(ref)))
}

func (darwinRuntime) Release(ref TypeRef) {
	C.CFRelease(C.CFTypeRef(ref))
}

func (darwinRuntime) GetTypeID(ref TypeRef) TypeID {
	return TypeID(C.CFGetTypeID(C.CFTypeRef(ref)))
}

func (darwinRuntime) GetRetainCount(ref TypeRef) int {
	return int(C.CFGetRetainCount(C.CFTypeRef(ref)))
}

func (darwinRuntime) Equal(a TypeRef, b TypeRef) bool {
	return C.CFEqual(C.CFTypeRef(a), C.CFTypeRef(b)) != 0
}

func (darwinRuntime) Hash(ref TypeRef) uint {
	return uint(C.CFHash(C.CFTypeRef(ref)))
}

func (r darwinRuntime) CopyDescription(ref TypeRef) string {
	desc := C.CFCopyDescription(C.CFTypeRef(ref))
	if desc == nil {
		return ""
	}
	defer C.CFRelease(C.CFTypeRef(desc))
	return r.StringGetValue(TypeRef(unsafe.Pointer(desc)))
}

func (darwinRuntime) StringGetTypeID() TypeID {
	return TypeID(C.CFStringGetTypeID())
}

func (darwinRuntime) StringCreate(s string) TypeRef {
	cstr := C.CString(s)
	defer C.free(unsafe.Pointer(cstr))
	return TypeRef(unsafe.Pointer(C.cvgo_CFStringCreate(cstr, C.CFIndex(len(s)))))
}

func (darwinRuntime) StringGetValue(ref TypeRef) string {
	var n C.CFIndex
	buf := C.cvgo_CFStringCopyUTF8(cfString(ref), &n)
	if buf == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(buf))
	return C.GoStringN(buf, C.int(n))
}

func (darwinRuntime) NumberGetTypeID() TypeID {
	return TypeID(C.CFNumberGetTypeID())
}

func (darwinRuntime) NumberCreateInt64(v int64) TypeRef {
	return TypeRef(unsafe.Pointer(C.cvgo_CFNumberCreateInt64(C.int64_t(v))))
}

func (darwinRuntime) NumberCreateFloat64(v float64) TypeRef {
	return TypeRef(unsafe.Pointer(C.cvgo_CFNumberCreateFloat64(C.double(v))))
}

func (darwinRuntime) NumberIsFloat(ref TypeRef) bool {
	return C.CFNumberIsFloatType(cfNumber(ref)) != 0
}

func (darwinRuntime) NumberGetInt64(ref TypeRef) int64 {
	return int64(C.cvgo_CFNumberGetInt64(cfNumber(ref)))
}

func (darwinRuntime) NumberGetFloat64(ref TypeRef) float64 {
	return float64(C.cvgo_CFNumberGetFloat64(cfNumber(ref)))
}

func (darwinRuntime) BooleanGetTypeID() TypeID {
	return TypeID(C.CFBooleanGetTypeID())
}

func (darwinRuntime) BooleanTrue() TypeRef {
	return TypeRef(unsafe.Pointer(C.kCFBooleanTrue))
}

func (darwinRuntime) BooleanFalse() TypeRef {
	return TypeRef(unsafe.Pointer(C.kCFBooleanFalse))
}

func (darwinRuntime) BooleanGetValue(ref TypeRef) bool {
	return C.CFBooleanGetValue(C.CFBooleanRef(unsafe.Pointer(ref))) != 0
}

func (darwinRuntime) DictionaryGetTypeID() TypeID {
	return TypeID(C.CFDictionaryGetTypeID())
}

func (darwinRuntime) DictionaryCreate(keys []TypeRef, values []TypeRef) TypeRef {
	var k, v *unsafe.Pointer
	if len(keys) > 0 {
		k = (*unsafe.Pointer)(unsafe.Pointer(&keys[0]))
		v = (*unsafe.Pointer)(unsafe.Pointer(&values[0]))
	}
	return TypeRef(unsafe.Pointer(C.cvgo_CFDictionaryCreate(k, v, C.CFIndex(len(keys)))))
}

func (darwinRuntime) DictionaryGetCount(ref TypeRef) int {
	return int(C.CFDictionaryGetCount(cfDictionary(ref)))
}

func (darwinRuntime) DictionaryGetValue(ref TypeRef, key TypeRef) TypeRef {
	return TypeRef(C.CFDictionaryGetValue(cfDictionary(ref), unsafe.Pointer(key)))
}

func (darwinRuntime) DictionaryGetKeysAndValues(ref TypeRef) ([]TypeRef, []TypeRef) {
	n := int(C.CFDictionaryGetCount(cfDictionary(ref)))
	keys := make([]TypeRef, n)
	values := make([]TypeRef, n)
	if n == 0 {
		return keys, values
	}
	C.CFDictionaryGetKeysAndValues(cfDictionary(ref), (*unsafe.Pointer)(unsafe.Pointer(&keys[0])), (*unsafe.Pointer)(unsafe.Pointer(&values[0])))
	return keys, values
}
