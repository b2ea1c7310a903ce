package cf

import (
	"fmt"
	"runtime"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Rule says how a reference came into the caller's hands.
type Rule int

const (
	// CreateRule: the reference came from a Create function and is already
	// at +1.
	CreateRule Rule = iota
	// CopyRule: the reference came from a Copy function and is already at +1.
	CopyRule
	// GetRule: the reference is borrowed and must be retained to be kept.
	GetRule
)

func (r Rule) String() string {
	switch r {
	case CreateRule:
		return "create"
	case CopyRule:
		return "copy"
	case GetRule:
		return "get"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// Ops are the retain and release entry points used for an object. Types
// with their own entry points (CVOpenGLBufferPoolRetain, Metal objects)
// supply them; nil Ops means CFRetain/CFRelease.
type Ops struct {
	Retain  func(ref TypeRef) TypeRef
	Release func(ref TypeRef)
}

// Object owns one reference to a foreign object. The reference is released
// exactly once, by Release or by the finalizer.
type Object struct {
	ref      TypeRef
	rt       Runtime
	ops      Ops
	released atomic.Bool
}

// Wrap takes ownership of ref following rule. It panics if ref is nil: a
// NULL from a call documented to return non-NULL is a contract violation.
func Wrap(ref TypeRef, rule Rule, ops *Ops) *Object {
	return wrap(rt, ref, rule, ops)
}

func wrap(r Runtime, ref TypeRef, rule Rule, ops *Ops) *Object {
	if ref == nil {
		panic(fmt.Sprintf("cf: wrap of NULL reference under %s rule", rule))
	}

	o := &Object{ref: ref, rt: r}
	if ops != nil {
		o.ops = *ops
	} else {
		if o.rt == nil {
			panic(ErrUnsupported)
		}
		o.ops = Ops{Retain: o.rt.Retain, Release: o.rt.Release}
	}

	if rule == GetRule {
		o.ref = o.ops.Retain(ref)
	}

	runtime.SetFinalizer(o, (*Object).finalize)
	return o
}

// WrapUnderCreateRule wraps a +1 reference without retaining it.
func WrapUnderCreateRule(ref TypeRef) *Object {
	return Wrap(ref, CreateRule, nil)
}

// WrapUnderGetRule retains a borrowed reference and wraps it.
func WrapUnderGetRule(ref TypeRef) *Object {
	return Wrap(ref, GetRule, nil)
}

func (o *Object) finalize() {
	if !o.released.CAS(false, true) {
		return
	}
	zap.L().Debug("cf: releasing object from finalizer", zap.Uintptr("ref", uintptr(o.ref)))
	o.ops.Release(o.ref)
}

// Ref returns the wrapped reference. The reference is only valid while o is
// alive and unreleased.
func (o *Object) Ref() TypeRef {
	if o.released.Load() {
		panic("cf: use of released object")
	}
	return o.ref
}

// KeepAlive marks o as reachable until the call. Accessors defer it so the
// finalizer cannot release the reference while a foreign call is using it.
func (o *Object) KeepAlive() {
	runtime.KeepAlive(o)
}

// Released reports whether Release has been called.
func (o *Object) Released() bool {
	return o.released.Load()
}

// Release gives up this value's reference. Calls after the first do nothing.
func (o *Object) Release() {
	if !o.released.CAS(false, true) {
		return
	}
	runtime.SetFinalizer(o, nil)
	o.ops.Release(o.ref)
}

// Clone retains the object and returns a second, independent owner.
func (o *Object) Clone() *Object {
	ref := o.ops.Retain(o.Ref())
	c := &Object{ref: ref, rt: o.rt, ops: o.ops}
	runtime.SetFinalizer(c, (*Object).finalize)
	return c
}

// TypeID returns CFGetTypeID of the object.
func (o *Object) TypeID() TypeID {
	defer o.KeepAlive()
	return o.rt.GetTypeID(o.Ref())
}

// InstanceOf reports whether the object's type id is id.
func (o *Object) InstanceOf(id TypeID) bool {
	return o.TypeID() == id
}

// RetainCount is CFGetRetainCount. Only useful for debugging.
func (o *Object) RetainCount() int {
	defer o.KeepAlive()
	return o.rt.GetRetainCount(o.Ref())
}

// Equal is CFEqual. A nil other is never equal.
func (o *Object) Equal(other Type) bool {
	if other == nil {
		return false
	}
	defer runtime.KeepAlive(other)
	defer o.KeepAlive()
	return o.rt.Equal(o.Ref(), other.Ref())
}

// Hash is CFHash. Objects that are Equal hash the same.
func (o *Object) Hash() uint {
	defer o.KeepAlive()
	return o.rt.Hash(o.Ref())
}

// Description returns CFCopyDescription of the object.
func (o *Object) Description() string {
	defer o.KeepAlive()
	return o.rt.CopyDescription(o.Ref())
}

func (o *Object) String() string {
	if o.released.Load() {
		return "<released>"
	}
	return o.Description()
}
