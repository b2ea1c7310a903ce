package cf

type Number struct {
	*Object
}

func NewInt64(v int64) (*Number, error) {
	if rt == nil {
		return nil, ErrUnsupported
	}
	ref := rt.NumberCreateInt64(v)
	if ref == nil {
		return nil, ErrAllocationFailed
	}
	return &Number{WrapUnderCreateRule(ref)}, nil
}

func NewFloat64(v float64) (*Number, error) {
	if rt == nil {
		return nil, ErrUnsupported
	}
	ref := rt.NumberCreateFloat64(v)
	if ref == nil {
		return nil, ErrAllocationFailed
	}
	return &Number{WrapUnderCreateRule(ref)}, nil
}

func NumberTypeID() TypeID {
	return mustRuntime().NumberGetTypeID()
}

func NumberFromObject(o *Object) (*Number, bool) {
	defer o.KeepAlive()
	if !o.InstanceOf(o.rt.NumberGetTypeID()) {
		return nil, false
	}
	return &Number{o.Clone()}, true
}

// IsFloat reports whether the number was stored as a floating point type.
func (n *Number) IsFloat() bool {
	defer n.KeepAlive()
	return n.rt.NumberIsFloat(n.Ref())
}

// Int64 converts the value, truncating floats.
func (n *Number) Int64() int64 {
	defer n.KeepAlive()
	return n.rt.NumberGetInt64(n.Ref())
}

func (n *Number) Float64() float64 {
	defer n.KeepAlive()
	return n.rt.NumberGetFloat64(n.Ref())
}

func (n *Number) Clone() *Number {
	return &Number{n.Object.Clone()}
}

type Boolean struct {
	*Object
}

// True returns kCFBooleanTrue.
func True() *Boolean {
	return &Boolean{WrapUnderGetRule(mustRuntime().BooleanTrue())}
}

// False returns kCFBooleanFalse.
func False() *Boolean {
	return &Boolean{WrapUnderGetRule(mustRuntime().BooleanFalse())}
}

func NewBoolean(v bool) (*Boolean, error) {
	if rt == nil {
		return nil, ErrUnsupported
	}
	if v {
		return True(), nil
	}
	return False(), nil
}

func BooleanTypeID() TypeID {
	return mustRuntime().BooleanGetTypeID()
}

func BooleanFromObject(o *Object) (*Boolean, bool) {
	defer o.KeepAlive()
	if !o.InstanceOf(o.rt.BooleanGetTypeID()) {
		return nil, false
	}
	return &Boolean{o.Clone()}, true
}

func (b *Boolean) Bool() bool {
	defer b.KeepAlive()
	return b.rt.BooleanGetValue(b.Ref())
}

func (b *Boolean) Clone() *Boolean {
	return &Boolean{b.Object.Clone()}
}
