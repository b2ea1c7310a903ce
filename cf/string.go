package cf

type String struct {
	*Object
}

func NewString(s string) (*String, error) {
	if rt == nil {
		return nil, ErrUnsupported
	}
	ref := rt.StringCreate(s)
	if ref == nil {
		return nil, ErrAllocationFailed
	}
	return &String{WrapUnderCreateRule(ref)}, nil
}

// MustString is NewString for strings known at compile time.
func MustString(s string) *String {
	str, err := NewString(s)
	if err != nil {
		panic(err)
	}
	return str
}

func StringTypeID() TypeID {
	return mustRuntime().StringGetTypeID()
}

// StringFromObject downcasts o. The result owns its own reference.
func StringFromObject(o *Object) (*String, bool) {
	defer o.KeepAlive()
	if !o.InstanceOf(o.rt.StringGetTypeID()) {
		return nil, false
	}
	return &String{o.Clone()}, true
}

// String returns the contents as UTF-8.
func (s *String) String() string {
	defer s.KeepAlive()
	return s.rt.StringGetValue(s.Ref())
}

func (s *String) Clone() *String {
	return &String{s.Object.Clone()}
}
