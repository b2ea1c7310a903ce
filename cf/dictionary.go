package cf

import "runtime"

// Entry is one key/value pair passed to NewDictionary. The dictionary
// retains both; the caller keeps its own references.
type Entry struct {
	Key   Type
	Value Type
}

// Pair is one key/value pair read out of a dictionary. Both objects are
// owned by the caller.
type Pair struct {
	Key   *Object
	Value *Object
}

func (p Pair) Release() {
	p.Key.Release()
	p.Value.Release()
}

// Dictionary is a CFDictionary created with the CFType key and value
// callbacks, so it retains what it holds.
type Dictionary struct {
	*Object
}

func NewDictionary(entries ...Entry) (*Dictionary, error) {
	if rt == nil {
		return nil, ErrUnsupported
	}
	defer runtime.KeepAlive(entries)
	keys := make([]TypeRef, len(entries))
	values := make([]TypeRef, len(entries))
	for i, e := range entries {
		keys[i] = e.Key.Ref()
		values[i] = e.Value.Ref()
	}
	ref := rt.DictionaryCreate(keys, values)
	if ref == nil {
		return nil, ErrAllocationFailed
	}
	return &Dictionary{WrapUnderCreateRule(ref)}, nil
}

func DictionaryTypeID() TypeID {
	return mustRuntime().DictionaryGetTypeID()
}

func DictionaryFromObject(o *Object) (*Dictionary, bool) {
	defer o.KeepAlive()
	if !o.InstanceOf(o.rt.DictionaryGetTypeID()) {
		return nil, false
	}
	return &Dictionary{o.Clone()}, true
}

// WrapDictionary wraps a CFDictionaryRef handed out by another binding.
func WrapDictionary(ref TypeRef, rule Rule) *Dictionary {
	return &Dictionary{Wrap(ref, rule, nil)}
}

func (d *Dictionary) Clone() *Dictionary {
	return &Dictionary{d.Object.Clone()}
}

func (d *Dictionary) Len() int {
	defer d.KeepAlive()
	return d.rt.DictionaryGetCount(d.Ref())
}

// Get returns the value for key, retained for the caller.
func (d *Dictionary) Get(key Type) (*Object, bool) {
	defer runtime.KeepAlive(key)
	defer d.KeepAlive()
	ref := d.rt.DictionaryGetValue(d.Ref(), key.Ref())
	if ref == nil {
		return nil, false
	}
	return wrap(d.rt, ref, GetRule, nil), true
}

func (d *Dictionary) Contains(key Type) bool {
	defer runtime.KeepAlive(key)
	defer d.KeepAlive()
	return d.rt.DictionaryGetValue(d.Ref(), key.Ref()) != nil
}

// lookup returns a reference borrowed from d. Callers keep d alive until
// they are done with it.
func (d *Dictionary) lookup(key Type, typeID TypeID) (TypeRef, bool) {
	defer runtime.KeepAlive(key)
	ref := d.rt.DictionaryGetValue(d.Ref(), key.Ref())
	if ref == nil || d.rt.GetTypeID(ref) != typeID {
		return nil, false
	}
	return ref, true
}

// Int64 reads a CFNumber value. It reports false if the key is missing or
// holds something else.
func (d *Dictionary) Int64(key Type) (int64, bool) {
	defer d.KeepAlive()
	ref, ok := d.lookup(key, d.rt.NumberGetTypeID())
	if !ok {
		return 0, false
	}
	return d.rt.NumberGetInt64(ref), true
}

func (d *Dictionary) Float64(key Type) (float64, bool) {
	defer d.KeepAlive()
	ref, ok := d.lookup(key, d.rt.NumberGetTypeID())
	if !ok {
		return 0, false
	}
	return d.rt.NumberGetFloat64(ref), true
}

func (d *Dictionary) Bool(key Type) (bool, bool) {
	defer d.KeepAlive()
	ref, ok := d.lookup(key, d.rt.BooleanGetTypeID())
	if !ok {
		return false, false
	}
	return d.rt.BooleanGetValue(ref), true
}

func (d *Dictionary) StringValue(key Type) (string, bool) {
	defer d.KeepAlive()
	ref, ok := d.lookup(key, d.rt.StringGetTypeID())
	if !ok {
		return "", false
	}
	return d.rt.StringGetValue(ref), true
}

// Pairs returns every entry, each key and value retained for the caller.
func (d *Dictionary) Pairs() []Pair {
	defer d.KeepAlive()
	keys, values := d.rt.DictionaryGetKeysAndValues(d.Ref())
	pairs := make([]Pair, len(keys))
	for i := range keys {
		pairs[i] = Pair{
			Key:   wrap(d.rt, keys[i], GetRule, nil),
			Value: wrap(d.rt, values[i], GetRule, nil),
		}
	}
	return pairs
}
