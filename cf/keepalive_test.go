package cf_test

import (
	"runtime"
	"testing"
	"time"

	"github.com/murkland/corevideo/cf"
	"github.com/murkland/corevideo/cf/cftest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect runs the garbage collector and gives queued finalizers time to
// run, as could happen at any point during a foreign call.
func collect() {
	runtime.GC()
	time.Sleep(10 * time.Millisecond)
	runtime.GC()
}

type collectingRuntime struct {
	*cftest.Runtime
}

func (r collectingRuntime) StringGetValue(ref cf.TypeRef) string {
	collect()
	return r.Runtime.StringGetValue(ref)
}

func (r collectingRuntime) NumberGetInt64(ref cf.TypeRef) int64 {
	collect()
	return r.Runtime.NumberGetInt64(ref)
}

func (r collectingRuntime) DictionaryGetValue(ref cf.TypeRef, key cf.TypeRef) cf.TypeRef {
	collect()
	return r.Runtime.DictionaryGetValue(ref, key)
}

func (r collectingRuntime) CopyDescription(ref cf.TypeRef) string {
	collect()
	return r.Runtime.CopyDescription(ref)
}

func installCollecting(t *testing.T) *cftest.Runtime {
	rt := cftest.New()
	prev := cf.SetRuntime(collectingRuntime{rt})
	t.Cleanup(func() {
		cf.SetRuntime(prev)
	})
	return rt
}

func TestStringSurvivesCollectionDuringCall(t *testing.T) {
	installCollecting(t)

	assert.Equal(t, "transient", cf.MustString("transient").String())
}

func TestNumberSurvivesCollectionDuringCall(t *testing.T) {
	installCollecting(t)

	n, err := cf.NewInt64(42)
	require.NoError(t, err)
	assert.EqualValues(t, 42, n.Int64())
}

func TestDescriptionSurvivesCollectionDuringCall(t *testing.T) {
	installCollecting(t)

	assert.Equal(t, "described", cf.MustString("described").Description())
}

func newTransientDictionary(t *testing.T) *cf.Dictionary {
	key := cf.MustString("width")
	defer key.Release()
	value, err := cf.NewInt64(640)
	require.NoError(t, err)
	defer value.Release()

	d, err := cf.NewDictionary(cf.Entry{Key: key, Value: value})
	require.NoError(t, err)
	return d
}

func TestDictionaryLookupSurvivesCollectionDuringCall(t *testing.T) {
	installCollecting(t)

	v, ok := newTransientDictionary(t).Int64(cf.MustString("width"))
	require.True(t, ok)
	assert.EqualValues(t, 640, v)

	assert.True(t, newTransientDictionary(t).Contains(cf.MustString("width")))
}

func TestConstantsWithoutRuntime(t *testing.T) {
	prev := cf.SetRuntime(nil)
	defer cf.SetRuntime(prev)

	for name, fn := range map[string]func(){
		"True":             func() { cf.True() },
		"False":            func() { cf.False() },
		"StringTypeID":     func() { cf.StringTypeID() },
		"NumberTypeID":     func() { cf.NumberTypeID() },
		"BooleanTypeID":    func() { cf.BooleanTypeID() },
		"DictionaryTypeID": func() { cf.DictionaryTypeID() },
	} {
		assert.PanicsWithValue(t, cf.ErrUnsupported, fn, name)
	}

	_, err := cf.NewBoolean(true)
	assert.ErrorIs(t, err, cf.ErrUnsupported)
}
