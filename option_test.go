package patchgen_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublee/patchgen"
)

// testMerge applies patches one by one to a copy of value, and their merge at
// once to another copy. Both results must be equal.
func testMerge[T comparable](t *testing.T, value T, patches ...patchgen.Option[T]) T {
	t.Helper()
	require.NotEmpty(t, patches, "expected at least one patch")

	a := value
	patchgen.Apply(&a, patches...)

	b := value
	patchgen.MergeAll(patches...).ApplyTo(&b)

	assert.Equal(t, a, b)
	return a
}

func TestOptionMerge(t *testing.T) {
	assert.Equal(t, 2, testMerge(t, 99, patchgen.Some(1), patchgen.Some(2)))
	assert.Equal(t, 1, testMerge(t, 99, patchgen.None[int](), patchgen.Some(1), patchgen.None[int](), patchgen.None[int]()))
	assert.Equal(t, 99, testMerge(t, 99, patchgen.None[int](), patchgen.None[int](), patchgen.None[int]()))
}

func TestOptionMergeIdentity(t *testing.T) {
	for _, p := range []patchgen.Option[string]{patchgen.Some("x"), patchgen.None[string]()} {
		none := patchgen.None[string]()
		assert.Equal(t, p, p.Merge(none))
		assert.Equal(t, p, none.Merge(p))
	}
}

func TestOptionMergeAssociative(t *testing.T) {
	opts := []patchgen.Option[int]{patchgen.None[int](), patchgen.Some(1), patchgen.Some(2)}
	for _, p1 := range opts {
		for _, p2 := range opts {
			for _, p3 := range opts {
				assert.Equal(t, p1.Merge(p2).Merge(p3), p1.Merge(p2.Merge(p3)))
			}
		}
	}
}

func TestOptionApplyTo(t *testing.T) {
	v := 50
	patchgen.None[int]().ApplyTo(&v)
	assert.Equal(t, 50, v)

	patchgen.Some(10).ApplyTo(&v)
	assert.Equal(t, 10, v)

	// Present zero values still overwrite.
	patchgen.Some(0).ApplyTo(&v)
	assert.Equal(t, 0, v)
}

func TestOptionAccessors(t *testing.T) {
	some := patchgen.Some("hello")
	none := patchgen.None[string]()

	v, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
	assert.True(t, some.IsSome())
	assert.False(t, some.IsZero())
	assert.Equal(t, "hello", some.OrElse("fallback"))
	assert.Equal(t, "hello", *some.Ptr())
	assert.Equal(t, "Some(hello)", some.String())

	_, ok = none.Get()
	assert.False(t, ok)
	assert.True(t, none.IsNone())
	assert.True(t, none.IsZero())
	assert.Equal(t, "fallback", none.OrElse("fallback"))
	assert.Nil(t, none.Ptr())
	assert.Equal(t, "None", none.String())

	assert.Equal(t, none, patchgen.Option[string]{})
}

func TestOptionFromPtr(t *testing.T) {
	s := "x"
	assert.Equal(t, patchgen.Some("x"), patchgen.FromPtr(&s))
	assert.Equal(t, patchgen.None[string](), patchgen.FromPtr[string](nil))
}

func TestOptionJSON(t *testing.T) {
	type doc struct {
		A patchgen.Option[int]    `json:"a"`
		B patchgen.Option[string] `json:"b"`
		C patchgen.Option[bool]   `json:"c,omitzero"`
	}

	out, err := json.Marshal(doc{A: patchgen.Some(1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1, "b": null}`, string(out))

	var in doc
	require.NoError(t, json.Unmarshal([]byte(`{"a": 0, "b": null}`), &in))
	assert.Equal(t, patchgen.Some(0), in.A)
	assert.Equal(t, patchgen.None[string](), in.B)
	assert.Equal(t, patchgen.None[bool](), in.C)

	err = json.Unmarshal([]byte(`{"a": "not a number"}`), &in)
	assert.Error(t, err)
}

func TestOptionJSONPresentNull(t *testing.T) {
	p := patchgen.Some[*int](nil)
	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	var in patchgen.Option[*int]
	require.NoError(t, json.Unmarshal(out, &in))
	assert.False(t, in.IsSome())

	m := patchgen.Some[map[string]int](nil)
	out, err = json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestWith(t *testing.T) {
	v := 1
	w := patchgen.With(v, patchgen.Some(2))
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, w)
}

func TestMergeAllEmpty(t *testing.T) {
	assert.Equal(t, patchgen.None[int](), patchgen.MergeAll[patchgen.Option[int]]())
}

func TestZero(t *testing.T) {
	assert.Equal(t, 0, patchgen.Zero[int]())
	assert.Nil(t, patchgen.Zero[*int]())
	assert.Equal(t, patchgen.None[int](), patchgen.Zero[patchgen.Option[int]]())
}
