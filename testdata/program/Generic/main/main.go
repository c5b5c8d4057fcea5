package main

import (
	"fmt"

	"github.com/sublee/patchgen"
)

//patchgen:derive from
type Box[T any] struct {
	Value T
	Label string
}

//patchgen:derive
type Entry[K comparable, V any] struct {
	Key K
	Val Box[V] `patch:"with=BoxPatch[V]"`
}

func main() {
	b := Box[int]{Value: 1, Label: "one"}
	p := NewBoxPatch[int]()
	p.Value = patchgen.Some(2)
	p.ApplyTo(&b)
	fmt.Printf("%+v\n", b)

	q := Box[string]{Value: "x", Label: "y"}.ToPatch()
	fmt.Println(q.Value, q.Label)

	e := Entry[string, float64]{Key: "pi", Val: Box[float64]{Value: 3, Label: "three"}}
	ep := NewEntryPatch[string, float64]()
	ep.Val.Value = patchgen.Some(3.14)
	ep.ApplyTo(&e)
	fmt.Printf("%+v\n", e)
}
