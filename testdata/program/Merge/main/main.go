package main

import (
	"fmt"

	"github.com/sublee/patchgen"
)

//patchgen:derive
type Quad struct {
	A, B, C, D int
}

func show(p QuadPatch) {
	fmt.Println(p.A, p.B, p.C, p.D)
}

func main() {
	p1 := NewQuadPatch()
	p1.A = patchgen.Some(1)

	p2 := NewQuadPatch()
	p2.A = patchgen.Some(99)
	p2.C = patchgen.Some(3)

	// Right-biased
	show(p1.Merge(p2))
	show(p2.Merge(p1))

	// Identity
	show(p1.Merge(NewQuadPatch()))
	show(NewQuadPatch().Merge(p1))

	// Coherence
	v1 := Quad{10, 20, 30, 40}
	v2 := v1
	patchgen.Apply(&v1, p1, p2)
	patchgen.MergeAll(p1, p2).ApplyTo(&v2)
	fmt.Println(v1 == v2, v1)

	// With leaves the original value unchanged.
	v3 := patchgen.With(v1, p1)
	fmt.Println(v1, v3)
}
