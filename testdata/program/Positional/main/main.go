package main

import (
	"fmt"

	"github.com/sublee/patchgen"
)

//patchgen:derive from
type RGB [3]uint8

const pairLen = 2

//patchgen:derive
type Pair [pairLen]string

func main() {
	c := RGB{1, 2, 3}
	p := NewRGBPatch()
	p[1] = patchgen.Some[uint8](200)
	p.ApplyTo(&c)
	fmt.Println(c)

	q := RGB{9, 8, 7}.ToPatch()
	fmt.Println(q[0], q[1], q[2])

	pr := Pair{"a", "b"}
	pp := NewPairPatch()
	pp[0] = patchgen.Some("z")
	pp.Merge(NewPairPatch()).ApplyTo(&pr)
	fmt.Println(pr)
}
