package main

import (
	"fmt"

	"github.com/sublee/patchgen"
)

//patchgen:derive
type Goo struct {
	X, Y int
}

//patchgen:derive
type Hoo struct {
	Name string
	Size int
}

//patchgen:derive
type Foo struct {
	A uint32
	B Goo `patch:"with=GooPatch"`

	//patchgen:patch with=HooPatch
	C Hoo
}

func main() {
	foo := Foo{A: 1, B: Goo{X: 2, Y: 3}, C: Hoo{Name: "hoo", Size: 4}}

	p1 := NewFooPatch()
	p1.B.X = patchgen.Some(20)
	p2 := NewFooPatch()
	p2.C.Size = patchgen.Some(40)

	p := p1.Merge(p2)
	fmt.Println(p.A, p.B.X, p.B.Y, p.C.Name, p.C.Size)

	p.ApplyTo(&foo)
	fmt.Printf("%+v\n", foo)
}
