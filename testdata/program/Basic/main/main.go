package main

import (
	"fmt"

	"github.com/sublee/patchgen"
)

//patchgen:derive
type Item struct {
	A uint32
	B bool
	C string
}

func main() {
	item := Item{A: 50, B: true, C: "Hello"}

	// A default patch changes nothing.
	NewItemPatch().ApplyTo(&item)
	fmt.Printf("%+v\n", item)

	p := NewItemPatch()
	p.A = patchgen.Some[uint32](10)
	p.B = patchgen.Some(false)
	p.ApplyTo(&item)
	fmt.Printf("%+v\n", item)
	fmt.Println(p.A, p.B, p.C)
}
