package main

import "fmt"

//patchgen:derive name=unitDelta, from
type unit struct{}

//patchgen:derive
type Empty [0]int

func main() {
	u := unit{}
	p := unit{}.ToPatch().Merge(newUnitDelta())
	p.ApplyTo(&u)

	var e Empty
	NewEmptyPatch().ApplyTo(&e)

	fmt.Println(u, e, p)
}
