package main

import (
	"fmt"
)

//patchgen:derive from
type Point struct {
	X, Y int
}

//patchgen:derive from
type Greeting struct {
	A  int
	B  string
	At Point `patch:"with=PointPatch"`
}

func main() {
	g := Greeting{A: 53, B: "Hello", At: Point{X: 1, Y: 2}}

	p := g.ToPatch()
	fmt.Println(p.A, p.B, p.At.X, p.At.Y)

	var other Greeting
	p.ApplyTo(&other)
	fmt.Println(other == g)
}
