package main

//patchgen:derive
type A struct {
	X int
}

//patchgen:derive name=NewAPatch
type B struct {
	Y int
}

//patchgen:derive name=NewDPatch
type C struct {
	Z int
}

//patchgen:derive
type D struct {
	W int
}

func main() {}
