package main

//patchgen:derive
type A struct {
	X int
}

type APatch struct{}

//patchgen:derive name=Delta
type B struct {
	Y int
}

//patchgen:derive name=Delta
type C struct {
	Z int
}

func main() {}
