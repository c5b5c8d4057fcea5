package main

//patchgen:derive nmae=X
type Shape interface {
	Area() float64
}

//patchgen:derive
type Names []string

//patchgen:derive
type Celsius float64

func main() {}
