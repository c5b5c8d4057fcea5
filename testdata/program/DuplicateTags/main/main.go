package main

//patchgen:derive name=A1, name=A2, from
//patchgen:patch from, name=A3
type A struct {
	//patchgen:patch with=int, with=int
	X int
}

func main() {}
