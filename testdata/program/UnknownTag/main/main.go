package main

//patchgen:derive nmae=Renamed
type A struct {
	X int `patch:"wiht=int"`
	Y int //patchgen:patch atr="json:\"y\""
}

func main() {}
