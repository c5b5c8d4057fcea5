package main

import (
	"fmt"

	"github.com/sublee/patchgen"
)

// Config is derived with empty tag groups only.
//
//patchgen:derive
//patchgen:patch
type Config struct {
	//patchgen:patch
	Host string `patch:""`
	Port int    //patchgen:patch
}

func main() {
	cfg := Config{Host: "localhost", Port: 80}

	p := NewConfigPatch()
	p.Port = patchgen.Some(8080)
	p.ApplyTo(&cfg)
	fmt.Printf("%+v\n", cfg)
}
