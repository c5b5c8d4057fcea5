package main

import (
	"fmt"
	stdtime "time"
)

//patchgen:derive
type Event struct {
	At  stdtime.Time
	For stdtime.Duration
}

func main() {
	e := Event{At: stdtime.Date(2024, 1, 2, 3, 4, 5, 0, stdtime.UTC), For: stdtime.Hour}

	p := NewEventPatch()
	p.For = patchgenSome(2 * stdtime.Minute)
	p.ApplyTo(&e)
	fmt.Println(e.At.Format(stdtime.RFC3339), e.For, time)
}
