package conflicts

//patchgen:derive
type A struct { // want "patch type APatch conflicts with APatch declared in package conflicts"
	X int
}

type APatch struct{}

//patchgen:derive
type B struct { // want "constructor NewBPatch of patch type BPatch conflicts with NewBPatch declared in package conflicts"
	Y int
}

func NewBPatch() {}

//patchgen:derive
type C struct {
	Merge   int // want "field Merge conflicts with method CPatch.Merge"
	ApplyTo int // want "field ApplyTo conflicts with method CPatch.ApplyTo"
}

//patchgen:derive from
type D struct {
	ToPatch int // want "field ToPatch conflicts with method D.ToPatch requested by from"
}

//patchgen:derive from
type E struct{}

func (E) ToPatch() {} // want "method E.ToPatch conflicts with the one requested by from"

//patchgen:derive name=Delta
type F struct{}

//patchgen:derive name=Delta // want "patch type Delta is already derived from F at .*conflicts.go:34:6"
type G struct{}

//patchgen:derive
type I struct{}

//patchgen:derive name=NewIPatch // want "patch type NewIPatch conflicts with constructor NewIPatch of patch type IPatch derived from I at .*conflicts.go:40:6"
type J struct{}
