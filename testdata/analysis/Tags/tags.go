package tags

//patchgen:derive nmae=Renamed // want "unknown patch tag `nmae`, did you mean `name`\\?"
type A struct {
	X int `patch:"wiht=int"` // want "unknown patch tag `wiht`, did you mean `with`\\?"
	Y int //patchgen:patch with=int, with=int // want "duplicate patch tag `with`"
}

//patchgen:derive name=1x // want "malformed patch tag `name`: 1x is not an identifier"
type B struct {
	//patchgen:patch attr=42 // want "malformed patch tag `attr`: expected string literal, found 42"
	X int
	//patchgen:patch with=1+2 // want "malformed patch tag `with`: 1\\+2 is not a type"
	Y int
}

//patchgen:derive from=true // want "malformed patch tag `from`: unexpected value"
type C struct {
	//patchgen:patch with // want "malformed patch tag `with`: expected with=..."
	X int
	//patchgen:patch name Foo // want "malformed patch tag: expected = or , after name, found Foo"
	Y int
}
