package directives

import "time"

// User is valid and reports nothing.
//
//patchgen:derive name=UserUpdate
//patchgen:patch attr="//easyjson:json"
type User struct {
	Name  string    `json:"name"` //patchgen:patch attr=`json:"name,omitzero"`
	Birth time.Time //patchgen:patch attr=`json:"birth,omitzero"`
	Addr  Address   `patch:"with=AddressPatch"`

	// The runtime package is available without importing it.
	//patchgen:patch with=patchgen.Option[*string]
	Nick *string
}

//patchgen:derive from
type Address struct {
	City string
}

//patchgen:derive
type Bad struct {
	X int //patchgen:patch with=missing.T // want "malformed patch tag `with`: undefined package missing"

	//patchgen:patch name=Y // want "unknown patch tag `name`"
	Y int

	//patchgen:patchx // want "unknown patchgen directive `patchx` for fields"
	Z int

	//patchgen:patch attr="bad tag" // want "malformed patch tag `attr`: bad syntax for struct tag pair"
	W int
}
