package shapes

//patchgen:derive
type Shape interface { // want "patchgen does not support derive for interfaces"
	Area() float64
}

//patchgen:derive
type Names []string // want "patchgen does not support derive for slices"

//patchgen:derive
type Index map[string]int // want "patchgen does not support derive for maps"

//patchgen:derive
type Handler func() // want "patchgen does not support derive for functions"

//patchgen:derive
type Queue chan int // want "patchgen does not support derive for channels"

//patchgen:derive
type Ref *int // want "patchgen does not support derive for pointers"

//patchgen:derive
type Alias = struct{} // want "patchgen does not support derive for type aliases"

//patchgen:derive
type Celsius float64 // want "patchgen does not support derive for named types"

//patchgen:patch from // want "//patchgen:patch without //patchgen:derive"
type Plain struct{}

//patchgen:deriv // want "unknown patchgen directive `deriv`"
type Typo struct{}

// Supported shapes report nothing.
type (
	//patchgen:derive
	RGB [3]uint8

	//patchgen:derive
	Unit struct{}

	//patchgen:derive from
	Pair[K comparable, V any] struct {
		Key K
		Val V
	}
)
