// Package patchgen provides the runtime for generated patch types.
//
// A patch is a partial update of a value. Patchgen derives a patch type from a
// struct or array type declaration: the patch mirrors the source type but every
// field is wrapped in an [Option]. Patches describe which fields to change,
// compose with Merge, and are applied once with ApplyTo.
//
// To derive a patch, mark the type declaration with a directive:
//
//	//patchgen:derive
//	type User struct {
//		Name  string
//		Email string
//		Age   int
//	}
//
// Then run the patchgen command. It will generate patchgen_gen.go for your
// package:
//
//	go run github.com/sublee/patchgen/cmd/patchgen
//
//	// generated: (simplified)
//	type UserPatch struct {
//		Name  patchgen.Option[string]
//		Email patchgen.Option[string]
//		Age   patchgen.Option[int]
//	}
//	func NewUserPatch() UserPatch { ... }
//	func (p UserPatch) Merge(rhs UserPatch) UserPatch { ... }
//	func (p UserPatch) ApplyTo(v *User) { ... }
//
// Applying a patch overwrites the present fields and leaves absent fields
// untouched:
//
//	u := User{Name: "Alice", Email: "alice@example.com", Age: 30}
//	p := NewUserPatch()
//	p.Age = patchgen.Some(31)
//	p.ApplyTo(&u) // User{Name: "Alice", Email: "alice@example.com", Age: 31}
//
// Merge is right-biased per field. Applying two patches one after the other is
// always the same as applying their merge once:
//
//	patchgen.Apply(&u, p1, p2) // same as p1.Merge(p2).ApplyTo(&u)
//
// # Tags
//
// Tags are written as comma-separated items, "key" or "key=value". Container
// tags follow the derive directive or a "//patchgen:patch" line in the type's
// doc comment:
//
//	//patchgen:derive name=UserUpdate, from
//	//patchgen:patch attr="//easyjson:json"
//	type User struct { ... }
//
//   - name=Ident sets the name of the patch type. The default is the source
//     name with a "Patch" suffix.
//   - attr="..." adds a comment line to the patch type. It can be repeated.
//   - from generates a ToPatch method on the source type which returns a patch
//     with every field present.
//
// Field tags are written in a "//patchgen:patch" line in the field's comment
// or in the "patch" key of its struct tag:
//
//	type Order struct {
//		Ship Address `patch:"with=AddressPatch"`
//		//patchgen:patch attr=`json:"note,omitzero"`
//		Note string
//	}
//
//   - with=Type sets the type of the field on the patch type. The type must
//     implement [Patcher] for the field type and [Merger] for itself. Patch
//     types generated by patchgen satisfy both.
//   - attr="..." adds a struct tag fragment to the field of the patch type. It
//     can be repeated.
//
// Unknown keys, repeated single-valued keys, and malformed values are reported
// all at once, each at its source position. No code is generated while any
// problem remains.
package patchgen

// Patcher is implemented by patches which can be applied to a *T.
type Patcher[T any] interface {
	// ApplyTo modifies the target partially or totally.
	ApplyTo(target *T)
}

// Merger is implemented by patches which can be merged with another patch of
// the same type.
//
// Merge must be coherent with [Patcher]. Applying p1 and then p2 must be the
// same as applying p1.Merge(p2) once.
type Merger[P any] interface {
	// Merge combines the receiver with rhs. Values in rhs take precedence.
	Merge(rhs P) P
}

// Apply applies the patches to the target in order.
func Apply[T any, P Patcher[T]](target *T, patches ...P) {
	for _, patch := range patches {
		patch.ApplyTo(target)
	}
}

// With returns a copy of value with the patch applied.
func With[T any, P Patcher[T]](value T, patch P) T {
	patch.ApplyTo(&value)
	return value
}

// MergeAll merges the patches from left to right. It returns the zero value of
// P if there are no patches.
func MergeAll[P Merger[P]](patches ...P) P {
	var merged P
	for i, patch := range patches {
		if i == 0 {
			merged = patch
			continue
		}
		merged = merged.Merge(patch)
	}
	return merged
}

// Zero returns the zero value of T. Generated code uses it as the default value
// of fields with an overridden type.
func Zero[T any]() T {
	var zero T
	return zero
}
