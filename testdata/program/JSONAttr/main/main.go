package main

import (
	"encoding/json"
	"fmt"
)

// Profile is a user profile.
//
//patchgen:derive
//patchgen:patch attr="Deprecated: use the v2 profile API."
type Profile struct {
	Name  string `json:"name"` //patchgen:patch attr=`json:"name,omitzero"`
	Email string //patchgen:patch attr=`json:"email,omitzero"`

	//patchgen:patch attr=`json:"age,omitzero"`
	Age int
}

func main() {
	var p ProfilePatch
	if err := json.Unmarshal([]byte(`{"email": "new@example.com", "age": null}`), &p); err != nil {
		panic(err)
	}

	prof := Profile{Name: "Alice", Email: "old@example.com", Age: 30}
	p.ApplyTo(&prof)
	fmt.Printf("%+v\n", prof)

	out, err := json.Marshal(p)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(out))
}
