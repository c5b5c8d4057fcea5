package main

import (
	rt "github.com/sublee/patchgen"
)

// time and patchgen shadow the default import names in generated code.
var (
	time     = "noon"
	patchgen = rt.MergeAll[rt.Option[int]]
)

func patchgenSome[T any](v T) rt.Option[T] {
	return rt.Some(v)
}
