// Package expand writes the declarations derived from a container: the patch
// type, its constructor, Merge and ApplyTo, and optionally ToPatch on the
// source type.
package expand

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sublee/patchgen/internal/codefmt"
	"github.com/sublee/patchgen/internal/patchgen/parse"
)

// Patch is a patch type to derive from a container.
type Patch struct {
	c *parse.Container
}

// New creates a [Patch] for the container.
func New(c *parse.Container) Patch { return Patch{c} }

// names are the local names in generated functions.
type names struct {
	rt   string // runtime package
	recv string // receiver of Merge and ApplyTo
	rhs  string // argument of Merge
	v    string // target of ApplyTo and receiver of ToPatch

	// Only in positional patches
	i   string // element index
	out string // result of Merge and ToPatch
}

// WriteDefineCode writes the patch type declaration and its functions. The
// namespace of w must be local to the patch because names of receivers and
// arguments are reserved in it.
func (pt Patch) WriteDefineCode(w *codefmt.Writer) {
	c := pt.c

	// Reserve names which generated function bodies refer to.
	w.Reserve(c.Name())
	w.Reserve(c.PatchName())
	for _, name := range pt.typeParamNames() {
		w.Reserve(name)
	}

	var n names
	if len(c.Fields) != 0 || c.Style == parse.Positional {
		n.rt = w.Import(parse.RuntimePkgPath, parse.RuntimePkgName)
		w.Reserve(n.rt)
	}
	n.recv = w.Name("p")
	n.rhs = w.Name("rhs")
	n.v = w.Name("v")
	if c.Style == parse.Positional {
		n.i = w.Name("i")
		n.out = w.Name("out")
	}

	pt.writeTypeCode(w, n)
	w.Printf("\n")
	pt.writeNewCode(w, n)
	w.Printf("\n")
	pt.writeMergeCode(w, n)
	w.Printf("\n")
	pt.writeApplyToCode(w, n)
	if c.Config.From {
		w.Printf("\n")
		pt.writeToPatchCode(w, n)
	}
}

// writeTypeCode writes the patch type declaration:
//
//	// UserPatch is a patch for [User].
//	type UserPatch struct {
//		Name patchgen.Option[string]
//	}
func (pt Patch) writeTypeCode(w *codefmt.Writer, n names) {
	c := pt.c

	w.Printf("// %s is a patch for [%s].\n", c.PatchName(), c.Name())
	for _, attr := range c.Config.Attrs {
		if strings.HasPrefix(attr, "//") {
			w.Printf("%s\n", attr)
		} else {
			w.Printf("// %s\n", attr)
		}
	}

	w.Printf("type %s%s ", c.PatchName(), pt.typeParamsDecl(w))
	switch c.Style {
	case parse.Positional:
		w.Printf("[%d]%s\n", c.Len, pt.elemType(w, n))
	case parse.Empty:
		w.Printf("struct{}\n")
	default:
		w.Printf("struct {\n")
		for _, f := range c.Fields {
			w.Printf("%s %s", f.Name, pt.fieldType(w, n, f))
			if tag := f.Config.Tag(); tag != "" {
				w.Printf(" %s", quoteTag(tag))
			}
			w.Printf("\n")
		}
		w.Printf("}\n")
	}
}

// writeNewCode writes the constructor which returns a patch changing nothing:
//
//	func NewUserPatch() UserPatch {
//		return UserPatch{Name: patchgen.None[string]()}
//	}
func (pt Patch) writeNewCode(w *codefmt.Writer, n names) {
	c := pt.c
	w.Printf("// %s returns a [%s] which changes nothing.\n", c.ConstructorName(), c.PatchName())
	w.Printf("func %s%s() %s {\n", c.ConstructorName(), pt.typeParamsDecl(w), pt.patchType())
	if c.Style == parse.Positional {
		// Absent is the zero value of every element.
		w.Printf("return %s{}\n}\n", pt.patchType())
		return
	}
	pt.writeLiteralCode(w, func(f parse.Field) string {
		return pt.defaultValue(w, n, f)
	})
	w.Printf("}\n")
}

// writeMergeCode writes the Merge method which merges patches field by field.
// Every field is right-biased.
func (pt Patch) writeMergeCode(w *codefmt.Writer, n names) {
	w.Printf("// %s returns a patch which has the same effect as applying %s and then %s.\n", parse.MethodMerge, n.recv, n.rhs)
	w.Printf("func (%s %s) %s(%s %s) %s {\n", n.recv, pt.patchType(), parse.MethodMerge, n.rhs, pt.patchType(), pt.patchType())
	if pt.c.Style == parse.Positional {
		pt.writeLoopCode(w, n, n.recv, fmt.Sprintf("%s[%s].%s(%s[%s])", n.recv, n.i, parse.MethodMerge, n.rhs, n.i))
		w.Printf("}\n")
		return
	}
	pt.writeLiteralCode(w, func(f parse.Field) string {
		return fmt.Sprintf("%s.%s(%s)", member(n.recv, f), parse.MethodMerge, member(n.rhs, f))
	})
	w.Printf("}\n")
}

// writeApplyToCode writes the ApplyTo method which applies every field to the
// corresponding field of the target.
func (pt Patch) writeApplyToCode(w *codefmt.Writer, n names) {
	w.Printf("// %s overwrites the fields of %s which are present in %s.\n", parse.MethodApplyTo, n.v, n.recv)
	w.Printf("func (%s %s) %s(%s *%s) {\n", n.recv, pt.patchType(), parse.MethodApplyTo, n.v, pt.sourceType())
	if pt.c.Style == parse.Positional {
		w.Printf("for %s := range %s {\n", n.i, n.recv)
		w.Printf("%s[%s].%s(&%s[%s])\n", n.recv, n.i, parse.MethodApplyTo, n.v, n.i)
		w.Printf("}\n}\n")
		return
	}
	for _, f := range pt.c.Fields {
		w.Printf("%s.%s(&%s)\n", member(n.recv, f), parse.MethodApplyTo, member(n.v, f))
	}
	w.Printf("}\n")
}

// writeToPatchCode writes the ToPatch method on the source type which returns
// a patch with every field present.
func (pt Patch) writeToPatchCode(w *codefmt.Writer, n names) {
	w.Printf("// %s returns a patch which sets every field to the value in %s.\n", parse.MethodToPatch, n.v)
	w.Printf("func (%s %s) %s() %s {\n", n.v, pt.sourceType(), parse.MethodToPatch, pt.patchType())
	if pt.c.Style == parse.Positional {
		pt.writeLoopCode(w, n, n.v, fmt.Sprintf("%s.Some(%s[%s])", n.rt, n.v, n.i))
		w.Printf("}\n")
		return
	}
	pt.writeLiteralCode(w, func(f parse.Field) string {
		if f.Config.With != nil {
			return fmt.Sprintf("%s.%s()", member(n.v, f), parse.MethodToPatch)
		}
		return fmt.Sprintf("%s.Some(%s)", n.rt, member(n.v, f))
	})
	w.Printf("}\n")
}

// writeLoopCode fills a positional patch element by element and returns it:
//
//	var out RGBPatch
//	for i := range p {
//		out[i] = p[i].Merge(rhs[i])
//	}
//	return out
func (pt Patch) writeLoopCode(w *codefmt.Writer, n names, over, elem string) {
	w.Printf("var %s %s\n", n.out, pt.patchType())
	w.Printf("for %s := range %s {\n", n.i, over)
	w.Printf("%s[%s] = %s\n", n.out, n.i, elem)
	w.Printf("}\n")
	w.Printf("return %s\n", n.out)
}

// writeLiteralCode writes a return statement of a keyed patch composite
// literal.
func (pt Patch) writeLiteralCode(w *codefmt.Writer, value func(parse.Field) string) {
	c := pt.c
	if len(c.Fields) == 0 {
		w.Printf("return %s{}\n", pt.patchType())
		return
	}

	w.Printf("return %s{\n", pt.patchType())
	for _, f := range c.Fields {
		w.Printf("%s: %s,\n", f.Name, value(f))
	}
	w.Printf("}\n")
}

// fieldType returns the type of the field on the patch type.
func (pt Patch) fieldType(w *codefmt.Writer, n names, f parse.Field) string {
	if f.Config.With != nil {
		return w.Expr(pt.c.File, f.Config.With)
	}
	return fmt.Sprintf("%s.Option[%s]", n.rt, w.Expr(pt.c.File, f.Type))
}

// elemType returns the element type of a positional patch.
func (pt Patch) elemType(w *codefmt.Writer, n names) string {
	return fmt.Sprintf("%s.Option[%s]", n.rt, w.Expr(pt.c.File, pt.c.Elem))
}

// defaultValue returns the value of the field in a patch changing nothing.
func (pt Patch) defaultValue(w *codefmt.Writer, n names, f parse.Field) string {
	if f.Config.With != nil {
		return fmt.Sprintf("%s.Zero[%s]()", n.rt, w.Expr(pt.c.File, f.Config.With))
	}
	return fmt.Sprintf("%s.None[%s]()", n.rt, w.Expr(pt.c.File, f.Type))
}

// patchType returns the patch type instantiated with the type parameters.
func (pt Patch) patchType() string {
	return pt.c.PatchName() + pt.typeArgs()
}

// sourceType returns the source type instantiated with the type parameters.
func (pt Patch) sourceType() string {
	return pt.c.Name() + pt.typeArgs()
}

// typeParamsDecl returns the type parameter list of the source type as
// declared, like "[K comparable, V any]".
func (pt Patch) typeParamsDecl(w *codefmt.Writer) string {
	params := pt.c.TypeParams()
	if params == nil || len(params.List) == 0 {
		return ""
	}

	var ss []string
	for _, field := range params.List {
		var ns []string
		for _, name := range field.Names {
			ns = append(ns, name.Name)
		}
		ss = append(ss, strings.Join(ns, ", ")+" "+w.Expr(pt.c.File, field.Type))
	}
	return "[" + strings.Join(ss, ", ") + "]"
}

// typeArgs returns the type parameters as arguments, like "[K, V]".
func (pt Patch) typeArgs() string {
	names := pt.typeParamNames()
	if len(names) == 0 {
		return ""
	}
	return "[" + strings.Join(names, ", ") + "]"
}

func (pt Patch) typeParamNames() []string {
	params := pt.c.TypeParams()
	if params == nil {
		return nil
	}

	var names []string
	for _, field := range params.List {
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
	}
	return names
}

// member returns the expression to access the field of x.
func member(x string, f parse.Field) string {
	return x + "." + f.Name
}

// quoteTag quotes a struct tag. It prefers a raw string literal.
func quoteTag(tag string) string {
	if strings.Contains(tag, "`") {
		return strconv.Quote(tag)
	}
	return "`" + tag + "`"
}
