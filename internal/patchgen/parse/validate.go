package parse

import (
	"go/ast"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/sublee/patchgen/internal/codefmt"
)

// Generated method names which must not conflict with fields or other methods.
const (
	MethodMerge   = "Merge"
	MethodApplyTo = "ApplyTo"
	MethodToPatch = "ToPatch"
)

// Registry holds containers by their patch type names in declaration order.
type Registry struct {
	m *linkedhashmap.Map // patch name -> *Container
}

// Containers returns the registered containers in declaration order.
func (r *Registry) Containers() []*Container {
	cs := make([]*Container, 0, r.m.Size())
	it := r.m.Iterator()
	for it.Next() {
		cs = append(cs, it.Value().(*Container))
	}
	return cs
}

// Lookup finds the container which derives the patch type of the name.
func (r *Registry) Lookup(patchName string) (*Container, bool) {
	c, ok := r.m.Get(patchName)
	if !ok {
		return nil, false
	}
	return c.(*Container), true
}

// Len returns the number of registered containers.
func (r *Registry) Len() int { return r.m.Size() }

// Validate registers the containers and checks conflicts between generated
// declarations and the package. It collects all errors in cx instead of
// stopping at the first error. Conflicting containers are not registered.
//
//   - Patch types and their constructors must not shadow names declared in the
//     package.
//   - Two containers must not derive the same patch type. A patch type and a
//     constructor of different containers must not share a name either.
//   - Fields must not be named after the methods of their patch type.
//   - With the from tag, the source type must not have a ToPatch field or
//     method already.
func (p *Parser) Validate(cx *codefmt.Context, containers []*Container) *Registry {
	scope := codefmt.NewNSFromFiles(p.GoFiles())
	methods := p.methods()

	// Top-level names declared by registered containers
	generated := make(map[string]string) // name -> description

	r := &Registry{m: linkedhashmap.New()}
	for _, c := range containers {
		ok := true

		name := c.PatchName()
		if prev, dup := r.Lookup(name); dup {
			cx.Errorf(c.PatchPoser(), "patch type %s is already derived from %s at %b", name, prev.Name(), prev.Pos())
			ok = false
		} else if scope.Has(name) {
			cx.Errorf(c.PatchPoser(), "patch type %s conflicts with %s declared in package %s", name, name, p.pkg.Name)
			ok = false
		} else if what, taken := generated[name]; taken {
			cx.Errorf(c.PatchPoser(), "patch type %s conflicts with %s", name, what)
			ok = false
		}

		ctor := c.ConstructorName()
		if scope.Has(ctor) {
			cx.Errorf(c.PatchPoser(), "constructor %s of patch type %s conflicts with %s declared in package %s", ctor, name, ctor, p.pkg.Name)
			ok = false
		} else if what, taken := generated[ctor]; taken {
			cx.Errorf(c.PatchPoser(), "constructor %s of patch type %s conflicts with %s", ctor, name, what)
			ok = false
		}

		for _, f := range c.Fields {
			if f.Name == MethodMerge || f.Name == MethodApplyTo {
				cx.Errorf(f, "field %s conflicts with method %s.%s", f.Name, name, f.Name)
				ok = false
			}
		}

		if c.Config.From {
			for _, f := range c.Fields {
				if f.Name == MethodToPatch {
					cx.Errorf(f, "field %s conflicts with method %s.%s requested by from", f.Name, c.Name(), MethodToPatch)
					ok = false
				}
			}
			for _, m := range methods[c.Name()] {
				if m.Name == MethodToPatch {
					cx.Errorf(m, "method %s.%s conflicts with the one requested by from", c.Name(), MethodToPatch)
					ok = false
				}
			}
		}

		if ok {
			r.m.Put(name, c)
			generated[name] = codefmt.Sprintf(p, "patch type %s derived from %s at %b", name, c.Name(), c.Pos())
			generated[ctor] = codefmt.Sprintf(p, "constructor %s of patch type %s derived from %s at %b", ctor, name, c.Name(), c.Pos())
		}
	}
	return r
}

// methods collects method names by their receiver base type names.
func (p *Parser) methods() map[string][]*ast.Ident {
	methods := make(map[string][]*ast.Ident)
	for _, file := range p.GoFiles() {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 {
				continue
			}
			if recv, ok := recvBaseName(fn.Recv.List[0].Type); ok {
				methods[recv] = append(methods[recv], fn.Name)
			}
		}
	}
	return methods
}

// recvBaseName returns the name of the receiver base type.
//
//	*Foo[T] => Foo
func recvBaseName(expr ast.Expr) (string, bool) {
	switch expr := ast.Unparen(expr).(type) {
	case *ast.Ident:
		return expr.Name, true
	case *ast.StarExpr:
		return recvBaseName(expr.X)
	case *ast.IndexExpr:
		return recvBaseName(expr.X)
	case *ast.IndexListExpr:
		return recvBaseName(expr.X)
	}
	return "", false
}
