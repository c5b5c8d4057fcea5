package parse

import (
	"go/ast"
	"go/constant"
	"go/token"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/sublee/patchgen/internal/codefmt"
)

// Style is the shape of a container.
type Style int

const (
	// Named is a struct type with named fields.
	Named Style = iota
	// Positional is an array type. Every element shares the element type.
	Positional
	// Empty is a struct type without any fields.
	Empty
)

func (s Style) String() string {
	switch s {
	case Named:
		return "named"
	case Positional:
		return "positional"
	case Empty:
		return "empty"
	}
	return "Style(" + strconv.Itoa(int(s)) + ")"
}

// Container is a type declaration to derive a patch type from.
type Container struct {
	File   *ast.File
	Spec   *ast.TypeSpec
	Style  Style
	Fields []Field
	Config ContainerConfig

	// Elem and Len are the element type and the length of a positional
	// container. A positional container has no Fields.
	Elem ast.Expr
	Len  int64
}

// Field is a field of a named container.
type Field struct {
	Name string
	Type ast.Expr

	// Poser points at the field name, or the field type if it is embedded.
	codefmt.Poser

	Config FieldConfig
}

func (c *Container) Pos() token.Pos { return c.Spec.Name.Pos() }
func (c *Container) End() token.Pos { return c.Spec.Name.End() }

// Name returns the name of the source type.
func (c *Container) Name() string { return c.Spec.Name.Name }

// TypeParams returns the type parameters of the source type. It may be nil.
func (c *Container) TypeParams() *ast.FieldList { return c.Spec.TypeParams }

// PatchName returns the name of the patch type. It is "<Name>Patch" unless it
// is configured.
func (c *Container) PatchName() string {
	if c.Config.Name != "" {
		return c.Config.Name
	}
	return c.Name() + "Patch"
}

// PatchPoser points at the configured name of the patch type, or the source
// type name.
func (c *Container) PatchPoser() codefmt.Poser {
	if c.Config.NamePos.IsValid() {
		return codefmt.Pos(c.Config.NamePos)
	}
	return c
}

// ConstructorName returns the name of the function which creates a default
// patch. It is unexported if the patch type is unexported.
//
//	UserPatch => NewUserPatch
//	userPatch => newUserPatch
func (c *Container) ConstructorName() string {
	name := c.PatchName()
	if ast.IsExported(name) {
		return "New" + name
	}
	r, size := utf8.DecodeRuneInString(name)
	return "new" + string(unicode.ToUpper(r)) + name[size:]
}

// ParseContainer parses a type declaration marked by the derive directive. ds
// are the directives in its doc comment. It returns nil if the type is not
// supported. Errors are recorded in cx.
//
// Container tags are resolved before checking the shape, so that tag errors and
// shape errors are reported together.
func (p *Parser) ParseContainer(cx *codefmt.Context, file *ast.File, spec *ast.TypeSpec, ds []directive) *Container {
	var groups []group
	for _, d := range ds {
		switch d.name {
		case DeriveDirective, PatchDirective:
			groups = append(groups, d.args)
		default:
			cx.Errorf(d, "unknown patchgen directive `%s`", d.name)
		}
	}
	cfg := p.resolveContainer(cx, groups)

	c := &Container{File: file, Spec: spec, Config: cfg}

	if spec.Assign.IsValid() {
		cx.Errorf(spec.Name, "patchgen does not support derive for type aliases")
		return nil
	}

	switch t := spec.Type.(type) {
	case *ast.StructType:
		c.Style, c.Fields = p.parseStruct(cx, file, t)
	case *ast.ArrayType:
		if t.Len == nil {
			cx.Errorf(spec.Name, "patchgen does not support derive for slices")
			return nil
		}
		n, ok := p.arrayLen(t.Len)
		if !ok {
			cx.Errorf(t.Len, "patchgen cannot evaluate array length %c", t.Len)
			return nil
		}
		c.Style, c.Elem, c.Len = Positional, t.Elt, n
	default:
		cx.Errorf(spec.Name, "patchgen does not support derive for %s", describeType(spec.Type))
		return nil
	}
	return c
}

// parseStruct parses the fields of a struct type. Blank fields are skipped.
func (p *Parser) parseStruct(cx *codefmt.Context, file *ast.File, t *ast.StructType) (Style, []Field) {
	if t.Fields == nil || len(t.Fields.List) == 0 {
		return Empty, nil
	}

	var fields []Field
	for _, f := range t.Fields.List {
		cfg := p.resolveField(cx, file, fieldGroups(cx, f))

		if len(f.Names) == 0 {
			// Embedded
			name, ok := embeddedName(f.Type)
			if !ok {
				cx.Errorf(f.Type, "patchgen cannot name embedded field %c", f.Type)
				continue
			}
			fields = append(fields, Field{Name: name, Type: f.Type, Poser: f.Type, Config: cfg})
			continue
		}

		for _, name := range f.Names {
			if name.Name == "_" {
				continue
			}
			fields = append(fields, Field{Name: name.Name, Type: f.Type, Poser: name, Config: cfg})
		}
	}
	return Named, fields
}

// fieldGroups collects the tag groups of a field in source order: directives in
// the doc comment, the struct tag, and directives in the line comment.
func fieldGroups(cx *codefmt.Context, f *ast.Field) []group {
	var groups []group
	add := func(cg *ast.CommentGroup) {
		for _, d := range directives(cg) {
			if d.name != PatchDirective {
				cx.Errorf(d, "unknown patchgen directive `%s` for fields", d.name)
				continue
			}
			groups = append(groups, d.args)
		}
	}

	add(f.Doc)
	if g, ok := structTagGroup(f.Tag); ok {
		groups = append(groups, g)
	}
	add(f.Comment)
	return groups
}

// arrayLen evaluates the length of an array type. It needs type information
// unless the length is an integer literal.
func (p *Parser) arrayLen(expr ast.Expr) (int64, bool) {
	if lit, ok := ast.Unparen(expr).(*ast.BasicLit); ok && lit.Kind == token.INT {
		n, err := strconv.ParseInt(lit.Value, 0, 64)
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	}

	if p.pkg.TypesInfo == nil {
		return 0, false
	}
	tv, ok := p.pkg.TypesInfo.Types[expr]
	if !ok || tv.Value == nil {
		return 0, false
	}
	n, exact := constant.Int64Val(constant.ToInt(tv.Value))
	if !exact || n < 0 {
		return 0, false
	}
	return n, true
}

// embeddedName returns the implicit name of an embedded field.
//
//	Foo        => Foo
//	*pkg.Foo   => Foo
//	Foo[int]   => Foo
func embeddedName(expr ast.Expr) (string, bool) {
	switch expr := ast.Unparen(expr).(type) {
	case *ast.Ident:
		return expr.Name, true
	case *ast.StarExpr:
		return embeddedName(expr.X)
	case *ast.SelectorExpr:
		return expr.Sel.Name, true
	case *ast.IndexExpr:
		return embeddedName(expr.X)
	case *ast.IndexListExpr:
		return embeddedName(expr.X)
	}
	return "", false
}

func describeType(expr ast.Expr) string {
	switch ast.Unparen(expr).(type) {
	case *ast.InterfaceType:
		return "interfaces"
	case *ast.MapType:
		return "maps"
	case *ast.FuncType:
		return "functions"
	case *ast.ChanType:
		return "channels"
	case *ast.StarExpr:
		return "pointers"
	}
	return "named types"
}
