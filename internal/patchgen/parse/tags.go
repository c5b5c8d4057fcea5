package parse

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/fatih/structtag"

	"github.com/sublee/patchgen/internal/codefmt"
	"github.com/sublee/patchgen/internal/lcs"
)

// Tag keys.
const (
	keyName = "name"
	keyAttr = "attr"
	keyFrom = "from"
	keyWith = "with"
)

var (
	containerKeys = []string{keyName, keyAttr, keyFrom}
	fieldKeys     = []string{keyWith, keyAttr}
)

// ContainerConfig is the resolved configuration of a container.
type ContainerConfig struct {
	// Name is the name of the patch type. Empty means the default name.
	Name    string
	NamePos token.Pos

	// Attrs are extra comment lines on the patch type.
	Attrs []string

	// From requests a ToPatch method on the source type.
	From bool
}

// FieldConfig is the resolved configuration of a field.
type FieldConfig struct {
	// With overrides the type of the field on the patch type. Nil means the
	// field type wrapped in an Option.
	With ast.Expr

	// Tags is the struct tag of the field on the patch type. It may be nil.
	Tags *structtag.Tags
}

// Tag returns the struct tag of the field on the patch type, without quotes.
func (c FieldConfig) Tag() string {
	if c.Tags == nil || c.Tags.Len() == 0 {
		return ""
	}
	return c.Tags.String()
}

// attr accumulates a single-valued tag. Setting it twice is an error.
type attr[T any] struct {
	cx    *codefmt.Context
	key   string
	value T
	set   bool
}

func newAttr[T any](cx *codefmt.Context, key string) attr[T] {
	return attr[T]{cx: cx, key: key}
}

func (a *attr[T]) Set(poser codefmt.Poser, value T) {
	if a.set {
		a.cx.Errorf(poser, "duplicate patch tag `%s`", a.key)
		return
	}
	a.value, a.set = value, true
}

func (a *attr[T]) Get() (T, bool) { return a.value, a.set }

// boolAttr accumulates a presence tag. Repeating it is an error.
type boolAttr struct{ attr[struct{}] }

func newBoolAttr(cx *codefmt.Context, key string) boolAttr {
	return boolAttr{newAttr[struct{}](cx, key)}
}

func (b *boolAttr) SetTrue(poser codefmt.Poser) { b.Set(poser, struct{}{}) }

func (b *boolAttr) Get() bool { return b.set }

// vecAttr accumulates a multi-valued tag in order.
type vecAttr[T any] struct{ values []T }

func (v *vecAttr[T]) Insert(value T) { v.values = append(v.values, value) }

func (v *vecAttr[T]) Get() []T { return v.values }

// resolver resolves tag groups in a single scope.
type resolver struct {
	p    *Parser
	cx   *codefmt.Context
	keys []string
}

// each lexes the groups and calls fn for each item in order. A lexing error
// aborts only its own group.
func (r resolver) each(groups []group, fn func(g group, it item)) {
	for _, g := range groups {
		items, err := lexGroup(g.src)
		for _, it := range items {
			fn(g, it)
		}
		if err != nil {
			r.cx.Errorf(g.at(err.off), "malformed patch tag: %s", err.msg)
		}
	}
}

func (r resolver) unknown(g group, it item) {
	if known, ok := lcs.Closest(it.key, r.keys); ok {
		r.cx.Errorf(g.at(it.keyOff), "unknown patch tag `%s`, did you mean `%s`?", it.key, known)
		return
	}
	r.cx.Errorf(g.at(it.keyOff), "unknown patch tag `%s`", it.key)
}

func (r resolver) needValue(g group, it item) bool {
	if !it.hasValue {
		r.cx.Errorf(g.at(it.keyOff), "malformed patch tag `%s`: expected %s=...", it.key, it.key)
		return false
	}
	return true
}

func (r resolver) noValue(g group, it item) bool {
	if it.hasValue {
		r.cx.Errorf(g.at(it.assignOff), "malformed patch tag `%s`: unexpected value", it.key)
		return false
	}
	return true
}

// identValue parses an identifier value like name=UserUpdate.
func (r resolver) identValue(g group, it item) (string, bool) {
	if !r.needValue(g, it) {
		return "", false
	}
	if !token.IsIdentifier(it.value) {
		r.cx.Errorf(g.at(it.valueOff), "malformed patch tag `%s`: %s is not an identifier", it.key, it.value)
		return "", false
	}
	return it.value, true
}

// stringValue parses a Go string literal value like attr="//easyjson:json".
func (r resolver) stringValue(g group, it item) (string, bool) {
	if !r.needValue(g, it) {
		return "", false
	}
	if it.value[0] != '"' && it.value[0] != '`' {
		r.cx.Errorf(g.at(it.valueOff), "malformed patch tag `%s`: expected string literal, found %s", it.key, it.value)
		return "", false
	}
	s, err := strconv.Unquote(it.value)
	if err != nil {
		r.cx.Errorf(g.at(it.valueOff), "malformed patch tag `%s`: invalid string literal %s", it.key, it.value)
		return "", false
	}
	return s, true
}

// typeValue parses a type expression value like with=AddressPatch. Package
// qualifiers in the type must be imported by the file.
func (r resolver) typeValue(g group, it item, file *ast.File) (ast.Expr, bool) {
	if !r.needValue(g, it) {
		return nil, false
	}

	expr, err := parser.ParseExpr(it.value)
	if err != nil || !isTypeExpr(expr) {
		r.cx.Errorf(g.at(it.valueOff), "malformed patch tag `%s`: %s is not a type", it.key, it.value)
		return nil, false
	}

	ok := true
	imports := r.p.fileImports(file)
	ast.Inspect(expr, func(node ast.Node) bool {
		sel, isSel := node.(*ast.SelectorExpr)
		if !isSel {
			return true
		}
		id, isIdent := sel.X.(*ast.Ident)
		if !isIdent {
			return true
		}
		if !imports[id.Name] {
			// ParseExpr positions start at 1.
			r.cx.Errorf(g.at(it.valueOff+int(id.Pos())-1), "malformed patch tag `%s`: undefined package %s", it.key, id.Name)
			ok = false
		}
		return false
	})
	if !ok {
		return nil, false
	}
	return expr, true
}

// isTypeExpr reports whether expr is syntactically a type.
func isTypeExpr(expr ast.Expr) bool {
	switch expr := expr.(type) {
	case *ast.Ident, *ast.ArrayType, *ast.MapType, *ast.ChanType, *ast.FuncType, *ast.StructType, *ast.InterfaceType:
		return true
	case *ast.ParenExpr:
		return isTypeExpr(expr.X)
	case *ast.StarExpr:
		return isTypeExpr(expr.X)
	case *ast.SelectorExpr:
		_, ok := expr.X.(*ast.Ident)
		return ok
	case *ast.IndexExpr:
		return isTypeExpr(expr.X) && isTypeExpr(expr.Index)
	case *ast.IndexListExpr:
		if !isTypeExpr(expr.X) {
			return false
		}
		for _, index := range expr.Indices {
			if !isTypeExpr(index) {
				return false
			}
		}
		return true
	}
	return false
}

// resolveContainer resolves container tag groups:
//
//	//patchgen:derive name=UserUpdate, from
//	//patchgen:patch attr="//easyjson:json"
func (p *Parser) resolveContainer(cx *codefmt.Context, groups []group) ContainerConfig {
	r := resolver{p: p, cx: cx, keys: containerKeys}

	name := newAttr[string](cx, keyName)
	var namePos token.Pos
	var attrs vecAttr[string]
	from := newBoolAttr(cx, keyFrom)

	r.each(groups, func(g group, it item) {
		switch it.key {
		case keyName:
			if v, ok := r.identValue(g, it); ok {
				if _, set := name.Get(); !set {
					namePos = g.at(it.valueOff).Pos()
				}
				name.Set(g.at(it.keyOff), v)
			}
		case keyAttr:
			if v, ok := r.stringValue(g, it); ok {
				if strings.ContainsAny(v, "\r\n") {
					cx.Errorf(g.at(it.valueOff), "malformed patch tag `%s`: must be a single line", it.key)
					return
				}
				attrs.Insert(v)
			}
		case keyFrom:
			if r.noValue(g, it) {
				from.SetTrue(g.at(it.keyOff))
			}
		default:
			r.unknown(g, it)
		}
	})

	cfg := ContainerConfig{Attrs: attrs.Get(), From: from.Get()}
	if v, ok := name.Get(); ok {
		cfg.Name, cfg.NamePos = v, namePos
	}
	return cfg
}

// resolveField resolves field tag groups:
//
//	//patchgen:patch with=AddressPatch
//	//patchgen:patch attr=`json:"ship"`
func (p *Parser) resolveField(cx *codefmt.Context, file *ast.File, groups []group) FieldConfig {
	r := resolver{p: p, cx: cx, keys: fieldKeys}

	with := newAttr[ast.Expr](cx, keyWith)
	var tags *structtag.Tags

	r.each(groups, func(g group, it item) {
		switch it.key {
		case keyWith:
			if v, ok := r.typeValue(g, it, file); ok {
				with.Set(g.at(it.keyOff), v)
			}
		case keyAttr:
			v, ok := r.stringValue(g, it)
			if !ok {
				return
			}
			parsed, err := structtag.Parse(v)
			if err != nil {
				cx.Errorf(g.at(it.valueOff), "malformed patch tag `%s`: %s", it.key, err.Error())
				return
			}
			if parsed == nil {
				return
			}
			if tags == nil {
				tags = &structtag.Tags{}
			}
			for _, tag := range parsed.Tags() {
				if _, err := tags.Get(tag.Key); err == nil {
					cx.Errorf(g.at(it.valueOff), "malformed patch tag `%s`: duplicate struct tag key %s", it.key, tag.Key)
					continue
				}
				_ = tags.Set(tag)
			}
		default:
			r.unknown(g, it)
		}
	})

	cfg := FieldConfig{Tags: tags}
	cfg.With, _ = with.Get()
	return cfg
}
