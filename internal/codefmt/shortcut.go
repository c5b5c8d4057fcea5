package codefmt

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/packages"
)

// FormatExpr is a shorthand for [Formatter.Expr].
func FormatExpr(pkger Pkger, expr ast.Expr) string {
	return newByPkger(pkger).Expr(expr)
}

// Sprintf is a shorthand for [Formatter.Sprintf].
func Sprintf(pkger Pkger, format string, args ...any) string {
	return newByPkger(pkger).Sprintf(format, args...)
}

func Errorf(pkger Pkger, poser Poser, format string, args ...any) error {
	return newByPkger(pkger).Errorf(poser, format, args...)
}

type pkger struct{ pkg *packages.Package }

func (p pkger) Pkg() *packages.Package { return p.pkg }
func Pkg(pkg *packages.Package) Pkger  { return pkger{pkg} }

type poser struct{ pos token.Pos }

func (p poser) Pos() token.Pos { return p.pos }
func Pos(pos token.Pos) Poser  { return poser{pos} }
