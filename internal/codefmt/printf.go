package codefmt

import (
	"fmt"
	"go/ast"
	"go/token"
	"io"

	"golang.org/x/tools/go/packages"
)

type (
	Pkger  interface{ Pkg() *packages.Package }
	Poser  interface{ Pos() token.Pos }
	Ender  interface{ End() token.Pos }
	Exprer interface{ Expr() ast.Expr }
)

func (f Formatter) wrapPrintfArgs(args []any) []any {
	for i, arg := range args {
		switch arg := arg.(type) {
		case token.Pos, token.Position:
			args[i] = formatArg{arg, f}
		case ast.Expr, Exprer:
			args[i] = formatArg{arg, f}
		case Poser:
			args[i] = formatArg{arg, f}
		}
	}
	return args
}

type formatArg struct {
	x   any
	fmt Formatter
}

func (f formatArg) Expr() ast.Expr {
	switch x := f.x.(type) {
	case ast.Expr:
		return x
	case Exprer:
		return x.Expr()
	}
	return nil
}

func (f formatArg) Position() *token.Position {
	if f.fmt.Fset == nil {
		if x, ok := f.x.(token.Position); ok {
			return &x
		}
		return nil
	}

	switch x := f.x.(type) {
	case token.Position:
		return &x
	case token.Pos:
		p := f.fmt.Fset.Position(x)
		return &p
	case Poser:
		p := f.fmt.Fset.Position(x.Pos())
		return &p
	}
	return nil
}

// Format implements fmt.Formatter interface.
//
// Supported verbs:
//
//	%c: ast.Expr - code form
//	%b: token.Position - file:line:column form
//
// For other verbs, it falls back to the default formatting of fmt package.
func (f formatArg) Format(s fmt.State, verb rune) {
	switch verb {
	case 'c':
		expr := f.Expr()
		if expr == nil {
			fmt.Fprintf(s, "[%%c cannot format %T]", f.x)
			return
		}
		_, _ = s.Write([]byte(f.fmt.Expr(expr)))

	case 'b':
		pos := f.Position()
		if pos == nil {
			fmt.Fprintf(s, "[%%b cannot format %T]", f.x)
			return
		}
		_, _ = s.Write([]byte(FormatPosition(*pos)))

	default:
		fmt.Fprintf(s, fmt.FormatString(s, verb), f.x)
	}
}

func (f Formatter) Sprintf(format string, args ...any) string {
	args = f.wrapPrintfArgs(args)
	return fmt.Sprintf(format, args...)
}

func (f Formatter) Fprintf(w io.Writer, format string, args ...any) (int, error) {
	args = f.wrapPrintfArgs(args)
	return fmt.Fprintf(w, format, args...)
}
