package codefmt

import (
	"go/ast"
	"go/parser"
	"go/types"
	"io"
	"path"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"
)

// Writer is a writer for generated code.
type Writer struct {
	w       io.Writer
	pkg     *packages.Package
	fmt     Formatter
	imports map[string]Import
	scope   NS
	ns      NS
	known   map[string]fileImport
}

// NewWriter creates a new [Writer]. scope holds package-level names which
// imports must not shadow. It does not initialize the local namespace. To
// specify a namespace, use [Writer.WithNS].
func NewWriter(w io.Writer, pkg *packages.Package, scope NS) *Writer {
	if scope == nil {
		scope = make(NS)
	}
	return &Writer{
		w:       w,
		pkg:     pkg,
		fmt:     New(pkg),
		imports: make(map[string]Import),
		scope:   scope,
		ns:      nil,
	}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

// Printf writes a formatted string to the underlying writer using
// [Formatter.Fprintf].
func (w *Writer) Printf(format string, args ...any) (int, error) {
	return w.fmt.Fprintf(w.w, format, args...)
}

// Name returns a unique name in the namespace of the writer.
func (w *Writer) Name(name string) string {
	return w.ns.Name(name)
}

// Reserve marks a name as used in the namespace of the writer.
func (w *Writer) Reserve(name string) bool {
	return w.ns.Reserve(name)
}

// WithNS copies the writer and sets a new namespace.
func (w *Writer) WithNS(ns NS) *Writer {
	return &Writer{
		w:       w.w,
		pkg:     w.pkg,
		fmt:     w.fmt,
		imports: w.imports,
		scope:   w.scope,
		ns:      ns,
		known:   w.known,
	}
}

type Import struct {
	// The package to import.
	*types.Package

	// HasAlias indicates that the import has an alias.
	HasAlias bool
}

// Imports returns the collected imports. Imports are collected by [Import] and
// [Qualify].
func (w *Writer) Imports() map[string]Import {
	return w.imports
}

// Import adds an import for the package with the given path and name. It
// returns the name of the imported package. The name might be different if it
// has tried to resolve name conflicts.
//
//	// optName can be used to refer to the patchgen package without any name conflict.
//	optName := w.Import("github.com/sublee/patchgen", "patchgen")
//	w.Printf("%s.None[int]()", optName)
//
// When calling it, the package to import is recorded. Call [Imports] to
// retrieve them.
func (w *Writer) Import(path, name string) string {
	return w.importAs(path, name, name != "")
}

// importAs imports the package. If exact is true, name is the real name of the
// package. Otherwise, name is just a preference and the import always gets an
// alias.
func (w *Writer) importAs(path, name string, exact bool) string {
	var pkgName string
	if exact {
		pkgName = name
	}
	if w.pkg.Types != nil {
		for _, imp := range w.pkg.Types.Imports() {
			if imp.Path() == path {
				pkgName = imp.Name()
				break
			}
		}
	}

	if name == "" {
		name = pkgName
	}
	if name == "" {
		name = guessPkgName(path)
	}
	pkg := types.NewPackage(path, name)

	for name := range DisambiguateName(name) {
		prev, ok := w.imports[name]
		if ok && prev.Path() == path {
			// Already imported with the same name.
			return name
		}
		if !ok && !w.scope.Has(name) {
			w.imports[name] = Import{Package: pkg, HasAlias: name != pkgName}
			pkg.SetName(name)
			return name
		}
	}

	panic("unreachable")
}

type fileImport struct {
	path  string
	name  string
	exact bool
}

// KnowImport makes the package available to [Writer.Qualify] under the given
// name even in files which do not import it.
func (w *Writer) KnowImport(path, name string) {
	if w.known == nil {
		w.known = make(map[string]fileImport)
	}
	w.known[name] = fileImport{path: path, name: name, exact: true}
}

// fileImports maps local package names in the file to their import paths.
func (w *Writer) fileImports(file *ast.File) map[string]fileImport {
	imports := make(map[string]fileImport)
	for name, imp := range w.known {
		imports[name] = imp
	}
	if file == nil {
		return imports
	}

	for _, spec := range file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		local, name, exact := LocalImportName(w.pkg, spec)
		if local == "_" || local == "." {
			continue
		}
		imports[local] = fileImport{path: importPath, name: name, exact: exact}
	}
	return imports
}

// LocalImportName returns the name which refers to the import in its file and
// the name of the imported package. exact is false if the package name was
// guessed from the import path because type information is not available.
func LocalImportName(pkg *packages.Package, spec *ast.ImportSpec) (local, name string, exact bool) {
	importPath, _ := strconv.Unquote(spec.Path.Value)

	if spec.Name != nil {
		local = spec.Name.Name
	}
	if pkg != nil && pkg.TypesInfo != nil {
		if pkgName := pkg.TypesInfo.PkgNameOf(spec); pkgName != nil {
			name = pkgName.Imported().Name()
			exact = true
			if local == "" {
				local = pkgName.Name()
			}
		}
	}
	if local == "" {
		local = guessPkgName(importPath)
	}
	if name == "" {
		name = local
	}
	return local, name, exact
}

// Qualify returns a copy of expr written in the given file. Package qualifiers
// in the copy are rewritten to the names imported by the writer, so the copy
// can be printed into generated code without any name conflict. expr itself is
// not modified.
func (w *Writer) Qualify(file *ast.File, expr ast.Expr) ast.Expr {
	copied, err := parser.ParseExpr(w.fmt.Expr(expr))
	if err != nil {
		panic(err) // should never happen because a printed expression must be parsable
	}

	imports := w.fileImports(file)
	return astutil.Apply(copied, func(c *astutil.Cursor) bool {
		sel, ok := c.Node().(*ast.SelectorExpr)
		if !ok {
			return true
		}

		id, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}

		imp, ok := imports[id.Name]
		if !ok {
			// The qualifier is not a package name.
			return true
		}

		newPkgName := w.importAs(imp.path, imp.name, imp.exact)
		c.Replace(&ast.SelectorExpr{
			X:   ast.NewIdent(newPkgName),
			Sel: ast.NewIdent(sel.Sel.Name),
		})
		return false
	}, nil).(ast.Expr)
}

// Expr qualifies expr by [Writer.Qualify] and returns its code.
func (w *Writer) Expr(file *ast.File, expr ast.Expr) string {
	return w.fmt.Expr(w.Qualify(file, expr))
}

// guessPkgName guesses the package name from its import path. The guess might
// be wrong, so guessed names are always imported with an alias.
//
//	"github.com/fatih/structtag" => "structtag"
//	"github.com/labstack/echo/v4" => "echo"
//	"gopkg.in/yaml.v3" => "yaml"
//	"github.com/mattn/go-isatty" => "isatty"
func guessPkgName(importPath string) string {
	base := path.Base(importPath)
	if len(base) >= 2 && base[0] == 'v' && isDigits(base[1:]) {
		if dir := path.Dir(importPath); dir != "." {
			base = path.Base(dir)
		}
	}
	if i := strings.Index(base, ".v"); i >= 0 && isDigits(base[i+2:]) {
		base = base[:i]
	}
	base = strings.TrimPrefix(base, "go-")
	base = strings.TrimSuffix(base, "-go")
	base = strings.TrimSuffix(base, ".go")
	return NormalizeName(base)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
