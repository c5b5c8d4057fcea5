package parse

import (
	"fmt"
	"go/ast"
	"go/build/constraint"
	"go/token"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/patchgen/internal/codefmt"
)

const (
	// RuntimePkgPath is the import path of the runtime package of generated
	// code.
	RuntimePkgPath = "github.com/sublee/patchgen"

	// RuntimePkgName is the name of the runtime package.
	RuntimePkgName = "patchgen"

	// BuildTag is set while loading packages for generation. Generated files
	// are excluded by it.
	BuildTag = "patchgen"
)

// Parser parses an AST of the underlying package to collect patchgen
// containers.
type Parser struct{ pkg *packages.Package }

func (p *Parser) Pkg() *packages.Package { return p.pkg }

// New creates a new [Parser]. Type information is optional. Without it, array
// lengths must be integer literals and import names are guessed from their
// paths.
func New(pkg *packages.Package) (*Parser, error) {
	if pkg.Name == "" {
		return nil, fmt.Errorf("need pkg name")
	}
	if pkg.PkgPath == "" {
		return nil, fmt.Errorf("need pkg path")
	}
	if pkg.Fset == nil {
		return nil, fmt.Errorf("need pkg fset")
	}
	if pkg.Syntax == nil {
		return nil, fmt.Errorf("need pkg syntax")
	}
	return &Parser{pkg: pkg}, nil
}

// GoFiles returns the Go files of the package except files generated by
// patchgen. Generated files have a "//go:build !patchgen" constraint. They
// might be loaded when the build tag is not set, for example by linters.
func (p *Parser) GoFiles() []*ast.File {
	var files []*ast.File
	for _, file := range p.Pkg().Syntax {
		if !excludedByBuildTag(file) {
			files = append(files, file)
		}
	}
	return files
}

// excludedByBuildTag checks if the file has a "//go:build" constraint which
// excludes the file when the patchgen build tag is set.
func excludedByBuildTag(file *ast.File) bool {
	for _, group := range file.Comments {
		if group.Pos() >= file.Package {
			break
		}
		for _, comment := range group.List {
			if !constraint.IsGoBuild(comment.Text) {
				continue
			}
			expr, err := constraint.Parse(comment.Text)
			if err != nil {
				continue
			}
			if !expr.Eval(func(tag string) bool { return tag == BuildTag }) {
				return true
			}
		}
	}
	return false
}

// fileImports returns the local package names which the file can refer to.
// The runtime package is always available by its name.
func (p *Parser) fileImports(file *ast.File) map[string]bool {
	names := map[string]bool{RuntimePkgName: true}
	if file == nil {
		return names
	}
	for _, spec := range file.Imports {
		local, _, _ := codefmt.LocalImportName(p.pkg, spec)
		if local != "_" && local != "." {
			names[local] = true
		}
	}
	return names
}

// Containers finds the type declarations marked by the derive directive and
// parses them. Errors are recorded in cx. Containers with unsupported shapes
// are skipped.
//
// Patchgen directives on types without the derive directive are reported
// because they would be ignored silently otherwise.
func (p *Parser) Containers(cx *codefmt.Context) []*Container {
	var containers []*Container
	for _, file := range p.GoFiles() {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				spec := spec.(*ast.TypeSpec)

				ds := typeDirectives(gen, spec)
				if !hasDerive(ds) {
					for _, d := range ds {
						if d.name == PatchDirective {
							cx.Errorf(d, "//patchgen:%s without //patchgen:%s", d.name, DeriveDirective)
						} else {
							cx.Errorf(d, "unknown patchgen directive `%s`", d.name)
						}
					}
					continue
				}

				if c := p.ParseContainer(cx, file, spec, ds); c != nil {
					containers = append(containers, c)
				}
			}
		}
	}
	return containers
}

// typeDirectives returns the directives in the doc comment of a type. The doc
// comment of an ungrouped declaration belongs to the GenDecl.
func typeDirectives(gen *ast.GenDecl, spec *ast.TypeSpec) []directive {
	ds := directives(spec.Doc)
	if !gen.Lparen.IsValid() {
		ds = append(directives(gen.Doc), ds...)
	}
	return ds
}

func hasDerive(ds []directive) bool {
	for _, d := range ds {
		if d.name == DeriveDirective {
			return true
		}
	}
	return false
}
