// Package patchgenanalysis reports patchgen errors as diagnostics so that they
// show up in editors and linters before running the generator.
package patchgenanalysis

import (
	"errors"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	"github.com/sublee/patchgen/internal/codefmt"
	patchgeninternal "github.com/sublee/patchgen/internal/patchgen"
)

// Analyzer validates patchgen directives and tags in the package.
var Analyzer = &analysis.Analyzer{
	Name: "patchgen",
	Doc:  "linter for patchgen directives and tags",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	pkg := &packages.Package{
		Name:      pass.Pkg.Name(),
		PkgPath:   pass.Pkg.Path(),
		Types:     pass.Pkg,
		Fset:      pass.Fset,
		Syntax:    pass.Files,
		TypesInfo: pass.TypesInfo,
	}

	pg, err := patchgeninternal.New(pkg)
	if err != nil {
		return nil, err
	}

	if err := pg.Build(); err != nil {
		// Report every error at its position
		for _, err := range patchgeninternal.FlattenErrors(err) {
			var codeErr *codefmt.CodeError
			if !errors.As(err, &codeErr) {
				continue
			}
			pass.Report(analysis.Diagnostic{
				Pos:     codeErr.Pos(),
				End:     codeErr.End(),
				Message: codeErr.Unwrap().Error(),
			})
		}
	}

	return nil, nil
}
