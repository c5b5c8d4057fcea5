// golangcilintpatchgen package provides a plugin for golangci-lint to integrate
// the Patchgen analyzer. To build a custom golangci-lint binary with this
// plugin, use the following command at this package's directory:
//
//	golangci-lint custom
//
// Now you will have a golangci-lint-patchgen binary that you can use to lint
// your Go code with the Patchgen analyzer. Set the "patchgen" build tag in the
// run configuration, so that generated files do not hide conflicts.
package golangcilintpatchgen

import (
	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"github.com/sublee/patchgen/pkg/patchgenanalysis"
)

func init() {
	register.Plugin("patchgen", New)
}

func New(settings any) (register.LinterPlugin, error) {
	return PatchgenLinter{}, nil
}

type PatchgenLinter struct{}

func (PatchgenLinter) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{patchgenanalysis.Analyzer}, nil
}

// GetLoadMode needs type information to evaluate array lengths declared by
// constants and to resolve imported package names.
func (PatchgenLinter) GetLoadMode() string {
	return register.LoadModeTypesInfo
}
