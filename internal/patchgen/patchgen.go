package patchgeninternal

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"maps"
	"slices"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/patchgen/internal/codefmt"
	"github.com/sublee/patchgen/internal/patchgen/expand"
	"github.com/sublee/patchgen/internal/patchgen/parse"
)

// Patchgen generates patch types for the target package. Call [Build] and then
// [Generate] to get the generated code. All potential errors are returned by
// [Build]. Once [Build] succeeds, [Generate] never fails.
type Patchgen struct {
	p   *parse.Parser
	ns  codefmt.NS
	buf *bytes.Buffer
	w   *codefmt.Writer

	patches []expand.Patch
}

// New creates a new [Patchgen] for the given package. If the package does not
// satisfy the requirements, an error is returned. The package must have its
// Syntax. Types and TypesInfo are used if available.
func New(pkg *packages.Package) (*Patchgen, error) {
	parser, err := parse.New(pkg)
	if err != nil {
		return nil, err
	}

	ns := codefmt.NewNSFromFiles(parser.GoFiles())

	var buf bytes.Buffer
	w := codefmt.NewWriter(&buf, pkg, ns)
	w.KnowImport(parse.RuntimePkgPath, parse.RuntimePkgName)

	return &Patchgen{
		p:   parser,
		ns:  ns,
		buf: &buf,
		w:   w,
	}, nil
}

// Build prepares code generation by parsing containers and checking conflicts.
// All errors in the package are returned at once. It must be called before
// [Generate].
func (pg *Patchgen) Build() error {
	cx := codefmt.NewContext(pg.p)
	defer cx.Close()

	containers := pg.p.Containers(cx)
	registry := pg.p.Validate(cx, containers)
	if err := cx.Check(); err != nil {
		return err
	}

	for _, c := range registry.Containers() {
		// Reserve generated names against import names.
		pg.ns.Reserve(c.PatchName())
		pg.ns.Reserve(c.ConstructorName())
		pg.patches = append(pg.patches, expand.New(c))
	}
	return nil
}

// Generate generates patch code for the package. It must be called after
// [Build] succeeds. It returns nil if there is nothing to generate.
func (pg *Patchgen) Generate() []byte {
	if len(pg.patches) == 0 {
		return nil
	}
	pg.writePatchCode()
	return pg.frameCode()
}

// writePatchCode writes declarations for patches in declaration order.
func (pg *Patchgen) writePatchCode() {
	for _, pt := range pg.patches {
		local := maps.Clone(pg.ns)
		w := pg.w.WithNS(local)
		pt.WriteDefineCode(w)
		w.Printf("\n")
	}
}

func (pg *Patchgen) frameCode() []byte {
	// Prepend header code
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "//go:build !%s\n\n", parse.BuildTag)
	fmt.Fprintf(&buf, "// Code generated by github.com/sublee/patchgen%s. DO NOT EDIT.\n\n", versionSuffix)
	fmt.Fprintf(&buf, "package %s\n\n", pg.p.Pkg().Name)

	imports := pg.w.Imports()
	if len(imports) != 0 {
		fmt.Fprintf(&buf, "import (\n")
		for _, alias := range slices.Sorted(maps.Keys(imports)) {
			imp := imports[alias]
			if imp.HasAlias {
				fmt.Fprintf(&buf, "%s %q\n", alias, imp.Path())
			} else {
				fmt.Fprintf(&buf, "%q\n", imp.Path())
			}
		}
		fmt.Fprintf(&buf, ")\n\n")
	}

	_, _ = io.Copy(&buf, pg.buf)
	code := buf.Bytes()

	// Apply gofmt if succeeded
	if fmtCode, err := format.Source(code); err == nil {
		code = fmtCode
	}
	return code
}
