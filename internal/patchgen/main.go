package patchgeninternal

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/patchgen/internal/patchgen/parse"
)

var Version string

// Main is the main entry point for Patchgen. It is used by the command-line
// tool directly.
//
// ctx is the context for loading packages. If the loading is too slow, ctx can
// cancel the operation. wd is the path of the working directory. env is the
// environment variables to use when running the tool. tags is the build tags to
// use when loading packages. tests indicates whether to include test files.
// outFile is the name of the output file to generate in each package. And
// patterns are the package patterns to process.
//
// It returns a map of output file paths to their contents. If any error occurs,
// it returns a non-nil error which joins every error in the order found.
func Main(ctx context.Context, wd string, env []string, tags string, tests bool, outFile string, patterns []string) (map[string][]byte, error) {
	pkgs, err := load(ctx, wd, env, tags, tests, patterns)
	if err != nil {
		return nil, err
	}

	outs := make(map[string][]byte)
	var errs error

	for _, pkg := range pkgs {
		pg, err := New(pkg)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		if err := pg.Build(); err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		code := pg.Generate()
		if len(code) == 0 {
			continue
		}

		outDir := filepath.Dir(pkg.GoFiles[0])
		if rel, err := filepath.Rel(wd, outDir); err == nil {
			outDir = rel
		}
		out := filepath.Join(outDir, outFile)
		outs[out] = code
	}
	if errs != nil {
		// errs already contains comprehensive error messages. So we don't need
		// to attach another error message.
		return nil, errors.Join(FlattenErrors(errs)...)
	}

	return outs, nil
}

// load loads packages. Type errors are tolerated because generated
// declarations are missing until the first generation, but any other error
// fails the loading.
func load(ctx context.Context, wd string, env []string, tags string, tests bool, patterns []string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode:       packages.NeedFiles | packages.NeedImports | packages.NeedName | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Context:    ctx,
		Dir:        wd,
		Env:        env,
		BuildFlags: []string{"-tags=" + parse.BuildTag},
		Tests:      tests,
	}
	if tags != "" {
		cfg.BuildFlags[0] += "," + tags
	}

	// Load the packages based on the provided patterns.
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found: %v", patterns)
	}

	// Check for errors in the loaded packages.
	var errs error
	for _, pkg := range pkgs {
		for _, err := range pkg.Errors {
			if err.Kind == packages.TypeError {
				continue
			}

			if err.Pos == "" {
				errs = errors.Join(errs, errors.New(err.Msg))
				continue
			}

			path, rowcol, _ := strings.Cut(err.Pos, ":")
			if rel, relErr := filepath.Rel(wd, path); relErr == nil {
				err.Pos = rel + ":" + rowcol
			}
			errs = errors.Join(errs, err)
		}
	}
	if errs != nil {
		return nil, errs
	}

	return pkgs, nil
}

// FlattenErrors unwraps errors joined by [errors.Join] recursively. The order
// of errors is kept.
func FlattenErrors(err error) []error {
	if err == nil {
		return nil
	}

	u, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}

	var list []error
	for _, err := range u.Unwrap() {
		// errors.Join collapses errors with a single error having Unwrap()
		// []error method. The underlying errors could be retrieved using the
		// Unwrap() method.
		list = append(list, FlattenErrors(err)...)
	}
	return slices.Clip(list)
}
