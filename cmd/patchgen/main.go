// Command patchgen generates patch types for the packages matching the given
// patterns. It writes patchgen_gen.go into each package which declares at
// least one type with the //patchgen:derive directive.
//
//	go run github.com/sublee/patchgen/cmd/patchgen ./...
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/sys/unix"

	patchgeninternal "github.com/sublee/patchgen/internal/patchgen"
)

var Version = "dev"

var (
	bFlag = flag.String("b", "", "comma-separated build tags")
	tFlag = flag.Bool("t", false, "include tests")
	oFlag = flag.String("o", "patchgen_gen.go", "output file name")
	cFlag = flag.String("c", "auto", "colorize (auto|always|never)")
)

func init() {
	patchgeninternal.Version = Version
}

func main() {
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch *cFlag {
	case "auto":
		color.NoColor = !isatty(os.Stderr)
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		fmt.Fprintln(os.Stderr, "invalid -c value:", *cFlag)
		os.Exit(1)
	}

	patterns := flag.Args()
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	outs, err := patchgeninternal.Main(context.Background(), wd, os.Environ(), *bFlag, *tFlag, *oFlag, patterns)
	if err != nil {
		for _, err := range patchgeninternal.FlattenErrors(err) {
			fmt.Fprintln(os.Stderr, colorize(err.Error()))
		}
		os.Exit(1)
	}

	for out, code := range outs {
		if err := os.WriteFile(out, code, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if relOut, err := filepath.Rel(wd, out); err == nil {
			out = relOut
		}
		fmt.Println("Generated:", out)
	}
}

// isatty reports whether the file is a terminal. If it is true, we can use ANSI
// color codes.
func isatty(f *os.File) bool {
	_, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	return err == nil
}

var (
	posColor = color.New(color.Faint)
	errColor = color.New(color.FgRed)
)

// colorize dims the position of an error message and highlights the rest:
//
//	main.go:3:19: unknown patch tag `nmae`, did you mean `name`?
//	^^^^^^^^^^^^  ^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^
//	dim           red
func colorize(message string) string {
	if pos, msg, ok := strings.Cut(message, ": "); ok && strings.Count(pos, ":") >= 2 {
		return posColor.Sprint(pos) + ": " + errColor.Sprint(msg)
	}
	return errColor.Sprint(message)
}
