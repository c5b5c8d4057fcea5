package parse

import (
	"go/ast"
	"go/token"
	"reflect"
	"strconv"
	"strings"

	"github.com/sublee/patchgen/internal/codefmt"
)

const (
	directivePrefix = "//patchgen:"

	// DeriveDirective marks a type declaration to derive a patch type. Its
	// arguments are a container tag group.
	DeriveDirective = "derive"

	// PatchDirective carries a tag group for the container or the field which
	// it documents.
	PatchDirective = "patch"

	// StructTagKey is the struct tag key which carries a field tag group.
	StructTagKey = "patch"
)

// group is a comma-separated tag group with its location in the source.
type group struct {
	src string

	// base is the position of src[0]. It is invalid if offsets in src cannot
	// be mapped to the source, for example in an interpreted string literal.
	base token.Pos

	// pos is where errors are reported when base is invalid.
	pos token.Pos
}

// at returns the position of the byte offset in the group.
func (g group) at(off int) codefmt.Poser {
	if g.base.IsValid() {
		return codefmt.Pos(g.base + token.Pos(off))
	}
	return codefmt.Pos(g.pos)
}

type directive struct {
	name    string
	namePos token.Pos
	args    group
}

func (d directive) Pos() token.Pos { return d.namePos }

// directives extracts patchgen directives from a comment group in order:
//
//	//patchgen:derive name=UserUpdate
//	          ^^^^^^ ^^^^^^^^^^^^^^^
//	          name   args
func directives(cg *ast.CommentGroup) []directive {
	if cg == nil {
		return nil
	}

	var ds []directive
	for _, c := range cg.List {
		rest, ok := strings.CutPrefix(c.Text, directivePrefix)
		if !ok {
			continue
		}

		name, args := rest, ""
		if i := strings.IndexAny(rest, " \t"); i >= 0 {
			name, args = rest[:i], rest[i:]
		}

		namePos := c.Slash + token.Pos(len(directivePrefix))
		argsPos := namePos + token.Pos(len(name))
		ds = append(ds, directive{
			name:    name,
			namePos: namePos,
			args:    group{src: args, base: argsPos, pos: argsPos},
		})
	}
	return ds
}

// structTagGroup returns the group in the "patch" key of a field's struct tag.
// "patch" with an empty value is an empty group.
func structTagGroup(tag *ast.BasicLit) (group, bool) {
	if tag == nil {
		return group{}, false
	}

	s, err := strconv.Unquote(tag.Value)
	if err != nil {
		return group{}, false
	}

	src, ok := reflect.StructTag(s).Lookup(StructTagKey)
	if !ok {
		return group{}, false
	}

	g := group{src: src, pos: tag.Pos()}
	if strings.HasPrefix(tag.Value, "`") && !strings.ContainsAny(src, "\\\"") {
		// The raw literal has the value as is. Locate it to point at items.
		needle := StructTagKey + `:"` + src + `"`
		for off := 0; off < len(s); {
			i := strings.Index(s[off:], needle)
			if i < 0 {
				break
			}
			i += off
			if i == 0 || s[i-1] == ' ' {
				g.base = tag.ValuePos + token.Pos(1+i+len(StructTagKey)+2)
				break
			}
			off = i + 1
		}
	}
	return g, true
}
