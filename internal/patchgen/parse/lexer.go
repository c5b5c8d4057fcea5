package parse

import (
	"fmt"
	"go/scanner"
	"go/token"
)

// item is a "key" or "key=value" item in a tag group. Offsets are byte offsets
// in the group source.
type item struct {
	key       string
	keyOff    int
	assignOff int
	value     string
	valueOff  int
	hasValue  bool
}

// lexError is an error in a tag group at the byte offset.
type lexError struct {
	off int
	msg string
}

func (e *lexError) Error() string { return e.msg }

// lexGroup splits a tag group into comma-separated items:
//
//	name=UserUpdate, from, attr="//easyjson:json"
//
// Values span every token up to the next comma outside of any brackets, so
// type expressions like "map[string]T" or "Pair[A, B]" are kept whole. A
// trailing comma is allowed. An empty group has no items.
//
// On error, the items lexed before the error are returned together with the
// error.
func lexGroup(src string) ([]item, *lexError) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var (
		s      scanner.Scanner
		scnErr *lexError
	)
	s.Init(file, []byte(src), func(pos token.Position, msg string) {
		if scnErr == nil {
			scnErr = &lexError{off: pos.Offset, msg: msg}
		}
	}, 0)

	type tok struct {
		off int
		tok token.Token
		lit string
	}
	scan := func() (tok, *lexError) {
		pos, t, lit := s.Scan()
		if scnErr != nil {
			return tok{}, scnErr
		}
		if t == token.SEMICOLON && lit == "\n" {
			// Automatically inserted at the end of the group.
			t = token.EOF
		}
		return tok{file.Offset(pos), t, lit}, nil
	}

	var items []item
	for {
		t, err := scan()
		if err != nil {
			return items, err
		}
		if t.tok == token.EOF {
			return items, nil
		}

		if t.tok != token.IDENT && !t.tok.IsKeyword() {
			return items, &lexError{t.off, fmt.Sprintf("expected tag key, found %s", describe(t.tok, t.lit))}
		}
		it := item{key: t.lit, keyOff: t.off}

		t, err = scan()
		if err != nil {
			return items, err
		}
		switch t.tok {
		case token.EOF:
			return append(items, it), nil
		case token.COMMA:
			items = append(items, it)
			continue
		case token.ASSIGN:
			it.assignOff = t.off
		default:
			return items, &lexError{t.off, fmt.Sprintf("expected = or , after %s, found %s", it.key, describe(t.tok, t.lit))}
		}

		// Collect the value up to the next top-level comma.
		start, end, depth := -1, -1, 0
		for {
			t, err = scan()
			if err != nil {
				return items, err
			}
			if t.tok == token.EOF || (t.tok == token.COMMA && depth == 0) {
				break
			}
			switch t.tok {
			case token.LPAREN, token.LBRACK, token.LBRACE:
				depth++
			case token.RPAREN, token.RBRACK, token.RBRACE:
				depth--
			}
			if start < 0 {
				start = t.off
			}
			end = t.off + tokenLen(t.tok, t.lit)
		}
		if start < 0 {
			return items, &lexError{it.assignOff, fmt.Sprintf("expected value after %s=", it.key)}
		}
		if depth != 0 {
			return items, &lexError{start, fmt.Sprintf("unbalanced brackets in value of %s", it.key)}
		}

		it.value = src[start:end]
		it.valueOff = start
		it.hasValue = true
		items = append(items, it)

		if t.tok == token.EOF {
			return items, nil
		}
	}
}

func tokenLen(tok token.Token, lit string) int {
	if lit != "" {
		return len(lit)
	}
	return len(tok.String())
}

func describe(tok token.Token, lit string) string {
	switch {
	case tok == token.EOF:
		return "end of tag"
	case tok.IsLiteral() || tok.IsKeyword():
		return lit
	}
	return fmt.Sprintf("'%s'", tok)
}
