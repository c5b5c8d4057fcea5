package codefmt

import (
	"errors"
)

// Context collects errors found in user's source code so that all of them can
// be reported at once instead of stopping at the first one.
//
// A Context must be checked exactly once by [Context.Check]. Defer
// [Context.Close] right after creating it to catch a forgotten check:
//
//	cx := codefmt.NewContext(pkger)
//	defer cx.Close()
//	...
//	if err := cx.Check(); err != nil {
//		return err
//	}
type Context struct {
	fmt     Formatter
	errs    []error
	checked bool
}

// NewContext creates a new [Context]. Errors recorded by [Context.Errorf] are
// positioned in the package of the given pkger.
func NewContext(pkger Pkger) *Context {
	return &Context{fmt: newByPkger(pkger)}
}

// Errorf records an error at the position of poser.
func (cx *Context) Errorf(poser Poser, format string, args ...any) {
	cx.Error(cx.fmt.Errorf(poser, format, args...))
}

// Error records an already structured error. A nil error is ignored.
func (cx *Context) Error(err error) {
	if cx.checked {
		panic("context already checked")
	}
	if err == nil {
		return
	}
	cx.errs = append(cx.errs, err)
}

// Len returns the number of recorded errors.
func (cx *Context) Len() int { return len(cx.errs) }

// Check consumes the context. It returns nil if no error was recorded.
// Otherwise, it returns all recorded errors joined in the recorded order.
//
// Panics if the context has been checked already.
func (cx *Context) Check() error {
	if cx.checked {
		panic("context already checked")
	}
	cx.checked = true

	errs := cx.errs
	cx.errs = nil
	return errors.Join(errs...)
}

// Close panics if the context has not been checked. It must be deferred
// directly, not called inside another deferred function, so that it can tell
// whether the goroutine is already panicking. In that case, the original panic
// continues instead.
func (cx *Context) Close() {
	if r := recover(); r != nil {
		panic(r)
	}
	if !cx.checked {
		panic("forgot to check for errors")
	}
}
