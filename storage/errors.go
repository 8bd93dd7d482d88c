package storage

import "fmt"

type ErrNotExist struct {
	path string
	err  error
}

func (e ErrNotExist) Error() string {
	if e.err == nil {
		return fmt.Sprintf("not found: %s", e.path)
	}
	return fmt.Sprintf("not found: %s: %s", e.path, e.err)
}

func (e ErrNotExist) Unwrap() error { return e.err }

type ErrAccessDenied struct {
	path string
	code string
	err  error
}

func (e ErrAccessDenied) Error() string {
	if e.err == nil {
		return fmt.Sprintf("access denied writing %s (%s)", e.path, e.code)
	}
	return fmt.Sprintf("access denied writing %s (%s): %s", e.path, e.code, e.err)
}

func (e ErrAccessDenied) Unwrap() error { return e.err }
