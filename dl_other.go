//go:build !(darwin || freebsd || linux)

package native

import "errors"

var errNotImplemented = errors.New("not implemented")

func dlopen(string) (uintptr, error) {
	return 0, errNotImplemented
}

func dlsym(uintptr, string) (uintptr, error) {
	return 0, errNotImplemented
}

func dlclose(uintptr) error {
	return errNotImplemented
}

func registerFunc(any, uintptr) {
	panic(errNotImplemented)
}
