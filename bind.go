package native

import (
	"fmt"
	"log"
)

// Bind resolve sym from lib as a Go function of type T, T is the signature declaration of the native function.
//
//	say, err := Bind[func(int32)](lib, "say_hello")
func Bind[T any](lib *Library, sym string) (f T, err error) {
	var p Sym
	if p, err = lib.Lookup(sym); err != nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			var zero T
			f = zero
			err = fmt.Errorf("%w %s as %T: %v", ErrSignature, sym, f, r)
		}
	}()
	registerFunc(&f, uintptr(p))
	if lib.debug {
		log.Printf("bind %s as %T", sym, f)
	}
	return
}

// MustBind same as Bind but panics on error.
func MustBind[T any](lib *Library, sym string) T {
	f, err := Bind[T](lib, sym)
	if err != nil {
		panic(err)
	}
	return f
}

// Use create a function to bind and use symbol on the fly
func Use[T any](lib *Library, sym string) func(func(t T, err error)) {
	return func(f func(t T, err error)) {
		x, err := Bind[T](lib, sym)
		if lib != nil && lib.debug {
			log.Printf("execute %s, %v", sym, err)
		}
		f(x, err)
	}
}
