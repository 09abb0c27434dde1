package native

import "log"

const (
	// DefaultLibrary the library loaded when none is given.
	DefaultLibrary = "clib.so"
	// SymSayHello the greeting function exported by the library.
	SymSayHello = "say_hello"
	// DefaultRepeats the argument passed to say_hello when none is given.
	DefaultRepeats = 5
)

// Greeter is a Library bound to void say_hello(int num_repeats).
type Greeter struct {
	lib      *Library
	sayHello func(numRepeats int32)
}

// NewGreeter bind say_hello from lib.
func NewGreeter(lib *Library) (g *Greeter, err error) {
	g = &Greeter{lib: lib}
	if g.sayHello, err = Bind[func(int32)](lib, SymSayHello); err != nil {
		return nil, err
	}
	return
}

// Library the library this Greeter was bound from.
func (g *Greeter) Library() *Library { return g.lib }

// SayHello call the native say_hello, numRepeats is passed as is.
func (g *Greeter) SayHello(numRepeats int32) {
	if g.lib.debug {
		log.Printf("call %s(%d)", SymSayHello, numRepeats)
	}
	g.sayHello(numRepeats)
}

// Greet load the library of name, bind say_hello and call it once with numRepeats.
//
// The library is kept loaded in the global registry.
func Greet(name string, numRepeats int32, debug bool) error {
	lib, err := UseGlobal(name, debug)
	if err != nil {
		return err
	}
	g, err := NewGreeter(lib)
	if err != nil {
		return err
	}
	g.SayHello(numRepeats)
	return nil
}
