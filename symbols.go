package native

import (
	"errors"
	"github.com/ZenLiuCN/fn"
	"slices"
)

// Sym is the address of a resolved symbol.
type Sym uintptr

// Symbols dump names of symbols resolved so far.
func (l *Library) Symbols() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := fn.MapKeys(l.syms)
	slices.Sort(s)
	return s
}

var (
	// ErrLoad occurs when none of the candidates of a library can be opened.
	ErrLoad = errors.New("cannot load library")
	// ErrMissingSymbol occurs when can't found a symbol.
	ErrMissingSymbol = errors.New("missing symbol")
	// ErrSignature occurs when a symbol can't be bound to the desired function type.
	ErrSignature = errors.New("unsupported signature")
	// ErrClosed occurs use a Library after Close.
	ErrClosed = errors.New("library closed")
)
