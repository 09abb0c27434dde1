package pool

import (
	"errors"
	"fmt"
	. "github.com/ZenLiuCN/native"
	"log"
	"slices"
	"sync"
)

// Pool is a named set of loaded libraries.
type Pool struct {
	Libraries map[string]*Library
	Loaded    []string
	debug     bool
	sync.RWMutex
}

var (
	// ErrAlreadyLoaded occurs when loading a library twice into the same Pool.
	ErrAlreadyLoaded = errors.New("library already loaded")
	// ErrNotLoaded occurs when using a library not loaded into a Pool.
	ErrNotLoaded = errors.New("library not loaded")
)

// NewPool create new pool
func NewPool(debug bool) *Pool {
	return &Pool{Libraries: make(map[string]*Library), debug: debug}
}

// Load open the library of name into the pool.
func (p *Pool) Load(name string) (err error) {
	p.Lock()
	defer p.Unlock()
	if _, ok := p.Libraries[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyLoaded, name)
	}
	return p.load(name)
}

func (p *Pool) load(name string) (err error) {
	var l *Library
	if l, err = Open(name, p.debug); err != nil {
		return
	}
	p.Libraries[name] = l
	p.Loaded = append(p.Loaded, name)
	return
}

func (p *Pool) unload(name string) error {
	l := p.Libraries[name]
	delete(p.Libraries, name)
	if i := slices.Index(p.Loaded, name); i >= 0 {
		p.Loaded = slices.Delete(p.Loaded, i, i+1)
	}
	return l.Close()
}

// Reload close the library of name if loaded then open it again, symbols fetched before are invalid.
func (p *Pool) Reload(name string) (err error) {
	p.Lock()
	defer p.Unlock()
	if _, ok := p.Libraries[name]; ok {
		if p.debug {
			log.Printf("reload %s", name)
		}
		if err = p.unload(name); err != nil {
			return
		}
	}
	return p.load(name)
}

// Unload close and remove the library of name.
func (p *Pool) Unload(name string) error {
	p.Lock()
	defer p.Unlock()
	if _, ok := p.Libraries[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotLoaded, name)
	}
	return p.unload(name)
}

// Lookup fetch symbol from library of name.
func (p *Pool) Lookup(name, symbolName string) (Sym, error) {
	// resolved symbols are cached inside the Library
	p.Lock()
	defer p.Unlock()
	l, ok := p.Libraries[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotLoaded, name)
	}
	return l.Lookup(symbolName)
}

// Require fetch symbol from library of name, panics on error.
func (p *Pool) Require(name, symbolName string) Sym {
	s, err := p.Lookup(name, symbolName)
	if err != nil {
		panic(err)
	}
	return s
}

// Library the loaded library of name or nil.
func (p *Pool) Library(name string) *Library {
	p.RLock()
	defer p.RUnlock()
	return p.Libraries[name]
}

// Close unload all libraries in reverse load order.
func (p *Pool) Close() error {
	p.Lock()
	defer p.Unlock()
	var errs []error
	for i := len(p.Loaded) - 1; i >= 0; i-- {
		errs = append(errs, p.unload(p.Loaded[i]))
	}
	return errors.Join(errs...)
}
