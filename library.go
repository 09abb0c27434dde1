package native

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
)

// Library is an open handle to a dynamically loaded library.
//
// Use Steps:
//
//  1. [Open] or [UseGlobal] to load the library.
//  2. [Library.Lookup] or [Bind] to resolve symbols.
//  3. Call [Library.Close] to release the handle, a global library is released by [CloseGlobalLibraries].
//
// Note:
//
//  1. Functions bound from a Library must not be called after Close.
//  2. Library itself is safe between goroutines, Close must not race with calls of bound functions.
type Library struct {
	name   string
	path   string
	handle uintptr
	syms   map[string]uintptr
	debug  bool
	mu     sync.Mutex
}

// Open loads the first loadable candidate of name, an optional debug parameter will enable debug logging inside Library.
func Open(name string, debug ...bool) (l *Library, err error) {
	dbg := len(debug) > 0 && debug[0]
	var errs []error
	for _, c := range Candidates(name) {
		h, e := dlopen(c)
		if e == nil {
			if dbg {
				log.Printf("loaded %s as %s", name, c)
			}
			return &Library{name: name, path: c, handle: h, syms: make(map[string]uintptr), debug: dbg}, nil
		}
		if dbg {
			log.Printf("try %s: %v", c, e)
		}
		errs = append(errs, fmt.Errorf("%s: %v", c, e))
	}
	return nil, fmt.Errorf("%w %s: %w", ErrLoad, name, errors.Join(errs...))
}

// Candidates list the file names tried in order to load a library of name.
func Candidates(name string) []string {
	wd, _ := os.Getwd()
	return candidates(runtime.GOOS, wd, name)
}

func candidates(goos, wd, name string) (v []string) {
	names := []string{name}
	switch ext := filepath.Ext(name); {
	case ext == "":
		names = append(names, name+suffix(goos))
	case ext == ".so" && goos == "darwin":
		names = append(names, strings.TrimSuffix(name, ext)+".dylib")
	}
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return names
	}
	if wd != "" {
		for _, n := range names {
			v = append(v, filepath.Join(wd, n))
		}
	}
	for _, n := range names {
		if !slices.Contains(v, n) {
			v = append(v, n)
		}
	}
	return
}

func suffix(goos string) string {
	switch goos {
	case "darwin", "ios":
		return ".dylib"
	case "windows":
		return ".dll"
	default:
		return ".so"
	}
}

// Name the library name as requested.
func (l *Library) Name() string { return l.name }

// Path the candidate which was loaded.
func (l *Library) Path() string { return l.path }

// Lookup resolve a symbol, throws ErrClosed or ErrMissingSymbol.
func (l *Library) Lookup(sym string) (Sym, error) {
	if l == nil {
		return 0, ErrClosed
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.handle == 0 {
		return 0, ErrClosed
	}
	if p, ok := l.syms[sym]; ok {
		return Sym(p), nil
	}
	p, err := dlsym(l.handle, sym)
	if err != nil {
		return 0, fmt.Errorf("%w %s in %s: %v", ErrMissingSymbol, sym, l.path, err)
	}
	if p == 0 {
		return 0, fmt.Errorf("%w %s in %s", ErrMissingSymbol, sym, l.path)
	}
	if l.debug {
		log.Printf("found symbol %s: %x", sym, p)
	}
	l.syms[sym] = p
	return Sym(p), nil
}

// Fetch resolve a symbol, ok is false when the library is closed or the symbol is missing.
func (l *Library) Fetch(sym string) (u Sym, ok bool) {
	var err error
	u, err = l.Lookup(sym)
	return u, err == nil
}

// MustFetch resolve a symbol, panics with ErrClosed or ErrMissingSymbol.
func (l *Library) MustFetch(sym string) Sym {
	u, err := l.Lookup(sym)
	if err != nil {
		panic(err)
	}
	return u
}

// Close unload the library, it is safe to call Close more than once.
func (l *Library) Close() (err error) {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.handle == 0 {
		return nil
	}
	if l.debug {
		log.Printf("close library %s", l.path)
	}
	_ = os.Stdout.Sync()
	err = dlclose(l.handle)
	l.handle = 0
	l.syms = nil
	if err != nil {
		return fmt.Errorf("close %s: %w", l.path, err)
	}
	return
}
