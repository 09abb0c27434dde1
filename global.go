package native

import (
	"errors"
	"maps"
	"sync"
)

var (
	gmu     sync.Mutex
	modules = make(map[string]*Library)
)

// UseGlobal open a library of name once, later calls with the same name return the same Library.
func UseGlobal(name string, debug ...bool) (l *Library, err error) {
	gmu.Lock()
	defer gmu.Unlock()
	if l, ok := modules[name]; ok {
		return l, nil
	}
	if l, err = Open(name, debug...); err != nil {
		return
	}
	modules[name] = l
	return
}

// GlobalLibraries the global shared libraries. should not close any of them.
func GlobalLibraries() map[string]*Library {
	gmu.Lock()
	defer gmu.Unlock()
	return maps.Clone(modules)
}

// CloseGlobalLibraries close all global libraries. this should only use when none of their functions are in use!
func CloseGlobalLibraries() error {
	gmu.Lock()
	defer gmu.Unlock()
	var errs []error
	for k, l := range modules {
		errs = append(errs, l.Close())
		delete(modules, k)
	}
	return errors.Join(errs...)
}
