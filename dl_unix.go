//go:build darwin || freebsd || linux

package native

import "github.com/ebitengine/purego"

func dlopen(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
}

func dlsym(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func dlclose(handle uintptr) error {
	return purego.Dlclose(handle)
}

// registerFunc fills the function pointed by fptr with a trampoline to addr, panics on unsupported types.
func registerFunc(fptr any, addr uintptr) {
	purego.RegisterFunc(fptr, addr)
}
