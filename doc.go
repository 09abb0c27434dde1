/*
Package native loads shared libraries at runtime and calls their exported C functions, based on [purego].

# License

Source codes are under Apache License Version 2.0.

# Underwater

 1. Libraries are opened with dlopen, symbols resolved with dlsym, no cgo required.
 2. A resolved symbol becomes a plain Go function value via [Bind], the Go function type is the signature declaration.
 3. A library opened through [UseGlobal] stays loaded until [CloseGlobalLibraries], which is the normal case for a process.

# Lookup

A library name without path separator is looked up in the working directory first,
then handed to the dynamic linker which searches its own library path.
A name without extension gets the platform one (.so, .dylib or .dll), see [Candidates].

# Notes

 1. Only symbols whose signature can be expressed by [purego] can be bound: integers, floats, pointers, strings, bool.
 2. The C int is 32 bits on every supported platform, so bind it as int32.
 3. A Library is not thread-safe, the functions bound from it are as safe as the native code behind them.

# Command

The greet command loads clib.so from the working directory and calls say_hello(5):

	go install github.com/ZenLiuCN/native/greet@latest
	greet -n 5 -l clib.so

It also can build a C source into a shared object, inspect exported symbols and so on ... .
For more details see the cli help:

	greet -h

# Samples

See testdata and tests.

[purego]: https://github.com/ebitengine/purego
*/
package native
