package native

import (
	"encoding/binary"
	"github.com/ZenLiuCN/fn"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestInspect(t *testing.T) {
	v := fn.Panic1(Inspect(library(t, sourceHello)))
	for _, s := range []string{SymSayHello, symLast, symCalls} {
		if !slices.Contains(v, s) {
			t.Errorf("Inspect() = %v, missing %s", v, s)
		}
	}
	v = fn.Panic1(Inspect(library(t, sourceNoHello)))
	if slices.Contains(v, SymSayHello) || slices.Contains(v, "answer_data") || !slices.Contains(v, "answer") {
		t.Errorf("Inspect() = %v", v)
	}
}

func TestInspectNotObject(t *testing.T) {
	if _, err := Inspect(sourceHello); err == nil {
		t.Error("Inspect() of a C source succeeded")
	}
	if _, err := Inspect("testdata/missing.so"); !os.IsNotExist(err) {
		t.Errorf("Inspect() of missing file = %v", err)
	}
}

func TestCompileNoSources(t *testing.T) {
	if err := Compile(debugging, filepath.Join(t.TempDir(), "empty.so"), nil); err == nil {
		t.Error("Compile() without sources succeeded")
	}
}

func TestCompiler(t *testing.T) {
	t.Setenv("CC", "")
	if c := Compiler(); c != "cc" {
		t.Errorf("Compiler() = %s", c)
	}
	t.Setenv("CC", " clang -m64 ")
	if c := Compiler(); c != "clang -m64" {
		t.Errorf("Compiler() = %s", c)
	}
}

func TestCopyFile(t *testing.T) {
	p := library(t, sourceHello)
	dest := filepath.Join(t.TempDir(), DefaultLibrary)
	fn.Panic(CopyFile(p, dest, nil))
	src := fn.Panic1(os.Stat(p))
	dst := fn.Panic1(os.Stat(dest))
	if src.Mode() != dst.Mode() || src.Size() != dst.Size() {
		t.Errorf("CopyFile() = %v %d, want %v %d", dst.Mode(), dst.Size(), src.Mode(), src.Size())
	}
}

func TestExportNames(t *testing.T) {
	// flat image, rva is the offset
	img := make([]byte, 128)
	le := binary.LittleEndian
	le.PutUint32(img[24:], 2)  // NumberOfNames
	le.PutUint32(img[32:], 64) // AddressOfNames
	le.PutUint32(img[64:], 80)
	le.PutUint32(img[68:], 96)
	copy(img[80:], "hello_calls\x00")
	copy(img[96:], "say_hello\x00")
	read := func(rva uint32) []byte {
		if int(rva) >= len(img) {
			return nil
		}
		return img[rva:]
	}
	v := fn.Panic1(exportNames(read, 0))
	if !slices.Equal(v, []string{"hello_calls", SymSayHello}) {
		t.Errorf("exportNames() = %v", v)
	}
	le.PutUint32(img[24:], 100)
	if _, err := exportNames(read, 0); err == nil {
		t.Error("exportNames() of truncated name table succeeded")
	}
	if _, err := exportNames(read, 120); err == nil {
		t.Error("exportNames() of truncated directory succeeded")
	}
}
