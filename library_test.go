package native

import (
	"path/filepath"
	"slices"
	"testing"
)

func TestCandidates(t *testing.T) {
	wd := filepath.FromSlash("/work")
	tests := []struct {
		name string
		goos string
		lib  string
		want []string
	}{
		{"bare so", "linux", "clib.so", []string{filepath.Join(wd, "clib.so"), "clib.so"}},
		{"no extension", "linux", "clib", []string{filepath.Join(wd, "clib"), filepath.Join(wd, "clib.so"), "clib", "clib.so"}},
		{"darwin equivalent", "darwin", "clib.so", []string{filepath.Join(wd, "clib.so"), filepath.Join(wd, "clib.dylib"), "clib.so", "clib.dylib"}},
		{"windows no extension", "windows", "clib", []string{filepath.Join(wd, "clib"), filepath.Join(wd, "clib.dll"), "clib", "clib.dll"}},
		{"path verbatim", "linux", "./lib/clib.so", []string{"./lib/clib.so"}},
		{"versioned", "linux", "libc.so.6", []string{filepath.Join(wd, "libc.so.6"), "libc.so.6"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := candidates(tt.goos, wd, tt.lib); !slices.Equal(got, tt.want) {
				t.Errorf("candidates() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCandidatesNoWorkingDirectory(t *testing.T) {
	if got := candidates("linux", "", "clib.so"); !slices.Equal(got, []string{"clib.so"}) {
		t.Errorf("candidates() = %v", got)
	}
}

func TestClosedLibrary(t *testing.T) {
	var l *Library
	if _, err := l.Lookup(SymSayHello); err != ErrClosed {
		t.Errorf("Lookup on nil = %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close on nil = %v", err)
	}
	l = new(Library)
	if _, ok := l.Fetch(SymSayHello); ok {
		t.Error("Fetch on closed library")
	}
	if s := l.Symbols(); len(s) != 0 {
		t.Errorf("Symbols() on closed library = %v", s)
	}
}
