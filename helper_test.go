package native

import (
	"github.com/ZenLiuCN/fn"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const (
	sourceHello   = "testdata/clib.c"
	sourceNoHello = "testdata/nohello.c"
	symLast       = "last_repeats"
	symCalls      = "hello_calls"
)

type (
	typeSayHello = func(int32)
	typeCounter  = func() int32
)

var debugging = false

// library compile src into a shared object inside a temporary directory.
func library(t testing.TB, src string) string {
	t.Helper()
	if _, err := exec.LookPath(strings.Fields(Compiler())[0]); err != nil {
		t.Skipf("no C compiler: %v", err)
	}
	out := filepath.Join(t.TempDir(), strings.TrimSuffix(filepath.Base(src), ".c")+".so")
	fn.Panic(Compile(debugging, out, []string{src}))
	return out
}
