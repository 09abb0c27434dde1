package main

import (
	"fmt"
	. "github.com/ZenLiuCN/native"
	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"
	"log"
	"math"
	"os"
	"path/filepath"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("failure %s", err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Usage = "load a shared library and call its greeting"
	app.Name = "greet"
	app.Description = "greet loads a shared library, binds say_hello(int) and calls it with the repeats"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
		},
		&cli.StringFlag{
			Name:    "lib",
			Aliases: []string{"l"},
			Value:   DefaultLibrary,
			EnvVars: []string{"CLIB_LIBRARY"},
			Usage:   "shared library name or path",
		},
		&cli.StringFlag{
			Name:    "symbol",
			Aliases: []string{"s"},
			Value:   SymSayHello,
			Usage:   "symbol of the greeting function, declared as void (int)",
		},
		&cli.Int64Flag{
			Name:    "repeats",
			Aliases: []string{"n"},
			Value:   DefaultRepeats,
			EnvVars: []string{"CLIB_REPEATS"},
			Usage:   "argument passed to the greeting function, a C int",
		},
	}
	app.Action = call
	app.Commands = []*cli.Command{
		{
			Name:   "check",
			Action: check,
			Usage:  "load the library and resolve the symbol without calling it",
		},
		{
			Name:   "symbols",
			Action: symbols,
			Usage:  "display exported functions of shared objects",
			Args:   true,
		},
		{
			Name:   "build",
			Action: build,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: DefaultLibrary, Usage: "output shared object"},
				&cli.StringFlag{Name: "install", Aliases: []string{"i"}, Usage: "copy the shared object into this directory"},
			},
			Args:  true,
			Usage: "compile C sources into a shared object with $CC or cc",
		},
	}
	return app
}

// repeats the --repeats flag, rejected when it does not fit a C int.
func repeats(ctx *cli.Context) (int32, error) {
	n := ctx.Int64("repeats")
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("repeats %d out of C int range", n)
	}
	return int32(n), nil
}

func open(ctx *cli.Context) (lib *Library, err error) {
	d := ctx.Bool("debug")
	if lib, err = UseGlobal(ctx.String("lib"), d); err != nil {
		return
	}
	if d {
		spew.Fdump(os.Stderr, lib)
	}
	return
}

func call(ctx *cli.Context) (err error) {
	var n int32
	if n, err = repeats(ctx); err != nil {
		return
	}
	var lib *Library
	if lib, err = open(ctx); err != nil {
		return
	}
	defer func() {
		if e := CloseGlobalLibraries(); err == nil {
			err = e
		}
	}()
	s := ctx.String("symbol")
	if s == SymSayHello {
		var g *Greeter
		if g, err = NewGreeter(lib); err != nil {
			return
		}
		g.SayHello(n)
		return
	}
	var f func(int32)
	if f, err = Bind[func(int32)](lib, s); err != nil {
		return
	}
	f(n)
	return
}

func check(ctx *cli.Context) (err error) {
	var lib *Library
	if lib, err = open(ctx); err != nil {
		return
	}
	defer func() {
		if e := CloseGlobalLibraries(); err == nil {
			err = e
		}
	}()
	var p Sym
	if p, err = lib.Lookup(ctx.String("symbol")); err != nil {
		return
	}
	fmt.Printf("%s: %s at %#x\n", lib.Path(), ctx.String("symbol"), uintptr(p))
	return
}

func symbols(ctx *cli.Context) (err error) {
	if ctx.NArg() == 0 {
		return fmt.Errorf("missing shared object list")
	}
	for _, f := range ctx.Args().Slice() {
		var v []string
		if v, err = Inspect(f); err != nil {
			return
		}
		fmt.Printf("%s:\n", f)
		for _, s := range v {
			fmt.Printf("\t%s\n", s)
		}
	}
	return
}

func build(ctx *cli.Context) (err error) {
	d := ctx.Bool("debug")
	o := ctx.Args().Slice()
	if len(o) == 0 {
		return fmt.Errorf("missing C sources list")
	}
	out := ctx.String("out")
	if err = Compile(d, out, o); err != nil {
		return
	}
	if dir := ctx.String("install"); dir != "" {
		dest := filepath.Join(dir, filepath.Base(out))
		if d {
			log.Printf("install %s to %s", out, dest)
		}
		err = CopyFile(out, dest, nil)
	}
	return
}
