package native

import (
	"bytes"
	"debug/elf"
	"debug/macho"
	"debug/pe"
	"encoding/binary"
	"errors"
	"fmt"
	"github.com/ZenLiuCN/fn"
	"io"
	"io/fs"
	"log"
	"os"
	"os/exec"
	"slices"
	"strings"
)

// CopyFile from src to dest with optional src file info
func CopyFile(src string, dest string, si fs.FileInfo) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer fn.IgnoreClose(sf)
	df, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer fn.IgnoreClose(df)
	_, err = io.Copy(df, sf)
	if err == nil {
		if si == nil {
			si, err = os.Stat(src)
			if err != nil {
				return
			}
		}
		err = os.Chmod(dest, si.Mode())
	}
	return
}

// Compiler the C compiler, from environment CC or cc.
func Compiler() string {
	if c := strings.TrimSpace(os.Getenv("CC")); c != "" {
		return c
	}
	return "cc"
}

// Compile C sources into a shared object out.
func Compile(debug bool, out string, src []string) (err error) {
	if len(src) == 0 {
		return errors.New("missing sources")
	}
	cc := strings.Fields(Compiler())
	args := append(cc[1:], "-shared", "-fPIC", "-o", out)
	cmd := exec.Command(cc[0], append(args, src...)...)
	if debug {
		log.Printf("execute: %v", cmd.Args)
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err = cmd.Run(); err != nil {
		return fmt.Errorf("compile %v: %w", src, err)
	}
	return
}

// Inspect list exported function symbols of a shared object, sorted.
func Inspect(file string) (v []string, err error) {
	if v, err = inspectELF(file); err == nil {
		return
	}
	var fe *elf.FormatError
	if !errors.As(err, &fe) {
		return
	}
	if v, err = inspectMachO(file); err == nil {
		return
	}
	if v, err = inspectPE(file); err == nil {
		return
	}
	return nil, fmt.Errorf("inspect %s: unknown format", file)
}

func inspectELF(file string) (v []string, err error) {
	f, err := elf.Open(file)
	if err != nil {
		return
	}
	defer fn.IgnoreClose(f)
	syms, err := f.DynamicSymbols()
	if err != nil {
		return
	}
	for _, s := range syms {
		if elf.ST_TYPE(s.Info) != elf.STT_FUNC || s.Section == elf.SHN_UNDEF {
			continue
		}
		if b := elf.ST_BIND(s.Info); b != elf.STB_GLOBAL && b != elf.STB_WEAK {
			continue
		}
		v = append(v, s.Name)
	}
	return sorted(v), nil
}

func inspectMachO(file string) (v []string, err error) {
	f, err := macho.Open(file)
	if err != nil {
		return
	}
	defer fn.IgnoreClose(f)
	if f.Symtab == nil {
		return
	}
	for _, s := range f.Symtab.Syms {
		// N_EXT set, N_TYPE is N_SECT
		if s.Type&0x01 == 0 || s.Type&0x0e != 0x0e {
			continue
		}
		if s.Sect == 0 || int(s.Sect) > len(f.Sections) {
			continue
		}
		if sec := f.Sections[s.Sect-1]; sec.Seg != "__TEXT" || sec.Name != "__text" {
			continue
		}
		v = append(v, strings.TrimPrefix(s.Name, "_"))
	}
	return sorted(v), nil
}

func inspectPE(file string) (v []string, err error) {
	f, err := pe.Open(file)
	if err != nil {
		return
	}
	defer fn.IgnoreClose(f)
	var dd pe.DataDirectory
	switch h := f.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		if h.NumberOfRvaAndSizes > pe.IMAGE_DIRECTORY_ENTRY_EXPORT {
			dd = h.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_EXPORT]
		}
	case *pe.OptionalHeader64:
		if h.NumberOfRvaAndSizes > pe.IMAGE_DIRECTORY_ENTRY_EXPORT {
			dd = h.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_EXPORT]
		}
	}
	if dd.VirtualAddress == 0 {
		return
	}
	read := func(rva uint32) []byte {
		for _, sec := range f.Sections {
			if rva < sec.VirtualAddress || rva >= sec.VirtualAddress+max(sec.VirtualSize, sec.Size) {
				continue
			}
			b, e := sec.Data()
			if e != nil || int(rva-sec.VirtualAddress) >= len(b) {
				return nil
			}
			return b[rva-sec.VirtualAddress:]
		}
		return nil
	}
	if v, err = exportNames(read, dd.VirtualAddress); err != nil {
		return nil, fmt.Errorf("inspect %s: %w", file, err)
	}
	return sorted(v), nil
}

// exportNames read the name table of an IMAGE_EXPORT_DIRECTORY at rva, read maps an rva to the image bytes from there.
func exportNames(read func(rva uint32) []byte, rva uint32) (v []string, err error) {
	dir := read(rva)
	if len(dir) < 40 {
		return nil, errors.New("truncated export directory")
	}
	n := binary.LittleEndian.Uint32(dir[24:])
	names := read(binary.LittleEndian.Uint32(dir[32:]))
	if uint64(len(names)) < uint64(n)*4 {
		return nil, errors.New("truncated export name table")
	}
	for i := uint32(0); i < n; i++ {
		b := read(binary.LittleEndian.Uint32(names[i*4:]))
		if x := bytes.IndexByte(b, 0); x > 0 {
			v = append(v, string(b[:x]))
		}
	}
	return
}

func sorted(v []string) []string {
	slices.Sort(v)
	return slices.Compact(v)
}
