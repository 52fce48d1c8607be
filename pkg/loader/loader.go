// Package loader discovers .class byte sources from a directory, a .jar, or
// a .jmod, for the CLI to hand to classfile.FromReader. It performs no
// linking or class resolution: a Source is nothing more than a name and an
// opener.
package loader

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source is one discovered .class byte stream, not yet parsed.
type Source struct {
	// Name is the binary class name (slash-separated), derived from the
	// entry path with the "classes/" jmod prefix and ".class" suffix
	// stripped.
	Name string
	// Open returns a fresh reader positioned at the start of the class
	// bytes. Callers must close it.
	Open func() (io.ReadCloser, error)
}

// Discover locates every .class entry reachable from path. path may be a
// directory (walked recursively), a .jar/.zip archive, or a JDK .jmod
// module file. Entries are returned sorted by Name for deterministic
// output.
func Discover(path string) ([]Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("loader: stat %s: %w", path, err)
	}

	var sources []Source
	switch {
	case info.IsDir():
		sources, err = discoverDir(path)
	case strings.HasSuffix(path, ".jmod"):
		sources, err = discoverJmod(path)
	case strings.HasSuffix(path, ".jar") || strings.HasSuffix(path, ".zip"):
		sources, err = discoverZip(path, "")
	default:
		sources, err = discoverSingleFile(path)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })
	return sources, nil
}

func discoverSingleFile(path string) ([]Source, error) {
	if !strings.HasSuffix(path, ".class") {
		return nil, fmt.Errorf("loader: %s is not a .class, .jar, .jmod, or directory", path)
	}
	name := strings.TrimSuffix(filepath.Base(path), ".class")
	return []Source{{
		Name: name,
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}}, nil
}

func discoverDir(root string) ([]Source, error) {
	var sources []Source
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(p, ".class") {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.ToSlash(rel), ".class")
		entryPath := p
		sources = append(sources, Source{
			Name: name,
			Open: func() (io.ReadCloser, error) { return os.Open(entryPath) },
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: walking %s: %w", root, err)
	}
	return sources, nil
}

// discoverZip opens a .jar as a zip archive and returns every .class entry.
// The whole file is read into memory first, the same way the jmod path
// does, so the returned Sources' lazy Open funcs don't depend on a file
// descriptor staying open behind the caller's back.
func discoverZip(path, prefix string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: reading %s: %w", path, err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("loader: opening %s: %w", path, err)
	}
	return classEntriesOf(zr, prefix), nil
}

// discoverJmod reads a JDK .jmod module file. Its payload is an ordinary
// zip archive preceded by a 4-byte "JM\x01\x00" magic header, with class
// entries stored under a "classes/" prefix.
func discoverJmod(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: reading %s: %w", path, err)
	}
	if len(data) < 4 {
		return nil, fmt.Errorf("loader: %s is too short to be a jmod", path)
	}
	body := data[4:]
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("loader: opening zip payload of %s: %w", path, err)
	}
	return classEntriesOf(zr, "classes/"), nil
}

func classEntriesOf(zr *zip.Reader, prefix string) []Source {
	var sources []Source
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".class") {
			continue
		}
		if prefix != "" && !strings.HasPrefix(f.Name, prefix) {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(f.Name, prefix), ".class")
		file := f
		sources = append(sources, Source{
			Name: name,
			Open: func() (io.ReadCloser, error) { return file.Open() },
		})
	}
	return sources
}
