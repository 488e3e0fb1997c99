// Package loader reads driftwm configuration sources into generic maps.
//
// Files are TOML or YAML, picked by extension. Environment variables
// prefixed with DRIFTWM_ overlay the file. The maps are turned into typed
// settings and bindings by the config package.
package loader

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader reads configuration from a source. A missing source yields
// nil, nil.
type Loader interface {
	Load() (map[string]any, error)
}

// FileLoader is a Loader bound to a path that can also read other paths.
type FileLoader interface {
	Loader
	LoadFrom(path string) (map[string]any, error)
}

// ReaderLoader parses configuration from a reader.
type ReaderLoader interface {
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem is the file access the loaders need. Tests substitute an
// in-memory implementation.
type FileSystem interface {
	fs.FS
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem on the real file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the OS file system.
func DefaultFS() FileSystem {
	return OSFS{}
}

// Format is a configuration file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatFor picks the format from the file extension. Anything other than
// .yaml or .yml is read as TOML.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// ForPath returns a file loader for path in the format its extension
// names.
func ForPath(fsys FileSystem, path string) FileLoader {
	if fsys == nil {
		fsys = DefaultFS()
	}
	if FormatFor(path) == FormatYAML {
		return NewYAMLLoaderWithFS(fsys, path)
	}
	return NewTOMLLoaderWithFS(fsys, path)
}
