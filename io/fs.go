package io

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CreateFS defines a file system interface that supports creating files and directories.
type CreateFS interface {
	// Create creates a new file for writing.
	Create(name string) (file io.WriteCloser, err error)
	// Mkdir creates a new directory with the specified permissions.
	Mkdir(name string, filemode fs.FileMode) (err error)
}

// DirFS is a host directory, readable as an fs.FS and writable as a CreateFS.
// Names are slash separated and relative, as for fs.FS.
type DirFS string

var _ fs.FS = DirFS("")
var _ CreateFS = DirFS("")

func (dir DirFS) join(op string, name string) (path string, err error) {
	if !fs.ValidPath(name) {
		err = &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
		return
	}
	path = filepath.Join(string(dir), filepath.FromSlash(name))
	return
}

// Open opens a file for reading.
func (dir DirFS) Open(name string) (file fs.File, err error) {
	return os.DirFS(string(dir)).Open(name)
}

// Create creates or truncates a file for writing.
func (dir DirFS) Create(name string) (file io.WriteCloser, err error) {
	path, err := dir.join("create", name)
	if err != nil {
		return
	}
	return os.Create(path)
}

// Mkdir creates a directory.
func (dir DirFS) Mkdir(name string, filemode fs.FileMode) (err error) {
	path, err := dir.join("mkdir", name)
	if err != nil {
		return
	}
	return os.Mkdir(path, filemode)
}
