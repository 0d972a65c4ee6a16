package io

import (
	"bufio"
	"errors"
	"io/fs"

	"github.com/sirupsen/logrus"
)

// FileSource provides assembler source files from a list of directories,
// searched in order.
type FileSource struct {
	Dirs []fs.FS
}

// NewFileSource creates a FileSource over host directories.
func NewFileSource(dirs ...string) (src *FileSource) {
	src = &FileSource{}
	for _, dir := range dirs {
		src.Dirs = append(src.Dirs, DirFS(dir))
	}
	return
}

// Lines returns the lines of the first file called name.
func (src *FileSource) Lines(name string) (lines []string, err error) {
	if !fs.ValidPath(name) {
		err = &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
		return
	}

	for n, dir := range src.Dirs {
		var file fs.File
		file, err = dir.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return
		}
		defer file.Close()

		logrus.WithFields(logrus.Fields{"file": name, "dir": n}).Debug("source found")

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		err = scanner.Err()
		return
	}

	err = ErrIncludeNotFound(name)
	return
}
