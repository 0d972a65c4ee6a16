package io

import (
	"bytes"
	"errors"
	"io/fs"
	"path"

	"github.com/JanDeVisser/jv80/cpu"
)

// Save assembles an image and writes its binary to name. Nothing is
// created when the image has errors.
func Save(fsys CreateFS, name string, img *cpu.Image) (err error) {
	var buf bytes.Buffer
	err = img.Write(&buf)
	if err != nil {
		return
	}

	if dir := path.Dir(name); dir != "." {
		err = fsys.Mkdir(dir, 0755)
		if err != nil && !errors.Is(err, fs.ErrExist) {
			return
		}
	}

	file, err := fsys.Create(name)
	if err != nil {
		return
	}
	defer func() {
		close_err := file.Close()
		if err == nil {
			err = close_err
		}
	}()

	_, err = file.Write(buf.Bytes())
	return
}
