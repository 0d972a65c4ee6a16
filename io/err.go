package io

import (
	"io/fs"

	"github.com/JanDeVisser/jv80/translate"
)

var f = translate.From

// ErrIncludeNotFound reports a file missing from every search directory.
type ErrIncludeNotFound string

func (err ErrIncludeNotFound) Error() string {
	return f("%v not found in include path", string(err))
}

func (err ErrIncludeNotFound) Unwrap() error {
	return fs.ErrNotExist
}
