package mdblog

import (
	"errors"
	"io/fs"
	"path/filepath"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeInvalidParams = "POST_PARAMS_INVALID"
	textCodePostNotFound  = "POST_NOT_FOUND"
)

func invalidParamsError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid post parameters").
		WithTextCode(textCodeInvalidParams)
}

// unknownPostError reports a slug outside the enumerated set. It wraps a
// *fs.PathError so errors.Is(err, fs.ErrNotExist) holds, same as a failed
// read of a missing file.
func unknownPostError(dir, slug string) error {
	return notFoundError(filepath.Join(dir, slug+MarkdownExt), "post not found")
}

func unknownImageError(dir, name string) error {
	return notFoundError(filepath.Join(dir, name), "image not found")
}

func notFoundError(path, msg string) error {
	pathErr := &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	return goerrors.Wrap(pathErr, goerrors.CategoryNotFound, msg).
		WithTextCode(textCodePostNotFound)
}

// IsNotFound reports whether err means the requested post does not exist.
func IsNotFound(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryNotFound) || errors.Is(err, fs.ErrNotExist)
}

// IsInvalidParams reports whether err came from rejecting route parameters.
func IsInvalidParams(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryValidation)
}
