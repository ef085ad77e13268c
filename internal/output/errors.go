package output

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMode  = errors.New("unknown output mode")
	ErrPathNotFound = errors.New("sublist path not found")
)

// PathNotFoundError reports a declared sub-table path that does not resolve
// against the first record of a response.
type PathNotFoundError struct {
	Path string `json:"path"`
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("sublist path not found in data: %s", e.Path)
}

func (e *PathNotFoundError) Is(target error) bool {
	return target == ErrPathNotFound
}
