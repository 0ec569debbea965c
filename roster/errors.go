package roster

import (
	"errors"
	"fmt"
)

// Kind identifies which load check failed.
type Kind int

const (
	NotFound Kind = iota + 1
	ParseError
	SchemaError
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case ParseError:
		return "parse_error"
	case SchemaError:
		return "schema_error"
	default:
		return "unknown"
	}
}

// Sentinels usable with errors.Is.
var (
	ErrNotFound = errors.New("roster file not found")
	ErrParse    = errors.New("roster file could not be parsed")
	ErrSchema   = errors.New("roster file is missing a required column")
)

// LoadError is returned by Load. Message and Hint are safe to show to the user.
type LoadError struct {
	Kind    Kind
	Path    string
	Column  string
	Message string
	Hint    string
	Err     error
}

func (e *LoadError) Error() string { return e.Message }

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == NotFound
	case ErrParse:
		return e.Kind == ParseError
	case ErrSchema:
		return e.Kind == SchemaError
	}
	return false
}

func notFoundError(path string, err error) *LoadError {
	return &LoadError{
		Kind:    NotFound,
		Path:    path,
		Message: fmt.Sprintf("Error: The '%s' file was not found.", path),
		Hint:    "Please ensure the program is in the same directory as the CSV file.",
		Err:     err,
	}
}

// parseError keeps the parser's text in Message so it reaches the page.
func parseError(path string, err error) *LoadError {
	return &LoadError{
		Kind:    ParseError,
		Path:    path,
		Message: fmt.Sprintf("Error loading data from '%s': %v", path, err),
		Err:     err,
	}
}

func schemaError(path, column string) *LoadError {
	return &LoadError{
		Kind:    SchemaError,
		Path:    path,
		Column:  column,
		Message: fmt.Sprintf("The '%s' column is missing from the file.", column),
		Hint:    fmt.Sprintf("Please ensure your %s has a '%s' column.", path, column),
	}
}
