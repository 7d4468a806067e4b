package types

import (
	"errors"
	"fmt"
)

var (
	ErrNoMatchingRecords   = errors.New("file contains no matching records")
	ErrFilesFailed         = errors.New("one or more input files failed to process")
	ErrMissingColumn       = errors.New("required column is missing")
	ErrUnsupportedEncoding = errors.New("unsupported file encoding")
	ErrEmptyFile           = errors.New("empty file: no header row found")
	ErrInvalidEncoding     = errors.New("file content does not match the configured encoding")
	ErrDuplicateColumn     = errors.New("duplicate column in header")
)

// ReferenceLoadError indica falha ao carregar um arquivo de referência. É fatal para a execução.
type ReferenceLoadError struct {
	Path string
	Err  error
}

func (e *ReferenceLoadError) Error() string {
	return fmt.Sprintf("failed to load reference file %s: %v", e.Path, e.Err)
}

func (e *ReferenceLoadError) Unwrap() error { return e.Err }

// FileProcessingError indica falha no processamento de um único arquivo de entrada.
type FileProcessingError struct {
	File string
	Err  error
}

func (e *FileProcessingError) Error() string {
	return fmt.Sprintf("error processing file %s: %v", e.File, e.Err)
}

func (e *FileProcessingError) Unwrap() error { return e.Err }

// MissingColumnError reports a header that lacks a column the loader depends on.
type MissingColumnError struct {
	File   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: column %q not found in header", e.File, e.Column)
}

func (e *MissingColumnError) Is(target error) bool { return target == ErrMissingColumn }
