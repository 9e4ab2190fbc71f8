package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrValidation marks invalid input handed to a constructor or mutator.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidIcon is returned when a tab icon is empty.
	ErrInvalidIcon = fmt.Errorf("%w: invalid icon", ErrValidation)

	ErrTabNotFound  = errors.New("tab not found")
	ErrNoteNotFound = errors.New("note not found")
	ErrDraftClosed  = errors.New("note draft already committed")

	// ErrPersistence wraps any failure to read or write the document.
	ErrPersistence = errors.New("persistence failed")
	// ErrParse wraps a document that is not valid for the expected shape.
	ErrParse = errors.New("parse failed")

	ErrReadOnly = errors.New("repository is in read-only mode")
	// ErrClosed is returned for changes made after the Store was closed.
	ErrClosed = errors.New("store is closed")
)
