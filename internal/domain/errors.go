package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument signals a malformed request value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrSlugTaken signals that an explicitly requested slug belongs to another item.
	ErrSlugTaken = errors.New("slug already taken")
)

// SlugTakenError wraps ErrSlugTaken with the nearest free alternative.
type SlugTakenError struct {
	Slug      string
	Suggested string
}

func (e *SlugTakenError) Error() string {
	return fmt.Sprintf("%s: %q (try %q)", ErrSlugTaken.Error(), e.Slug, e.Suggested)
}

func (e *SlugTakenError) Unwrap() error { return ErrSlugTaken }

// NewSlugTaken creates a slug conflict error carrying a free alternative.
func NewSlugTaken(slug, suggested string) error {
	return &SlugTakenError{Slug: slug, Suggested: suggested}
}
