package id

import (
	"github.com/google/uuid"
)

// New generates a new UUID in string form.
func New() string {
	return uuid.New().String()
}

// IsValid reports whether id is a well-formed UUID.
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
