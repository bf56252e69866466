package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate record")
)

// wrapWriteError tags unique-index violations with ErrDuplicate.
func wrapWriteError(msg string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", msg, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
