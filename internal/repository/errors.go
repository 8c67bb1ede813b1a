// package repository provides data access and error types
package repository

import (
	"fmt"
)

// ErrItemNotFound is returned when an item with the specified ID does not exist
type ErrItemNotFound struct {
	ID int64
}

// Error implements the error interface
func (e ErrItemNotFound) Error() string {
	return fmt.Sprintf("todo item with id %d not found", e.ID)
}
