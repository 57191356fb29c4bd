package catalog

import "errors"

var (
	// ErrNotFound is returned when the referenced entity id does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateName is returned when a create or update would violate
	// the unique name constraint.
	ErrDuplicateName = errors.New("name already exists")

	// ErrInvalidReference is returned when a product references a
	// nonexistent category.
	ErrInvalidReference = errors.New("referenced category does not exist")

	// ErrProtected is returned on attempts to edit or delete the default
	// category.
	ErrProtected = errors.New("default category is protected")
)
