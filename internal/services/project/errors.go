package services

import (
	"errors"
	"fmt"
)

// ErrMissingProjectID means the request carried no project identifier.
var ErrMissingProjectID = errors.New("project id is required")

// ErrProjectNotFound means the id does not resolve to a project row.
var ErrProjectNotFound = errors.New("project not found")

// ErrForbidden means the caller is neither the owner nor an admin.
var ErrForbidden = errors.New("access denied")

// DependencyDeleteError reports which table of the deletion cascade
// failed and why. The cascade stops at the first failure; tables
// already processed are not rolled back.
type DependencyDeleteError struct {
	Table string
	Err   error
}

func (e *DependencyDeleteError) Error() string {
	return fmt.Sprintf("failed to delete %s: %v", e.Table, e.Err)
}

func (e *DependencyDeleteError) Unwrap() error {
	return e.Err
}
