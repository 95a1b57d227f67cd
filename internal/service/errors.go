package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmptyMessage       = errors.New("message text is required")
)

// UsersNotFoundError reports every unresolvable user id of an operation,
// in input order, not just the first.
type UsersNotFoundError struct {
	MissingIDs []uint
}

// Error implements the error interface
func (e *UsersNotFoundError) Error() string {
	return fmt.Sprintf("could not find user(s): %s", e.JoinIDs())
}

// JoinIDs renders the missing ids as a comma-separated list
func (e *UsersNotFoundError) JoinIDs() string {
	parts := make([]string, 0, len(e.MissingIDs))
	for _, id := range e.MissingIDs {
		parts = append(parts, strconv.FormatUint(uint64(id), 10))
	}
	return strings.Join(parts, ", ")
}
