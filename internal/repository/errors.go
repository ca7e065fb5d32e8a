// Package repository defines the MySQL-backed stores for users and content
// repositories. Errors returned here wrap the kinds in package common so
// handlers can map them without knowing the concrete values.
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/universe-repo/internal/common"
)

var (
	// ErrRepositoryNotFound: no repository with the requested id.
	ErrRepositoryNotFound = fmt.Errorf("repository %w", common.ErrNotFound)

	// ErrOwnerNotFound: the owner id given at registration does not exist.
	ErrOwnerNotFound = fmt.Errorf("owner %w", common.ErrNotFound)

	// ErrUserNotFound: no user with that id, or the account is inactive.
	ErrUserNotFound = fmt.Errorf("user %w", common.ErrNotFound)

	// ErrEmailInUse: another user already registered this email.
	ErrEmailInUse = fmt.Errorf("email already in use: %w", common.ErrConflict)

	// ErrEmptyCredentials: email or password is blank.
	ErrEmptyCredentials = fmt.Errorf("empty credentials: %w", common.ErrUnauthorized)

	// ErrInvalidCredentials: unknown or inactive email, or wrong password.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", common.ErrUnauthorized)
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
