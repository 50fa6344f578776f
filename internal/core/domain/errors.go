package domain

import (
	"errors"
	"fmt"
)

var ErrForbidden = errors.New("access forbidden")
var ErrNotFound = errors.New("not found")
var ErrInvalidAssignee = errors.New("assignee is not a member of the project")
var ErrWIPLimitExceeded = fmt.Errorf("wip limit reached: at most %d tasks may be IN_PROGRESS", WIPLimit)
var ErrInvalidStatus = errors.New("invalid task status")
var ErrInvalidInput = errors.New("invalid input")

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")
var ErrMembershipExists = errors.New("user is already a member of the project")

// Rejected account changes are input errors.
var (
	ErrProtectedAccount       = fmt.Errorf("%w: admin accounts cannot be modified", ErrInvalidInput)
	ErrOwnAccount             = fmt.Errorf("%w: cannot modify your own account", ErrInvalidInput)
	ErrCommentProjectMismatch = fmt.Errorf("%w: comment does not belong to the project", ErrInvalidInput)
)

// Specific lookups wrap ErrNotFound so callers can match either.
var (
	ErrTaskNotFound       = fmt.Errorf("task %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrProjectNotFound    = fmt.Errorf("project %w", ErrNotFound)
	ErrMembershipNotFound = fmt.Errorf("membership %w", ErrNotFound)
	ErrCommentNotFound    = fmt.Errorf("comment %w", ErrNotFound)
)
