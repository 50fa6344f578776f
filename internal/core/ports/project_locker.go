package ports

import (
	"context"
	"errors"
)

// ErrLeaseLost is returned by a release func when the lock expired or was
// taken over while held; the critical section may have overlapped another
// holder.
var ErrLeaseLost = errors.New("project lock lease lost")

// ProjectLocker provides the per-project serializing scope every board
// mutation runs under. Lock blocks until the project is held or ctx ends;
// the returned release func must be called exactly once.
type ProjectLocker interface {
	Lock(ctx context.Context, projectID string) (release func() error, err error)
}
