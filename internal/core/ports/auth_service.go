package ports

import (
	"context"

	"github.com/sgsm/taskboard/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, email string, role domain.GlobalRole) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
