package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sgsm/taskboard/internal/core/domain"
	"github.com/sgsm/taskboard/internal/core/ports"
)

// UserService lists accounts and lets admins manage them. Route-level RBAC
// restricts UpdateUser and DeleteUser to global admins.
type UserService struct {
	users   ports.UserRepository
	members ports.MembershipDirectory
	log     zerolog.Logger
}

func NewUserService(users ports.UserRepository, members ports.MembershipDirectory, log zerolog.Logger) *UserService {
	return &UserService{users: users, members: members, log: log}
}

func (s *UserService) ListUsers(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	all, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]*domain.User, 0, len(all))
	for _, u := range all {
		if u.ID != actor.ID {
			out = append(out, u)
		}
	}
	return out, nil
}

// UpdateUser renames an account or resets its password. Admin accounts and
// the caller's own account are refused.
func (s *UserService) UpdateUser(ctx context.Context, actor domain.Actor, userID string, upd ports.UserUpdate) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleAdmin {
		return nil, domain.ErrProtectedAccount
	}
	if user.ID == actor.ID {
		return nil, domain.ErrOwnAccount
	}

	if upd.Username != nil {
		if name := strings.TrimSpace(*upd.Username); name != "" {
			user.Username = name
		}
	}
	if upd.Password != nil && *upd.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("actor", actor.ID).Msg("user updated")
	return user, nil
}

// DeleteUser removes an account and its memberships. Tasks and comments
// keep the denormalized name. An admin cannot delete itself.
func (s *UserService) DeleteUser(ctx context.Context, actor domain.Actor, userID string) error {
	if userID == actor.ID {
		return domain.ErrOwnAccount
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.members.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user: memberships: %w", err)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info().Str("user_id", userID).Str("actor", actor.ID).Msg("user deleted")
	return nil
}
