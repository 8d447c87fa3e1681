package outbound

import (
	"context"
	"errors"

	"github.com/vobe/voicedesk/domain/entity"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	// UpdatePassword replaces the stored hash in a single statement.
	UpdatePassword(ctx context.Context, id, hashedPassword string) error
}
