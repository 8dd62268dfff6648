package repository

import (
	"context"

	"github.com/dom/account-service/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetUserByToken(ctx context.Context, token []byte) (*domain.User, error)
	Delete(ctx context.Context, token []byte) error
}

type Repositories struct {
	User    UserRepository
	Session SessionRepository
}
