package service

import (
	"github.com/dom/account-service/internal/auth"
	"github.com/dom/account-service/internal/config"
	"github.com/dom/account-service/internal/repository"
)

type Services struct {
	Auth *AuthService
	User *UserService
}

func NewServices(repos *repository.Repositories, tokens *auth.TokenSource, cfg *config.Config) *Services {
	return &Services{
		Auth: NewAuthService(repos.User, repos.Session, tokens, cfg),
		User: NewUserService(repos.User),
	}
}
