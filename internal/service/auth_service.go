package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/dom/account-service/internal/auth"
	"github.com/dom/account-service/internal/config"
	"github.com/dom/account-service/internal/domain"
	"github.com/dom/account-service/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sessionCreateRetries bounds how often a colliding session token is
// regenerated before the store error is surfaced.
const sessionCreateRetries = 3

type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	hasher      *auth.Hasher
	codec       *auth.TokenCodec
	tokens      *auth.TokenSource
	mode        config.TokenMode
}

func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	tokens *auth.TokenSource,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      auth.NewHasher(),
		codec:       auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL),
		tokens:      tokens,
		mode:        cfg.TokenMode,
	}
}

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult carries the authenticated user and the issued credential.
type AuthResult struct {
	User  *domain.User
	Token string
	// TTL is the credential lifetime, or zero for sessions, which live until
	// logout.
	TTL time.Duration
}

// Login verifies the credential and issues a token. An unknown email and a
// wrong password both report ErrInvalidCredentials so the response never
// reveals whether the email is registered.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		// Malformed stored hash fails closed as a credential mismatch.
		log.Printf("ERROR [service.AuthService] unverifiable password hash for user %s: %v", user.ID, err)
		return nil, domain.ErrInvalidCredentials
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueToken(ctx, user)
}

// Signup creates the user and immediately logs them in.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        strings.ToLower(input.Email),
		PasswordHash: hashedPassword,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailExists
		}
		return nil, err
	}

	return s.issueToken(ctx, user)
}

func (s *AuthService) issueToken(ctx context.Context, user *domain.User) (*AuthResult, error) {
	if s.mode == config.TokenModeJWT {
		signed, err := s.codec.Issue(user.ID)
		if err != nil {
			return nil, err
		}
		return &AuthResult{User: user, Token: signed, TTL: s.codec.TTL()}, nil
	}

	token, err := s.establishSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token.CookieValue()}, nil
}

// establishSession generates an opaque token and persists the mapping. A
// duplicate-key collision in the 128-bit space is vanishingly rare but
// detectable, so the token is regenerated a bounded number of times.
func (s *AuthService) establishSession(ctx context.Context, userID uuid.UUID) (auth.SessionToken, error) {
	var lastErr error
	for i := 0; i < sessionCreateRetries; i++ {
		token, err := s.tokens.Generate()
		if err != nil {
			return auth.SessionToken{}, err
		}

		err = s.sessionRepo.Create(ctx, &domain.Session{
			Token:     token.DatabaseValue(),
			UserID:    userID,
			CreatedAt: time.Now(),
		})
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return auth.SessionToken{}, err
		}
		lastErr = err
	}
	return auth.SessionToken{}, lastErr
}

// Validate resolves a raw token string to the user it belongs to. Signed
// tokens are recognized by their dotted structure; everything else is treated
// as an opaque session token.
func (s *AuthService) Validate(ctx context.Context, rawToken string) (*domain.User, error) {
	if strings.Contains(rawToken, ".") {
		userID, err := s.codec.Verify(rawToken)
		if err != nil {
			return nil, err
		}

		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrInvalidToken
			}
			return nil, err
		}
		return user, nil
	}

	token, err := auth.ParseSessionToken(rawToken)
	if err != nil {
		return nil, err
	}

	user, err := s.sessionRepo.GetUserByToken(ctx, token.DatabaseValue())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return user, nil
}

// Logout revokes the presented session. Signed tokens are stateless and
// simply expire; malformed tokens are ignored so logout stays idempotent.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if strings.Contains(rawToken, ".") {
		return nil
	}

	token, err := auth.ParseSessionToken(rawToken)
	if err != nil {
		return nil
	}

	return s.sessionRepo.Delete(ctx, token.DatabaseValue())
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
