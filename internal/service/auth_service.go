package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"nutritrack/internal/auth"
	apperr "nutritrack/internal/errors"
	"nutritrack/internal/model"
	"nutritrack/internal/repository"
)

const bcryptCost = 12

// dummyHash is compared against when the email is unknown so both login
// failures take the same time.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcryptCost)

// ImageUploader stores profile images.
type ImageUploader interface {
	SaveProfileImage(ctx context.Context, fh *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, path string) error
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput, image *multipart.FileHeader) (*model.User, error)
	Login(ctx context.Context, in LoginInput) (token string, user *model.User, err error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	uploader   ImageUploader
	validator  Validator
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	uploader ImageUploader,
	validator Validator,
) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		tokenStore: tokenStore,
		uploader:   uploader,
		validator:  validator,
		now:        time.Now,
	}
}

// Register validates the form, stores the optional image and creates the
// user with a hashed password.
func (s *authService) Register(ctx context.Context, in RegisterInput, image *multipart.FileHeader) (*model.User, error) {
	in.normalize()
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, apperr.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           model.NewID(),
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Bio:          in.Bio,
		Position:     in.Position,
		Role:         model.RoleUser,
		IsActive:     true,
	}

	if image != nil {
		path, err := s.uploader.SaveProfileImage(ctx, image)
		if err != nil {
			return nil, err
		}
		user.ProfileImage = &path
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.discardImage(ctx, user.ProfileImage)
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperr.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns a session token.
func (s *authService) Login(ctx context.Context, in LoginInput) (string, *model.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := s.validator.Struct(in); err != nil {
		return "", nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return "", nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", nil, apperr.ErrInvalidCredentials
	}

	token, _, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return "", nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLogin = &now

	return token, user, nil
}

// Logout revokes the caller's token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return apperr.ErrUnauthorized
	}
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if err := s.tokenStore.RevokeToken(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *authService) discardImage(ctx context.Context, path *string) {
	if path == nil {
		return
	}
	if err := s.uploader.Remove(ctx, *path); err != nil {
		log.Warn().Err(err).Str("path", *path).Msg("remove orphaned profile image")
	}
}
