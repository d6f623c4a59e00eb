package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"storefront-be/internal/logger"
	"strings"

	"go.uber.org/zap"
)

const minPasswordLength = 8

// TokenGenerator issues access tokens for authenticated users.
type TokenGenerator interface {
	Generate(userID uint, email, role string) (string, error)
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (string, User, error)
	Login(ctx context.Context, input LoginInput) (string, User, error)
}

type service struct {
	repo   Repository
	tokens TokenGenerator
}

func NewService(repo Repository, tokens TokenGenerator) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (string, User, error) {
	log := logger.FromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)
	if err := validateRegistration(name, email, input.Password); err != nil {
		return "", User{}, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, name, email, hashed, RoleUser)
	if err != nil {
		if !errors.Is(err, ErrEmailExists) {
			log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		}
		return "", User{}, err
	}

	token, err := s.tokens.Generate(u.ID, u.Email, string(u.Role))
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register service completed",
		zap.Uint("user_id", u.ID),
		zap.String("email", email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (string, User, error) {
	log := logger.FromCtx(ctx)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("login: email not found")
			return "", User{}, ErrInvalidCredentials
		}
		return "", User{}, err
	}

	if !CheckPasswordHash(input.Password, u.Password) {
		log.Info("login: password mismatch", zap.Uint("user_id", u.ID))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.ID, u.Email, string(u.Role))
	if err != nil {
		return "", User{}, err
	}
	return token, u, nil
}

func validateRegistration(name, email, password string) error {
	var problems []string
	if name == "" {
		problems = append(problems, "name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		problems = append(problems, "email is invalid")
	}
	if len(password) < minPasswordLength {
		problems = append(problems, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}
