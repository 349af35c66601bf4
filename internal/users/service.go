package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/validation"
)

var (
	ErrAlreadyExists      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var registerRules = validation.RuleSet{
	Name: "user.register",
	Messages: map[string]string{
		"name":     "Name is required",
		"email":    "Please include a valid email",
		"password": "Please enter a password with 6 or more characters",
	},
	TagMessages: map[string]string{
		"password|max": passwordTooLong,
	},
}

const passwordTooLong = "Password must be 72 bytes or fewer"

var loginRules = validation.RuleSet{
	Name: "user.login",
	Messages: map[string]string{
		"email":    "Please include a valid email",
		"password": "Password is required",
	},
}

// RegisterInput is the payload of a sign-up.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6,max=72"`
}

// LoginInput is the payload of a sign-in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenSigner issues bearer tokens for identities.
type TokenSigner interface {
	Sign(id auth.Identity) (string, error)
}

type Service struct {
	Repo        Repo
	Tokens      TokenSigner
	AdminEmails map[string]struct{}
	HashCost    int
	Now         func() time.Time
}

// NewService constructs a Service. Accounts registered with one of
// adminEmails receive the admin role.
func NewService(repo Repo, tokens TokenSigner, adminEmails []string) *Service {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}
	return &Service{
		Repo:        repo,
		Tokens:      tokens,
		AdminEmails: admins,
		HashCost:    bcrypt.DefaultCost,
		Now:         time.Now,
	}
}

// Register creates an account and returns a token for it.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, error) {
	if err := validation.Validate(registerRules, in); err != nil {
		return "", err
	}
	email := normalizeEmail(in.Email)
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return "", ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost())
	if err != nil {
		// max counts runes; bcrypt limits bytes.
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", validation.Single("password", passwordTooLong)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	role := auth.RoleUser
	if _, ok := s.AdminEmails[email]; ok {
		role = auth.RoleAdmin
	}
	user, err := s.Repo.Create(ctx, User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return "", ErrAlreadyExists
		}
		return "", fmt.Errorf("create user: %w", err)
	}
	telemetry.Info("user.registered", map[string]any{"user_id": user.ID, "role": user.Role})
	return s.issue(user)
}

// Login checks credentials and returns a fresh token. Unknown emails and wrong
// passwords are indistinguishable.
func (s *Service) Login(ctx context.Context, in LoginInput) (string, error) {
	if err := validation.Validate(loginRules, in); err != nil {
		return "", err
	}
	user, err := s.Repo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrNotFound
	}
	user, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, ErrInvalidID) {
		return User{}, ErrNotFound
	}
	return user, err
}

func (s *Service) issue(user User) (string, error) {
	token, err := s.Tokens.Sign(auth.Identity{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
		Name:   user.Name,
	})
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *Service) hashCost() int {
	if s.HashCost == 0 {
		return bcrypt.DefaultCost
	}
	return s.HashCost
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
