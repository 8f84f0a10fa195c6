package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/edusync/internal/model"
	"github.com/Shivanand-hulikatti/edusync/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at sign-up.
const MinPasswordLength = 8

// ViewerState holds cached per-viewer data that sign-out discards.
type ViewerState interface {
	Forget(ctx context.Context, viewerID string) error
}

// AuthService handles accounts and sign-in.
type AuthService struct {
	users    repository.UserStore
	profiles repository.ProfileStore
	state    ViewerState
	log      *zap.Logger
	cost     int

	// dummyHash is compared against when the email is unknown so that both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

// NewAuthService constructs an AuthService. A zero cost uses bcrypt.DefaultCost.
func NewAuthService(
	users repository.UserStore,
	profiles repository.ProfileStore,
	state ViewerState,
	log *zap.Logger,
	cost int,
) *AuthService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("edusync-dummy-password"), cost)
	return &AuthService{users: users, profiles: profiles, state: state, log: log, cost: cost, dummyHash: dummy}
}

// SignOut discards the viewer's cached event snapshot. A failure is logged
// and does not block sign-out.
func (s *AuthService) SignOut(ctx context.Context, viewerID string) {
	if viewerID == "" {
		return
	}
	if err := s.state.Forget(ctx, viewerID); err != nil {
		s.log.Warn("failed to drop viewer snapshot", zap.String("user_id", viewerID), zap.Error(err))
	}
}

// SignUp creates an account and its profile. Teacher accounts are not
// self-service.
func (s *AuthService) SignUp(ctx context.Context, req model.SignUpRequest) (*model.Profile, error) {
	email := normalizeEmail(req.Email)
	switch {
	case !isValidEmail(email):
		return nil, invalid("email is not a valid email address")
	case len(req.Password) < MinPasswordLength:
		return nil, invalid(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	case req.Password != req.ConfirmPassword:
		return nil, invalid("Passwords do not match")
	case strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "":
		return nil, invalid("first and last name are required")
	}

	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}
	if role != model.RoleStudent && role != model.RoleParticipant {
		return nil, invalid("role must be student or participant")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Email: email, PasswordHash: string(hash)}
	profile := &model.Profile{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      role,
		StudentID: strings.TrimSpace(req.StudentID),
		Grade:     strings.TrimSpace(req.Grade),
		Section:   strings.TrimSpace(req.Section),
		Phone:     strings.TrimSpace(req.Phone),
	}
	profile.DisplayName = profile.FullName()

	if err := s.users.CreateWithProfile(ctx, user, profile); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, repository.ErrEmailTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	s.log.Info("account created", zap.String("user_id", user.ID), zap.String("role", string(role)))
	return profile, nil
}

// SignIn checks the credentials and returns the account.
func (s *AuthService) SignIn(ctx context.Context, req model.SignInRequest) (*model.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, invalid("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Profile returns the signed-in viewer's profile.
func (s *AuthService) Profile(ctx context.Context, viewerID string) (*model.Profile, error) {
	if viewerID == "" {
		return nil, ErrUnauthenticated
	}
	return s.profiles.GetByUserID(ctx, viewerID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isValidEmail does a basic structural check.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
