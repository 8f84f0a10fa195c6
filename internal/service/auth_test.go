package service

import (
	"context"
	"testing"

	"github.com/Shivanand-hulikatti/edusync/internal/cache"
	"github.com/Shivanand-hulikatti/edusync/internal/model"
	"github.com/Shivanand-hulikatti/edusync/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService() (*AuthService, *MockUserStore, *MockProfileStore) {
	users := new(MockUserStore)
	profiles := new(MockProfileStore)
	snapshots := cache.NewSnapshots(cache.NewMemoryCache(0), 0)
	return NewAuthService(users, profiles, snapshots, zap.NewNop(), bcrypt.MinCost), users, profiles
}

func validSignUp() model.SignUpRequest {
	return model.SignUpRequest{
		Email:           "  Ada@School.Test ",
		Password:        "correct-horse",
		ConfirmPassword: "correct-horse",
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Grade:           "10",
	}
}

func TestAuthService_SignUp(t *testing.T) {
	svc, users, _ := newTestAuthService()
	users.On("CreateWithProfile", mock.Anything,
		mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "ada@school.test" &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct-horse")) == nil
		}),
		mock.AnythingOfType("*model.Profile"),
	).Return(nil)

	profile, err := svc.SignUp(context.Background(), validSignUp())

	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, profile.Role)
	assert.Equal(t, "Ada Lovelace", profile.DisplayName)
	assert.Equal(t, "10", profile.Grade)
	users.AssertExpectations(t)
}

func TestAuthService_SignUp_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.SignUpRequest)
		message string
	}{
		{"bad email", func(r *model.SignUpRequest) { r.Email = "ada" }, "email is not a valid email address"},
		{"short password", func(r *model.SignUpRequest) { r.Password, r.ConfirmPassword = "short", "short" }, "Password must be at least 8 characters"},
		{"mismatch", func(r *model.SignUpRequest) { r.ConfirmPassword = "different-horse" }, "Passwords do not match"},
		{"missing name", func(r *model.SignUpRequest) { r.LastName = "" }, "first and last name are required"},
		{"teacher role", func(r *model.SignUpRequest) { r.Role = model.RoleTeacher }, "role must be student or participant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, _ := newTestAuthService()
			req := validSignUp()
			tt.mutate(&req)

			_, err := svc.SignUp(context.Background(), req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.message, verr.Message)
			users.AssertNotCalled(t, "CreateWithProfile", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_SignUp_EmailTaken(t *testing.T) {
	svc, users, _ := newTestAuthService()
	users.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything).Return(repository.ErrEmailTaken)

	req := validSignUp()
	req.Role = model.RoleParticipant
	_, err := svc.SignUp(context.Background(), req)

	assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestAuthService_SignIn(t *testing.T) {
	svc, users, _ := newTestAuthService()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "ada@school.test").
		Return(&model.User{ID: viewer, Email: "ada@school.test", PasswordHash: string(hash)}, nil)
	users.On("GetByEmail", mock.Anything, "ghost@school.test").Return(nil, repository.ErrNotFound)

	u, err := svc.SignIn(context.Background(), model.SignInRequest{Email: "ADA@school.test", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, viewer, u.ID)

	_, err = svc.SignIn(context.Background(), model.SignInRequest{Email: "ada@school.test", Password: "wrong-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(context.Background(), model.SignInRequest{Email: "ghost@school.test", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(context.Background(), model.SignInRequest{})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAuthService_Profile(t *testing.T) {
	svc, _, profiles := newTestAuthService()
	profiles.On("GetByUserID", mock.Anything, viewer).Return(&model.Profile{UserID: viewer}, nil)

	p, err := svc.Profile(context.Background(), viewer)
	require.NoError(t, err)
	assert.Equal(t, viewer, p.UserID)

	_, err = svc.Profile(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, isValidEmail("a@b.co"))
	assert.False(t, isValidEmail("a@b"))
	assert.False(t, isValidEmail("@b.co"))
	assert.False(t, isValidEmail("a@@b.co"))
}

func TestAuthService_SignOut_DropsSnapshot(t *testing.T) {
	ctx := context.Background()
	snapshots := cache.NewSnapshots(cache.NewMemoryCache(0), 0)
	svc := NewAuthService(new(MockUserStore), new(MockProfileStore), snapshots, zap.NewNop(), bcrypt.MinCost)

	require.NoError(t, snapshots.Save(ctx, viewer, []model.Event{{ID: "e1"}}))
	require.NoError(t, snapshots.Save(ctx, "", []model.Event{{ID: "e1"}}))

	svc.SignOut(ctx, viewer)

	_, ok, err := snapshots.Load(ctx, viewer)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = snapshots.Load(ctx, "")
	require.NoError(t, err)
	assert.True(t, ok, "signing out leaves the anonymous snapshot alone")
}

func TestAuthService_SignOut_CacheFailureIsLogged(t *testing.T) {
	c := cache.NewMemoryCache(0)
	require.NoError(t, c.Close())
	svc := NewAuthService(new(MockUserStore), new(MockProfileStore), cache.NewSnapshots(c, 0), zap.NewNop(), bcrypt.MinCost)

	assert.NotPanics(t, func() { svc.SignOut(context.Background(), viewer) })
}
