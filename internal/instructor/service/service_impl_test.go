package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/classon/server/internal/instructor/domain"
	"github.com/classon/server/internal/instructor/repository"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.Instructor{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func validSignup() domain.SignupRequest {
	return domain.SignupRequest{
		Email:     "teacher@example.com",
		Password:  "password123",
		FullName:  "Kim Teacher",
		Subdomain: "kimclass",
		StoreName: "Kim's Class",
	}
}

func TestSignup(t *testing.T) {
	svc := newTestService(t)

	instructor, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)
	assert.Equal(t, "teacher@example.com", instructor.Email)
	assert.Equal(t, "kimclass", instructor.Subdomain)
	assert.True(t, instructor.IsActive)
	assert.NotEqual(t, "password123", instructor.PasswordHash)
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.SignupRequest)
		want   error
	}{
		{"missing email", func(r *domain.SignupRequest) { r.Email = "" }, domain.ErrInvalidEmail},
		{"short password", func(r *domain.SignupRequest) { r.Password = "short" }, domain.ErrInvalidPassword},
		{"missing name", func(r *domain.SignupRequest) { r.FullName = "  " }, domain.ErrInvalidName},
		{"missing subdomain", func(r *domain.SignupRequest) { r.Subdomain = "" }, domain.ErrInvalidSubdomain},
		{"subdomain with dot", func(r *domain.SignupRequest) { r.Subdomain = "kim.class" }, domain.ErrInvalidSubdomain},
		{"subdomain with space", func(r *domain.SignupRequest) { r.Subdomain = "kim class" }, domain.ErrInvalidSubdomain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			req := validSignup()
			tt.mutate(&req)
			_, err := svc.Signup(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSignupTakenEmailAndSubdomain(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	dupEmail := validSignup()
	dupEmail.Subdomain = "otherclass"
	_, err = svc.Signup(ctx, dupEmail)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	dupSub := validSignup()
	dupSub.Email = "other@example.com"
	_, err = svc.Signup(ctx, dupSub)
	assert.ErrorIs(t, err, domain.ErrSubdomainTaken)
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, "Teacher@Example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Authenticate(ctx, "teacher@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestGetBySubdomain(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	got, err := svc.GetBySubdomain(ctx, "KimClass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetBySubdomain(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	bio := "Teaching Go since 2015."
	enabled := true
	clientID := "kakao-app-id"
	got, err := svc.UpdateProfile(ctx, created.ID, domain.UpdateRequest{
		Bio:           &bio,
		KakaoEnabled:  &enabled,
		KakaoClientID: &clientID,
	})
	require.NoError(t, err)
	assert.Equal(t, bio, got.Bio)
	assert.True(t, got.KakaoEnabled)
	assert.Equal(t, "kakao-app-id", got.KakaoClientID)

	// Moving to a taken subdomain is rejected, keeping the same one is not.
	second := validSignup()
	second.Email = "other@example.com"
	second.Subdomain = "otherclass"
	other, err := svc.Signup(ctx, second)
	require.NoError(t, err)

	taken := "kimclass"
	_, err = svc.UpdateProfile(ctx, other.ID, domain.UpdateRequest{Subdomain: &taken})
	assert.ErrorIs(t, err, domain.ErrSubdomainTaken)

	same := "otherclass"
	_, err = svc.UpdateProfile(ctx, other.ID, domain.UpdateRequest{Subdomain: &same})
	assert.NoError(t, err)
}
