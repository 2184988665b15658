package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	Subdomain string `json:"subdomain"`
	StoreName string `json:"store_name"`
}

type UpdateRequest struct {
	Email             *string `json:"email"`
	FullName          *string `json:"full_name"`
	Subdomain         *string `json:"subdomain"`
	StoreName         *string `json:"store_name"`
	Bio               *string `json:"bio"`
	ProfileImage      *string `json:"profile_image"`
	KakaoClientID     *string `json:"kakao_client_id"`
	KakaoClientSecret *string `json:"kakao_client_secret"`
	KakaoRedirectURI  *string `json:"kakao_redirect_uri"`
	KakaoEnabled      *bool   `json:"kakao_enabled"`
	KakaoChannelID    *string `json:"kakao_channel_id"`
}

type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*Instructor, error)
	Authenticate(ctx context.Context, email, password string) (*Instructor, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Instructor, error)
	GetByEmail(ctx context.Context, email string) (*Instructor, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*Instructor, error)
	UpdateProfile(ctx context.Context, id snowflake.ID, req UpdateRequest) (*Instructor, error)
}

var (
	ErrNotFound           = errors.New("instructor_not_found")
	ErrInactive           = errors.New("instructor_inactive")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_taken")
	ErrSubdomainTaken     = errors.New("subdomain_taken")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrInvalidSubdomain   = errors.New("invalid_subdomain")
	ErrInvalidPassword    = errors.New("invalid_password")
	ErrInvalidName        = errors.New("invalid_name")
)
