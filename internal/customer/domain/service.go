package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/classon/server/pkg/db/pagination"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// UpdateRequest is the instructor-facing partial update. Nil fields are
// left untouched.
type UpdateRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Notes    *string `json:"notes"`
	IsActive *bool   `json:"is_active"`
}

// KakaoProfile is the subset of a kakao account used to provision a
// customer row.
type KakaoProfile struct {
	KakaoID  string
	Email    string
	Nickname string
	Phone    string
}

type Service interface {
	Signup(ctx context.Context, instructorID snowflake.ID, req SignupRequest) (*Customer, error)
	Authenticate(ctx context.Context, instructorID snowflake.ID, email, password string) (*Customer, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Customer, error)
	GetForInstructor(ctx context.Context, instructorID, customerID snowflake.ID) (*Customer, error)
	ListByInstructor(ctx context.Context, instructorID snowflake.ID, p pagination.Pagination) ([]Customer, error)
	Update(ctx context.Context, instructorID, customerID snowflake.ID, req UpdateRequest) (*Customer, error)
	Delete(ctx context.Context, instructorID, customerID snowflake.ID) error
	FindOrCreateFromKakao(ctx context.Context, instructorID snowflake.ID, profile KakaoProfile) (*Customer, error)
	CountByInstructor(ctx context.Context, instructorID snowflake.ID) (int64, error)
}

var (
	ErrNotFound           = errors.New("customer_not_found")
	ErrInactive           = errors.New("customer_inactive")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_taken")
	ErrForbidden          = errors.New("customer_forbidden")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrInvalidPassword    = errors.New("invalid_password")
	ErrInvalidKakaoID     = errors.New("invalid_kakao_id")
)
