package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/classon/server/internal/customer/domain"
	"github.com/classon/server/internal/token"
	"github.com/classon/server/pkg/db"
	"github.com/classon/server/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Signup(ctx context.Context, instructorID snowflake.ID, req domain.SignupRequest) (*domain.Customer, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}
	if len(req.Password) < 8 {
		return nil, domain.ErrInvalidPassword
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		fullName = email
	}

	// Uniqueness is per store. The same email signing up with a different
	// instructor creates an unrelated row.
	if existing, err := s.repo.FindByEmail(ctx, s.db, instructorID, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := token.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:           s.genID.Generate(),
		InstructorID: instructorID,
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Phone:        strings.TrimSpace(req.Phone),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info("customer signed up",
		zap.String("customer_id", customer.ID.String()),
		zap.String("instructor_id", instructorID.String()),
	)
	return &customer, nil
}

func (s *Service) Authenticate(ctx context.Context, instructorID snowflake.ID, email, password string) (*domain.Customer, error) {
	customer, err := s.repo.FindByEmail(ctx, s.db, instructorID, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.PasswordHash == "" || !token.VerifyPassword(password, customer.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if !customer.IsActive {
		return nil, domain.ErrInactive
	}

	now := time.Now().UTC()
	customer.LastLoginAt = &now
	customer.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Customer, error) {
	customer, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

func (s *Service) GetForInstructor(ctx context.Context, instructorID, customerID snowflake.ID) (*domain.Customer, error) {
	customer, err := s.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.InstructorID != instructorID {
		return nil, domain.ErrForbidden
	}
	return customer, nil
}

func (s *Service) ListByInstructor(ctx context.Context, instructorID snowflake.ID, p pagination.Pagination) ([]domain.Customer, error) {
	return s.repo.ListByInstructor(ctx, s.db, instructorID, p)
}

func (s *Service) Update(ctx context.Context, instructorID, customerID snowflake.ID, req domain.UpdateRequest) (*domain.Customer, error) {
	customer, err := s.GetForInstructor(ctx, instructorID, customerID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		if name := strings.TrimSpace(*req.FullName); name != "" {
			customer.FullName = name
		}
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}

	customer.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) Delete(ctx context.Context, instructorID, customerID snowflake.ID) error {
	if _, err := s.GetForInstructor(ctx, instructorID, customerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, customerID)
}

// FindOrCreateFromKakao provisions or refreshes the customer backing a kakao
// login. It never touches passwords and does not require the row to exist
// beforehand.
func (s *Service) FindOrCreateFromKakao(ctx context.Context, instructorID snowflake.ID, profile domain.KakaoProfile) (*domain.Customer, error) {
	kakaoID := strings.TrimSpace(profile.KakaoID)
	if kakaoID == "" {
		return nil, domain.ErrInvalidKakaoID
	}

	now := time.Now().UTC()
	customer, err := s.repo.FindByKakaoID(ctx, s.db, instructorID, kakaoID)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		if name := strings.TrimSpace(profile.Nickname); name != "" {
			customer.FullName = name
		}
		if phone := strings.TrimSpace(profile.Phone); phone != "" {
			customer.Phone = phone
		}
		if email := normalizeEmail(profile.Email); email != "" && email != customer.Email {
			// Only adopt the kakao address when it does not collide with
			// another signup in this store.
			other, err := s.repo.FindByEmail(ctx, s.db, instructorID, email)
			if err != nil {
				return nil, err
			}
			if other == nil {
				customer.Email = email
			}
		}
		customer.LastLoginAt = &now
		customer.UpdatedAt = now
		if err := s.repo.Update(ctx, s.db, customer); err != nil {
			return nil, err
		}
		return customer, nil
	}

	email := normalizeEmail(profile.Email)
	if email != "" {
		// A kakao account may share its email with an existing password
		// signup in the same store. Those stay separate rows, so the kakao
		// row falls back to the placeholder address.
		if existing, err := s.repo.FindByEmail(ctx, s.db, instructorID, email); err != nil {
			return nil, err
		} else if existing != nil {
			email = ""
		}
	}
	if email == "" {
		email = fmt.Sprintf("kakao_%s@kakao.user", kakaoID)
	}
	fullName := strings.TrimSpace(profile.Nickname)
	if fullName == "" {
		fullName = email
	}

	customer = &domain.Customer{
		ID:           s.genID.Generate(),
		InstructorID: instructorID,
		Email:        email,
		FullName:     fullName,
		Phone:        strings.TrimSpace(profile.Phone),
		KakaoID:      &kakaoID,
		IsActive:     true,
		LastLoginAt:  &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, s.db, customer); err != nil {
		if db.IsDuplicateKeyErr(err) {
			// Lost a race with a concurrent callback for the same account.
			if existing, ferr := s.repo.FindByKakaoID(ctx, s.db, instructorID, kakaoID); ferr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}

	s.log.Info("customer provisioned from kakao",
		zap.String("customer_id", customer.ID.String()),
		zap.String("instructor_id", instructorID.String()),
	)
	return customer, nil
}

func (s *Service) CountByInstructor(ctx context.Context, instructorID snowflake.ID) (int64, error) {
	return s.repo.CountByInstructor(ctx, s.db, instructorID)
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return ""
	}
	return email
}
