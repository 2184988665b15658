package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/classon/server/internal/instructor/domain"
	"github.com/classon/server/internal/token"
	"github.com/classon/server/pkg/db"
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
		log:   p.Log.Named("instructor.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Signup(ctx context.Context, req domain.SignupRequest) (*domain.Instructor, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}
	subdomain := normalizeSubdomain(req.Subdomain)
	if subdomain == "" {
		return nil, domain.ErrInvalidSubdomain
	}
	if len(req.Password) < 8 {
		return nil, domain.ErrInvalidPassword
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, domain.ErrInvalidName
	}
	storeName := strings.TrimSpace(req.StoreName)
	if storeName == "" {
		storeName = fullName
	}

	// Pre-checks give friendly errors; the unique indexes are what actually
	// reject a concurrent duplicate.
	if existing, err := s.repo.FindByEmail(ctx, s.db, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrEmailTaken
	}
	if existing, err := s.repo.FindBySubdomain(ctx, s.db, subdomain); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrSubdomainTaken
	}

	hash, err := token.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	instructor := domain.Instructor{
		ID:           s.genID.Generate(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Subdomain:    subdomain,
		StoreName:    storeName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &instructor); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info("instructor signed up",
		zap.String("instructor_id", instructor.ID.String()),
		zap.String("subdomain", instructor.Subdomain),
	)
	return &instructor, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.Instructor, error) {
	instructor, err := s.repo.FindByEmail(ctx, s.db, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if instructor == nil || !token.VerifyPassword(password, instructor.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if !instructor.IsActive {
		return nil, domain.ErrInactive
	}
	return instructor, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Instructor, error) {
	instructor, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if instructor == nil {
		return nil, domain.ErrNotFound
	}
	return instructor, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.Instructor, error) {
	instructor, err := s.repo.FindByEmail(ctx, s.db, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if instructor == nil {
		return nil, domain.ErrNotFound
	}
	return instructor, nil
}

func (s *Service) GetBySubdomain(ctx context.Context, subdomain string) (*domain.Instructor, error) {
	instructor, err := s.repo.FindBySubdomain(ctx, s.db, normalizeSubdomain(subdomain))
	if err != nil {
		return nil, err
	}
	if instructor == nil {
		return nil, domain.ErrNotFound
	}
	return instructor, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id snowflake.ID, req domain.UpdateRequest) (*domain.Instructor, error) {
	instructor, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email == "" {
			return nil, domain.ErrInvalidEmail
		}
		if email != instructor.Email {
			if existing, err := s.repo.FindByEmail(ctx, s.db, email); err != nil {
				return nil, err
			} else if existing != nil {
				return nil, domain.ErrEmailTaken
			}
			instructor.Email = email
		}
	}
	if req.Subdomain != nil {
		subdomain := normalizeSubdomain(*req.Subdomain)
		if subdomain == "" {
			return nil, domain.ErrInvalidSubdomain
		}
		if subdomain != instructor.Subdomain {
			if existing, err := s.repo.FindBySubdomain(ctx, s.db, subdomain); err != nil {
				return nil, err
			} else if existing != nil {
				return nil, domain.ErrSubdomainTaken
			}
			instructor.Subdomain = subdomain
		}
	}
	if req.FullName != nil {
		if name := strings.TrimSpace(*req.FullName); name != "" {
			instructor.FullName = name
		}
	}
	if req.StoreName != nil {
		if name := strings.TrimSpace(*req.StoreName); name != "" {
			instructor.StoreName = name
		}
	}
	if req.Bio != nil {
		instructor.Bio = *req.Bio
	}
	if req.ProfileImage != nil {
		instructor.ProfileImage = *req.ProfileImage
	}
	if req.KakaoClientID != nil {
		instructor.KakaoClientID = strings.TrimSpace(*req.KakaoClientID)
	}
	if req.KakaoClientSecret != nil {
		instructor.KakaoClientSecret = strings.TrimSpace(*req.KakaoClientSecret)
	}
	if req.KakaoRedirectURI != nil {
		instructor.KakaoRedirectURI = strings.TrimSpace(*req.KakaoRedirectURI)
	}
	if req.KakaoEnabled != nil {
		instructor.KakaoEnabled = *req.KakaoEnabled
	}
	if req.KakaoChannelID != nil {
		instructor.KakaoChannelID = strings.TrimSpace(*req.KakaoChannelID)
	}

	instructor.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, instructor); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return instructor, nil
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return ""
	}
	return email
}

func normalizeSubdomain(subdomain string) string {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if subdomain == "" {
		return ""
	}
	for _, r := range subdomain {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return ""
		}
	}
	return subdomain
}
