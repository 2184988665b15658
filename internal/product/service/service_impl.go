package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/classon/server/internal/product/domain"
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
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, instructorID snowflake.ID, req domain.CreateRequest) (*domain.Product, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}
	if req.Price < 0 || (req.DiscountPrice != nil && *req.DiscountPrice < 0) {
		return nil, domain.ErrInvalidPrice
	}
	if !req.Type.Valid() {
		return nil, domain.ErrInvalidType
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:                  s.genID.Generate(),
		InstructorID:        instructorID,
		Title:               title,
		Description:         req.Description,
		DetailedDescription: req.DetailedDescription,
		Price:               req.Price,
		DiscountPrice:       req.DiscountPrice,
		Thumbnail:           req.Thumbnail,
		Type:                req.Type,
		Category:            req.Category,
		Duration:            req.Duration,
		FileURL:             req.FileURL,
		IsPublished:         req.IsPublished,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Insert(ctx, s.db, &product); err != nil {
		return nil, err
	}

	s.log.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("instructor_id", instructorID.String()),
		zap.String("type", string(product.Type)),
	)
	return &product, nil
}

func (s *Service) Update(ctx context.Context, instructorID, productID snowflake.ID, req domain.UpdateRequest) (*domain.Product, error) {
	product, err := s.GetForInstructor(ctx, instructorID, productID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.ErrInvalidTitle
		}
		product.Title = title
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.DetailedDescription != nil {
		product.DetailedDescription = *req.DetailedDescription
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, domain.ErrInvalidPrice
		}
		product.Price = *req.Price
	}
	if req.DiscountPrice != nil {
		if *req.DiscountPrice < 0 {
			return nil, domain.ErrInvalidPrice
		}
		product.DiscountPrice = req.DiscountPrice
	}
	if req.Type != nil {
		if !req.Type.Valid() {
			return nil, domain.ErrInvalidType
		}
		product.Type = *req.Type
	}
	if req.Thumbnail != nil {
		product.Thumbnail = *req.Thumbnail
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Duration != nil {
		product.Duration = *req.Duration
	}
	if req.FileURL != nil {
		product.FileURL = *req.FileURL
	}
	if req.IsPublished != nil {
		product.IsPublished = *req.IsPublished
	}

	product.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) Delete(ctx context.Context, instructorID, productID snowflake.ID) error {
	if _, err := s.GetForInstructor(ctx, instructorID, productID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, productID)
}

func (s *Service) GetForInstructor(ctx context.Context, instructorID, productID snowflake.ID) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.InstructorID != instructorID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

func (s *Service) ListByInstructor(ctx context.Context, instructorID snowflake.ID, p pagination.Pagination) ([]domain.Product, error) {
	return s.repo.ListByInstructor(ctx, s.db, instructorID, p)
}

// GetPublished is the storefront detail lookup. A product belonging to a
// different store, or not yet published, looks exactly like a missing one.
func (s *Service) GetPublished(ctx context.Context, instructorID, productID snowflake.ID) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.InstructorID != instructorID || !product.IsPublished {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func (s *Service) ListPublished(ctx context.Context, instructorID snowflake.ID, p pagination.Pagination) ([]domain.Product, error) {
	return s.repo.ListPublished(ctx, s.db, instructorID, p)
}

func (s *Service) GetStats(ctx context.Context, instructorID snowflake.ID) (*domain.Stats, error) {
	total, err := s.repo.CountByInstructor(ctx, s.db, instructorID, false)
	if err != nil {
		return nil, err
	}
	published, err := s.repo.CountByInstructor(ctx, s.db, instructorID, true)
	if err != nil {
		return nil, err
	}
	return &domain.Stats{TotalProducts: total, PublishedProducts: published}, nil
}
