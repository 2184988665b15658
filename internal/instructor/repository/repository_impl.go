package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/classon/server/internal/instructor/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, instructor *domain.Instructor) error {
	return db.WithContext(ctx).Create(instructor).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, instructor *domain.Instructor) error {
	return db.WithContext(ctx).Save(instructor).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Instructor, error) {
	var instructor domain.Instructor
	err := db.WithContext(ctx).First(&instructor, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Instructor, error) {
	var instructor domain.Instructor
	err := db.WithContext(ctx).First(&instructor, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}

func (r *repo) FindBySubdomain(ctx context.Context, db *gorm.DB, subdomain string) (*domain.Instructor, error) {
	var instructor domain.Instructor
	err := db.WithContext(ctx).First(&instructor, "subdomain = ?", subdomain).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}
