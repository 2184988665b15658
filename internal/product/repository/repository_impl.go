package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/classon/server/internal/product/domain"
	"github.com/classon/server/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Save(product).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repo) ListByInstructor(ctx context.Context, db *gorm.DB, instructorID snowflake.ID, p pagination.Pagination) ([]domain.Product, error) {
	var products []domain.Product
	stmt := db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC")
	if err := p.Apply(stmt).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) ListPublished(ctx context.Context, db *gorm.DB, instructorID snowflake.ID, p pagination.Pagination) ([]domain.Product, error) {
	var products []domain.Product
	stmt := db.WithContext(ctx).
		Where("instructor_id = ? AND is_published = ?", instructorID, true).
		Order("created_at DESC")
	if err := p.Apply(stmt).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) CountByInstructor(ctx context.Context, db *gorm.DB, instructorID snowflake.ID, publishedOnly bool) (int64, error) {
	var count int64
	stmt := db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("instructor_id = ?", instructorID)
	if publishedOnly {
		stmt = stmt.Where("is_published = ?", true)
	}
	err := stmt.Count(&count).Error
	return count, err
}
