package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/classon/server/internal/customer/domain"
	"github.com/classon/server/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Create(customer).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Save(customer).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Customer{}, "id = ?", id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, instructorID snowflake.ID, email string) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).First(&customer, "instructor_id = ? AND email = ?", instructorID, email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repo) FindByKakaoID(ctx context.Context, db *gorm.DB, instructorID snowflake.ID, kakaoID string) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).First(&customer, "instructor_id = ? AND kakao_id = ?", instructorID, kakaoID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repo) ListByInstructor(ctx context.Context, db *gorm.DB, instructorID snowflake.ID, p pagination.Pagination) ([]domain.Customer, error) {
	var customers []domain.Customer
	stmt := db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC")
	if err := p.Apply(stmt).Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repo) CountByInstructor(ctx context.Context, db *gorm.DB, instructorID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("instructor_id = ?", instructorID).
		Count(&count).Error
	return count, err
}
