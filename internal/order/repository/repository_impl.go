package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/classon/server/internal/order/domain"
	"github.com/classon/server/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Save(order).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Order{}, "id = ?", id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repo) ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID, p pagination.Pagination) ([]domain.Order, error) {
	var orders []domain.Order
	stmt := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if err := p.Apply(stmt).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) ListByInstructor(ctx context.Context, db *gorm.DB, instructorID snowflake.ID, status domain.Status, p pagination.Pagination) ([]domain.Order, error) {
	var orders []domain.Order
	stmt := db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC")
	if status != "" {
		stmt = stmt.Where("status = ?", status)
	}
	if err := p.Apply(stmt).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) CountPaidByCustomerProduct(ctx context.Context, db *gorm.DB, customerID, productID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("customer_id = ? AND product_id = ? AND status = ?", customerID, productID, domain.StatusPaid).
		Count(&count).Error
	return count, err
}

func (r *repo) CountByInstructorStatus(ctx context.Context, db *gorm.DB, instructorID snowflake.ID, status domain.Status) (int64, error) {
	var count int64
	stmt := db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("instructor_id = ?", instructorID)
	if status != "" {
		stmt = stmt.Where("status = ?", status)
	}
	err := stmt.Count(&count).Error
	return count, err
}

func (r *repo) SumPaidByInstructor(ctx context.Context, db *gorm.DB, instructorID snowflake.ID) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("instructor_id = ? AND status = ?", instructorID, domain.StatusPaid).
		Select("COALESCE(SUM(paid_price), 0)").
		Scan(&total).Error
	return total, err
}
