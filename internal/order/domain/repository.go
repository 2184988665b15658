package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/classon/server/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	Update(ctx context.Context, db *gorm.DB, order *Order) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID, p pagination.Pagination) ([]Order, error)
	ListByInstructor(ctx context.Context, db *gorm.DB, instructorID snowflake.ID, status Status, p pagination.Pagination) ([]Order, error)
	CountPaidByCustomerProduct(ctx context.Context, db *gorm.DB, customerID, productID snowflake.ID) (int64, error)
	CountByInstructorStatus(ctx context.Context, db *gorm.DB, instructorID snowflake.ID, status Status) (int64, error)
	SumPaidByInstructor(ctx context.Context, db *gorm.DB, instructorID snowflake.ID) (int64, error)
}
