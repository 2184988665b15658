package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/classon/server/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	ListByInstructor(ctx context.Context, db *gorm.DB, instructorID snowflake.ID, p pagination.Pagination) ([]Product, error)
	ListPublished(ctx context.Context, db *gorm.DB, instructorID snowflake.ID, p pagination.Pagination) ([]Product, error)
	CountByInstructor(ctx context.Context, db *gorm.DB, instructorID snowflake.ID, publishedOnly bool) (int64, error)
}
