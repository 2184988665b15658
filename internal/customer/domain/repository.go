package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/classon/server/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	Update(ctx context.Context, db *gorm.DB, customer *Customer) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	FindByEmail(ctx context.Context, db *gorm.DB, instructorID snowflake.ID, email string) (*Customer, error)
	FindByKakaoID(ctx context.Context, db *gorm.DB, instructorID snowflake.ID, kakaoID string) (*Customer, error)
	ListByInstructor(ctx context.Context, db *gorm.DB, instructorID snowflake.ID, p pagination.Pagination) ([]Customer, error)
	CountByInstructor(ctx context.Context, db *gorm.DB, instructorID snowflake.ID) (int64, error)
}
