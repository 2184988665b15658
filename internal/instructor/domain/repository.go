package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, instructor *Instructor) error
	Update(ctx context.Context, db *gorm.DB, instructor *Instructor) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Instructor, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*Instructor, error)
	FindBySubdomain(ctx context.Context, db *gorm.DB, subdomain string) (*Instructor, error)
}
