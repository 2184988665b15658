package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertChapter(ctx context.Context, db *gorm.DB, chapter *Chapter) error
	UpdateChapter(ctx context.Context, db *gorm.DB, chapter *Chapter) error
	DeleteChapter(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindChapterByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Chapter, error)
	ListChaptersByProduct(ctx context.Context, db *gorm.DB, productID snowflake.ID, publishedOnly bool) ([]Chapter, error)

	InsertSection(ctx context.Context, db *gorm.DB, section *Section) error
	UpdateSection(ctx context.Context, db *gorm.DB, section *Section) error
	DeleteSection(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindSectionByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Section, error)
	ListSectionsByChapter(ctx context.Context, db *gorm.DB, chapterID snowflake.ID, publishedOnly bool) ([]Section, error)

	FindProgress(ctx context.Context, db *gorm.DB, customerID, sectionID snowflake.ID) (*Progress, error)
	InsertProgress(ctx context.Context, db *gorm.DB, progress *Progress) error
	UpdateProgress(ctx context.Context, db *gorm.DB, progress *Progress) error
	ListProgressByProduct(ctx context.Context, db *gorm.DB, customerID, productID snowflake.ID) ([]Progress, error)

	InsertBookmark(ctx context.Context, db *gorm.DB, bookmark *Bookmark) error
	DeleteBookmark(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindBookmarkByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Bookmark, error)
	ListBookmarksByProduct(ctx context.Context, db *gorm.DB, customerID, productID snowflake.ID) ([]Bookmark, error)
}
