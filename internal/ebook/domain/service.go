package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type CreateChapterRequest struct {
	ProductID   snowflake.ID `json:"product_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	OrderIndex  int          `json:"order_index"`
	IsPublished *bool        `json:"is_published"`
}

type UpdateChapterRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	OrderIndex  *int    `json:"order_index"`
	IsPublished *bool   `json:"is_published"`
}

type CreateSectionRequest struct {
	ChapterID   snowflake.ID   `json:"chapter_id"`
	Title       string         `json:"title"`
	Content     datatypes.JSON `json:"content"`
	ContentHTML string         `json:"content_html"`
	OrderIndex  int            `json:"order_index"`
	ReadingTime int            `json:"reading_time"`
	IsPublished *bool          `json:"is_published"`
	IsFree      *bool          `json:"is_free"`
}

type UpdateSectionRequest struct {
	Title       *string         `json:"title"`
	Content     *datatypes.JSON `json:"content"`
	ContentHTML *string         `json:"content_html"`
	OrderIndex  *int            `json:"order_index"`
	ReadingTime *int            `json:"reading_time"`
	IsPublished *bool           `json:"is_published"`
	IsFree      *bool           `json:"is_free"`
}

// SectionSummary is the reader's table-of-contents view of a section. It
// never carries content.
type SectionSummary struct {
	ID          snowflake.ID `json:"id"`
	Title       string       `json:"title"`
	OrderIndex  int          `json:"order_index"`
	ReadingTime int          `json:"reading_time"`
	IsFree      bool         `json:"is_free"`
	IsCompleted bool         `json:"is_completed"`
}

type ChapterStructure struct {
	ID          snowflake.ID     `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	OrderIndex  int              `json:"order_index"`
	Sections    []SectionSummary `json:"sections"`
}

type Structure struct {
	ProductID snowflake.ID       `json:"product_id"`
	Purchased bool               `json:"purchased"`
	Chapters  []ChapterStructure `json:"chapters"`
}

// ChapterWithSections is the instructor's authoring view, unpublished
// entries included.
type ChapterWithSections struct {
	Chapter
	Sections []Section `json:"sections"`
}

type UpsertProgressRequest struct {
	SectionID       snowflake.ID `json:"section_id"`
	IsCompleted     *bool        `json:"is_completed"`
	ReadingProgress *int         `json:"reading_progress"`
}

type CreateBookmarkRequest struct {
	SectionID snowflake.ID `json:"section_id"`
	Note      string       `json:"note"`
	Position  int          `json:"position"`
}

type Service interface {
	CreateChapter(ctx context.Context, instructorID snowflake.ID, req CreateChapterRequest) (*Chapter, error)
	UpdateChapter(ctx context.Context, instructorID, chapterID snowflake.ID, req UpdateChapterRequest) (*Chapter, error)
	DeleteChapter(ctx context.Context, instructorID, chapterID snowflake.ID) error
	ListChapters(ctx context.Context, instructorID, productID snowflake.ID) ([]ChapterWithSections, error)

	CreateSection(ctx context.Context, instructorID snowflake.ID, req CreateSectionRequest) (*Section, error)
	UpdateSection(ctx context.Context, instructorID, sectionID snowflake.ID, req UpdateSectionRequest) (*Section, error)
	DeleteSection(ctx context.Context, instructorID, sectionID snowflake.ID) error

	GetStructure(ctx context.Context, customerID, productID snowflake.ID) (*Structure, error)
	GetSectionContent(ctx context.Context, customerID, sectionID snowflake.ID) (*Section, error)
	UpsertProgress(ctx context.Context, customerID snowflake.ID, req UpsertProgressRequest) (*Progress, error)
	ListProgress(ctx context.Context, customerID, productID snowflake.ID) ([]Progress, error)
	CreateBookmark(ctx context.Context, customerID snowflake.ID, req CreateBookmarkRequest) (*Bookmark, error)
	ListBookmarks(ctx context.Context, customerID, productID snowflake.ID) ([]Bookmark, error)
	DeleteBookmark(ctx context.Context, customerID, bookmarkID snowflake.ID) error
}

var (
	ErrChapterNotFound  = errors.New("chapter_not_found")
	ErrSectionNotFound  = errors.New("section_not_found")
	ErrBookmarkNotFound = errors.New("bookmark_not_found")
	ErrForbidden        = errors.New("ebook_forbidden")
	ErrNotPurchased     = errors.New("purchase_required")
	ErrInvalidTitle     = errors.New("invalid_title")
	ErrInvalidProgress  = errors.New("invalid_reading_progress")
)
