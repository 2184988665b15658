package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Chapter struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	ProductID   snowflake.ID `gorm:"not null;index" json:"product_id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `json:"description,omitempty"`
	OrderIndex  int          `gorm:"not null;default:0" json:"order_index"`
	IsPublished bool         `gorm:"not null;default:true" json:"is_published"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Chapter) TableName() string {
	return "ebook_chapters"
}

// Section content is an opaque editor blob. The server never interprets it,
// only stores and returns it.
type Section struct {
	ID          snowflake.ID   `gorm:"primaryKey" json:"id"`
	ChapterID   snowflake.ID   `gorm:"not null;index" json:"chapter_id"`
	Title       string         `gorm:"not null" json:"title"`
	Content     datatypes.JSON `json:"content,omitempty"`
	ContentHTML string         `json:"content_html,omitempty"`
	OrderIndex  int            `gorm:"not null;default:0" json:"order_index"`
	ReadingTime int            `gorm:"not null;default:0" json:"reading_time"`
	IsPublished bool           `gorm:"not null;default:true" json:"is_published"`
	IsFree      bool           `gorm:"not null;default:false" json:"is_free"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Section) TableName() string {
	return "ebook_sections"
}

type Progress struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID      snowflake.ID `gorm:"not null;uniqueIndex:idx_progress_customer_section,priority:1" json:"customer_id"`
	SectionID       snowflake.ID `gorm:"not null;uniqueIndex:idx_progress_customer_section,priority:2" json:"section_id"`
	IsCompleted     bool         `gorm:"not null;default:false" json:"is_completed"`
	ReadingProgress int          `gorm:"not null;default:0" json:"reading_progress"`
	LastReadAt      time.Time    `gorm:"not null" json:"last_read_at"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Progress) TableName() string {
	return "ebook_progress"
}

type Bookmark struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID snowflake.ID `gorm:"not null;index" json:"customer_id"`
	SectionID  snowflake.ID `gorm:"not null;index" json:"section_id"`
	Note       string       `json:"note,omitempty"`
	Position   int          `gorm:"not null;default:0" json:"position"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Bookmark) TableName() string {
	return "ebook_bookmarks"
}
