package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type ProductType string

const (
	TypeEbook ProductType = "ebook"
	TypeVideo ProductType = "video"
)

func (t ProductType) Valid() bool {
	return t == TypeEbook || t == TypeVideo
}

type Product struct {
	ID                  snowflake.ID `gorm:"primaryKey" json:"id"`
	InstructorID        snowflake.ID `gorm:"not null;index" json:"instructor_id"`
	Title               string       `gorm:"not null" json:"title"`
	Description         string       `json:"description,omitempty"`
	DetailedDescription string       `json:"detailed_description,omitempty"`
	Price               int64        `gorm:"not null" json:"price"`
	DiscountPrice       *int64       `json:"discount_price,omitempty"`
	Thumbnail           string       `json:"thumbnail,omitempty"`
	Type                ProductType  `gorm:"not null" json:"type"`
	Category            string       `json:"category,omitempty"`
	Duration            string       `json:"duration,omitempty"`
	FileURL             string       `json:"file_url,omitempty"`
	IsPublished         bool         `gorm:"not null;default:false" json:"is_published"`
	CreatedAt           time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// EffectivePrice is what a buyer actually pays.
func (p *Product) EffectivePrice() int64 {
	if p.DiscountPrice != nil && *p.DiscountPrice >= 0 && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}
