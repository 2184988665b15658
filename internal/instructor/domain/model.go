package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Instructor is the tenant root. Every product, order, customer and piece of
// ebook content belongs to exactly one instructor.
type Instructor struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Email        string       `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string       `gorm:"not null" json:"-"`
	FullName     string       `gorm:"not null" json:"full_name"`
	Subdomain    string       `gorm:"not null;uniqueIndex" json:"subdomain"`
	StoreName    string       `gorm:"not null" json:"store_name"`
	Bio          string       `json:"bio,omitempty"`
	ProfileImage string       `json:"profile_image,omitempty"`
	IsActive     bool         `gorm:"not null;default:true" json:"is_active"`
	IsVerified   bool         `gorm:"not null;default:false" json:"is_verified"`

	// Kakao login settings, managed per tenant. The secret never leaves
	// the server.
	KakaoClientID     string `json:"kakao_client_id,omitempty"`
	KakaoClientSecret string `json:"-"`
	KakaoRedirectURI  string `json:"kakao_redirect_uri,omitempty"`
	KakaoEnabled      bool   `gorm:"not null;default:false" json:"kakao_enabled"`
	KakaoChannelID    string `json:"kakao_channel_id,omitempty"`

	BannerSlides datatypes.JSON `json:"banner_slides,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Instructor) TableName() string {
	return "instructors"
}

// StoreInfo is the public storefront projection of a tenant. It carries no
// credentials and no provider secrets.
type StoreInfo struct {
	StoreName      string         `json:"store_name"`
	FullName       string         `json:"full_name"`
	Bio            string         `json:"bio,omitempty"`
	ProfileImage   string         `json:"profile_image,omitempty"`
	Subdomain      string         `json:"subdomain"`
	BannerSlides   datatypes.JSON `json:"banner_slides,omitempty"`
	KakaoChannelID string         `json:"kakao_channel_id,omitempty"`
}

// PublicInfo projects an instructor onto its storefront view.
func (i *Instructor) PublicInfo() StoreInfo {
	return StoreInfo{
		StoreName:      i.StoreName,
		FullName:       i.FullName,
		Bio:            i.Bio,
		ProfileImage:   i.ProfileImage,
		Subdomain:      i.Subdomain,
		BannerSlides:   i.BannerSlides,
		KakaoChannelID: i.KakaoChannelID,
	}
}
