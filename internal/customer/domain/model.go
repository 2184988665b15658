package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Customer belongs to exactly one instructor's store. Email is unique per
// store, not globally, so the same address may sign up with many instructors.
type Customer struct {
	ID           snowflake.ID   `gorm:"primaryKey" json:"id"`
	InstructorID snowflake.ID   `gorm:"not null;uniqueIndex:idx_customers_instructor_email,priority:1;uniqueIndex:idx_customers_instructor_kakao,priority:1" json:"instructor_id"`
	Email        string         `gorm:"not null;uniqueIndex:idx_customers_instructor_email,priority:2" json:"email"`
	PasswordHash string         `json:"-"`
	FullName     string         `gorm:"not null" json:"full_name"`
	Phone        string         `json:"phone,omitempty"`
	KakaoID      *string        `gorm:"uniqueIndex:idx_customers_instructor_kakao,priority:2" json:"kakao_id,omitempty"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	Notes        string         `json:"notes,omitempty"`
	Tags         datatypes.JSON `json:"tags,omitempty"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}
