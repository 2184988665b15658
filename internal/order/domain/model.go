package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
	StatusRefunded  Status = "REFUNDED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo encodes the one-directional order lifecycle. Repeating the
// current status is accepted as a no-op, and both PAID and CANCELLED orders
// may still be refunded. There is no way back to an earlier state.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusPaid || next == StatusCancelled
	case StatusPaid, StatusCancelled:
		return next == StatusRefunded
	}
	return false
}

// Order records a purchase by either a platform user or a store customer,
// never both. InstructorID is copied from the product at creation so
// per-store queries skip the join.
type Order struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrderNumber   string        `gorm:"not null;uniqueIndex" json:"order_number"`
	UserID        *snowflake.ID `gorm:"index" json:"user_id,omitempty"`
	CustomerID    *snowflake.ID `gorm:"index" json:"customer_id,omitempty"`
	ProductID     snowflake.ID  `gorm:"not null;index" json:"product_id"`
	InstructorID  snowflake.ID  `gorm:"not null;index" json:"instructor_id"`
	Status        Status        `gorm:"not null;default:PENDING" json:"status"`
	OriginalPrice int64         `gorm:"not null" json:"original_price"`
	PaidPrice     int64         `gorm:"not null" json:"paid_price"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	PaymentID     string        `json:"payment_id,omitempty"`
	RefundReason  string        `json:"refund_reason,omitempty"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`
	RefundedAt    *time.Time    `json:"refunded_at,omitempty"`
	CreatedAt     time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
