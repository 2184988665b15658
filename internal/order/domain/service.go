package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/classon/server/pkg/db/pagination"
)

type CreateRequest struct {
	ProductID     snowflake.ID `json:"product_id"`
	PaymentMethod string       `json:"payment_method"`
}

// Buyer identifies who places an order. Exactly one of UserID and CustomerID
// is set. StoreID is the customer's home store and zero for platform users;
// customers may only buy within their own store.
type Buyer struct {
	UserID     *snowflake.ID
	CustomerID *snowflake.ID
	StoreID    snowflake.ID
}

// UpdateRequest drives the instructor-side status transition. Only fields
// relevant to the target status are consulted.
type UpdateRequest struct {
	Status        Status  `json:"status"`
	PaymentMethod *string `json:"payment_method"`
	PaymentID     *string `json:"payment_id"`
	RefundReason  *string `json:"refund_reason"`
}

type Stats struct {
	TotalOrders     int64 `json:"total_orders"`
	PendingOrders   int64 `json:"pending_orders"`
	PaidOrders      int64 `json:"paid_orders"`
	CancelledOrders int64 `json:"cancelled_orders"`
	RefundedOrders  int64 `json:"refunded_orders"`
	TotalRevenue    int64 `json:"total_revenue"`
}

type Service interface {
	Create(ctx context.Context, buyer Buyer, req CreateRequest) (*Order, error)
	ListByUser(ctx context.Context, userID snowflake.ID, p pagination.Pagination) ([]Order, error)
	ListByInstructor(ctx context.Context, instructorID snowflake.ID, status Status, p pagination.Pagination) ([]Order, error)
	GetForUser(ctx context.Context, userID, orderID snowflake.ID) (*Order, error)
	GetForInstructor(ctx context.Context, instructorID, orderID snowflake.ID) (*Order, error)
	UpdateStatus(ctx context.Context, instructorID, orderID snowflake.ID, req UpdateRequest) (*Order, error)
	Delete(ctx context.Context, instructorID, orderID snowflake.ID) error
	HasPurchased(ctx context.Context, customerID, productID snowflake.ID) (bool, error)
	GetStats(ctx context.Context, instructorID snowflake.ID) (*Stats, error)
}

var (
	ErrNotFound          = errors.New("order_not_found")
	ErrForbidden         = errors.New("order_forbidden")
	ErrInvalidBuyer      = errors.New("invalid_order_buyer")
	ErrInvalidStatus     = errors.New("invalid_order_status")
	ErrInvalidTransition = errors.New("invalid_status_transition")
)
