package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/classon/server/internal/order/domain"
	productdomain "github.com/classon/server/internal/product/domain"
	"github.com/classon/server/pkg/db/pagination"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Products productdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	products productdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("order.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		products: p.Products,
	}
}

func (s *Service) Create(ctx context.Context, buyer domain.Buyer, req domain.CreateRequest) (*domain.Order, error) {
	if (buyer.UserID == nil) == (buyer.CustomerID == nil) {
		return nil, domain.ErrInvalidBuyer
	}

	product, err := s.products.FindByID(ctx, s.db, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsPublished {
		return nil, productdomain.ErrNotFound
	}
	if buyer.CustomerID != nil && buyer.StoreID != product.InstructorID {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:            s.genID.Generate(),
		OrderNumber:   newOrderNumber(now),
		UserID:        buyer.UserID,
		CustomerID:    buyer.CustomerID,
		ProductID:     product.ID,
		InstructorID:  product.InstructorID,
		Status:        domain.StatusPending,
		OriginalPrice: product.Price,
		PaidPrice:     product.EffectivePrice(),
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &order); err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("product_id", product.ID.String()),
		zap.String("instructor_id", order.InstructorID.String()),
	)
	return &order, nil
}

func (s *Service) ListByUser(ctx context.Context, userID snowflake.ID, p pagination.Pagination) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, s.db, userID, p)
}

func (s *Service) ListByInstructor(ctx context.Context, instructorID snowflake.ID, status domain.Status, p pagination.Pagination) ([]domain.Order, error) {
	if status != "" && !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	return s.repo.ListByInstructor(ctx, s.db, instructorID, status, p)
}

func (s *Service) GetForUser(ctx context.Context, userID, orderID snowflake.ID) (*domain.Order, error) {
	order, err := s.getByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID == nil || *order.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *Service) GetForInstructor(ctx context.Context, instructorID, orderID snowflake.ID) (*domain.Order, error) {
	order, err := s.getByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.InstructorID != instructorID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// UpdateStatus applies a lifecycle transition. Each terminal timestamp is
// written on the first arrival at its status and never overwritten.
func (s *Service) UpdateStatus(ctx context.Context, instructorID, orderID snowflake.ID, req domain.UpdateRequest) (*domain.Order, error) {
	if !req.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.GetForInstructor(ctx, instructorID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(req.Status) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	switch req.Status {
	case domain.StatusPaid:
		if order.PaidAt == nil {
			order.PaidAt = &now
		}
		if req.PaymentMethod != nil {
			order.PaymentMethod = strings.TrimSpace(*req.PaymentMethod)
		}
		if req.PaymentID != nil {
			order.PaymentID = strings.TrimSpace(*req.PaymentID)
		}
	case domain.StatusCancelled:
		if order.CancelledAt == nil {
			order.CancelledAt = &now
		}
	case domain.StatusRefunded:
		if order.RefundedAt == nil {
			order.RefundedAt = &now
		}
		if req.RefundReason != nil {
			order.RefundReason = *req.RefundReason
		}
	}

	order.Status = req.Status
	order.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, order); err != nil {
		return nil, err
	}

	s.log.Info("order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(order.Status)),
	)
	return order, nil
}

func (s *Service) Delete(ctx context.Context, instructorID, orderID snowflake.ID) error {
	if _, err := s.GetForInstructor(ctx, instructorID, orderID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, orderID)
}

// HasPurchased reports whether the customer holds a PAID order for the
// product. A refunded order no longer counts.
func (s *Service) HasPurchased(ctx context.Context, customerID, productID snowflake.ID) (bool, error) {
	count, err := s.repo.CountPaidByCustomerProduct(ctx, s.db, customerID, productID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Service) GetStats(ctx context.Context, instructorID snowflake.ID) (*domain.Stats, error) {
	stats := &domain.Stats{}
	var err error
	if stats.TotalOrders, err = s.repo.CountByInstructorStatus(ctx, s.db, instructorID, ""); err != nil {
		return nil, err
	}
	if stats.PendingOrders, err = s.repo.CountByInstructorStatus(ctx, s.db, instructorID, domain.StatusPending); err != nil {
		return nil, err
	}
	if stats.PaidOrders, err = s.repo.CountByInstructorStatus(ctx, s.db, instructorID, domain.StatusPaid); err != nil {
		return nil, err
	}
	if stats.CancelledOrders, err = s.repo.CountByInstructorStatus(ctx, s.db, instructorID, domain.StatusCancelled); err != nil {
		return nil, err
	}
	if stats.RefundedOrders, err = s.repo.CountByInstructorStatus(ctx, s.db, instructorID, domain.StatusRefunded); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.repo.SumPaidByInstructor(ctx, s.db, instructorID); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Service) getByID(ctx context.Context, id snowflake.ID) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "ORD" + now.Format("20060102150405") + suffix
}
