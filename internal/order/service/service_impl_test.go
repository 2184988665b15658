package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/classon/server/internal/order/domain"
	"github.com/classon/server/internal/order/repository"
	productdomain "github.com/classon/server/internal/product/domain"
	productrepository "github.com/classon/server/internal/product/repository"
	"github.com/classon/server/pkg/db/pagination"
)

type fixture struct {
	svc   domain.Service
	db    *gorm.DB
	genID *snowflake.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&productdomain.Product{}, &domain.Order{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:       gdb,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		Products: productrepository.Provide(),
	})
	return &fixture{svc: svc, db: gdb, genID: node}
}

func (f *fixture) seedProduct(t *testing.T, instructorID snowflake.ID, price int64, discount *int64, published bool) *productdomain.Product {
	t.Helper()
	product := productdomain.Product{
		ID:            f.genID.Generate(),
		InstructorID:  instructorID,
		Title:         "Go Deep Dive",
		Price:         price,
		DiscountPrice: discount,
		Type:          productdomain.TypeEbook,
		IsPublished:   published,
	}
	require.NoError(t, f.db.Create(&product).Error)
	return &product
}

func userBuyer(id snowflake.ID) domain.Buyer {
	return domain.Buyer{UserID: &id}
}

func customerBuyer(id, storeID snowflake.ID) domain.Buyer {
	return domain.Buyer{CustomerID: &id, StoreID: storeID}
}

func TestCreateRequiresExactlyOneBuyer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, 1001, 49000, nil, true)
	id := snowflake.ID(7)

	_, err := f.svc.Create(ctx, domain.Buyer{}, domain.CreateRequest{ProductID: product.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidBuyer)

	_, err = f.svc.Create(ctx, domain.Buyer{UserID: &id, CustomerID: &id}, domain.CreateRequest{ProductID: product.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidBuyer)
}

func TestCreateRejectsForeignStoreCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, 1001, 49000, nil, true)

	// A customer belonging to another store cannot buy here.
	_, err := f.svc.Create(ctx, customerBuyer(501, 2002), domain.CreateRequest{ProductID: product.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Create(ctx, customerBuyer(501, 1001), domain.CreateRequest{ProductID: product.ID})
	assert.NoError(t, err)
}

func TestCreateSnapshotsPrices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	discount := int64(29000)
	product := f.seedProduct(t, 1001, 49000, &discount, true)

	order, err := f.svc.Create(ctx, userBuyer(7), domain.CreateRequest{
		ProductID:     product.ID,
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.EqualValues(t, 1001, order.InstructorID)
	assert.EqualValues(t, 49000, order.OriginalPrice)
	assert.EqualValues(t, 29000, order.PaidPrice)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD"))
	assert.Nil(t, order.PaidAt)
}

func TestCreateRejectsUnpublishedProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := f.seedProduct(t, 1001, 49000, nil, false)

	_, err := f.svc.Create(ctx, userBuyer(7), domain.CreateRequest{ProductID: draft.ID})
	assert.ErrorIs(t, err, productdomain.ErrNotFound)

	_, err = f.svc.Create(ctx, userBuyer(7), domain.CreateRequest{ProductID: snowflake.ID(42)})
	assert.ErrorIs(t, err, productdomain.ErrNotFound)
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		path []domain.Status
		want error
	}{
		{"pending to paid", []domain.Status{domain.StatusPaid}, nil},
		{"pending to cancelled", []domain.Status{domain.StatusCancelled}, nil},
		{"paid to refunded", []domain.Status{domain.StatusPaid, domain.StatusRefunded}, nil},
		{"cancelled to refunded", []domain.Status{domain.StatusCancelled, domain.StatusRefunded}, nil},
		{"repeat paid is a no-op", []domain.Status{domain.StatusPaid, domain.StatusPaid}, nil},
		{"pending to refunded", []domain.Status{domain.StatusRefunded}, domain.ErrInvalidTransition},
		{"paid back to pending", []domain.Status{domain.StatusPaid, domain.StatusPending}, domain.ErrInvalidTransition},
		{"cancelled to paid", []domain.Status{domain.StatusCancelled, domain.StatusPaid}, domain.ErrInvalidTransition},
		{"refunded is terminal", []domain.Status{domain.StatusPaid, domain.StatusRefunded, domain.StatusPaid}, domain.ErrInvalidTransition},
		{"unknown status", []domain.Status{"SHIPPED"}, domain.ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			product := f.seedProduct(t, 1001, 49000, nil, true)
			order, err := f.svc.Create(ctx, userBuyer(7), domain.CreateRequest{ProductID: product.ID})
			require.NoError(t, err)

			for i, status := range tt.path {
				_, err = f.svc.UpdateStatus(ctx, 1001, order.ID, domain.UpdateRequest{Status: status})
				if i == len(tt.path)-1 {
					assert.ErrorIs(t, err, tt.want)
				} else {
					require.NoError(t, err)
				}
			}
		})
	}
}

func TestUpdateStatusStampsTimestampsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, 1001, 49000, nil, true)
	created, err := f.svc.Create(ctx, userBuyer(7), domain.CreateRequest{ProductID: product.ID})
	require.NoError(t, err)

	paymentID := "pg_12345"
	paid, err := f.svc.UpdateStatus(ctx, 1001, created.ID, domain.UpdateRequest{
		Status:    domain.StatusPaid,
		PaymentID: &paymentID,
	})
	require.NoError(t, err)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, "pg_12345", paid.PaymentID)

	// Marking a paid order paid again succeeds but keeps the first stamp.
	again, err := f.svc.UpdateStatus(ctx, 1001, created.ID, domain.UpdateRequest{Status: domain.StatusPaid})
	require.NoError(t, err)
	require.NotNil(t, again.PaidAt)
	assert.Equal(t, paid.PaidAt.UnixNano(), again.PaidAt.UnixNano())

	reason := "buyer changed their mind"
	refunded, err := f.svc.UpdateStatus(ctx, 1001, created.ID, domain.UpdateRequest{
		Status:       domain.StatusRefunded,
		RefundReason: &reason,
	})
	require.NoError(t, err)
	require.NotNil(t, refunded.RefundedAt)
	assert.Equal(t, reason, refunded.RefundReason)
	// The paid timestamp survives the refund.
	require.NotNil(t, refunded.PaidAt)
	assert.Equal(t, paid.PaidAt.Unix(), refunded.PaidAt.Unix())
}

func TestUpdateStatusForeignInstructor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, 1001, 49000, nil, true)
	order, err := f.svc.Create(ctx, userBuyer(7), domain.CreateRequest{ProductID: product.ID})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, 1002, order.ID, domain.UpdateRequest{Status: domain.StatusPaid})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestHasPurchased(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, 1001, 49000, nil, true)
	customerID := snowflake.ID(501)

	order, err := f.svc.Create(ctx, customerBuyer(customerID, 1001), domain.CreateRequest{ProductID: product.ID})
	require.NoError(t, err)

	// A pending order grants nothing.
	ok, err := f.svc.HasPurchased(ctx, customerID, product.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.svc.UpdateStatus(ctx, 1001, order.ID, domain.UpdateRequest{Status: domain.StatusPaid})
	require.NoError(t, err)

	ok, err = f.svc.HasPurchased(ctx, customerID, product.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Refunding revokes access.
	_, err = f.svc.UpdateStatus(ctx, 1001, order.ID, domain.UpdateRequest{Status: domain.StatusRefunded})
	require.NoError(t, err)

	ok, err = f.svc.HasPurchased(ctx, customerID, product.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetForUserOwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, 1001, 49000, nil, true)

	order, err := f.svc.Create(ctx, userBuyer(7), domain.CreateRequest{ProductID: product.ID})
	require.NoError(t, err)

	got, err := f.svc.GetForUser(ctx, 7, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = f.svc.GetForUser(ctx, 8, order.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// A customer order has no user owner at all.
	customerOrder, err := f.svc.Create(ctx, customerBuyer(501, 1001), domain.CreateRequest{ProductID: product.ID})
	require.NoError(t, err)
	_, err = f.svc.GetForUser(ctx, 7, customerOrder.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListByInstructorStatusFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, 1001, 49000, nil, true)

	first, err := f.svc.Create(ctx, userBuyer(7), domain.CreateRequest{ProductID: product.ID})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, userBuyer(8), domain.CreateRequest{ProductID: product.ID})
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, 1001, first.ID, domain.UpdateRequest{Status: domain.StatusPaid})
	require.NoError(t, err)

	all, err := f.svc.ListByInstructor(ctx, 1001, "", pagination.Pagination{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	paid, err := f.svc.ListByInstructor(ctx, 1001, domain.StatusPaid, pagination.Pagination{})
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, first.ID, paid[0].ID)

	_, err = f.svc.ListByInstructor(ctx, 1001, "SHIPPED", pagination.Pagination{})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestGetStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	discount := int64(30000)
	product := f.seedProduct(t, 1001, 49000, &discount, true)

	paidOrder, err := f.svc.Create(ctx, userBuyer(7), domain.CreateRequest{ProductID: product.ID})
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, 1001, paidOrder.ID, domain.UpdateRequest{Status: domain.StatusPaid})
	require.NoError(t, err)

	cancelled, err := f.svc.Create(ctx, userBuyer(8), domain.CreateRequest{ProductID: product.ID})
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, 1001, cancelled.ID, domain.UpdateRequest{Status: domain.StatusCancelled})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, customerBuyer(501, 1001), domain.CreateRequest{ProductID: product.ID})
	require.NoError(t, err)

	stats, err := f.svc.GetStats(ctx, 1001)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalOrders)
	assert.EqualValues(t, 1, stats.PendingOrders)
	assert.EqualValues(t, 1, stats.PaidOrders)
	assert.EqualValues(t, 1, stats.CancelledOrders)
	assert.EqualValues(t, 0, stats.RefundedOrders)
	assert.EqualValues(t, 30000, stats.TotalRevenue)
}
