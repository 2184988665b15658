package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/classon/server/internal/product/domain"
	"github.com/classon/server/internal/product/repository"
	"github.com/classon/server/pkg/db/pagination"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.Product{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func createProduct(t *testing.T, svc domain.Service, instructorID snowflake.ID, published bool) *domain.Product {
	t.Helper()
	product, err := svc.Create(context.Background(), instructorID, domain.CreateRequest{
		Title:       "Go Deep Dive",
		Price:       49000,
		Type:        domain.TypeEbook,
		IsPublished: published,
	})
	require.NoError(t, err)
	return product
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	negative := int64(-1)

	tests := []struct {
		name string
		req  domain.CreateRequest
		want error
	}{
		{"blank title", domain.CreateRequest{Title: "  ", Price: 100, Type: domain.TypeEbook}, domain.ErrInvalidTitle},
		{"negative price", domain.CreateRequest{Title: "T", Price: -5, Type: domain.TypeEbook}, domain.ErrInvalidPrice},
		{"negative discount", domain.CreateRequest{Title: "T", Price: 100, DiscountPrice: &negative, Type: domain.TypeEbook}, domain.ErrInvalidPrice},
		{"unknown type", domain.CreateRequest{Title: "T", Price: 100, Type: "podcast"}, domain.ErrInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, 1001, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetForInstructor(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product := createProduct(t, svc, 1001, false)

	got, err := svc.GetForInstructor(ctx, 1001, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)

	// The owner sees drafts, anyone else gets a hard forbidden.
	_, err = svc.GetForInstructor(ctx, 1002, product.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.GetForInstructor(ctx, 1001, snowflake.ID(42))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetPublishedMasksDraftsAndForeign(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	draft := createProduct(t, svc, 1001, false)
	published := createProduct(t, svc, 1001, true)

	got, err := svc.GetPublished(ctx, 1001, published.ID)
	require.NoError(t, err)
	assert.Equal(t, published.ID, got.ID)

	// Drafts and foreign products are indistinguishable from missing ones
	// on the storefront.
	_, err = svc.GetPublished(ctx, 1001, draft.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetPublished(ctx, 1002, published.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListPublishedFiltersDrafts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	createProduct(t, svc, 1001, true)
	createProduct(t, svc, 1001, false)
	createProduct(t, svc, 1002, true)

	list, err := svc.ListPublished(ctx, 1001, pagination.Pagination{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsPublished)

	all, err := svc.ListByInstructor(ctx, 1001, pagination.Pagination{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdatePartial(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product := createProduct(t, svc, 1001, false)

	published := true
	discount := int64(29000)
	got, err := svc.Update(ctx, 1001, product.ID, domain.UpdateRequest{
		IsPublished:   &published,
		DiscountPrice: &discount,
	})
	require.NoError(t, err)
	assert.True(t, got.IsPublished)
	assert.Equal(t, "Go Deep Dive", got.Title)
	assert.EqualValues(t, 29000, got.EffectivePrice())

	blank := "  "
	_, err = svc.Update(ctx, 1001, product.ID, domain.UpdateRequest{Title: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)
}

func TestDeleteOwnOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product := createProduct(t, svc, 1001, true)

	assert.ErrorIs(t, svc.Delete(ctx, 1002, product.ID), domain.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, 1001, product.ID))

	_, err := svc.GetForInstructor(ctx, 1001, product.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetStats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	createProduct(t, svc, 1001, true)
	createProduct(t, svc, 1001, true)
	createProduct(t, svc, 1001, false)
	createProduct(t, svc, 1002, true)

	stats, err := svc.GetStats(ctx, 1001)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalProducts)
	assert.EqualValues(t, 2, stats.PublishedProducts)
}

func TestEffectivePrice(t *testing.T) {
	higher := int64(60000)
	lower := int64(30000)
	zero := int64(0)

	tests := []struct {
		name     string
		discount *int64
		want     int64
	}{
		{"no discount", nil, 49000},
		{"lower discount applies", &lower, 30000},
		{"free discount applies", &zero, 0},
		{"discount above price ignored", &higher, 49000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.Product{Price: 49000, DiscountPrice: tt.discount}
			assert.Equal(t, tt.want, p.EffectivePrice())
		})
	}
}
