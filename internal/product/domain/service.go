package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/classon/server/pkg/db/pagination"
)

type CreateRequest struct {
	Title               string      `json:"title"`
	Description         string      `json:"description"`
	DetailedDescription string      `json:"detailed_description"`
	Price               int64       `json:"price"`
	DiscountPrice       *int64      `json:"discount_price"`
	Thumbnail           string      `json:"thumbnail"`
	Type                ProductType `json:"type"`
	Category            string      `json:"category"`
	Duration            string      `json:"duration"`
	FileURL             string      `json:"file_url"`
	IsPublished         bool        `json:"is_published"`
}

type UpdateRequest struct {
	Title               *string      `json:"title"`
	Description         *string      `json:"description"`
	DetailedDescription *string      `json:"detailed_description"`
	Price               *int64       `json:"price"`
	DiscountPrice       *int64       `json:"discount_price"`
	Thumbnail           *string      `json:"thumbnail"`
	Type                *ProductType `json:"type"`
	Category            *string      `json:"category"`
	Duration            *string      `json:"duration"`
	FileURL             *string      `json:"file_url"`
	IsPublished         *bool        `json:"is_published"`
}

// Stats summarizes an instructor's catalog for the dashboard.
type Stats struct {
	TotalProducts     int64 `json:"total_products"`
	PublishedProducts int64 `json:"published_products"`
}

type Service interface {
	Create(ctx context.Context, instructorID snowflake.ID, req CreateRequest) (*Product, error)
	Update(ctx context.Context, instructorID, productID snowflake.ID, req UpdateRequest) (*Product, error)
	Delete(ctx context.Context, instructorID, productID snowflake.ID) error
	GetForInstructor(ctx context.Context, instructorID, productID snowflake.ID) (*Product, error)
	ListByInstructor(ctx context.Context, instructorID snowflake.ID, p pagination.Pagination) ([]Product, error)
	GetPublished(ctx context.Context, instructorID, productID snowflake.ID) (*Product, error)
	ListPublished(ctx context.Context, instructorID snowflake.ID, p pagination.Pagination) ([]Product, error)
	GetStats(ctx context.Context, instructorID snowflake.ID) (*Stats, error)
}

var (
	ErrNotFound     = errors.New("product_not_found")
	ErrForbidden    = errors.New("product_forbidden")
	ErrInvalidTitle = errors.New("invalid_title")
	ErrInvalidPrice = errors.New("invalid_price")
	ErrInvalidType  = errors.New("invalid_product_type")
)
