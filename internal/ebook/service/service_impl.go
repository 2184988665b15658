package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/classon/server/internal/ebook/domain"
	orderdomain "github.com/classon/server/internal/order/domain"
	productdomain "github.com/classon/server/internal/product/domain"
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
	Orders   orderdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	products productdomain.Repository
	orders   orderdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("ebook.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		products: p.Products,
		orders:   p.Orders,
	}
}

func (s *Service) CreateChapter(ctx context.Context, instructorID snowflake.ID, req domain.CreateChapterRequest) (*domain.Chapter, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}
	if err := s.checkProductOwnership(ctx, instructorID, req.ProductID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	chapter := domain.Chapter{
		ID:          s.genID.Generate(),
		ProductID:   req.ProductID,
		Title:       title,
		Description: req.Description,
		OrderIndex:  req.OrderIndex,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsPublished != nil {
		chapter.IsPublished = *req.IsPublished
	}

	if err := s.repo.InsertChapter(ctx, s.db, &chapter); err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (s *Service) UpdateChapter(ctx context.Context, instructorID, chapterID snowflake.ID, req domain.UpdateChapterRequest) (*domain.Chapter, error) {
	chapter, err := s.getOwnedChapter(ctx, instructorID, chapterID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.ErrInvalidTitle
		}
		chapter.Title = title
	}
	if req.Description != nil {
		chapter.Description = *req.Description
	}
	if req.OrderIndex != nil {
		chapter.OrderIndex = *req.OrderIndex
	}
	if req.IsPublished != nil {
		chapter.IsPublished = *req.IsPublished
	}

	chapter.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateChapter(ctx, s.db, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *Service) DeleteChapter(ctx context.Context, instructorID, chapterID snowflake.ID) error {
	if _, err := s.getOwnedChapter(ctx, instructorID, chapterID); err != nil {
		return err
	}
	return s.repo.DeleteChapter(ctx, s.db, chapterID)
}

// ListChapters is the authoring view: every chapter and section of the
// product, drafts included.
func (s *Service) ListChapters(ctx context.Context, instructorID, productID snowflake.ID) ([]domain.ChapterWithSections, error) {
	if err := s.checkProductOwnership(ctx, instructorID, productID); err != nil {
		return nil, err
	}

	chapters, err := s.repo.ListChaptersByProduct(ctx, s.db, productID, false)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ChapterWithSections, 0, len(chapters))
	for _, chapter := range chapters {
		sections, err := s.repo.ListSectionsByChapter(ctx, s.db, chapter.ID, false)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ChapterWithSections{Chapter: chapter, Sections: sections})
	}
	return out, nil
}

func (s *Service) CreateSection(ctx context.Context, instructorID snowflake.ID, req domain.CreateSectionRequest) (*domain.Section, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}
	if _, err := s.getOwnedChapter(ctx, instructorID, req.ChapterID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	section := domain.Section{
		ID:          s.genID.Generate(),
		ChapterID:   req.ChapterID,
		Title:       title,
		Content:     req.Content,
		ContentHTML: req.ContentHTML,
		OrderIndex:  req.OrderIndex,
		ReadingTime: req.ReadingTime,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsPublished != nil {
		section.IsPublished = *req.IsPublished
	}
	if req.IsFree != nil {
		section.IsFree = *req.IsFree
	}

	if err := s.repo.InsertSection(ctx, s.db, &section); err != nil {
		return nil, err
	}
	return &section, nil
}

func (s *Service) UpdateSection(ctx context.Context, instructorID, sectionID snowflake.ID, req domain.UpdateSectionRequest) (*domain.Section, error) {
	section, err := s.getOwnedSection(ctx, instructorID, sectionID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.ErrInvalidTitle
		}
		section.Title = title
	}
	if req.Content != nil {
		section.Content = *req.Content
	}
	if req.ContentHTML != nil {
		section.ContentHTML = *req.ContentHTML
	}
	if req.OrderIndex != nil {
		section.OrderIndex = *req.OrderIndex
	}
	if req.ReadingTime != nil {
		section.ReadingTime = *req.ReadingTime
	}
	if req.IsPublished != nil {
		section.IsPublished = *req.IsPublished
	}
	if req.IsFree != nil {
		section.IsFree = *req.IsFree
	}

	section.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateSection(ctx, s.db, section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *Service) DeleteSection(ctx context.Context, instructorID, sectionID snowflake.ID) error {
	if _, err := s.getOwnedSection(ctx, instructorID, sectionID); err != nil {
		return err
	}
	return s.repo.DeleteSection(ctx, s.db, sectionID)
}

// GetStructure returns the reader's table of contents. The product must be
// purchased by this customer; any existing product that is not purchased,
// published or not, fails the same purchase check, so the caller cannot tell
// foreign or withdrawn products apart from unpaid ones.
func (s *Service) GetStructure(ctx context.Context, customerID, productID snowflake.ID) (*domain.Structure, error) {
	product, err := s.products.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, productdomain.ErrNotFound
	}

	purchased, err := s.orders.HasPurchased(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, domain.ErrNotPurchased
	}

	chapters, err := s.repo.ListChaptersByProduct(ctx, s.db, productID, true)
	if err != nil {
		return nil, err
	}

	structure := &domain.Structure{
		ProductID: productID,
		Purchased: purchased,
		Chapters:  make([]domain.ChapterStructure, 0, len(chapters)),
	}
	for _, chapter := range chapters {
		sections, err := s.repo.ListSectionsByChapter(ctx, s.db, chapter.ID, true)
		if err != nil {
			return nil, err
		}
		entry := domain.ChapterStructure{
			ID:          chapter.ID,
			Title:       chapter.Title,
			Description: chapter.Description,
			OrderIndex:  chapter.OrderIndex,
			Sections:    make([]domain.SectionSummary, 0, len(sections)),
		}
		for _, section := range sections {
			progress, err := s.repo.FindProgress(ctx, s.db, customerID, section.ID)
			if err != nil {
				return nil, err
			}
			summary := domain.SectionSummary{
				ID:          section.ID,
				Title:       section.Title,
				OrderIndex:  section.OrderIndex,
				ReadingTime: section.ReadingTime,
				IsFree:      section.IsFree,
			}
			if progress != nil {
				summary.IsCompleted = progress.IsCompleted
			}
			entry.Sections = append(entry.Sections, summary)
		}
		structure.Chapters = append(structure.Chapters, entry)
	}
	return structure, nil
}

// GetSectionContent enforces the visibility rule: the chapter and section
// must both be published, and the section must be free or its product
// purchased.
func (s *Service) GetSectionContent(ctx context.Context, customerID, sectionID snowflake.ID) (*domain.Section, error) {
	section, chapter, err := s.visibleSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if !section.IsFree {
		purchased, err := s.orders.HasPurchased(ctx, customerID, chapter.ProductID)
		if err != nil {
			return nil, err
		}
		if !purchased {
			return nil, domain.ErrNotPurchased
		}
	}
	return section, nil
}

func (s *Service) UpsertProgress(ctx context.Context, customerID snowflake.ID, req domain.UpsertProgressRequest) (*domain.Progress, error) {
	if req.ReadingProgress != nil && (*req.ReadingProgress < 0 || *req.ReadingProgress > 100) {
		return nil, domain.ErrInvalidProgress
	}
	if _, err := s.readableSection(ctx, customerID, req.SectionID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	progress, err := s.repo.FindProgress(ctx, s.db, customerID, req.SectionID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		progress = &domain.Progress{
			ID:         s.genID.Generate(),
			CustomerID: customerID,
			SectionID:  req.SectionID,
			CreatedAt:  now,
		}
		applyProgress(progress, req, now)
		if err := s.repo.InsertProgress(ctx, s.db, progress); err != nil {
			return nil, err
		}
		return progress, nil
	}

	applyProgress(progress, req, now)
	if err := s.repo.UpdateProgress(ctx, s.db, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *Service) ListProgress(ctx context.Context, customerID, productID snowflake.ID) ([]domain.Progress, error) {
	return s.repo.ListProgressByProduct(ctx, s.db, customerID, productID)
}

func (s *Service) CreateBookmark(ctx context.Context, customerID snowflake.ID, req domain.CreateBookmarkRequest) (*domain.Bookmark, error) {
	if _, err := s.readableSection(ctx, customerID, req.SectionID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bookmark := domain.Bookmark{
		ID:         s.genID.Generate(),
		CustomerID: customerID,
		SectionID:  req.SectionID,
		Note:       req.Note,
		Position:   req.Position,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.InsertBookmark(ctx, s.db, &bookmark); err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (s *Service) ListBookmarks(ctx context.Context, customerID, productID snowflake.ID) ([]domain.Bookmark, error) {
	return s.repo.ListBookmarksByProduct(ctx, s.db, customerID, productID)
}

func (s *Service) DeleteBookmark(ctx context.Context, customerID, bookmarkID snowflake.ID) error {
	bookmark, err := s.repo.FindBookmarkByID(ctx, s.db, bookmarkID)
	if err != nil {
		return err
	}
	if bookmark == nil {
		return domain.ErrBookmarkNotFound
	}
	if bookmark.CustomerID != customerID {
		return domain.ErrForbidden
	}
	return s.repo.DeleteBookmark(ctx, s.db, bookmarkID)
}

func (s *Service) checkProductOwnership(ctx context.Context, instructorID, productID snowflake.ID) error {
	product, err := s.products.FindByID(ctx, s.db, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return productdomain.ErrNotFound
	}
	if product.InstructorID != instructorID {
		return domain.ErrForbidden
	}
	return nil
}

// getOwnedChapter walks the chapter to its product and verifies the caller
// owns it. Each hop is checked so a dangling reference surfaces as not
// found rather than a foreign-tenant leak.
func (s *Service) getOwnedChapter(ctx context.Context, instructorID, chapterID snowflake.ID) (*domain.Chapter, error) {
	chapter, err := s.repo.FindChapterByID(ctx, s.db, chapterID)
	if err != nil {
		return nil, err
	}
	if chapter == nil {
		return nil, domain.ErrChapterNotFound
	}
	if err := s.checkProductOwnership(ctx, instructorID, chapter.ProductID); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *Service) getOwnedSection(ctx context.Context, instructorID, sectionID snowflake.ID) (*domain.Section, error) {
	section, err := s.repo.FindSectionByID(ctx, s.db, sectionID)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, domain.ErrSectionNotFound
	}
	if _, err := s.getOwnedChapter(ctx, instructorID, section.ChapterID); err != nil {
		return nil, err
	}
	return section, nil
}

// visibleSection resolves a section for reader access: both the section and
// its chapter must be published. Unpublished content looks missing.
func (s *Service) visibleSection(ctx context.Context, sectionID snowflake.ID) (*domain.Section, *domain.Chapter, error) {
	section, err := s.repo.FindSectionByID(ctx, s.db, sectionID)
	if err != nil {
		return nil, nil, err
	}
	if section == nil || !section.IsPublished {
		return nil, nil, domain.ErrSectionNotFound
	}
	chapter, err := s.repo.FindChapterByID(ctx, s.db, section.ChapterID)
	if err != nil {
		return nil, nil, err
	}
	if chapter == nil || !chapter.IsPublished {
		return nil, nil, domain.ErrSectionNotFound
	}
	return section, chapter, nil
}

// readableSection is visibleSection plus the purchase gate for paid
// sections. Progress and bookmarks only attach to sections the customer
// can actually read.
func (s *Service) readableSection(ctx context.Context, customerID, sectionID snowflake.ID) (*domain.Section, error) {
	section, chapter, err := s.visibleSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if !section.IsFree {
		purchased, err := s.orders.HasPurchased(ctx, customerID, chapter.ProductID)
		if err != nil {
			return nil, err
		}
		if !purchased {
			return nil, domain.ErrNotPurchased
		}
	}
	return section, nil
}

func applyProgress(progress *domain.Progress, req domain.UpsertProgressRequest, now time.Time) {
	if req.IsCompleted != nil {
		progress.IsCompleted = *req.IsCompleted
	}
	if req.ReadingProgress != nil {
		progress.ReadingProgress = *req.ReadingProgress
		if progress.ReadingProgress >= 100 {
			progress.IsCompleted = true
		}
	}
	progress.LastReadAt = now
	progress.UpdatedAt = now
}
