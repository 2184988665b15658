package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/classon/server/internal/ebook/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertChapter(ctx context.Context, db *gorm.DB, chapter *domain.Chapter) error {
	return db.WithContext(ctx).Create(chapter).Error
}

func (r *repo) UpdateChapter(ctx context.Context, db *gorm.DB, chapter *domain.Chapter) error {
	return db.WithContext(ctx).Save(chapter).Error
}

func (r *repo) DeleteChapter(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	// Sections go with their chapter.
	if err := db.WithContext(ctx).Delete(&domain.Section{}, "chapter_id = ?", id).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&domain.Chapter{}, "id = ?", id).Error
}

func (r *repo) FindChapterByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Chapter, error) {
	var chapter domain.Chapter
	err := db.WithContext(ctx).First(&chapter, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *repo) ListChaptersByProduct(ctx context.Context, db *gorm.DB, productID snowflake.ID, publishedOnly bool) ([]domain.Chapter, error) {
	var chapters []domain.Chapter
	stmt := db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("order_index ASC, created_at ASC")
	if publishedOnly {
		stmt = stmt.Where("is_published = ?", true)
	}
	if err := stmt.Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *repo) InsertSection(ctx context.Context, db *gorm.DB, section *domain.Section) error {
	return db.WithContext(ctx).Create(section).Error
}

func (r *repo) UpdateSection(ctx context.Context, db *gorm.DB, section *domain.Section) error {
	return db.WithContext(ctx).Save(section).Error
}

func (r *repo) DeleteSection(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Section{}, "id = ?", id).Error
}

func (r *repo) FindSectionByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Section, error) {
	var section domain.Section
	err := db.WithContext(ctx).First(&section, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *repo) ListSectionsByChapter(ctx context.Context, db *gorm.DB, chapterID snowflake.ID, publishedOnly bool) ([]domain.Section, error) {
	var sections []domain.Section
	stmt := db.WithContext(ctx).
		Where("chapter_id = ?", chapterID).
		Order("order_index ASC, created_at ASC")
	if publishedOnly {
		stmt = stmt.Where("is_published = ?", true)
	}
	if err := stmt.Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *repo) FindProgress(ctx context.Context, db *gorm.DB, customerID, sectionID snowflake.ID) (*domain.Progress, error) {
	var progress domain.Progress
	err := db.WithContext(ctx).First(&progress, "customer_id = ? AND section_id = ?", customerID, sectionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *repo) InsertProgress(ctx context.Context, db *gorm.DB, progress *domain.Progress) error {
	return db.WithContext(ctx).Create(progress).Error
}

func (r *repo) UpdateProgress(ctx context.Context, db *gorm.DB, progress *domain.Progress) error {
	return db.WithContext(ctx).Save(progress).Error
}

func (r *repo) ListProgressByProduct(ctx context.Context, db *gorm.DB, customerID, productID snowflake.ID) ([]domain.Progress, error) {
	var progress []domain.Progress
	err := db.WithContext(ctx).
		Model(&domain.Progress{}).
		Joins("JOIN ebook_sections ON ebook_sections.id = ebook_progress.section_id").
		Joins("JOIN ebook_chapters ON ebook_chapters.id = ebook_sections.chapter_id").
		Where("ebook_progress.customer_id = ? AND ebook_chapters.product_id = ?", customerID, productID).
		Find(&progress).Error
	if err != nil {
		return nil, err
	}
	return progress, nil
}

func (r *repo) InsertBookmark(ctx context.Context, db *gorm.DB, bookmark *domain.Bookmark) error {
	return db.WithContext(ctx).Create(bookmark).Error
}

func (r *repo) DeleteBookmark(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Bookmark{}, "id = ?", id).Error
}

func (r *repo) FindBookmarkByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Bookmark, error) {
	var bookmark domain.Bookmark
	err := db.WithContext(ctx).First(&bookmark, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (r *repo) ListBookmarksByProduct(ctx context.Context, db *gorm.DB, customerID, productID snowflake.ID) ([]domain.Bookmark, error) {
	var bookmarks []domain.Bookmark
	err := db.WithContext(ctx).
		Model(&domain.Bookmark{}).
		Joins("JOIN ebook_sections ON ebook_sections.id = ebook_bookmarks.section_id").
		Joins("JOIN ebook_chapters ON ebook_chapters.id = ebook_sections.chapter_id").
		Where("ebook_bookmarks.customer_id = ? AND ebook_chapters.product_id = ?", customerID, productID).
		Order("ebook_bookmarks.created_at DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}
