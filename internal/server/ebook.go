package server

import (
	"net/http"

	ebookdomain "github.com/classon/server/internal/ebook/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateChapter(c *gin.Context) {
	var req ebookdomain.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	chapter, err := s.ebookSvc.CreateChapter(c.Request.Context(), instructorFrom(c).ID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": chapter})
}

func (s *Server) ListChapters(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	chapters, err := s.ebookSvc.ListChapters(c.Request.Context(), instructorFrom(c).ID, productID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": chapters})
}

func (s *Server) UpdateChapter(c *gin.Context) {
	chapterID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req ebookdomain.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	chapter, err := s.ebookSvc.UpdateChapter(c.Request.Context(), instructorFrom(c).ID, chapterID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": chapter})
}

func (s *Server) DeleteChapter(c *gin.Context) {
	chapterID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.ebookSvc.DeleteChapter(c.Request.Context(), instructorFrom(c).ID, chapterID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "chapter deleted"})
}

func (s *Server) CreateSection(c *gin.Context) {
	var req ebookdomain.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	section, err := s.ebookSvc.CreateSection(c.Request.Context(), instructorFrom(c).ID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": section})
}

func (s *Server) UpdateSection(c *gin.Context) {
	sectionID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req ebookdomain.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	section, err := s.ebookSvc.UpdateSection(c.Request.Context(), instructorFrom(c).ID, sectionID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": section})
}

func (s *Server) DeleteSection(c *gin.Context) {
	sectionID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.ebookSvc.DeleteSection(c.Request.Context(), instructorFrom(c).ID, sectionID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "section deleted"})
}

func (s *Server) GetEbookStructure(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	structure, err := s.ebookSvc.GetStructure(c.Request.Context(), customerFrom(c).ID, productID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": structure})
}

func (s *Server) GetSectionContent(c *gin.Context) {
	sectionID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	section, err := s.ebookSvc.GetSectionContent(c.Request.Context(), customerFrom(c).ID, sectionID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": section})
}

func (s *Server) UpsertProgress(c *gin.Context) {
	var req ebookdomain.UpsertProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	progress, err := s.ebookSvc.UpsertProgress(c.Request.Context(), customerFrom(c).ID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": progress})
}

func (s *Server) ListProgress(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	progress, err := s.ebookSvc.ListProgress(c.Request.Context(), customerFrom(c).ID, productID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": progress})
}

func (s *Server) CreateBookmark(c *gin.Context) {
	var req ebookdomain.CreateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	bookmark, err := s.ebookSvc.CreateBookmark(c.Request.Context(), customerFrom(c).ID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": bookmark})
}

func (s *Server) ListBookmarks(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	bookmarks, err := s.ebookSvc.ListBookmarks(c.Request.Context(), customerFrom(c).ID, productID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": bookmarks})
}

func (s *Server) DeleteBookmark(c *gin.Context) {
	bookmarkID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.ebookSvc.DeleteBookmark(c.Request.Context(), customerFrom(c).ID, bookmarkID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "bookmark deleted"})
}
