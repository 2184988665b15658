package server

import (
	"net/http"
	"strings"

	"github.com/classon/server/internal/kakao"
	"github.com/gin-gonic/gin"
)

func (s *Server) KakaoLogin(c *gin.Context) {
	subdomain := strings.TrimSpace(c.Param("subdomain"))
	redirectURI := strings.TrimSpace(c.Query("redirect_uri"))

	info, err := s.kakaoSvc.LoginURL(c.Request.Context(), subdomain, redirectURI)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": info})
}

func (s *Server) KakaoCallback(c *gin.Context) {
	code := strings.TrimSpace(c.Query("code"))
	subdomain := strings.TrimSpace(c.Query("subdomain"))
	if code == "" || subdomain == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.kakaoSvc.Callback(c.Request.Context(), kakao.CallbackRequest{
		Code:        code,
		State:       strings.TrimSpace(c.Query("state")),
		Subdomain:   subdomain,
		RedirectURI: strings.TrimSpace(c.Query("redirect_uri")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
