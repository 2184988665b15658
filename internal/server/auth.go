package server

import (
	"net/http"

	instructordomain "github.com/classon/server/internal/instructor/domain"
	"github.com/classon/server/internal/token"
	userdomain "github.com/classon/server/internal/user/domain"
	"github.com/gin-gonic/gin"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (s *Server) issueToken(subject string, kind token.UserType) (*tokenResponse, error) {
	raw, err := s.tokens.Issue(token.NewClaims(subject, kind))
	if err != nil {
		return nil, err
	}
	return &tokenResponse{
		AccessToken: raw,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}

func (s *Server) SignupUser(c *gin.Context) {
	var req userdomain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.userSvc.Signup(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	tok, err := s.issueToken(user.Email, token.UserTypeUser)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": user, "token": tok})
}

func (s *Server) SignupInstructor(c *gin.Context) {
	var req instructordomain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	instructor, err := s.instructorSvc.Signup(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	tok, err := s.issueToken(instructor.Email, token.UserTypeInstructor)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": instructor, "token": tok})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) LoginUser(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.userSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	tok, err := s.issueToken(user.Email, token.UserTypeUser)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user, "token": tok})
}

func (s *Server) LoginInstructor(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	instructor, err := s.instructorSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	tok, err := s.issueToken(instructor.Email, token.UserTypeInstructor)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": instructor, "token": tok})
}

// ForgotPassword always answers the same way. Whether the address exists is
// not observable from the outside.
func (s *Server) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If the email exists, a password reset link has been sent.",
	})
}

func (s *Server) MeInstructor(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": instructorFrom(c)})
}

func (s *Server) UpdateMeInstructor(c *gin.Context) {
	var req instructordomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	instructor, err := s.instructorSvc.UpdateProfile(c.Request.Context(), instructorFrom(c).ID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": instructor})
}
