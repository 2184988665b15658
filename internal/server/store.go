package server

import (
	"net/http"
	"strings"

	customerdomain "github.com/classon/server/internal/customer/domain"
	instructordomain "github.com/classon/server/internal/instructor/domain"
	"github.com/classon/server/internal/token"
	"github.com/gin-gonic/gin"
)

func (s *Server) resolveStore(c *gin.Context) (*instructordomain.Instructor, error) {
	return s.instructorSvc.GetBySubdomain(c.Request.Context(), strings.TrimSpace(c.Param("subdomain")))
}

func (s *Server) issueCustomerToken(customer *customerdomain.Customer) (*tokenResponse, error) {
	claims := token.NewClaims(customer.ID.String(), token.UserTypeCustomer)
	claims.CustomerID = customer.ID.String()
	claims.InstructorID = customer.InstructorID.String()

	raw, err := s.tokens.Issue(claims)
	if err != nil {
		return nil, err
	}
	return &tokenResponse{
		AccessToken: raw,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}

func (s *Server) StoreSignup(c *gin.Context) {
	store, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req customerdomain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	customer, err := s.customerSvc.Signup(c.Request.Context(), store.ID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	tok, err := s.issueCustomerToken(customer)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": customer, "token": tok})
}

func (s *Server) StoreLogin(c *gin.Context) {
	store, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	customer, err := s.customerSvc.Authenticate(c.Request.Context(), store.ID, req.Email, req.Password)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	tok, err := s.issueCustomerToken(customer)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": customer, "token": tok})
}

// StoreMe rejects tokens from another store. The customer principal is
// already loaded; only the tenant binding is checked here.
func (s *Server) StoreMe(c *gin.Context) {
	store, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	customer := customerFrom(c)
	if customer.InstructorID != store.ID {
		AbortWithError(c, ErrForbidden)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": customer})
}

func (s *Server) StoreInfo(c *gin.Context) {
	store, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": store.PublicInfo()})
}

func (s *Server) StoreProducts(c *gin.Context) {
	store, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	products, err := s.productSvc.ListPublished(c.Request.Context(), store.ID, pageFromQuery(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": products})
}

func (s *Server) StoreProductDetail(c *gin.Context) {
	store, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	product, err := s.productSvc.GetPublished(c.Request.Context(), store.ID, productID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}
